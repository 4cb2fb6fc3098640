// Copyright (c) 2026 Critica. All rights reserved.

package comment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critica-app/critica/internal/core/comment"
	"github.com/critica-app/critica/internal/platform/apperr"
	"github.com/critica-app/critica/internal/platform/sec"
	"github.com/critica-app/critica/pkg/pagination"
)

// # Fakes

type reviewKey struct {
	titleID  int64
	reviewID int64
}

type fakeRepository struct {
	reviews map[reviewKey]bool
	byID    map[int64]*comment.Comment
	deleted []int64
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		reviews: map[reviewKey]bool{{titleID: 1, reviewID: 5}: true},
		byID:    map[int64]*comment.Comment{},
		nextID:  1,
	}
}

func (f *fakeRepository) ReviewExists(_ context.Context, titleID, reviewID int64) (bool, error) {
	return f.reviews[reviewKey{titleID: titleID, reviewID: reviewID}], nil
}

func (f *fakeRepository) ListByReview(_ context.Context, reviewID int64, _, _ int) ([]comment.Comment, int, error) {
	comments := []comment.Comment{}
	for _, c := range f.byID {
		if c.ReviewID == reviewID {
			comments = append(comments, *c)
		}
	}
	return comments, len(comments), nil
}

func (f *fakeRepository) FindByID(_ context.Context, reviewID, commentID int64) (*comment.Comment, error) {
	c, ok := f.byID[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	c.ID = f.nextID
	f.nextID++
	c.PubDate = time.Now()
	f.byID[c.ID] = c
	return nil
}

func (f *fakeRepository) Update(_ context.Context, c *comment.Comment) error {
	if _, ok := f.byID[c.ID]; !ok {
		return apperr.NotFound("Comment")
	}
	f.byID[c.ID] = c
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, reviewID, commentID int64) error {
	c, ok := f.byID[commentID]
	if !ok || c.ReviewID != reviewID {
		return apperr.NotFound("Comment")
	}
	delete(f.byID, commentID)
	f.deleted = append(f.deleted, commentID)
	return nil
}

func newService(repo *fakeRepository) *comment.Service {
	return comment.NewService(repo, slog.New(slog.DiscardHandler))
}

func claimsFor(userID int64, username string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: username, Role: string(role)}
}

func defaults() pagination.Params {
	return pagination.Params{Page: pagination.DefaultPage, Limit: pagination.DefaultLimit}
}

/*
TestService_Create verifies the happy path and that repeated comments from
one author are allowed, unlike reviews.
*/
func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	claims := claimsFor(7, "reader", sec.RoleUser)

	first, err := service.Create(context.Background(), 1, 5, claims, "Agreed.")
	require.NoError(t, err)
	assert.Equal(t, "reader", first.Author)

	_, err = service.Create(context.Background(), 1, 5, claims, "And another thing.")
	require.NoError(t, err)
}

/*
TestService_Create_ScopeResolution verifies a review reached through the
wrong title, or an absent review, is NotFound.
*/
func TestService_Create_ScopeResolution(t *testing.T) {
	tests := []struct {
		name     string
		titleID  int64
		reviewID int64
	}{
		{"wrong_title", 2, 5},
		{"absent_review", 1, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(newFakeRepository()).Create(context.Background(),
				tt.titleID, tt.reviewID, claimsFor(7, "reader", sec.RoleUser), "Lost.")

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "NOT_FOUND", ae.Code)
		})
	}
}

/*
TestService_Create_RequiresText verifies an empty text is rejected.
*/
func TestService_Create_RequiresText(t *testing.T) {
	_, err := newService(newFakeRepository()).Create(context.Background(), 1, 5,
		claimsFor(7, "reader", sec.RoleUser), "")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_List_MissingReview verifies listing under an absent review is
404, not an empty page.
*/
func TestService_List_MissingReview(t *testing.T) {
	_, _, err := newService(newFakeRepository()).List(context.Background(), 1, 99, defaults())

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Update_Ownership verifies the author and a moderator may edit
while another user may not.
*/
func TestService_Update_Ownership(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.Create(context.Background(), 1, 5,
		claimsFor(7, "reader", sec.RoleUser), "Original.")
	require.NoError(t, err)

	text := "Edited."
	_, err = service.Update(context.Background(), 1, 5, created.ID,
		claimsFor(10, "stranger", sec.RoleUser), &text)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	updated, err := service.Update(context.Background(), 1, 5, created.ID,
		claimsFor(8, "mod", sec.RoleModerator), &text)
	require.NoError(t, err)
	assert.Equal(t, "Edited.", updated.Text)
}

/*
TestService_Delete_Author verifies the author can remove their own comment.
*/
func TestService_Delete_Author(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	claims := claimsFor(7, "reader", sec.RoleUser)

	created, err := service.Create(context.Background(), 1, 5, claims, "Fleeting.")
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), 1, 5, created.ID, claims))
	assert.Equal(t, []int64{created.ID}, repo.deleted)
}
