// Copyright (c) 2026 Critica. All rights reserved.

package genre_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critica-app/critica/internal/core/genre"
	"github.com/critica-app/critica/internal/platform/apperr"
)

type fakeRepository struct {
	bySlug  map[string]*genre.Genre
	deleted []string
	nextID  int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{bySlug: map[string]*genre.Genre{}, nextID: 1}
}

func (f *fakeRepository) List(_ context.Context, _ genre.ListFilter) ([]genre.Genre, int, error) {
	genres := []genre.Genre{}
	for _, g := range f.bySlug {
		genres = append(genres, *g)
	}
	return genres, len(genres), nil
}

func (f *fakeRepository) Create(_ context.Context, g *genre.Genre) error {
	if _, taken := f.bySlug[g.Slug]; taken {
		return apperr.Conflict("Genre already exists")
	}
	g.ID = f.nextID
	f.nextID++
	f.bySlug[g.Slug] = g
	return nil
}

func (f *fakeRepository) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := f.bySlug[slug]; !ok {
		return apperr.NotFound("Genre")
	}
	delete(f.bySlug, slug)
	f.deleted = append(f.deleted, slug)
	return nil
}

func newService(repo *fakeRepository) *genre.Service {
	return genre.NewService(repo, slog.New(slog.DiscardHandler))
}

/*
TestService_Create_DerivesSlug verifies an omitted slug is derived from the
name and an explicit slug wins over derivation.
*/
func TestService_Create_DerivesSlug(t *testing.T) {
	tests := []struct {
		name         string
		inputName    string
		inputSlug    string
		expectedSlug string
	}{
		{"derived", "Science Fiction", "", "science-fiction"},
		{"explicit", "Science Fiction", "sci-fi", "sci-fi"},
		{"diacritics_folded", "Nouvelle Vague Française", "", "nouvelle-vague-francaise"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()

			created, err := newService(repo).Create(context.Background(), genre.CreateInput{
				Name: tt.inputName,
				Slug: tt.inputSlug,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expectedSlug, created.Slug)
		})
	}
}

/*
TestService_Create_Validates covers the rejection cases: missing name and a
malformed explicit slug.
*/
func TestService_Create_Validates(t *testing.T) {
	tests := []struct {
		name  string
		input genre.CreateInput
	}{
		{"missing_name", genre.CreateInput{}},
		{"bad_slug_chars", genre.CreateInput{Name: "Drama", Slug: "bad slug!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(newFakeRepository()).Create(context.Background(), tt.input)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_Create_DuplicateConflicts verifies a slug collision surfaces as
a conflict.
*/
func TestService_Create_DuplicateConflicts(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	_, err := service.Create(context.Background(), genre.CreateInput{Name: "Drama"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), genre.CreateInput{Name: "Drama"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Delete verifies removal and the NotFound path.
*/
func TestService_Delete(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	_, err := service.Create(context.Background(), genre.CreateInput{Name: "Drama"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "drama"))

	err = service.Delete(context.Background(), "drama")
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
