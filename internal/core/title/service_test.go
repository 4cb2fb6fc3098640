// Copyright (c) 2026 Critica. All rights reserved.

package title_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critica-app/critica/internal/core/category"
	"github.com/critica-app/critica/internal/core/title"
	"github.com/critica-app/critica/internal/platform/apperr"
)

// # Fakes

type fakeRepository struct {
	byID          map[int64]*title.WriteModel
	knownCategory map[string]bool
	knownGenre    map[string]bool
	lastWrite     *title.WriteModel
	deleted       []int64
	nextID        int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:          map[int64]*title.WriteModel{},
		knownCategory: map[string]bool{"books": true, "films": true},
		knownGenre:    map[string]bool{"drama": true, "satire": true},
		nextID:        1,
	}
}

func (f *fakeRepository) List(_ context.Context, _ title.Filter) ([]title.Title, int, error) {
	titles := []title.Title{}
	for id := range f.byID {
		t, _ := f.FindByID(context.Background(), id)
		titles = append(titles, *t)
	}
	return titles, len(titles), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id int64) (*title.Title, error) {
	model, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("Title")
	}

	result := &title.Title{
		ID:          id,
		Name:        model.Name,
		Year:        model.Year,
		Description: model.Description,
	}
	if model.CategorySlug != nil {
		result.Category = &category.Category{Slug: *model.CategorySlug}
	}
	return result, nil
}

func (f *fakeRepository) Create(_ context.Context, model *title.WriteModel) (int64, error) {
	if err := f.checkTaxonomy(model); err != nil {
		return 0, err
	}

	model.ID = f.nextID
	f.nextID++
	f.byID[model.ID] = model
	f.lastWrite = model
	return model.ID, nil
}

func (f *fakeRepository) Update(_ context.Context, model *title.WriteModel) error {
	existing, ok := f.byID[model.ID]
	if !ok {
		return apperr.NotFound("Title")
	}
	if err := f.checkTaxonomy(model); err != nil {
		return err
	}

	if model.CategorySlug == nil {
		model.CategorySlug = existing.CategorySlug
	}
	f.byID[model.ID] = model
	f.lastWrite = model
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepository) checkTaxonomy(model *title.WriteModel) error {
	if model.CategorySlug != nil && !f.knownCategory[*model.CategorySlug] {
		return apperr.NotFound("Category")
	}
	for _, slug := range model.GenreSlugs {
		if !f.knownGenre[slug] {
			return apperr.NotFound("Genre")
		}
	}
	return nil
}

func newService(repo *fakeRepository) *title.Service {
	return title.NewService(repo, slog.New(slog.DiscardHandler))
}

// # Creation

/*
TestService_Create verifies the happy path and that duplicate genre slugs
collapse into a single link.
*/
func TestService_Create(t *testing.T) {
	repo := newFakeRepository()

	created, err := newService(repo).Create(context.Background(), title.CreateInput{
		Name:     "The Master and Margarita",
		Year:     1967,
		Category: "books",
		Genres:   []string{"drama", "satire", "drama"},
	})
	require.NoError(t, err)

	assert.Equal(t, "The Master and Margarita", created.Name)
	require.NotNil(t, repo.lastWrite)
	assert.Equal(t, []string{"drama", "satire"}, repo.lastWrite.GenreSlugs)
}

/*
TestService_Create_ValidatesYear verifies the year bounds: the current year
is the ceiling, zero the floor.
*/
func TestService_Create_ValidatesYear(t *testing.T) {
	currentYear := time.Now().Year()

	tests := []struct {
		name    string
		year    int
		isValid bool
	}{
		{"current_year", currentYear, true},
		{"year_zero", 0, true},
		{"next_year", currentYear + 1, false},
		{"negative_year", -30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()

			_, err := newService(repo).Create(context.Background(), title.CreateInput{
				Name:     "Some Work",
				Year:     tt.year,
				Category: "books",
			})

			if tt.isValid {
				require.NoError(t, err)
			} else {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			}
		})
	}
}

/*
TestService_Create_RequiresCategory verifies the write shape demands a
category slug.
*/
func TestService_Create_RequiresCategory(t *testing.T) {
	repo := newFakeRepository()

	_, err := newService(repo).Create(context.Background(), title.CreateInput{
		Name: "Uncategorized Work",
		Year: 2000,
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_Create_UnknownTaxonomyIsNotFound verifies unknown slugs surface
as NotFound from the storage layer.
*/
func TestService_Create_UnknownTaxonomyIsNotFound(t *testing.T) {
	tests := []struct {
		name  string
		input title.CreateInput
	}{
		{"unknown_category", title.CreateInput{Name: "W", Year: 2000, Category: "podcasts"}},
		{"unknown_genre", title.CreateInput{Name: "W", Year: 2000, Category: "books", Genres: []string{"isekai"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(newFakeRepository()).Create(context.Background(), tt.input)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "NOT_FOUND", ae.Code)
		})
	}
}

// # Modification

/*
TestService_Update_MergesPartialPatch verifies omitted fields keep their
current values while provided ones change.
*/
func TestService_Update_MergesPartialPatch(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:        "Heart of a Dog",
		Year:        1925,
		Description: "A novella.",
		Category:    "books",
	})
	require.NoError(t, err)

	newYear := 1926
	updated, err := service.Update(context.Background(), created.ID, title.Patch{Year: &newYear})
	require.NoError(t, err)

	assert.Equal(t, "Heart of a Dog", updated.Name)
	assert.Equal(t, 1926, updated.Year)
	require.NotNil(t, updated.Category)
	assert.Equal(t, "books", updated.Category.Slug)
}

/*
TestService_Update_UnknownTitle verifies a missing title is NotFound before
any validation noise.
*/
func TestService_Update_UnknownTitle(t *testing.T) {
	name := "Ghost"
	_, err := newService(newFakeRepository()).Update(context.Background(), 99, title.Patch{Name: &name})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_Delete verifies removal and the NotFound path.
*/
func TestService_Delete(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:     "Disposable",
		Year:     1999,
		Category: "films",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	err = service.Delete(context.Background(), created.ID)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}
