// Copyright (c) 2026 Critica. All rights reserved.

package title

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/pkg/pagination"
	"github.com/critica-app/critica/pkg/pointer"
)

// Service orchestrates catalog operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListFilter is the caller-facing filter set for the title listing.
type ListFilter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         *int
}

// List returns a page of titles matching the filters.
func (service *Service) List(context context.Context, filter ListFilter, params pagination.Params) ([]Title, int, error) {
	titles, total, err := service.repo.List(context, Filter{
		CategorySlug: filter.CategorySlug,
		GenreSlug:    filter.GenreSlug,
		Name:         filter.Name,
		Year:         filter.Year,
		Limit:        params.Limit,
		Offset:       params.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("title_service_list_failed: %w", err)
	}
	return titles, total, nil
}

// Get returns a single title with nested taxonomy and rating.
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.FindByID(context, id)
}

// CreateInput holds the write shape of a new title. The taxonomy is given
// by slug; Genres may be empty but Category must name an existing category.
type CreateInput struct {
	Name        string
	Year        int
	Description string
	Category    string
	Genres      []string
}

// Create adds a title to the catalog.
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLen).
		Required(FieldCategory, input.Category).
		Range(FieldYear, input.Year, 0, time.Now().Year())

	if err := validator.Err(); err != nil {
		return nil, err
	}

	titleID, err := service.repo.Create(context, &WriteModel{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: &input.Category,
		GenreSlugs:   dedupe(input.Genres),
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int64("title_id", titleID),
		slog.String("name", input.Name),
	)

	return service.repo.FindByID(context, titleID)
}

// Patch holds the optional fields of a partial title update. A nil Genres
// keeps the current links; an empty non-nil slice clears them.
type Patch struct {
	Name        *string
	Year        *int
	Description *string
	Category    *string
	Genres      []string
}

// Update applies a partial update to a title.
func (service *Service) Update(context context.Context, id int64, patch Patch) (*Title, error) {
	existing, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	model := &WriteModel{
		ID:           id,
		Name:         pointer.Fallback(patch.Name, existing.Name),
		Year:         pointer.Fallback(patch.Year, existing.Year),
		Description:  pointer.Fallback(patch.Description, existing.Description),
		CategorySlug: patch.Category,
		GenreSlugs:   dedupe(patch.Genres),
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, model.Name).
		MaxLen(FieldName, model.Name, MaxNameLen).
		Range(FieldYear, model.Year, 0, time.Now().Year())

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, model); err != nil {
		return nil, err
	}

	service.logger.Info("title_updated", slog.Int64("title_id", id))

	return service.repo.FindByID(context, id)
}

// Delete removes a title and, through the schema, its reviews and comments.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("title_deleted", slog.Int64("title_id", id))

	return nil
}

// dedupe removes repeated slugs while preserving order and nil-ness.
func dedupe(slugs []string) []string {
	if slugs == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(slugs))
	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		out = append(out, slug)
	}
	return out
}
