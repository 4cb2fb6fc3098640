// Copyright (c) 2026 Critica. All rights reserved.

package category

import (
	"context"
	"log/slog"

	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/pkg/pagination"
	slugutil "github.com/critica-app/critica/pkg/slug"
)

// Service orchestrates category taxonomy operations.
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

// List returns a page of categories matching the optional name search.
func (service *Service) List(context context.Context, search string, params pagination.Params) ([]Category, int, error) {
	return service.repo.List(context, ListFilter{
		Search: search,
		Limit:  params.Limit,
		Offset: params.Offset(),
	})
}

// CreateInput holds the fields for a new category. An empty slug is derived
// from the name.
type CreateInput struct {
	Name string
	Slug string
}

// Create adds a new category. The unique constraint on slug is the
// authority for duplicates.
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	if input.Slug == "" {
		input.Slug = slugutil.From(input.Name)
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLen).
		Required(FieldSlug, input.Slug).
		MaxLen(FieldSlug, input.Slug, MaxSlugLen).
		Slug(FieldSlug, input.Slug)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	category := &Category{Name: input.Name, Slug: input.Slug}
	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))

	return category, nil
}

// Delete removes the category with the given slug. Titles keep existing;
// their category reference is nulled by the schema.
func (service *Service) Delete(context context.Context, slug string) error {
	if err := service.repo.DeleteBySlug(context, slug); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("slug", slug))

	return nil
}
