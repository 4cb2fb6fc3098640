// Copyright (c) 2026 Critica. All rights reserved.

package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/critica-app/critica/internal/platform/apperr"
	"github.com/critica-app/critica/internal/platform/sec"
	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/pkg/pagination"
	"github.com/critica-app/critica/pkg/pointer"
)

// Service orchestrates review operations, including the ownership policy
// on modification.
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

// List returns a page of a title's reviews. A missing title is NotFound,
// not an empty page.
func (service *Service) List(context context.Context, titleID int64, params pagination.Params) ([]Review, int, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, 0, err
	}

	return service.repo.ListByTitle(context, titleID, params.Limit, params.Offset())
}

// Get returns one review within its title's scope.
func (service *Service) Get(context context.Context, titleID, reviewID int64) (*Review, error) {
	return service.repo.FindByID(context, titleID, reviewID)
}

// CreateInput holds a new review's content.
type CreateInput struct {
	Text  string
	Score int
}

// Create adds the caller's review of a title. A second review of the same
// title by the same author is rejected by the schema's unique constraint.
func (service *Service) Create(context context.Context, titleID int64, claims *sec.AuthClaims, input CreateInput) (*Review, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldText, input.Text).
		Range(FieldScore, input.Score, MinScore, MaxScore)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}

	review := &Review{
		TitleID:  titleID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     input.Text,
		Score:    input.Score,
	}
	if err := service.repo.Create(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int64("title_id", titleID),
		slog.Int64("review_id", review.ID),
	)

	return review, nil
}

// Patch holds the mutable review fields. Author and title binding never change.
type Patch struct {
	Text  *string
	Score *int
}

// Update modifies a review's text and score. The author may edit their own
// review; moderators and admins may edit any. Editing never re-triggers the
// one-review-per-title check since the binding is immutable.
func (service *Service) Update(context context.Context, titleID, reviewID int64, claims *sec.AuthClaims, patch Patch) (*Review, error) {
	review, err := service.repo.FindByID(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !sec.AllowContent(http.MethodPatch, claims, review.AuthorID) {
		return nil, service.denied(claims)
	}

	review.Text = pointer.Fallback(patch.Text, review.Text)
	review.Score = pointer.Fallback(patch.Score, review.Score)

	validator := &validate.Validator{}
	validator.
		Required(FieldText, review.Text).
		Range(FieldScore, review.Score, MinScore, MaxScore)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_updated", slog.Int64("review_id", reviewID))

	return review, nil
}

// Delete removes a review under the same ownership policy as Update. Its
// comments go with it through the schema's cascade.
func (service *Service) Delete(context context.Context, titleID, reviewID int64, claims *sec.AuthClaims) error {
	review, err := service.repo.FindByID(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if !sec.AllowContent(http.MethodDelete, claims, review.AuthorID) {
		return service.denied(claims)
	}

	if err := service.repo.Delete(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Info("review_deleted", slog.Int64("review_id", reviewID))

	return nil
}

// ensureTitle turns a missing parent title into NotFound.
func (service *Service) ensureTitle(context context.Context, titleID int64) error {
	exists, err := service.repo.TitleExists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// denied distinguishes the anonymous caller from the authenticated
// non-owner.
func (service *Service) denied(claims *sec.AuthClaims) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("You do not have permission to modify this review")
}
