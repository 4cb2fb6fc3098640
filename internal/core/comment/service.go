// Copyright (c) 2026 Critica. All rights reserved.

package comment

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

// Service orchestrates comment operations under the same ownership policy
// as reviews.
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

// List returns a page of a review's comments, oldest first. A missing
// parent review is NotFound.
func (service *Service) List(context context.Context, titleID, reviewID int64, params pagination.Params) ([]Comment, int, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}

	return service.repo.ListByReview(context, reviewID, params.Limit, params.Offset())
}

// Get returns one comment within its review's scope.
func (service *Service) Get(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	return service.repo.FindByID(context, reviewID, commentID)
}

// Create adds the caller's comment to a review.
func (service *Service) Create(context context.Context, titleID, reviewID int64, claims *sec.AuthClaims, text string) (*Comment, error) {
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.ensureReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ReviewID: reviewID,
		AuthorID: claims.UserID,
		Author:   claims.Username,
		Text:     text,
	}
	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.Int64("review_id", reviewID),
		slog.Int64("comment_id", comment.ID),
	)

	return comment, nil
}

// Update modifies a comment's text. Author-only, with a moderator/admin
// override.
func (service *Service) Update(context context.Context, titleID, reviewID, commentID int64, claims *sec.AuthClaims, text *string) (*Comment, error) {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !sec.AllowContent(http.MethodPatch, claims, comment.AuthorID) {
		return nil, service.denied(claims)
	}

	comment.Text = pointer.Fallback(text, comment.Text)

	validator := &validate.Validator{}
	validator.Required(FieldText, comment.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_updated", slog.Int64("comment_id", commentID))

	return comment, nil
}

// Delete removes a comment under the same ownership policy as Update.
func (service *Service) Delete(context context.Context, titleID, reviewID, commentID int64, claims *sec.AuthClaims) error {
	comment, err := service.Get(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !sec.AllowContent(http.MethodDelete, claims, comment.AuthorID) {
		return service.denied(claims)
	}

	if err := service.repo.Delete(context, reviewID, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.Int64("comment_id", commentID))

	return nil
}

// ensureReview turns a review missing under the title into NotFound.
func (service *Service) ensureReview(context context.Context, titleID, reviewID int64) error {
	exists, err := service.repo.ReviewExists(context, titleID, reviewID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Review")
	}
	return nil
}

func (service *Service) denied(claims *sec.AuthClaims) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return apperr.Forbidden("You do not have permission to modify this comment")
}
