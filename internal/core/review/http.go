// Copyright (c) 2026 Critica. All rights reserved.

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/critica-app/critica/internal/platform/middleware"
	requestutil "github.com/critica-app/critica/internal/platform/request"
	"github.com/critica-app/critica/internal/platform/respond"
	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/pkg/pagination"
)

// Handler implements the review HTTP endpoints, mounted under
// /titles/{titleID}/reviews.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the review endpoints. The titleID
// parameter comes from the parent mount.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{reviewID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{reviewID}", handler.update)
		r.Delete("/{reviewID}", handler.delete)
	})

	return router
}

// # Request Payloads

type createReviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

/*
GET /api/v1/titles/{titleID}/reviews.

Description: Lists a title's reviews, newest first. Open to anonymous
callers; a missing title is 404, not an empty page.

Response:
  - 200: []Review + Meta: Paginated review list
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntID(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	reviews, total, err := handler.service.List(request.Context(), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/titles/{titleID}/reviews/{reviewID}.

Description: Retrieves one review within its title's scope.

Response:
  - 200: Review: The review
  - 404: ErrNotFound: Unknown title or review, or a review of another title
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
POST /api/v1/titles/{titleID}/reviews.

Description: Adds the caller's review of the title.

Request:
  - Body: createReviewRequest (Text required, Score 0..10)

Response:
  - 201: Review: Created review
  - 400: ErrInvalidJSON: Validation failure (score out of range)
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown title
  - 409: ErrConflict: Caller already reviewed this title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntID(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.Create(request.Context(), titleID, requestutil.Claims(request), CreateInput{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

/*
PATCH /api/v1/titles/{titleID}/reviews/{reviewID}.

Description: Modifies a review's text and score. Author-only, with a
moderator/admin override.

Request:
  - Body: updateReviewRequest (partial JSON)

Response:
  - 200: Review: The updated review
  - 400: ErrInvalidJSON: Validation failure
  - 403: ErrForbidden: Caller is neither author nor moderator
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateReviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	review, err := handler.service.Update(request.Context(), titleID, reviewID, requestutil.Claims(request), Patch{
		Text:  input.Text,
		Score: input.Score,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

/*
DELETE /api/v1/titles/{titleID}/reviews/{reviewID}.

Description: Removes a review and its comments. Author-only, with a
moderator/admin override.

Response:
  - 204: No Content: Review deleted
  - 403: ErrForbidden: Caller is neither author nor moderator
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID, reviewID, requestutil.Claims(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// pathIDs extracts the title and review identifiers from the route.
func pathIDs(request *http.Request) (int64, int64, error) {
	titleID, err := requestutil.IntID(request, "titleID", "Title")
	if err != nil {
		return 0, 0, err
	}

	reviewID, err := requestutil.IntID(request, "reviewID", "Review")
	if err != nil {
		return 0, 0, err
	}

	return titleID, reviewID, nil
}
