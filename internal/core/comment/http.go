// Copyright (c) 2026 Critica. All rights reserved.

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/critica-app/critica/internal/platform/middleware"
	requestutil "github.com/critica-app/critica/internal/platform/request"
	"github.com/critica-app/critica/internal/platform/respond"
	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/pkg/pagination"
)

// Handler implements the comment HTTP endpoints, mounted under
// /titles/{titleID}/reviews/{reviewID}/comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the comment endpoints. The titleID and
// reviewID parameters come from the parent mounts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{commentID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Patch("/{commentID}", handler.update)
		r.Delete("/{commentID}", handler.delete)
	})

	return router
}

type createCommentRequest struct {
	Text string `json:"text"`
}

type updateCommentRequest struct {
	Text *string `json:"text"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)

	comments, total, err := handler.service.List(request.Context(), titleID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Get(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.Create(request.Context(), titleID, reviewID, requestutil.Claims(request), input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	comment, err := handler.service.Update(request.Context(), titleID, reviewID, commentID, requestutil.Claims(request), input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, commentID, err := pathIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID, reviewID, commentID, requestutil.Claims(request)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// parentIDs extracts the title and review identifiers from the route.
func parentIDs(request *http.Request) (int64, int64, error) {
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

// pathIDs extracts all three identifiers from the route.
func pathIDs(request *http.Request) (int64, int64, int64, error) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		return 0, 0, 0, err
	}

	commentID, err := requestutil.IntID(request, "commentID", "Comment")
	if err != nil {
		return 0, 0, 0, err
	}

	return titleID, reviewID, commentID, nil
}
