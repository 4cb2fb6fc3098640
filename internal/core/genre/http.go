// Copyright (c) 2026 Critica. All rights reserved.

package genre

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/critica-app/critica/internal/platform/middleware"
	requestutil "github.com/critica-app/critica/internal/platform/request"
	"github.com/critica-app/critica/internal/platform/respond"
	"github.com/critica-app/critica/internal/platform/sec"
	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/pkg/pagination"
)

// Handler implements the genre HTTP endpoints under /genres.
type Handler struct {
	service *Service
}

// NewHandler constructs a new genre [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the genre endpoints. Listing is public,
// writes require the admin role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.create)
		r.Delete("/{slug}", handler.delete)
	})

	return router
}

type createGenreRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

/*
GET /api/v1/genres.

Description: Lists genres with pagination and an optional case-insensitive
name search. Open to anonymous callers.

Request:
  - Query: q (optional name substring), page, limit

Response:
  - 200: []Genre + Meta: Paginated genre list
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("q")

	genres, total, err := handler.service.List(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, genres, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/genres.

Description: Adds a genre. The slug is derived from the name when omitted.

Request:
  - Body: createGenreRequest (Name required, Slug optional)

Response:
  - 201: Genre: Created genre
  - 400: ErrInvalidJSON: Validation failure
  - 403: ErrForbidden: Admin role required
  - 409: ErrConflict: Slug already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createGenreRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	genre, err := handler.service.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, genre)
}

/*
DELETE /api/v1/genres/{slug}.

Description: Removes a genre. Its title links go with it; the titles stay.

Response:
  - 204: No Content: Genre deleted
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown slug
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.Delete(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
