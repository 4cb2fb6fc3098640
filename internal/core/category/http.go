// Copyright (c) 2026 Critica. All rights reserved.

package category

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

// Handler implements the category HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the category endpoints.
//
// Listing is public; writes require the admin role.
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

type createCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

/*
GET /api/v1/categories.

Description: Lists categories with pagination and an optional
case-insensitive name search. Open to anonymous callers.

Request:
  - Query: q (optional name substring), page, limit

Response:
  - 200: []Category + Meta: Paginated category list
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("q")

	categories, total, err := handler.service.List(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/categories.

Description: Adds a category. The slug is derived from the name when omitted.

Request:
  - Body: createCategoryRequest (Name required, Slug optional)

Response:
  - 201: Category: Created category
  - 400: ErrInvalidJSON: Validation failure
  - 403: ErrForbidden: Admin role required
  - 409: ErrConflict: Slug already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createCategoryRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	category, err := handler.service.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
DELETE /api/v1/categories/{slug}.

Description: Removes a category. Titles in it lose their category but stay
in the catalog.

Response:
  - 204: No Content: Category deleted
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
