// Copyright (c) 2026 Critica. All rights reserved.

package title

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/critica-app/critica/internal/platform/middleware"
	requestutil "github.com/critica-app/critica/internal/platform/request"
	"github.com/critica-app/critica/internal/platform/respond"
	"github.com/critica-app/critica/internal/platform/sec"
	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/pkg/pagination"
)

// Handler implements the catalog HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches the title endpoints to the given router. Reads are
// public; writes require the admin role. The nested review routes are
// mounted separately by the composition root.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/{titleID}", handler.get)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Post("/", handler.create)
		r.Patch("/{titleID}", handler.update)
		r.Delete("/{titleID}", handler.delete)
	})
}

// # Request Payloads

type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateTitleRequest struct {
	Name        *string  `json:"name"`
	Year        *int     `json:"year"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Genre       []string `json:"genre"`
}

/*
GET /api/v1/titles.

Description: Lists catalog titles with nested taxonomy and derived rating.
Open to anonymous callers.

Request:
  - Query: category (slug), genre (slug), name (substring), year (exact),
    page, limit

Response:
  - 200: []Title + Meta: Paginated title list
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := ListFilter{
		CategorySlug: query.Get("category"),
		GenreSlug:    query.Get("genre"),
		Name:         query.Get("name"),
	}

	if rawYear := query.Get("year"); rawYear != "" {
		year, err := strconv.Atoi(rawYear)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError(FieldYear, "Year filter must be a number"))
			return
		}
		filter.Year = &year
	}

	titles, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/titles/{titleID}.

Description: Retrieves a single title in the same shape as the listing.

Response:
  - 200: Title: The title
  - 404: ErrNotFound: Unknown or malformed ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntID(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), titleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
POST /api/v1/titles.

Description: Adds a title to the catalog. The category and genres are named
by slug; an unknown slug is NotFound.

Request:
  - Body: createTitleRequest (Name, Year, Category required)

Response:
  - 201: Title: Created title with nested taxonomy
  - 400: ErrInvalidJSON: Validation failure (e.g. year in the future)
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown category or genre slug
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	title, err := handler.service.Create(request.Context(), CreateInput{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

/*
PATCH /api/v1/titles/{titleID}.

Description: Applies a partial update. An omitted genre list keeps the
current links; an explicit empty list clears them.

Request:
  - Body: updateTitleRequest (partial JSON)

Response:
  - 200: Title: The updated title
  - 400: ErrInvalidJSON: Validation failure
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown title, category, or genre
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntID(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	title, err := handler.service.Update(request.Context(), titleID, Patch{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
		Category:    input.Category,
		Genres:      input.Genre,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

/*
DELETE /api/v1/titles/{titleID}.

Description: Removes a title. Its reviews and their comments cascade.

Response:
  - 204: No Content: Title deleted
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntID(request, "titleID", "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), titleID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
