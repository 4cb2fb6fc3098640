// Copyright (c) 2026 Critica. All rights reserved.

/*
Package account provides administrative user management.

It implements the /users surface: paginated listing with username search,
direct provisioning with an assigned role, per-username lookup, partial
updates (including role changes), and deletion. The /users/me pair is the
one non-administrative exception and delegates to the identity service.

# Security

Every endpoint except /users/me requires the admin role, enforced by the
routing layer.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/critica-app/critica/internal/platform/middleware"
	requestutil "github.com/critica-app/critica/internal/platform/request"
	"github.com/critica-app/critica/internal/platform/respond"
	"github.com/critica-app/critica/internal/platform/sec"
	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/internal/users/auth"
	"github.com/critica-app/critica/pkg/pagination"
)

// Handler implements the administrative user management HTTP endpoints.
type Handler struct {
	accountService *Service
	authService    *auth.Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(accountService *Service, authService *auth.Service) *Handler {
	return &Handler{
		accountService: accountService,
		authService:    authService,
	}
}

// Routes returns a [chi.Router] configured with the user management endpoints.
//
// The static /me pair is registered before the {username} wildcard so the
// reserved username never reaches the admin lookups.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service profile, any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
	})

	// Administrative user management
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(sec.RoleAdmin))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Delete("/{username}", handler.delete)
	})

	return router
}

// # Request Payloads

type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type updateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// updateMeRequest mirrors updateUserRequest without the role field; a role
// change cannot be expressed on the self-service path.
type updateMeRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
}

// # Self Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the authenticated caller's own profile.

Response:
  - 200: User: Fully hydrated profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.GetSelf(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the caller's own profile. A "role"
key in the payload is ignored rather than rejected.

Request:
  - Body: updateMeRequest (partial JSON)

Response:
  - 200: User: The updated profile
  - 400: ErrInvalidJSON: Invalid input data
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.UpdateSelf(request.Context(), claims.UserID, auth.SelfPatch{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Administrative Endpoints

/*
GET /api/v1/users.

Description: Lists accounts with pagination and an optional case-insensitive
username search.

Request:
  - Query: q (optional username substring), page, limit

Response:
  - 200: []User + Meta: Paginated account list
  - 403: ErrForbidden: Admin role required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	search := request.URL.Query().Get("q")

	users, total, err := handler.accountService.List(request.Context(), search, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
POST /api/v1/users.

Description: Provisions an account directly with an assigned role. No
confirmation email is involved.

Request:
  - Body: createUserRequest (Username, Email required; Role defaults to "user")

Response:
  - 201: User: Created account
  - 400: ErrInvalidJSON: Validation failure or unknown role
  - 403: ErrForbidden: Admin role required
  - 409: ErrConflict: Username or email already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Create(request.Context(), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/users/{username}.

Description: Retrieves a single account by username.

Response:
  - 200: User: The account
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.Get(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/{username}.

Description: Applies a partial update to an account, including role changes.

Request:
  - Body: updateUserRequest (partial JSON)

Response:
  - 200: User: The updated account
  - 400: ErrInvalidJSON: Validation failure or unknown role
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Update(request.Context(), username, Patch{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{username}.

Description: Removes an account. Authored reviews and comments are removed
by the schema's cascades.

Response:
  - 204: No Content: Account deleted
  - 403: ErrForbidden: Admin role required
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
