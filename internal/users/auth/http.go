// Copyright (c) 2026 Critica. All rights reserved.

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/critica-app/critica/internal/platform/request"
	"github.com/critica-app/critica/internal/platform/respond"
	"github.com/critica-app/critica/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the identity HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with the identity routes.
//
// # Endpoints
//   - POST /signup : Enrolls an identity and emails a confirmation code.
//   - POST /token  : Exchanges a confirmation code for an access token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/signup", handler.signup)
	router.Post("/token", handler.issueToken)

	return router
}

// # Request Payloads

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
Signup enrolls a new identity or re-issues a confirmation code.

POST /api/v1/auth/signup

Description: Validates the username/email pair, resolves it against existing
accounts, and emails a one-time confirmation code.

Request:
  - Body: signupRequest (Email, Username)

Response:
  - 200: {email, username}: Code issued (repeated calls re-issue a fresh code)
  - 400: ErrInvalidJSON: Bad input, reserved username, or validation failure
  - 409: ErrConflict: Username or email belongs to a different account
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Email:    input.Email,
		Username: input.Username,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Echoes the accepted pair back; the code itself travels only by email.
	respond.OK(writer, map[string]string{
		FieldEmail:    user.Email,
		FieldUsername: user.Username,
	})
}

/*
IssueToken exchanges a confirmation code for a signed access token.

POST /api/v1/auth/token

Description: Verifies the outstanding confirmation code for the username and
returns a JWT. The code is invalidated on success.

Request:
  - Body: tokenRequest (Username, ConfirmationCode)

Response:
  - 200: {token}: Signed access token
  - 400: ErrInvalidJSON: Missing fields or code mismatch
  - 404: ErrNotFound: Unknown username
  - 429: ErrRateLimited: Failed-attempt budget for the username is spent
*/
func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	token, err := handler.authService.IssueToken(request.Context(), input.Username, input.ConfirmationCode)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"token": token,
	})
}
