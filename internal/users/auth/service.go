// Copyright (c) 2026 Critica. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/critica-app/critica/internal/mail"
	"github.com/critica-app/critica/internal/platform/apperr"
	"github.com/critica-app/critica/internal/platform/constants"
	"github.com/critica-app/critica/internal/platform/sec"
	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/pkg/pointer"
)

// # Contracts & Types

// TokenProvider defines the contract for producing signed access tokens.
//
// The token's lifetime is the provider's own policy; callers never override it.
type TokenProvider interface {
	GenerateAccessToken(userID int64, username, role string) (string, error)
}

// Service implements the identity and credential use cases.
type Service struct {
	users    UserRepository
	throttle ThrottleRepository
	tokens   TokenProvider
	mailer   mail.Sender
	logger   *slog.Logger
}

// NewService constructs the identity [Service] with its dependencies.
func NewService(
	users UserRepository,
	throttle ThrottleRepository,
	tokens TokenProvider,
	mailer mail.Sender,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:    users,
		throttle: throttle,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to enroll (or re-confirm) an identity.
type SignupInput struct {
	Email    string
	Username string
}

// Signup enrolls a new identity or re-issues a confirmation code for an
// existing one.
//
// # Identity Resolution
//
//   - Username AND email match the same existing account → re-issuance: a
//     fresh code replaces the outstanding one, no new row. Re-issuance is
//     never throttled; every repeated signup regenerates the code.
//   - Exactly one of the pair matches an account (or the two match different
//     accounts) → Conflict: the identity is ambiguous.
//   - Neither matches → a new unconfirmed account is created with role "user".
//
// The confirmation email is sent synchronously; a delivery failure fails the
// whole operation so the caller never holds a code that was not mailed.
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldEmail, input.Email).
		Required(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, MaxUsernameLen).
		MaxLen(FieldEmail, input.Email, MaxEmailLen)

	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}
	if input.Username != "" {
		validator.Username(FieldUsername, input.Username)
	}
	validator.Custom(FieldUsername, input.Username == ReservedUsername,
		fmt.Sprintf("Username %q is reserved", ReservedUsername))

	if err := validator.Err(); err != nil {
		return nil, err
	}

	userByName, err := findOrNil(service.users.FindByUsername(context, input.Username))
	if err != nil {
		return nil, err
	}

	userByEmail, err := findOrNil(service.users.FindByEmail(context, input.Email))
	if err != nil {
		return nil, err
	}

	isReissue := userByName != nil && userByEmail != nil && userByName.ID == userByEmail.ID
	if !isReissue && (userByName != nil || userByEmail != nil) {
		return nil, apperr.Conflict("A user with this username or email already exists")
	}

	code, err := sec.GenerateConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}

	codeHash, err := sec.HashConfirmationCode(code)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_hash_failed: %w", err)
	}

	var user *User
	if isReissue {
		user = userByName
		if err := service.users.UpdateConfirmationHash(context, user.ID, codeHash); err != nil {
			return nil, err
		}
	} else {
		user = &User{
			Username:         input.Username,
			Email:            input.Email,
			Role:             sec.RoleUser,
			ConfirmationHash: &codeHash,
		}
		// The unique constraints on username and email close the race between
		// the lookups above and this insert under concurrent signups.
		if err := service.users.Create(context, user); err != nil {
			return nil, err
		}
	}

	if err := service.mailer.Send(context, user.Email, signupEmailSubject, signupEmailBody(user.Username, code)); err != nil {
		return nil, fmt.Errorf("auth_service_code_email_failed: %w", err)
	}

	service.logger.Info("signup_code_issued",
		slog.String("username", user.Username),
		slog.Bool("reissue", isReissue),
	)

	return user, nil
}

// # Token Exchange

// IssueToken exchanges an outstanding confirmation code for a signed access token.
//
// The code is single-use: a successful exchange clears it. Guessing is
// bounded: after MaxConfirmationAttempts failed codes inside the window the
// endpoint answers RateLimited for the username, right code or wrong.
func (service *Service) IssueToken(context context.Context, username, code string) (string, error) {
	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, username).
		Required(FieldConfirmationCode, code)
	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		return "", err
	}

	failures, err := service.throttle.FailureCount(context, username)
	if err != nil {
		return "", err
	}
	if failures >= constants.MaxConfirmationAttempts {
		return "", apperr.RateLimited(int(constants.ConfirmationGuessWindow.Seconds()))
	}

	if user.ConfirmationHash == nil || !sec.CheckConfirmationCode(code, *user.ConfirmationHash) {
		failures, err := service.throttle.RegisterFailure(context, username, constants.ConfirmationGuessWindow)
		if err != nil {
			return "", err
		}
		if failures >= constants.MaxConfirmationAttempts {
			service.logger.Warn("token_guess_limit_reached", slog.String("username", username))
		}
		return "", validate.RequiredError(FieldConfirmationCode, "Confirmation code does not match")
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	if err := service.users.ClearConfirmationHash(context, user.ID); err != nil {
		return "", err
	}

	if err := service.throttle.ClearFailures(context, username); err != nil {
		service.logger.Warn("code_guess_reset_failed",
			slog.String("username", username),
			slog.Any("error", err),
		)
	}

	service.logger.Info("access_token_issued", slog.String("username", user.Username))

	return token, nil
}

// # Self Profile

// GetSelf returns the caller's own profile.
func (service *Service) GetSelf(context context.Context, userID int64) (*User, error) {
	return service.users.FindByID(context, userID)
}

// SelfPatch holds the optional self-service profile fields. A role change
// cannot be expressed here; the field simply does not exist on this path.
type SelfPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
}

// UpdateSelf applies a partial update to the caller's own profile.
func (service *Service) UpdateSelf(context context.Context, userID int64, patch SelfPatch) (*User, error) {
	user, err := service.users.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.Username = pointer.Fallback(patch.Username, user.Username)
	user.Email = pointer.Fallback(patch.Email, user.Email)
	user.FirstName = pointer.Fallback(patch.FirstName, user.FirstName)
	user.LastName = pointer.Fallback(patch.LastName, user.LastName)
	user.Bio = pointer.Fallback(patch.Bio, user.Bio)

	validator := &validate.Validator{}
	validator.
		Required(FieldUsername, user.Username).
		MaxLen(FieldUsername, user.Username, MaxUsernameLen).
		Username(FieldUsername, user.Username).
		Custom(FieldUsername, user.Username == ReservedUsername,
			fmt.Sprintf("Username %q is reserved", ReservedUsername)).
		Required(FieldEmail, user.Email).
		MaxLen(FieldEmail, user.Email, MaxEmailLen).
		Email(FieldEmail, user.Email).
		MaxLen(FieldFirstName, user.FirstName, 150).
		MaxLen(FieldLastName, user.LastName, 150)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.users.UpdateProfile(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("self_profile_updated", slog.Int64("user_id", userID))

	return user, nil
}

// findOrNil converts a NotFound lookup result into a nil user, keeping every
// other error.
func findOrNil(user *User, err error) (*User, error) {
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
