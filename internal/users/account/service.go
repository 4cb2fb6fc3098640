// Copyright (c) 2026 Critica. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/critica-app/critica/internal/platform/sec"
	"github.com/critica-app/critica/internal/platform/validate"
	"github.com/critica-app/critica/internal/users/auth"
	"github.com/critica-app/critica/pkg/pagination"
	"github.com/critica-app/critica/pkg/pointer"
)

// # Service Layer

// Service orchestrates the administrative user management use cases.
//
// All operations here run on behalf of an administrator; the caller's role
// has already been checked by the routing layer.
type Service struct {
	accounts AccountRepository
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accounts AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		logger:   logger,
	}
}

// # Listing & Lookup

// List returns a page of accounts matching the optional username search.
func (service *Service) List(context context.Context, search string, params pagination.Params) ([]auth.User, int, error) {
	users, total, err := service.accounts.List(context, ListFilter{
		Search: search,
		Limit:  params.Limit,
		Offset: params.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

// Get returns the account with the given username.
func (service *Service) Get(context context.Context, username string) (*auth.User, error) {
	return service.accounts.FindByUsername(context, username)
}

// # Provisioning

// CreateInput holds the fields an administrator supplies when provisioning
// an account directly. No confirmation code is involved; the user can still
// run the signup flow later to obtain one.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

// Create provisions a new account with an administrator-assigned role.
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	role := sec.UserRole(input.Role)
	if input.Role == "" {
		role = sec.RoleUser
	}

	validator := &validate.Validator{}
	validator.
		Required(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLen).
		Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.MaxEmailLen).
		Custom(auth.FieldUsername, input.Username == auth.ReservedUsername,
			fmt.Sprintf("Username %q is reserved", auth.ReservedUsername)).
		Custom(auth.FieldRole, !role.Valid(), "Role must be one of: user, moderator, admin")

	if input.Username != "" {
		validator.Username(auth.FieldUsername, input.Username)
	}
	if input.Email != "" {
		validator.Email(auth.FieldEmail, input.Email)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &auth.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
	}

	if err := service.accounts.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("admin_user_created",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// # Modification

// Patch holds the optional fields of an administrative partial update.
// Unlike the self-service path, the role is assignable here.
type Patch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

// Update applies a partial update to the account with the given username.
func (service *Service) Update(context context.Context, username string, patch Patch) (*auth.User, error) {
	user, err := service.accounts.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	user.Username = pointer.Fallback(patch.Username, user.Username)
	user.Email = pointer.Fallback(patch.Email, user.Email)
	user.FirstName = pointer.Fallback(patch.FirstName, user.FirstName)
	user.LastName = pointer.Fallback(patch.LastName, user.LastName)
	user.Bio = pointer.Fallback(patch.Bio, user.Bio)
	if patch.Role != nil {
		user.Role = sec.UserRole(*patch.Role)
	}

	validator := &validate.Validator{}
	validator.
		Required(auth.FieldUsername, user.Username).
		MaxLen(auth.FieldUsername, user.Username, auth.MaxUsernameLen).
		Username(auth.FieldUsername, user.Username).
		Custom(auth.FieldUsername, user.Username == auth.ReservedUsername,
			fmt.Sprintf("Username %q is reserved", auth.ReservedUsername)).
		Required(auth.FieldEmail, user.Email).
		MaxLen(auth.FieldEmail, user.Email, auth.MaxEmailLen).
		Email(auth.FieldEmail, user.Email).
		Custom(auth.FieldRole, !user.Role.Valid(), "Role must be one of: user, moderator, admin")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.accounts.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("admin_user_updated", slog.String("username", user.Username))

	return user, nil
}

// Delete removes the account with the given username. Authored reviews and
// comments go with it through the schema's cascades.
func (service *Service) Delete(context context.Context, username string) error {
	if err := service.accounts.Delete(context, username); err != nil {
		return err
	}

	service.logger.Warn("admin_user_deleted", slog.String("username", username))

	return nil
}
