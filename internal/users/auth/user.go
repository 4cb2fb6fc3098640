// Copyright (c) 2026 Critica. All rights reserved.

/*
Package auth implements the identity and credential lifecycle.

It covers the signup → confirmation code → access token exchange flow:
an identity is created (or re-confirmed) with an emailed one-time code,
and the code is later exchanged for a signed JWT.

# Architecture

  - Service: Orchestrates business logic (Signup, IssueToken, self profile).
  - Repository: Abstracted interfaces for Postgres (users) and Redis (guess limiter).
  - Security: Confirmation codes are bcrypt-hashed at rest; tokens are RSA-signed JWTs.
*/
package auth

import (
	"time"

	"github.com/critica-app/critica/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Critica platform.
type User struct {
	ID        int64        `json:"-"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`

	// ConfirmationHash is the bcrypt digest of the outstanding confirmation
	// code, nil when no code is outstanding. Never serialized.
	ConfirmationHash *string   `json:"-"`
	CreatedAt        time.Time `json:"-"`
}

// # Field Identifiers

// Global field names for validation in the identity domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldConfirmationCode = "confirmation_code"
)

// # Identity Constraints

const (
	// ReservedUsername is the username reserved for the self-lookup endpoint.
	ReservedUsername = "me"

	// MaxUsernameLen mirrors the column width of account.username.
	MaxUsernameLen = 150

	// MaxEmailLen mirrors the column width of account.email.
	MaxEmailLen = 255
)
