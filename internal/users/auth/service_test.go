// Copyright (c) 2026 Critica. All rights reserved.

package auth_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/critica-app/critica/internal/platform/apperr"
	"github.com/critica-app/critica/internal/platform/constants"
	"github.com/critica-app/critica/internal/platform/sec"
	"github.com/critica-app/critica/internal/users/auth"
)

// # Fakes

type fakeUserRepository struct {
	usersByName  map[string]*auth.User
	usersByEmail map[string]*auth.User
	usersByID    map[int64]*auth.User

	created     []*auth.User
	updatedHash map[int64]string
	clearedIDs  []int64
	nextID      int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		usersByName:  map[string]*auth.User{},
		usersByEmail: map[string]*auth.User{},
		usersByID:    map[int64]*auth.User{},
		updatedHash:  map[int64]string{},
		nextID:       1,
	}
}

func (f *fakeUserRepository) add(user *auth.User) *auth.User {
	if user.ID == 0 {
		user.ID = f.nextID
		f.nextID++
	}
	f.usersByName[user.Username] = user
	f.usersByEmail[user.Email] = user
	f.usersByID[user.ID] = user
	return user
}

func (f *fakeUserRepository) FindByID(_ context.Context, id int64) (*auth.User, error) {
	if user, ok := f.usersByID[id]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	if user, ok := f.usersByName[username]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if user, ok := f.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, apperr.NotFound("User")
}

func (f *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	f.add(user)
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserRepository) UpdateConfirmationHash(_ context.Context, userID int64, hash string) error {
	f.updatedHash[userID] = hash
	return nil
}

func (f *fakeUserRepository) ClearConfirmationHash(_ context.Context, userID int64) error {
	f.clearedIDs = append(f.clearedIDs, userID)
	if user, ok := f.usersByID[userID]; ok {
		user.ConfirmationHash = nil
	}
	return nil
}

func (f *fakeUserRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	f.add(user)
	return nil
}

type fakeThrottle struct {
	failures map[string]int64
	cleared  []string
}

func newFakeThrottle() *fakeThrottle {
	return &fakeThrottle{failures: map[string]int64{}}
}

func (f *fakeThrottle) FailureCount(_ context.Context, username string) (int64, error) {
	return f.failures[username], nil
}

func (f *fakeThrottle) RegisterFailure(_ context.Context, username string, _ time.Duration) (int64, error) {
	f.failures[username]++
	return f.failures[username], nil
}

func (f *fakeThrottle) ClearFailures(_ context.Context, username string) error {
	delete(f.failures, username)
	f.cleared = append(f.cleared, username)
	return nil
}

type fakeTokenProvider struct {
	issuedFor []int64
}

func (f *fakeTokenProvider) GenerateAccessToken(userID int64, _, _ string) (string, error) {
	f.issuedFor = append(f.issuedFor, userID)
	return "signed-token", nil
}

type fakeMailer struct {
	sent []sentMail
	fail error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fixture struct {
	service  *auth.Service
	users    *fakeUserRepository
	throttle *fakeThrottle
	tokens   *fakeTokenProvider
	mailer   *fakeMailer
}

func newFixture() *fixture {
	users := newFakeUserRepository()
	throttle := newFakeThrottle()
	tokens := &fakeTokenProvider{}
	mailer := &fakeMailer{}

	return &fixture{
		service:  auth.NewService(users, throttle, tokens, mailer, slog.New(slog.DiscardHandler)),
		users:    users,
		throttle: throttle,
		tokens:   tokens,
		mailer:   mailer,
	}
}

// # Signup

/*
TestService_Signup_CreatesNewUser verifies the fresh-identity path: a new
account row with the "user" role, a hashed code at rest, and one email.
*/
func TestService_Signup_CreatesNewUser(t *testing.T) {
	fx := newFixture()

	user, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Email:    "reader@example.com",
		Username: "reader",
	})
	require.NoError(t, err)

	assert.Equal(t, "reader", user.Username)
	assert.Equal(t, sec.RoleUser, user.Role)
	require.NotNil(t, user.ConfirmationHash)

	require.Len(t, fx.users.created, 1)
	require.Len(t, fx.mailer.sent, 1)
	assert.Equal(t, "reader@example.com", fx.mailer.sent[0].to)
	// The raw code travels only by email, never in the stored hash.
	assert.NotContains(t, fx.mailer.sent[0].body, *user.ConfirmationHash)
}

/*
TestService_Signup_ReissuesForSamePair verifies that a username/email pair
matching one existing account replaces the code instead of creating a row.
*/
func TestService_Signup_ReissuesForSamePair(t *testing.T) {
	fx := newFixture()
	existing := fx.users.add(&auth.User{
		Username: "reader",
		Email:    "reader@example.com",
		Role:     sec.RoleUser,
	})

	user, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Email:    "reader@example.com",
		Username: "reader",
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, user.ID)
	assert.Empty(t, fx.users.created)
	assert.Contains(t, fx.users.updatedHash, existing.ID)
	require.Len(t, fx.mailer.sent, 1)
}

/*
TestService_Signup_PartialMatchConflicts verifies that a pair colliding with
an existing account on only one side is rejected as a conflict.
*/
func TestService_Signup_PartialMatchConflicts(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"username_taken", "reader", "other@example.com"},
		{"email_taken", "other", "reader@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()
			fx.users.add(&auth.User{Username: "reader", Email: "reader@example.com"})

			_, err := fx.service.Signup(context.Background(), auth.SignupInput{
				Email:    tt.email,
				Username: tt.username,
			})

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "CONFLICT", ae.Code)
			assert.Empty(t, fx.mailer.sent)
		})
	}
}

/*
TestService_Signup_RejectsReservedUsername verifies the reserved "me" username
fails validation before any lookup happens.
*/
func TestService_Signup_RejectsReservedUsername(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Email:    "me@example.com",
		Username: auth.ReservedUsername,
	})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Empty(t, fx.mailer.sent)
}

/*
TestService_Signup_ValidatesInput covers the field-level rejection cases.
*/
func TestService_Signup_ValidatesInput(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"missing_email", "reader", ""},
		{"missing_username", "", "reader@example.com"},
		{"malformed_email", "reader", "not-an-email"},
		{"bad_username_chars", "rea der!", "reader@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()

			_, err := fx.service.Signup(context.Background(), auth.SignupInput{
				Email:    tt.email,
				Username: tt.username,
			})

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_Signup_ReissuesBackToBack verifies that two immediate signups for
the same pair both succeed, each regenerating the code. There is no per-identity
cooldown on signup.
*/
func TestService_Signup_ReissuesBackToBack(t *testing.T) {
	fx := newFixture()
	input := auth.SignupInput{Email: "reader@example.com", Username: "reader"}

	first, err := fx.service.Signup(context.Background(), input)
	require.NoError(t, err)

	second, err := fx.service.Signup(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, fx.users.created, 1)
	require.Len(t, fx.mailer.sent, 2)

	// Each attempt carries a fresh code and replaces the stored hash.
	assert.NotEqual(t,
		extractCode(t, fx.mailer.sent[0].body),
		extractCode(t, fx.mailer.sent[1].body),
	)
	assert.Contains(t, fx.users.updatedHash, first.ID)
}

/*
TestService_Signup_EmailFailurePropagates verifies a delivery failure fails
the whole signup instead of leaving a code the caller never received.
*/
func TestService_Signup_EmailFailurePropagates(t *testing.T) {
	fx := newFixture()
	fx.mailer.fail = assert.AnError

	_, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Email:    "reader@example.com",
		Username: "reader",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// # Token Exchange

func signupAndGrabCode(t *testing.T, fx *fixture, username, email string) string {
	t.Helper()

	_, err := fx.service.Signup(context.Background(), auth.SignupInput{
		Email:    email,
		Username: username,
	})
	require.NoError(t, err)
	require.NotEmpty(t, fx.mailer.sent)

	body := fx.mailer.sent[len(fx.mailer.sent)-1].body
	return extractCode(t, body)
}

// extractCode pulls the hex code out of the confirmation email body.
func extractCode(t *testing.T, body string) string {
	t.Helper()

	const marker = "Your confirmation code is: "
	start := strings.Index(body, marker)
	require.GreaterOrEqual(t, start, 0, "email body should contain the code marker")

	code := body[start+len(marker):]
	if newline := strings.IndexByte(code, '\n'); newline >= 0 {
		code = code[:newline]
	}
	return code
}

/*
TestService_IssueToken_Success verifies the happy path: a valid code yields a
token and the code is cleared (single use).
*/
func TestService_IssueToken_Success(t *testing.T) {
	fx := newFixture()
	code := signupAndGrabCode(t, fx, "reader", "reader@example.com")

	token, err := fx.service.IssueToken(context.Background(), "reader", code)
	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	require.Len(t, fx.users.clearedIDs, 1)
	assert.Contains(t, fx.throttle.cleared, "reader")

	// Second exchange with the same code fails: the hash is gone.
	_, err = fx.service.IssueToken(context.Background(), "reader", code)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestService_IssueToken_UnknownUsername verifies an unknown username surfaces
as NotFound, not as a generic validation error.
*/
func TestService_IssueToken_UnknownUsername(t *testing.T) {
	fx := newFixture()

	_, err := fx.service.IssueToken(context.Background(), "ghost", "deadbeef")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_IssueToken_WrongCode verifies a code mismatch is a validation
error and leaves the stored hash intact.
*/
func TestService_IssueToken_WrongCode(t *testing.T) {
	fx := newFixture()
	signupAndGrabCode(t, fx, "reader", "reader@example.com")

	_, err := fx.service.IssueToken(context.Background(), "reader", "0000000000000000")

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Empty(t, fx.users.clearedIDs)
	assert.Empty(t, fx.tokens.issuedFor)
}

/*
TestService_IssueToken_ThrottlesGuessing verifies that the failed-attempt
budget exhausts into a rate-limited answer, even for the right code.
*/
func TestService_IssueToken_ThrottlesGuessing(t *testing.T) {
	fx := newFixture()
	code := signupAndGrabCode(t, fx, "reader", "reader@example.com")

	for attempt := 0; attempt < constants.MaxConfirmationAttempts; attempt++ {
		_, err := fx.service.IssueToken(context.Background(), "reader", "0000000000000000")
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	}

	// The budget is spent; the genuine code no longer helps inside the window.
	_, err := fx.service.IssueToken(context.Background(), "reader", code)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "RATE_LIMITED", ae.Code)
	assert.Empty(t, fx.tokens.issuedFor)
}

// # Self Profile

/*
TestService_UpdateSelf_IgnoresRole verifies the self-service patch cannot
touch the role and applies only the provided fields.
*/
func TestService_UpdateSelf_IgnoresRole(t *testing.T) {
	fx := newFixture()
	user := fx.users.add(&auth.User{
		Username: "reader",
		Email:    "reader@example.com",
		Role:     sec.RoleUser,
	})

	bio := "I review things."
	updated, err := fx.service.UpdateSelf(context.Background(), user.ID, auth.SelfPatch{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "I review things.", updated.Bio)
	assert.Equal(t, "reader", updated.Username)
	assert.Equal(t, sec.RoleUser, updated.Role)
}

/*
TestService_UpdateSelf_RejectsReservedUsername verifies the reserved username
cannot be claimed through the profile patch either.
*/
func TestService_UpdateSelf_RejectsReservedUsername(t *testing.T) {
	fx := newFixture()
	user := fx.users.add(&auth.User{
		Username: "reader",
		Email:    "reader@example.com",
		Role:     sec.RoleUser,
	})

	reserved := auth.ReservedUsername
	_, err := fx.service.UpdateSelf(context.Background(), user.ID, auth.SelfPatch{Username: &reserved})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}
