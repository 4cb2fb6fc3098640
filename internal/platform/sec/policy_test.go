// Copyright (c) 2026 Critica. All rights reserved.

package sec_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/critica-app/critica/internal/platform/sec"
)

/*
TestUserRole_AtLeast verifies the role hierarchy ordering.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{"admin_over_moderator", sec.RoleAdmin, sec.RoleModerator, true},
		{"admin_over_user", sec.RoleAdmin, sec.RoleUser, true},
		{"moderator_over_user", sec.RoleModerator, sec.RoleUser, true},
		{"moderator_not_admin", sec.RoleModerator, sec.RoleAdmin, false},
		{"user_not_moderator", sec.RoleUser, sec.RoleModerator, false},
		{"same_level", sec.RoleModerator, sec.RoleModerator, true},
		{"unknown_role_below_all", sec.UserRole("owner"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestUserRole_Valid verifies that only the three known roles are accepted.
*/
func TestUserRole_Valid(t *testing.T) {
	assert.True(t, sec.RoleUser.Valid())
	assert.True(t, sec.RoleModerator.Valid())
	assert.True(t, sec.RoleAdmin.Valid())
	assert.False(t, sec.UserRole("superuser").Valid())
	assert.False(t, sec.UserRole("").Valid())
}

/*
TestAllowCatalog verifies the catalog access matrix: reads are open to
everyone, writes require the admin role.
*/
func TestAllowCatalog(t *testing.T) {
	admin := &sec.AuthClaims{UserID: 1, Role: "admin"}
	moderator := &sec.AuthClaims{UserID: 2, Role: "moderator"}
	user := &sec.AuthClaims{UserID: 3, Role: "user"}

	tests := []struct {
		name   string
		method string
		claims *sec.AuthClaims
		want   bool
	}{
		{"anonymous_read", http.MethodGet, nil, true},
		{"user_read", http.MethodGet, user, true},
		{"anonymous_write", http.MethodPost, nil, false},
		{"user_write", http.MethodPost, user, false},
		{"moderator_write", http.MethodPost, moderator, false},
		{"admin_write", http.MethodPost, admin, true},
		{"admin_delete", http.MethodDelete, admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.AllowCatalog(tt.method, tt.claims))
		})
	}
}

/*
TestAllowContent verifies the content access matrix: authors modify their
own material, moderators and admins modify anything, others are denied.
*/
func TestAllowContent(t *testing.T) {
	const authorID = int64(42)

	author := &sec.AuthClaims{UserID: authorID, Role: "user"}
	stranger := &sec.AuthClaims{UserID: 7, Role: "user"}
	moderator := &sec.AuthClaims{UserID: 8, Role: "moderator"}
	admin := &sec.AuthClaims{UserID: 9, Role: "admin"}

	tests := []struct {
		name   string
		method string
		claims *sec.AuthClaims
		want   bool
	}{
		{"anonymous_read", http.MethodGet, nil, true},
		{"anonymous_write", http.MethodPatch, nil, false},
		{"author_edits_own", http.MethodPatch, author, true},
		{"author_deletes_own", http.MethodDelete, author, true},
		{"stranger_denied", http.MethodPatch, stranger, false},
		{"moderator_override", http.MethodDelete, moderator, true},
		{"admin_override", http.MethodPatch, admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.AllowContent(tt.method, tt.claims, authorID))
		})
	}
}

/*
TestConfirmationCode_RoundTrip verifies generate → hash → check.
*/
func TestConfirmationCode_RoundTrip(t *testing.T) {
	code, err := sec.GenerateConfirmationCode()
	assert.NoError(t, err)
	assert.Len(t, code, sec.ConfirmationCodeLength*2) // hex encoding

	hash, err := sec.HashConfirmationCode(code)
	assert.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, sec.CheckConfirmationCode(code, hash))
	assert.False(t, sec.CheckConfirmationCode("wrong-code", hash))
}
