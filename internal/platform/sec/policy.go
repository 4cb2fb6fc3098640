// Copyright (c) 2026 Critica. All rights reserved.

package sec

import "net/http"

// # Access Policy
//
// Access decisions are made by two composable functions instead of scattered
// per-endpoint checks. Services pass the caller's claims and, where relevant,
// the resource author's identity explicitly — there is no ambient request state.

// IsSafeMethod reports whether the HTTP method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AllowCatalog decides access to catalog resources (categories, genres, titles).
//
// Safe methods are open to everyone, including anonymous callers. Writes are
// restricted to admins.
func AllowCatalog(method string, claims *AuthClaims) bool {
	if IsSafeMethod(method) {
		return true
	}
	if claims == nil {
		return false
	}
	return UserRole(claims.Role).AtLeast(RoleAdmin)
}

// AllowContent decides access to community content (reviews, comments).
//
// Safe methods are open to everyone. Creating requires authentication.
// Modifying requires ownership, unless the caller is at least a moderator.
func AllowContent(method string, claims *AuthClaims, authorID int64) bool {
	if IsSafeMethod(method) {
		return true
	}
	if claims == nil {
		return false
	}
	if UserRole(claims.Role).AtLeast(RoleModerator) {
		return true
	}
	return claims.UserID == authorID
}
