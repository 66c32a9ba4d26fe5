// Copyright (c) 2026 Kritika. All rights reserved.
// Author: m.kazankov.dev@gmail.com

package sec

import "net/http"

// # Permission Predicates
//
// Every endpoint policy in the API reduces to one of the three predicates
// below. They are pure functions of (actor, method, owner) with no transport
// or storage dependencies, so the full authorization matrix is unit-testable
// without HTTP.

// Actor is the identity a permission decision is made for.
//
// A nil *Actor means the request is anonymous.
type Actor struct {
	UserID   string
	Username string
	Role     UserRole
	Staff    bool
}

// ActorFromClaims builds an [Actor] from verified JWT claims.
// Returns nil for nil claims (anonymous request).
func ActorFromClaims(claims *AuthClaims) *Actor {
	if claims == nil {
		return nil
	}
	return &Actor{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     UserRole(claims.Role),
		Staff:    claims.Staff,
	}
}

// IsAdmin reports whether the actor has admin capability.
// The staff flag grants admin regardless of role.
func (a *Actor) IsAdmin() bool {
	return a != nil && (a.Role == RoleAdmin || a.Staff)
}

// IsModerator reports whether the actor holds the moderator role.
func (a *Actor) IsModerator() bool {
	return a != nil && a.Role == RoleModerator
}

// IsSafeMethod reports whether the HTTP method is read-only.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOrReadOnly gates the catalogue resources (categories, genres, titles):
// anyone may read, only admins may write.
func AdminOrReadOnly(actor *Actor, method string) bool {
	return IsSafeMethod(method) || actor.IsAdmin()
}

// AuthorModeratorAdminOrReadOnly gates reviews and comments.
//
// Evaluation order: safe methods always pass; any authenticated user may
// create; modifying an existing object additionally requires ownership,
// moderator, or admin.
//
// ownerID is the author of the target object, or "" for collection-level
// operations (create/list) where no object exists yet.
func AuthorModeratorAdminOrReadOnly(actor *Actor, method, ownerID string) bool {
	if IsSafeMethod(method) {
		return true
	}
	if actor == nil {
		return false
	}
	if ownerID == "" {
		return true
	}
	return actor.UserID == ownerID || actor.IsModerator() || actor.IsAdmin()
}

// AdminOnly gates user management: only authenticated admins pass,
// regardless of method.
func AdminOnly(actor *Actor) bool {
	return actor.IsAdmin()
}
