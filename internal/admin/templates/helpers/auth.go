package helpers

import (
	"context"

	"adflow.dev/adflow-admin/internal/admin/httpserver/middleware"
)

// HasAnyRole reports whether the authenticated user has any of the provided
// roles. No roles means the action is unconstrained.
func HasAnyRole(ctx context.Context, roles ...string) bool {
	if len(roles) == 0 {
		return true
	}
	user, ok := middleware.UserFromContext(ctx)
	if !ok || user == nil {
		return false
	}
	for _, role := range roles {
		if user.HasRole(role) {
			return true
		}
	}
	return false
}

// UserEmail returns the signed-in email address, or empty when anonymous.
func UserEmail(ctx context.Context) string {
	user, ok := middleware.UserFromContext(ctx)
	if !ok || user == nil {
		return ""
	}
	return user.Email
}
