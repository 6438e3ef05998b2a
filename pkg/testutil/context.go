package testutil

import (
	"context"
	"net/http"

	"sgc/internal/platform/middleware"
)

// WithUser adds an authenticated caller to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithUser(req *http.Request, userID, username string, roles ...string) *http.Request {
	ctx := req.Context()
	if userID != "" {
		ctx = context.WithValue(ctx, middleware.ContextKeyUserID, userID)
	}
	if username != "" {
		ctx = context.WithValue(ctx, middleware.ContextKeyUsername, username)
	}
	if len(roles) > 0 {
		ctx = context.WithValue(ctx, middleware.ContextKeyRoles, roles)
	}
	return req.WithContext(ctx)
}

// WithRequestID adds a request ID to the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeyRequestID, requestID)
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
