package testutil

import (
	"net/http"

	"fieldhub/pkg/requestcontext"
)

// WithUser adds an authenticated user to the request context, simulating what
// the auth middleware does after validating a token.
func WithUser(req *http.Request, userID string, staff bool) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	ctx = requestcontext.WithStaff(ctx, staff)
	return req.WithContext(ctx)
}

// WithClientMetadata stamps the request context with a client IP and user
// agent, as the metadata middleware would.
func WithClientMetadata(req *http.Request, ip, userAgent string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, userAgent)
	return req.WithContext(ctx)
}

// WithRequestID adds a request ID to the request context.
func WithRequestID(req *http.Request, id string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), id)
	return req.WithContext(ctx)
}
