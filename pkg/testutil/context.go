package testutil

import (
	"net/http"

	"sangamsetu/pkg/domain"
	"sangamsetu/pkg/requestcontext"
)

// WithActor attaches an actor to the request context, simulating what the
// auth middleware does for authenticated requests.
func WithActor(req *http.Request, actor domain.Actor) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor))
}

// WithClientMetadata attaches client IP and User-Agent to the request
// context the way the metadata middleware does.
func WithClientMetadata(req *http.Request, clientIP, userAgent string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent))
}
