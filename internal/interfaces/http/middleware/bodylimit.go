package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrBodyTooLarge is the message returned with 413
const ErrBodyTooLarge = "request body too large"

type bodyRejection struct {
	status  int
	message string
}

// BodyLimitOption customizes BodyLimit
type BodyLimitOption func(map[string]bodyRejection)

// WithRouteRejection answers oversized requests on route (the gin full
// path, e.g. "/api/v1/reconciliations/:id/attachments") with status and
// message instead of 413.
func WithRouteRejection(route string, status int, message string) BodyLimitOption {
	return func(m map[string]bodyRejection) {
		m[route] = bodyRejection{status: status, message: message}
	}
}

// BodyLimit rejects requests whose declared length exceeds maxBytes and caps
// streamed bodies at the same size.
func BodyLimit(maxBytes int64, opts ...BodyLimitOption) gin.HandlerFunc {
	overrides := make(map[string]bodyRejection)
	for _, opt := range opts {
		opt(overrides)
	}

	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			rej, ok := overrides[c.FullPath()]
			if !ok {
				rej = bodyRejection{status: http.StatusRequestEntityTooLarge, message: ErrBodyTooLarge}
			}
			c.AbortWithStatusJSON(rej.status, gin.H{"error": rej.message})
			return
		}

		// Chunked uploads have no Content-Length; the reader fails once the cap is hit
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// IsBodyTooLarge reports whether err came from a capped request body
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
