package observability

import (
	"context"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID to the browser and on to the
// cycle backend.
const RequestIDHeader = "X-Request-ID"

type contextKey string

const RequestIDKey contextKey = "request_id"

func NewRequestID() string {
	return uuid.New().String()
}

// ValidRequestID reports whether id is a UUID this process would accept
// from a caller.
func ValidRequestID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
