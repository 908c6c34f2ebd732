package logger

import "context"

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID stamps the request correlation id onto the context so
// lower layers, SQL tracing in particular, can tag their entries with it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation id carried by the
// context, or an empty string when there is none.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
