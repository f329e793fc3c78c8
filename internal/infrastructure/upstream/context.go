package upstream

import "context"

type ctxKey string

const (
	// AuthorizationKey is the context key for the caller's Authorization header
	AuthorizationKey ctxKey = "authorization"
	// RequestIDKey is the context key for the request id forwarded upstream
	RequestIDKey ctxKey = "request_id"
)

// WithAuthorization adds the caller's Authorization header value to context
func WithAuthorization(ctx context.Context, authorization string) context.Context {
	return context.WithValue(ctx, AuthorizationKey, authorization)
}

// Authorization extracts the forwarded Authorization header value
func Authorization(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(AuthorizationKey).(string)
	return v, ok && v != ""
}

// WithRequestID adds the request id to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestID extracts the request id
func RequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(RequestIDKey).(string)
	return v, ok && v != ""
}
