// Package ctxutil carries request-scoped values that every layer may read.
// It has no internal dependencies so it can be imported anywhere.
package ctxutil

import "context"

type actorKey struct{}

type requestIDKey struct{}

// WithActorID returns a context tagged with the acting user's id.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the acting user's id, or "" if unset.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID pins the id sent as X-Request-ID on outgoing calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the pinned request id, or "" if unset.
func RequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}
