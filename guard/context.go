package guard

import (
	"context"
	"net/http"
)

type actorKey struct{}

// ContextWithActor returns a context carrying the actor. Authentication
// middleware populates this slot; stages read it. Storing nil marks the
// actor as explicitly absent, which reads back exactly like a context that
// never carried one.
func ContextWithActor(ctx context.Context, actor any) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor stored in ctx and whether one is
// present.
func ActorFromContext(ctx context.Context) (any, bool) {
	actor := ctx.Value(actorKey{})
	if actor == nil {
		return nil, false
	}

	return actor, true
}

// WithActor returns a shallow copy of r whose context carries the actor.
func WithActor(r *http.Request, actor any) *http.Request {
	return r.WithContext(ContextWithActor(r.Context(), actor))
}

// ActorFromRequest returns the actor stored in the request context and
// whether one is present.
func ActorFromRequest(r *http.Request) (any, bool) {
	return ActorFromContext(r.Context())
}
