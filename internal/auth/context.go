package auth

import (
	"context"

	"github.com/google/uuid"
)

// Actor is the authenticated caller, carried in the request context for audit
// attribution. Authentication itself is external; we only verify the token.
type Actor struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

type contextKey string

const actorKey contextKey = "actor"

func WithActor(ctx context.Context, a *Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

func ActorFromContext(ctx context.Context) *Actor {
	a, _ := ctx.Value(actorKey).(*Actor)
	return a
}

// UserIDFromContext returns the acting user's ID, or nil when the request is
// unauthenticated (health probes, worker-originated calls).
func UserIDFromContext(ctx context.Context) *uuid.UUID {
	if a := ActorFromContext(ctx); a != nil {
		id := a.UserID
		return &id
	}
	return nil
}
