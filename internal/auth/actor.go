// Package auth carries the authenticated actor through request handling.
// Credential verification happens upstream; the domain trusts the actor it
// is handed.
package auth

import "context"

// Role is the actor's role in the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTeam   Role = "team"
	RoleClient Role = "client"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeam, RoleClient:
		return true
	}
	return false
}

// Actor identifies the authenticated caller. TeamID is set only for team
// members.
type Actor struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Role   Role   `json:"role"`
	TeamID string `json:"team_id,omitempty"`
}

type contextKey int

const actorKey contextKey = iota

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext extracts the actor from context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}
