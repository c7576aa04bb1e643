package activity

import (
	"time"

	"github.com/rpggio/pulseboard/internal/auth"
)

// Type represents the kind of domain event recorded.
type Type string

const (
	TypeReport       Type = "report"
	TypeReview       Type = "review"
	TypeFlag         Type = "flag"
	TypeStatusChange Type = "status_change"
)

// Valid reports whether the type is one of the known event kinds.
func (t Type) Valid() bool {
	switch t {
	case TypeReport, TypeReview, TypeFlag, TypeStatusChange:
		return true
	}
	return false
}

// Activity is an append-only audit event tied to a project. Entries are
// never mutated; the only delete path is the cascade when the owning
// project is deleted.
type Activity struct {
	ID          int64          `json:"id"`
	ProjectID   string         `json:"project_id"`
	Type        Type           `json:"type"`
	ActorID     string         `json:"actor_id"`
	ActorRole   auth.Role      `json:"actor_role"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
