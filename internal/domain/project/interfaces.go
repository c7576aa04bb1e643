package project

import (
	"context"

	"github.com/rpggio/pulseboard/internal/domain/activity"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context, opts ListOptions) ([]Project, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateScores(ctx context.Context, id string, update ScoreUpdate) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepository records project lifecycle events.
type ActivityRepository interface {
	Append(ctx context.Context, entry *activity.Activity) error
	DeleteForProject(ctx context.Context, projectID string) (int64, error)
}
