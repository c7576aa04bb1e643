package submission

import (
	"context"

	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/project"
)

// ReportRepository provides persistence for team reports.
type ReportRepository interface {
	Create(ctx context.Context, rep *TeamReport) error
	Get(ctx context.Context, id string) (*TeamReport, error)
	Exists(ctx context.Context, projectID string, year, weekNumber int) (bool, error)
	List(ctx context.Context, opts ListOptions) ([]TeamReport, error)
	ListForProject(ctx context.Context, projectID string, limit int) ([]TeamReport, error)
	ProjectIDsForWeek(ctx context.Context, year, weekNumber int) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// ReviewRepository provides persistence for client reviews.
type ReviewRepository interface {
	Create(ctx context.Context, rev *ClientReview) error
	Get(ctx context.Context, id string) (*ClientReview, error)
	Exists(ctx context.Context, projectID string, year, weekNumber int) (bool, error)
	List(ctx context.Context, opts ListOptions) ([]ClientReview, error)
	ListForProject(ctx context.Context, projectID string, limit int) ([]ClientReview, error)
	ProjectIDsForWeek(ctx context.Context, year, weekNumber int) ([]string, error)
	Delete(ctx context.Context, id string) error
}

// ProjectRepository provides the project reads and score writes the
// aggregator needs.
type ProjectRepository interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context, opts project.ListOptions) ([]project.Project, error)
	UpdateScores(ctx context.Context, id string, update project.ScoreUpdate) error
}

// ActivityRepository records submission events.
type ActivityRepository interface {
	Append(ctx context.Context, entry *activity.Activity) error
}
