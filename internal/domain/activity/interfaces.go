package activity

import "context"

// Repository provides persistence operations for activity entries.
type Repository interface {
	Append(ctx context.Context, entry *Activity) error
	List(ctx context.Context, opts ListOptions) ([]Activity, error)
	DeleteForProject(ctx context.Context, projectID string) (int64, error)
}
