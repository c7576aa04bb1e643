package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// DefaultListLimit caps activity listings when the caller doesn't ask for
// a specific page size.
const DefaultListLimit = 50

// ErrInvalidInput indicates an invalid activity entry.
var ErrInvalidInput = errors.New("invalid activity entry")

// Service handles activity log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record appends an activity entry, stamping the current time if missing.
// The audit trail is best-effort: callers on a success path ignore the
// returned error after the domain write has committed.
func (s *Service) Record(ctx context.Context, entry *Activity) error {
	if entry == nil || entry.ProjectID == "" || !entry.Type.Valid() {
		return ErrInvalidInput
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("appending activity: %w", err)
	}
	return nil
}

// List returns activity entries newest first, filtered by project and type.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Activity, error) {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	return s.repo.List(ctx, opts)
}

// DeleteForProject removes all entries for a project. It exists solely as
// the cascade for project deletion.
func (s *Service) DeleteForProject(ctx context.Context, projectID string) (int64, error) {
	if projectID == "" {
		return 0, ErrInvalidInput
	}
	removed, err := s.repo.DeleteForProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("deleting project activity: %w", err)
	}
	return removed, nil
}
