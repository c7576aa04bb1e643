package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/repository"
)

// Service handles project directory operations. It never touches the three
// score fields; those belong to the submission aggregator.
type Service struct {
	repo       Repository
	activities ActivityRepository
	logger     *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, activities ActivityRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, activities: activities, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	TeamID      string
	ClientID    string
	Status      Status
}

// Create creates a new project with default scores and records a
// status_change activity for it. Admin only.
func (s *Service) Create(ctx context.Context, actor auth.Actor, req CreateRequest) (*Project, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, ErrAccessDenied
	}
	if strings.TrimSpace(req.Name) == "" || req.TeamID == "" || req.ClientID == "" {
		return nil, ErrInvalidInput
	}

	status := req.Status
	if status == "" {
		status = StatusPlanning
	}
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	now := time.Now()
	proj := &Project{
		ID:                       uuid.NewString(),
		Name:                     req.Name,
		Description:              req.Description,
		StartDate:                req.StartDate,
		EndDate:                  req.EndDate,
		TeamID:                   req.TeamID,
		ClientID:                 req.ClientID,
		Status:                   status,
		DeliveryReliabilityScore: DefaultReliabilityScore,
		ClientHappinessIndex:     DefaultHappinessIndex,
		TeamLoadRisk:             RiskLow,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.record(ctx, &activity.Activity{
		ProjectID:   proj.ID,
		Type:        activity.TypeStatusChange,
		ActorID:     actor.ID,
		ActorRole:   actor.Role,
		Description: fmt.Sprintf("Project %q created", proj.Name),
		Metadata:    map[string]any{"status": string(proj.Status)},
	})

	return proj, nil
}

// Get fetches a project, enforcing role-scoped access: team members only
// see their team's projects, clients only their own.
func (s *Service) Get(ctx context.Context, actor auth.Actor, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	switch actor.Role {
	case auth.RoleAdmin:
	case auth.RoleTeam:
		if actor.TeamID != proj.TeamID {
			return nil, ErrAccessDenied
		}
	case auth.RoleClient:
		if actor.ID != proj.ClientID {
			return nil, ErrAccessDenied
		}
	default:
		return nil, ErrAccessDenied
	}

	return proj, nil
}

// List returns the projects visible to the actor.
func (s *Service) List(ctx context.Context, actor auth.Actor) ([]Project, error) {
	opts := ListOptions{}
	switch actor.Role {
	case auth.RoleTeam:
		opts.TeamID = actor.TeamID
	case auth.RoleClient:
		opts.ClientID = actor.ID
	}
	return s.repo.List(ctx, opts)
}

// UpdateStatus moves a project to a new phase and records the transition.
// Admin only; scores are left untouched.
func (s *Service) UpdateStatus(ctx context.Context, actor auth.Actor, id string, status Status) (*Project, error) {
	if actor.Role != auth.RoleAdmin {
		return nil, ErrAccessDenied
	}
	if !status.Valid() {
		return nil, ErrInvalidInput
	}

	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}

	oldStatus := proj.Status
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("updating project status: %w", err)
	}
	proj.Status = status

	if status != oldStatus {
		s.record(ctx, &activity.Activity{
			ProjectID:   proj.ID,
			Type:        activity.TypeStatusChange,
			ActorID:     actor.ID,
			ActorRole:   actor.Role,
			Description: fmt.Sprintf("Project status changed from %s to %s", oldStatus, status),
			Metadata:    map[string]any{"from": string(oldStatus), "to": string(status)},
		})
	}

	return proj, nil
}

// Delete removes a project and cascades its activity trail. Admin only.
// Reports and reviews are removed by the storage layer's cascade.
func (s *Service) Delete(ctx context.Context, actor auth.Actor, id string) error {
	if actor.Role != auth.RoleAdmin {
		return ErrAccessDenied
	}

	if _, err := s.repo.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("getting project: %w", err)
	}

	if _, err := s.activities.DeleteForProject(ctx, id); err != nil {
		return fmt.Errorf("cascading activity delete: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// record appends an audit entry; failures are logged, never propagated.
func (s *Service) record(ctx context.Context, entry *activity.Activity) {
	if s.activities == nil {
		return
	}
	entry.CreatedAt = time.Now()
	if err := s.activities.Append(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("activity append failed", "project_id", entry.ProjectID, "type", entry.Type, "error", err)
	}
}
