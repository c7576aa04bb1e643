package submission

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/repository"
	"github.com/rpggio/pulseboard/internal/week"
)

// Service orchestrates weekly submissions: guard, persist, recompute the
// owning project's scores, append the audit entry.
type Service struct {
	reports    ReportRepository
	reviews    ReviewRepository
	projects   ProjectRepository
	activities ActivityRepository
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithNow overrides the clock used to stamp week identity.
func WithNow(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new submission service.
func NewService(
	reports ReportRepository,
	reviews ReviewRepository,
	projects ProjectRepository,
	activities ActivityRepository,
	logger *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		reports:    reports,
		reviews:    reviews,
		projects:   projects,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitTeamReport validates and stores a weekly team report, then
// recomputes the project's delivery reliability score and team load risk.
func (s *Service) SubmitTeamReport(ctx context.Context, actor auth.Actor, in TeamReportInput) (*TeamReport, error) {
	if err := ValidateTeamReportInput(in); err != nil {
		return nil, err
	}

	proj, err := s.loadProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if actor.Role != auth.RoleTeam || actor.TeamID == "" || actor.TeamID != proj.TeamID {
		return nil, ErrNotAssigned
	}

	year, weekNumber := week.Of(s.now())
	exists, err := s.reports.Exists(ctx, proj.ID, year, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("checking existing report: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	blockers := in.Blockers
	if blockers == nil {
		blockers = []string{}
	}
	rep := &TeamReport{
		ID:               uuid.NewString(),
		ProjectID:        proj.ID,
		SubmittedBy:      actor.ID,
		WeekNumber:       weekNumber,
		Year:             year,
		TasksCompleted:   in.TasksCompleted,
		TasksPending:     in.TasksPending,
		WorkloadLevel:    in.WorkloadLevel,
		OnTimeConfidence: in.OnTimeConfidence,
		Blockers:         blockers,
		CreatedAt:        s.now(),
	}

	// The storage-level uniqueness constraint is authoritative; a writer
	// racing past the check above fails here and gets the same outcome a
	// sequential duplicate would.
	if err := s.reports.Create(ctx, rep); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("creating team report: %w", err)
	}

	reliability := DeliveryReliability(rep)
	risk := TeamLoadRisk(rep)
	update := project.ScoreUpdate{
		DeliveryReliabilityScore: &reliability,
		TeamLoadRisk:             &risk,
	}
	if err := s.projects.UpdateScores(ctx, proj.ID, update); err != nil {
		return nil, fmt.Errorf("updating project scores: %w", err)
	}

	s.record(ctx, &activity.Activity{
		ProjectID:   proj.ID,
		Type:        activity.TypeReport,
		ActorID:     actor.ID,
		ActorRole:   actor.Role,
		Description: fmt.Sprintf("%s submitted weekly report", actorName(actor)),
		Metadata: map[string]any{
			"week_number":     weekNumber,
			"year":            year,
			"tasks_completed": in.TasksCompleted,
			"tasks_pending":   in.TasksPending,
		},
	})

	return rep, nil
}

// SubmitClientReview validates and stores a weekly client review, then
// recomputes the project's client happiness index. Reliability and load
// risk are untouched.
func (s *Service) SubmitClientReview(ctx context.Context, actor auth.Actor, in ClientReviewInput) (*ClientReview, error) {
	if err := ValidateClientReviewInput(in); err != nil {
		return nil, err
	}

	proj, err := s.loadProject(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if actor.Role != auth.RoleClient || actor.ID != proj.ClientID {
		return nil, ErrNotAssigned
	}

	year, weekNumber := week.Of(s.now())
	exists, err := s.reviews.Exists(ctx, proj.ID, year, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("checking existing review: %w", err)
	}
	if exists {
		return nil, ErrAlreadySubmitted
	}

	rev := &ClientReview{
		ID:                  uuid.NewString(),
		ProjectID:           proj.ID,
		SubmittedBy:         actor.ID,
		WeekNumber:          weekNumber,
		Year:                year,
		DeliveryQuality:     in.DeliveryQuality,
		Responsiveness:      in.Responsiveness,
		OverallSatisfaction: in.OverallSatisfaction,
		Comment:             in.Comment,
		FlaggedProblem:      in.FlaggedProblem,
		CreatedAt:           s.now(),
	}

	if err := s.reviews.Create(ctx, rev); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("creating client review: %w", err)
	}

	happiness := ClientHappiness(rev)
	update := project.ScoreUpdate{ClientHappinessIndex: &happiness}
	if err := s.projects.UpdateScores(ctx, proj.ID, update); err != nil {
		return nil, fmt.Errorf("updating project scores: %w", err)
	}

	entryType := activity.TypeReview
	description := fmt.Sprintf("%s submitted weekly review", actorName(actor))
	if rev.FlaggedProblem {
		entryType = activity.TypeFlag
		description = fmt.Sprintf("%s flagged a problem", actorName(actor))
	}
	s.record(ctx, &activity.Activity{
		ProjectID:   proj.ID,
		Type:        entryType,
		ActorID:     actor.ID,
		ActorRole:   actor.Role,
		Description: description,
		Metadata: map[string]any{
			"week_number":  weekNumber,
			"year":         year,
			"satisfaction": in.OverallSatisfaction,
			"flagged":      in.FlaggedProblem,
		},
	})

	return rev, nil
}

// ListTeamReports returns team reports newest first.
func (s *Service) ListTeamReports(ctx context.Context, opts ListOptions) ([]TeamReport, error) {
	return s.reports.List(ctx, opts)
}

// ListClientReviews returns client reviews newest first.
func (s *Service) ListClientReviews(ctx context.Context, opts ListOptions) ([]ClientReview, error) {
	return s.reviews.List(ctx, opts)
}

// DeleteTeamReport removes a report out-of-band. Admin only. Project
// scores are deliberately not recomputed: they remain a function of the
// most recent submission at write time.
func (s *Service) DeleteTeamReport(ctx context.Context, actor auth.Actor, id string) error {
	if actor.Role != auth.RoleAdmin {
		return ErrAccessDenied
	}
	if err := s.reports.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("deleting team report: %w", err)
	}
	return nil
}

// DeleteClientReview removes a review out-of-band. Admin only, no score
// recompute.
func (s *Service) DeleteClientReview(ctx context.Context, actor auth.Actor, id string) error {
	if actor.Role != auth.RoleAdmin {
		return ErrAccessDenied
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("deleting client review: %w", err)
	}
	return nil
}

func (s *Service) loadProject(ctx context.Context, projectID string) (*project.Project, error) {
	proj, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return proj, nil
}

// record appends the audit entry after the domain writes have committed.
// A failed append is logged and swallowed; it never rolls back the
// submission.
func (s *Service) record(ctx context.Context, entry *activity.Activity) {
	if s.activities == nil {
		return
	}
	entry.CreatedAt = s.now()
	if err := s.activities.Append(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("activity append failed", "project_id", entry.ProjectID, "type", entry.Type, "error", err)
	}
}

func actorName(actor auth.Actor) string {
	if actor.Name != "" {
		return actor.Name
	}
	return actor.ID
}
