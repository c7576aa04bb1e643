// Package analytics provides the read-only dashboard views derived from
// project scores and submission history.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
)

// UnhappyThreshold is the happiness index below which a project counts as
// at risk.
const UnhappyThreshold = 50

const defaultFlagLimit = 5

// ProjectRepository provides the project reads analytics needs.
type ProjectRepository interface {
	List(ctx context.Context, opts project.ListOptions) ([]project.Project, error)
}

// ReviewRepository provides flagged-review reads.
type ReviewRepository interface {
	ListFlagged(ctx context.Context, limit int) ([]submission.ClientReview, error)
}

// Stats summarizes the project portfolio for the admin dashboard.
type Stats struct {
	TotalProjects    int                    `json:"total_projects"`
	ActiveProjects   int                    `json:"active_projects"`
	ProjectsByStatus map[project.Status]int `json:"projects_by_status"`
}

// AtRiskReport lists active projects in trouble: unhappy clients or high
// team load, worst happiness first, plus the most recent flagged reviews.
type AtRiskReport struct {
	Projects    []project.Project         `json:"projects"`
	RecentFlags []submission.ClientReview `json:"recent_flags"`
}

// Service computes dashboard aggregates.
type Service struct {
	projects ProjectRepository
	reviews  ReviewRepository
	logger   *slog.Logger
}

// NewService creates a new analytics service.
func NewService(projects ProjectRepository, reviews ReviewRepository, logger *slog.Logger) *Service {
	return &Service{projects: projects, reviews: reviews, logger: logger}
}

// DashboardStats returns portfolio counts by status.
func (s *Service) DashboardStats(ctx context.Context) (*Stats, error) {
	projects, err := s.projects.List(ctx, project.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	stats := &Stats{ProjectsByStatus: make(map[project.Status]int)}
	for _, proj := range projects {
		stats.TotalProjects++
		stats.ProjectsByStatus[proj.Status]++
		switch proj.Status {
		case project.StatusPlanning, project.StatusInProgress:
			stats.ActiveProjects++
		}
	}
	return stats, nil
}

// AtRisk returns active projects with an unhappy client or a high team
// load, plus recent flagged reviews across the portfolio.
func (s *Service) AtRisk(ctx context.Context) (*AtRiskReport, error) {
	active, err := s.projects.List(ctx, project.ListOptions{Statuses: project.ActiveStatuses})
	if err != nil {
		return nil, fmt.Errorf("listing active projects: %w", err)
	}

	report := &AtRiskReport{Projects: []project.Project{}}
	for _, proj := range active {
		if proj.ClientHappinessIndex < UnhappyThreshold || proj.TeamLoadRisk == project.RiskHigh {
			report.Projects = append(report.Projects, proj)
		}
	}
	sort.Slice(report.Projects, func(i, j int) bool {
		return report.Projects[i].ClientHappinessIndex < report.Projects[j].ClientHappinessIndex
	})

	flags, err := s.reviews.ListFlagged(ctx, defaultFlagLimit)
	if err != nil {
		return nil, fmt.Errorf("listing flagged reviews: %w", err)
	}
	report.RecentFlags = flags

	return report, nil
}
