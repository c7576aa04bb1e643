package submission

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpggio/pulseboard/internal/repository"
)

// DefaultTrendWeeks is the window used when the caller doesn't specify one.
const DefaultTrendWeeks = 8

// ReliabilityPoint is one week of team-report inputs for charting.
type ReliabilityPoint struct {
	Week           string `json:"week"`
	TasksCompleted int    `json:"tasks_completed"`
	TasksPending   int    `json:"tasks_pending"`
	Confidence     int    `json:"confidence"`
	Blockers       int    `json:"blockers"`
}

// SatisfactionPoint is one week of client-review inputs for charting.
type SatisfactionPoint struct {
	Week           string `json:"week"`
	Quality        int    `json:"quality"`
	Responsiveness int    `json:"responsiveness"`
	Satisfaction   int    `json:"satisfaction"`
	Flagged        bool   `json:"flagged"`
}

// Trend joins the last N reports and reviews by week, in chronological
// order for charting.
type Trend struct {
	Reliability  []ReliabilityPoint  `json:"reliability"`
	Satisfaction []SatisfactionPoint `json:"satisfaction"`
}

// ProjectTrend returns the windowed submission history for a project.
func (s *Service) ProjectTrend(ctx context.Context, projectID string, weeks int) (*Trend, error) {
	if weeks <= 0 {
		weeks = DefaultTrendWeeks
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	reports, err := s.reports.ListForProject(ctx, projectID, weeks)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	reviews, err := s.reviews.ListForProject(ctx, projectID, weeks)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}

	trend := &Trend{
		Reliability:  make([]ReliabilityPoint, 0, len(reports)),
		Satisfaction: make([]SatisfactionPoint, 0, len(reviews)),
	}

	// Repositories return newest first; reverse into chronological order.
	for i := len(reports) - 1; i >= 0; i-- {
		rep := reports[i]
		trend.Reliability = append(trend.Reliability, ReliabilityPoint{
			Week:           weekLabel(rep.Year, rep.WeekNumber),
			TasksCompleted: rep.TasksCompleted,
			TasksPending:   rep.TasksPending,
			Confidence:     rep.OnTimeConfidence,
			Blockers:       len(rep.Blockers),
		})
	}
	for i := len(reviews) - 1; i >= 0; i-- {
		rev := reviews[i]
		trend.Satisfaction = append(trend.Satisfaction, SatisfactionPoint{
			Week:           weekLabel(rev.Year, rev.WeekNumber),
			Quality:        rev.DeliveryQuality,
			Responsiveness: rev.Responsiveness,
			Satisfaction:   rev.OverallSatisfaction,
			Flagged:        rev.FlaggedProblem,
		})
	}

	return trend, nil
}

func weekLabel(year, weekNumber int) string {
	return fmt.Sprintf("%d-W%d", year, weekNumber)
}
