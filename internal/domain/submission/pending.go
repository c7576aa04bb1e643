package submission

import (
	"context"
	"fmt"

	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/week"
)

// PendingFor determines which of the actor's assigned projects still lack
// a submission for the current week. Completed and on-hold projects are
// never pending, regardless of submission history. Admins (and unknown
// roles) get an empty summary with kind none.
func (s *Service) PendingFor(ctx context.Context, actor auth.Actor) (*PendingSummary, error) {
	year, weekNumber := week.Of(s.now())
	summary := &PendingSummary{
		Kind:       KindNone,
		WeekNumber: weekNumber,
		Year:       year,
		Projects:   []PendingProject{},
	}

	var (
		candidates []project.Project
		err        error
		submitted  []string
	)

	switch {
	case actor.Role == auth.RoleTeam && actor.TeamID != "":
		summary.Kind = KindTeamReport
		candidates, err = s.projects.List(ctx, project.ListOptions{
			TeamID:   actor.TeamID,
			Statuses: project.ActiveStatuses,
		})
		if err != nil {
			return nil, fmt.Errorf("listing team projects: %w", err)
		}
		submitted, err = s.reports.ProjectIDsForWeek(ctx, year, weekNumber)
		if err != nil {
			return nil, fmt.Errorf("listing submitted reports: %w", err)
		}

	case actor.Role == auth.RoleClient:
		summary.Kind = KindClientReview
		candidates, err = s.projects.List(ctx, project.ListOptions{
			ClientID: actor.ID,
			Statuses: project.ActiveStatuses,
		})
		if err != nil {
			return nil, fmt.Errorf("listing client projects: %w", err)
		}
		submitted, err = s.reviews.ProjectIDsForWeek(ctx, year, weekNumber)
		if err != nil {
			return nil, fmt.Errorf("listing submitted reviews: %w", err)
		}

	default:
		return summary, nil
	}

	done := make(map[string]struct{}, len(submitted))
	for _, id := range submitted {
		done[id] = struct{}{}
	}

	for _, proj := range candidates {
		if _, ok := done[proj.ID]; ok {
			continue
		}
		summary.Projects = append(summary.Projects, PendingProject{ID: proj.ID, Name: proj.Name})
	}

	return summary, nil
}
