package submission_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
)

func TestSubmissionService_PendingForTeam(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.projects.On("List", ctx, project.ListOptions{
		TeamID:   "team-1",
		Statuses: project.ActiveStatuses,
	}).Return([]project.Project{
		{ID: "p1", Name: "Website Redesign"},
		{ID: "p2", Name: "Mobile App"},
		{ID: "p3", Name: "Data Migration"},
	}, nil)
	m.reports.On("ProjectIDsForWeek", ctx, 2026, 36).Return([]string{"p2"}, nil)

	summary, err := svc.PendingFor(ctx, teamActor)
	require.NoError(t, err)
	require.Equal(t, submission.KindTeamReport, summary.Kind)
	require.Equal(t, 36, summary.WeekNumber)
	require.Equal(t, 2026, summary.Year)
	require.Equal(t, []submission.PendingProject{
		{ID: "p1", Name: "Website Redesign"},
		{ID: "p3", Name: "Data Migration"},
	}, summary.Projects)
}

func TestSubmissionService_PendingForClient(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.projects.On("List", ctx, project.ListOptions{
		ClientID: "client-1",
		Statuses: project.ActiveStatuses,
	}).Return([]project.Project{
		{ID: "p1", Name: "Website Redesign"},
	}, nil)
	m.reviews.On("ProjectIDsForWeek", ctx, 2026, 36).Return([]string{}, nil)

	summary, err := svc.PendingFor(ctx, clientActor)
	require.NoError(t, err)
	require.Equal(t, submission.KindClientReview, summary.Kind)
	require.Len(t, summary.Projects, 1)
}

func TestSubmissionService_PendingForAdmin(t *testing.T) {
	svc, m := newTestService(t)

	summary, err := svc.PendingFor(context.Background(), adminActor)
	require.NoError(t, err)
	require.Equal(t, submission.KindNone, summary.Kind)
	require.Empty(t, summary.Projects)
	m.projects.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSubmissionService_PendingForTeamActorWithoutTeam(t *testing.T) {
	svc, _ := newTestService(t)

	orphan := auth.Actor{ID: "user-9", Role: auth.RoleTeam}
	summary, err := svc.PendingFor(context.Background(), orphan)
	require.NoError(t, err)
	require.Equal(t, submission.KindNone, summary.Kind)
	require.Empty(t, summary.Projects)
}

func TestSubmissionService_PendingAllSubmitted(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.projects.On("List", ctx, project.ListOptions{
		TeamID:   "team-1",
		Statuses: project.ActiveStatuses,
	}).Return([]project.Project{{ID: "p1", Name: "Website Redesign"}}, nil)
	m.reports.On("ProjectIDsForWeek", ctx, 2026, 36).Return([]string{"p1"}, nil)

	summary, err := svc.PendingFor(ctx, teamActor)
	require.NoError(t, err)
	require.Equal(t, submission.KindTeamReport, summary.Kind)
	require.Empty(t, summary.Projects)
	require.NotNil(t, summary.Projects, "empty, not nil, for JSON rendering")
}
