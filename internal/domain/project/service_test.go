package project_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/repository"
	"github.com/rpggio/pulseboard/internal/repository/mocks"
)

var (
	adminActor  = auth.Actor{ID: "admin-1", Role: auth.RoleAdmin}
	teamActor   = auth.Actor{ID: "user-1", Role: auth.RoleTeam, TeamID: "team-1"}
	clientActor = auth.Actor{ID: "client-1", Role: auth.RoleClient}
)

func newTestService(t *testing.T) (*project.Service, *mocks.ProjectRepository, *mocks.ActivityRepository) {
	t.Helper()
	repo := &mocks.ProjectRepository{}
	activities := &mocks.ActivityRepository{}
	svc := project.NewService(repo, activities, slog.New(slog.DiscardHandler))
	return svc, repo, activities
}

func storedProject() *project.Project {
	return &project.Project{
		ID:                       "proj-1",
		Name:                     "Website Redesign",
		TeamID:                   "team-1",
		ClientID:                 "client-1",
		Status:                   project.StatusInProgress,
		DeliveryReliabilityScore: 82,
		ClientHappinessIndex:     30,
		TeamLoadRisk:             project.RiskLow,
	}
}

func TestProjectService_Create(t *testing.T) {
	svc, repo, activities := newTestService(t)
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(p *project.Project) bool {
		return p.Name == "Website Redesign" &&
			p.DeliveryReliabilityScore == project.DefaultReliabilityScore &&
			p.ClientHappinessIndex == project.DefaultHappinessIndex &&
			p.TeamLoadRisk == project.RiskLow &&
			p.Status == project.StatusPlanning
	})).Return(nil)
	activities.On("Append", ctx, mock.MatchedBy(func(e *activity.Activity) bool {
		return e.Type == activity.TypeStatusChange
	})).Return(nil)

	proj, err := svc.Create(ctx, adminActor, project.CreateRequest{
		Name:     "Website Redesign",
		TeamID:   "team-1",
		ClientID: "client-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, project.StatusPlanning, proj.Status)

	repo.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestProjectService_CreateNonAdmin(t *testing.T) {
	svc, repo, _ := newTestService(t)

	_, err := svc.Create(context.Background(), teamActor, project.CreateRequest{
		Name: "Nope", TeamID: "team-1", ClientID: "client-1",
	})
	require.ErrorIs(t, err, project.ErrAccessDenied)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_CreateValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor, project.CreateRequest{TeamID: "t", ClientID: "c"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, adminActor, project.CreateRequest{
		Name: "X", TeamID: "t", ClientID: "c", Status: project.Status("archived"),
	})
	require.ErrorIs(t, err, project.ErrInvalidInput)
}

func TestProjectService_GetRoleScoping(t *testing.T) {
	tests := []struct {
		name    string
		actor   auth.Actor
		wantErr error
	}{
		{name: "admin sees any project", actor: adminActor},
		{name: "assigned team member", actor: teamActor},
		{name: "assigned client", actor: clientActor},
		{
			name:    "other team denied",
			actor:   auth.Actor{ID: "user-9", Role: auth.RoleTeam, TeamID: "team-9"},
			wantErr: project.ErrAccessDenied,
		},
		{
			name:    "other client denied",
			actor:   auth.Actor{ID: "client-9", Role: auth.RoleClient},
			wantErr: project.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestService(t)
			ctx := context.Background()
			repo.On("Get", ctx, "proj-1").Return(storedProject(), nil)

			proj, err := svc.Get(ctx, tt.actor, "proj-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "proj-1", proj.ID)
		})
	}
}

func TestProjectService_GetNotFound(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Get(ctx, adminActor, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_ListRoleScoping(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	repo.On("List", ctx, project.ListOptions{TeamID: "team-1"}).
		Return([]project.Project{*storedProject()}, nil)

	got, err := svc.List(ctx, teamActor)
	require.NoError(t, err)
	require.Len(t, got, 1)
	repo.AssertExpectations(t)
}

func TestProjectService_UpdateStatus(t *testing.T) {
	svc, repo, activities := newTestService(t)
	ctx := context.Background()

	repo.On("Get", ctx, "proj-1").Return(storedProject(), nil)
	repo.On("UpdateStatus", ctx, "proj-1", project.StatusCompleted).Return(nil)
	activities.On("Append", ctx, mock.MatchedBy(func(e *activity.Activity) bool {
		return e.Type == activity.TypeStatusChange &&
			e.Metadata["from"] == "in_progress" && e.Metadata["to"] == "completed"
	})).Return(nil)

	proj, err := svc.UpdateStatus(ctx, adminActor, "proj-1", project.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, project.StatusCompleted, proj.Status)
	require.Equal(t, 82, proj.DeliveryReliabilityScore, "status change leaves scores alone")

	activities.AssertExpectations(t)
}

func TestProjectService_UpdateStatusUnchangedSkipsActivity(t *testing.T) {
	svc, repo, activities := newTestService(t)
	ctx := context.Background()

	repo.On("Get", ctx, "proj-1").Return(storedProject(), nil)
	repo.On("UpdateStatus", ctx, "proj-1", project.StatusInProgress).Return(nil)

	_, err := svc.UpdateStatus(ctx, adminActor, "proj-1", project.StatusInProgress)
	require.NoError(t, err)
	activities.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestProjectService_UpdateStatusNonAdmin(t *testing.T) {
	svc, repo, _ := newTestService(t)

	_, err := svc.UpdateStatus(context.Background(), clientActor, "proj-1", project.StatusCompleted)
	require.ErrorIs(t, err, project.ErrAccessDenied)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestProjectService_Delete(t *testing.T) {
	svc, repo, activities := newTestService(t)
	ctx := context.Background()

	repo.On("Get", ctx, "proj-1").Return(storedProject(), nil)
	activities.On("DeleteForProject", ctx, "proj-1").Return(int64(3), nil)
	repo.On("Delete", ctx, "proj-1").Return(nil)

	require.NoError(t, svc.Delete(ctx, adminActor, "proj-1"))
	repo.AssertExpectations(t)
	activities.AssertExpectations(t)
}

func TestProjectService_DeleteNotFound(t *testing.T) {
	svc, repo, activities := newTestService(t)
	ctx := context.Background()

	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	err := svc.Delete(ctx, adminActor, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
	activities.AssertNotCalled(t, "DeleteForProject", mock.Anything, mock.Anything)
}

func TestProjectService_DeleteNonAdmin(t *testing.T) {
	svc, repo, _ := newTestService(t)

	err := svc.Delete(context.Background(), teamActor, "proj-1")
	require.ErrorIs(t, err, project.ErrAccessDenied)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
