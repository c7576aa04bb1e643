package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/repository"
)

func newTestProject(teamID, clientID string) *project.Project {
	now := time.Now().UTC().Truncate(time.Second)
	return &project.Project{
		ID:                       uuid.NewString(),
		Name:                     "Website Redesign",
		Description:              "Q3 marketing site refresh",
		StartDate:                now,
		EndDate:                  now.AddDate(0, 3, 0),
		TeamID:                   teamID,
		ClientID:                 clientID,
		Status:                   project.StatusInProgress,
		DeliveryReliabilityScore: project.DefaultReliabilityScore,
		ClientHappinessIndex:     project.DefaultHappinessIndex,
		TeamLoadRisk:             project.RiskLow,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
}

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("team-1", "client-1")
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, proj.ID, got.ID)
	require.Equal(t, proj.Name, got.Name)
	require.Equal(t, proj.TeamID, got.TeamID)
	require.Equal(t, proj.ClientID, got.ClientID)
	require.Equal(t, project.StatusInProgress, got.Status)
	require.Equal(t, 50, got.DeliveryReliabilityScore)
	require.Equal(t, project.RiskLow, got.TeamLoadRisk)
}

func TestProjectRepository_GetNotFound(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)

	_, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_ListFilters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	a := newTestProject("team-1", "client-1")
	b := newTestProject("team-1", "client-2")
	b.Status = project.StatusCompleted
	c := newTestProject("team-2", "client-1")
	for _, p := range []*project.Project{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
	}

	byTeam, err := repo.List(ctx, project.ListOptions{TeamID: "team-1"})
	require.NoError(t, err)
	require.Len(t, byTeam, 2)

	byClient, err := repo.List(ctx, project.ListOptions{ClientID: "client-1"})
	require.NoError(t, err)
	require.Len(t, byClient, 2)

	active, err := repo.List(ctx, project.ListOptions{
		TeamID:   "team-1",
		Statuses: project.ActiveStatuses,
	})
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, a.ID, active[0].ID)
}

func TestProjectRepository_UpdateStatus(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("team-1", "client-1")
	require.NoError(t, repo.Create(ctx, proj))

	require.NoError(t, repo.UpdateStatus(ctx, proj.ID, project.StatusOnHold))

	got, err := repo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, project.StatusOnHold, got.Status)

	err = repo.UpdateStatus(ctx, "missing", project.StatusOnHold)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepository_UpdateScoresPartial(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("team-1", "client-1")
	require.NoError(t, repo.Create(ctx, proj))

	reliability := 82
	risk := project.RiskHigh
	err := repo.UpdateScores(ctx, proj.ID, project.ScoreUpdate{
		DeliveryReliabilityScore: &reliability,
		TeamLoadRisk:             &risk,
	})
	require.NoError(t, err)

	got, err := repo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, 82, got.DeliveryReliabilityScore)
	require.Equal(t, project.RiskHigh, got.TeamLoadRisk)
	require.Equal(t, 50, got.ClientHappinessIndex, "untouched field keeps its value")

	happiness := 30
	err = repo.UpdateScores(ctx, proj.ID, project.ScoreUpdate{
		ClientHappinessIndex: &happiness,
	})
	require.NoError(t, err)

	got, err = repo.Get(ctx, proj.ID)
	require.NoError(t, err)
	require.Equal(t, 30, got.ClientHappinessIndex)
	require.Equal(t, 82, got.DeliveryReliabilityScore, "reliability survives a review-side update")
}

func TestProjectRepository_UpdateScoresEmpty(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	// No fields named: no-op, even for a missing project
	require.NoError(t, repo.UpdateScores(ctx, "missing", project.ScoreUpdate{}))
}

func TestProjectRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	proj := newTestProject("team-1", "client-1")
	require.NoError(t, repo.Create(ctx, proj))

	require.NoError(t, repo.Delete(ctx, proj.ID))

	_, err := repo.Get(ctx, proj.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Delete(ctx, proj.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
