package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pulseboard/internal/domain/submission"
	"github.com/rpggio/pulseboard/internal/repository"
)

func newTestReview(projectID string, year, week int) *submission.ClientReview {
	return &submission.ClientReview{
		ID:                  uuid.NewString(),
		ProjectID:           projectID,
		SubmittedBy:         "client-1",
		WeekNumber:          week,
		Year:                year,
		DeliveryQuality:     4,
		Responsiveness:      4,
		OverallSatisfaction: 5,
		Comment:             "shipping on schedule",
		CreatedAt:           time.Now().UTC().Truncate(time.Second),
	}
}

func TestReviewRepository_CreateAndGet(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	proj := newTestProject("team-1", "client-1")
	require.NoError(t, projects.Create(ctx, proj))

	rev := newTestReview(proj.ID, 2026, 36)
	require.NoError(t, reviews.Create(ctx, rev))

	got, err := reviews.Get(ctx, rev.ID)
	require.NoError(t, err)
	require.Equal(t, rev.ProjectID, got.ProjectID)
	require.Equal(t, 5, got.OverallSatisfaction)
	require.Equal(t, "shipping on schedule", got.Comment)
	require.False(t, got.FlaggedProblem)
}

func TestReviewRepository_DuplicateWeek(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	proj := newTestProject("team-1", "client-1")
	require.NoError(t, projects.Create(ctx, proj))

	require.NoError(t, reviews.Create(ctx, newTestReview(proj.ID, 2026, 36)))

	err := reviews.Create(ctx, newTestReview(proj.ID, 2026, 36))
	require.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestReviewRepository_ListFlagged(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	proj := newTestProject("team-1", "client-1")
	require.NoError(t, projects.Create(ctx, proj))

	base := time.Now().UTC().Truncate(time.Second)
	for i, flagged := range []bool{false, true, true, false, true} {
		rev := newTestReview(proj.ID, 2026, 30+i)
		rev.FlaggedProblem = flagged
		rev.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, reviews.Create(ctx, rev))
	}

	got, err := reviews.ListFlagged(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, 34, got[0].WeekNumber, "newest flagged review first")
	require.Equal(t, 32, got[1].WeekNumber)
	for _, rev := range got {
		require.True(t, rev.FlaggedProblem)
	}
}

func TestReviewRepository_ListByWeek(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	proj := newTestProject("team-1", "client-1")
	require.NoError(t, projects.Create(ctx, proj))

	require.NoError(t, reviews.Create(ctx, newTestReview(proj.ID, 2026, 35)))
	require.NoError(t, reviews.Create(ctx, newTestReview(proj.ID, 2026, 36)))

	week := 36
	year := 2026
	got, err := reviews.List(ctx, submission.ListOptions{
		ProjectID:  proj.ID,
		WeekNumber: &week,
		Year:       &year,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 36, got[0].WeekNumber)
}

func TestReviewRepository_ProjectIDsForWeek(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	a := newTestProject("team-1", "client-1")
	b := newTestProject("team-1", "client-2")
	require.NoError(t, projects.Create(ctx, a))
	require.NoError(t, projects.Create(ctx, b))

	require.NoError(t, reviews.Create(ctx, newTestReview(a.ID, 2026, 36)))

	ids, err := reviews.ProjectIDsForWeek(ctx, 2026, 36)
	require.NoError(t, err)
	require.Equal(t, []string{a.ID}, ids)
}

func TestReviewRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	projects := NewProjectRepository(db)
	reviews := NewReviewRepository(db)
	ctx := context.Background()

	proj := newTestProject("team-1", "client-1")
	require.NoError(t, projects.Create(ctx, proj))

	rev := newTestReview(proj.ID, 2026, 36)
	require.NoError(t, reviews.Create(ctx, rev))

	require.NoError(t, reviews.Delete(ctx, rev.ID))

	err := reviews.Delete(ctx, rev.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
