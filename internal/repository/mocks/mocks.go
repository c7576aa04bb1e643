package mocks

import (
	"context"

	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository mocks the project store the domain services consume.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) UpdateStatus(ctx context.Context, id string, status project.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *ProjectRepository) UpdateScores(ctx context.Context, id string, update project.ScoreUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ReportRepository mocks the team report store the domain services consume.
type ReportRepository struct {
	mock.Mock
}

func (m *ReportRepository) Create(ctx context.Context, rep *submission.TeamReport) error {
	args := m.Called(ctx, rep)
	return args.Error(0)
}

func (m *ReportRepository) Get(ctx context.Context, id string) (*submission.TeamReport, error) {
	args := m.Called(ctx, id)
	if rep, ok := args.Get(0).(*submission.TeamReport); ok {
		return rep, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) Exists(ctx context.Context, projectID string, year, weekNumber int) (bool, error) {
	args := m.Called(ctx, projectID, year, weekNumber)
	return args.Bool(0), args.Error(1)
}

func (m *ReportRepository) List(ctx context.Context, opts submission.ListOptions) ([]submission.TeamReport, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]submission.TeamReport); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) ListForProject(ctx context.Context, projectID string, limit int) ([]submission.TeamReport, error) {
	args := m.Called(ctx, projectID, limit)
	if list, ok := args.Get(0).([]submission.TeamReport); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) ProjectIDsForWeek(ctx context.Context, year, weekNumber int) ([]string, error) {
	args := m.Called(ctx, year, weekNumber)
	if list, ok := args.Get(0).([]string); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReportRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ReviewRepository mocks the client review store the domain services consume.
type ReviewRepository struct {
	mock.Mock
}

func (m *ReviewRepository) Create(ctx context.Context, rev *submission.ClientReview) error {
	args := m.Called(ctx, rev)
	return args.Error(0)
}

func (m *ReviewRepository) Get(ctx context.Context, id string) (*submission.ClientReview, error) {
	args := m.Called(ctx, id)
	if rev, ok := args.Get(0).(*submission.ClientReview); ok {
		return rev, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewRepository) Exists(ctx context.Context, projectID string, year, weekNumber int) (bool, error) {
	args := m.Called(ctx, projectID, year, weekNumber)
	return args.Bool(0), args.Error(1)
}

func (m *ReviewRepository) List(ctx context.Context, opts submission.ListOptions) ([]submission.ClientReview, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]submission.ClientReview); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewRepository) ListForProject(ctx context.Context, projectID string, limit int) ([]submission.ClientReview, error) {
	args := m.Called(ctx, projectID, limit)
	if list, ok := args.Get(0).([]submission.ClientReview); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewRepository) ListFlagged(ctx context.Context, limit int) ([]submission.ClientReview, error) {
	args := m.Called(ctx, limit)
	if list, ok := args.Get(0).([]submission.ClientReview); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewRepository) ProjectIDsForWeek(ctx context.Context, year, weekNumber int) ([]string, error) {
	args := m.Called(ctx, year, weekNumber)
	if list, ok := args.Get(0).([]string); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ActivityRepository mocks the activity log store the domain services consume.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Append(ctx context.Context, entry *activity.Activity) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Activity, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Activity); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) DeleteForProject(ctx context.Context, projectID string) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}
