package mcp_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/analytics"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
	"github.com/rpggio/pulseboard/internal/mcp"
	"github.com/rpggio/pulseboard/internal/sqlite"
)

// fixedNow falls in week 36 of 2026.
var fixedNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

var (
	adminActor  = auth.Actor{ID: "admin-1", Role: auth.RoleAdmin}
	teamActor   = auth.Actor{ID: "user-1", Name: "Sam", Role: auth.RoleTeam, TeamID: "team-1"}
	clientActor = auth.Actor{ID: "client-1", Name: "Ada", Role: auth.RoleClient}
)

type toolEnv struct {
	svc mcp.Services
}

func newToolEnv(t *testing.T) *toolEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	projectRepo := sqlite.NewProjectRepository(db)
	reportRepo := sqlite.NewReportRepository(db)
	reviewRepo := sqlite.NewReviewRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)

	logger := slog.New(slog.DiscardHandler)
	return &toolEnv{svc: mcp.Services{
		Projects: project.NewService(projectRepo, activityRepo, logger),
		Submissions: submission.NewService(reportRepo, reviewRepo, projectRepo, activityRepo, logger,
			submission.WithNow(func() time.Time { return fixedNow })),
		Activity:  activity.NewService(activityRepo, logger),
		Analytics: analytics.NewService(projectRepo, reviewRepo, logger),
	}}
}

// session connects an SDK client to a server pinned to the given actor,
// the way the stdio transport serves one local caller.
func (e *toolEnv) session(t *testing.T, ctx context.Context, actor auth.Actor) *sdkmcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(mcp.Config{
		Services:      e.svc,
		TransportMode: "stdio",
		StdioActor:    actor,
		Logger:        slog.New(slog.DiscardHandler),
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	mcpClient := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	clientSession, err := mcpClient.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = clientSession.Close()
		_ = serverSession.Close()
	})
	return clientSession
}

// callTool calls a tool, requires success, and unmarshals the JSON
// payload from the text content.
func callTool(t *testing.T, ctx context.Context, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()

	result, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, result.IsError, "tool %s failed: %v", name, result.Content)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "tool %s returned non-text content", name)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text.Text), out))
	}
}

// callToolError calls a tool and requires a tool-level error mentioning
// the given code.
func callToolError(t *testing.T, ctx context.Context, cs *sdkmcp.ClientSession, name string, args map[string]any, wantCode string) {
	t.Helper()

	result, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.True(t, result.IsError, "tool %s should have failed", name)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.Contains(t, text.Text, wantCode)
}

func (e *toolEnv) createProject(t *testing.T, ctx context.Context) *project.Project {
	t.Helper()
	proj, err := e.svc.Projects.Create(ctx, adminActor, project.CreateRequest{
		Name:     "Website Redesign",
		TeamID:   "team-1",
		ClientID: "client-1",
		Status:   project.StatusInProgress,
	})
	require.NoError(t, err)
	return proj
}

func TestMCPServer_ListTools(t *testing.T) {
	ctx := context.Background()
	env := newToolEnv(t)
	cs := env.session(t, ctx, adminActor)

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"list_projects",
		"get_project",
		"submit_team_report",
		"submit_client_review",
		"get_pending_submissions",
		"list_team_reports",
		"list_client_reviews",
		"get_project_trend",
		"list_activity",
		"get_dashboard_stats",
		"get_at_risk_projects",
	} {
		require.True(t, names[want], "missing tool %s", want)
	}
}

func TestMCPServer_SubmissionFlow(t *testing.T) {
	ctx := context.Background()
	env := newToolEnv(t)
	proj := env.createProject(t, ctx)

	teamSession := env.session(t, ctx, teamActor)
	clientSession := env.session(t, ctx, clientActor)

	// The assigned team sees the project in its pending list.
	var pending submission.PendingSummary
	callTool(t, ctx, teamSession, "get_pending_submissions", nil, &pending)
	require.Equal(t, 36, pending.WeekNumber)
	require.Equal(t, 2026, pending.Year)
	require.Len(t, pending.Projects, 1)

	var rep submission.TeamReport
	callTool(t, ctx, teamSession, "submit_team_report", map[string]any{
		"project_id":         proj.ID,
		"tasks_completed":    8,
		"tasks_pending":      2,
		"workload_level":     "normal",
		"on_time_confidence": 4,
	}, &rep)
	require.Equal(t, 36, rep.WeekNumber)
	require.Equal(t, "user-1", rep.SubmittedBy)

	var got project.Project
	callTool(t, ctx, teamSession, "get_project", map[string]any{"project_id": proj.ID}, &got)
	require.Equal(t, 82, got.DeliveryReliabilityScore)
	require.Equal(t, project.RiskLow, got.TeamLoadRisk)

	callToolError(t, ctx, teamSession, "submit_team_report", map[string]any{
		"project_id":         proj.ID,
		"tasks_completed":    1,
		"tasks_pending":      1,
		"workload_level":     "light",
		"on_time_confidence": 5,
	}, "ALREADY_SUBMITTED")

	var rev submission.ClientReview
	callTool(t, ctx, clientSession, "submit_client_review", map[string]any{
		"project_id":           proj.ID,
		"delivery_quality":     4,
		"responsiveness":       3,
		"overall_satisfaction": 2,
		"flagged_problem":      true,
	}, &rev)
	require.True(t, rev.FlaggedProblem)

	callTool(t, ctx, clientSession, "get_project", map[string]any{"project_id": proj.ID}, &got)
	require.Equal(t, 30, got.ClientHappinessIndex)
	require.Equal(t, 82, got.DeliveryReliabilityScore)

	// Both submissions landed, so nothing is pending for either side.
	callTool(t, ctx, teamSession, "get_pending_submissions", nil, &pending)
	require.Empty(t, pending.Projects)
	callTool(t, ctx, clientSession, "get_pending_submissions", nil, &pending)
	require.Empty(t, pending.Projects)

	var trend submission.Trend
	callTool(t, ctx, teamSession, "get_project_trend", map[string]any{"project_id": proj.ID}, &trend)
	require.Len(t, trend.Reliability, 1)
	require.Equal(t, "2026-W36", trend.Reliability[0].Week)
	require.Len(t, trend.Satisfaction, 1)
	require.True(t, trend.Satisfaction[0].Flagged)
}

func TestMCPServer_MinimalSubmissions(t *testing.T) {
	ctx := context.Background()
	env := newToolEnv(t)
	proj := env.createProject(t, ctx)

	// Optional fields (blockers, comment, flagged_problem) can be left out
	// entirely without tripping the tool input schema.
	var rep submission.TeamReport
	callTool(t, ctx, env.session(t, ctx, teamActor), "submit_team_report", map[string]any{
		"project_id":         proj.ID,
		"tasks_completed":    3,
		"tasks_pending":      1,
		"workload_level":     "light",
		"on_time_confidence": 5,
	}, &rep)
	require.Empty(t, rep.Blockers)

	var rev submission.ClientReview
	callTool(t, ctx, env.session(t, ctx, clientActor), "submit_client_review", map[string]any{
		"project_id":           proj.ID,
		"delivery_quality":     5,
		"responsiveness":       5,
		"overall_satisfaction": 5,
	}, &rev)
	require.False(t, rev.FlaggedProblem)
	require.Empty(t, rev.Comment)
}

func TestMCPServer_Authorization(t *testing.T) {
	ctx := context.Background()
	env := newToolEnv(t)
	proj := env.createProject(t, ctx)

	stranger := env.session(t, ctx, auth.Actor{ID: "other", Role: auth.RoleTeam, TeamID: "team-9"})
	callToolError(t, ctx, stranger, "get_project", map[string]any{"project_id": proj.ID}, "ACCESS_DENIED")
	callToolError(t, ctx, stranger, "get_dashboard_stats", nil, "ACCESS_DENIED")
	callToolError(t, ctx, stranger, "list_team_reports", nil, "ACCESS_DENIED")
	callToolError(t, ctx, stranger, "submit_team_report", map[string]any{
		"project_id":         proj.ID,
		"tasks_completed":    1,
		"tasks_pending":      1,
		"workload_level":     "light",
		"on_time_confidence": 5,
	}, "NOT_ASSIGNED")
	callToolError(t, ctx, stranger, "get_project", map[string]any{"project_id": "nope"}, "PROJECT_NOT_FOUND")

	adminSession := env.session(t, ctx, adminActor)
	var stats analytics.Stats
	callTool(t, ctx, adminSession, "get_dashboard_stats", nil, &stats)
	require.Equal(t, 1, stats.TotalProjects)
}
