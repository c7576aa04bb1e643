package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/analytics"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
)

type emptyInput struct{}

type projectIDInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project id"`
}

type trendInput struct {
	ProjectID string `json:"project_id" jsonschema:"the project id"`
	Weeks     int    `json:"weeks,omitempty" jsonschema:"how many recent weeks to include (default 8)"`
}

type submissionListInput struct {
	ProjectID  string `json:"project_id,omitempty" jsonschema:"filter by project"`
	WeekNumber *int   `json:"week_number,omitempty" jsonschema:"filter by week number"`
	Year       *int   `json:"year,omitempty" jsonschema:"filter by year"`
	Limit      int    `json:"limit,omitempty" jsonschema:"maximum results"`
}

type activityListInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"filter by project"`
	Type      string `json:"type,omitempty" jsonschema:"filter by entry type (report, review, flag, status_change)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum results"`
}

type projectListOutput struct {
	Projects []project.Project `json:"projects"`
}

type reportListOutput struct {
	Reports []submission.TeamReport `json:"reports"`
}

type reviewListOutput struct {
	Reviews []submission.ClientReview `json:"reviews"`
}

type activityListOutput struct {
	Entries []activity.Activity `json:"entries"`
}

// checkListScope enforces submission listing visibility: non-admins must
// name a project they can see.
func checkListScope(ctx context.Context, svc Services, projectID string) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	if actor.Role == auth.RoleAdmin {
		return nil
	}
	if projectID == "" {
		return &APIError{Code: "ACCESS_DENIED", Message: "access denied", RecoveryHint: "Name a project_id you are assigned to"}
	}
	if _, err := svc.Projects.Get(ctx, actor, projectID); err != nil {
		return MapError(err)
	}
	return nil
}

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List the projects visible to you, with their current health scores",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, projectListOutput, error) {
		actor, err := actorFrom(ctx)
		if err != nil {
			return nil, projectListOutput{}, err
		}
		projects, err := svc.Projects.List(ctx, actor)
		if err != nil {
			return nil, projectListOutput{}, MapError(err)
		}
		if projects == nil {
			projects = []project.Project{}
		}
		return nil, projectListOutput{Projects: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get one project with its delivery reliability, client happiness, and team load risk",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in projectIDInput) (*sdkmcp.CallToolResult, *project.Project, error) {
		actor, err := actorFrom(ctx)
		if err != nil {
			return nil, nil, err
		}
		proj, err := svc.Projects.Get(ctx, actor, in.ProjectID)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, proj, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_team_report",
		Description: "Submit this week's team report for a project (one per project per week)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in submission.TeamReportInput) (*sdkmcp.CallToolResult, *submission.TeamReport, error) {
		actor, err := actorFrom(ctx)
		if err != nil {
			return nil, nil, err
		}
		rep, err := svc.Submissions.SubmitTeamReport(ctx, actor, in)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, rep, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "submit_client_review",
		Description: "Submit this week's client review for a project (one per project per week)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in submission.ClientReviewInput) (*sdkmcp.CallToolResult, *submission.ClientReview, error) {
		actor, err := actorFrom(ctx)
		if err != nil {
			return nil, nil, err
		}
		rev, err := svc.Submissions.SubmitClientReview(ctx, actor, in)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, rev, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_pending_submissions",
		Description: "List your projects still missing this week's report or review",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, *submission.PendingSummary, error) {
		actor, err := actorFrom(ctx)
		if err != nil {
			return nil, nil, err
		}
		summary, err := svc.Submissions.PendingFor(ctx, actor)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, summary, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_team_reports",
		Description: "List submitted team reports, newest first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in submissionListInput) (*sdkmcp.CallToolResult, reportListOutput, error) {
		if err := checkListScope(ctx, svc, in.ProjectID); err != nil {
			return nil, reportListOutput{}, err
		}
		reports, err := svc.Submissions.ListTeamReports(ctx, submission.ListOptions{
			ProjectID:  in.ProjectID,
			WeekNumber: in.WeekNumber,
			Year:       in.Year,
			Limit:      in.Limit,
		})
		if err != nil {
			return nil, reportListOutput{}, MapError(err)
		}
		if reports == nil {
			reports = []submission.TeamReport{}
		}
		return nil, reportListOutput{Reports: reports}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_client_reviews",
		Description: "List submitted client reviews, newest first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in submissionListInput) (*sdkmcp.CallToolResult, reviewListOutput, error) {
		if err := checkListScope(ctx, svc, in.ProjectID); err != nil {
			return nil, reviewListOutput{}, err
		}
		reviews, err := svc.Submissions.ListClientReviews(ctx, submission.ListOptions{
			ProjectID:  in.ProjectID,
			WeekNumber: in.WeekNumber,
			Year:       in.Year,
			Limit:      in.Limit,
		})
		if err != nil {
			return nil, reviewListOutput{}, MapError(err)
		}
		if reviews == nil {
			reviews = []submission.ClientReview{}
		}
		return nil, reviewListOutput{Reviews: reviews}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project_trend",
		Description: "Get a project's recent weeks of report and review inputs for charting",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in trendInput) (*sdkmcp.CallToolResult, *submission.Trend, error) {
		actor, err := actorFrom(ctx)
		if err != nil {
			return nil, nil, err
		}
		if _, err := svc.Projects.Get(ctx, actor, in.ProjectID); err != nil {
			return nil, nil, MapError(err)
		}
		trend, err := svc.Submissions.ProjectTrend(ctx, in.ProjectID, in.Weeks)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, trend, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_activity",
		Description: "List the audit trail of submissions, flags, and status changes, newest first",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, in activityListInput) (*sdkmcp.CallToolResult, activityListOutput, error) {
		if err := checkListScope(ctx, svc, in.ProjectID); err != nil {
			return nil, activityListOutput{}, err
		}
		opts := activity.ListOptions{ProjectID: in.ProjectID, Limit: in.Limit}
		if in.Type != "" {
			entryType := activity.Type(in.Type)
			opts.Type = &entryType
		}
		entries, err := svc.Activity.List(ctx, opts)
		if err != nil {
			return nil, activityListOutput{}, MapError(err)
		}
		if entries == nil {
			entries = []activity.Activity{}
		}
		return nil, activityListOutput{Entries: entries}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_dashboard_stats",
		Description: "Get portfolio counts by status (admin only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, *analytics.Stats, error) {
		if err := requireAdmin(ctx); err != nil {
			return nil, nil, err
		}
		stats, err := svc.Analytics.DashboardStats(ctx)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, stats, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_at_risk_projects",
		Description: "List active projects with unhappy clients or high team load (admin only)",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, _ emptyInput) (*sdkmcp.CallToolResult, *analytics.AtRiskReport, error) {
		if err := requireAdmin(ctx); err != nil {
			return nil, nil, err
		}
		report, err := svc.Analytics.AtRisk(ctx)
		if err != nil {
			return nil, nil, MapError(err)
		}
		return nil, report, nil
	})
}
