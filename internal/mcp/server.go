// Package mcp exposes the scoring and reporting operations as MCP tools,
// so agent clients can file weekly submissions and read project health.
package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/analytics"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
)

const serverInstructions = `pulseboard tracks project delivery health from weekly submissions.

Team members file one report per project per week (submit_team_report);
clients file one review (submit_client_review). Each submission recomputes
the owning project's scores: delivery reliability and team load risk from
reports, client happiness from reviews. Use get_pending_submissions to see
what is still owed this week, and get_project_trend for history.`

// Services contains the domain services the tools call into.
type Services struct {
	Projects    *project.Service
	Submissions *submission.Service
	Activity    *activity.Service
	Analytics   *analytics.Service
}

// Config contains server configuration.
type Config struct {
	Services      Services
	TransportMode string // "stdio" or "http"
	StdioActor    auth.Actor
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and
// middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "pulseboard",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	// Stdio serves one local caller; HTTP trusts the upstream proxy's
	// identity headers.
	if cfg.TransportMode == "stdio" {
		actor := cfg.StdioActor
		if actor.ID == "" {
			actor = auth.Actor{ID: "local", Role: auth.RoleAdmin}
		}
		server.AddReceivingMiddleware(staticActorMiddleware(actor))
	} else {
		server.AddReceivingMiddleware(actorHeaderMiddleware())
	}

	registerTools(server, cfg.Services)

	return server
}
