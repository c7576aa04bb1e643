// Package transport exposes the REST API. Authentication happens
// upstream; the router trusts the identity headers it is handed and turns
// them into a domain actor.
package transport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"

	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/analytics"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
)

// Services groups the domain services the API exposes.
type Services struct {
	Projects    *project.Service
	Submissions *submission.Service
	Activity    *activity.Service
	Analytics   *analytics.Service
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

// NewRouter creates the API router with middleware.
func NewRouter(svc Services, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	srv := &Server{svc: svc, logger: logger}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(ActorMiddleware)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", srv.handleCreateProject)
			r.Get("/", srv.handleListProjects)
			r.Get("/{id}", srv.handleGetProject)
			r.Patch("/{id}/status", srv.handleUpdateProjectStatus)
			r.Delete("/{id}", srv.handleDeleteProject)
			r.Get("/{id}/trend", srv.handleProjectTrend)
			r.Get("/{id}/activity", srv.handleProjectActivity)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Post("/", srv.handleSubmitTeamReport)
			r.Get("/", srv.handleListTeamReports)
			r.Delete("/{id}", srv.handleDeleteTeamReport)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", srv.handleSubmitClientReview)
			r.Get("/", srv.handleListClientReviews)
			r.Delete("/{id}", srv.handleDeleteClientReview)
		})

		r.Get("/pending", srv.handlePending)
		r.Get("/activities", srv.handleListActivities)

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", srv.handleDashboardStats)
			r.Get("/at-risk", srv.handleAtRisk)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
