package transport

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rpggio/pulseboard/internal/auth"
	"github.com/rpggio/pulseboard/internal/domain/activity"
	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
)

func actorFrom(r *http.Request) auth.Actor {
	actor, _ := auth.ActorFromContext(r.Context())
	return actor
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}

type createProjectRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	TeamID      string         `json:"team_id"`
	ClientID    string         `json:"client_id"`
	Status      project.Status `json:"status"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	proj, err := s.svc.Projects.Create(r.Context(), actorFrom(r), project.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TeamID:      req.TeamID,
		ClientID:    req.ClientID,
		Status:      req.Status,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.svc.Projects.List(r.Context(), actorFrom(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if projects == nil {
		projects = []project.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.svc.Projects.Get(r.Context(), actorFrom(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

type updateStatusRequest struct {
	Status project.Status `json:"status"`
}

func (s *Server) handleUpdateProjectStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	proj, err := s.svc.Projects.UpdateStatus(r.Context(), actorFrom(r), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Projects.Delete(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitTeamReport(w http.ResponseWriter, r *http.Request) {
	var in submission.TeamReportInput
	if !decodeBody(w, r, &in) {
		return
	}

	rep, err := s.svc.Submissions.SubmitTeamReport(r.Context(), actorFrom(r), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rep)
}

func (s *Server) handleListTeamReports(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.scopedListOptions(w, r)
	if !ok {
		return
	}
	reports, err := s.svc.Submissions.ListTeamReports(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if reports == nil {
		reports = []submission.TeamReport{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleDeleteTeamReport(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Submissions.DeleteTeamReport(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitClientReview(w http.ResponseWriter, r *http.Request) {
	var in submission.ClientReviewInput
	if !decodeBody(w, r, &in) {
		return
	}

	rev, err := s.svc.Submissions.SubmitClientReview(r.Context(), actorFrom(r), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}

func (s *Server) handleListClientReviews(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.scopedListOptions(w, r)
	if !ok {
		return
	}
	reviews, err := s.svc.Submissions.ListClientReviews(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if reviews == nil {
		reviews = []submission.ClientReview{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleDeleteClientReview(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Submissions.DeleteClientReview(r.Context(), actorFrom(r), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePending(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.Submissions.PendingFor(r.Context(), actorFrom(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleProjectTrend(w http.ResponseWriter, r *http.Request) {
	// Trend is score history; visibility follows project visibility
	projectID := chi.URLParam(r, "id")
	if _, err := s.svc.Projects.Get(r.Context(), actorFrom(r), projectID); err != nil {
		s.writeError(w, err)
		return
	}

	weeks := intQuery(r, "weeks", 0)
	trend, err := s.svc.Submissions.ProjectTrend(r.Context(), projectID, weeks)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

func (s *Server) handleProjectActivity(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	if _, err := s.svc.Projects.Get(r.Context(), actorFrom(r), projectID); err != nil {
		s.writeError(w, err)
		return
	}

	opts := activity.ListOptions{
		ProjectID: projectID,
		Limit:     intQuery(r, "limit", 0),
	}
	if typ := r.URL.Query().Get("type"); typ != "" {
		entryType := activity.Type(typ)
		opts.Type = &entryType
	}

	entries, err := s.svc.Activity.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []activity.Activity{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	if actorFrom(r).Role != auth.RoleAdmin {
		s.writeError(w, project.ErrAccessDenied)
		return
	}

	opts := activity.ListOptions{
		ProjectID: r.URL.Query().Get("project_id"),
		Limit:     intQuery(r, "limit", 0),
	}
	if typ := r.URL.Query().Get("type"); typ != "" {
		entryType := activity.Type(typ)
		opts.Type = &entryType
	}

	entries, err := s.svc.Activity.List(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if entries == nil {
		entries = []activity.Activity{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	if actorFrom(r).Role != auth.RoleAdmin {
		s.writeError(w, project.ErrAccessDenied)
		return
	}

	stats, err := s.svc.Analytics.DashboardStats(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAtRisk(w http.ResponseWriter, r *http.Request) {
	if actorFrom(r).Role != auth.RoleAdmin {
		s.writeError(w, project.ErrAccessDenied)
		return
	}

	report, err := s.svc.Analytics.AtRisk(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// scopedListOptions builds submission list filters, enforcing visibility:
// non-admins must name a project they can see; admins may list across
// projects.
func (s *Server) scopedListOptions(w http.ResponseWriter, r *http.Request) (submission.ListOptions, bool) {
	opts := listOptionsFrom(r)
	actor := actorFrom(r)
	if actor.Role == auth.RoleAdmin {
		return opts, true
	}
	if opts.ProjectID == "" {
		s.writeError(w, project.ErrAccessDenied)
		return opts, false
	}
	if _, err := s.svc.Projects.Get(r.Context(), actor, opts.ProjectID); err != nil {
		s.writeError(w, err)
		return opts, false
	}
	return opts, true
}

func listOptionsFrom(r *http.Request) submission.ListOptions {
	opts := submission.ListOptions{
		ProjectID: r.URL.Query().Get("project_id"),
		Limit:     intQuery(r, "limit", 0),
	}
	if s := r.URL.Query().Get("week_number"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			opts.WeekNumber = &n
		}
	}
	if s := r.URL.Query().Get("year"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			opts.Year = &n
		}
	}
	return opts
}

func intQuery(r *http.Request, name string, fallback int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
