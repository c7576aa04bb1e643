package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError renders a domain error as the matching HTTP status. Expected
// rejections keep their message; anything unmapped is a 500 with a generic
// body so internals don't leak.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, submission.ErrProjectNotFound),
		errors.Is(err, submission.ErrSubmissionNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, project.ErrAccessDenied),
		errors.Is(err, submission.ErrAccessDenied),
		errors.Is(err, submission.ErrNotAssigned):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, submission.ErrAlreadySubmitted):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, submission.ErrValidation),
		errors.Is(err, project.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	default:
		if s.logger != nil {
			s.logger.Error("request failed", "error", err)
		}
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
