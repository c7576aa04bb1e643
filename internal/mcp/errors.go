package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/pulseboard/internal/domain/project"
	"github.com/rpggio/pulseboard/internal/domain/submission"
)

// APIError is the structured error surfaced to MCP clients.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unmapped errors pass
// through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, submission.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project id with list_projects"}
	case errors.Is(err, submission.ErrSubmissionNotFound):
		return &APIError{Code: "SUBMISSION_NOT_FOUND", Message: "submission not found"}
	case errors.Is(err, submission.ErrNotAssigned):
		return &APIError{Code: "NOT_ASSIGNED", Message: "not assigned to this project", RecoveryHint: "Only the assigned team or client can submit"}
	case errors.Is(err, project.ErrAccessDenied), errors.Is(err, submission.ErrAccessDenied):
		return &APIError{Code: "ACCESS_DENIED", Message: "access denied"}
	case errors.Is(err, submission.ErrAlreadySubmitted):
		return &APIError{Code: "ALREADY_SUBMITTED", Message: "a submission already exists for this week", RecoveryHint: "One submission per project per week; try again next week"}
	case errors.Is(err, submission.ErrValidation), errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "VALIDATION_ERROR", Message: err.Error()}
	default:
		return err
	}
}
