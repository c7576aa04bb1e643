package submission

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// TeamReportInput carries the week fields of a team report submission.
// Week identity and submitter are stamped by the service, never supplied
// by the caller.
type TeamReportInput struct {
	ProjectID        string        `json:"project_id" validate:"required"`
	TasksCompleted   int           `json:"tasks_completed" validate:"min=0"`
	TasksPending     int           `json:"tasks_pending" validate:"min=0"`
	WorkloadLevel    WorkloadLevel `json:"workload_level" validate:"required,oneof=light normal heavy"`
	OnTimeConfidence int           `json:"on_time_confidence" validate:"required,min=1,max=5"`
	Blockers         []string      `json:"blockers,omitempty"`
}

// ClientReviewInput carries the rating fields of a client review
// submission.
type ClientReviewInput struct {
	ProjectID           string `json:"project_id" validate:"required"`
	DeliveryQuality     int    `json:"delivery_quality" validate:"required,min=1,max=5"`
	Responsiveness      int    `json:"responsiveness" validate:"required,min=1,max=5"`
	OverallSatisfaction int    `json:"overall_satisfaction" validate:"required,min=1,max=5"`
	Comment             string `json:"comment,omitempty"`
	FlaggedProblem      bool   `json:"flagged_problem,omitempty"`
}

// ValidateTeamReportInput rejects malformed report fields before any
// persistence happens.
func ValidateTeamReportInput(in TeamReportInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// ValidateClientReviewInput rejects malformed review fields before any
// persistence happens.
func ValidateClientReviewInput(in ClientReviewInput) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
