package submission

import "errors"

var (
	// ErrProjectNotFound indicates the referenced project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrSubmissionNotFound indicates the report or review doesn't exist.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrNotAssigned indicates the actor is not the assigned team member or
	// client for the project.
	ErrNotAssigned = errors.New("not assigned to this project")
	// ErrAccessDenied indicates the operation is reserved for another role.
	ErrAccessDenied = errors.New("access denied")
	// ErrAlreadySubmitted indicates a submission of the same kind already
	// exists for the project and week.
	ErrAlreadySubmitted = errors.New("already submitted for this week")
	// ErrValidation indicates malformed submission input, rejected before
	// any persistence.
	ErrValidation = errors.New("invalid submission input")
)
