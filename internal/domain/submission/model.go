package submission

import "time"

// Kind distinguishes the two weekly submission streams.
type Kind string

const (
	KindTeamReport   Kind = "team_report"
	KindClientReview Kind = "client_review"
	KindNone         Kind = "none"
)

// WorkloadLevel is the team's self-assessed strain for the week.
type WorkloadLevel string

const (
	WorkloadLight  WorkloadLevel = "light"
	WorkloadNormal WorkloadLevel = "normal"
	WorkloadHeavy  WorkloadLevel = "heavy"
)

// TeamReport is a weekly self-assessment submitted by a team member for
// one project. Immutable once created; at most one exists per
// (project, week, year).
type TeamReport struct {
	ID               string        `json:"id"`
	ProjectID        string        `json:"project_id"`
	SubmittedBy      string        `json:"submitted_by"`
	WeekNumber       int           `json:"week_number"`
	Year             int           `json:"year"`
	TasksCompleted   int           `json:"tasks_completed"`
	TasksPending     int           `json:"tasks_pending"`
	WorkloadLevel    WorkloadLevel `json:"workload_level"`
	OnTimeConfidence int           `json:"on_time_confidence"`
	Blockers         []string      `json:"blockers"`
	CreatedAt        time.Time     `json:"created_at"`
}

// ClientReview is a weekly satisfaction submission from the client
// assigned to a project. Same immutability and per-week uniqueness as
// TeamReport.
type ClientReview struct {
	ID                  string    `json:"id"`
	ProjectID           string    `json:"project_id"`
	SubmittedBy         string    `json:"submitted_by"`
	WeekNumber          int       `json:"week_number"`
	Year                int       `json:"year"`
	DeliveryQuality     int       `json:"delivery_quality"`
	Responsiveness      int       `json:"responsiveness"`
	OverallSatisfaction int       `json:"overall_satisfaction"`
	Comment             string    `json:"comment,omitempty"`
	FlaggedProblem      bool      `json:"flagged_problem"`
	CreatedAt           time.Time `json:"created_at"`
}

// PendingProject is a project still missing the actor's submission for
// the current week.
type PendingProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PendingSummary lists what the actor still owes for the current week.
type PendingSummary struct {
	Kind       Kind             `json:"kind"`
	WeekNumber int              `json:"week_number"`
	Year       int              `json:"year"`
	Projects   []PendingProject `json:"projects"`
}
