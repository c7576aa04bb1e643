package project

import "time"

// Status represents the delivery phase of a project.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

// Valid reports whether the status is one of the known phases.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// ActiveStatuses are the phases in which weekly submissions are expected.
var ActiveStatuses = []Status{StatusPlanning, StatusInProgress}

// LoadRisk classifies team strain derived from the latest team report.
type LoadRisk string

const (
	RiskLow    LoadRisk = "low"
	RiskMedium LoadRisk = "medium"
	RiskHigh   LoadRisk = "high"
)

// Default score values for a freshly created project.
const (
	DefaultReliabilityScore = 50
	DefaultHappinessIndex   = 50
)

// Project owns the three derived health scores. The score fields are only
// ever written through ScoreUpdate by the submission aggregator; every other
// write path leaves them untouched.
type Project struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	Description              string    `json:"description,omitempty"`
	StartDate                time.Time `json:"start_date"`
	EndDate                  time.Time `json:"end_date"`
	TeamID                   string    `json:"team_id"`
	ClientID                 string    `json:"client_id"`
	Status                   Status    `json:"status"`
	DeliveryReliabilityScore int       `json:"delivery_reliability_score"`
	ClientHappinessIndex     int       `json:"client_happiness_index"`
	TeamLoadRisk             LoadRisk  `json:"team_load_risk"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// ScoreUpdate names the score fields to overwrite. Nil fields are left
// as-is, so a team report and a client review touching the same project
// never clobber each other's scores.
type ScoreUpdate struct {
	DeliveryReliabilityScore *int
	ClientHappinessIndex     *int
	TeamLoadRisk             *LoadRisk
}

// ListOptions filters project listings.
type ListOptions struct {
	TeamID   string
	ClientID string
	Statuses []Status
}
