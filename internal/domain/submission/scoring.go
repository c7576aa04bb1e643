package submission

import (
	"math"

	"github.com/rpggio/pulseboard/internal/domain/project"
)

// The score functions are pure and total over a single submission. Their
// thresholds are exact contracts: dashboards, seeds, and historical data
// all assume these constants.

// DeliveryReliability derives the 0-100 delivery reliability score from a
// team report. Base 50, up to +25 from on-time confidence, up to +15 from
// the completion ratio, up to -15 from blockers.
func DeliveryReliability(r *TeamReport) int {
	score := 50.0

	score += float64(r.OnTimeConfidence) / 5 * 25

	if total := r.TasksCompleted + r.TasksPending; total > 0 {
		score += float64(r.TasksCompleted) / float64(total) * 15
	}

	penalty := len(r.Blockers) * 5
	if penalty > 15 {
		penalty = 15
	}
	score -= float64(penalty)

	return clampScore(int(math.Round(score)))
}

// ClientHappiness derives the 0-100 happiness index from a client review.
// Satisfaction weighs 12 per point, responsiveness 6, quality 2; a flagged
// problem costs a flat 20.
func ClientHappiness(v *ClientReview) int {
	score := v.OverallSatisfaction*12 + v.Responsiveness*6 + v.DeliveryQuality*2

	if v.FlaggedProblem {
		score -= 20
	}

	return clampScore(score)
}

// TeamLoadRisk classifies team strain from a team report. The high
// condition dominates: a heavy workload is high risk regardless of task
// counts, and vice versa.
func TeamLoadRisk(r *TeamReport) project.LoadRisk {
	if r.WorkloadLevel == WorkloadHeavy || r.TasksPending > 10 || len(r.Blockers) > 3 {
		return project.RiskHigh
	}

	if r.WorkloadLevel == WorkloadNormal && (r.TasksPending > 5 || len(r.Blockers) > 1) {
		return project.RiskMedium
	}

	return project.RiskLow
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
