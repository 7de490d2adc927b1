// Package analytics aggregates decision batches and outcome history into
// reporting figures: per-status distributions and a fairness audit across
// candidate cohorts.
package analytics

import (
	"github.com/jonathan/placement-intel/internal/types"
)

// MatchSummary aggregates one batch of decisions for a requirement.
type MatchSummary struct {
	Total                  int     `json:"total"`
	Selected               int     `json:"selected"`
	Shortlisted            int     `json:"shortlisted"`
	Rejected               int     `json:"rejected"`
	HardConstraintFailures int     `json:"hard_constraint_failures"`
	AverageScore           float64 `json:"average_score"`

	SelectedPct       float64 `json:"selected_pct"`
	ShortlistedPct    float64 `json:"shortlisted_pct"`
	RejectedPct       float64 `json:"rejected_pct"`
	HardConstraintPct float64 `json:"hard_constraint_pct"`
}

// Summarize computes the status distribution and average score for a batch
// of decisions. An empty batch summarizes to all zeros.
func Summarize(decisions []types.Decision) *MatchSummary {
	s := &MatchSummary{Total: len(decisions)}
	if s.Total == 0 {
		return s
	}

	scoreSum := 0.0
	for _, d := range decisions {
		scoreSum += d.Score
		switch d.Status {
		case types.StatusSelected:
			s.Selected++
		case types.StatusShortlisted:
			s.Shortlisted++
		case types.StatusRejected:
			s.Rejected++
		}
		if d.FailureReason == types.ReasonGPA || d.FailureReason == types.ReasonBacklogs {
			s.HardConstraintFailures++
		}
	}

	total := float64(s.Total)
	s.AverageScore = scoreSum / total
	s.SelectedPct = float64(s.Selected) / total * 100
	s.ShortlistedPct = float64(s.Shortlisted) / total * 100
	s.RejectedPct = float64(s.Rejected) / total * 100
	s.HardConstraintPct = float64(s.HardConstraintFailures) / total * 100
	return s
}
