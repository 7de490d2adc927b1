// Package feedback proposes bounded weight adjustments for underperforming
// requirement policies from their aggregate outcome statistics.
package feedback

import (
	"fmt"
	"sort"

	"github.com/jonathan/placement-intel/internal/types"
)

// An adjustment fires only when the success rate over shortlisted history
// drops below this floor.
const successRateFloor = 0.20

// Bounds on the single weight move an adjustment may make. Overshoot is
// clamped to the bound, never rejected; bounded drift is an expected
// operating mode.
const (
	adjustmentStep          = 0.1
	communicationWeightCap  = 0.4
	gpaWeightFloor          = 0.2
	minCredibilityThreshold = 0.6
)

// Tune analyzes one requirement's historical slice and, when the policy is
// underperforming, returns a NEW policy value with exactly one bounded
// adjustment applied plus a rationale reproducible from the same slice.
// The input policy is never mutated; callers decide whether to persist the
// new version.
func Tune(policy *types.RequirementPolicy, cohort *types.Cohort) *types.TuneResult {
	history := cohort.ForRequirement(policy.ID)

	shortlisted := 0
	selected := 0
	rejectedReasons := make(map[types.FailureReason]int)
	for _, record := range history {
		if record.WasShortlisted {
			shortlisted++
		}
		switch record.Result {
		case types.OutcomeSelected:
			selected++
		case types.OutcomeRejected:
			rejectedReasons[record.FailureReason]++
		}
	}

	shortlistedRate := 0.0
	if len(history) > 0 {
		shortlistedRate = float64(shortlisted) / float64(len(history))
	}

	// A requirement with no shortlisted history has nothing to learn from;
	// the guarded division reads as zero and no adjustment triggers.
	successRate := 0.0
	if shortlisted > 0 {
		successRate = float64(selected) / float64(shortlisted)
	}

	if shortlisted == 0 || successRate >= successRateFloor {
		return &types.TuneResult{Adjusted: false}
	}

	topReason := dominantReason(rejectedReasons)
	rationale := &types.TuneRationale{
		RequirementID:   policy.ID,
		ShortlistedRate: shortlistedRate,
		SuccessRate:     successRate,
		TopFailure:      topReason,
	}

	next := *policy
	switch topReason {
	case types.ReasonPoorCommunication:
		adjustCommunication(&next, rationale)
	case types.ReasonFakeSkill:
		installCredibilityGate(&next, rationale)
	default:
		// Other failure modes (gpa, missing skills) reflect candidate pool
		// quality rather than weighting, so no adjustment applies.
		return &types.TuneResult{Adjusted: false}
	}

	next.Version = policy.Version + 1
	return &types.TuneResult{Adjusted: true, Policy: &next, Rationale: rationale}
}

// dominantReason picks the most frequent rejection reason; equal counts
// resolve lexicographically so reruns over the same slice agree.
func dominantReason(counts map[types.FailureReason]int) types.FailureReason {
	reasons := make([]types.FailureReason, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool {
		if counts[reasons[i]] != counts[reasons[j]] {
			return counts[reasons[i]] > counts[reasons[j]]
		}
		return reasons[i] < reasons[j]
	})
	if len(reasons) == 0 {
		return types.ReasonNone
	}
	return reasons[0]
}

// adjustCommunication shifts weight from GPA to communication within the
// documented bounds, then renormalizes the untouched weights so the policy
// still sums to 1.0.
func adjustCommunication(policy *types.RequirementPolicy, rationale *types.TuneRationale) {
	w := policy.Weights

	newComm := min(communicationWeightCap, w.CommunicationWeight+adjustmentStep)
	newGPA := max(gpaWeightFloor, w.GPAWeight-adjustmentStep)

	rationale.Changes = append(rationale.Changes,
		types.WeightChange{Field: "communication_weight", OldValue: w.CommunicationWeight, NewValue: newComm},
		types.WeightChange{Field: "gpa_weight", OldValue: w.GPAWeight, NewValue: newGPA},
	)

	// Distribute whatever the caps withheld across the unmodified weights,
	// proportionally, so the sum stays at 1.0.
	residual := 1.0 - (newComm + newGPA + w.SkillWeight + w.InterviewWeight)
	unmodified := w.SkillWeight + w.InterviewWeight
	newSkill := w.SkillWeight
	newInterview := w.InterviewWeight
	if unmodified > 0 {
		newSkill += residual * (w.SkillWeight / unmodified)
		newInterview += residual * (w.InterviewWeight / unmodified)
	} else {
		newComm += residual
	}

	policy.Weights = types.WeightPolicy{
		GPAWeight:           newGPA,
		SkillWeight:         newSkill,
		CommunicationWeight: newComm,
		InterviewWeight:     newInterview,
	}
	rationale.Summary = fmt.Sprintf(
		"success rate %.0f%% below %.0f%% with poor_communication as the top rejection reason: shifted %.2f weight from gpa to communication",
		rationale.SuccessRate*100, successRateFloor*100, adjustmentStep)
}

// installCredibilityGate sets the minimum-credibility admission threshold
// so future LOW-credibility candidates auto-reject regardless of score.
func installCredibilityGate(policy *types.RequirementPolicy, rationale *types.TuneRationale) {
	rationale.Changes = append(rationale.Changes, types.WeightChange{
		Field:    "min_credibility",
		OldValue: policy.MinCredibility,
		NewValue: minCredibilityThreshold,
	})
	policy.MinCredibility = minCredibilityThreshold
	rationale.Summary = fmt.Sprintf(
		"success rate %.0f%% below %.0f%% with fake_skill as the top rejection reason: admission now requires credibility >= %.1f",
		rationale.SuccessRate*100, successRateFloor*100, minCredibilityThreshold)
}
