// Package allocation turns a requirement's candidate decisions into a
// capacity-bounded selection with a deterministic ranking.
package allocation

import (
	"math"
	"sort"

	"github.com/jonathan/placement-intel/internal/types"
)

// waitlistFraction sizes the waitlist relative to capacity (rounded up).
const waitlistFraction = 0.5

// Allocate ranks the shortlisted and selected decisions for one requirement
// and partitions them against the given capacity. Candidates beyond capacity
// and waitlist are rejected with the capacity reason, overriding their
// original status. A capacity of zero selects nobody and is not an error.
//
// Ranking is reproducible across runs: descending score, then ascending
// risk score, then ascending profile id. Insertion order never matters.
func Allocate(requirementID string, decisions []types.Decision, capacity int) *types.AllocationResult {
	result := &types.AllocationResult{
		RequirementID: requirementID,
		Capacity:      capacity,
	}

	candidates := make([]types.Decision, 0, len(decisions))
	for _, d := range decisions {
		if d.Status == types.StatusShortlisted || d.Status == types.StatusSelected {
			candidates = append(candidates, d)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		ri, rj := riskScore(&candidates[i]), riskScore(&candidates[j])
		if ri != rj {
			return ri < rj
		}
		return candidates[i].ProfileID < candidates[j].ProfileID
	})

	if capacity < 0 {
		capacity = 0
	}
	waitlistSize := int(math.Ceil(float64(capacity) * waitlistFraction))

	for i, d := range candidates {
		switch {
		case i < capacity:
			d.Status = types.StatusSelected
			d.FailureReason = types.ReasonNone
			result.Selected = append(result.Selected, d)
		case i < capacity+waitlistSize:
			d.Status = types.StatusShortlisted
			d.FailureReason = types.ReasonNone
			result.Waitlisted = append(result.Waitlisted, d)
		default:
			d.Status = types.StatusRejected
			d.FailureReason = types.ReasonCapacity
			result.Rejected = append(result.Rejected, d)
		}
	}

	if len(result.Selected) > 0 {
		result.CutoffScore = result.Selected[len(result.Selected)-1].Score
	}
	return result
}

// riskScore reads a decision's risk score, treating a missing risk result
// as zero so ranking stays total.
func riskScore(d *types.Decision) int {
	if d.Risk == nil {
		return 0
	}
	return d.Risk.Score
}
