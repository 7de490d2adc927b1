// Package explanation renders decision results for human audiences. It is
// pure formatting over the structured results; all scoring logic lives
// upstream, and the rendered text must mirror the decision path exactly.
package explanation

import (
	"fmt"
	"strings"

	"github.com/jonathan/placement-intel/internal/types"
)

// Audience selects the register of an explanation.
type Audience string

const (
	// AudienceCandidate gets an actionable summary without internal scoring detail.
	AudienceCandidate Audience = "candidate"
	// AudienceReviewer gets the full decision path: score, credibility, risk factors.
	AudienceReviewer Audience = "reviewer"
)

// Explain renders a decision for the given audience. Unknown audiences fall
// back to the reviewer rendering, which is the superset.
func Explain(decision *types.Decision, audience Audience) string {
	if audience == AudienceCandidate {
		return forCandidate(decision)
	}
	return forReviewer(decision)
}

func forCandidate(d *types.Decision) string {
	var sb strings.Builder

	switch d.Status {
	case types.StatusSelected:
		sb.WriteString(fmt.Sprintf("Congratulations! You were selected for requirement %s.\n", d.RequirementID))
	case types.StatusShortlisted:
		sb.WriteString(fmt.Sprintf("Good news: you were shortlisted for requirement %s. The final decision depends on interview performance.\n", d.RequirementID))
	default:
		sb.WriteString(fmt.Sprintf("Unfortunately your application for requirement %s was not successful.\n", d.RequirementID))
		sb.WriteString(fmt.Sprintf("Reason: %s.\n", reasonText(d.FailureReason)))
	}

	if d.Credibility != nil && len(d.Credibility.RedFlags) > 0 {
		sb.WriteString("\nYour resume raised questions:\n")
		for _, flag := range d.Credibility.RedFlags {
			sb.WriteString(fmt.Sprintf("  - %s\n", flag))
		}
	}

	if recs := recommendations(d); len(recs) > 0 {
		sb.WriteString("\nHow to improve:\n")
		for _, rec := range recs {
			sb.WriteString(fmt.Sprintf("  - %s\n", rec))
		}
	}
	return sb.String()
}

func forReviewer(d *types.Decision) string {
	var sb strings.Builder

	sb.WriteString("=== DECISION REPORT ===\n")
	sb.WriteString(fmt.Sprintf("Candidate:   %s\n", d.ProfileID))
	sb.WriteString(fmt.Sprintf("Requirement: %s\n", d.RequirementID))
	sb.WriteString(fmt.Sprintf("Status:      %s\n", strings.ToUpper(string(d.Status))))
	sb.WriteString(fmt.Sprintf("Score:       %.2f\n", d.Score))
	if d.Status == types.StatusRejected {
		sb.WriteString(fmt.Sprintf("Failure:     %s\n", d.FailureReason))
	}

	if d.Credibility != nil {
		sb.WriteString(fmt.Sprintf("\n--- CREDIBILITY: %s (%.2f) ---\n", d.Credibility.Level, d.Credibility.Score))
		for _, flag := range d.Credibility.RedFlags {
			sb.WriteString(fmt.Sprintf("  [!] %s\n", flag))
		}
		for _, strength := range d.Credibility.Strengths {
			sb.WriteString(fmt.Sprintf("  [+] %s\n", strength))
		}
	}

	if d.Risk != nil {
		sb.WriteString(fmt.Sprintf("\n--- RISK: %s (%d/10) ---\n", d.Risk.Level, d.Risk.Score))
		if len(d.Risk.Factors) == 0 {
			sb.WriteString("  no risk factors triggered\n")
		}
		for _, factor := range d.Risk.Factors {
			sb.WriteString(fmt.Sprintf("  +%d %s\n", factor.Points, factor.Description))
		}
	}

	if d.Credibility == nil && d.Risk == nil {
		sb.WriteString("\nEligibility failed before scoring; no credibility or risk assessment ran.\n")
	}
	return sb.String()
}

// AllocationReport renders the capacity-ranking outcome for one candidate
// within an allocation, including the cutoff gap for capacity rejections.
func AllocationReport(allocation *types.AllocationResult, profileID string) string {
	var sb strings.Builder
	sb.WriteString("=== SEAT ALLOCATION REPORT ===\n")
	sb.WriteString(fmt.Sprintf("Requirement:  %s\n", allocation.RequirementID))
	sb.WriteString(fmt.Sprintf("Capacity:     %d\n", allocation.Capacity))
	sb.WriteString(fmt.Sprintf("Cutoff score: %.2f\n", allocation.CutoffScore))

	decision, bucket := findInAllocation(allocation, profileID)
	if decision == nil {
		sb.WriteString(fmt.Sprintf("\nCandidate %s was not part of this allocation.\n", profileID))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("\nCandidate: %s\n", profileID))
	sb.WriteString(fmt.Sprintf("Result:    %s\n", bucket))
	sb.WriteString(fmt.Sprintf("Score:     %.2f\n", decision.Score))

	if decision.FailureReason == types.ReasonCapacity {
		gap := allocation.CutoffScore - decision.Score
		sb.WriteString(fmt.Sprintf("Gap to cutoff: %.2f\n", gap))
		sb.WriteString("All seats were filled by higher-ranked candidates; the profile itself met the requirement.\n")
	}
	return sb.String()
}

func findInAllocation(allocation *types.AllocationResult, profileID string) (*types.Decision, string) {
	buckets := []struct {
		name      string
		decisions []types.Decision
	}{
		{"SELECTED", allocation.Selected},
		{"WAITLISTED", allocation.Waitlisted},
		{"REJECTED", allocation.Rejected},
	}
	for _, b := range buckets {
		for i := range b.decisions {
			if b.decisions[i].ProfileID == profileID {
				return &b.decisions[i], b.name
			}
		}
	}
	return nil, ""
}

// reasonText translates a failure reason into candidate-facing language.
func reasonText(reason types.FailureReason) string {
	switch reason {
	case types.ReasonGPA:
		return "your GPA is below the requirement's minimum"
	case types.ReasonBacklogs:
		return "you have more active backlogs than the requirement allows"
	case types.ReasonLowSkillEvidence:
		return "your skill profile does not cover the requirement strongly enough"
	case types.ReasonPoorCommunication:
		return "your communication and interview readiness scores fall short"
	case types.ReasonFakeSkill:
		return "your claimed skills are not sufficiently backed by evidence"
	case types.ReasonCapacity:
		return "all open positions were filled by higher-ranked candidates"
	default:
		return string(reason)
	}
}

// recommendations derives improvement advice from the decision's weak spots.
func recommendations(d *types.Decision) []string {
	var recs []string
	if d.Credibility != nil && len(d.Credibility.RedFlags) > 0 {
		recs = append(recs, "back your claimed skills with public repositories and projects")
	}
	switch d.FailureReason {
	case types.ReasonLowSkillEvidence:
		recs = append(recs, "add projects covering the requirement's mandatory skills")
	case types.ReasonPoorCommunication:
		recs = append(recs, "practice mock interviews to raise communication and interview scores")
	case types.ReasonCapacity:
		recs = append(recs, "target requirements with more open positions in the next cycle")
	}
	return recs
}
