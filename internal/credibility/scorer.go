// Package credibility scores how well a profile's claimed skills are backed by evidence.
package credibility

import (
	"fmt"
	"strings"

	"github.com/jonathan/placement-intel/internal/types"
)

// Evidence weights for a single skill claim. They intentionally sum past
// 1.0 before clamping: a claim backed by several signal types saturates
// instead of needing every signal to reach full strength.
const (
	repositoryWeight    = 0.4
	projectWeight       = 0.3
	certificationWeight = 0.2
	internshipWeight    = 0.3

	maxProjects       = 5
	maxCertifications = 3
)

// inflationPenalty is subtracted from a single flagged claim's contribution,
// never from the profile aggregate. Subtracting from the aggregate punishes
// candidates for listing more skills, which is the defect this fixes.
const inflationPenalty = 0.3

// saturationSkillCount is the number of fully evidenced skills that maxes
// out the trust score. Normalizing by a fixed budget instead of the skill
// count keeps the aggregate monotonic: an extra non-inflated skill can only
// add evidence, never dilute it.
const saturationSkillCount = 3

// strongEvidenceThreshold marks a per-skill evidence score worth calling out
// as a strength.
const strongEvidenceThreshold = 0.6

// Classification thresholds for the aggregate trust score.
const (
	highTrustThreshold   = 0.7
	mediumTrustThreshold = 0.4
)

// evidenceStrength computes the evidence score for one claim, clamped to [0,1].
func evidenceStrength(claim *types.SkillClaim) float64 {
	score := 0.0
	if claim.Evidence.HasRepository {
		score += repositoryWeight
	}
	score += projectWeight * (float64(claim.Evidence.ProjectCount) / maxProjects)
	score += certificationWeight * (float64(claim.Evidence.CertificationCount) / maxCertifications)
	if claim.Evidence.HasInternship {
		score += internshipWeight
	}
	return clamp01(score)
}

// isInflated reports whether a claim overstates proficiency: an advanced
// claim with no repository and fewer than two projects.
func isInflated(claim *types.SkillClaim) bool {
	return claim.ClaimedLevel == types.ClaimAdvanced &&
		!claim.Evidence.HasRepository &&
		claim.Evidence.ProjectCount < 2
}

// Score computes the trust score, classification, red flags and strengths
// for a profile. A profile with no skills scores 0 and classifies LOW.
func Score(profile *types.Profile) *types.CredibilityResult {
	if len(profile.Skills) == 0 {
		return &types.CredibilityResult{Score: 0, Level: types.LevelLow}
	}

	var redFlags []string
	var strengths []string
	total := 0.0
	repoBacked := 0

	for i := range profile.Skills {
		claim := &profile.Skills[i]
		strength := evidenceStrength(claim)

		// The penalty applies per flagged claim and floors at zero, so a
		// pile of inflated claims can never drag down evidence earned by
		// the candidate's legitimate skills.
		adjusted := strength
		if isInflated(claim) {
			adjusted = strength - inflationPenalty
			if adjusted < 0 {
				adjusted = 0
			}
			redFlags = append(redFlags, fmt.Sprintf("%s: claimed %q without supporting evidence", claim.Name, claim.ClaimedLevel))
		}

		if strength >= strongEvidenceThreshold {
			strengths = append(strengths, fmt.Sprintf("%s: strong evidence (%s)", claim.Name, describeEvidence(&claim.Evidence)))
		}
		if claim.Evidence.HasRepository {
			repoBacked++
		}

		total += adjusted
	}

	if repoBacked >= saturationSkillCount {
		strengths = append(strengths, fmt.Sprintf("%d skills backed by a repository", repoBacked))
	}

	score := clamp01(total / saturationSkillCount)

	return &types.CredibilityResult{
		Score:     score,
		Level:     classify(score),
		RedFlags:  redFlags,
		Strengths: strengths,
	}
}

func classify(score float64) types.Level {
	switch {
	case score >= highTrustThreshold:
		return types.LevelHigh
	case score >= mediumTrustThreshold:
		return types.LevelMedium
	default:
		return types.LevelLow
	}
}

// describeEvidence lists the evidence signals present on a claim.
func describeEvidence(ev *types.SkillEvidence) string {
	var parts []string
	if ev.HasRepository {
		parts = append(parts, "repository")
	}
	if ev.ProjectCount > 0 {
		parts = append(parts, fmt.Sprintf("%d projects", ev.ProjectCount))
	}
	if ev.CertificationCount > 0 {
		parts = append(parts, fmt.Sprintf("%d certifications", ev.CertificationCount))
	}
	if ev.HasInternship {
		parts = append(parts, "internship")
	}
	if len(parts) == 0 {
		return "no evidence"
	}
	return strings.Join(parts, ", ")
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
