// Package risk estimates placement-failure risk from historical and behavioral signals.
package risk

import (
	"fmt"
	"math"

	"github.com/jonathan/placement-intel/internal/types"
)

// Similarity bands for the historical failure lookup. Two candidates are
// "similar" when they share a branch and sit within these bands.
const (
	gpaBand           = 0.5
	communicationBand = 2
)

// Factor points.
const (
	manySimilarFailuresPoints = 4
	someSimilarFailuresPoints = 2
	lowCredibilityPoints      = 3
	mediumCredibilityPoints   = 1
	communicationGapPoints    = 2
	lowInterviewPoints        = 1
	lowTolerancePoints        = 1

	manySimilarFailures = 3
	communicationGap    = 2
	interviewFloor      = 5
	amplifierFloor      = 3
)

// Classification thresholds for the additive risk score.
const (
	highRiskThreshold   = 6
	mediumRiskThreshold = 3
)

// maxScore caps the additive score. All five factors together can exceed
// it by one point, so the cap keeps the published 0..10 scale honest.
const maxScore = 10

// similarTo reports whether a historical candidate matches the profile on
// branch, GPA band and communication band. The predicate is explicit on
// its bounds rather than ad hoc comparisons.
func similarTo(p *types.Profile, other *types.Profile) bool {
	if other == nil || p.Branch != other.Branch {
		return false
	}
	if math.Abs(p.GPA-other.GPA) > gpaBand {
		return false
	}
	return abs(p.CommunicationScore-other.CommunicationScore) <= communicationBand
}

// Assess computes the additive risk score for one profile/requirement pair
// from the historical cohort and the profile's credibility result. The
// score lands in [0,10]; triggered factors come back in evaluation order.
func Assess(profile *types.Profile, policy *types.RequirementPolicy, cohort *types.Cohort, cred *types.CredibilityResult) *types.RiskResult {
	result := &types.RiskResult{}
	history := cohort.ForRequirement(policy.ID)

	// 1. Failures among similar historical candidates for this requirement.
	similarFailures := 0
	for _, record := range history {
		if !record.IsFailure() {
			continue
		}
		if similarTo(profile, cohort.ProfileFor(record)) {
			similarFailures++
		}
	}
	switch {
	case similarFailures >= manySimilarFailures:
		addFactor(result, types.FactorHistory, manySimilarFailuresPoints,
			fmt.Sprintf("%d similar candidates (branch %s, GPA ±%.1f, communication ±%d) failed here before", similarFailures, profile.Branch, gpaBand, communicationBand))
	case similarFailures >= 1:
		addFactor(result, types.FactorHistory, someSimilarFailuresPoints,
			fmt.Sprintf("%d similar candidates (branch %s, GPA ±%.1f, communication ±%d) failed here before", similarFailures, profile.Branch, gpaBand, communicationBand))
	}

	// 2. Credibility of the claimed skills.
	switch cred.Level {
	case types.LevelLow:
		addFactor(result, types.FactorCredibility, lowCredibilityPoints,
			fmt.Sprintf("LOW resume credibility (trust score %.2f)", cred.Score))
	case types.LevelMedium:
		addFactor(result, types.FactorCredibility, mediumCredibilityPoints,
			fmt.Sprintf("MEDIUM resume credibility (trust score %.2f)", cred.Score))
	}

	// 3. Communication gap against the requirement's historical cohort.
	if mean, ok := meanCommunication(history, cohort); ok {
		if float64(profile.CommunicationScore) < mean-communicationGap {
			addFactor(result, types.FactorCommunication, communicationGapPoints,
				fmt.Sprintf("communication score %d is more than %d below the historical mean %.1f", profile.CommunicationScore, communicationGap, mean))
		}
	}

	// 4. Interview practice.
	if profile.InterviewPracticeScore < interviewFloor {
		addFactor(result, types.FactorInterview, lowInterviewPoints,
			fmt.Sprintf("interview practice score %d below %d", profile.InterviewPracticeScore, interviewFloor))
	}

	// 5. Low-tolerance employers treat borderline risk as worse. Heuristic
	// amplifier, not calibrated against outcome data.
	if policy.RiskTolerance == types.ToleranceLow && result.Score >= amplifierFloor {
		addFactor(result, types.FactorPolicy, lowTolerancePoints,
			fmt.Sprintf("employer has low risk tolerance and the running risk score is already %d", result.Score))
	}

	if result.Score > maxScore {
		result.Score = maxScore
	}
	result.Level = classify(result.Score)
	return result
}

// meanCommunication averages the communication score of the distinct
// historical candidates for a requirement. ok is false when the cohort has
// no resolvable candidates, which disables the gap factor.
func meanCommunication(history []types.OutcomeRecord, cohort *types.Cohort) (float64, bool) {
	seen := make(map[string]bool)
	sum := 0
	for _, record := range history {
		if seen[record.ProfileID] {
			continue
		}
		p := cohort.ProfileFor(record)
		if p == nil {
			continue
		}
		seen[record.ProfileID] = true
		sum += p.CommunicationScore
	}
	if len(seen) == 0 {
		return 0, false
	}
	return float64(sum) / float64(len(seen)), true
}

func addFactor(result *types.RiskResult, kind types.RiskFactorKind, points int, description string) {
	result.Score += points
	result.Factors = append(result.Factors, types.RiskFactor{Kind: kind, Points: points, Description: description})
}

func classify(score int) types.Level {
	switch {
	case score >= highRiskThreshold:
		return types.LevelHigh
	case score >= mediumRiskThreshold:
		return types.LevelMedium
	default:
		return types.LevelLow
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
