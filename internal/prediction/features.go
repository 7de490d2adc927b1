// Package prediction trains a logistic-regression success model over
// historical outcomes and scores new profile/requirement pairs with it.
// The trainer runs on plain float64 slices with explicit loop bounds: no
// tensor library, so every arithmetic step stays auditable.
package prediction

import (
	"github.com/jonathan/placement-intel/internal/credibility"
	"github.com/jonathan/placement-intel/internal/matching"
	"github.com/jonathan/placement-intel/internal/risk"
	"github.com/jonathan/placement-intel/internal/types"
)

// featureNames fixes the feature order for the weight vector. Importance
// reporting keys off these names.
var featureNames = [...]string{
	"gpa",
	"skill_match_ratio",
	"credibility_score",
	"risk_score",
	"communication",
}

// featureCount is the width of every feature vector.
const featureCount = len(featureNames)

// featureVector maps one profile/requirement pair into model space. All
// features are pre-normalized to [0,1] so the zero-initialized trainer does
// not need per-feature standardization.
func featureVector(profile *types.Profile, policy *types.RequirementPolicy, cred *types.CredibilityResult, riskResult *types.RiskResult) [featureCount]float64 {
	return [featureCount]float64{
		profile.GPA / 10,
		matching.SkillMatchRatio(profile, policy),
		cred.Score,
		float64(riskResult.Score) / 10,
		float64(profile.CommunicationScore) / 10,
	}
}

// example is one labeled training row.
type example struct {
	features [featureCount]float64
	label    float64
}

// trainingSet builds labeled examples for one requirement from the cohort.
// Selections label 1, rejections 0; no-show records are excluded as
// uninformative about candidate quality. Records whose profile is missing
// from the snapshot are skipped.
func trainingSet(policy *types.RequirementPolicy, cohort *types.Cohort) []example {
	var set []example
	for _, record := range cohort.ForRequirement(policy.ID) {
		if record.Result == types.OutcomeNoShow {
			continue
		}
		profile := cohort.ProfileFor(record)
		if profile == nil {
			continue
		}
		cred := credibility.Score(profile)
		riskResult := risk.Assess(profile, policy, cohort, cred)

		label := 0.0
		if record.Result == types.OutcomeSelected {
			label = 1.0
		}
		set = append(set, example{
			features: featureVector(profile, policy, cred, riskResult),
			label:    label,
		})
	}
	return set
}
