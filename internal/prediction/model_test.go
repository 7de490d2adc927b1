package prediction

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-intel/internal/credibility"
	"github.com/jonathan/placement-intel/internal/risk"
	"github.com/jonathan/placement-intel/internal/types"
	"github.com/jonathan/placement-intel/internal/validation"
)

func trainPolicy() *types.RequirementPolicy {
	return &types.RequirementPolicy{
		ID:              "req-1",
		MinGPA:          6.0,
		MandatorySkills: []string{"Go"},
		Weights:         types.DefaultWeights(),
		RiskTolerance:   types.ToleranceMedium,
	}
}

// trainingCohort builds a separable history: strong candidates were
// selected, weak ones rejected.
func trainingCohort(n int) *types.Cohort {
	cohort := &types.Cohort{Profiles: make(map[string]*types.Profile)}
	for i := 0; i < n; i++ {
		strong := i%2 == 0
		id := fmt.Sprintf("hist-%d", i)

		p := &types.Profile{
			ID:                     id,
			Branch:                 "CSE",
			GPA:                    6.2,
			CommunicationScore:     4,
			InterviewPracticeScore: 4,
		}
		result := types.OutcomeRejected
		reason := types.ReasonLowSkillEvidence
		if strong {
			p.GPA = 9.0
			p.CommunicationScore = 9
			p.InterviewPracticeScore = 9
			p.Skills = []types.SkillClaim{{
				Name:         "Go",
				ClaimedLevel: types.ClaimAdvanced,
				Evidence:     types.SkillEvidence{HasRepository: true, ProjectCount: 5, CertificationCount: 2, HasInternship: true},
			}}
			result = types.OutcomeSelected
			reason = types.ReasonNone
		}

		cohort.Profiles[id] = p
		cohort.Records = append(cohort.Records, types.OutcomeRecord{
			ProfileID:     id,
			RequirementID: "req-1",
			Result:        result,
			FailureReason: reason,
		})
	}
	return cohort
}

func predictFor(t *testing.T, p *Predictor, profile *types.Profile, policy *types.RequirementPolicy, cohort *types.Cohort) *types.Prediction {
	t.Helper()
	cred := credibility.Score(profile)
	riskResult := risk.Assess(profile, policy, cohort, cred)
	return p.Predict(profile, policy, cred, riskResult)
}

func TestTrain_InsufficientDataDegradesGracefully(t *testing.T) {
	policy := trainPolicy()
	cohort := trainingCohort(3)

	p, err := Train(policy, cohort)

	var insufficient *validation.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Have)
	assert.False(t, p.Trained())

	pred := predictFor(t, p, cohort.Profiles["hist-0"], policy, cohort)
	assert.Equal(t, 0.5, pred.Probability)
	assert.Equal(t, types.ConfidenceLow, pred.Confidence)
}

func TestTrain_NoShowRecordsExcluded(t *testing.T) {
	policy := trainPolicy()
	cohort := trainingCohort(4)
	// Pad with no-show records; they must not count toward the minimum.
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("ns-%d", i)
		cohort.Profiles[id] = &types.Profile{ID: id, Branch: "CSE", GPA: 7.0, CommunicationScore: 5, InterviewPracticeScore: 5}
		cohort.Records = append(cohort.Records, types.OutcomeRecord{
			ProfileID:     id,
			RequirementID: "req-1",
			Result:        types.OutcomeNoShow,
			FailureReason: types.ReasonNone,
		})
	}

	_, err := Train(policy, cohort)

	var insufficient *validation.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 4, insufficient.Have)
}

func TestTrain_SeparatesStrongFromWeak(t *testing.T) {
	policy := trainPolicy()
	cohort := trainingCohort(40)

	p, err := Train(policy, cohort)
	require.NoError(t, err)
	require.True(t, p.Trained())

	strongPred := predictFor(t, p, cohort.Profiles["hist-0"], policy, cohort)
	weakPred := predictFor(t, p, cohort.Profiles["hist-1"], policy, cohort)

	assert.Greater(t, strongPred.Probability, weakPred.Probability)
	assert.GreaterOrEqual(t, strongPred.Probability, 0.0)
	assert.LessOrEqual(t, strongPred.Probability, 1.0)
	assert.GreaterOrEqual(t, weakPred.Probability, 0.0)
	assert.LessOrEqual(t, weakPred.Probability, 1.0)
}

func TestTrain_DeterministicAcrossRuns(t *testing.T) {
	policy := trainPolicy()
	cohort := trainingCohort(20)

	first, err := Train(policy, cohort)
	require.NoError(t, err)
	second, err := Train(policy, cohort)
	require.NoError(t, err)

	assert.Equal(t, first.weights, second.weights)
	assert.Equal(t, first.bias, second.bias)
	assert.Equal(t, first.Epochs(), second.Epochs())
}

func TestFeatureImportance_NormalizedMagnitudes(t *testing.T) {
	policy := trainPolicy()
	p, err := Train(policy, trainingCohort(30))
	require.NoError(t, err)

	importance := p.FeatureImportance()
	require.Len(t, importance, featureCount)

	total := 0.0
	for name, v := range importance {
		assert.GreaterOrEqual(t, v, 0.0, "importance for %s", name)
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestFeatureImportance_UntrainedModelIsNil(t *testing.T) {
	p := &Predictor{}
	assert.Nil(t, p.FeatureImportance())
}

func TestSigmoid_ClampsExtremeLogits(t *testing.T) {
	assert.InDelta(t, 1.0, sigmoid(1e6), 1e-9)
	assert.InDelta(t, 0.0, sigmoid(-1e6), 1e-9)
	assert.Equal(t, 0.5, sigmoid(0))
}

func TestConfidence_Bands(t *testing.T) {
	assert.Equal(t, types.ConfidenceHigh, confidence(0.80))
	assert.Equal(t, types.ConfidenceHigh, confidence(0.20))
	assert.Equal(t, types.ConfidenceMedium, confidence(0.62))
	assert.Equal(t, types.ConfidenceLow, confidence(0.55))
}
