package matching

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-intel/internal/types"
)

func evidencedClaim(name string) types.SkillClaim {
	return types.SkillClaim{
		Name:         name,
		ClaimedLevel: types.ClaimAdvanced,
		Evidence: types.SkillEvidence{
			HasRepository:      true,
			ProjectCount:       4,
			CertificationCount: 2,
			HasInternship:      true,
		},
	}
}

func strongProfile() *types.Profile {
	return &types.Profile{
		ID:                     "p1",
		Branch:                 "CSE",
		GPA:                    8.5,
		ActiveBacklogCount:     0,
		CommunicationScore:     8,
		InterviewPracticeScore: 8,
		Skills:                 []types.SkillClaim{evidencedClaim("Go"), evidencedClaim("SQL"), evidencedClaim("DSA")},
	}
}

func basePolicy() *types.RequirementPolicy {
	return &types.RequirementPolicy{
		ID:              "req-1",
		Category:        types.CategoryProduct,
		MinGPA:          7.0,
		MaxBacklogs:     1,
		MandatorySkills: []string{"Go", "SQL"},
		PreferredSkills: []string{"DSA", "Kubernetes"},
		Weights:         types.DefaultWeights(),
		RiskTolerance:   types.ToleranceMedium,
		Capacity:        5,
	}
}

func TestMatch_GPAHardConstraint(t *testing.T) {
	profile := strongProfile()
	profile.GPA = 6.0
	policy := basePolicy()
	policy.MinGPA = 7.5

	decision := Match(profile, policy, &types.Cohort{})

	assert.Equal(t, types.StatusRejected, decision.Status)
	assert.Equal(t, types.ReasonGPA, decision.FailureReason)
	// Short-circuit: no scoring ran.
	assert.Equal(t, 0.0, decision.Score)
	assert.Nil(t, decision.Credibility)
}

func TestMatch_BacklogHardConstraint(t *testing.T) {
	profile := strongProfile()
	profile.ActiveBacklogCount = 3

	decision := Match(profile, basePolicy(), &types.Cohort{})

	assert.Equal(t, types.StatusRejected, decision.Status)
	assert.Equal(t, types.ReasonBacklogs, decision.FailureReason)
}

func TestMatch_MissingMandatorySkill(t *testing.T) {
	profile := strongProfile()
	profile.Skills = []types.SkillClaim{evidencedClaim("Python")}

	decision := Match(profile, basePolicy(), &types.Cohort{})

	assert.Equal(t, types.StatusRejected, decision.Status)
	assert.Equal(t, types.ReasonLowSkillEvidence, decision.FailureReason)
}

func TestMatch_StrongCandidateSelected(t *testing.T) {
	decision := Match(strongProfile(), basePolicy(), &types.Cohort{})

	// gpa 0.85*0.3 + skill (1.0*0.7 + 0.5*0.3)*0.4 + comm 0.8*0.2 + interview 0.8*0.1
	// = 0.255 + 0.34 + 0.16 + 0.08 = 0.835, HIGH credibility leaves it untouched.
	require.Equal(t, types.StatusSelected, decision.Status)
	assert.InDelta(t, 0.835, decision.Score, 0.001)
	assert.Equal(t, types.ReasonNone, decision.FailureReason)
	require.NotNil(t, decision.Credibility)
	require.NotNil(t, decision.Risk)
}

func TestMatch_SkillOrderIndependent(t *testing.T) {
	policy := basePolicy()
	base := Match(strongProfile(), policy, &types.Cohort{})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 10; i++ {
		profile := strongProfile()
		rng.Shuffle(len(profile.Skills), func(a, b int) {
			profile.Skills[a], profile.Skills[b] = profile.Skills[b], profile.Skills[a]
		})
		permuted := Match(profile, policy, &types.Cohort{})

		assert.Equal(t, base.Status, permuted.Status)
		assert.Equal(t, base.Score, permuted.Score)
		assert.Equal(t, base.FailureReason, permuted.FailureReason)
	}
}

func TestMatch_LowCredibilityPenaltyRejects(t *testing.T) {
	profile := strongProfile()
	// Claims with no evidence: LOW credibility, x0.6 penalty.
	for i := range profile.Skills {
		profile.Skills[i].ClaimedLevel = types.ClaimIntermediate
		profile.Skills[i].Evidence = types.SkillEvidence{}
	}

	decision := Match(profile, basePolicy(), &types.Cohort{})

	// Base 0.835 * 0.6 = 0.501 passes the floor but lands below every
	// selection band; with LOW credibility adding +3 risk the candidate
	// still rates MEDIUM risk and misses the 0.55 shortlist cut.
	assert.Equal(t, types.StatusRejected, decision.Status)
}

func TestMatch_MediumCredibilityPenaltyApplied(t *testing.T) {
	profile := strongProfile()
	// Repository-only evidence: per-skill strength 0.4, trust 3*0.4/3 = 0.4 MEDIUM.
	for i := range profile.Skills {
		profile.Skills[i].Evidence = types.SkillEvidence{HasRepository: true}
	}

	decision := Match(profile, basePolicy(), &types.Cohort{})

	require.NotNil(t, decision.Credibility)
	assert.Equal(t, types.LevelMedium, decision.Credibility.Level)
	assert.InDelta(t, 0.835*0.85, decision.Score, 0.001)
	assert.Equal(t, types.StatusSelected, decision.Status)
}

func TestMatch_MinCredibilityGate(t *testing.T) {
	policy := basePolicy()
	policy.MinCredibility = 0.6

	profile := strongProfile()
	for i := range profile.Skills {
		profile.Skills[i].Evidence = types.SkillEvidence{HasRepository: true}
	}

	decision := Match(profile, policy, &types.Cohort{})

	assert.Equal(t, types.StatusRejected, decision.Status)
	assert.Equal(t, types.ReasonFakeSkill, decision.FailureReason)
}

func TestMatch_HighRiskNeedsOutstandingScore(t *testing.T) {
	// Build a cohort where similar candidates repeatedly failed, pushing
	// risk to HIGH for a mid-scoring profile.
	cohort := &types.Cohort{Profiles: map[string]*types.Profile{}}
	for _, id := range []string{"h1", "h2", "h3"} {
		hist := strongProfile()
		hist.ID = id
		hist.CommunicationScore = 10
		cohort.Profiles[id] = hist
		cohort.Records = append(cohort.Records, types.OutcomeRecord{
			ProfileID:     id,
			RequirementID: "req-1",
			Result:        types.OutcomeRejected,
			FailureReason: types.ReasonPoorCommunication,
		})
	}

	profile := strongProfile()
	profile.GPA = 8.2 // inside the ±0.5 GPA band of the failed cohort
	profile.CommunicationScore = 8
	profile.InterviewPracticeScore = 4 // +1 interview factor on top of +4 history

	// Mid score via weak preferred coverage and moderate communication:
	// still similar enough to the failed cohort.
	policy := basePolicy()
	policy.RiskTolerance = types.ToleranceLow

	decision := Match(profile, policy, cohort)

	require.NotNil(t, decision.Risk)
	require.Equal(t, types.LevelHigh, decision.Risk.Level)
	// Score 0.786 >= 0.7, so even a HIGH-risk candidate is selected.
	assert.Equal(t, types.StatusSelected, decision.Status)
}

func TestMatch_HighRiskLowScoreRejectedWithRiskReason(t *testing.T) {
	cohort := &types.Cohort{Profiles: map[string]*types.Profile{}}
	for _, id := range []string{"h1", "h2", "h3"} {
		hist := &types.Profile{ID: id, Branch: "CSE", GPA: 7.2, CommunicationScore: 5, InterviewPracticeScore: 5}
		cohort.Profiles[id] = hist
		cohort.Records = append(cohort.Records, types.OutcomeRecord{
			ProfileID:     id,
			RequirementID: "req-1",
			Result:        types.OutcomeRejected,
			FailureReason: types.ReasonLowSkillEvidence,
		})
	}

	profile := &types.Profile{
		ID:                     "p1",
		Branch:                 "CSE",
		GPA:                    7.0,
		CommunicationScore:     5,
		InterviewPracticeScore: 4,
		Skills: []types.SkillClaim{
			// Repository-only evidence keeps credibility at MEDIUM so the
			// candidate survives the credibility floor and reaches the risk gate.
			{Name: "Go", ClaimedLevel: types.ClaimIntermediate, Evidence: types.SkillEvidence{HasRepository: true}},
			{Name: "SQL", ClaimedLevel: types.ClaimIntermediate, Evidence: types.SkillEvidence{HasRepository: true}},
			{Name: "Python", ClaimedLevel: types.ClaimIntermediate, Evidence: types.SkillEvidence{HasRepository: true}},
		},
	}
	policy := basePolicy()
	policy.MinGPA = 6.5

	decision := Match(profile, policy, cohort)

	require.NotNil(t, decision.Risk)
	assert.Equal(t, types.LevelHigh, decision.Risk.Level)
	assert.Equal(t, types.StatusRejected, decision.Status)
	// History dominates the risk factors, so the reason maps to evidence.
	assert.Equal(t, types.ReasonLowSkillEvidence, decision.FailureReason)
}

func TestSkillMatchRatio_EmptyMandatorySet(t *testing.T) {
	policy := basePolicy()
	policy.MandatorySkills = nil
	policy.PreferredSkills = nil

	// Empty mandatory set counts as full coverage, empty preferred adds nothing.
	assert.InDelta(t, 0.7, SkillMatchRatio(strongProfile(), policy), 0.0001)
}

func TestMatch_IsDeterministic(t *testing.T) {
	cohort := &types.Cohort{}
	first := Match(strongProfile(), basePolicy(), cohort)
	for i := 0; i < 5; i++ {
		again := Match(strongProfile(), basePolicy(), cohort)
		assert.Equal(t, first, again)
	}
}
