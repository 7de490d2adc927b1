package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-intel/internal/types"
)

func validProfile() *types.Profile {
	return &types.Profile{
		ID:                     "p1",
		Branch:                 "CSE",
		GPA:                    7.4,
		ActiveBacklogCount:     1,
		CommunicationScore:     6,
		InterviewPracticeScore: 5,
		Skills: []types.SkillClaim{{
			Name:         "Go",
			ClaimedLevel: types.ClaimIntermediate,
			Evidence:     types.SkillEvidence{HasRepository: true, ProjectCount: 2},
		}},
	}
}

func TestCheckProfile_Valid(t *testing.T) {
	assert.NoError(t, CheckProfile(validProfile()))
}

func TestCheckProfile_Nil(t *testing.T) {
	err := CheckProfile(nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCheckProfile_GPAOutOfRange(t *testing.T) {
	p := validProfile()
	p.GPA = 10.5

	err := CheckProfile(p)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "profile", verr.Entity)
	assert.Equal(t, "p1", verr.ID)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "GPA", verr.Fields[0].Field)
}

func TestCheckProfile_NestedEvidenceOutOfRange(t *testing.T) {
	p := validProfile()
	p.Skills[0].Evidence.ProjectCount = 9

	err := CheckProfile(p)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCheckProfile_CollectsAllViolations(t *testing.T) {
	p := validProfile()
	p.GPA = 2.0
	p.CommunicationScore = 0

	err := CheckProfile(p)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Error(), "2 invalid fields")
}

func TestCheckRequirement_Valid(t *testing.T) {
	r := &types.RequirementPolicy{
		ID:            "req-1",
		Category:      types.CategoryStartup,
		MinGPA:        6.5,
		Weights:       types.DefaultWeights(),
		RiskTolerance: types.ToleranceHigh,
		Capacity:      2,
	}
	assert.NoError(t, CheckRequirement(r))
}

func TestCheckRequirement_WeightSumViolation(t *testing.T) {
	r := &types.RequirementPolicy{
		ID:       "req-1",
		Category: types.CategoryStartup,
		MinGPA:   6.5,
		Weights: types.WeightPolicy{
			GPAWeight:           0.5,
			SkillWeight:         0.5,
			CommunicationWeight: 0.5,
			InterviewWeight:     0.5,
		},
		RiskTolerance: types.ToleranceHigh,
	}

	err := CheckRequirement(r)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "weight_policy", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Message, "sum to 2.000")
}

func TestCheckOutcome_InvalidResult(t *testing.T) {
	o := &types.OutcomeRecord{
		ProfileID:     "p1",
		RequirementID: "req-1",
		Result:        types.OutcomeResult("ghosted"),
		FailureReason: types.ReasonNone,
	}

	err := CheckOutcome(o)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "outcome", verr.Entity)
}

func TestValidationError_SingleFieldMessage(t *testing.T) {
	err := &ValidationError{
		Entity: "profile",
		ID:     "p1",
		Fields: []FieldError{{Field: "gpa", Message: "out of range"}},
	}
	assert.Equal(t, "validation error: profile p1: gpa out of range", err.Error())
}
