// Package matching turns a profile/requirement pair into an
// accept/shortlist/reject decision through a single-pass state machine.
package matching

import (
	"github.com/jonathan/placement-intel/internal/credibility"
	"github.com/jonathan/placement-intel/internal/risk"
	"github.com/jonathan/placement-intel/internal/types"
)

// state is one stage of the decision pipeline. The machine runs each stage
// exactly once, in order, and short-circuits to decided on any hard failure.
type state int

const (
	stateEligibleCheck state = iota
	stateSkillGate
	stateScore
	stateRiskGate
	stateDecided
)

// Skill match ratio splits between mandatory and preferred coverage.
const (
	mandatoryShare = 0.7
	preferredShare = 0.3
)

// Credibility penalties applied to the base score.
const (
	lowCredibilityMultiplier    = 0.6
	mediumCredibilityMultiplier = 0.85
	lowCredibilityRejectBelow   = 0.5
)

// Decision thresholds at the risk gate.
const (
	selectThreshold              = 0.7
	shortlistThreshold           = 0.5
	shortlistThresholdMediumRisk = 0.55
)

// matchContext carries the working state of one decision through the stages.
type matchContext struct {
	profile  *types.Profile
	policy   *types.RequirementPolicy
	cohort   *types.Cohort
	cred     *types.CredibilityResult
	risk     *types.RiskResult
	score    float64
	decision *types.Decision
}

// Match runs the full decision pipeline for one profile against one
// requirement. It is a pure function of its inputs: no retries, no stored
// state, identical inputs always produce an identical decision.
func Match(profile *types.Profile, policy *types.RequirementPolicy, cohort *types.Cohort) *types.Decision {
	mc := &matchContext{profile: profile, policy: policy, cohort: cohort}

	for s := stateEligibleCheck; s != stateDecided; {
		switch s {
		case stateEligibleCheck:
			s = mc.eligibleCheck()
		case stateSkillGate:
			s = mc.skillGate()
		case stateScore:
			s = mc.computeScore()
		case stateRiskGate:
			s = mc.riskGate()
		}
	}
	return mc.decision
}

// eligibleCheck enforces the hard constraints. Failures reject immediately;
// no further stages run.
func (mc *matchContext) eligibleCheck() state {
	if mc.profile.GPA < mc.policy.MinGPA {
		return mc.reject(types.ReasonGPA)
	}
	if mc.profile.ActiveBacklogCount > mc.policy.MaxBacklogs {
		return mc.reject(types.ReasonBacklogs)
	}
	return stateSkillGate
}

// skillGate rejects when any mandatory skill is missing from the profile.
func (mc *matchContext) skillGate() state {
	for _, name := range mc.policy.MandatorySkills {
		if !mc.profile.HasSkill(name) {
			return mc.reject(types.ReasonLowSkillEvidence)
		}
	}
	return stateScore
}

// computeScore builds the weighted base score and applies the credibility
// penalty. A LOW-credibility candidate whose penalized score drops below
// the floor rejects here as a suspected fake skill profile.
func (mc *matchContext) computeScore() state {
	mc.cred = credibility.Score(mc.profile)

	// A tuned policy may carry a minimum-credibility admission threshold.
	if mc.policy.MinCredibility > 0 && mc.cred.Score < mc.policy.MinCredibility {
		return mc.reject(types.ReasonFakeSkill)
	}

	w := mc.policy.Weights
	base := mc.profile.GPA/10*w.GPAWeight +
		SkillMatchRatio(mc.profile, mc.policy)*w.SkillWeight +
		float64(mc.profile.CommunicationScore)/10*w.CommunicationWeight +
		float64(mc.profile.InterviewPracticeScore)/10*w.InterviewWeight

	switch mc.cred.Level {
	case types.LevelLow:
		base *= lowCredibilityMultiplier
		if base < lowCredibilityRejectBelow {
			mc.score = base
			return mc.reject(types.ReasonFakeSkill)
		}
	case types.LevelMedium:
		base *= mediumCredibilityMultiplier
	}

	mc.score = base
	return stateRiskGate
}

// SkillMatchRatio blends mandatory and preferred skill coverage. An empty
// mandatory set counts as full coverage; an empty preferred set contributes
// nothing rather than dividing by zero. The success predictor reuses this
// as a model feature.
func SkillMatchRatio(profile *types.Profile, policy *types.RequirementPolicy) float64 {
	names := profile.SkillNames()

	mandatoryRatio := 1.0
	if len(policy.MandatorySkills) > 0 {
		matched := 0
		for _, name := range policy.MandatorySkills {
			if names[name] {
				matched++
			}
		}
		mandatoryRatio = float64(matched) / float64(len(policy.MandatorySkills))
	}

	preferredRatio := 0.0
	if len(policy.PreferredSkills) > 0 {
		matched := 0
		for _, name := range policy.PreferredSkills {
			if names[name] {
				matched++
			}
		}
		preferredRatio = float64(matched) / float64(len(policy.PreferredSkills))
	}

	return mandatoryRatio*mandatoryShare + preferredRatio*preferredShare
}

// riskGate applies the risk-banded thresholds and decides.
func (mc *matchContext) riskGate() state {
	mc.risk = risk.Assess(mc.profile, mc.policy, mc.cohort, mc.cred)

	switch mc.risk.Level {
	case types.LevelHigh:
		// High-risk candidates are selected only on an outstanding score;
		// there is no shortlist band for them.
		if mc.score >= selectThreshold {
			return mc.decide(types.StatusSelected, types.ReasonNone)
		}
		return mc.reject(riskFailureReason(mc.risk))
	case types.LevelMedium:
		if mc.score >= selectThreshold {
			return mc.decide(types.StatusSelected, types.ReasonNone)
		}
		if mc.score >= shortlistThresholdMediumRisk {
			return mc.decide(types.StatusShortlisted, types.ReasonNone)
		}
		return mc.reject(types.ReasonLowSkillEvidence)
	default:
		if mc.score >= selectThreshold {
			return mc.decide(types.StatusSelected, types.ReasonNone)
		}
		if mc.score >= shortlistThreshold {
			return mc.decide(types.StatusShortlisted, types.ReasonNone)
		}
		return mc.reject(types.ReasonLowSkillEvidence)
	}
}

// riskFailureReason maps the dominant risk factor onto a failure reason a
// candidate can act on.
func riskFailureReason(r *types.RiskResult) types.FailureReason {
	top := r.TopFactor()
	if top == nil {
		return types.ReasonLowSkillEvidence
	}
	switch top.Kind {
	case types.FactorCredibility:
		return types.ReasonFakeSkill
	case types.FactorCommunication, types.FactorInterview:
		return types.ReasonPoorCommunication
	default:
		return types.ReasonLowSkillEvidence
	}
}

func (mc *matchContext) reject(reason types.FailureReason) state {
	return mc.decide(types.StatusRejected, reason)
}

func (mc *matchContext) decide(status types.DecisionStatus, reason types.FailureReason) state {
	mc.decision = &types.Decision{
		ProfileID:     mc.profile.ID,
		RequirementID: mc.policy.ID,
		Status:        status,
		Score:         mc.score,
		Credibility:   mc.cred,
		Risk:          mc.risk,
		FailureReason: reason,
	}
	return stateDecided
}
