package types

import "math"

// RequirementCategory classifies the employer type behind a requirement.
type RequirementCategory string

const (
	CategoryEnterprise RequirementCategory = "enterprise"
	CategoryStartup    RequirementCategory = "startup"
	CategoryProduct    RequirementCategory = "product"
	CategoryService    RequirementCategory = "service"
)

// RiskTolerance is how much candidate risk an employer is willing to absorb.
type RiskTolerance string

const (
	ToleranceLow    RiskTolerance = "low"
	ToleranceMedium RiskTolerance = "medium"
	ToleranceHigh   RiskTolerance = "high"
)

// WeightPolicy holds the scoring weights for a requirement.
// The weights must sum to 1.0 within WeightSumTolerance; only the
// feedback tuner may change them, and only within the bounds it documents.
type WeightPolicy struct {
	GPAWeight           float64 `json:"gpa_weight" validate:"gte=0,lte=1"`
	SkillWeight         float64 `json:"skill_weight" validate:"gte=0,lte=1"`
	CommunicationWeight float64 `json:"communication_weight" validate:"gte=0,lte=1"`
	InterviewWeight     float64 `json:"interview_weight" validate:"gte=0,lte=1"`
}

// WeightSumTolerance is the allowed deviation of the weight sum from 1.0.
const WeightSumTolerance = 0.05

// Sum returns the total of all four weights.
func (w WeightPolicy) Sum() float64 {
	return w.GPAWeight + w.SkillWeight + w.CommunicationWeight + w.InterviewWeight
}

// Normalized reports whether the weights sum to 1.0 within tolerance.
func (w WeightPolicy) Normalized() bool {
	return math.Abs(w.Sum()-1.0) <= WeightSumTolerance
}

// DefaultWeights returns the baseline weight configuration used when a
// requirement does not specify its own.
func DefaultWeights() WeightPolicy {
	return WeightPolicy{
		GPAWeight:           0.3,
		SkillWeight:         0.4,
		CommunicationWeight: 0.2,
		InterviewWeight:     0.1,
	}
}

// RequirementPolicy describes one hiring requirement: eligibility rules,
// skill expectations, scoring weights and capacity.
type RequirementPolicy struct {
	ID              string              `json:"id" validate:"required"`
	Category        RequirementCategory `json:"category" validate:"oneof=enterprise startup product service"`
	MinGPA          float64             `json:"min_gpa" validate:"gte=5.0,lte=9.8"`
	MaxBacklogs     int                 `json:"max_backlogs" validate:"gte=0,lte=5"`
	MandatorySkills []string            `json:"mandatory_skill_names"`
	PreferredSkills []string            `json:"preferred_skill_names"`
	Weights         WeightPolicy        `json:"weight_policy"`
	RiskTolerance   RiskTolerance       `json:"risk_tolerance" validate:"oneof=low medium high"`
	Capacity        int                 `json:"capacity" validate:"gte=0"`

	// MinCredibility, when > 0, auto-rejects candidates whose credibility
	// score falls below it. Installed by the feedback tuner after repeated
	// fake-skill failures.
	MinCredibility float64 `json:"min_credibility,omitempty" validate:"gte=0,lte=1"`

	// Version increments on every tuner adjustment so callers can detect
	// and persist policy changes (optimistic concurrency).
	Version int `json:"version,omitempty"`
}
