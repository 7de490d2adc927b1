package types

// Level is a three-band classification used for both credibility and risk.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// CredibilityResult is the output of the credibility scorer for one profile.
type CredibilityResult struct {
	Score     float64  `json:"score"`
	Level     Level    `json:"level"`
	RedFlags  []string `json:"red_flags,omitempty"`
	Strengths []string `json:"strengths,omitempty"`
}

// RiskFactorKind identifies which signal triggered a risk factor.
type RiskFactorKind string

const (
	FactorHistory       RiskFactorKind = "history"
	FactorCredibility   RiskFactorKind = "credibility"
	FactorCommunication RiskFactorKind = "communication"
	FactorInterview     RiskFactorKind = "interview"
	FactorPolicy        RiskFactorKind = "policy"
)

// RiskFactor is one triggered contributor to a risk score, carrying a
// human-readable description citing the numbers that triggered it.
type RiskFactor struct {
	Kind        RiskFactorKind `json:"kind"`
	Points      int            `json:"points"`
	Description string         `json:"description"`
}

// RiskResult is the output of the risk assessor for one profile/requirement pair.
type RiskResult struct {
	Score   int          `json:"score"`
	Level   Level        `json:"level"`
	Factors []RiskFactor `json:"factors,omitempty"`
}

// TopFactor returns the highest-scoring triggered factor, or nil when no
// factor fired. Ties resolve to the earlier factor in evaluation order.
func (r *RiskResult) TopFactor() *RiskFactor {
	var top *RiskFactor
	for i := range r.Factors {
		if top == nil || r.Factors[i].Points > top.Points {
			top = &r.Factors[i]
		}
	}
	return top
}

// DecisionStatus is the terminal status of a matching decision.
type DecisionStatus string

const (
	StatusRejected    DecisionStatus = "rejected"
	StatusShortlisted DecisionStatus = "shortlisted"
	StatusSelected    DecisionStatus = "selected"
)

// Decision is the ephemeral result of matching one profile against one
// requirement. It is recomputed per request and never persisted by the engine.
type Decision struct {
	ProfileID     string             `json:"profile_id"`
	RequirementID string             `json:"requirement_id"`
	Status        DecisionStatus     `json:"status"`
	Score         float64            `json:"score"`
	Credibility   *CredibilityResult `json:"credibility_result,omitempty"`
	Risk          *RiskResult        `json:"risk_result,omitempty"`
	FailureReason FailureReason      `json:"failure_reason"`
}
