package types

// WeightChange records one weight moving from an old value to a new one.
type WeightChange struct {
	Field    string  `json:"field"`
	OldValue float64 `json:"old_value"`
	NewValue float64 `json:"new_value"`
}

// TuneRationale explains why an adjustment fired, citing the statistics
// that triggered it. It is the primary audit artifact of a tuner run and
// must be reproducible from the same input log slice.
type TuneRationale struct {
	RequirementID   string         `json:"requirement_id"`
	ShortlistedRate float64        `json:"shortlisted_rate"`
	SuccessRate     float64        `json:"success_rate"`
	TopFailure      FailureReason  `json:"top_failure_reason"`
	Changes         []WeightChange `json:"changes,omitempty"`
	Summary         string         `json:"summary"`
}

// TuneResult is the output of one feedback tuner run. When Adjusted is
// true, Policy holds a new policy value with an incremented version; the
// input policy is never mutated.
type TuneResult struct {
	Adjusted  bool               `json:"adjusted"`
	Policy    *RequirementPolicy `json:"policy,omitempty"`
	Rationale *TuneRationale     `json:"rationale,omitempty"`
}
