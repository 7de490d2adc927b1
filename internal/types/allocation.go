package types

// AllocationResult partitions a requirement's candidate decisions into
// capacity-bounded selections. Candidates pushed out by capacity keep their
// full decision record but carry the capacity failure reason.
type AllocationResult struct {
	RequirementID string     `json:"requirement_id"`
	Capacity      int        `json:"capacity"`
	Selected      []Decision `json:"selected"`
	Waitlisted    []Decision `json:"waitlisted"`
	Rejected      []Decision `json:"rejected"`
	CutoffScore   float64    `json:"cutoff_score"`
}
