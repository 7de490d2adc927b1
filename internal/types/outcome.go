package types

// OutcomeResult is the terminal result of a historical placement attempt.
type OutcomeResult string

const (
	OutcomeSelected OutcomeResult = "selected"
	OutcomeRejected OutcomeResult = "rejected"
	OutcomeNoShow   OutcomeResult = "no_show"
)

// FailureReason explains why a candidate was rejected. Reasons beyond the
// historical-outcome set (backlogs, capacity) only ever appear on Decisions.
type FailureReason string

const (
	ReasonNone              FailureReason = "none"
	ReasonGPA               FailureReason = "gpa"
	ReasonBacklogs          FailureReason = "backlogs"
	ReasonLowSkillEvidence  FailureReason = "low_skill_evidence"
	ReasonPoorCommunication FailureReason = "poor_communication"
	ReasonFakeSkill         FailureReason = "fake_skill"
	ReasonCapacity          FailureReason = "capacity"
)

// OutcomeRecord is one append-only historical fact about a placement attempt.
// Records are never mutated; they are read-aggregated by the risk assessor,
// the success predictor and the feedback tuner.
type OutcomeRecord struct {
	ProfileID      string        `json:"profile_id" validate:"required"`
	RequirementID  string        `json:"requirement_id" validate:"required"`
	WasShortlisted bool          `json:"was_shortlisted"`
	Result         OutcomeResult `json:"result" validate:"oneof=selected rejected no_show"`
	FailureReason  FailureReason `json:"failure_reason" validate:"oneof=low_skill_evidence poor_communication fake_skill gpa none"`
}

// IsFailure reports whether the record describes a failed attempt.
// Anything other than a selection counts as a failure for risk purposes.
func (r *OutcomeRecord) IsFailure() bool {
	return r.Result != OutcomeSelected
}

// Cohort joins a slice of outcome records with the profiles they reference,
// forming the read-only historical snapshot the aggregating components need.
type Cohort struct {
	Records  []OutcomeRecord
	Profiles map[string]*Profile
}

// ForRequirement returns the subset of records belonging to one requirement.
func (c *Cohort) ForRequirement(requirementID string) []OutcomeRecord {
	var out []OutcomeRecord
	for _, r := range c.Records {
		if r.RequirementID == requirementID {
			out = append(out, r)
		}
	}
	return out
}

// ProfileFor resolves the profile referenced by a record, or nil when the
// snapshot does not contain it.
func (c *Cohort) ProfileFor(record OutcomeRecord) *Profile {
	if c.Profiles == nil {
		return nil
	}
	return c.Profiles[record.ProfileID]
}
