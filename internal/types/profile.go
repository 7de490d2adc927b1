// Package types provides type definitions for structured data used throughout the placement-intel engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ClaimLevel is the proficiency level a candidate claims for a skill.
type ClaimLevel string

const (
	ClaimBeginner     ClaimLevel = "beginner"
	ClaimIntermediate ClaimLevel = "intermediate"
	ClaimAdvanced     ClaimLevel = "advanced"
)

// SkillEvidence holds the verifiable evidence backing a skill claim.
type SkillEvidence struct {
	HasRepository      bool `json:"has_repository"`
	ProjectCount       int  `json:"project_count" validate:"gte=0,lte=5"`
	CertificationCount int  `json:"certification_count" validate:"gte=0,lte=3"`
	HasInternship      bool `json:"has_internship"`
}

// SkillClaim represents a single claimed skill with its supporting evidence.
// Claims are immutable once scored within a decision cycle.
type SkillClaim struct {
	Name         string        `json:"name" validate:"required"`
	ClaimedLevel ClaimLevel    `json:"claimed_level" validate:"oneof=beginner intermediate advanced"`
	Evidence     SkillEvidence `json:"evidence"`
}

// Profile represents a candidate profile as ingested from the external snapshot.
// TrustScore is derived by the credibility scorer and is never hand-edited.
type Profile struct {
	ID                     string       `json:"id" validate:"required"`
	Branch                 string       `json:"branch" validate:"required"`
	GPA                    float64      `json:"gpa" validate:"gte=5.0,lte=9.8"`
	ActiveBacklogCount     int          `json:"active_backlog_count" validate:"gte=0,lte=5"`
	CommunicationScore     int          `json:"communication_score" validate:"gte=1,lte=10"`
	InterviewPracticeScore int          `json:"interview_practice_score" validate:"gte=1,lte=10"`
	Skills                 []SkillClaim `json:"skills" validate:"dive"`
	TrustScore             float64      `json:"trust_score,omitempty"`
}

// SkillNames returns the set of claimed skill names for membership checks.
func (p *Profile) SkillNames() map[string]bool {
	names := make(map[string]bool, len(p.Skills))
	for _, s := range p.Skills {
		names[s.Name] = true
	}
	return names
}

// HasSkill reports whether the profile claims the named skill.
func (p *Profile) HasSkill(name string) bool {
	for _, s := range p.Skills {
		if s.Name == name {
			return true
		}
	}
	return false
}
