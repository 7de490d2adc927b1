package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/placement-intel/internal/types"
	"github.com/jonathan/placement-intel/internal/validation"
)

const validProfiles = `[
  {
    "id": "p1",
    "branch": "CSE",
    "gpa": 8.2,
    "active_backlog_count": 0,
    "communication_score": 8,
    "interview_practice_score": 7,
    "skills": [
      {
        "name": "Go",
        "claimed_level": "advanced",
        "evidence": {"has_repository": true, "project_count": 3, "certification_count": 1, "has_internship": false}
      }
    ]
  }
]`

const validRequirements = `[
  {
    "id": "req-1",
    "category": "product",
    "min_gpa": 7.0,
    "max_backlogs": 0,
    "mandatory_skill_names": ["Go"],
    "preferred_skill_names": [],
    "weight_policy": {"gpa_weight": 0.3, "skill_weight": 0.4, "communication_weight": 0.2, "interview_weight": 0.1},
    "risk_tolerance": "medium",
    "capacity": 2
  }
]`

const validOutcomes = `[
  {"profile_id": "p1", "requirement_id": "req-1", "was_shortlisted": true, "result": "selected", "failure_reason": "none"}
]`

func writeSnapshotDir(t *testing.T, profiles, requirements, outcomes string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProfilesFile), []byte(profiles), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, RequirementsFile), []byte(requirements), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, OutcomesFile), []byte(outcomes), 0o644))
	return dir
}

func TestLoad_ValidSnapshot(t *testing.T) {
	dir := writeSnapshotDir(t, validProfiles, validRequirements, validOutcomes)

	s, err := Load(dir)
	require.NoError(t, err)

	require.Len(t, s.Profiles, 1)
	require.Len(t, s.Requirements, 1)
	require.Len(t, s.Outcomes, 1)

	assert.Equal(t, "CSE", s.Profile("p1").Branch)
	assert.Equal(t, 2, s.Requirement("req-1").Capacity)
	assert.Nil(t, s.Profile("ghost"))

	cohort := s.Cohort()
	assert.Len(t, cohort.Records, 1)
	assert.Same(t, s.Profile("p1"), cohort.ProfileFor(cohort.Records[0]))
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ProfilesFile)
}

func TestLoad_SchemaViolationRejected(t *testing.T) {
	// GPA below the schema minimum of 5.0.
	badProfiles := `[
  {
    "id": "p1",
    "branch": "CSE",
    "gpa": 4.0,
    "active_backlog_count": 0,
    "communication_score": 8,
    "interview_practice_score": 7,
    "skills": []
  }
]`
	dir := writeSnapshotDir(t, badProfiles, validRequirements, validOutcomes)

	_, err := Load(dir)

	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "snapshot", verr.Entity)
	assert.Equal(t, ProfilesFile, verr.ID)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	badOutcomes := `[
  {"profile_id": "p1", "requirement_id": "req-1", "result": "selected", "mood": "great"}
]`
	dir := writeSnapshotDir(t, validProfiles, validRequirements, badOutcomes)

	_, err := Load(dir)

	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, OutcomesFile, verr.ID)
}

func TestLoad_RangeViolationRejected(t *testing.T) {
	// Schema-valid weights that do not sum to 1.0 fail the range check.
	badRequirements := `[
  {
    "id": "req-1",
    "category": "product",
    "min_gpa": 7.0,
    "max_backlogs": 0,
    "mandatory_skill_names": ["Go"],
    "preferred_skill_names": [],
    "weight_policy": {"gpa_weight": 0.1, "skill_weight": 0.2, "communication_weight": 0.2, "interview_weight": 0.1},
    "risk_tolerance": "medium",
    "capacity": 2
  }
]`
	dir := writeSnapshotDir(t, validProfiles, badRequirements, validOutcomes)

	_, err := Load(dir)

	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "requirement", verr.Entity)
	assert.Equal(t, "req-1", verr.ID)
}

func TestNew_DuplicateProfileIDRejected(t *testing.T) {
	profiles := []*types.Profile{
		{ID: "p1", Branch: "CSE", GPA: 7.0, CommunicationScore: 5, InterviewPracticeScore: 5},
		{ID: "p1", Branch: "EE", GPA: 7.5, CommunicationScore: 5, InterviewPracticeScore: 5},
	}

	_, err := New(profiles, nil, nil)

	var verr *validation.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "p1", verr.ID)
}
