// Package snapshot loads the read-only data snapshot the engine operates on:
// candidate profiles, requirement policies and historical outcome records.
// Every document is validated twice, structurally against its JSON Schema
// and then field by field against the declared ranges. Invalid input is
// rejected at the boundary, never clamped.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/placement-intel/internal/types"
	"github.com/jonathan/placement-intel/internal/validation"
	"github.com/jonathan/placement-intel/schemas"
)

// File names expected inside a snapshot directory.
const (
	ProfilesFile     = "profiles.json"
	RequirementsFile = "requirements.json"
	OutcomesFile     = "outcomes.json"
)

// Snapshot is the engine's immutable view of the world at one point in
// time. Build one with Load or New; the engine never writes back to it.
type Snapshot struct {
	Profiles     []*types.Profile
	Requirements []*types.RequirementPolicy
	Outcomes     []types.OutcomeRecord

	profileIndex     map[string]*types.Profile
	requirementIndex map[string]*types.RequirementPolicy
}

// Load reads and validates a snapshot directory containing profiles.json,
// requirements.json and outcomes.json.
func Load(dir string) (*Snapshot, error) {
	var profiles []*types.Profile
	if err := loadFile(filepath.Join(dir, ProfilesFile), schemas.Profile, &profiles); err != nil {
		return nil, err
	}
	var requirements []*types.RequirementPolicy
	if err := loadFile(filepath.Join(dir, RequirementsFile), schemas.Requirement, &requirements); err != nil {
		return nil, err
	}
	var outcomes []types.OutcomeRecord
	if err := loadFile(filepath.Join(dir, OutcomesFile), schemas.Outcome, &outcomes); err != nil {
		return nil, err
	}

	for _, p := range profiles {
		if err := validation.CheckProfile(p); err != nil {
			return nil, err
		}
	}
	for _, r := range requirements {
		if err := validation.CheckRequirement(r); err != nil {
			return nil, err
		}
	}
	for i := range outcomes {
		if err := validation.CheckOutcome(&outcomes[i]); err != nil {
			return nil, err
		}
	}

	return New(profiles, requirements, outcomes)
}

// New assembles a snapshot from already-validated in-memory data. Duplicate
// profile or requirement IDs are rejected; the indexes would silently drop
// records otherwise.
func New(profiles []*types.Profile, requirements []*types.RequirementPolicy, outcomes []types.OutcomeRecord) (*Snapshot, error) {
	s := &Snapshot{
		Profiles:         profiles,
		Requirements:     requirements,
		Outcomes:         outcomes,
		profileIndex:     make(map[string]*types.Profile, len(profiles)),
		requirementIndex: make(map[string]*types.RequirementPolicy, len(requirements)),
	}
	for _, p := range profiles {
		if _, dup := s.profileIndex[p.ID]; dup {
			return nil, &validation.ValidationError{
				Entity: "profile",
				ID:     p.ID,
				Fields: []validation.FieldError{{Field: "id", Message: "duplicate profile id"}},
			}
		}
		s.profileIndex[p.ID] = p
	}
	for _, r := range requirements {
		if _, dup := s.requirementIndex[r.ID]; dup {
			return nil, &validation.ValidationError{
				Entity: "requirement",
				ID:     r.ID,
				Fields: []validation.FieldError{{Field: "id", Message: "duplicate requirement id"}},
			}
		}
		s.requirementIndex[r.ID] = r
	}
	return s, nil
}

// Profile returns the profile with the given ID, or nil.
func (s *Snapshot) Profile(id string) *types.Profile {
	return s.profileIndex[id]
}

// Requirement returns the requirement with the given ID, or nil.
func (s *Snapshot) Requirement(id string) *types.RequirementPolicy {
	return s.requirementIndex[id]
}

// Cohort joins the outcome history with the profile index for the
// aggregating components.
func (s *Snapshot) Cohort() *types.Cohort {
	return &types.Cohort{Records: s.Outcomes, Profiles: s.profileIndex}
}

// loadFile reads one snapshot document, checks it against its schema and
// unmarshals it into out.
func loadFile(path string, schema []byte, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot file %s: %w", path, err)
	}
	if err := validateSchema(path, schema, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// validateSchema checks a raw document against an embedded JSON Schema and
// converts any violations into the engine's error taxonomy.
func validateSchema(path string, schema, document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("failed to validate %s against schema: %w", path, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &validation.ValidationError{Entity: "snapshot", ID: filepath.Base(path)}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Fields = append(verr.Fields, validation.FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return verr
}
