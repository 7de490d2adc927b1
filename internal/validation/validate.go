package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/placement-intel/internal/types"
)

// validate is shared across calls; validator.Validate is safe for
// concurrent use once constructed.
var validate = validator.New(validator.WithRequiredStructEnabled())

// CheckProfile verifies that a profile's fields satisfy their declared
// ranges. Returns a *ValidationError listing every violated field.
func CheckProfile(p *types.Profile) error {
	if p == nil {
		return &ValidationError{Entity: "profile", Fields: []FieldError{{Field: "profile", Message: "is nil"}}}
	}
	return check("profile", p.ID, validate.Struct(p))
}

// CheckRequirement verifies a requirement policy, including the weight-sum
// invariant the struct tags cannot express.
func CheckRequirement(r *types.RequirementPolicy) error {
	if r == nil {
		return &ValidationError{Entity: "requirement", Fields: []FieldError{{Field: "requirement", Message: "is nil"}}}
	}
	if err := check("requirement", r.ID, validate.Struct(r)); err != nil {
		return err
	}
	if !r.Weights.Normalized() {
		return &ValidationError{
			Entity: "requirement",
			ID:     r.ID,
			Fields: []FieldError{{
				Field:   "weight_policy",
				Message: fmt.Sprintf("weights sum to %.3f, want 1.0 ±%.2f", r.Weights.Sum(), types.WeightSumTolerance),
			}},
		}
	}
	return nil
}

// CheckOutcome verifies one historical outcome record.
func CheckOutcome(o *types.OutcomeRecord) error {
	if o == nil {
		return &ValidationError{Entity: "outcome", Fields: []FieldError{{Field: "outcome", Message: "is nil"}}}
	}
	return check("outcome", o.ProfileID, validate.Struct(o))
}

// check converts validator output into the engine's error taxonomy.
func check(entity, id string, err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to validate %s %s: %w", entity, id, err)
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed %q constraint (value %v)", fe.Tag(), fe.Value()),
		})
	}
	return &ValidationError{Entity: entity, ID: id, Fields: fields}
}
