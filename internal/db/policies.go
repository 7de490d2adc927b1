package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/placement-intel/internal/types"
)

// SavePolicyVersion persists a tuner adjustment: the new policy document,
// its rationale, and the requirement row itself. The version trail is what
// lets an audit reconstruct why a requirement's weights moved.
func (db *DB) SavePolicyVersion(ctx context.Context, result *types.TuneResult) (uuid.UUID, error) {
	if !result.Adjusted || result.Policy == nil {
		return uuid.Nil, fmt.Errorf("refusing to persist an unadjusted tune result")
	}

	policyJSON, err := json.Marshal(result.Policy)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal policy: %w", err)
	}
	rationaleJSON, err := json.Marshal(result.Rationale)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal rationale: %w", err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO policy_versions (id, requirement_id, version, policy, rationale)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, result.Policy.ID, result.Policy.Version, policyJSON, rationaleJSON)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save policy version: %w", err)
	}

	if err := db.SaveRequirement(ctx, result.Policy); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
