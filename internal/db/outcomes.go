package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/placement-intel/internal/types"
)

// LoadOutcomes reads the full outcome history in recording order.
func (db *DB) LoadOutcomes(ctx context.Context) ([]types.OutcomeRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT profile_id, requirement_id, was_shortlisted, result, failure_reason
		 FROM outcomes
		 ORDER BY recorded_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []types.OutcomeRecord
	for rows.Next() {
		var o types.OutcomeRecord
		if err := rows.Scan(&o.ProfileID, &o.RequirementID, &o.WasShortlisted, &o.Result, &o.FailureReason); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outcomes: %w", err)
	}
	return outcomes, nil
}

// AppendOutcome records one new historical fact. History is append-only;
// there is no update path.
func (db *DB) AppendOutcome(ctx context.Context, o *types.OutcomeRecord) (uuid.UUID, error) {
	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO outcomes (id, profile_id, requirement_id, was_shortlisted, result, failure_reason)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, o.ProfileID, o.RequirementID, o.WasShortlisted, o.Result, o.FailureReason)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to append outcome for %s/%s: %w", o.ProfileID, o.RequirementID, err)
	}
	return id, nil
}
