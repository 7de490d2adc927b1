package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/placement-intel/internal/types"
)

// LoadRequirements reads every requirement policy.
func (db *DB) LoadRequirements(ctx context.Context) ([]*types.RequirementPolicy, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, category, min_gpa, max_backlogs, mandatory_skills, preferred_skills,
		        weight_policy, risk_tolerance, capacity, min_credibility, version
		 FROM requirements
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query requirements: %w", err)
	}
	defer rows.Close()

	var requirements []*types.RequirementPolicy
	for rows.Next() {
		var r types.RequirementPolicy
		var mandatory, preferred, weights []byte
		if err := rows.Scan(&r.ID, &r.Category, &r.MinGPA, &r.MaxBacklogs, &mandatory, &preferred,
			&weights, &r.RiskTolerance, &r.Capacity, &r.MinCredibility, &r.Version); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		if err := decodeRequirementColumns(&r, mandatory, preferred, weights); err != nil {
			return nil, fmt.Errorf("failed to decode requirement %s: %w", r.ID, err)
		}
		requirements = append(requirements, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirements: %w", err)
	}
	return requirements, nil
}

// SaveRequirement upserts one requirement policy.
func (db *DB) SaveRequirement(ctx context.Context, r *types.RequirementPolicy) error {
	mandatory, err := json.Marshal(r.MandatorySkills)
	if err != nil {
		return fmt.Errorf("failed to marshal mandatory skills: %w", err)
	}
	preferred, err := json.Marshal(r.PreferredSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal preferred skills: %w", err)
	}
	weights, err := json.Marshal(r.Weights)
	if err != nil {
		return fmt.Errorf("failed to marshal weight policy: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO requirements (id, category, min_gpa, max_backlogs, mandatory_skills, preferred_skills,
		                           weight_policy, risk_tolerance, capacity, min_credibility, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
			category = $2, min_gpa = $3, max_backlogs = $4, mandatory_skills = $5, preferred_skills = $6,
			weight_policy = $7, risk_tolerance = $8, capacity = $9, min_credibility = $10, version = $11`,
		r.ID, r.Category, r.MinGPA, r.MaxBacklogs, mandatory, preferred,
		weights, r.RiskTolerance, r.Capacity, r.MinCredibility, r.Version)
	if err != nil {
		return fmt.Errorf("failed to save requirement %s: %w", r.ID, err)
	}
	return nil
}

func decodeRequirementColumns(r *types.RequirementPolicy, mandatory, preferred, weights []byte) error {
	if len(mandatory) > 0 {
		if err := json.Unmarshal(mandatory, &r.MandatorySkills); err != nil {
			return fmt.Errorf("mandatory_skills: %w", err)
		}
	}
	if len(preferred) > 0 {
		if err := json.Unmarshal(preferred, &r.PreferredSkills); err != nil {
			return fmt.Errorf("preferred_skills: %w", err)
		}
	}
	if len(weights) > 0 {
		if err := json.Unmarshal(weights, &r.Weights); err != nil {
			return fmt.Errorf("weight_policy: %w", err)
		}
	}
	return nil
}
