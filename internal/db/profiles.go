package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/placement-intel/internal/types"
)

// LoadProfiles reads every candidate profile.
func (db *DB) LoadProfiles(ctx context.Context) ([]*types.Profile, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, branch, gpa, active_backlog_count, communication_score, interview_practice_score, skills
		 FROM profiles
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*types.Profile
	for rows.Next() {
		var p types.Profile
		var skills []byte
		if err := rows.Scan(&p.ID, &p.Branch, &p.GPA, &p.ActiveBacklogCount,
			&p.CommunicationScore, &p.InterviewPracticeScore, &skills); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		if p.Skills, err = unmarshalSkills(skills); err != nil {
			return nil, fmt.Errorf("failed to decode skills for profile %s: %w", p.ID, err)
		}
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}

// SaveProfile upserts one candidate profile.
func (db *DB) SaveProfile(ctx context.Context, p *types.Profile) error {
	skills, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (id, branch, gpa, active_backlog_count, communication_score, interview_practice_score, skills)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
			branch = $2, gpa = $3, active_backlog_count = $4,
			communication_score = $5, interview_practice_score = $6, skills = $7`,
		p.ID, p.Branch, p.GPA, p.ActiveBacklogCount, p.CommunicationScore, p.InterviewPracticeScore, skills)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", p.ID, err)
	}
	return nil
}

// unmarshalSkills decodes the JSONB skills column; NULL and empty documents
// decode to no skills.
func unmarshalSkills(data []byte) ([]types.SkillClaim, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var skills []types.SkillClaim
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}
