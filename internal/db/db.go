// Package db provides PostgreSQL-backed snapshot storage: profiles,
// requirement policies, the append-only outcome history, and the audit
// trail of tuned policy versions.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/placement-intel/internal/snapshot"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the storage tables when they do not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			branch TEXT NOT NULL,
			gpa DOUBLE PRECISION NOT NULL,
			active_backlog_count INT NOT NULL DEFAULT 0,
			communication_score INT NOT NULL,
			interview_practice_score INT NOT NULL,
			skills JSONB NOT NULL DEFAULT '[]'
		)`,
		`CREATE TABLE IF NOT EXISTS requirements (
			id TEXT PRIMARY KEY,
			category TEXT NOT NULL,
			min_gpa DOUBLE PRECISION NOT NULL,
			max_backlogs INT NOT NULL DEFAULT 0,
			mandatory_skills JSONB NOT NULL DEFAULT '[]',
			preferred_skills JSONB NOT NULL DEFAULT '[]',
			weight_policy JSONB NOT NULL,
			risk_tolerance TEXT NOT NULL,
			capacity INT NOT NULL DEFAULT 0,
			min_credibility DOUBLE PRECISION NOT NULL DEFAULT 0,
			version INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			id UUID PRIMARY KEY,
			profile_id TEXT NOT NULL,
			requirement_id TEXT NOT NULL,
			was_shortlisted BOOLEAN NOT NULL DEFAULT FALSE,
			result TEXT NOT NULL,
			failure_reason TEXT NOT NULL DEFAULT 'none',
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS policy_versions (
			id UUID PRIMARY KEY,
			requirement_id TEXT NOT NULL,
			version INT NOT NULL,
			policy JSONB NOT NULL,
			rationale JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}

// Snapshot loads the full decision snapshot from the database.
func (db *DB) Snapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	profiles, err := db.LoadProfiles(ctx)
	if err != nil {
		return nil, err
	}
	requirements, err := db.LoadRequirements(ctx)
	if err != nil {
		return nil, err
	}
	outcomes, err := db.LoadOutcomes(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.New(profiles, requirements, outcomes)
}
