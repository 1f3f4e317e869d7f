// Package db provides PostgreSQL storage for outreach run history and
// per-job stage artifacts. The store is optional: when no database URL is
// configured the pipeline runs without persistence.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/outreach-agent/internal/types"
)

// Run is one recorded outreach run.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	Role        string     `json:"role"`
	Location    string     `json:"location"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

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

// CreateRun records the start of an outreach run and returns its ID.
func (db *DB) CreateRun(ctx context.Context, role, location string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO outreach_runs (role, location, status)
		 VALUES ($1, $2, 'running')
		 RETURNING id`,
		role, location,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks an outreach run as finished with the given status.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE outreach_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// RecordOutcome stores the final per-job outcome for a run.
func (db *DB) RecordOutcome(ctx context.Context, runID uuid.UUID, outcome types.JobOutcome) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO job_outcomes (run_id, job_id, status, reason)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id, job_id) DO UPDATE SET status = $3, reason = $4`,
		runID, outcome.JobID, string(outcome.Status), outcome.Reason,
	)
	if err != nil {
		return fmt.Errorf("failed to record outcome for job %s: %w", outcome.JobID, err)
	}
	return nil
}

// SaveArtifact stores a JSON stage artifact for one job within a run. The
// same (run, job, stage) slot is overwritten on retry.
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, jobID, stage string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO job_artifacts (run_id, job_id, stage, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id, job_id, stage) DO UPDATE SET content = $4, created_at = NOW()`,
		runID, jobID, stage, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", stage, err)
	}
	return nil
}

// GetArtifact retrieves a stage artifact for one job within a run. Returns
// nil when no artifact exists.
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, jobID, stage string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM job_artifacts WHERE run_id = $1 AND job_id = $2 AND stage = $3`,
		runID, jobID, stage,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", stage, err)
	}
	return content, nil
}

// GetRun retrieves one run by ID. Returns nil when the run does not exist.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, role, location, status, created_at, completed_at
		 FROM outreach_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.Role, &run.Location, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, role, location, status, created_at, completed_at
		 FROM outreach_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Role, &run.Location, &run.Status, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
