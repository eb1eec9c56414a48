package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/layerpeek/layerpeek/internal/errors"
	"github.com/layerpeek/layerpeek/internal/domain/model"
)

// PGJobStore implements core.JobStore on Postgres. Status transitions are
// guarded in SQL so a terminal record can never be rewritten.
type PGJobStore struct {
	db *sql.DB
}

// NewPGJobStore creates a PGJobStore with the given database handle.
func NewPGJobStore(db *sql.DB) *PGJobStore {
	return &PGJobStore{db: db}
}

// Create persists a new pending job record.
func (s *PGJobStore) Create(ctx context.Context, job *model.Job) error {
	if job == nil {
		return errors.New("job is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inspection_jobs (id, image, status, created_at)
		VALUES ($1, $2, $3, $4)
	`, job.ID, job.Image, job.Status, job.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return apperrors.Validationf("job %s already exists", job.ID)
		}
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// Get returns the job with the given id.
func (s *PGJobStore) Get(ctx context.Context, id string) (*model.Job, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("job id is required")
	}

	var (
		job       model.Job
		resultRaw []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, image, status, result, error, created_at
		FROM inspection_jobs
		WHERE id = $1
	`, id).Scan(&job.ID, &job.Image, &job.Status, &resultRaw, &job.Error, &job.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFoundf("job %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("select job: %w", err)
	}

	if len(resultRaw) > 0 {
		var result model.InspectionResult
		if umErr := json.Unmarshal(resultRaw, &result); umErr != nil {
			return nil, fmt.Errorf("decode job result: %w", umErr)
		}
		job.Result = &result
	}
	return &job, nil
}

// MarkProcessing transitions a pending job to processing.
func (s *PGJobStore) MarkProcessing(ctx context.Context, id string) error {
	return s.transition(ctx, id, transitionParams{
		sql: `
			UPDATE inspection_jobs
			SET status = 'processing', updated_at = now()
			WHERE id = $1 AND status = 'pending'
		`,
		args: []any{id},
		to:   model.JobStatusProcessing,
	})
}

// Complete records the result and transitions the job to completed.
func (s *PGJobStore) Complete(ctx context.Context, id string, result *model.InspectionResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode job result: %w", err)
	}
	return s.transition(ctx, id, transitionParams{
		sql: `
			UPDATE inspection_jobs
			SET status = 'completed', result = $2, updated_at = now()
			WHERE id = $1 AND status = 'processing'
		`,
		args: []any{id, payload},
		to:   model.JobStatusCompleted,
	})
}

// Fail records the failure message and transitions the job to failed.
func (s *PGJobStore) Fail(ctx context.Context, id string, message string) error {
	return s.transition(ctx, id, transitionParams{
		sql: `
			UPDATE inspection_jobs
			SET status = 'failed', error = $2, updated_at = now()
			WHERE id = $1 AND status = 'processing'
		`,
		args: []any{id, message},
		to:   model.JobStatusFailed,
	})
}

type transitionParams struct {
	sql  string
	args []any
	to   model.JobStatus
}

func (s *PGJobStore) transition(ctx context.Context, id string, p transitionParams) error {
	res, err := s.db.ExecContext(ctx, p.sql, p.args...)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		// Either the id is unknown or the job already left the expected
		// source state; look it up to tell the two apart.
		if _, getErr := s.Get(ctx, id); getErr != nil {
			return getErr
		}
		return apperrors.Internalf("job %s: invalid transition to %s", id, p.to)
	}
	return nil
}
