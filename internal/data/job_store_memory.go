package data

import (
	"context"
	"errors"
	"strings"
	"sync"

	apperrors "github.com/layerpeek/layerpeek/internal/errors"
	"github.com/layerpeek/layerpeek/internal/domain/model"
)

// MemoryJobStore implements core.JobStore in process. Used when no database
// is configured and in tests. Records are never deleted; terminal records
// are immutable.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
}

// NewMemoryJobStore creates an empty in-process job store.
func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{jobs: make(map[string]*model.Job)}
}

// Create persists a new pending job record.
func (s *MemoryJobStore) Create(_ context.Context, job *model.Job) error {
	if job == nil {
		return errors.New("job is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.ID]; exists {
		return apperrors.Validationf("job %s already exists", job.ID)
	}
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

// Get returns a copy of the job with the given id.
func (s *MemoryJobStore) Get(_ context.Context, id string) (*model.Job, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.Validation("job id is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, apperrors.NotFoundf("job %s not found", id)
	}
	copied := *job
	return &copied, nil
}

// MarkProcessing transitions a pending job to processing.
func (s *MemoryJobStore) MarkProcessing(_ context.Context, id string) error {
	return s.transition(id, model.JobStatusPending, func(job *model.Job) {
		job.Status = model.JobStatusProcessing
	})
}

// Complete records the result and transitions the job to completed.
func (s *MemoryJobStore) Complete(_ context.Context, id string, result *model.InspectionResult) error {
	return s.transition(id, model.JobStatusProcessing, func(job *model.Job) {
		job.Status = model.JobStatusCompleted
		job.Result = result
	})
}

// Fail records the failure message and transitions the job to failed.
func (s *MemoryJobStore) Fail(_ context.Context, id string, message string) error {
	return s.transition(id, model.JobStatusProcessing, func(job *model.Job) {
		job.Status = model.JobStatusFailed
		job.Error = &message
	})
}

func (s *MemoryJobStore) transition(id string, from model.JobStatus, apply func(*model.Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return apperrors.NotFoundf("job %s not found", id)
	}
	if job.Status != from {
		return apperrors.Internalf("job %s: invalid transition from %s", id, job.Status)
	}
	apply(job)
	return nil
}
