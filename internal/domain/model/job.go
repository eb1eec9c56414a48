// Package model defines the core data types used throughout the layerpeek
// inspection system.
package model

import (
	"errors"
	"strings"
	"time"
)

// JobStatus represents the current status of an inspection job.
type JobStatus string

const (
	// JobStatusPending indicates a job is waiting to be processed.
	JobStatusPending JobStatus = "pending"
	// JobStatusProcessing indicates a job is currently being processed.
	JobStatusProcessing JobStatus = "processing"
	// JobStatusCompleted indicates a job has finished successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates a job has failed to complete.
	JobStatusFailed JobStatus = "failed"
)

// Valid returns true if the JobStatus is one of the known states.
func (s JobStatus) Valid() bool {
	return s == JobStatusPending || s == JobStatusProcessing ||
		s == JobStatusCompleted || s == JobStatusFailed
}

// Terminal returns true once a job can no longer change state.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job is one unit of asynchronous inspection work. Status moves monotonically
// along pending -> processing -> {completed|failed}; terminal records are
// immutable. Result is set only when completed, Error only when failed.
type Job struct {
	ID        string            `json:"id"                   db:"id"`
	Image     string            `json:"image"                db:"image"`
	Status    JobStatus         `json:"status"               db:"status"`
	Result    *InspectionResult `json:"result,omitempty"     db:"result"`
	Error     *string           `json:"error,omitempty"      db:"error"`
	CreatedAt time.Time         `json:"created_at"           db:"created_at"`
}

// CreateInspectionRequest is the submission payload for a new inspection job.
type CreateInspectionRequest struct {
	Image string `json:"image"`
}

// Validate checks the request for a usable image reference. Only
// non-emptiness is enforced here; resolution failures surface later as
// acquisition errors.
func (r *CreateInspectionRequest) Validate() error {
	if strings.TrimSpace(r.Image) == "" {
		return errors.New("image reference is required")
	}
	return nil
}

// JobStatusResponse is the polling payload for a job id.
type JobStatusResponse struct {
	JobID  string            `json:"job_id"`
	Status JobStatus         `json:"status"`
	Result *InspectionResult `json:"result,omitempty"`
	Error  *string           `json:"error,omitempty"`
}
