// Package core defines the interfaces the inspection services depend on.
// The core declares ports; internal/data and internal/adapters provide the
// implementations.
package core

import (
	"context"

	"github.com/layerpeek/layerpeek/internal/domain/model"
)

// JobStore persists inspection job records. Implementations must treat
// terminal jobs as immutable; the store never deletes records itself
// (retention belongs to the surrounding storage).
type JobStore interface {
	// Create persists a new job record in pending state.
	Create(ctx context.Context, job *model.Job) error

	// Get returns the job with the given id, or a not_found error when the
	// id is unknown.
	Get(ctx context.Context, id string) (*model.Job, error)

	// MarkProcessing transitions a pending job to processing.
	MarkProcessing(ctx context.Context, id string) error

	// Complete records the inspection result and transitions the job to
	// completed.
	Complete(ctx context.Context, id string, result *model.InspectionResult) error

	// Fail records the failure message and transitions the job to failed.
	Fail(ctx context.Context, id string, message string) error
}
