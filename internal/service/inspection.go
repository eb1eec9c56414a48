// Package service implements the inspection job pipeline: job lifecycle,
// bounded dispatch, sandbox leasing, and single-file fetches.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/layerpeek/layerpeek/internal/archive"
	"github.com/layerpeek/layerpeek/internal/core"
	apperrors "github.com/layerpeek/layerpeek/internal/errors"
	"github.com/layerpeek/layerpeek/internal/domain/model"
	"github.com/layerpeek/layerpeek/internal/observability/statsd"
	"github.com/layerpeek/layerpeek/internal/tree"
)

const (
	defaultWorkers    = 4
	defaultQueueSize  = 64
	defaultResultTTL  = time.Hour
	defaultExportRoot = "/"
)

// InspectionServiceOptions groups dependencies for InspectionService.
type InspectionServiceOptions struct {
	Jobs       core.JobStore    // Required: job record store
	Cache      core.ResultCache // Required: TTL-bounded result cache
	Engine     core.ImageEngine // Required: container engine
	Sandbox    *SandboxManager  // Required: sandbox lease manager
	Workers    int              // Optional: pipeline worker count, defaults to 4
	QueueSize  int              // Optional: submission queue capacity, defaults to 64
	ResultTTL  time.Duration    // Optional: cache entry lifetime, defaults to 1h
	ExportRoot string           // Optional: filesystem subtree to list, defaults to "/"
	Metrics    statsd.Sink      // Optional: pipeline metrics sink
	Logger     *slog.Logger     // Optional: structured logger
}

// InspectionService owns the inspection job lifecycle: creation, bounded
// asynchronous dispatch, status transitions, and terminal-state recording.
// Processing runs on a fixed worker pool fed by a bounded queue; submissions
// past the queue capacity are rejected rather than queued without limit.
type InspectionService struct {
	jobs       core.JobStore
	cache      core.ResultCache
	engine     core.ImageEngine
	sandbox    *SandboxManager
	resultTTL  time.Duration
	exportRoot string
	metrics    statsd.Sink
	logger     *slog.Logger

	queue chan dispatchItem
	slots chan struct{}
	wg    sync.WaitGroup
}

type dispatchItem struct {
	jobID string
	image string
}

// NewInspectionService constructs an InspectionService and starts its worker
// pool.
func NewInspectionService(opts InspectionServiceOptions) (*InspectionService, error) {
	if opts.Jobs == nil {
		return nil, errors.New("JobStore is required")
	}
	if opts.Cache == nil {
		return nil, errors.New("ResultCache is required")
	}
	if opts.Engine == nil {
		return nil, errors.New("ImageEngine is required")
	}
	if opts.Sandbox == nil {
		return nil, errors.New("SandboxManager is required")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	resultTTL := opts.ResultTTL
	if resultTTL <= 0 {
		resultTTL = defaultResultTTL
	}
	exportRoot := opts.ExportRoot
	if exportRoot == "" {
		exportRoot = defaultExportRoot
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "inspection_service")
	}

	s := &InspectionService{
		jobs:       opts.Jobs,
		cache:      opts.Cache,
		engine:     opts.Engine,
		sandbox:    opts.Sandbox,
		resultTTL:  resultTTL,
		exportRoot: exportRoot,
		metrics:    opts.Metrics,
		logger:     logger,
		queue:      make(chan dispatchItem, queueSize),
		slots:      make(chan struct{}, queueSize),
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s, nil
}

// Create allocates a new pending job for the image reference and dispatches
// it without blocking on pipeline completion. The reference is validated for
// non-emptiness only; resolution failures surface later as acquisition
// errors on the job record. A full submission queue rejects the request.
func (s *InspectionService) Create(ctx context.Context, req *model.CreateInspectionRequest) (*model.Job, error) {
	if req == nil {
		return nil, apperrors.Validation("request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	// Reserve a queue slot up front so a created record is always
	// dispatchable; slot capacity equals queue capacity.
	select {
	case s.slots <- struct{}{}:
	default:
		if s.metrics != nil {
			s.metrics.Count("jobs.rejected", 1, nil)
		}
		return nil, apperrors.Validation("inspection queue is full, retry later")
	}

	job := &model.Job{
		ID:        uuid.NewString(),
		Image:     req.Image,
		Status:    model.JobStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		<-s.slots
		return nil, err
	}

	s.queue <- dispatchItem{jobID: job.ID, image: job.Image}
	if s.metrics != nil {
		s.metrics.Count("jobs.accepted", 1, nil)
		s.metrics.Gauge("queue.depth", float64(len(s.slots)), nil)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job dispatched", "job_id", job.ID, "image", job.Image)
	}
	return job, nil
}

// Get returns the polling view of a job.
func (s *InspectionService) Get(ctx context.Context, id string) (*model.JobStatusResponse, error) {
	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.JobStatusResponse{
		JobID:  job.ID,
		Status: job.Status,
		Result: job.Result,
		Error:  job.Error,
	}, nil
}

// Result returns the serialized inspection result for a completed job,
// preferring the cache entry and falling back to the result embedded in the
// job record. A cache miss on a non-completed or unknown job is not found.
func (s *InspectionService) Result(ctx context.Context, id string) (json.RawMessage, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "result cache read failed", "job_id", id, "error", err)
	}
	if len(cached) > 0 {
		return cached, nil
	}

	job, err := s.jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != model.JobStatusCompleted || job.Result == nil {
		return nil, apperrors.NotFoundf("no result available for job %s", id)
	}
	payload, err := json.Marshal(job.Result)
	if err != nil {
		return nil, fmt.Errorf("encode job result: %w", err)
	}
	return payload, nil
}

// Close stops accepting dispatches and waits for in-flight jobs to finish.
func (s *InspectionService) Close() {
	close(s.queue)
	s.wg.Wait()
}

func (s *InspectionService) worker() {
	defer s.wg.Done()
	for item := range s.queue {
		s.process(context.Background(), item)
		<-s.slots
	}
}

// process runs the full pipeline for one job. Every pipeline error is caught
// here and recorded as the job's terminal failed state; nothing propagates
// back to the submitter.
func (s *InspectionService) process(ctx context.Context, item dispatchItem) {
	if err := s.jobs.MarkProcessing(ctx, item.jobID); err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "mark processing failed", "job_id", item.jobID, "error", err)
		}
		return
	}

	started := time.Now()
	result, err := s.runPipeline(ctx, item.image)
	if s.metrics != nil {
		s.metrics.Timing("pipeline.duration", time.Since(started), nil)
	}
	if err != nil {
		if s.logger != nil {
			s.logger.WarnContext(ctx, "inspection failed", "job_id", item.jobID, "image", item.image, "error", err)
		}
		if s.metrics != nil {
			s.metrics.Count("jobs.failed", 1, map[string]string{"reason": string(apperrors.GetCode(err))})
		}
		if failErr := s.jobs.Fail(ctx, item.jobID, err.Error()); failErr != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "record failure failed", "job_id", item.jobID, "error", failErr)
		}
		return
	}

	if err := s.jobs.Complete(ctx, item.jobID, result); err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "record completion failed", "job_id", item.jobID, "error", err)
		}
		return
	}
	s.cacheResult(ctx, item.jobID, result)
	if s.metrics != nil {
		s.metrics.Count("jobs.completed", 1, nil)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "job completed", "job_id", item.jobID, "image", item.image)
	}
}

// runPipeline acquires the image, materializes its filesystem through a
// leased sandbox, decodes the export stream, and assembles the file tree.
func (s *InspectionService) runPipeline(ctx context.Context, image string) (*model.InspectionResult, error) {
	if err := s.engine.EnsureImage(ctx, image); err != nil {
		return nil, err
	}
	meta, err := s.engine.InspectImage(ctx, image)
	if err != nil {
		return nil, err
	}

	var records []model.FileRecord
	err = s.sandbox.WithFilesystem(ctx, image, func(h *FilesystemHandle) error {
		rc, exportErr := h.Export(ctx, s.exportRoot)
		if exportErr != nil {
			return exportErr
		}
		defer rc.Close()
		var extractErr error
		records, extractErr = archive.Extract(rc, s.exportRoot)
		return extractErr
	})
	if err != nil {
		return nil, err
	}

	return &model.InspectionResult{
		Image:  image,
		Config: meta.Config,
		Layers: meta.Layers,
		Tree:   tree.Build(records),
	}, nil
}

// cacheResult writes the serialized result under the job id. The cache entry
// expires independently of the job record; a write failure degrades to
// serving the embedded result, so it is logged rather than failing the job.
func (s *InspectionService) cacheResult(ctx context.Context, jobID string, result *model.InspectionResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "encode result for cache failed", "job_id", jobID, "error", err)
		}
		return
	}
	if err := s.cache.Set(ctx, jobID, payload, s.resultTTL); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "result cache write failed", "job_id", jobID, "error", err)
	}
}
