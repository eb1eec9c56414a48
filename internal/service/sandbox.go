package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/layerpeek/layerpeek/internal/core"
	apperrors "github.com/layerpeek/layerpeek/internal/errors"
)

const (
	defaultSandboxIdleTTL = 5 * time.Minute
	sandboxSweepInterval  = 30 * time.Second
	sandboxRemoveTimeout  = 30 * time.Second
)

// SandboxManagerOptions groups dependencies for SandboxManager.
type SandboxManagerOptions struct {
	Engine  core.ImageEngine // Required: container engine
	IdleTTL time.Duration    // Optional: idle lease lifetime, defaults to 5m
	Logger  *slog.Logger     // Optional: structured logger
}

// SandboxManager leases one non-executing container per image reference and
// reuses it across the initial tree listing and subsequent single-file
// fetches. Idle leases are swept by a janitor after IdleTTL; Close removes
// every remaining container. Containers are never started, they only expose
// an image's filesystem for export.
type SandboxManager struct {
	engine  core.ImageEngine
	idleTTL time.Duration
	logger  *slog.Logger

	creating singleflight.Group

	mu     sync.Mutex
	leases map[string]*sandboxLease

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

type sandboxLease struct {
	containerID string
	refs        int
	lastUsed    time.Time
}

// FilesystemHandle exposes export access to a leased container's filesystem.
// Valid only for the duration of the WithFilesystem callback.
type FilesystemHandle struct {
	engine      core.ImageEngine
	containerID string
}

// Export streams a tar archive of the given path from the leased container.
func (h *FilesystemHandle) Export(ctx context.Context, path string) (io.ReadCloser, error) {
	return h.engine.ExportPath(ctx, h.containerID, path)
}

// NewSandboxManager creates a SandboxManager and starts its janitor.
func NewSandboxManager(opts SandboxManagerOptions) (*SandboxManager, error) {
	if opts.Engine == nil {
		return nil, errors.New("ImageEngine is required")
	}
	idleTTL := opts.IdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultSandboxIdleTTL
	}
	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "sandbox_manager")
	}

	m := &SandboxManager{
		engine:  opts.Engine,
		idleTTL: idleTTL,
		logger:  logger,
		leases:  make(map[string]*sandboxLease),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go m.janitor()
	return m, nil
}

// WithFilesystem runs fn with a handle to a container leased for the image
// reference, creating the container (and pulling the image) when no lease
// exists. The lease is refcounted for the duration of fn and released
// afterwards on every exit path; the container itself stays alive for reuse
// until the janitor or Close removes it.
func (m *SandboxManager) WithFilesystem(ctx context.Context, ref string, fn func(*FilesystemHandle) error) error {
	lease, err := m.acquire(ctx, ref)
	if err != nil {
		return err
	}
	defer m.release(ref)

	return fn(&FilesystemHandle{engine: m.engine, containerID: lease.containerID})
}

func (m *SandboxManager) acquire(ctx context.Context, ref string) (*sandboxLease, error) {
	m.mu.Lock()
	if lease, ok := m.leases[ref]; ok {
		lease.refs++
		lease.lastUsed = time.Now()
		m.mu.Unlock()
		return lease, nil
	}
	m.mu.Unlock()

	// Collapse concurrent creations for the same reference into one
	// pull+create.
	_, err, _ := m.creating.Do(ref, func() (any, error) {
		if ensureErr := m.engine.EnsureImage(ctx, ref); ensureErr != nil {
			return nil, ensureErr
		}
		containerID, createErr := m.engine.CreateContainer(ctx, ref)
		if createErr != nil {
			return nil, createErr
		}
		m.mu.Lock()
		m.leases[ref] = &sandboxLease{containerID: containerID, lastUsed: time.Now()}
		m.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	lease, ok := m.leases[ref]
	if !ok {
		return nil, apperrors.Sandbox(errors.New("lease vanished after creation"), fmt.Sprintf("lease sandbox for %s", ref))
	}
	lease.refs++
	lease.lastUsed = time.Now()
	return lease, nil
}

func (m *SandboxManager) release(ref string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lease, ok := m.leases[ref]; ok && lease.refs > 0 {
		lease.refs--
		lease.lastUsed = time.Now()
	}
}

func (m *SandboxManager) janitor() {
	defer close(m.done)
	ticker := time.NewTicker(sandboxSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep removes containers whose lease has been unused past the idle TTL.
func (m *SandboxManager) sweep() {
	now := time.Now()

	m.mu.Lock()
	expired := make(map[string]string)
	for ref, lease := range m.leases {
		if lease.refs == 0 && now.Sub(lease.lastUsed) > m.idleTTL {
			expired[ref] = lease.containerID
			delete(m.leases, ref)
		}
	}
	m.mu.Unlock()

	for ref, containerID := range expired {
		m.remove(ref, containerID)
	}
}

func (m *SandboxManager) remove(ref, containerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), sandboxRemoveTimeout)
	defer cancel()
	if err := m.engine.RemoveContainer(ctx, containerID); err != nil {
		// Teardown failure must not clobber results already obtained from
		// the container, but it has to reach the reporting path.
		if m.logger != nil {
			m.logger.Error("sandbox removal failed", "ref", ref, "container_id", containerID, "error", err)
		}
		return
	}
	if m.logger != nil {
		m.logger.Debug("sandbox removed", "ref", ref, "container_id", containerID)
	}
}

// Close stops the janitor and removes every remaining container, regardless
// of refcount. Returns the joined removal errors, if any.
func (m *SandboxManager) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done

	m.mu.Lock()
	remaining := make(map[string]string)
	for ref, lease := range m.leases {
		remaining[ref] = lease.containerID
	}
	m.leases = make(map[string]*sandboxLease)
	m.mu.Unlock()

	var errs []error
	for ref, containerID := range remaining {
		ctx, cancel := context.WithTimeout(context.Background(), sandboxRemoveTimeout)
		if err := m.engine.RemoveContainer(ctx, containerID); err != nil {
			errs = append(errs, fmt.Errorf("remove sandbox for %s: %w", ref, err))
		}
		cancel()
	}
	return errors.Join(errs...)
}
