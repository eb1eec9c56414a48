package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/layerpeek/layerpeek/config"
	"github.com/layerpeek/layerpeek/internal/adapters/dockerengine"
	"github.com/layerpeek/layerpeek/internal/core"
	"github.com/layerpeek/layerpeek/internal/data"
	"github.com/layerpeek/layerpeek/internal/observability/statsd"
	"github.com/layerpeek/layerpeek/internal/service"
)

// ServiceDeps groups the shared dependencies of the service container.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB               // Optional: nil selects the in-memory job store
	RedisClient redis.UniversalClient // Optional: nil selects the in-process cache
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed services and their teardown.
type ServiceContainer struct {
	Inspections *service.InspectionService
	Files       *service.FileService

	engine  *dockerengine.Engine
	sandbox *service.SandboxManager
	metrics *statsd.Client
}

// NewServices builds the service container: storage backends according to
// configuration, the docker engine adapter, the sandbox manager, and the
// inspection/file services on top.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("service dependencies are required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var jobs core.JobStore
	if deps.DB != nil {
		jobs = data.NewPGJobStore(deps.DB)
	} else {
		logger.Info("no database configured, using in-memory job store")
		jobs = data.NewMemoryJobStore()
	}

	var cache core.ResultCache
	if deps.RedisClient != nil {
		cache = data.NewRedisResultCache(deps.RedisClient)
	} else {
		logger.Info("no redis configured, using in-process result cache")
		cache = data.NewMemoryResultCache()
	}

	metrics, err := statsd.New(statsd.Config{
		Address: cfg.Statsd.Addr,
		Prefix:  cfg.Statsd.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect statsd: %w", err)
	}

	engine, err := dockerengine.Connect(logger)
	if err != nil {
		return nil, fmt.Errorf("connect docker engine: %w", err)
	}

	sandbox, err := service.NewSandboxManager(service.SandboxManagerOptions{
		Engine:  engine,
		IdleTTL: cfg.Inspector.SandboxIdleTTL,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create sandbox manager: %w", err)
	}

	inspections, err := service.NewInspectionService(service.InspectionServiceOptions{
		Jobs:       jobs,
		Cache:      cache,
		Engine:     engine,
		Sandbox:    sandbox,
		Workers:    cfg.Inspector.Workers,
		QueueSize:  cfg.Inspector.QueueSize,
		ResultTTL:  cfg.Inspector.ResultTTL,
		ExportRoot: cfg.Inspector.ExportRoot,
		Metrics:    metrics,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create inspection service: %w", err)
	}

	files, err := service.NewFileService(service.FileServiceOptions{
		Sandbox: sandbox,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create file service: %w", err)
	}

	return &ServiceContainer{
		Inspections: inspections,
		Files:       files,
		engine:      engine,
		sandbox:     sandbox,
		metrics:     metrics,
	}, nil
}

// Close drains the worker pool, removes remaining sandbox containers, and
// releases the engine client.
func (c *ServiceContainer) Close() error {
	c.Inspections.Close()
	var errs []error
	if err := c.sandbox.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close sandbox manager: %w", err))
	}
	if err := c.engine.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close docker engine: %w", err))
	}
	if err := c.metrics.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close statsd client: %w", err))
	}
	return errors.Join(errs...)
}
