package config

import "time"

const (
	maxInspectorWorkers = 64
	maxQueueSize        = 1024
)

// InspectorConfig contains inspection pipeline configuration.
type InspectorConfig struct {
	// Workers is the size of the pipeline worker pool.
	Workers int `env:"INSPECTOR_WORKERS" envDefault:"4"`

	// QueueSize is the submission queue capacity; submissions past it are
	// rejected.
	QueueSize int `env:"INSPECTOR_QUEUE_SIZE" envDefault:"64"`

	// ResultTTL is the lifetime of a cached inspection result.
	ResultTTL time.Duration `env:"INSPECTOR_RESULT_TTL" envDefault:"1h"`

	// SandboxIdleTTL is how long an unused sandbox container is kept for
	// reuse before removal.
	SandboxIdleTTL time.Duration `env:"INSPECTOR_SANDBOX_IDLE_TTL" envDefault:"5m"`

	// ExportRoot is the filesystem subtree listed in the inspection result.
	ExportRoot string `env:"INSPECTOR_EXPORT_ROOT" envDefault:"/"`
}

// Sanitize applies guardrails to inspector configuration values.
func (c *InspectorConfig) Sanitize() {
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Workers > maxInspectorWorkers {
		c.Workers = maxInspectorWorkers
	}
	if c.QueueSize < 1 {
		c.QueueSize = 1
	}
	if c.QueueSize > maxQueueSize {
		c.QueueSize = maxQueueSize
	}
	if c.ResultTTL <= 0 {
		c.ResultTTL = time.Hour
	}
	if c.SandboxIdleTTL <= 0 {
		c.SandboxIdleTTL = 5 * time.Minute
	}
	if c.ExportRoot == "" {
		c.ExportRoot = "/"
	}
}
