// Package config holds the application configuration, loaded from
// environment variables via github.com/caarlos0/env.
//
// Configuration is split by domain:
//   - http.go: HTTP server configuration
//   - database.go: job store and result cache backends
//   - inspector.go: inspection pipeline configuration
//   - observability.go: metrics emission
package config

// AppConfig is the main application configuration struct.
type AppConfig struct {
	// IsDev controls development mode behavior. Set DEV=true to enable.
	IsDev bool `env:"DEV" envDefault:"false"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Storage configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// Inspection pipeline configuration
	Inspector InspectorConfig

	// Metrics emission
	Statsd StatsdConfig `envPrefix:"STATSD_"`
}

// Sanitize applies guardrails to configuration values loaded from env.
func (c *AppConfig) Sanitize() {
	c.Inspector.Sanitize()
}
