package config

// StatsdConfig contains the metrics endpoint settings. Leave Addr empty to
// disable metric emission.
type StatsdConfig struct {
	Addr   string `env:"ADDR"`
	Prefix string `env:"PREFIX" envDefault:"layerpeek"`
}

// Enabled reports whether a StatsD endpoint is configured.
func (c StatsdConfig) Enabled() bool {
	return c.Addr != ""
}
