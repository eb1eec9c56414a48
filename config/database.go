package config

// DBConfig contains the Postgres connection settings for the job store.
// Leave Host empty to fall back to the in-memory job store.
type DBConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"layerpeek"`
	Password string `env:"PASSWORD"`
	Name     string `env:"NAME" envDefault:"layerpeek"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`

	// RunMigrationsOnStart applies embedded migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// Enabled reports whether a Postgres host is configured.
func (c DBConfig) Enabled() bool {
	return c.Host != ""
}

// RedisConfig contains the Redis connection settings for the result cache.
// Leave Addr empty to fall back to the in-process cache.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}
