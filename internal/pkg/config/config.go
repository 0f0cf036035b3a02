package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration, built once at startup and
// passed into constructors; nothing reads the environment after Load.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// The two signing secrets are a privilege-separation boundary: an
	// admin token must never verify against the user secret and vice
	// versa.
	AdminSecret string `env:"SECRET_ADMIN_KEY, required"`
	UserSecret  string `env:"SECRET_USER_KEY,  required"`

	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL, default=60s"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	// URI has no default: a missing storage connection string is a fatal
	// startup condition.
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=course_market"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using
// go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.AdminSecret == cfg.UserSecret {
		return nil, fmt.Errorf("config: SECRET_ADMIN_KEY and SECRET_USER_KEY must differ")
	}
	return &cfg, nil
}
