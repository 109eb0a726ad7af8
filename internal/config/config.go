// Package config loads the process configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// StoreConfig selects and locates the persistence backend.
// The seed and poster tools load only this part.
type StoreConfig struct {
	StoreDriver         string        `env:"STORE_DRIVER" envDefault:"mongo"`
	MongoURI            string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017/movie-streaming"`
	MongoDatabase       string        `env:"MONGODB_DATABASE"`
	DatabaseDSN         string        `env:"DATABASE_DSN"`
	SQLitePath          string        `env:"SQLITE_PATH" envDefault:"movies.db"`
	StoreConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT" envDefault:"60s"`
	StoreDebug          bool          `env:"STORE_DEBUG" envDefault:"false"`
}

// Config holds every setting the API server reads from the environment.
// It is built once in main and passed to constructors; nothing reads the
// environment at request time.
type Config struct {
	StoreConfig

	AppEnv      string `env:"APP_ENV" envDefault:"dev"`
	Port        string `env:"PORT" envDefault:"5000"`
	APIBasePath string `env:"API_BASE_PATH" envDefault:"/api"`

	JWTSecret    string        `env:"JWT_SECRET,required"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"720h"`

	FrontendURL        string   `env:"FRONTEND_URL"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	// CORSEnforce rejects unknown origins. When false they are logged and allowed.
	CORSEnforce bool `env:"CORS_ENFORCE" envDefault:"false"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"json"`
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadDotEnv loads .env.local and .env when present. Variables already set in
// the process environment win.
func LoadDotEnv() error {
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads .env files, then parses the environment into a Config and validates it.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadStore is Load for processes that only need the store.
func LoadStore() (*StoreConfig, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	sc := &StoreConfig{}
	if err := env.Parse(sc); err != nil {
		return nil, fmt.Errorf("parse store config: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// Validate checks that the selected driver has what it needs to connect.
func (c *StoreConfig) Validate() error {
	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return errors.New("config: MONGODB_URI is required for the mongo store")
		}
	case StorePostgres:
		if c.DatabaseDSN == "" {
			return errors.New("config: DATABASE_DSN is required for the postgres store")
		}
	case StoreSQLite:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	if err := c.StoreConfig.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("config: JWT_SECRET must not be blank")
	}
	if c.JWTExpiresIn <= 0 {
		return errors.New("config: JWT_EXPIRES_IN must be positive")
	}
	if c.APIBasePath != "" && !strings.HasPrefix(c.APIBasePath, "/") {
		return fmt.Errorf("config: API_BASE_PATH %q must start with /", c.APIBasePath)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// AllowedOrigins returns the CORS allow list: local development origins,
// FRONTEND_URL and CORS_ALLOWED_ORIGINS, without duplicates.
func (c *Config) AllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:3002",
		"https://localhost:3000",
		"https://localhost:3002",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:3002",
	}
	extra := append([]string{c.FrontendURL}, c.CORSAllowedOrigins...)
	seen := make(map[string]struct{}, len(origins)+len(extra))
	for _, o := range origins {
		seen[o] = struct{}{}
	}
	for _, o := range extra {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		origins = append(origins, o)
	}
	return origins
}
