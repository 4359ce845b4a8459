package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/garnizeh/pedidos/pkg/client"
	"github.com/garnizeh/pedidos/pkg/lifecycle"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// InsecureJWTSecret is the development default signing key of the fake API.
const InsecureJWTSecret = "supersecretkey"

// Session store kinds.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

type Config struct {
	Env       string          `yaml:"env"`
	API       client.Config   `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
	Log       LogConfig       `yaml:"log"`
	FakeAPI   FakeAPIConfig   `yaml:"fakeapi"`
}

type SessionConfig struct {
	// Store is "sqlite" (default) or "file"
	Store        string `yaml:"store"`
	DatabasePath string `yaml:"database_path"`
	FilePath     string `yaml:"file_path"`
}

type LifecycleConfig struct {
	// FinalizePolicy is "server" (default) or "cliente"
	FinalizePolicy string `yaml:"finalize_policy"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FakeAPIConfig configures the development API server.
type FakeAPIConfig struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Seed          bool          `yaml:"seed"`
}

// LoadConfig builds the configuration from defaults, the environment (a
// .env file included) and, when path is set, a YAML file decoded on top.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(getEnv("PEDIDOS_ENV_FILE", ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	api := client.DefaultConfig()
	api.BaseURL = getEnv("PEDIDOS_API_URL", api.BaseURL)
	api.Timeout = getEnvDuration("PEDIDOS_API_TIMEOUT", api.Timeout)
	api.Retries = getEnvInt("PEDIDOS_API_RETRIES", api.Retries)

	cfg := &Config{
		Env: getEnv("PEDIDOS_ENV", "production"),
		API: api,
		Session: SessionConfig{
			Store:        getEnv("PEDIDOS_SESSION_STORE", StoreSQLite),
			DatabasePath: getEnv("PEDIDOS_DATABASE_PATH", "pedidos.db"),
			FilePath:     getEnv("PEDIDOS_SESSION_FILE", "session.json"),
		},
		Lifecycle: LifecycleConfig{
			FinalizePolicy: getEnv("PEDIDOS_FINALIZE_POLICY", string(lifecycle.FinalizeServer)),
		},
		Log: LogConfig{
			Level:  getEnv("PEDIDOS_LOG_LEVEL", "warn"),
			Format: getEnv("PEDIDOS_LOG_FORMAT", "json"),
		},
		FakeAPI: FakeAPIConfig{
			Addr:          getEnv("PEDIDOS_FAKEAPI_ADDR", ":8080"),
			JWTSecret:     getEnv("PEDIDOS_JWT_SECRET", InsecureJWTSecret),
			TokenDuration: getEnvDuration("PEDIDOS_TOKEN_DURATION", time.Hour),
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	return cfg, nil
}

// Validate fills zero values with defaults and rejects unusable settings.
func (c *Config) Validate() error {
	def := client.DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.BaseURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = def.Timeout
	}
	if c.API.Retries < 0 {
		return fmt.Errorf("api.retries must not be negative")
	}
	if c.API.Backoff <= 0 {
		c.API.Backoff = def.Backoff
	}
	if c.API.CircuitFailureThreshold == 0 {
		c.API.CircuitFailureThreshold = def.CircuitFailureThreshold
	}
	if c.API.CircuitReset <= 0 {
		c.API.CircuitReset = def.CircuitReset
	}

	switch c.Session.Store {
	case "":
		c.Session.Store = StoreSQLite
	case StoreSQLite, StoreFile:
	default:
		return fmt.Errorf("session.store must be %q or %q, got %q", StoreSQLite, StoreFile, c.Session.Store)
	}
	if c.Session.Store == StoreSQLite && c.Session.DatabasePath == "" {
		return fmt.Errorf("session.database_path is required for the sqlite store")
	}
	if c.Session.Store == StoreFile && c.Session.FilePath == "" {
		return fmt.Errorf("session.file_path is required for the file store")
	}

	if _, err := lifecycle.ParseFinalizePolicy(c.Lifecycle.FinalizePolicy); err != nil {
		return fmt.Errorf("lifecycle.finalize_policy: %w", err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// ValidateFakeAPI checks the development server settings. The insecure
// default secret is only accepted when env is "development".
func (c *Config) ValidateFakeAPI() error {
	if c.FakeAPI.Addr == "" {
		c.FakeAPI.Addr = ":8080"
	}
	if c.FakeAPI.TokenDuration <= 0 {
		c.FakeAPI.TokenDuration = time.Hour
	}
	if c.FakeAPI.JWTSecret == "" {
		return fmt.Errorf("fakeapi.jwt_secret is required")
	}
	if c.FakeAPI.JWTSecret == InsecureJWTSecret && !c.Development() {
		return fmt.Errorf("insecure fakeapi.jwt_secret outside development; set PEDIDOS_JWT_SECRET or PEDIDOS_ENV=development")
	}
	return nil
}

// Development reports whether env (or PEDIDOS_ENV) is "development".
func (c *Config) Development() bool {
	env := c.Env
	if v := os.Getenv("PEDIDOS_ENV"); v != "" {
		env = v
	}
	return strings.EqualFold(env, "development")
}

// SlogLevel parses Level; empty means warn.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds the process logger described by l.
func (l LogConfig) NewLogger() (*slog.Logger, error) {
	lvl, err := l.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(l.Format, "text") {
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
