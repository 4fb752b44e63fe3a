// Package runtimeconfig holds the typed service configuration and its
// environment loading.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	ErrAuthSecretRequired    = errors.New("runtimeconfig: auth secret is required")
	ErrStorageDriverUnknown  = errors.New("runtimeconfig: unknown storage driver")
	ErrStorageDSNRequired    = errors.New("runtimeconfig: storage dsn is required")
	ErrNoLanguagesConfigured = errors.New("runtimeconfig: at least one language is required")
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig  `envPrefix:"LOCALIZE_SERVER_"`
	Storage   StorageConfig `envPrefix:"LOCALIZE_STORAGE_"`
	Auth      AuthConfig    `envPrefix:"LOCALIZE_AUTH_"`
	Logging   LoggingConfig `envPrefix:"LOCALIZE_LOG_"`
	CORS      CORSConfig    `envPrefix:"LOCALIZE_CORS_"`
	Languages []string      `env:"LOCALIZE_LANGUAGES" envDefault:"en:English,fr:French,es:Spanish"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// StorageConfig selects the backing store.
type StorageConfig struct {
	Driver string `env:"DRIVER" envDefault:"sqlite3"`
	DSN    string `env:"DSN" envDefault:"file:localize.db?cache=shared&_fk=1"`
}

// AuthConfig configures the JWT identity verifier.
type AuthConfig struct {
	Secret string `env:"SECRET"`
	Issuer string `env:"ISSUER"`
}

// LoggingConfig configures the go-logger provider.
type LoggingConfig struct {
	Level     string `env:"LEVEL" envDefault:"info"`
	Format    string `env:"FORMAT" envDefault:"json"`
	AddSource bool   `env:"ADD_SOURCE" envDefault:"false"`
}

// CORSConfig configures cross-origin behavior. Empty origins allow any.
type CORSConfig struct {
	AllowedOrigins   []string `env:"ORIGINS"`
	AllowCredentials bool     `env:"CREDENTIALS" envDefault:"false"`
}

// DefaultConfig returns the built-in defaults without consulting the
// environment.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Storage: StorageConfig{
			Driver: "sqlite3",
			DSN:    "file:localize.db?cache=shared&_fk=1",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Languages: []string{"en:English", "fr:French", "es:Spanish"},
	}
}

// FromEnv loads configuration from environment variables and validates it.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("runtimeconfig: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.Secret) == "" {
		return ErrAuthSecretRequired
	}
	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("%w: %q", ErrStorageDriverUnknown, c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.DSN) == "" {
		return ErrStorageDSNRequired
	}
	if len(c.LanguageSeed()) == 0 {
		return ErrNoLanguagesConfigured
	}
	return nil
}

// LanguageSeed parses the configured language list. Entries are either a
// bare code ("en") or a code:name pair ("en:English").
func (c Config) LanguageSeed() map[string]string {
	seed := make(map[string]string, len(c.Languages))
	for _, entry := range c.Languages {
		code, name, found := strings.Cut(strings.TrimSpace(entry), ":")
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if !found || strings.TrimSpace(name) == "" {
			name = code
		}
		seed[code] = strings.TrimSpace(name)
	}
	return seed
}
