// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20

	// DefaultRequestTimeout bounds API handlers.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultBcryptCost matches bcrypt.DefaultCost.
	DefaultBcryptCost = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultDir is where Load looks for base.yaml and profile files.
	DefaultDir = "configs"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "APP_"
)

// Config is the root configuration structure.
type Config struct {
	App         AppConfig         `koanf:"app"         validate:"required"`
	Server      ServerConfig      `koanf:"server"      validate:"required"`
	Log         LogConfig         `koanf:"log"         validate:"required"`
	Telemetry   TelemetryConfig   `koanf:"telemetry"`
	Storage     StorageConfig     `koanf:"storage"     validate:"required"`
	Credentials CredentialsConfig `koanf:"credentials" validate:"required"`
	Upstream    UpstreamConfig    `koanf:"upstream"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"min=0"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// StorageConfig locates the JSON data files. File names are relative to
// DataDir unless absolute.
type StorageConfig struct {
	DataDir         string `koanf:"data_dir"         validate:"required"`
	QuotesFile      string `koanf:"quotes_file"      validate:"required"`
	UsersFile       string `koanf:"users_file"       validate:"required"`
	CollectionsFile string `koanf:"collections_file" validate:"required"`
	CredentialsFile string `koanf:"credentials_file" validate:"required"`

	// RandomSeed seeds the random quote sampler; 0 seeds from entropy.
	RandomSeed uint64 `koanf:"random_seed"`
}

// CredentialsPath resolves CredentialsFile against DataDir.
func (s StorageConfig) CredentialsPath() string {
	if filepath.IsAbs(s.CredentialsFile) {
		return s.CredentialsFile
	}

	return filepath.Join(s.DataDir, s.CredentialsFile)
}

// CredentialsConfig contains password hashing settings.
type CredentialsConfig struct {
	BcryptCost int `koanf:"bcrypt_cost" validate:"min=4,max=31"`
}

// UpstreamConfig configures the hitokoto-compatible service the import
// command pulls quotes from.
type UpstreamConfig struct {
	BaseURL   string        `koanf:"base_url"   validate:"required,url"`
	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"    validate:"required,min=100ms"`
	Retry     RetryConfig   `koanf:"retry"`
	Breaker   BreakerConfig `koanf:"breaker"`
}

// RetryConfig contains backoff settings for upstream calls.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"min=0"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"min=0"`
	Multiplier      float64       `koanf:"multiplier"       validate:"min=1"`
}

// BreakerConfig contains circuit breaker settings for upstream calls.
type BreakerConfig struct {
	MaxFailures int           `koanf:"max_failures" validate:"min=1"`
	CoolDown    time.Duration `koanf:"cool_down"    validate:"min=0"`
	Trials      int           `koanf:"trials"       validate:"min=1"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "pencil-api",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  DefaultRequestTimeout.String(),
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/pencil.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "pencil-api",
		"telemetry.sampling_rate": 1.0,

		"storage.data_dir":         ".",
		"storage.quotes_file":      "hitokoto.json",
		"storage.users_file":       "user.json",
		"storage.collections_file": "collection.json",
		"storage.credentials_file": "credentials.json",
		"storage.random_seed":      0,

		"credentials.bcrypt_cost": DefaultBcryptCost,

		"upstream.base_url":               "https://v1.hitokoto.cn",
		"upstream.user_agent":             "pencil-api",
		"upstream.timeout":                "5s",
		"upstream.retry.max_attempts":     3,
		"upstream.retry.initial_interval": "200ms",
		"upstream.retry.max_interval":     "2s",
		"upstream.retry.multiplier":       2.0,
		"upstream.breaker.max_failures":   5,
		"upstream.breaker.cool_down":      "30s",
		"upstream.breaker.trials":         1,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file ({dir}/{profile}.yaml)
//  3. Base config file ({dir}/base.yaml)
//  4. Default values
//
// An empty dir means DefaultDir. Missing files are skipped.
func Load(dir, profile string) (*Config, error) {
	if dir == "" {
		dir = DefaultDir
	}

	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, filepath.Join(dir, "base.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		err := loadFileIfExists(k, filepath.Join(dir, profile+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps an environment variable to a config key. A double
// underscore separates levels so keys may keep their own underscores:
// APP_STORAGE__DATA_DIR sets storage.data_dir and
// APP_LOG__FILE__MAX_SIZE sets log.file.max_size.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
