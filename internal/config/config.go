// Package config loads service configuration from .env files, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Stations StationsConfig `yaml:"stations"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"readTimeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idleTimeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" validate:"gt=0"`
	AllowedOrigins  []string      `yaml:"allowedOrigins"`
	StaticDir       string        `yaml:"staticDir"`
}

// DatasetConfig selects where the route table is loaded from.
type DatasetConfig struct {
	Source          string `yaml:"source" validate:"oneof=json sqlite postgres"`
	DataDir         string `yaml:"dataDir" validate:"required_if=Source json"`
	SQLitePath      string `yaml:"sqlitePath" validate:"required_if=Source sqlite"`
	DatabaseURL     string `yaml:"databaseURL" validate:"required_if=Source postgres"`
	VerifyStopIndex bool   `yaml:"verifyStopIndex"`
}

// StationsConfig tunes station-name autocomplete.
type StationsConfig struct {
	SearchLimit int           `yaml:"searchLimit" validate:"gt=0"`
	CacheSize   int           `yaml:"cacheSize" validate:"gte=0"`
	CacheTTL    time.Duration `yaml:"cacheTTL" validate:"gte=0"`
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"` // text|json
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8081
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultDataDir         = "data"
	defaultSQLitePath      = "data/transit.db"
	defaultSearchLimit     = 10
	defaultCacheSize       = 1024
	defaultCacheTTL        = 10 * time.Minute
)

var defaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"https://spuf-314-frontend.vercel.app",
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Host:            defaultHost,
			Port:            defaultPort,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			AllowedOrigins:  append([]string(nil), defaultAllowedOrigins...),
		},
		Dataset: DatasetConfig{
			Source:     "json",
			DataDir:    defaultDataDir,
			SQLitePath: defaultSQLitePath,
		},
		Stations: StationsConfig{
			SearchLimit: defaultSearchLimit,
			CacheSize:   defaultCacheSize,
			CacheTTL:    defaultCacheTTL,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads .env and .env.local (missing files are ignored), then the YAML
// file named by CONFIG_FILE if set, then environment variables, and
// validates the result.
func Load() (Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.HTTP.Host = valueOrDefault("SERVER_HOST", cfg.HTTP.Host)
	cfg.HTTP.StaticDir = valueOrDefault("STATIC_DIR", cfg.HTTP.StaticDir)
	if v := os.Getenv("SERVER_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = ParseOrigins(v)
	}

	cfg.Dataset.Source = strings.ToLower(valueOrDefault("DATASET_SOURCE", cfg.Dataset.Source))
	cfg.Dataset.DataDir = valueOrDefault("DATA_DIR", cfg.Dataset.DataDir)
	cfg.Dataset.SQLitePath = valueOrDefault("SQLITE_DATABASE", cfg.Dataset.SQLitePath)
	cfg.Dataset.DatabaseURL = valueOrDefault("DATABASE_URL", cfg.Dataset.DatabaseURL)

	cfg.Logging.Level = valueOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = strings.ToLower(valueOrDefault("LOG_FORMAT", cfg.Logging.Format))

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &cfg.HTTP.Port},
		{"STATION_SEARCH_LIMIT", &cfg.Stations.SearchLimit},
		{"STATION_CACHE_SIZE", &cfg.Stations.CacheSize},
	}
	for _, e := range ints {
		if err := parseInt(e.key, e.dst); err != nil {
			return err
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"STATION_CACHE_TTL", &cfg.Stations.CacheTTL},
	}
	for _, e := range durations {
		if err := parseDuration(e.key, e.dst); err != nil {
			return err
		}
	}

	if v := os.Getenv("VERIFY_STOP_INDEX"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid VERIFY_STOP_INDEX value %q: %w", v, err)
		}
		cfg.Dataset.VerifyStopIndex = b
	}

	return nil
}

// ParseOrigins splits a comma separated origin list, dropping blanks.
func ParseOrigins(csv string) []string {
	var origins []string
	for _, part := range strings.Split(csv, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func parseDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
