package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

var envKeys = []string{
	"CONFIG_FILE", "SERVER_HOST", "PORT", "STATIC_DIR", "SERVER_ALLOWED_ORIGINS",
	"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
	"DATASET_SOURCE", "DATA_DIR", "SQLITE_DATABASE", "DATABASE_URL", "VERIFY_STOP_INDEX",
	"STATION_SEARCH_LIMIT", "STATION_CACHE_SIZE", "STATION_CACHE_TTL", "LOG_LEVEL", "LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.HTTP.Port != 8081 || cfg.Dataset.Source != "json" || cfg.Stations.SearchLimit != 10 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("DATASET_SOURCE", "SQLite")
	t.Setenv("SQLITE_DATABASE", "/tmp/routes.db")
	t.Setenv("VERIFY_STOP_INDEX", "true")
	t.Setenv("STATION_CACHE_TTL", "1m")
	t.Setenv("LOG_FORMAT", "JSON")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if !reflect.DeepEqual(cfg.HTTP.AllowedOrigins, []string{"http://a.example", "http://b.example"}) {
		t.Errorf("unexpected origins: %v", cfg.HTTP.AllowedOrigins)
	}
	if cfg.HTTP.ReadTimeout != 3*time.Second {
		t.Errorf("expected 3s read timeout, got %v", cfg.HTTP.ReadTimeout)
	}
	if cfg.Dataset.Source != "sqlite" || cfg.Dataset.SQLitePath != "/tmp/routes.db" || !cfg.Dataset.VerifyStopIndex {
		t.Errorf("unexpected dataset config: %+v", cfg.Dataset)
	}
	if cfg.Stations.CacheTTL != time.Minute {
		t.Errorf("expected 1m cache ttl, got %v", cfg.Stations.CacheTTL)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected json log format, got %q", cfg.Logging.Format)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yml")
	yml := `
http:
  port: 7000
  readTimeout: 5s
dataset:
  source: postgres
  databaseURL: postgres://localhost/bus
stations:
  searchLimit: 25
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7001")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HTTP.Port != 7001 {
		t.Errorf("env should override yaml port, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeout != 5*time.Second {
		t.Errorf("expected 5s from yaml, got %v", cfg.HTTP.ReadTimeout)
	}
	if cfg.HTTP.WriteTimeout != defaultWriteTimeout {
		t.Errorf("unset yaml field should keep default, got %v", cfg.HTTP.WriteTimeout)
	}
	if cfg.Dataset.Source != "postgres" || cfg.Dataset.DatabaseURL != "postgres://localhost/bus" {
		t.Errorf("unexpected dataset config: %+v", cfg.Dataset)
	}
	if cfg.Stations.SearchLimit != 25 || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected yaml values: %+v %+v", cfg.Stations, cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"non numeric port", map[string]string{"PORT": "http"}, "PORT"},
		{"port out of range", map[string]string{"PORT": "70000"}, "Port"},
		{"bad duration", map[string]string{"SERVER_IDLE_TIMEOUT": "soon"}, "SERVER_IDLE_TIMEOUT"},
		{"unknown source", map[string]string{"DATASET_SOURCE": "csv"}, "Source"},
		{"postgres without url", map[string]string{"DATASET_SOURCE": "postgres"}, "DatabaseURL"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "Format"},
		{"bad bool", map[string]string{"VERIFY_STOP_INDEX": "maybe"}, "VERIFY_STOP_INDEX"},
		{"zero search limit", map[string]string{"STATION_SEARCH_LIMIT": "0"}, "SearchLimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yml"))

	if _, err := Load(); err == nil {
		t.Error("expected error for missing config file")
	}
}
