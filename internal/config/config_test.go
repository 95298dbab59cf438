// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, defaults, and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"
  shutdown_timeout: "15s"

store:
  backend: "sqlite"
  path: "./test.db"

cors:
  allowed_origins:
    - "http://localhost:3000"
    - "https://dash.example.com"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("Server.HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if cfg.Server.ShutdownTimeout != 15*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 15s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("Store.Backend = %q, want sqlite", cfg.Store.Backend)
	}
	if cfg.Store.Path != "./test.db" {
		t.Errorf("Store.Path = %q, want ./test.db", cfg.Store.Path)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Errorf("CORS.AllowedOrigins = %v, want 2 entries", cfg.CORS.AllowedOrigins)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_SurrealBackend(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: "surreal"
  url: "http://localhost:8000"
  namespace: "dash"
  database: "dash"
  user: "root"
  pass: "root"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != BackendSurreal {
		t.Errorf("Store.Backend = %q, want surreal", cfg.Store.Backend)
	}
	if cfg.Store.Namespace != "dash" || cfg.Store.Database != "dash" {
		t.Errorf("surreal namespace/database = %q/%q", cfg.Store.Namespace, cfg.Store.Database)
	}
	// Defaults survive a partial file.
	if cfg.Server.HTTPAddr != ":8080" {
		t.Errorf("Server.HTTPAddr = %q, want default :8080", cfg.Server.HTTPAddr)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_DASH_DB", "/var/lib/dash/dash.db")
	t.Setenv("TEST_DASH_PASS", "s3cret")

	path := writeConfig(t, `
store:
  backend: "sqlite"
  path: "${TEST_DASH_DB}"
  pass: "${TEST_DASH_PASS}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Path != "/var/lib/dash/dash.db" {
		t.Errorf("Store.Path = %q, env var not expanded", cfg.Store.Path)
	}
	if cfg.Store.Pass != "s3cret" {
		t.Errorf("Store.Pass = %q, env var not expanded", cfg.Store.Pass)
	}
}

func TestLoad_UnsetEnvVarBecomesEmpty(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: "sqlite"
  path: "${DEFINITELY_NOT_SET_12345}"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for empty sqlite path")
	}
	if !strings.Contains(err.Error(), "store.path") {
		t.Errorf("error = %v, want mention of store.path", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
server:
  shutdown_timeout: "soonish"
store:
  backend: "memory"
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "shutdown_timeout") {
		t.Fatalf("error = %v, want shutdown_timeout parse failure", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"memory backend needs nothing", func(c *Config) {
			c.Store = StoreConfig{Backend: BackendMemory}
		}, ""},
		{"missing http addr", func(c *Config) { c.Server.HTTPAddr = "" }, "http_addr"},
		{"unknown backend", func(c *Config) { c.Store.Backend = "postgres" }, "store.backend"},
		{"surreal without url", func(c *Config) {
			c.Store = StoreConfig{Backend: BackendSurreal, Namespace: "n", Database: "d"}
		}, "store.url"},
		{"surreal without namespace", func(c *Config) {
			c.Store = StoreConfig{Backend: BackendSurreal, URL: "http://localhost:8000", Database: "d"}
		}, "namespace"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("DASH_CONFIG", "/etc/dash/config.yaml")
	if got := DefaultPath(); got != "/etc/dash/config.yaml" {
		t.Errorf("DefaultPath() = %q, want DASH_CONFIG value", got)
	}

	t.Setenv("DASH_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	want := filepath.Join("/tmp/xdg", "dash-gateway", "config.yaml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
