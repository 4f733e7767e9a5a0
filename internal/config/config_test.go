package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoad_EnvOnly_Defaults(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for explicitly missing config file")
	}
}

func TestLoad_Defaults(t *testing.T) {
	validEnv(t)
	// Run from a temp dir so ./config.yaml does not exist.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("server.read_timeout: got %v, want 10s", cfg.Server.ReadTimeout)
	}
	if cfg.Auth.TokenTTL != 72*time.Hour {
		t.Errorf("auth.token_ttl: got %v, want 72h", cfg.Auth.TokenTTL)
	}
	if cfg.API.DefaultPageSize != 20 || cfg.API.MaxPageSize != 100 {
		t.Errorf("api page sizes: got %d/%d, want 20/100", cfg.API.DefaultPageSize, cfg.API.MaxPageSize)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format: got %q, want %q", cfg.Log.Format, "json")
	}
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	validEnv(t)
	dir := t.TempDir()
	path := writeYAML(t, dir, `
server:
  port: 9090
log:
  level: "debug"
  format: "text"
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}

	// ENV beats YAML.
	if cfg.Server.Port != 7070 {
		t.Errorf("server.port: got %d, want 7070", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level: got %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	validEnv(t)
	t.Setenv("AUTH_JWT_SECRET", "too-short")
	t.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for short jwt secret")
	}
}

func TestValidate_PageSizeBounds(t *testing.T) {
	validEnv(t)
	t.Setenv("API_MAX_PAGE_SIZE", "5")
	t.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for max_page_size < default_page_size")
	}
}

func TestValidate_ConnBounds(t *testing.T) {
	validEnv(t)
	t.Setenv("DATABASE_MIN_CONNS", "50")
	t.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for min_conns > max_conns")
	}
}
