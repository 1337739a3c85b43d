// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.URL != "http://127.0.0.1:3000" {
		t.Errorf("default server URL = %q", cfg.Server.URL)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("default host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.URL != "http://127.0.0.1:3000" {
		t.Errorf("server URL = %q, want default", cfg.Server.URL)
	}
}

func TestLoadFromFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("VETCHAT_TEST_PORT", "4100")

	dir := filepath.Join(configHome, "vetchat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	content := `server:
  url: http://example.test:4100
  port: ${VETCHAT_TEST_PORT}
  log_requests: true
database:
  path: /tmp/test-clinic.db
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.URL != "http://example.test:4100" {
		t.Errorf("server URL = %q", cfg.Server.URL)
	}
	if cfg.Server.Port != 4100 {
		t.Errorf("port = %d, want env-expanded 4100", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/test-clinic.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if !cfg.Server.LogRequests {
		t.Error("log_requests should be enabled")
	}
	// Unset fields still get defaults
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("host = %q, want default", cfg.Server.Host)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "vetchat")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [broken"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
