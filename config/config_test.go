package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDiscoverFromExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "api_key: k\n")

	got, found, err := DiscoverFrom(path, dir, dir)
	if err != nil {
		t.Fatalf("DiscoverFrom() error = %v", err)
	}
	if !found || got != path {
		t.Fatalf("DiscoverFrom() = (%q, %v), want (%q, true)", got, found, path)
	}
}

func TestDiscoverFromExplicitPathMissing(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := DiscoverFrom(filepath.Join(dir, "absent.yaml"), dir, dir); err == nil {
		t.Fatal("DiscoverFrom() error = nil, want non-nil for explicit missing path")
	}
}

func TestDiscoverFromFirstMatch(t *testing.T) {
	cwd := t.TempDir()
	home := t.TempDir()
	projectPath := filepath.Join(cwd, "newswire.yaml")
	homePath := filepath.Join(home, ".newswire", "config.yaml")
	writeFile(t, projectPath, "api_key: project\n")
	writeFile(t, homePath, "api_key: home\n")

	got, found, err := DiscoverFrom("", cwd, home)
	if err != nil {
		t.Fatalf("DiscoverFrom() error = %v", err)
	}
	if !found || got != projectPath {
		t.Fatalf("DiscoverFrom() = (%q, %v), want project config first", got, found)
	}

	// Without the project file the home config wins.
	if err := os.Remove(projectPath); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, found, err = DiscoverFrom("", cwd, home)
	if err != nil {
		t.Fatalf("DiscoverFrom() error = %v", err)
	}
	if !found || got != homePath {
		t.Fatalf("DiscoverFrom() = (%q, %v), want home config", got, found)
	}
}

func TestDiscoverFromNoConfig(t *testing.T) {
	_, found, err := DiscoverFrom("", t.TempDir(), t.TempDir())
	if err != nil {
		t.Fatalf("DiscoverFrom() error = %v", err)
	}
	if found {
		t.Fatal("found = true, want false")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newswire.yaml")
	writeFile(t, path, `
api_key: file-key
endpoint: https://example.test/v2/everything
request_timeout: 15s
health_interval: 2m
otlp_endpoint: http://collector:4318
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Fatalf("APIKey = %q, want file-key", cfg.APIKey)
	}
	if got := time.Duration(cfg.RequestTimeout); got != 15*time.Second {
		t.Fatalf("RequestTimeout = %v, want 15s", got)
	}
	if got := time.Duration(cfg.HealthInterval); got != 2*time.Minute {
		t.Fatalf("HealthInterval = %v, want 2m", got)
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newswire.yaml")
	writeFile(t, path, "request_timeout: soon\n")

	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil, want parse failure")
	}
}

func TestWithEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvEndpoint, "https://override.test")

	cfg := Config{APIKey: "file-key", Endpoint: "https://file.test"}.WithEnv()
	if cfg.APIKey != "env-key" {
		t.Fatalf("APIKey = %q, want env-key", cfg.APIKey)
	}
	if cfg.Endpoint != "https://override.test" {
		t.Fatalf("Endpoint = %q, want override", cfg.Endpoint)
	}
}

func TestWithEnvMissingKeyIsNotAnError(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvEndpoint, "")

	cfg := Config{}.WithEnv()
	if cfg.APIKey != "" {
		t.Fatalf("APIKey = %q, want empty", cfg.APIKey)
	}
}

func TestRequestTimeoutOrDefault(t *testing.T) {
	var cfg Config
	if got := cfg.RequestTimeoutOrDefault(30 * time.Second); got != 30*time.Second {
		t.Fatalf("default = %v, want 30s", got)
	}
	cfg.RequestTimeout = Duration(5 * time.Second)
	if got := cfg.RequestTimeoutOrDefault(30 * time.Second); got != 5*time.Second {
		t.Fatalf("configured = %v, want 5s", got)
	}
}
