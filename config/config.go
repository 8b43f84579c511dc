// Package config resolves server configuration from an optional YAML file
// and the process environment. A missing provider credential is a
// recoverable condition surfaced per invocation, never a startup failure.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvAPIKey holds the provider credential.
	EnvAPIKey = "NEWS_API_KEY"
	// EnvEndpoint optionally overrides the provider search endpoint.
	EnvEndpoint = "NEWS_API_ENDPOINT"

	projectConfigName = "newswire.yaml"
	homeConfigDir     = ".newswire"
	homeConfigName    = "config.yaml"
)

// Config is the resolved server configuration.
type Config struct {
	APIKey         string   `yaml:"api_key,omitempty"`
	Endpoint       string   `yaml:"endpoint,omitempty"`
	RequestTimeout Duration `yaml:"request_timeout,omitempty"`
	HealthInterval Duration `yaml:"health_interval,omitempty"`
	OTLPEndpoint   string   `yaml:"otlp_endpoint,omitempty"`
}

// Resolve discovers and loads the config file (if any) and applies
// environment overrides.
func Resolve(explicitPath string) (Config, error) {
	path, found, err := Discover(explicitPath)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if found {
		cfg, err = Load(path)
		if err != nil {
			return Config{}, err
		}
	}
	return cfg.WithEnv(), nil
}

// Discover resolves the config file location with first-match semantics:
// the explicit path if given, then ./newswire.yaml, then
// ~/.newswire/config.yaml.
func Discover(explicitPath string) (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("resolve working directory: %w", err)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("resolve user home: %w", err)
	}
	return DiscoverFrom(explicitPath, cwd, homeDir)
}

// DiscoverFrom is a testable variant of Discover.
func DiscoverFrom(explicitPath, cwd, homeDir string) (string, bool, error) {
	candidates := make([]string, 0, 2)
	explicit := strings.TrimSpace(explicitPath)
	if explicit != "" {
		candidates = append(candidates, filepath.Clean(explicit))
	} else {
		candidates = append(candidates, filepath.Join(cwd, projectConfigName))
		candidates = append(candidates, filepath.Join(homeDir, homeConfigDir, homeConfigName))
	}

	for i, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if errors.Is(err, os.ErrNotExist) {
			// An explicit path that does not exist is an error.
			if i == 0 && explicit != "" {
				return "", false, fmt.Errorf("config file %q not found", candidate)
			}
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("checking config path %q: %w", candidate, err)
		}
	}
	return "", false, nil
}

// Load reads one YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}

// WithEnv returns a copy with environment overrides applied. Environment
// values win over file values.
func (c Config) WithEnv() Config {
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvEndpoint)); v != "" {
		c.Endpoint = v
	}
	return c
}

// RequestTimeoutOrDefault returns the configured timeout or the fallback.
func (c Config) RequestTimeoutOrDefault(fallback time.Duration) time.Duration {
	if d := time.Duration(c.RequestTimeout); d > 0 {
		return d
	}
	return fallback
}
