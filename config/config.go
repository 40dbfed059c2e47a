package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

// Backend selects and parameterizes one git hosting
// backend.
type Backend struct {
	// Name selects the backend implementation:
	// "github", "gitlab", or "bitbucket".
	Name string `yaml:"name"`

	// Repo is the full repository path on the host
	// (e.g. "owner/name").
	Repo string `yaml:"repo"`

	// Credential is the access token presented to the
	// host. ${ENV_VAR} references are expanded; if the
	// expanded value names an existing file, the token
	// is read from that file.
	Credential string `yaml:"credential"`

	// APIRoot overrides the backend's default API base
	// URL (e.g. a self-hosted instance). Leave empty
	// for the public host.
	APIRoot string `yaml:"api_root"`

	// FallbackToGitHub restores the legacy behavior of
	// treating an unknown Name as "github" instead of
	// failing.
	FallbackToGitHub bool `yaml:"fallback_to_github"`
}

// Config is the top-level configuration file layout.
type Config struct {
	// Backend is the single backend this session talks
	// to.
	Backend Backend `yaml:"backend"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses the configuration file at path,
// expanding ${ENV_VAR} references in the credential and
// resolving credential file indirection.
func Load(path string) (*Config, error) {
	const errCtx = "loading config"

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf(
			"%s: read %s: %w", errCtx, path, err,
		)
	}

	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(
			"%s: parse yaml: %w", errCtx, err,
		)
	}

	cfg.Backend.Credential = resolveCredential(
		cfg.Backend.Credential,
	)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return &cfg, nil
}

// resolveCredential expands ${VAR} references and, if the
// expanded value is a path to an existing file, reads the
// credential from that file.
func resolveCredential(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(
		raw,
		func(match string) string {
			name := envVarPattern.
				FindStringSubmatch(match)[1]

			if val := os.Getenv(name); val != "" {
				return val
			}

			slog.Warn(
				"environment variable is not set",
				"name", name,
			)

			return ""
		},
	)

	if _, err := os.Stat(resolved); err == nil {
		data, readErr := os.ReadFile(resolved) //nolint:gosec
		if readErr != nil {
			slog.Warn(
				"cannot read credential file",
				"path", resolved,
				"error", readErr,
			)

			return resolved
		}

		slog.Info(
			"read credential from file",
			"path", resolved,
		)

		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(cfg *Config) error {
	if cfg.Backend.Name == "" {
		return errors.New("backend.name must be set")
	}

	if cfg.Backend.Repo == "" {
		return errors.New("backend.repo must be set")
	}

	return nil
}
