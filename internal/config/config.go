// Package config provides layered configuration for chlog using koanf.
// Values are loaded with priority: explicitly set flags > environment variables (CHLOG_*)
// > project config (.chlog.yml or .chlog.json) > defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "CHLOG_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceProject ConfigSource = "project"
	SourceFlag    ConfigSource = "flag"
)

// Configuration represents the persistent chlog settings shared by all commands.
type Configuration struct {
	ChangelogPath string `koanf:"changelog_path" validate:"required"`
	TagPrefix     string `koanf:"tag_prefix"`
	// GitHubRepo is "owner/repo" or a github.com URL. When empty it is
	// detected from GITHUB_REPOSITORY or the origin remote.
	GitHubRepo              string `koanf:"github_repo"`
	PrereleaseID            string `koanf:"prerelease_id" validate:"omitempty,prerelease_id"`
	KeepUnreleasedSection   bool   `koanf:"keep_unreleased_section"`
	FailOnEmptyReleaseNotes bool   `koanf:"fail_on_empty_release_notes"`
	Format                  string `koanf:"format" validate:"oneof=text json"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an explicit config file (--config). It must exist.
	ConfigPath string
	// Dir is searched for a project config when ConfigPath is empty (default: ".").
	Dir string
	// Overrides holds values of explicitly set flags, keyed by config key.
	Overrides map[string]any
}

// Load loads configuration from defaults, the project config file, the
// environment and flag overrides, then validates the result.
func Load(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadProjectConfig(k, opts); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		k.Set(key, value)
		slog.Debug("config override", slog.String("key", key), slog.String("source", string(SourceFlag)))
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadProjectConfig loads the explicit config file, or the first project
// config found in opts.Dir. A missing project config is not an error.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions) error {
	path := opts.ConfigPath
	if path != "" {
		if !fileExists(path) {
			return fmt.Errorf("config file not found: %s", path)
		}
	} else {
		path = FindProjectConfig(opts.Dir)
		if path == "" {
			return nil
		}
	}

	if isJSON(path) {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load project config %s: %w", path, err)
		}
	} else if err := loadYAMLConfig(k, path); err != nil {
		return err
	}

	slog.Debug("loaded config file", slog.String("path", path), slog.String("source", string(SourceProject)))
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load project config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// envTransform converts environment variable names to config keys
// Example: CHLOG_TAG_PREFIX -> tag_prefix
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
