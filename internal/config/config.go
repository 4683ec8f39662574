// Package config provides layered configuration for relnotes using koanf.
// Configuration is loaded with priority: environment variables (RELNOTES_*) >
// project config (.relnotes.yml, or legacy .relnotes.json) > user config
// (~/.config/relnotes/config.yml) > defaults. Command-line flags are applied on
// top by the cli package.
//
// Configuration only selects how commits are fetched and how diagnostics are
// reported; it never changes the rendered release notes.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "RELNOTES_"

// Fetch backends.
const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

// Configuration represents the relnotes configuration.
type Configuration struct {
	// Backend selects how history is read: "exec" runs GitCmd, "go-git" reads
	// the repository in-process.
	Backend string `koanf:"backend" validate:"oneof=exec go-git"`
	// GitCmd is the executable used by the exec backend.
	GitCmd string `koanf:"git_cmd" validate:"required"`
	// RepoPath is the directory the log query runs in. Empty means the current directory.
	RepoPath string `koanf:"repo_path"`
	// FetchTimeout bounds the log query. Zero means no timeout.
	FetchTimeout time.Duration `koanf:"fetch_timeout" validate:"min=0"`
	// Progress shows a spinner on stderr while commits are read (terminals only).
	Progress bool `koanf:"progress"`
	// Debug enables debug logging on stderr.
	Debug bool `koanf:"debug"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath replaces the project config lookup with an explicit file.
	// The file must exist.
	ProjectConfigPath string
	// UserConfigPath overrides the user config location (default: UserConfigPath()).
	UserConfigPath string
	// SkipUserConfig disables the user config layer.
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf, override string) error {
	path := override
	if path == "" {
		var err error
		path, err = UserConfigPath()
		if err != nil {
			return nil
		}
	}

	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project config. An explicit path must exist;
// otherwise .relnotes.yml is preferred over the legacy .relnotes.json.
func loadProjectConfig(k *koanf.Koanf, explicitPath string) error {
	if explicitPath != "" {
		if !fileExists(explicitPath) {
			return fmt.Errorf("config file %s does not exist", explicitPath)
		}
		return loadByExtension(k, explicitPath, "project")
	}

	if path := ProjectConfigPath(); fileExists(path) {
		return loadYAMLConfig(k, path, "project")
	}
	if path := LegacyProjectConfigPath(); fileExists(path) {
		return loadJSONConfig(k, path, "project")
	}
	return nil
}

// loadByExtension picks the parser from the file extension.
func loadByExtension(k *koanf.Koanf, path, configType string) error {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return loadJSONConfig(k, path, configType)
	}
	return loadYAMLConfig(k, path, configType)
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
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

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.RepoPath = expandHomePath(cfg.RepoPath)

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

// envTransform converts environment variable names to config keys
// Example: RELNOTES_FETCH_TIMEOUT -> fetch_timeout
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return homeDir + path[1:]
		}
	}
	return path
}
