package config

import "time"

// GetDefaults returns the default configuration values keyed by config key.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"backend":       BackendExec,
		"git_cmd":       "git",
		"repo_path":     "",
		"fetch_timeout": time.Duration(0),
		"progress":      true,
		"debug":         false,
	}
}

// Defaults returns the configuration used when no file or environment
// variable is present, or when loading fails.
func Defaults() *Configuration {
	return &Configuration{
		Backend:  BackendExec,
		GitCmd:   "git",
		Progress: true,
	}
}
