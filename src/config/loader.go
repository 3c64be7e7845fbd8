package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Loader handles configuration loading from YAML files
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

var envVarPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// Load loads configuration from a YAML file on top of the defaults.
// Environment variables may be referenced in the YAML as ${VAR_NAME} or
// ${VAR_NAME:-default}. When configPath is empty, a set of default
// locations is probed; if none exists the defaults are returned as-is.
func (l *Loader) Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	filePath := l.resolveConfigPath(configPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

func (l *Loader) resolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}

	candidates := []string{
		"garbage-hunter.yaml",
		"config/garbage-hunter.yaml",
		filepath.Join(os.Getenv("HOME"), ".garbage-hunter", "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func expandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		if len(sub) >= 3 {
			return sub[2]
		}
		return ""
	})
}
