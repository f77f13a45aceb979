package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "concordia.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "concordia.yml"

// envPrefix is the prefix for environment variable overrides,
// e.g. CONCORDIA_CONNECTION_PASSWORD -> connection.password.
const envPrefix = "CONCORDIA_"

// Load reads the configuration for a generation run.
// Precedence, lowest to highest: built-in defaults, config file,
// CONCORDIA_* environment variables, CLI flags.
// The returned config is validated and has all defaults applied.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	configPath := findConfigFile(path)
	if configPath == "" {
		return nil, fmt.Errorf("configuration file %q not found. Run 'concordia init' to create it", ConfigFileName)
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(DefaultMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flag overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envToKey maps CONCORDIA_CONNECTION_PASSWORD to connection.password.
// Only the first underscore becomes a separator so nested keys with
// underscores (project_id, join_type) survive.
func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// findConfigFile finds the config file to use.
// Priority: explicit path > nearest concordia.yaml (then .yml) walking
// up from the working directory, so commands work from anywhere inside
// a project.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	root := FindProjectRoot(wd)
	if root == "" {
		return ""
	}
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir to a directory containing a
// concordia config file. Returns empty string if not found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for {
		for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
