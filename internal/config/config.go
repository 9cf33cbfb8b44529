// Package config handles Patitas CLI configuration file loading and validation.
//
// This is CLI-only configuration (the patitas.yaml a user drops in a project
// root to set renderer defaults for the `patitas` binary). The parsing core
// itself never reads files or takes a Config value directly; callers that
// embed the core construct a patitas.ParseConfig/patitas.RenderConfig from
// whatever they read here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the Patitas CLI configuration file.
	ConfigFileName = "patitas.yaml"

	// DefaultHighlightStyle is used when the config omits highlight_style.
	DefaultHighlightStyle = "semantic"

	// DefaultPoolSize is the per-thread Parser/Renderer pool capacity when
	// the config omits pool_size.
	DefaultPoolSize = 8
)

var validHighlightStyles = []string{"semantic", "pygments"}

// Config holds the Patitas CLI configuration.
type Config struct {
	// ProjectRoot is the absolute path to the project root (where
	// patitas.yaml was found, or where we're running from if absent).
	ProjectRoot string `yaml:"-"`

	// HighlightStyle selects the syntax-highlighting style used when
	// RenderConfig.Highlight is enabled ("semantic" or "pygments").
	HighlightStyle string `yaml:"highlight_style"`

	// PoolSize is the per-thread Parser/Renderer pool capacity.
	PoolSize int `yaml:"pool_size"`

	// Tables, Strikethrough, TaskLists, Footnotes, Math, and Autolinks
	// mirror the GFM extension flags on patitas.ParseConfig.
	Tables        bool `yaml:"tables"`
	Strikethrough bool `yaml:"strikethrough"`
	TaskLists     bool `yaml:"task_lists"`
	Footnotes     bool `yaml:"footnotes"`
	Math          bool `yaml:"math"`
	Autolinks     bool `yaml:"autolinks"`
}

// Load searches for patitas.yaml starting from the current working
// directory, walking up the directory tree. If found, it parses the
// configuration. If not found, returns default configuration.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return LoadFromPath(cwd)
}

// LoadFromPath searches for patitas.yaml starting from the given path,
// walking up the directory tree. If found, it parses the configuration.
// If not found, returns default configuration with startPath as ProjectRoot.
func LoadFromPath(startPath string) (*Config, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to resolve absolute path for %q: %w",
			startPath,
			err,
		)
	}

	currentPath := absPath
	for {
		configPath := filepath.Join(currentPath, ConfigFileName)

		if _, err := os.Stat(configPath); err == nil {
			cfg, err := parseConfigFile(configPath)
			if err != nil {
				return nil, err
			}
			cfg.ProjectRoot = currentPath

			if err := cfg.validate(); err != nil {
				return nil, fmt.Errorf(
					"invalid configuration in %s: %w",
					configPath,
					err,
				)
			}

			return cfg, nil
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			break
		}
		currentPath = parentPath
	}

	return defaultConfig(absPath), nil
}

func defaultConfig(projectRoot string) *Config {
	return &Config{
		ProjectRoot:    projectRoot,
		HighlightStyle: DefaultHighlightStyle,
		PoolSize:       DefaultPoolSize,
	}
}

// parseConfigFile reads and parses a patitas.yaml file.
func parseConfigFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := *defaultConfig("")
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		var yamlErr *yaml.TypeError
		if errors.As(err, &yamlErr) {
			return nil, fmt.Errorf("invalid YAML syntax: %v", yamlErr.Errors)
		}

		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.HighlightStyle == "" {
		cfg.HighlightStyle = DefaultHighlightStyle
	}
	if cfg.PoolSize == 0 {
		cfg.PoolSize = DefaultPoolSize
	}

	return &cfg, nil
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if c.PoolSize < 1 {
		return errors.New("pool_size must be at least 1")
	}

	valid := false
	for _, style := range validHighlightStyles {
		if c.HighlightStyle == style {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf(
			"invalid highlight_style %q, available styles: %s",
			c.HighlightStyle,
			strings.Join(validHighlightStyles, ", "),
		)
	}

	return nil
}
