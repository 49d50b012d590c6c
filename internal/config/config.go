// Package config loads and validates the docnorm YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ewdocs/go-docnorm/internal/fileutil"
	"github.com/ewdocs/go-docnorm/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidField    = errors.New("invalid config field")
)

// Field limits.
const (
	MaxCompanyLength = 100  // atlassian.net subdomain
	MaxPathLength    = 2048 // input/output/cache paths
)

// Default config file names searched in the working directory.
var defaultNames = []string{"docnorm.yaml", "docnorm.yml", ".docnorm.yaml"}

// Config holds all configuration for document normalization.
type Config struct {
	Company     string         `yaml:"company"`     // issue-tracker company name
	ContentType string         `yaml:"contentType"` // "documentation" or "release_notes"
	Buckets     BucketsConfig  `yaml:"buckets"`
	Grouping    GroupingConfig `yaml:"grouping"`
	Input       InputConfig    `yaml:"input"`
	Output      OutputConfig   `yaml:"output"`
}

// BucketsConfig defines the token bucket boundaries.
type BucketsConfig struct {
	Short  int `yaml:"short"`  // inclusive upper bound for short (default 3500)
	Medium int `yaml:"medium"` // exclusive upper bound for medium (default 15000)
}

// GroupingConfig defines similarity grouping options.
type GroupingConfig struct {
	Threshold float64 `yaml:"threshold"` // cosine similarity threshold (default 0.9)
	CacheFile string  `yaml:"cacheFile"` // embedding cache path (default embeddings_cache.json)
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // default output directory (empty = same as source)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		ContentType: "documentation",
		Buckets:     BucketsConfig{Short: 3500, Medium: 15000},
		Grouping:    GroupingConfig{Threshold: 0.9, CacheFile: "embeddings_cache.json"},
	}
}

// Load reads the config by name or path. An empty name searches the working
// directory for the default file names and falls back to defaults when none
// exists.
func Load(nameOrPath string) (*Config, error) {
	path, err := resolve(nameOrPath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own flag
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	cfg := Default()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolve maps a name or path to a config file path. Empty result with nil
// error means "use defaults".
func resolve(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		for _, name := range defaultNames {
			if fileutil.FileExists(name) {
				return name, nil
			}
		}
		return "", nil
	}

	if fileutil.IsFilePath(nameOrPath) || hasYAMLExt(nameOrPath) {
		return nameOrPath, nil
	}

	// Bare name: try <name>.yaml and <name>.yml in the working directory.
	for _, ext := range []string{".yaml", ".yml"} {
		candidate := nameOrPath + ext
		if fileutil.FileExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, nameOrPath)
}

func hasYAMLExt(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate checks field values and lengths.
func (c *Config) Validate() error {
	if len(c.Company) > MaxCompanyLength {
		return fmt.Errorf("%w: company exceeds %d characters", ErrInvalidField, MaxCompanyLength)
	}

	switch c.ContentType {
	case "", "documentation", "release_notes":
		// valid
	default:
		return fmt.Errorf("%w: contentType %q (must be documentation or release_notes)", ErrInvalidField, c.ContentType)
	}

	if c.Buckets.Short <= 0 || c.Buckets.Medium <= c.Buckets.Short {
		return fmt.Errorf("%w: buckets short=%d medium=%d (need 0 < short < medium)", ErrInvalidField, c.Buckets.Short, c.Buckets.Medium)
	}

	if c.Grouping.Threshold < 0 || c.Grouping.Threshold > 1 {
		return fmt.Errorf("%w: grouping.threshold %.2f (must be between 0 and 1)", ErrInvalidField, c.Grouping.Threshold)
	}

	for name, path := range map[string]string{
		"grouping.cacheFile": c.Grouping.CacheFile,
		"input.defaultDir":   c.Input.DefaultDir,
		"output.defaultDir":  c.Output.DefaultDir,
	} {
		if len(path) > MaxPathLength {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidField, name, MaxPathLength)
		}
	}

	return nil
}
