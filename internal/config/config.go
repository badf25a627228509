package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
}

type FetchConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Dependency is a binary that must be resolvable on PATH.
type Dependency struct {
	Command string `yaml:"command"`
	Name    string `yaml:"name"`
}

// Tool is a command whose version output is reported.
type Tool struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

type NumericConfig struct {
	Rows  int      `yaml:"rows"`
	Cols  int      `yaml:"cols"`
	Probe []string `yaml:"probe,omitempty"`
}

type ProjectConfig struct {
	Retry   RetryConfig   `yaml:"retry"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Deps    []Dependency  `yaml:"deps"`
	Tools   []Tool        `yaml:"tools"`
	Numeric NumericConfig `yaml:"numeric"`
}

// Default returns the configuration used when no project file is present.
func Default() *ProjectConfig {
	return &ProjectConfig{
		Retry: RetryConfig{
			Attempts: stackprobe.DefaultRetryAttempts,
			Delay:    stackprobe.DefaultRetryDelay,
		},
		Fetch: FetchConfig{
			URL:     stackprobe.DefaultFetchURL,
			Timeout: stackprobe.DefaultFetchTimeout,
		},
		Deps: []Dependency{
			{Command: "ffmpeg", Name: "FFmpeg"},
			{Command: "pdftoppm", Name: "Poppler (pdftoppm)"},
		},
		Tools: []Tool{
			{Name: "poetry", Args: []string{"--version"}},
		},
		Numeric: NumericConfig{
			Rows:  2,
			Cols:  3,
			Probe: []string{"apt", "--version"},
		},
	}
}

// Load reads stackprobe.yaml from dir. Fields the file leaves out keep their defaults.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, stackprobe.ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", configPath, err, stackprobe.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load with a missing file treated as Default().
func LoadOrDefault(dir string) (*ProjectConfig, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks the project file values.
func (c *ProjectConfig) Validate() error {
	var errs []error

	if c.Retry.Attempts < 1 {
		errs = append(errs, fmt.Errorf("retry.attempts must be at least 1: %w", stackprobe.ErrInvalidConfig))
	}
	if c.Retry.Delay < 0 {
		errs = append(errs, fmt.Errorf("retry.delay cannot be negative: %w", stackprobe.ErrInvalidConfig))
	}
	if c.Fetch.URL == "" {
		errs = append(errs, fmt.Errorf("fetch.url is required: %w", stackprobe.ErrInvalidConfig))
	}
	if c.Fetch.Timeout < 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout cannot be negative: %w", stackprobe.ErrInvalidConfig))
	}
	for i, d := range c.Deps {
		if d.Command == "" {
			errs = append(errs, fmt.Errorf("deps[%d].command is required: %w", i, stackprobe.ErrInvalidConfig))
		}
	}
	for i, tool := range c.Tools {
		if tool.Name == "" {
			errs = append(errs, fmt.Errorf("tools[%d].name is required: %w", i, stackprobe.ErrInvalidConfig))
		}
	}
	if c.Numeric.Rows < 1 || c.Numeric.Cols < 1 {
		errs = append(errs, fmt.Errorf("numeric.rows and numeric.cols must be positive: %w", stackprobe.ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
