// Package config handles configuration loading and management
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppConfig holds the campaign configuration.
type AppConfig struct {
	OutputDir     string `yaml:"output_dir"`
	Runs          int    `yaml:"runs"`
	LighthouseBin string `yaml:"lighthouse_bin"`
	BlockPattern  string `yaml:"block_pattern"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		OutputDir:     defaultOutputDir(),
		Runs:          DefaultRuns,
		LighthouseBin: DefaultLighthouseBin,
		BlockPattern:  DefaultBlockPattern,
	}
}

// Load builds the configuration from defaults, the optional YAML file, the
// .env file and environment variables, in increasing precedence.
func Load(file string) (*AppConfig, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := Default()

	if file != "" {
		if err := cfg.mergeFile(file); err != nil {
			return nil, err
		}
	}

	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *AppConfig) mergeFile(file string) error {
	data, err := os.ReadFile(file) //nolint:gosec // path is supplied by the operator
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", file, err)
	}

	var fromFile AppConfig
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return fmt.Errorf("parsing config file %s: %w", file, err)
	}

	if fromFile.OutputDir != "" {
		c.OutputDir = fromFile.OutputDir
	}
	if fromFile.Runs != 0 {
		c.Runs = fromFile.Runs
	}
	if fromFile.LighthouseBin != "" {
		c.LighthouseBin = fromFile.LighthouseBin
	}
	if fromFile.BlockPattern != "" {
		c.BlockPattern = fromFile.BlockPattern
	}

	return nil
}

func (c *AppConfig) mergeEnv() error {
	c.OutputDir = getEnv(EnvOutputDir, c.OutputDir)
	c.LighthouseBin = getEnv(EnvLighthouseBin, c.LighthouseBin)
	c.BlockPattern = getEnv(EnvBlockPattern, c.BlockPattern)

	if raw := os.Getenv(EnvRuns); raw != "" {
		runs, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRuns, err)
		}
		c.Runs = runs
	}

	return nil
}

// Validate checks the configuration is usable.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.Runs < 1 {
		errs = append(errs, fmt.Errorf("runs must be at least 1, got %d", c.Runs))
	}
	if strings.TrimSpace(c.LighthouseBin) == "" {
		errs = append(errs, errors.New("lighthouse binary must not be empty"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output directory must not be empty"))
	}

	return errors.Join(errs...)
}

func (c *AppConfig) String() string {
	return fmt.Sprintf(`Current Configuration:
======================
Output Directory:   %s
Runs:               %d
Lighthouse Command: %s
Block Pattern:      %s`,
		c.OutputDir,
		c.Runs,
		c.LighthouseBin,
		c.BlockPattern,
	)
}

func defaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.FromSlash(DefaultReportsSubdir)
	}

	return filepath.Join(home, filepath.FromSlash(DefaultReportsSubdir))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
