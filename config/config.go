// Package config handles build configuration loading.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/microsoft/morphcharts-sub001/asset/compiler"
	"github.com/microsoft/morphcharts-sub001/asset/compiler/bvh"
	"github.com/microsoft/morphcharts-sub001/log"
	"gopkg.in/yaml.v3"
)

// Config holds all build settings.
type Config struct {
	BVH     BVHConfig     `yaml:"bvh"`
	Logging LoggingConfig `yaml:"logging"`
}

// BVHConfig holds the BVH partitioning settings.
type BVHConfig struct {
	SplitMethod     string `yaml:"split_method"`
	MaxPrimsPerLeaf int    `yaml:"max_prims_per_leaf"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		BVH: BVHConfig{
			SplitMethod:     bvh.SAH.String(),
			MaxPrimsPerLeaf: compiler.DefaultMaxPrimsPerLeaf,
		},
		Logging: LoggingConfig{
			Level:      "notice",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}

// LoadFile loads a YAML config file on top of the defaults. An empty path
// returns the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	defer f.Close()

	// Unknown keys are rejected so typos do not silently fall back to defaults.
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err = decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// CompilerOptions converts the BVH settings into scene compiler options.
func (c *Config) CompilerOptions() (compiler.Options, error) {
	method, err := bvh.ParseSplitMethod(c.BVH.SplitMethod)
	if err != nil {
		return compiler.Options{}, err
	}
	if c.BVH.MaxPrimsPerLeaf < 1 {
		return compiler.Options{}, fmt.Errorf("%w: got %d", bvh.ErrInvalidMaxPrimsPerLeaf, c.BVH.MaxPrimsPerLeaf)
	}
	return compiler.Options{
		SplitMethod:     method,
		MaxPrimsPerLeaf: c.BVH.MaxPrimsPerLeaf,
	}, nil
}

// FileSink returns the rotating log file settings.
func (c *Config) FileSink() log.FileSink {
	return log.FileSink{
		Path:       c.Logging.LogFile,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   c.Logging.Compress,
	}
}
