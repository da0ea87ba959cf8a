package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSystem   = "water"
	DefaultBackend  = "auto"
	DefaultLogLevel = "info"
	DefaultDataDir  = "./runs"
)

type Config struct {
	System         string   `yaml:"system"`
	File           string   `yaml:"file,omitempty"`
	Backend        string   `yaml:"backend"`
	Workers        int      `yaml:"workers"`
	ParallelFrames bool     `yaml:"parallel_frames"`
	Metrics        []string `yaml:"metrics,omitempty"`
	LogLevel       string   `yaml:"log_level"`
	DataDir        string   `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		System:   DefaultSystem,
		Backend:  DefaultBackend,
		LogLevel: DefaultLogLevel,
		DataDir:  DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel; an empty level is info.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return lvl, nil
}
