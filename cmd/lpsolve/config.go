package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lpsolve/engine"
)

var configValidate = validator.New()

// Config holds CLI defaults. Command-line flags override every field.
//
//	algorithm: revised-dual-simplex
//	format: text
//	policy: best
//	color: auto
//	precision: 4
//	log_level: info
//	max_nodes: 0
//	engine:
//	  max_iterations: 500
//	  max_cuts: 50
//	  max_nodes: 10000
type Config struct {
	Algorithm string       `yaml:"algorithm"`
	Format    string       `yaml:"format" validate:"omitempty,oneof=text txt json yaml yml"`
	Policy    string       `yaml:"policy" validate:"omitempty,oneof=best last best-optimal last-terminal"`
	Color     string       `yaml:"color" validate:"omitempty,oneof=auto always never"`
	Precision int          `yaml:"precision" validate:"gte=0,lte=15"`
	LogLevel  string       `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	MaxNodes  int          `yaml:"max_nodes" validate:"gte=0"`
	Engine    EngineConfig `yaml:"engine"`
}

// EngineConfig mirrors engine.Options; zero fields take engine defaults.
type EngineConfig struct {
	MaxIterations int `yaml:"max_iterations" validate:"gte=0"`
	MaxCuts       int `yaml:"max_cuts" validate:"gte=0"`
	MaxNodes      int `yaml:"max_nodes" validate:"gte=0"`
}

func defaultConfig() Config {
	d := engine.DefaultOptions()

	return Config{
		Algorithm: "revised-dual-simplex",
		Format:    "text",
		Policy:    "best",
		Color:     "auto",
		Precision: 4,
		LogLevel:  "warn",
		Engine: EngineConfig{
			MaxIterations: d.MaxIterations,
			MaxCuts:       d.MaxCuts,
			MaxNodes:      d.MaxNodes,
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err = dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err = configValidate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c Config) level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func (c Config) engineOptions() engine.Options {
	o := engine.DefaultOptions()
	o.MaxIterations = c.Engine.MaxIterations
	o.MaxCuts = c.Engine.MaxCuts
	o.MaxNodes = c.Engine.MaxNodes

	return o
}
