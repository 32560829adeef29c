// Package config loads the planner configuration from TOML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mfateev/agent-planner/internal/models"
)

// DefaultPlannerName is used when the config does not name the planner.
const DefaultPlannerName = "planner"

// DefaultTaskQueue is the Temporal task queue for planning workflows.
const DefaultTaskQueue = "agent-planner"

// Config holds all planner configuration settings.
type Config struct {
	Planner      PlannerConfig            `toml:"planner"`
	PlannerModel models.ModelConfig       `toml:"planner_model"`
	Workers      []models.AgentDescriptor `toml:"workers"`
	Temporal     TemporalConfig           `toml:"temporal"`
}

// PlannerConfig holds planner-specific settings.
type PlannerConfig struct {
	Name string `toml:"name"`
	// ExamplesPath points at a JSON file of few-shot examples. The bundled
	// examples are used when it is empty or the file does not exist.
	ExamplesPath string `toml:"examples_path"`
	// TemplateDir replaces the bundled prompt templates.
	TemplateDir string `toml:"template_dir"`
}

// TemporalConfig holds connection settings for the planning worker.
// Empty fields fall back to the Temporal environment configuration.
type TemporalConfig struct {
	HostPort  string `toml:"host_port"`
	Namespace string `toml:"namespace"`
	TaskQueue string `toml:"task_queue"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Planner:      PlannerConfig{Name: DefaultPlannerName},
		PlannerModel: models.DefaultModelConfig(),
		Temporal:     TemporalConfig{TaskQueue: DefaultTaskQueue},
	}
}

// LoadFromPath reads config from path over the defaults. An empty path returns
// the defaults. A missing or invalid file is an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	// Relative file paths are resolved against the config file's directory.
	base := filepath.Dir(path)
	cfg.Planner.ExamplesPath = resolvePath(base, cfg.Planner.ExamplesPath)
	cfg.Planner.TemplateDir = resolvePath(base, cfg.Planner.TemplateDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.PlannerModel.Provider) {
	case "", "openai", "anthropic":
	default:
		errs = append(errs, fmt.Errorf("planner_model.provider: unsupported provider %q", c.PlannerModel.Provider))
	}
	if c.PlannerModel.Model == "" {
		errs = append(errs, errors.New("planner_model.model must be set"))
	}
	p := c.PlannerModel.Params
	if p.Temperature != nil && (*p.Temperature < 0 || *p.Temperature > 2) {
		errs = append(errs, fmt.Errorf("planner_model.params.temperature must be in [0, 2], got %g", *p.Temperature))
	}
	if p.MaxTokens != nil && *p.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("planner_model.params.max_tokens must be positive, got %d", *p.MaxTokens))
	}
	if p.TopP != nil && (*p.TopP < 0 || *p.TopP > 1) {
		errs = append(errs, fmt.Errorf("planner_model.params.top_p must be in [0, 1], got %g", *p.TopP))
	}

	seen := make(map[string]bool, len(c.Workers))
	for i, w := range c.Workers {
		if w.Name == "" {
			errs = append(errs, fmt.Errorf("workers[%d]: name must be set", i))
			continue
		}
		if seen[w.Name] {
			errs = append(errs, fmt.Errorf("workers[%d]: duplicate name %q", i, w.Name))
		}
		seen[w.Name] = true
	}

	return errors.Join(errs...)
}

func resolvePath(base, p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
