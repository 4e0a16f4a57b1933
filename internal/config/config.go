// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for rigrun-agent.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/rigrun-agent/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete rigrun-agent configuration.
type Config struct {
	// Version of the config schema
	Version string `toml:"version"`

	// DefaultModel is the model used for planning requests
	DefaultModel string `toml:"default_model"`

	// LLM contains transport settings for the local LLM API
	LLM LLMConfig `toml:"llm"`

	// Agent contains orchestration settings
	Agent AgentConfig `toml:"agent"`

	// History contains run-history persistence settings
	History HistoryConfig `toml:"history"`
}

// LLMConfig contains settings for the streaming LLM transport.
type LLMConfig struct {
	// BaseURL is the LLM API base URL (default: http://127.0.0.1:11434)
	BaseURL string `toml:"base_url"`

	// TimeoutSeconds is the timeout for non-streaming requests
	TimeoutSeconds int `toml:"timeout_seconds"`

	// RequestsPerMinute paces planning requests (0 = unlimited)
	RequestsPerMinute int `toml:"requests_per_minute"`
}

// AgentConfig contains orchestration settings.
type AgentConfig struct {
	// StepDelayMS is the pacing delay between consecutive steps, in
	// milliseconds (default: 1000)
	StepDelayMS int `toml:"step_delay_ms"`

	// MaxContextFileKB is the maximum size of a context file to include,
	// in kilobytes. Larger files are silently skipped.
	MaxContextFileKB int `toml:"max_context_file_kb"`

	// MaxSteps caps the number of steps accepted from a parsed plan
	// (0 = unlimited)
	MaxSteps int `toml:"max_steps"`
}

// HistoryConfig contains run-history persistence settings.
type HistoryConfig struct {
	// Enabled turns run-history recording on or off
	Enabled bool `toml:"enabled"`

	// Path is the SQLite database path (default: ~/.rigrun/agent-history.db)
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version:      "1",
		DefaultModel: "qwen2.5-coder:14b",
		LLM: LLMConfig{
			BaseURL:           "http://127.0.0.1:11434",
			TimeoutSeconds:    30,
			RequestsPerMinute: 0,
		},
		Agent: AgentConfig{
			StepDelayMS:      1000,
			MaxContextFileKB: 100,
			MaxSteps:         0,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    "~/.rigrun/agent-history.db",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the rigrun configuration directory (~/.rigrun).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".rigrun"), nil
}

// ConfigPath returns the path to the agent configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agent.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from disk, applies environment overrides,
// and validates the result. Missing files fall back to defaults.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	return nil
}

// LoadFromPath loads, overrides, and validates configuration from an
// explicit path. Used by the --config flag.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, util.ExpandHome(path)); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies RIGRUN_AGENT_* environment variables on top of
// the loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RIGRUN_AGENT_MODEL"); v != "" {
		c.DefaultModel = v
	}
	if v := os.Getenv("RIGRUN_AGENT_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("RIGRUN_AGENT_STEP_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Agent.StepDelayMS = n
		}
	}
	if v := os.Getenv("RIGRUN_AGENT_HISTORY_PATH"); v != "" {
		c.History.Path = v
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default path atomically.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	var sb strings.Builder
	enc := toml.NewEncoder(&sb)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	// Config may eventually carry credentials; keep it user-only.
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes a single invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
// All invalid fields are reported, not just the first.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.DefaultModel) == "" {
		errs = append(errs, ValidationError{"default_model", "must not be empty"})
	}

	if u, err := url.Parse(c.LLM.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{"llm.base_url", "must be a valid URL"})
	}
	if c.LLM.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{"llm.timeout_seconds", "must be positive"})
	}
	if c.LLM.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{"llm.requests_per_minute", "must not be negative"})
	}

	if c.Agent.StepDelayMS < 0 {
		errs = append(errs, ValidationError{"agent.step_delay_ms", "must not be negative"})
	}
	if c.Agent.MaxContextFileKB <= 0 {
		errs = append(errs, ValidationError{"agent.max_context_file_kb", "must be positive"})
	}
	if c.Agent.MaxSteps < 0 {
		errs = append(errs, ValidationError{"agent.max_steps", "must not be negative"})
	}

	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		errs = append(errs, ValidationError{"history.path", "must not be empty when history is enabled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
