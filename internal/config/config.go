// Package config handles configuration loading for the orchestrator.
// It supports XDG config paths and environment-variable overrides for
// the store root, the worker-definition directory, and the coordinator
// config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"copilot-orchestrator/pkg/models"
)

// Environment variables recognized by Load.
const (
	// EnvTopicsDir overrides the backing store root directory.
	EnvTopicsDir = "ORCHESTRATOR_TOPICS_DIR"
	// EnvAgentsDir overrides the worker-definition directory.
	EnvAgentsDir = "ORCHESTRATOR_AGENTS_DIR"
	// EnvConfigFile overrides the coordinator config file path.
	EnvConfigFile = "ORCHESTRATOR_CONFIG"
	// EnvSessionID supplies the coordinator's session ID.
	EnvSessionID = "ORCHESTRATOR_SESSION_ID"
)

// Config holds all configuration for the orchestrator.
type Config struct {
	// TopicsDir is the backing store root for topics.
	TopicsDir string `mapstructure:"topics_dir"`
	// AgentsDir holds worker definitions (<agent>.agent.md).
	AgentsDir string `mapstructure:"agents_dir"`
	// SessionID identifies this coordinator process in session records.
	SessionID string `mapstructure:"session_id"`

	Coordinator CoordinatorConfig `mapstructure:"coordinator"`
	Delegation  DelegationConfig  `mapstructure:"delegation"`
	Display     DisplayConfig     `mapstructure:"display"`
}

// CoordinatorConfig holds coordinator session settings.
type CoordinatorConfig struct {
	// Model is the tier coordinator sessions run under.
	Model string `mapstructure:"model"`
}

// DelegationConfig holds delegation defaults.
type DelegationConfig struct {
	// DefaultTier is used when a delegation does not name a tier.
	DefaultTier string `mapstructure:"default_tier"`
}

// DisplayConfig holds summary rendering settings.
type DisplayConfig struct {
	// PlanPreviewChars bounds the plan preview in topic digests.
	PlanPreviewChars int `mapstructure:"plan_preview_chars"`
}

// CoordinatorTier returns the configured coordinator tier, falling back
// to the default when the configured value is not a known tier.
func (c *Config) CoordinatorTier() models.Tier {
	tier := models.Tier(c.Coordinator.Model)
	if !tier.Valid() {
		return models.DefaultCoordinatorTier
	}
	return tier
}

// DelegationTier returns the configured default delegation tier, falling
// back to the default when the configured value is not a known tier.
func (c *Config) DelegationTier() models.Tier {
	tier := models.Tier(c.Delegation.DefaultTier)
	if !tier.Valid() {
		return models.DefaultDelegationTier
	}
	return tier
}

// WorkerDefinitionPath returns the path where a worker definition for
// the given agent is expected.
func (c *Config) WorkerDefinitionPath(agent string) string {
	return filepath.Join(c.AgentsDir, agent+".agent.md")
}

// Load loads configuration from the coordinator config file and
// environment variables.
// Precedence (highest to lowest):
//  1. Environment variables (ORCHESTRATOR_*)
//  2. Coordinator config file ($ORCHESTRATOR_CONFIG, default
//     <user config root>/config.yaml)
//  3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	configFile := os.Getenv(EnvConfigFile)
	if configFile == "" {
		configFile = filepath.Join(userConfigDir(), "config.yaml")
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		// The coordinator config file is optional.
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config %s: %w", configFile, err)
			}
		}
	}

	v.BindEnv("topics_dir", EnvTopicsDir)
	v.BindEnv("agents_dir", EnvAgentsDir)
	v.BindEnv("session_id", EnvSessionID)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}
	return cfg, nil
}

// Default returns a Config with built-in defaults and a generated
// session ID.
func Default() *Config {
	root := userConfigDir()
	return &Config{
		TopicsDir: filepath.Join(root, "topics"),
		AgentsDir: filepath.Join(root, "agents"),
		SessionID: uuid.NewString(),
		Coordinator: CoordinatorConfig{
			Model: string(models.DefaultCoordinatorTier),
		},
		Delegation: DelegationConfig{
			DefaultTier: string(models.DefaultDelegationTier),
		},
		Display: DisplayConfig{
			PlanPreviewChars: 400,
		},
	}
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	root := userConfigDir()
	v.SetDefault("topics_dir", filepath.Join(root, "topics"))
	v.SetDefault("agents_dir", filepath.Join(root, "agents"))
	v.SetDefault("session_id", "")
	v.SetDefault("coordinator.model", string(models.DefaultCoordinatorTier))
	v.SetDefault("delegation.default_tier", string(models.DefaultDelegationTier))
	v.SetDefault("display.plan_preview_chars", 400)
}

// userConfigDir returns the per-user configuration root.
func userConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "copilot-orchestrator")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "copilot-orchestrator")
	}
	return filepath.Join(home, ".config", "copilot-orchestrator")
}
