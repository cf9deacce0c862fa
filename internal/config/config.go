// Package config handles configuration loading for the supervisor CLI.
// It supports XDG config paths, project-level overrides, and environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the supervisor.
type Config struct {
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Tavily    TavilyConfig    `mapstructure:"tavily"`
	Paths     PathsConfig     `mapstructure:"paths"`
	Timeouts  TimeoutsConfig  `mapstructure:"timeouts"`
	Session   SessionConfig   `mapstructure:"session"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	// Model overrides the default model when set.
	Model string `mapstructure:"model"`
	// UseAWSBedrock routes invocations through AWS Bedrock.
	UseAWSBedrock bool `mapstructure:"use_aws_bedrock"`
	// AWSRegion is the Bedrock region.
	AWSRegion string `mapstructure:"aws_region"`
	// AWSProfile is the optional AWS profile name.
	AWSProfile string `mapstructure:"aws_profile"`
}

// TavilyConfig holds web search settings.
type TavilyConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// PathsConfig holds file locations.
type PathsConfig struct {
	// Agents is the agent catalog YAML path; empty uses built-ins.
	Agents string `mapstructure:"agents"`
	// Knowledge is the knowledge catalog YAML path; empty disables it.
	Knowledge string `mapstructure:"knowledge"`
	// UsageDB is the usage database path; empty uses the XDG default.
	UsageDB string `mapstructure:"usage_db"`
	// DebugLog is the orchestration debug log path; empty disables it.
	DebugLog string `mapstructure:"debug_log"`
}

// TimeoutsConfig holds per-call timeout settings.
type TimeoutsConfig struct {
	Tool  time.Duration `mapstructure:"tool"`
	Agent time.Duration `mapstructure:"agent"`
}

// SessionConfig holds session identity settings.
type SessionConfig struct {
	// ID scopes usage history and preferences; empty generates one.
	ID string `mapstructure:"id"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables. Precedence (highest to lowest):
// 1. Environment variables (ANTHROPIC_API_KEY, TAVILY_API_KEY)
// 2. Project config (.langgraph-ma.yaml in current directory or parent)
// 3. User config (~/.config/langgraph-ma/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	v.BindEnv("tavily.api_key", "TAVILY_API_KEY")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)
	cfg.Tavily.APIKey = os.ExpandEnv(cfg.Tavily.APIKey)
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path (for testing).
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

	cfg.Anthropic.APIKey = os.ExpandEnv(cfg.Anthropic.APIKey)
	cfg.Tavily.APIKey = os.ExpandEnv(cfg.Tavily.APIKey)
	return cfg, nil
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "")
	v.SetDefault("anthropic.use_aws_bedrock", false)

	v.SetDefault("tavily.api_key", "")

	v.SetDefault("paths.agents", "")
	v.SetDefault("paths.knowledge", "")
	v.SetDefault("paths.usage_db", "")
	v.SetDefault("paths.debug_log", "")

	v.SetDefault("timeouts.tool", "30s")
	v.SetDefault("timeouts.agent", "2m")

	v.SetDefault("session.id", "")
}

// getUserConfigDir returns the XDG config directory for the supervisor.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "langgraph-ma")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "langgraph-ma")
	}
	return filepath.Join(home, ".config", "langgraph-ma")
}

// findProjectConfig searches for .langgraph-ma.yaml in the current
// directory and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".langgraph-ma.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
