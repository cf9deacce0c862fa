package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoAPIKey is returned when no Anthropic API key can be found.
var ErrNoAPIKey = errors.New("no Anthropic API key configured")

// ErrNoTavilyKey is returned when no Tavily API key can be found.
var ErrNoTavilyKey = errors.New("no Tavily API key configured")

// GetAPIKey returns the Anthropic API key from config or environment.
// Returns ErrNoAPIKey if neither is set.
func (c *Config) GetAPIKey() (string, error) {
	if c.Anthropic.APIKey != "" {
		return c.Anthropic.APIKey, nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}
	return "", ErrNoAPIKey
}

// GetTavilyKey returns the Tavily API key from config or environment.
// Returns ErrNoTavilyKey if neither is set.
func (c *Config) GetTavilyKey() (string, error) {
	if c.Tavily.APIKey != "" {
		return c.Tavily.APIKey, nil
	}
	if key := os.Getenv("TAVILY_API_KEY"); key != "" {
		return key, nil
	}
	return "", ErrNoTavilyKey
}

// ValidateAPIKey checks that the key looks like an Anthropic API key.
func ValidateAPIKey(key string) error {
	if key == "" {
		return ErrNoAPIKey
	}
	if !strings.HasPrefix(key, "sk-ant-") {
		return fmt.Errorf("API key does not look like an Anthropic key (expected sk-ant- prefix)")
	}
	return nil
}

// MaskAPIKey returns a masked version of the key for display.
func MaskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 12 {
		return "****"
	}
	return key[:8] + "..." + key[len(key)-4:]
}

// KeySource describes where an API key was found.
func (c *Config) KeySource() string {
	if c.Anthropic.APIKey != "" {
		return "config file"
	}
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		return "environment"
	}
	return "none"
}
