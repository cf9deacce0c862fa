package main

import (
	"fmt"
	"os"

	"github.com/denisogg/langgraph-ma/internal/config"
	"github.com/denisogg/langgraph-ma/internal/usage"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the configuration after merging defaults, the user
config file, any project-level .langgraph-ma.yaml, and environment
variables.

User configuration lives at ~/.config/langgraph-ma/config.yaml.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		displayConfig(cfg)
	},
}

func displayConfig(cfg *config.Config) {
	apiKey, _ := cfg.GetAPIKey()
	tavilyKey, _ := cfg.GetTavilyKey()

	fmt.Printf("anthropic.api_key: %s (from %s)\n", config.MaskAPIKey(apiKey), cfg.KeySource())
	fmt.Printf("anthropic.model: %s\n", orDefault(cfg.Anthropic.Model, "(sdk default)"))
	fmt.Printf("anthropic.use_aws_bedrock: %t\n", cfg.Anthropic.UseAWSBedrock)
	fmt.Printf("tavily.api_key: %s\n", config.MaskAPIKey(tavilyKey))
	fmt.Printf("paths.agents: %s\n", orDefault(cfg.Paths.Agents, "(built-in agents)"))
	fmt.Printf("paths.knowledge: %s\n", orDefault(cfg.Paths.Knowledge, "(none)"))
	fmt.Printf("paths.usage_db: %s\n", orDefault(cfg.Paths.UsageDB, usage.DefaultDBPath()))
	fmt.Printf("paths.debug_log: %s\n", orDefault(cfg.Paths.DebugLog, "(disabled)"))
	fmt.Printf("timeouts.tool: %s\n", cfg.Timeouts.Tool)
	fmt.Printf("timeouts.agent: %s\n", cfg.Timeouts.Agent)
	fmt.Printf("session.id: %s\n", orDefault(cfg.Session.ID, "(generated per run)"))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
