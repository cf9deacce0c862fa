package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "langgraph-ma",
	Short: "Multi-Agent Request Router",
	Long: `langgraph-ma routes natural-language requests across a registry of
specialized response agents.

Each request is analyzed for entities and intents, decomposed into typed
components, compiled into an execution plan, and then run: information
tools and knowledge lookups first, agents in sequence after, each agent
seeing the outputs gathered before it.

Core capabilities:
- Extracts entities and intents from free-form requests
- Routes single requests across multiple cooperating agents
- Gathers live information via web search before agents respond
- Learns per-session tool preferences from outcomes and feedback`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
