package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <request>",
	Short: "Show how a request would be routed without executing it",
	Long: `Analyze a request and print the resulting execution plan.

Runs entity and intent extraction, query decomposition, and plan building,
then prints the plan without invoking any agent or tool.

Examples:
  langgraph-ma analyze "tell me a funny story about cats"
  langgraph-ma analyze "analyze the weather in Paris and let granny comment on it"
  langgraph-ma analyze --json "research AI trends and write an article"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the plan as JSON")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	request := strings.Join(args, " ")

	eng, err := newEngine("")
	if err != nil {
		return err
	}
	defer eng.Close()

	entities, intents, _, p := eng.analyze(request)

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	}

	fmt.Printf("Request: %s\n\n", request)
	renderEntities(entities, intents)
	renderPlan(p)
	return nil
}
