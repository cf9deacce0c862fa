package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var (
	askSession   string
	askShowPlan  bool
	askShowTrace bool
)

var askCmd = &cobra.Command{
	Use:   "ask <request>",
	Short: "Route a request through the agents and print the response",
	Long: `Execute a request end to end.

The request is analyzed, planned, and executed: tools and knowledge
lookups run first, then each agent in the planned sequence, each one
seeing the material gathered before it. The final agent's output is
printed.

Examples:
  langgraph-ma ask "tell me a funny story about cats"
  langgraph-ma ask --plan "what's the weather in Tokyo today?"
  langgraph-ma ask --session trip-planning "find flights to Rome"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askSession, "session", "", "Session ID for usage history and preferences")
	askCmd.Flags().BoolVar(&askShowPlan, "plan", false, "Print the execution plan before the response")
	askCmd.Flags().BoolVar(&askShowTrace, "trace", false, "Print the execution trace")
}

func runAsk(cmd *cobra.Command, args []string) error {
	request := strings.Join(args, " ")

	eng, err := newEngine(askSession)
	if err != nil {
		return err
	}
	defer eng.Close()

	_, _, _, p := eng.analyze(request)
	if askShowPlan {
		renderPlan(p)
	}

	orch, exec, err := eng.newOrchestrator()
	if err != nil {
		return err
	}
	warnUnavailableTools(exec, p)

	report := orch.Execute(context.Background(), p, request, nil)
	renderReport(report, askShowTrace)
	return nil
}
