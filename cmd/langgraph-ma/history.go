package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	historySession string
	historyLimit   int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent tool usage for a session",
	Long: `Display the tool invocations recorded for a session, newest
first. Each entry shows the tool, the generated query, the confidence
score, and any feedback attached to it.

Record IDs shown here can be passed to 'langgraph-ma feedback'.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historySession, "session", "", "Session ID (defaults to the configured session)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(historySession)
	if err != nil {
		return err
	}
	defer eng.Close()

	sessionID := eng.tracker.SessionID()
	records, err := eng.store.History(sessionID, historyLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(records) == 0 {
		fmt.Printf("No tool usage recorded for session %s.\n", sessionID)
		return nil
	}

	printSection(fmt.Sprintf("Tool usage for session %s", sessionID))
	for _, rec := range records {
		symbol, attr := "✓", color.FgGreen
		if !rec.Success {
			symbol, attr = "✗", color.FgRed
		}
		suffix := ""
		if rec.Retry {
			suffix = " (retry)"
		}
		printStatus(symbol, fmt.Sprintf("%s  %s  %q  confidence %.2f%s",
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			rec.ToolName, rec.Query, rec.ConfidenceScore, suffix), attr)
		fmt.Printf("    %s %s\n", labelStyle.Render("id:"), rec.ID)
		if rec.Feedback != "" {
			fmt.Printf("    %s %s\n", labelStyle.Render("feedback:"), rec.Feedback)
		}
	}
	return nil
}
