package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var feedbackSession string

var feedbackCmd = &cobra.Command{
	Use:   "feedback <record-id> <rating> [comment]",
	Short: "Rate a recorded tool invocation",
	Long: `Attach feedback to a tool usage record and adjust the session's
tool preferences.

Ratings run 1 to 5. A rating of 4 or 5 raises the tool's preference, 1
or 2 lowers it, and 3 records the comment without changing it. The
record must belong to the given session; find record IDs with
'langgraph-ma history'.

Examples:
  langgraph-ma feedback 3f2a... 5 "exactly what I needed"
  langgraph-ma feedback --session trip-planning 3f2a... 2 "results were stale"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runFeedback,
}

func init() {
	feedbackCmd.Flags().StringVar(&feedbackSession, "session", "", "Session ID (defaults to the configured session)")
}

func runFeedback(cmd *cobra.Command, args []string) error {
	recordID := args[0]
	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be a number from 1 to 5")
	}
	comment := strings.Join(args[2:], " ")

	eng, err := newEngine(feedbackSession)
	if err != nil {
		return err
	}
	defer eng.Close()

	if err := eng.tracker.AddFeedback(recordID, comment, rating); err != nil {
		return fmt.Errorf("record feedback: %w", err)
	}

	printStatus("✓", fmt.Sprintf("Feedback recorded for %s", recordID), color.FgGreen)
	return nil
}
