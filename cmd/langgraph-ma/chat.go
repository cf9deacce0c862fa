package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// maxHistoryLines bounds the conversation context carried between turns.
const maxHistoryLines = 20

var chatSession string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive multi-turn session",
	Long: `Start an interactive session.

Each line is routed like 'ask', and prior exchanges are carried as
conversation history so agents can refer back to them. If an agent
catalog file is configured, it is watched for changes and reloaded
between turns.

Type 'exit' or press Ctrl-D to quit.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVar(&chatSession, "session", "", "Session ID for usage history and preferences")
}

func runChat(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(chatSession)
	if err != nil {
		return err
	}
	defer eng.Close()

	if eng.cfg.Paths.Agents != "" {
		if err := eng.registry.Watch(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: catalog watch unavailable: %v\n", err)
		}
	}

	orch, exec, err := eng.newOrchestrator()
	if err != nil {
		return err
	}

	fmt.Printf("Session %s. Type 'exit' to quit.\n\n", eng.tracker.SessionID())

	prompt := color.New(color.FgCyan, color.Bold)
	var history []string
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		prompt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		request := strings.TrimSpace(scanner.Text())
		if request == "" {
			continue
		}
		if request == "exit" || request == "quit" {
			return nil
		}

		_, _, _, p := eng.analyze(request)
		warnUnavailableTools(exec, p)
		report := orch.Execute(context.Background(), p, request, history)
		renderReport(report, false)
		fmt.Println()

		history = append(history,
			fmt.Sprintf("User: %s", request),
			fmt.Sprintf("Assistant: %s", report.FinalResponse))
		if len(history) > maxHistoryLines {
			history = history[len(history)-maxHistoryLines:]
		}
	}
}
