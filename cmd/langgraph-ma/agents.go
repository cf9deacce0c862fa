package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List registered agents",
	Long: `List every agent in the registry with its capabilities and
trigger keywords. Agents come from the configured catalog file, or from
the built-in set when none is configured.`,
	Args: cobra.NoArgs,
	RunE: runAgents,
}

func runAgents(cmd *cobra.Command, args []string) error {
	eng, err := newEngine("")
	if err != nil {
		return err
	}
	defer eng.Close()

	for _, p := range eng.registry.Profiles() {
		printSection(fmt.Sprintf("%s (%s)", p.Name, p.ID))
		fmt.Printf("  %s\n", p.Description)

		caps := make([]string, len(p.Capabilities))
		for i, c := range p.Capabilities {
			caps[i] = string(c)
		}
		fmt.Printf("  %s %s\n", labelStyle.Render("capabilities:"), strings.Join(caps, ", "))
		fmt.Printf("  %s %s\n", labelStyle.Render("keywords:"), strings.Join(p.Keywords, ", "))
		fmt.Println()
	}
	return nil
}
