package main

import (
	"fmt"

	"github.com/denisogg/langgraph-ma/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("langgraph-ma version %s\n", version.Get())
	},
}
