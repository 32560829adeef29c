// Command planner produces agent execution plans for natural-language tasks.
//
// Usage:
//
//	planner plan "Summarize the release notes"      Plan locally with the configured model
//	planner plan -d "Analyze `data/sales.csv`"      Include the data file's columns as background
//	planner plan --temporal "..."                   Plan through a running planning worker
//	planner worker                                  Run the Temporal planning worker
//	planner mcp                                     Serve the create_plan tool over stdio
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mfateev/agent-planner/internal/cli"
)

// version is set at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, cli.ErrEmptyPlan) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
