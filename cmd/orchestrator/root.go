package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"copilot-orchestrator/internal/config"
	"copilot-orchestrator/internal/orchestrator"
)

var rootCmd = &cobra.Command{
	Use:   "orchestrator",
	Short: "Topic and delegation manager for coordinated agent work",
	Long: `The orchestrator manages file-backed work topics and delegations
between a coordinating process and specialist workers.

A topic is an isolated unit of work with its own plan, task checklist,
and delegations. Delegations are handed to workers as markdown records
with YAML front matter; a worker signals completion by writing a paired
result file next to the record, so status survives worker crashes.

Core operations:
- create:   scaffold a new topic and make it active
- list:     show all topics with outstanding delegation counts
- switch:   activate a topic and show its digest
- delegate: hand a task to a named worker
- check:    show delegations grouped by status
- watch:    block until a delegation's result appears`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(delegateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

// newOrchestrator builds the façade from loaded configuration.
func newOrchestrator() (*orchestrator.Orchestrator, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return orchestrator.New(cfg), nil
}

// emit renders a façade response on the terminal. Successful and
// conversational outcomes print and succeed; rejected or failed
// operations surface as command errors.
func emit(resp orchestrator.Response) error {
	switch resp.Kind {
	case orchestrator.KindOK:
		fmt.Println(resp.Text)
		return nil
	case orchestrator.KindNotFound, orchestrator.KindPrecondition:
		color.New(color.FgYellow).Fprintln(os.Stderr, resp.Text)
		return nil
	default:
		return errors.New(resp.Text)
	}
}
