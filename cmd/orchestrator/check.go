package main

import (
	"github.com/spf13/cobra"
)

var (
	checkTopic string
	checkAgent string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show delegations grouped by status",
	Long: `Show a topic's delegations grouped by derived status: complete,
pending, in progress, and blocked. Status is re-read from disk on every
call, so results written by workers show up immediately.

The topic defaults to the active one; --topic overrides it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator()
		if err != nil {
			return err
		}
		return emit(o.CheckDelegations(checkTopic, checkAgent))
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkTopic, "topic", "", "Topic to inspect (default: active topic)")
	checkCmd.Flags().StringVar(&checkAgent, "agent", "", "Only show delegations for this worker")
}
