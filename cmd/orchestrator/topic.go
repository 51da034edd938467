package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name> [description...]",
	Short: "Create a new topic and make it active",
	Long: `Create a topic directory with a plan template, a task checklist,
and an empty delegations directory. The new topic becomes the active
topic and a fresh session is persisted for it.

Creating a topic whose name is already taken is an error; existing work
is never overwritten.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator()
		if err != nil {
			return err
		}
		description := strings.Join(args[1:], " ")
		return emit(o.CreateTopic(args[0], description))
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List topics with outstanding delegation counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator()
		if err != nil {
			return err
		}
		return emit(o.ListTopics())
	},
}

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Activate a topic and show its digest",
	Long: `Switch the active topic. On success the session's last_active
timestamp is updated (the original creation time is preserved) and a
digest is shown: a plan preview, task progress, and delegations grouped
by status.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator()
		if err != nil {
			return err
		}
		return emit(o.SwitchTopic(args[0]))
	},
}
