package main

import (
	"strings"

	"github.com/spf13/cobra"

	"copilot-orchestrator/internal/orchestrator"
	"copilot-orchestrator/pkg/models"
)

var (
	delegateTopic       string
	delegateFiles       []string
	delegateExcerpt     string
	delegateConstraints string
	delegateTier        string
	delegateBlocking    bool
)

var delegateCmd = &cobra.Command{
	Use:   "delegate <agent> <task...>",
	Short: "Hand a task to a named worker",
	Long: `Write a delegation record for the active topic, addressed to the
named worker. The record starts PENDING; the worker updates its own tag
and writes a paired result file when done.

A missing worker definition does not block the delegation; it only adds
a warning to the summary. The --blocking flag is advisory: delegations
always run asynchronously, and 'orchestrator watch' provides the
synchronous wait.

Examples:
  orchestrator delegate swift6 convert the networking module
  orchestrator delegate testing add snapshot tests --file Sources/UI/Card.swift --tier standard`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator()
		if err != nil {
			return err
		}

		// --topic switches first; the delegate operation itself always
		// targets the active topic.
		if delegateTopic != "" {
			if resp := o.SwitchTopic(delegateTopic); !resp.OK() {
				return emit(resp)
			}
		}

		return emit(o.DelegateTo(orchestrator.DelegateRequest{
			Agent: args[0],
			Task:  strings.Join(args[1:], " "),
			Context: models.DelegationContext{
				Files:       delegateFiles,
				PlanExcerpt: delegateExcerpt,
				Constraints: delegateConstraints,
			},
			ModelTier: models.Tier(delegateTier),
			Blocking:  delegateBlocking,
		}))
	},
}

func init() {
	delegateCmd.Flags().StringVar(&delegateTopic, "topic", "", "Switch to this topic before delegating")
	delegateCmd.Flags().StringArrayVar(&delegateFiles, "file", nil, "File path the worker should look at (repeatable)")
	delegateCmd.Flags().StringVar(&delegateExcerpt, "plan-excerpt", "", "Relevant slice of the topic's plan")
	delegateCmd.Flags().StringVar(&delegateConstraints, "constraints", "", "Free-text constraints the worker must honor")
	delegateCmd.Flags().StringVar(&delegateTier, "tier", "", "Model tier: premium, standard, or cheap (default from config)")
	delegateCmd.Flags().BoolVar(&delegateBlocking, "blocking", false, "Request synchronous waiting (advisory; see watch)")
}
