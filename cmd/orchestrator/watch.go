package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"copilot-orchestrator/internal/watch"
)

var (
	watchTopic   string
	watchTimeout time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <delegation-id>",
	Short: "Block until a delegation's result appears",
	Long: `Wait for the result record paired with a delegation. Returns as
soon as the result file exists, so a result written before the watch
starts returns immediately.

Example:
  orchestrator watch swift6-1772400000000 --topic auth-refactor --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrchestrator()
		if err != nil {
			return err
		}

		topic := watchTopic
		if topic == "" {
			topic = o.ActiveTopic()
		}
		if topic == "" {
			return errors.New("no active topic and none specified; pass --topic")
		}

		resultPath, err := watch.ForResult(cmd.Context(), o.DelegationsDir(topic), args[0], watchTimeout)
		if err != nil {
			if errors.Is(err, watch.ErrTimeout) {
				return fmt.Errorf("no result for %s after %s", args[0], watchTimeout)
			}
			return err
		}

		color.New(color.FgGreen).Printf("✓ result ready: %s\n", resultPath)
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchTopic, "topic", "", "Topic the delegation belongs to (default: active topic)")
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 5*time.Minute, "Give up after this long")
}
