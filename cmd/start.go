package cmd

import (
	"context"
	"fmt"

	"skyci/internal/api"
	"skyci/internal/cli"

	"github.com/spf13/cobra"
)

var (
	startReference    string
	startOutputFormat string
)

func newStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <workflow-id>",
		Short: "Start a new build run for a workflow",
		Long: `Start a new build run for a workflow.

The build runs against the given git reference (branch or tag):

  skyci start <workflow-id> --reference main`,
		Args: cobra.ExactArgs(1),
		RunE: runStart,
	}

	cmd.Flags().StringVarP(&startReference, "reference", "r", "", "Git branch or tag to build (required)")
	cmd.Flags().StringVarP(&startOutputFormat, "output", "o", "table", "Output format (table, wide, json, yaml, csv)")
	_ = cmd.MarkFlagRequired("reference")

	return cmd
}

func runStart(cmd *cobra.Command, args []string) error {
	workflowID := args[0]

	formatter, err := newFormatter(startOutputFormat)
	if err != nil {
		return err
	}
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	var run api.BuildRun
	err = cli.RunWithReauth(cmd.Context(), func(ctx context.Context) error {
		var err error
		run, err = client.StartBuildRun(ctx, workflowID, startReference)
		return err
	})
	if err != nil {
		return err
	}

	if formatter.Format() == cli.OutputFormatTable || formatter.Format() == cli.OutputFormatWide {
		fmt.Fprintf(cmd.OutOrStdout(), "Started build run %s (number %d)\n", run.ID, run.Attributes.Number)
	}
	return formatter.Print(run, buildRunsTable([]api.BuildRun{run}))
}
