package cmd

import (
	"context"
	"fmt"

	"skyci/internal/api"
	"skyci/internal/cli"

	"github.com/spf13/cobra"
)

var getOutputFormat string

// getResourceAliases maps accepted spellings of the directly addressable
// resources to their canonical names.
var getResourceAliases = map[string]string{
	"product":   "product",
	"workflow":  "workflow",
	"run":       "build-run",
	"build-run": "build-run",
	"buildrun":  "build-run",
	"artifact":  "artifact",
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show a single resource by ID",
		Long: `Show a single resource by ID.

  skyci get product <product-id>
  skyci get workflow <workflow-id>
  skyci get build-run <build-run-id>
  skyci get artifact <artifact-id>`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return []string{"product", "workflow", "build-run", "artifact"}, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runGet,
	}

	cmd.Flags().StringVarP(&getOutputFormat, "output", "o", "table", "Output format (table, wide, json, yaml, csv)")

	return cmd
}

func runGet(cmd *cobra.Command, args []string) error {
	canonical, ok := getResourceAliases[args[0]]
	if !ok {
		return fmt.Errorf("unknown resource type %q (valid types: product, workflow, build-run, artifact)", args[0])
	}
	id := args[1]

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	switch canonical {
	case "product":
		return getResource(cmd, func(ctx context.Context) (api.Product, error) {
			return client.GetProduct(ctx, id)
		}, func(p api.Product) cli.Table { return productsTable([]api.Product{p}) })
	case "workflow":
		return getResource(cmd, func(ctx context.Context) (api.Workflow, error) {
			return client.GetWorkflow(ctx, id)
		}, func(w api.Workflow) cli.Table { return workflowsTable([]api.Workflow{w}) })
	case "build-run":
		return getResource(cmd, func(ctx context.Context) (api.BuildRun, error) {
			return client.GetBuildRun(ctx, id)
		}, func(r api.BuildRun) cli.Table { return buildRunsTable([]api.BuildRun{r}) })
	case "artifact":
		return getResource(cmd, func(ctx context.Context) (api.Artifact, error) {
			return client.GetArtifact(ctx, id)
		}, func(a api.Artifact) cli.Table { return artifactsTable([]api.Artifact{a}) })
	default:
		return fmt.Errorf("unknown resource type %q", canonical)
	}
}

func getResource[T any](cmd *cobra.Command, get func(context.Context) (T, error), tabulate func(T) cli.Table) error {
	formatter, err := newFormatter(getOutputFormat)
	if err != nil {
		return err
	}

	var item T
	err = cli.RunWithReauth(cmd.Context(), func(ctx context.Context) error {
		var err error
		item, err = get(ctx)
		return err
	})
	if err != nil {
		return err
	}
	return formatter.Print(item, tabulate(item))
}
