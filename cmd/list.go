package cmd

import (
	"context"
	"fmt"
	"sort"

	"skyci/internal/api"
	"skyci/internal/cli"

	"github.com/spf13/cobra"
)

var (
	listOutputFormat string
	listAll          bool
	listLimit        int
	listCursor       string
)

// listResourceAliases maps every accepted resource spelling to its canonical
// name.
var listResourceAliases = map[string]string{
	"product":      "products",
	"products":     "products",
	"workflow":     "workflows",
	"workflows":    "workflows",
	"run":          "build-runs",
	"runs":         "build-runs",
	"build":        "build-runs",
	"builds":       "build-runs",
	"build-run":    "build-runs",
	"build-runs":   "build-runs",
	"action":       "build-actions",
	"actions":      "build-actions",
	"build-action": "build-actions",
	"issue":        "issues",
	"issues":       "issues",
	"test":         "test-results",
	"tests":        "test-results",
	"test-result":  "test-results",
	"test-results": "test-results",
	"artifact":     "artifacts",
	"artifacts":    "artifacts",
}

// listParentArg names the required parent ID argument per canonical resource.
// Products are top level and take none.
var listParentArg = map[string]string{
	"workflows":     "product ID",
	"build-runs":    "workflow ID",
	"build-actions": "build run ID",
	"issues":        "build action ID",
	"test-results":  "build action ID",
	"artifacts":     "build action ID",
}

func listResourceTypes() []string {
	seen := map[string]bool{}
	var types []string
	for _, canonical := range listResourceAliases {
		if !seen[canonical] {
			seen[canonical] = true
			types = append(types, canonical)
		}
	}
	sort.Strings(types)
	return types
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <resource> [parent-id]",
		Short: "List resources from the SkyCI API",
		Long: `List resources from the SkyCI API.

Resources below the top level require the ID of their parent:

  skyci list products
  skyci list workflows <product-id>
  skyci list build-runs <workflow-id>
  skyci list build-actions <build-run-id>
  skyci list issues <build-action-id>
  skyci list test-results <build-action-id>
  skyci list artifacts <build-action-id>

A single page is fetched by default; --all follows the continuation cursor
until the collection is exhausted.`,
		Args: cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return listResourceTypes(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runList,
	}

	cmd.Flags().StringVarP(&listOutputFormat, "output", "o", "table", "Output format (table, wide, json, yaml, csv)")
	cmd.Flags().BoolVar(&listAll, "all", false, "Follow pagination until all items are fetched")
	cmd.Flags().IntVar(&listLimit, "limit", 0, "Page size (server default when 0)")
	cmd.Flags().StringVar(&listCursor, "cursor", "", "Opaque continuation cursor from a previous page")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	canonical, ok := listResourceAliases[args[0]]
	if !ok {
		return fmt.Errorf("unknown resource type %q (valid types: %v)", args[0], listResourceTypes())
	}

	parent := ""
	if parentName, needsParent := listParentArg[canonical]; needsParent {
		if len(args) < 2 {
			return fmt.Errorf("listing %s requires a %s argument", canonical, parentName)
		}
		parent = args[1]
	} else if len(args) > 1 {
		return fmt.Errorf("listing %s takes no parent ID argument", canonical)
	}

	client, err := newAPIClient()
	if err != nil {
		return err
	}

	switch canonical {
	case "products":
		return listResource(cmd,
			func(ctx context.Context, opts api.ListOptions) (api.Page[api.Product], error) {
				return client.ListProducts(ctx, opts)
			},
			func(ctx context.Context, limit int) ([]api.Product, error) {
				return client.ListAllProducts(ctx, limit)
			},
			productsTable)
	case "workflows":
		return listResource(cmd,
			func(ctx context.Context, opts api.ListOptions) (api.Page[api.Workflow], error) {
				return client.ListWorkflows(ctx, parent, opts)
			},
			func(ctx context.Context, limit int) ([]api.Workflow, error) {
				return client.ListAllWorkflows(ctx, parent, limit)
			},
			workflowsTable)
	case "build-runs":
		return listResource(cmd,
			func(ctx context.Context, opts api.ListOptions) (api.Page[api.BuildRun], error) {
				return client.ListBuildRuns(ctx, parent, opts)
			},
			func(ctx context.Context, limit int) ([]api.BuildRun, error) {
				return client.ListAllBuildRuns(ctx, parent, limit)
			},
			buildRunsTable)
	case "build-actions":
		return listResource(cmd,
			func(ctx context.Context, opts api.ListOptions) (api.Page[api.BuildAction], error) {
				return client.ListBuildActions(ctx, parent, opts)
			},
			func(ctx context.Context, limit int) ([]api.BuildAction, error) {
				return client.ListAllBuildActions(ctx, parent, limit)
			},
			buildActionsTable)
	case "issues":
		return listResource(cmd,
			func(ctx context.Context, opts api.ListOptions) (api.Page[api.Issue], error) {
				return client.ListIssues(ctx, parent, opts)
			},
			func(ctx context.Context, limit int) ([]api.Issue, error) {
				return client.ListAllIssues(ctx, parent, limit)
			},
			issuesTable)
	case "test-results":
		return listResource(cmd,
			func(ctx context.Context, opts api.ListOptions) (api.Page[api.TestResult], error) {
				return client.ListTestResults(ctx, parent, opts)
			},
			func(ctx context.Context, limit int) ([]api.TestResult, error) {
				return client.ListAllTestResults(ctx, parent, limit)
			},
			testResultsTable)
	case "artifacts":
		return listResource(cmd,
			func(ctx context.Context, opts api.ListOptions) (api.Page[api.Artifact], error) {
				return client.ListArtifacts(ctx, parent, opts)
			},
			func(ctx context.Context, limit int) ([]api.Artifact, error) {
				return client.ListAllArtifacts(ctx, parent, limit)
			},
			artifactsTable)
	default:
		return fmt.Errorf("unknown resource type %q", canonical)
	}
}

// listResource fetches one page or the whole collection and renders it.
func listResource[T any](
	cmd *cobra.Command,
	listPage func(context.Context, api.ListOptions) (api.Page[T], error),
	listAllItems func(context.Context, int) ([]T, error),
	tabulate func([]T) cli.Table,
) error {
	formatter, err := newFormatter(listOutputFormat)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if listAll {
		var items []T
		err := cli.RunWithReauth(ctx, func(ctx context.Context) error {
			var err error
			items, err = listAllItems(ctx, listLimit)
			return err
		})
		if err != nil {
			return err
		}
		return formatter.Print(items, tabulate(items))
	}

	var page api.Page[T]
	err = cli.RunWithReauth(ctx, func(ctx context.Context) error {
		var err error
		page, err = listPage(ctx, api.ListOptions{Limit: listLimit, Cursor: listCursor})
		return err
	})
	if err != nil {
		return err
	}

	if err := formatter.Print(page, tabulate(page.Items)); err != nil {
		return err
	}
	// The cursor is part of the structured output; surface it separately for
	// the human-readable formats.
	if page.NextCursor != "" {
		switch formatter.Format() {
		case cli.OutputFormatTable, cli.OutputFormatWide:
			fmt.Fprintf(cmd.ErrOrStderr(), "More results available, continue with --cursor %s\n", page.NextCursor)
		}
	}
	return nil
}
