package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"skyci/internal/api"
	"skyci/internal/cli"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func newInteractiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Browse the SkyCI API in an interactive shell",
		Long: `Browse the SkyCI API in an interactive shell with history and tab
completion. Type 'help' inside the shell for the available commands.`,
		Aliases: []string{"shell"},
		Args:    cobra.NoArgs,
		RunE:    runInteractive,
	}
}

const interactiveHelp = `Available commands:
  products                      list products
  workflows <product-id>        list workflows of a product
  runs <workflow-id>            list build runs of a workflow
  actions <build-run-id>        list actions of a build run
  issues <build-action-id>      list issues of a build action
  tests <build-action-id>       list test results of a build action
  artifacts <build-action-id>   list artifacts of a build action
  start <workflow-id> <ref>     start a build run for a git reference
  help                          show this help
  exit                          leave the shell`

func runInteractive(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	completer := readline.NewPrefixCompleter(
		readline.PcItem("products"),
		readline.PcItem("workflows"),
		readline.PcItem("runs"),
		readline.PcItem("actions"),
		readline.PcItem("issues"),
		readline.PcItem("tests"),
		readline.PcItem("artifacts"),
		readline.PcItem("start"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "skyci> ",
		HistoryFile:       filepath.Join(os.TempDir(), ".skyci_history"),
		AutoComplete:      completer,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline instance: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(cmd.OutOrStdout(), "skyci interactive shell. Type 'help' for commands, TAB completes.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				continue
			}
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("readline error: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit", "quit":
			return nil
		case "help":
			fmt.Fprintln(cmd.OutOrStdout(), interactiveHelp)
		default:
			if err := runInteractiveCommand(cmd.Context(), cmd.OutOrStdout(), client, fields); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		}
	}
}

func runInteractiveCommand(ctx context.Context, out io.Writer, client *api.Client, fields []string) error {
	formatter := cli.NewFormatter(cli.OutputFormatTable, out)

	needArg := func(name string) error {
		if len(fields) < 2 {
			return fmt.Errorf("%s requires an ID argument, see 'help'", name)
		}
		return nil
	}

	switch fields[0] {
	case "products":
		return interactiveList(ctx, formatter,
			func(ctx context.Context) ([]api.Product, error) { return client.ListAllProducts(ctx, 0) },
			productsTable)
	case "workflows":
		if err := needArg("workflows"); err != nil {
			return err
		}
		return interactiveList(ctx, formatter,
			func(ctx context.Context) ([]api.Workflow, error) { return client.ListAllWorkflows(ctx, fields[1], 0) },
			workflowsTable)
	case "runs":
		if err := needArg("runs"); err != nil {
			return err
		}
		return interactiveList(ctx, formatter,
			func(ctx context.Context) ([]api.BuildRun, error) { return client.ListAllBuildRuns(ctx, fields[1], 0) },
			buildRunsTable)
	case "actions":
		if err := needArg("actions"); err != nil {
			return err
		}
		return interactiveList(ctx, formatter,
			func(ctx context.Context) ([]api.BuildAction, error) {
				return client.ListAllBuildActions(ctx, fields[1], 0)
			},
			buildActionsTable)
	case "issues":
		if err := needArg("issues"); err != nil {
			return err
		}
		return interactiveList(ctx, formatter,
			func(ctx context.Context) ([]api.Issue, error) { return client.ListAllIssues(ctx, fields[1], 0) },
			issuesTable)
	case "tests":
		if err := needArg("tests"); err != nil {
			return err
		}
		return interactiveList(ctx, formatter,
			func(ctx context.Context) ([]api.TestResult, error) {
				return client.ListAllTestResults(ctx, fields[1], 0)
			},
			testResultsTable)
	case "artifacts":
		if err := needArg("artifacts"); err != nil {
			return err
		}
		return interactiveList(ctx, formatter,
			func(ctx context.Context) ([]api.Artifact, error) { return client.ListAllArtifacts(ctx, fields[1], 0) },
			artifactsTable)
	case "start":
		if len(fields) < 3 {
			return fmt.Errorf("start requires a workflow ID and a git reference, see 'help'")
		}
		var run api.BuildRun
		err := cli.RunWithReauth(ctx, func(ctx context.Context) error {
			var err error
			run, err = client.StartBuildRun(ctx, fields[1], fields[2])
			return err
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Started build run %s (number %d)\n", run.ID, run.Attributes.Number)
		return nil
	default:
		return fmt.Errorf("unknown command %q, see 'help'", fields[0])
	}
}

func interactiveList[T any](ctx context.Context, formatter *cli.Formatter, list func(context.Context) ([]T, error), tabulate func([]T) cli.Table) error {
	var items []T
	err := cli.RunWithReauth(ctx, func(ctx context.Context) error {
		var err error
		items, err = list(ctx)
		return err
	})
	if err != nil {
		return err
	}
	return formatter.Print(items, tabulate(items))
}
