package cmd

import (
	"fmt"
	"strconv"
	"time"

	"skyci/internal/api"
	"skyci/internal/cli"
)

// Table builders for each resource type. The base columns are what fits a
// terminal comfortably; wide columns carry the rest.

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func productsTable(products []api.Product) cli.Table {
	tbl := cli.Table{
		Headers:     []string{"ID", "Name", "Platform"},
		WideHeaders: []string{"Repository", "Created"},
	}
	for _, p := range products {
		tbl.Rows = append(tbl.Rows, []string{p.ID, p.Attributes.Name, p.Attributes.Platform})
		tbl.WideRows = append(tbl.WideRows, []string{p.Attributes.Repository, formatTime(p.Attributes.CreatedAt)})
	}
	return tbl
}

func workflowsTable(workflows []api.Workflow) cli.Table {
	tbl := cli.Table{
		Headers:     []string{"ID", "Name", "Enabled"},
		WideHeaders: []string{"Branch Pattern", "Description"},
	}
	for _, w := range workflows {
		tbl.Rows = append(tbl.Rows, []string{w.ID, w.Attributes.Name, strconv.FormatBool(w.Attributes.IsEnabled)})
		tbl.WideRows = append(tbl.WideRows, []string{w.Attributes.BranchPattern, w.Attributes.Description})
	}
	return tbl
}

func buildRunsTable(runs []api.BuildRun) cli.Table {
	tbl := cli.Table{
		Headers:     []string{"ID", "Number", "Status", "Result", "Branch"},
		WideHeaders: []string{"Commit", "Reason", "Started", "Finished"},
	}
	for _, r := range runs {
		tbl.Rows = append(tbl.Rows, []string{
			r.ID,
			strconv.Itoa(r.Attributes.Number),
			r.Attributes.ExecutionStatus,
			r.Attributes.CompletionStatus,
			r.Attributes.SourceBranch,
		})
		tbl.WideRows = append(tbl.WideRows, []string{
			r.Attributes.CommitSHA,
			r.Attributes.StartReason,
			formatTimePtr(r.Attributes.StartedAt),
			formatTimePtr(r.Attributes.FinishedAt),
		})
	}
	return tbl
}

func buildActionsTable(actions []api.BuildAction) cli.Table {
	tbl := cli.Table{
		Headers:     []string{"ID", "Name", "Type", "Status", "Result"},
		WideHeaders: []string{"Started", "Finished"},
	}
	for _, a := range actions {
		tbl.Rows = append(tbl.Rows, []string{
			a.ID,
			a.Attributes.Name,
			a.Attributes.ActionType,
			a.Attributes.ExecutionStatus,
			a.Attributes.CompletionStatus,
		})
		tbl.WideRows = append(tbl.WideRows, []string{
			formatTimePtr(a.Attributes.StartedAt),
			formatTimePtr(a.Attributes.FinishedAt),
		})
	}
	return tbl
}

func issuesTable(issues []api.Issue) cli.Table {
	tbl := cli.Table{
		Headers:     []string{"Type", "Severity", "Message"},
		WideHeaders: []string{"File", "Line"},
	}
	for _, i := range issues {
		tbl.Rows = append(tbl.Rows, []string{i.Attributes.IssueType, i.Attributes.Severity, i.Attributes.Message})
		line := ""
		if i.Attributes.Line > 0 {
			line = strconv.Itoa(i.Attributes.Line)
		}
		tbl.WideRows = append(tbl.WideRows, []string{i.Attributes.File, line})
	}
	return tbl
}

func testResultsTable(results []api.TestResult) cli.Table {
	tbl := cli.Table{
		Headers:     []string{"Name", "Status", "Duration"},
		WideHeaders: []string{"Class", "Message"},
	}
	for _, r := range results {
		duration := ""
		if r.Attributes.Duration > 0 {
			duration = fmt.Sprintf("%.2fs", r.Attributes.Duration)
		}
		tbl.Rows = append(tbl.Rows, []string{r.Attributes.Name, r.Attributes.Status, duration})
		tbl.WideRows = append(tbl.WideRows, []string{r.Attributes.ClassName, r.Attributes.Message})
	}
	return tbl
}

func artifactsTable(artifacts []api.Artifact) cli.Table {
	tbl := cli.Table{
		Headers:     []string{"ID", "File", "Type"},
		WideHeaders: []string{"Size", "Download URL"},
	}
	for _, a := range artifacts {
		size := ""
		if a.Attributes.FileSize > 0 {
			size = strconv.FormatInt(a.Attributes.FileSize, 10)
		}
		tbl.Rows = append(tbl.Rows, []string{a.ID, a.Attributes.FileName, a.Attributes.FileType})
		tbl.WideRows = append(tbl.WideRows, []string{size, a.Attributes.DownloadURL})
	}
	return tbl
}
