package cmd

import (
	"testing"
	"time"

	"skyci/internal/api"
)

func TestFormatTime(t *testing.T) {
	if got := formatTime(time.Time{}); got != "" {
		t.Errorf("zero time should render empty, got %q", got)
	}
	if got := formatTimePtr(nil); got != "" {
		t.Errorf("nil time should render empty, got %q", got)
	}
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if got := formatTimePtr(&ts); got == "" {
		t.Error("non-nil time should render a value")
	}
}

func TestBuildRunsTable(t *testing.T) {
	started := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	runs := []api.BuildRun{
		{
			Type: "buildRuns",
			ID:   "r1",
			Attributes: api.BuildRunAttributes{
				Number:          42,
				ExecutionStatus: "running",
				SourceBranch:    "main",
				CommitSHA:       "abc123",
				StartReason:     "manual",
				StartedAt:       &started,
			},
		},
	}

	tbl := buildRunsTable(runs)
	if len(tbl.Rows) != 1 || len(tbl.WideRows) != 1 {
		t.Fatalf("expected one row, got %d/%d", len(tbl.Rows), len(tbl.WideRows))
	}
	if tbl.Rows[0][0] != "r1" || tbl.Rows[0][1] != "42" {
		t.Errorf("unexpected base row: %v", tbl.Rows[0])
	}
	if tbl.WideRows[0][0] != "abc123" {
		t.Errorf("unexpected wide row: %v", tbl.WideRows[0])
	}
}

// Every table builder must emit rows as wide as its headers, base and wide.
func TestTableBuildersColumnWidthsMatch(t *testing.T) {
	tables := map[string]struct {
		headers, rows         int
		wideHeaders, wideRows int
	}{}

	add := func(name string, headers, wideHeaders []string, rows, wideRows [][]string) {
		tables[name] = struct {
			headers, rows         int
			wideHeaders, wideRows int
		}{len(headers), len(rows[0]), len(wideHeaders), len(wideRows[0])}
	}

	p := productsTable([]api.Product{{ID: "p1"}})
	add("products", p.Headers, p.WideHeaders, p.Rows, p.WideRows)
	w := workflowsTable([]api.Workflow{{ID: "w1"}})
	add("workflows", w.Headers, w.WideHeaders, w.Rows, w.WideRows)
	r := buildRunsTable([]api.BuildRun{{ID: "r1"}})
	add("build runs", r.Headers, r.WideHeaders, r.Rows, r.WideRows)
	a := buildActionsTable([]api.BuildAction{{ID: "a1"}})
	add("build actions", a.Headers, a.WideHeaders, a.Rows, a.WideRows)
	i := issuesTable([]api.Issue{{ID: "i1"}})
	add("issues", i.Headers, i.WideHeaders, i.Rows, i.WideRows)
	tr := testResultsTable([]api.TestResult{{ID: "t1"}})
	add("test results", tr.Headers, tr.WideHeaders, tr.Rows, tr.WideRows)
	art := artifactsTable([]api.Artifact{{ID: "f1"}})
	add("artifacts", art.Headers, art.WideHeaders, art.Rows, art.WideRows)

	for name, dims := range tables {
		if dims.headers != dims.rows {
			t.Errorf("%s: row width %d does not match header width %d", name, dims.rows, dims.headers)
		}
		if dims.wideHeaders != dims.wideRows {
			t.Errorf("%s: wide row width %d does not match wide header width %d", name, dims.wideRows, dims.wideHeaders)
		}
	}
}
