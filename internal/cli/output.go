// Package cli provides output formatting and shared helpers for skyci commands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the supported output formats for CLI commands.
type OutputFormat string

const (
	// OutputFormatTable renders the default column set as a table
	OutputFormatTable OutputFormat = "table"
	// OutputFormatWide renders a table with additional columns
	OutputFormatWide OutputFormat = "wide"
	// OutputFormatJSON renders the raw resource data as indented JSON
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML renders the resource data as YAML
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatCSV renders the table columns as CSV for further processing
	OutputFormatCSV OutputFormat = "csv"
)

// ValidOutputFormats contains all valid output format values.
var ValidOutputFormats = []OutputFormat{
	OutputFormatTable,
	OutputFormatWide,
	OutputFormatJSON,
	OutputFormatYAML,
	OutputFormatCSV,
}

// ValidateOutputFormat validates that the given format string is a supported
// output format. Returns an error listing the valid values otherwise.
func ValidateOutputFormat(format string) error {
	switch OutputFormat(format) {
	case OutputFormatTable, OutputFormatWide, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV:
		return nil
	default:
		names := make([]string, len(ValidOutputFormats))
		for i, f := range ValidOutputFormats {
			names[i] = string(f)
		}
		return fmt.Errorf("invalid output format %q (valid formats: %s)", format, strings.Join(names, ", "))
	}
}

// Table describes tabular output for a list or detail view. Wide holds the
// extra columns appended when the wide format is selected.
type Table struct {
	Headers []string
	Rows    [][]string

	WideHeaders []string
	WideRows    [][]string
}

// Formatter renders command results in the selected output format.
type Formatter struct {
	format OutputFormat
	out    io.Writer
}

// NewFormatter creates a formatter writing to out. The format is assumed to
// have passed ValidateOutputFormat.
func NewFormatter(format OutputFormat, out io.Writer) *Formatter {
	return &Formatter{format: format, out: out}
}

// Format returns the configured output format.
func (f *Formatter) Format() OutputFormat {
	return f.format
}

// Print renders data in the configured format. The table argument drives the
// table, wide and csv formats; data is used for json and yaml.
func (f *Formatter) Print(data interface{}, tbl Table) error {
	switch f.format {
	case OutputFormatJSON:
		return f.printJSON(data)
	case OutputFormatYAML:
		return f.printYAML(data)
	case OutputFormatCSV:
		fmt.Fprintln(f.out, f.buildTable(tbl, false).RenderCSV())
		return nil
	case OutputFormatWide:
		fmt.Fprintln(f.out, f.buildTable(tbl, true).Render())
		return nil
	case OutputFormatTable:
		fmt.Fprintln(f.out, f.buildTable(tbl, false).Render())
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", f.format)
	}
}

func (f *Formatter) buildTable(tbl Table, wide bool) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatUpper

	headers := tbl.Headers
	rows := tbl.Rows
	if wide && len(tbl.WideHeaders) > 0 {
		headers = append(append([]string{}, tbl.Headers...), tbl.WideHeaders...)
		rows = make([][]string, len(tbl.Rows))
		for i, row := range tbl.Rows {
			extra := []string{}
			if i < len(tbl.WideRows) {
				extra = tbl.WideRows[i]
			}
			rows[i] = append(append([]string{}, row...), extra...)
		}
	}

	t.AppendHeader(toRow(headers))
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}
	return t
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

func (f *Formatter) printJSON(data interface{}) error {
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Fprintln(f.out, string(encoded))
	return nil
}

func (f *Formatter) printYAML(data interface{}) error {
	// Round-trip through JSON so yaml output honors the json struct tags.
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode data: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(encoded, &generic); err != nil {
		return fmt.Errorf("failed to decode data: %w", err)
	}
	yamlData, err := yaml.Marshal(generic)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	fmt.Fprint(f.out, string(yamlData))
	return nil
}
