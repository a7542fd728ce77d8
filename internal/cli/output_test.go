package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range ValidOutputFormats {
		if err := ValidateOutputFormat(string(format)); err != nil {
			t.Errorf("expected %q to be valid: %v", format, err)
		}
	}

	err := ValidateOutputFormat("xml")
	if err == nil {
		t.Fatal("expected an error for an unknown format")
	}
	if !strings.Contains(err.Error(), "table, wide, json, yaml, csv") {
		t.Errorf("error should list the valid formats, got %q", err.Error())
	}
}

func sampleTable() Table {
	return Table{
		Headers:     []string{"ID", "Name"},
		Rows:        [][]string{{"p1", "Sample App"}, {"p2", "Other App"}},
		WideHeaders: []string{"Bundle ID"},
		WideRows:    [][]string{{"com.example.sample"}, {"com.example.other"}},
	}
}

func TestFormatterTable(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(OutputFormatTable, &buf)
	if err := f.Print(nil, sampleTable()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"ID", "NAME", "p1", "Sample App", "Other App"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "BUNDLE ID") {
		t.Error("table output must not include wide columns")
	}
}

func TestFormatterWideAddsColumns(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(OutputFormatWide, &buf)
	if err := f.Print(nil, sampleTable()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "BUNDLE ID") || !strings.Contains(out, "com.example.sample") {
		t.Errorf("wide output missing extra columns:\n%s", out)
	}
}

func TestFormatterCSV(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(OutputFormatCSV, &buf)
	if err := f.Print(nil, sampleTable()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "p1") || !strings.Contains(lines[1], "Sample App") {
		t.Errorf("unexpected first CSV row: %q", lines[1])
	}
}

func TestFormatterJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(OutputFormatJSON, &buf)
	payload := map[string]string{"id": "p1", "name": "Sample App"}
	if err := f.Print(payload, Table{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["name"] != "Sample App" {
		t.Errorf("unexpected decoded payload: %+v", decoded)
	}
}

func TestFormatterYAMLHonorsJSONTags(t *testing.T) {
	type resource struct {
		ID   string `json:"id"`
		Name string `json:"displayName"`
	}

	var buf bytes.Buffer
	f := NewFormatter(OutputFormatYAML, &buf)
	if err := f.Print(resource{ID: "p1", Name: "Sample App"}, Table{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]string
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded["displayName"] != "Sample App" {
		t.Errorf("expected json tag names in YAML output, got %+v", decoded)
	}
}
