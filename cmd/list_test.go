package cmd

import (
	"sort"
	"testing"
)

func TestListResourceAliasesResolveToKnownTypes(t *testing.T) {
	known := map[string]bool{}
	for _, canonical := range listResourceTypes() {
		known[canonical] = true
	}

	for alias, canonical := range listResourceAliases {
		if !known[canonical] {
			t.Errorf("alias %q resolves to unknown type %q", alias, canonical)
		}
	}
}

func TestListResourceTypesSortedAndUnique(t *testing.T) {
	types := listResourceTypes()
	if !sort.StringsAreSorted(types) {
		t.Errorf("resource types are not sorted: %v", types)
	}
	seen := map[string]bool{}
	for _, typ := range types {
		if seen[typ] {
			t.Errorf("duplicate resource type %q", typ)
		}
		seen[typ] = true
	}
}

func TestListParentRequirements(t *testing.T) {
	if _, needsParent := listParentArg["products"]; needsParent {
		t.Error("products must not require a parent ID")
	}
	for _, child := range []string{"workflows", "build-runs", "build-actions", "issues", "test-results", "artifacts"} {
		if _, needsParent := listParentArg[child]; !needsParent {
			t.Errorf("%s must require a parent ID", child)
		}
	}
}

func TestListCommandFlags(t *testing.T) {
	cmd := newListCmd()
	for _, name := range []string{"output", "all", "limit", "cursor"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("Expected flag --%s on the list command", name)
		}
	}
}

func TestListRejectsUnknownResource(t *testing.T) {
	cmd := newListCmd()
	cmd.SetArgs([]string{"gizmos"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected an error for an unknown resource type")
	}
}

func TestListRequiresParentID(t *testing.T) {
	cmd := newListCmd()
	cmd.SetArgs([]string{"workflows"})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected an error when the parent ID is missing")
	}
}
