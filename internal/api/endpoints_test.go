package api

import (
	"net/http"
	"testing"
)

func TestEndpointCatalog(t *testing.T) {
	cases := []struct {
		name     string
		ep       Endpoint
		method   string
		path     string
		rawQuery string
	}{
		{"list products", listProductsEndpoint(25), http.MethodGet, "/products", "limit=25"},
		{"list products unlimited", listProductsEndpoint(0), http.MethodGet, "/products", ""},
		{"get product", getProductEndpoint("p1"), http.MethodGet, "/products/p1", ""},
		{"list workflows", listWorkflowsEndpoint("p1", 10), http.MethodGet, "/products/p1/workflows", "limit=10"},
		{"get workflow", getWorkflowEndpoint("wf"), http.MethodGet, "/workflows/wf", ""},
		{"list build runs", listBuildRunsEndpoint("wf", 0), http.MethodGet, "/workflows/wf/buildRuns", ""},
		{"get build run", getBuildRunEndpoint("r1"), http.MethodGet, "/buildRuns/r1", ""},
		{"start build run", startBuildRunEndpoint(), http.MethodPost, "/buildRuns", ""},
		{"list actions", listBuildActionsEndpoint("r1", 0), http.MethodGet, "/buildRuns/r1/actions", ""},
		{"list issues", listIssuesEndpoint("a1", 0), http.MethodGet, "/buildActions/a1/issues", ""},
		{"list test results", listTestResultsEndpoint("a1", 0), http.MethodGet, "/buildActions/a1/testResults", ""},
		{"list artifacts", listArtifactsEndpoint("a1", 0), http.MethodGet, "/buildActions/a1/artifacts", ""},
		{"get artifact", getArtifactEndpoint("art"), http.MethodGet, "/artifacts/art", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.ep.Method != tc.method {
				t.Errorf("expected method %s, got %s", tc.method, tc.ep.Method)
			}
			if tc.ep.Path != tc.path {
				t.Errorf("expected path %s, got %s", tc.path, tc.ep.Path)
			}
			if got := tc.ep.Query.Encode(); got != tc.rawQuery {
				t.Errorf("expected query %q, got %q", tc.rawQuery, got)
			}
		})
	}
}

func TestEndpointEscapesIDs(t *testing.T) {
	ep := getProductEndpoint("weird/id")
	if ep.Path != "/products/weird%2Fid" {
		t.Errorf("expected escaped path, got %s", ep.Path)
	}
}
