package api

import (
	"net/http"
	"net/url"
	"strconv"
)

// Endpoint is the resolved path, method and query for one logical API
// operation. Descriptors are generated per call from the input parameters
// and hold no shared state.
type Endpoint struct {
	Method string
	Path   string
	Query  url.Values
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		return nil
	}
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}

func listProductsEndpoint(limit int) Endpoint {
	return Endpoint{Method: http.MethodGet, Path: "/products", Query: limitQuery(limit)}
}

func getProductEndpoint(id string) Endpoint {
	return Endpoint{Method: http.MethodGet, Path: "/products/" + url.PathEscape(id)}
}

func listWorkflowsEndpoint(productID string, limit int) Endpoint {
	return Endpoint{
		Method: http.MethodGet,
		Path:   "/products/" + url.PathEscape(productID) + "/workflows",
		Query:  limitQuery(limit),
	}
}

func getWorkflowEndpoint(id string) Endpoint {
	return Endpoint{Method: http.MethodGet, Path: "/workflows/" + url.PathEscape(id)}
}

func listBuildRunsEndpoint(workflowID string, limit int) Endpoint {
	return Endpoint{
		Method: http.MethodGet,
		Path:   "/workflows/" + url.PathEscape(workflowID) + "/buildRuns",
		Query:  limitQuery(limit),
	}
}

func getBuildRunEndpoint(id string) Endpoint {
	return Endpoint{Method: http.MethodGet, Path: "/buildRuns/" + url.PathEscape(id)}
}

func startBuildRunEndpoint() Endpoint {
	return Endpoint{Method: http.MethodPost, Path: "/buildRuns"}
}

func listBuildActionsEndpoint(buildRunID string, limit int) Endpoint {
	return Endpoint{
		Method: http.MethodGet,
		Path:   "/buildRuns/" + url.PathEscape(buildRunID) + "/actions",
		Query:  limitQuery(limit),
	}
}

func listIssuesEndpoint(actionID string, limit int) Endpoint {
	return Endpoint{
		Method: http.MethodGet,
		Path:   "/buildActions/" + url.PathEscape(actionID) + "/issues",
		Query:  limitQuery(limit),
	}
}

func listTestResultsEndpoint(actionID string, limit int) Endpoint {
	return Endpoint{
		Method: http.MethodGet,
		Path:   "/buildActions/" + url.PathEscape(actionID) + "/testResults",
		Query:  limitQuery(limit),
	}
}

func listArtifactsEndpoint(actionID string, limit int) Endpoint {
	return Endpoint{
		Method: http.MethodGet,
		Path:   "/buildActions/" + url.PathEscape(actionID) + "/artifacts",
		Query:  limitQuery(limit),
	}
}

func getArtifactEndpoint(id string) Endpoint {
	return Endpoint{Method: http.MethodGet, Path: "/artifacts/" + url.PathEscape(id)}
}
