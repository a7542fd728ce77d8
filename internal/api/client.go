package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"skyci/internal/credentials"
	"skyci/internal/token"
	"skyci/pkg/logging"
)

const (
	// DefaultBaseURL is the fixed API base every endpoint path is resolved
	// against.
	DefaultBaseURL = "https://api.skyci.dev/v1"

	connectTimeout = 30 * time.Second
	requestTimeout = 60 * time.Second
)

// TokenSource supplies the bearer token for authenticated calls and accepts
// invalidation when the API rejects one.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// Client is the request pipeline against the skyci API. It exclusively owns
// its token source and HTTP transport; a single instance is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the HTTP transport.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithTokenSource overrides the token source. When set, NewClient skips
// credential resolution entirely.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// NewClient builds a client. Credentials are resolved exactly once, here:
// the resolver picks one complete credential set out of the explicit
// options, environment and config files, and the resulting token cache is
// owned by the client for its lifetime.
func NewClient(resolver *credentials.Resolver, credOpts credentials.Options, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext:         (&net.Dialer{Timeout: connectTimeout}).DialContext,
				TLSHandshakeTimeout: connectTimeout,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.tokens == nil {
		if resolver == nil {
			resolver = credentials.NewResolver()
		}
		cred, err := resolver.Resolve(credOpts)
		if err != nil {
			return nil, err
		}
		c.tokens = token.NewCache(cred, token.MaxValidity)
	}
	return c, nil
}

// InvalidateToken empties the token cache so the next call regenerates.
// Exposed for the caller-level retry-once-after-401 policy.
func (c *Client) InvalidateToken() {
	c.tokens.Invalidate()
}

func (c *Client) endpointURL(ep Endpoint) string {
	u := c.baseURL + ep.Path
	if len(ep.Query) > 0 {
		u += "?" + ep.Query.Encode()
	}
	return u
}

// send issues one authenticated request and returns the response body for
// 2xx statuses. Every other outcome is translated into the typed error
// taxonomy; a 401 additionally invalidates the token cache.
func (c *Client) send(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	bearer, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Content-Type", "application/json")

	logging.Debug("API", "%s %s", method, rawURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, c.classifyError(resp.StatusCode, data)
}

func (c *Client) classifyError(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		c.tokens.Invalidate()
		return &UnauthorizedError{}
	case status == http.StatusForbidden:
		return &ForbiddenError{}
	case status == http.StatusNotFound:
		return &NotFoundError{}
	case status == http.StatusTooManyRequests:
		return &RateLimitedError{}
	case status >= 500 && status <= 599:
		return &ServerError{Code: status}
	}

	var doc errorDocument
	if err := json.Unmarshal(body, &doc); err == nil && len(doc.Errors) > 0 {
		first := doc.Errors[0]
		message := first.Detail
		if message == "" {
			message = first.Title
		}
		return &APIError{Status: status, Message: message}
	}
	return &APIError{Status: status, Message: "request failed"}
}

// getResource fetches and decodes a single-resource document.
func getResource[T any](ctx context.Context, c *Client, ep Endpoint) (T, error) {
	var zero T
	data, err := c.send(ctx, ep.Method, c.endpointURL(ep), nil)
	if err != nil {
		return zero, err
	}
	var doc Document[T]
	if err := json.Unmarshal(data, &doc); err != nil {
		return zero, &DecodingError{Err: err}
	}
	return doc.Data, nil
}

// listPage fetches one page of a collection. A non-empty cursor is an opaque
// continuation value from a previous page and is requested verbatim, with no
// path templating.
func listPage[T any](ctx context.Context, c *Client, ep Endpoint, cursor string) (Page[T], error) {
	rawURL := c.endpointURL(ep)
	if cursor != "" {
		rawURL = cursor
	}
	data, err := c.send(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page[T]{}, err
	}

	var doc CollectionDocument[T]
	if err := json.Unmarshal(data, &doc); err != nil {
		return Page[T]{}, &DecodingError{Err: err}
	}

	page := Page[T]{Items: doc.Data}
	if doc.Links != nil {
		page.NextCursor = doc.Links.Next
	}
	if doc.Meta != nil {
		page.Total = doc.Meta.Paging.Total
	}
	return page, nil
}

// listAll follows continuation cursors until exhausted, accumulating items
// in arrival order. Sequential by construction: each cursor depends on the
// prior page's response.
func listAll[T any](ctx context.Context, c *Client, ep Endpoint) ([]T, error) {
	var items []T
	cursor := ""
	for {
		page, err := listPage[T](ctx, c, ep, cursor)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if page.NextCursor == "" {
			return items, nil
		}
		cursor = page.NextCursor
	}
}

// ListOptions control collection fetches. Cursor, when set, is the opaque
// continuation value returned by a previous page.
type ListOptions struct {
	Limit  int
	Cursor string
}

// ListProducts fetches one page of products.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) (Page[Product], error) {
	return listPage[Product](ctx, c, listProductsEndpoint(opts.Limit), opts.Cursor)
}

// ListAllProducts fetches every product by following cursors.
func (c *Client) ListAllProducts(ctx context.Context, limit int) ([]Product, error) {
	return listAll[Product](ctx, c, listProductsEndpoint(limit))
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	return getResource[Product](ctx, c, getProductEndpoint(id))
}

// ListWorkflows fetches one page of a product's workflows.
func (c *Client) ListWorkflows(ctx context.Context, productID string, opts ListOptions) (Page[Workflow], error) {
	return listPage[Workflow](ctx, c, listWorkflowsEndpoint(productID, opts.Limit), opts.Cursor)
}

// ListAllWorkflows fetches every workflow of a product.
func (c *Client) ListAllWorkflows(ctx context.Context, productID string, limit int) ([]Workflow, error) {
	return listAll[Workflow](ctx, c, listWorkflowsEndpoint(productID, limit))
}

// GetWorkflow fetches a single workflow.
func (c *Client) GetWorkflow(ctx context.Context, id string) (Workflow, error) {
	return getResource[Workflow](ctx, c, getWorkflowEndpoint(id))
}

// ListBuildRuns fetches one page of a workflow's build runs.
func (c *Client) ListBuildRuns(ctx context.Context, workflowID string, opts ListOptions) (Page[BuildRun], error) {
	return listPage[BuildRun](ctx, c, listBuildRunsEndpoint(workflowID, opts.Limit), opts.Cursor)
}

// ListAllBuildRuns fetches every build run of a workflow.
func (c *Client) ListAllBuildRuns(ctx context.Context, workflowID string, limit int) ([]BuildRun, error) {
	return listAll[BuildRun](ctx, c, listBuildRunsEndpoint(workflowID, limit))
}

// GetBuildRun fetches a single build run.
func (c *Client) GetBuildRun(ctx context.Context, id string) (BuildRun, error) {
	return getResource[BuildRun](ctx, c, getBuildRunEndpoint(id))
}

// StartBuildRun starts a new build run for a workflow from the given source
// branch or tag.
func (c *Client) StartBuildRun(ctx context.Context, workflowID, reference string) (BuildRun, error) {
	body := map[string]any{
		"data": map[string]any{
			"type": "buildRuns",
			"attributes": map[string]any{
				"sourceBranch": reference,
			},
			"relationships": map[string]any{
				"workflow": map[string]any{
					"data": map[string]any{"type": "workflows", "id": workflowID},
				},
			},
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return BuildRun{}, fmt.Errorf("encode build run request: %w", err)
	}

	ep := startBuildRunEndpoint()
	data, err := c.send(ctx, ep.Method, c.endpointURL(ep), payload)
	if err != nil {
		return BuildRun{}, err
	}
	var doc Document[BuildRun]
	if err := json.Unmarshal(data, &doc); err != nil {
		return BuildRun{}, &DecodingError{Err: err}
	}
	return doc.Data, nil
}

// ListBuildActions fetches one page of a build run's actions.
func (c *Client) ListBuildActions(ctx context.Context, buildRunID string, opts ListOptions) (Page[BuildAction], error) {
	return listPage[BuildAction](ctx, c, listBuildActionsEndpoint(buildRunID, opts.Limit), opts.Cursor)
}

// ListAllBuildActions fetches every action of a build run.
func (c *Client) ListAllBuildActions(ctx context.Context, buildRunID string, limit int) ([]BuildAction, error) {
	return listAll[BuildAction](ctx, c, listBuildActionsEndpoint(buildRunID, limit))
}

// ListIssues fetches one page of a build action's issues.
func (c *Client) ListIssues(ctx context.Context, actionID string, opts ListOptions) (Page[Issue], error) {
	return listPage[Issue](ctx, c, listIssuesEndpoint(actionID, opts.Limit), opts.Cursor)
}

// ListAllIssues fetches every issue of a build action.
func (c *Client) ListAllIssues(ctx context.Context, actionID string, limit int) ([]Issue, error) {
	return listAll[Issue](ctx, c, listIssuesEndpoint(actionID, limit))
}

// ListTestResults fetches one page of a build action's test results.
func (c *Client) ListTestResults(ctx context.Context, actionID string, opts ListOptions) (Page[TestResult], error) {
	return listPage[TestResult](ctx, c, listTestResultsEndpoint(actionID, opts.Limit), opts.Cursor)
}

// ListAllTestResults fetches every test result of a build action.
func (c *Client) ListAllTestResults(ctx context.Context, actionID string, limit int) ([]TestResult, error) {
	return listAll[TestResult](ctx, c, listTestResultsEndpoint(actionID, limit))
}

// ListArtifacts fetches one page of a build action's artifacts.
func (c *Client) ListArtifacts(ctx context.Context, actionID string, opts ListOptions) (Page[Artifact], error) {
	return listPage[Artifact](ctx, c, listArtifactsEndpoint(actionID, opts.Limit), opts.Cursor)
}

// ListAllArtifacts fetches every artifact of a build action.
func (c *Client) ListAllArtifacts(ctx context.Context, actionID string, limit int) ([]Artifact, error) {
	return listAll[Artifact](ctx, c, listArtifactsEndpoint(actionID, limit))
}

// GetArtifact fetches a single artifact, including its download URL.
func (c *Client) GetArtifact(ctx context.Context, id string) (Artifact, error) {
	return getResource[Artifact](ctx, c, getArtifactEndpoint(id))
}
