// Package api implements the skyci request pipeline: building HTTP requests
// against the API base URL, attaching the cached bearer token, classifying
// response outcomes into a typed error taxonomy, and paginating collection
// results by following opaque continuation cursors.
package api

import (
	"time"
)

// Links are the pagination references of a response document. Next, when
// present, is the exact opaque reference to use for the next page; it is
// passed back verbatim and never parsed or reconstructed.
type Links struct {
	Self  string `json:"self,omitempty"`
	First string `json:"first,omitempty"`
	Next  string `json:"next,omitempty"`
}

// Paging carries collection totals.
type Paging struct {
	Total int `json:"total"`
	Limit int `json:"limit"`
}

// Meta is the metadata block of a collection document.
type Meta struct {
	Paging Paging `json:"paging"`
}

// IncludedResource is a side-loaded resource whose attributes are loosely
// typed on the wire and therefore decoded into the Value union.
type IncludedResource struct {
	Type       string           `json:"type"`
	ID         string           `json:"id"`
	Attributes map[string]Value `json:"attributes"`
}

// Document wraps a single resource response.
type Document[T any] struct {
	Data     T                  `json:"data"`
	Included []IncludedResource `json:"included,omitempty"`
	Links    *Links             `json:"links,omitempty"`
	Meta     *Meta              `json:"meta,omitempty"`
}

// CollectionDocument wraps a collection response.
type CollectionDocument[T any] struct {
	Data     []T                `json:"data"`
	Included []IncludedResource `json:"included,omitempty"`
	Links    *Links             `json:"links,omitempty"`
	Meta     *Meta              `json:"meta,omitempty"`
}

// Page is one page of a list result. NextCursor, when non-empty, is the
// opaque continuation value for the following page.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	Total      int    `json:"total"`
}

// Product is a buildable project registered with the CI service.
type Product struct {
	Type       string            `json:"type"`
	ID         string            `json:"id"`
	Attributes ProductAttributes `json:"attributes"`
}

// ProductAttributes are the typed attributes of a Product.
type ProductAttributes struct {
	Name       string    `json:"name"`
	Repository string    `json:"repository,omitempty"`
	Platform   string    `json:"platform,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

// Workflow is a build configuration attached to a product.
type Workflow struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Attributes WorkflowAttributes `json:"attributes"`
}

// WorkflowAttributes are the typed attributes of a Workflow.
type WorkflowAttributes struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	IsEnabled     bool   `json:"isEnabled"`
	BranchPattern string `json:"branchPattern,omitempty"`
}

// BuildRun is one execution of a workflow.
type BuildRun struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Attributes BuildRunAttributes `json:"attributes"`
}

// BuildRunAttributes are the typed attributes of a BuildRun.
type BuildRunAttributes struct {
	Number           int        `json:"number"`
	ExecutionStatus  string     `json:"executionStatus"`
	CompletionStatus string     `json:"completionStatus,omitempty"`
	StartReason      string     `json:"startReason,omitempty"`
	SourceBranch     string     `json:"sourceBranch,omitempty"`
	CommitSHA        string     `json:"commitSha,omitempty"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	FinishedAt       *time.Time `json:"finishedAt,omitempty"`
}

// BuildAction is one step of a build run (build, test, archive, ...).
type BuildAction struct {
	Type       string                `json:"type"`
	ID         string                `json:"id"`
	Attributes BuildActionAttributes `json:"attributes"`
}

// BuildActionAttributes are the typed attributes of a BuildAction.
type BuildActionAttributes struct {
	Name             string     `json:"name"`
	ActionType       string     `json:"actionType"`
	ExecutionStatus  string     `json:"executionStatus"`
	CompletionStatus string     `json:"completionStatus,omitempty"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	FinishedAt       *time.Time `json:"finishedAt,omitempty"`
}

// Issue is a diagnostic produced by a build action.
type Issue struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Attributes IssueAttributes `json:"attributes"`
}

// IssueAttributes are the typed attributes of an Issue.
type IssueAttributes struct {
	IssueType string `json:"issueType"`
	Severity  string `json:"severity,omitempty"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

// TestResult is one test case outcome of a build action.
type TestResult struct {
	Type       string               `json:"type"`
	ID         string               `json:"id"`
	Attributes TestResultAttributes `json:"attributes"`
}

// TestResultAttributes are the typed attributes of a TestResult.
type TestResultAttributes struct {
	Name      string  `json:"name"`
	ClassName string  `json:"className,omitempty"`
	Status    string  `json:"status"`
	Duration  float64 `json:"duration,omitempty"`
	Message   string  `json:"message,omitempty"`
}

// Artifact is a file produced by a build action.
type Artifact struct {
	Type       string             `json:"type"`
	ID         string             `json:"id"`
	Attributes ArtifactAttributes `json:"attributes"`
}

// ArtifactAttributes are the typed attributes of an Artifact.
type ArtifactAttributes struct {
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType,omitempty"`
	FileSize    int64  `json:"fileSize,omitempty"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}
