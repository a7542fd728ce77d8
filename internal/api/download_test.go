package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"skyci/internal/credentials"
)

func TestDownloadArtifact(t *testing.T) {
	payload := []byte("binary artifact contents")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("pre-signed download must not carry a bearer header")
		}
		w.Write(payload)
	}))
	defer server.Close()

	c := newTestClient(t, server, &fakeTokens{value: "tok"})
	dest := filepath.Join(t.TempDir(), "artifact.bin")

	written, err := c.DownloadArtifact(context.Background(), server.URL+"/dl/abc", dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != int64(len(payload)) {
		t.Errorf("expected %d bytes, got %d", len(payload), written)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != string(payload) {
		t.Error("downloaded contents do not match")
	}
}

func TestDownloadArtifactHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	}))
	defer server.Close()

	c := newTestClient(t, server, &fakeTokens{value: "tok"})
	_, err := c.DownloadArtifact(context.Background(), server.URL+"/dl/abc", filepath.Join(t.TempDir(), "x"))
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusGone {
		t.Errorf("expected status 410, got %d", apiErr.Status)
	}
}

func TestDownloadArtifactNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(nil, credentials.Options{}, WithTokenSource(&fakeTokens{value: "tok"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = c.DownloadArtifact(context.Background(), url+"/dl/abc", filepath.Join(t.TempDir(), "x"))
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}
