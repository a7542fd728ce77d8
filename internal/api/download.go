package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"skyci/pkg/logging"
)

// DownloadArtifact streams the artifact behind url into destPath and returns
// the number of bytes written. Download URLs are pre-signed by the backend,
// so no bearer header is attached and the body is not JSON-decoded.
func (c *Client) DownloadArtifact(ctx context.Context, url, destPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, &APIError{Status: resp.StatusCode, Message: "artifact download failed"}
	}

	out, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", destPath, err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return written, &NetworkError{Err: err}
	}
	logging.Debug("API", "downloaded %d bytes to %s", written, destPath)
	return written, nil
}
