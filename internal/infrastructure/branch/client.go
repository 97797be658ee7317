// Package branch holds the HTTP client used to push confirmed entity state
// to branch servers.
package branch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	syncapp "github.com/chainsync/backend/internal/application/sync"
	syncdom "github.com/chainsync/backend/internal/domain/sync"
)

// maxErrorBodySize caps how much of a branch error response gets read back
const maxErrorBodySize = 4 * 1024

// Client pushes entity payloads to branch servers over HTTP. Each push is a
// single POST with bearer authentication; the caller decides what a failed
// push means.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a branch client with the given request timeout. The
// per-push context deadline set by the distributor still applies on top.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Push delivers one payload to endpoint at the given sub-path. Any non-2xx
// status is an error carrying the branch's own explanation when it sent one.
func (c *Client) Push(ctx context.Context, endpoint syncdom.BranchEndpoint, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+endpoint.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push to %s: %w", endpoint.Code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		if len(detail) > 0 {
			return fmt.Errorf("branch %s returned %d: %s", endpoint.Code, resp.StatusCode, string(detail))
		}
		return fmt.Errorf("branch %s returned %d", endpoint.Code, resp.StatusCode)
	}
	return nil
}

// Ensure Client implements Pusher
var _ syncapp.Pusher = (*Client)(nil)
