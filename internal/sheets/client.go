// Package sheets exports run records to spreadsheet-backed REST endpoints.
// Each endpoint wraps one sheet; rows are appended as JSON objects keyed by
// the sheet's column names.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/outreach-agent/internal/retry"
)

// Client appends rows to a sheet REST endpoint.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a sheet export client.
func NewClient(timeout time.Duration) *Client {
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// AppendRow posts one record to endpoint. The record is wrapped under the
// sheet's singular resource name, which the endpoint derives from its last
// path segment (e.g. .../jobListings expects {"jobListing": {...}}).
func (c *Client) AppendRow(ctx context.Context, endpoint string, record map[string]any) error {
	key := resourceKey(endpoint)
	payload, err := json.Marshal(map[string]any{key: record})
	if err != nil {
		return fmt.Errorf("failed to encode row: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.Transient(fmt.Errorf("sheet append failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return retry.Transient(fmt.Errorf("sheet append status %d", resp.StatusCode))
	default:
		return fmt.Errorf("sheet append status %d", resp.StatusCode)
	}
}

// resourceKey maps an endpoint URL to the singular JSON key the endpoint
// expects. A trailing "s" is stripped from the last path segment; endpoints
// without a usable segment fall back to "row".
func resourceKey(endpoint string) string {
	trimmed := strings.TrimSuffix(endpoint, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return "row"
	}
	segment := trimmed[idx+1:]
	if cut := strings.IndexAny(segment, "?#"); cut >= 0 {
		segment = segment[:cut]
	}
	if segment == "" {
		return "row"
	}
	segment = strings.TrimSuffix(segment, "s")
	if segment == "" {
		return "row"
	}
	return segment
}
