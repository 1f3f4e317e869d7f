package research

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/outreach-agent/internal/retry"
)

// maxArticles bounds how many recent articles are fetched per company.
const maxArticles = 5

// Article is one raw news article from the news service.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// NewsClient wraps the news service's REST API.
type NewsClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewNewsClient creates a news client.
func NewNewsClient(apiKey, baseURL string, timeout time.Duration) *NewsClient {
	return &NewsClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// Recent returns the most recent articles mentioning the company, newest
// first. An empty result is valid.
func (c *NewsClient) Recent(ctx context.Context, companyName string) ([]Article, error) {
	params := url.Values{}
	params.Set("q", companyName)
	params.Set("sortBy", "publishedAt")
	params.Set("language", "en")
	params.Set("pageSize", fmt.Sprintf("%d", maxArticles))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, retry.Transient(fmt.Errorf("news request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.Transient(fmt.Errorf("failed to read news response: %w", err))
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, retry.Transient(fmt.Errorf("news service status %d", resp.StatusCode))
	default:
		return nil, fmt.Errorf("news service status %d", resp.StatusCode)
	}

	var payload struct {
		Articles []Article `json:"articles"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("unexpected news response: %w", err)
	}
	return payload.Articles, nil
}
