package enrich

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

// HunterClient implements EmailFinder against a Hunter-style email-discovery
// API: first a domain search for the company, then an email-finder call for
// the person at that domain.
type HunterClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// NewHunterClient creates an email-discovery client.
func NewHunterClient(apiKey, baseURL string, timeout time.Duration) *HunterClient {
	return &HunterClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// FindEmail discovers a work email for name at company. Returns empty when
// the company domain or the address cannot be found; that is not an error.
func (c *HunterClient) FindEmail(ctx context.Context, name, company string) (string, error) {
	domain, err := c.domainForCompany(ctx, company)
	if err != nil {
		return "", err
	}
	if domain == "" {
		return "", nil
	}

	names := strings.Fields(name)
	if len(names) < 2 {
		return "", nil
	}
	firstName, lastName := names[0], names[len(names)-1]

	params := url.Values{}
	params.Set("domain", domain)
	params.Set("first_name", firstName)
	params.Set("last_name", lastName)
	params.Set("api_key", c.apiKey)

	var payload struct {
		Data struct {
			Email string `json:"email"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/email-finder?"+params.Encode(), &payload); err != nil {
		return "", err
	}
	return payload.Data.Email, nil
}

// domainForCompany resolves a company name to its primary email domain.
func (c *HunterClient) domainForCompany(ctx context.Context, company string) (string, error) {
	params := url.Values{}
	params.Set("company", company)
	params.Set("api_key", c.apiKey)

	var payload struct {
		Data struct {
			Domain string `json:"domain"`
		} `json:"data"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/domain-search?"+params.Encode(), &payload); err != nil {
		return "", err
	}
	return payload.Data.Domain, nil
}

func (c *HunterClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.Transient(fmt.Errorf("email discovery request failed: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return retry.Transient(fmt.Errorf("failed to read response: %w", err))
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return retry.Transient(fmt.Errorf("email discovery status %d", resp.StatusCode))
	default:
		return fmt.Errorf("email discovery status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unexpected email discovery response: %w", err)
	}
	return nil
}
