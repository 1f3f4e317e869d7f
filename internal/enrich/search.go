package enrich

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// WebSearcher implements ProfileSearcher on top of a programmable web search
// index, querying for the contact's profile on the professional network.
type WebSearcher struct {
	svc *customsearch.Service
	cx  string
}

// NewWebSearcher creates a WebSearcher from a search API key and engine id.
func NewWebSearcher(ctx context.Context, apiKey, cx string) (*WebSearcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &WebSearcher{svc: svc, cx: cx}, nil
}

// FindProfileURL searches for the person's profile and returns the first
// result link, or empty when nothing is found.
func (s *WebSearcher) FindProfileURL(ctx context.Context, name, company string) (string, error) {
	query := fmt.Sprintf("%s %s site:linkedin.com", name, company)
	resp, err := s.svc.Cse.List().Context(ctx).Cx(s.cx).Q(query).Num(3).Do()
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].Link, nil
}
