// Package research performs company research for a job posting: a company
// briefing, a role-requirement analysis, and recent news with sentiment. The
// three lookups are independent; the orchestrator retries and degrades each
// one separately, so a failed lookup never takes the other two down with it.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/outreach-agent/internal/llm"
	"github.com/jonathan/outreach-agent/internal/prompts"
	"github.com/jonathan/outreach-agent/internal/types"
)

// Researcher runs the three research lookups.
type Researcher struct {
	llm  llm.Client
	news *NewsClient
}

// NewResearcher creates a Researcher from its collaborators.
func NewResearcher(client llm.Client, news *NewsClient) *Researcher {
	return &Researcher{llm: client, news: news}
}

// CompanyInfo generates a briefing on the company: culture, market position,
// tech stack.
func (r *Researcher) CompanyInfo(ctx context.Context, companyName string) (string, error) {
	template := prompts.MustGet("research.json", "company-info")
	prompt := prompts.Format(template, map[string]string{"Company": companyName})

	info, err := r.llm.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("company info lookup failed: %w", err)
	}
	return strings.TrimSpace(info), nil
}

// AnalyzeRole generates a requirement breakdown for a job description.
func (r *Researcher) AnalyzeRole(ctx context.Context, description string) (string, error) {
	template := prompts.MustGet("research.json", "role-analysis")
	prompt := prompts.Format(template, map[string]string{"Description": description})

	analysis, err := r.llm.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("role analysis failed: %w", err)
	}
	return strings.TrimSpace(analysis), nil
}

// RecentNews returns recent news articles about the company, each classified
// with a sentiment. A sentiment classification failure degrades that article
// to NEUTRAL rather than dropping it. The result is never nil.
func (r *Researcher) RecentNews(ctx context.Context, companyName string) ([]types.NewsItem, error) {
	articles, err := r.news.Recent(ctx, companyName)
	if err != nil {
		return nil, err
	}

	items := make([]types.NewsItem, 0, len(articles))
	for _, a := range articles {
		items = append(items, types.NewsItem{
			Title:     a.Title,
			Date:      a.PublishedAt,
			URL:       a.URL,
			Sentiment: r.classifySentiment(ctx, a.Title+" "+a.Description),
		})
	}
	return items, nil
}

// classifySentiment labels one article's tone, defaulting to NEUTRAL when the
// classifier fails or answers something unexpected.
func (r *Researcher) classifySentiment(ctx context.Context, text string) types.Sentiment {
	template := prompts.MustGet("research.json", "news-sentiment")
	prompt := prompts.Format(template, map[string]string{"Text": text})

	answer, err := r.llm.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return types.SentimentNeutral
	}

	switch types.Sentiment(strings.ToUpper(strings.TrimSpace(answer))) {
	case types.SentimentPositive:
		return types.SentimentPositive
	case types.SentimentNegative:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}
