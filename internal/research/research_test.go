package research

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-agent/internal/llm"
	"github.com/jonathan/outreach-agent/internal/retry"
	"github.com/jonathan/outreach-agent/internal/types"
)

// fakeLLM answers by substring match on the prompt.
type fakeLLM struct {
	answers map[string]string
	err     error
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for key, answer := range f.answers {
		if strings.Contains(prompt, key) {
			return answer, nil
		}
	}
	return "NEUTRAL", nil
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateContent(ctx, prompt, tier)
}

func (f *fakeLLM) Close() error { return nil }

func TestCompanyInfo(t *testing.T) {
	client := &fakeLLM{answers: map[string]string{"Acme": "  Acme builds rockets.\n"}}
	r := NewResearcher(client, nil)

	info, err := r.CompanyInfo(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme builds rockets.", info)
}

func TestCompanyInfoPropagatesError(t *testing.T) {
	client := &fakeLLM{err: errors.New("model unavailable")}
	r := NewResearcher(client, nil)

	_, err := r.CompanyInfo(context.Background(), "Acme")
	assert.Error(t, err)
}

func TestAnalyzeRole(t *testing.T) {
	client := &fakeLLM{answers: map[string]string{"distributed systems": "Requires Go and Kafka."}}
	r := NewResearcher(client, nil)

	analysis, err := r.AnalyzeRole(context.Background(), "Work on distributed systems at scale.")
	require.NoError(t, err)
	assert.Equal(t, "Requires Go and Kafka.", analysis)
}

func newsServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/everything", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestRecentNewsClassifiesSentiment(t *testing.T) {
	server := newsServer(t, `{"articles": [
		{"title": "Acme raises Series C", "description": "funding round", "url": "https://news/1", "publishedAt": "2026-08-20"},
		{"title": "Acme lays off staff", "description": "cuts", "url": "https://news/2", "publishedAt": "2026-08-19"}
	]}`, http.StatusOK)
	defer server.Close()

	client := &fakeLLM{answers: map[string]string{
		"raises Series C": "POSITIVE",
		"lays off":        "NEGATIVE",
	}}
	r := NewResearcher(client, NewNewsClient("k", server.URL, time.Second))

	items, err := r.RecentNews(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, types.SentimentPositive, items[0].Sentiment)
	assert.Equal(t, types.SentimentNegative, items[1].Sentiment)
	assert.Equal(t, "2026-08-20", items[0].Date)
	assert.Equal(t, "https://news/1", items[0].URL)
}

func TestRecentNewsSentimentFailureDegradesToNeutral(t *testing.T) {
	server := newsServer(t, `{"articles": [{"title": "Acme in the news", "url": "https://news/1"}]}`, http.StatusOK)
	defer server.Close()

	client := &fakeLLM{err: errors.New("classifier down")}
	r := NewResearcher(client, NewNewsClient("k", server.URL, time.Second))

	items, err := r.RecentNews(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, types.SentimentNeutral, items[0].Sentiment)
}

func TestRecentNewsUnexpectedAnswerDegradesToNeutral(t *testing.T) {
	server := newsServer(t, `{"articles": [{"title": "Acme update", "url": "https://news/1"}]}`, http.StatusOK)
	defer server.Close()

	client := &fakeLLM{answers: map[string]string{"Acme update": "I think it is positive overall"}}
	r := NewResearcher(client, NewNewsClient("k", server.URL, time.Second))

	items, err := r.RecentNews(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, types.SentimentNeutral, items[0].Sentiment)
}

func TestRecentNewsEmptyIsValid(t *testing.T) {
	server := newsServer(t, `{"articles": []}`, http.StatusOK)
	defer server.Close()

	r := NewResearcher(&fakeLLM{}, NewNewsClient("k", server.URL, time.Second))
	items, err := r.RecentNews(context.Background(), "Acme")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRecentNewsServerErrorIsTransient(t *testing.T) {
	server := newsServer(t, ``, http.StatusServiceUnavailable)
	defer server.Close()

	r := NewResearcher(&fakeLLM{}, NewNewsClient("k", server.URL, time.Second))
	_, err := r.RecentNews(context.Background(), "Acme")
	require.Error(t, err)
	assert.True(t, retry.IsTransient(err))
}

func TestRecentNewsAuthErrorIsPermanent(t *testing.T) {
	server := newsServer(t, ``, http.StatusUnauthorized)
	defer server.Close()

	r := NewResearcher(&fakeLLM{}, NewNewsClient("k", server.URL, time.Second))
	_, err := r.RecentNews(context.Background(), "Acme")
	require.Error(t, err)
	assert.False(t, retry.IsTransient(err))
}
