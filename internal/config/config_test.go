package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"gemini_api_key": "g-key",
		"scrape_api_key": "s-key",
		"smtp_port": 587,
		"verbose": true
	}`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.GeminiAPIKey)
	assert.Equal(t, "s-key", cfg.ScrapeAPIKey)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.True(t, cfg.Verbose)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestFillFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-gemini")
	t.Setenv("SCRAPINGDOG_API_KEY", "env-scrape")
	t.Setenv("HUNTER_API_KEY", "env-hunter")

	cfg := &Config{GeminiAPIKey: "explicit"}
	cfg.FillFromEnv()

	// Explicit values win over the environment.
	assert.Equal(t, "explicit", cfg.GeminiAPIKey)
	assert.Equal(t, "env-scrape", cfg.ScrapeAPIKey)
	assert.Equal(t, "env-hunter", cfg.HunterAPIKey)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "https://api.scrapingdog.com/linkedinjobs", cfg.ScrapeBaseURL)
	assert.Equal(t, "https://api.hunter.io/v2", cfg.HunterBaseURL)
	assert.Equal(t, "https://newsapi.org/v2", cfg.NewsBaseURL)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RateLimitDelay)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{SMTPPort: 587, MaxRetries: 5}
	cfg.ApplyDefaults()

	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		GeminiAPIKey:     "g",
		ScrapeAPIKey:     "s",
		NewsAPIKey:       "n",
		EmailAddress:     "me@example.com",
		EmailPassword:    "secret",
		SheetURL:         "https://sheets/rows",
		FollowupSheetURL: "https://sheets/followups",
	}
	assert.NoError(t, cfg.Validate())

	cfg.NewsAPIKey = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "news_api_key")
}

func TestGeoID(t *testing.T) {
	id, ok := GeoID("Toronto, ON")
	assert.True(t, ok)
	assert.Equal(t, "102264111", id)

	_, ok = GeoID("Atlantis City")
	assert.False(t, ok)
}

func TestLocationNamesSorted(t *testing.T) {
	names := LocationNames()
	require.Len(t, names, len(Locations))
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "US")
}
