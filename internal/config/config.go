// Package config provides configuration loading and validation for the CLI.
// A Config is constructed once at process start and passed by reference into
// each adapter constructor; business logic never reads the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Config represents the application configuration. Values can be loaded from
// a JSON file, overridden by CLI flags, and filled from environment variables.
type Config struct {
	// Generation
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`

	// Job listing/detail service
	ScrapeAPIKey  string `json:"scrape_api_key,omitempty"`
	ScrapeBaseURL string `json:"scrape_base_url,omitempty"`

	// Contact enrichment
	SearchAPIKey  string `json:"search_api_key,omitempty"`  // web search for profile discovery
	SearchCX      string `json:"search_cx,omitempty"`       // custom search engine id
	HunterAPIKey  string `json:"hunter_api_key,omitempty"`  // email discovery
	HunterBaseURL string `json:"hunter_base_url,omitempty"` // override for tests

	// Company research
	NewsAPIKey  string `json:"news_api_key,omitempty"`
	NewsBaseURL string `json:"news_base_url,omitempty"`

	// Delivery
	EmailAddress    string `json:"email_address,omitempty"`
	EmailPassword   string `json:"email_password,omitempty"`
	SMTPHost        string `json:"smtp_host,omitempty"`
	SMTPPort        int    `json:"smtp_port,omitempty"`
	LinkedInBaseURL string `json:"linkedin_base_url,omitempty"`
	LinkedInToken   string `json:"linkedin_token,omitempty"`

	// Persistence
	SheetURL         string `json:"sheet_url,omitempty"`          // tabular store endpoint for job rows
	FollowupSheetURL string `json:"followup_sheet_url,omitempty"` // tabular store endpoint for follow-up rows
	DatabaseURL      string `json:"database_url,omitempty"`       // optional Postgres artifact store

	// Pipeline behavior
	MaxRetries     int           `json:"max_retries,omitempty"`
	RateLimitDelay time.Duration `json:"-"` // fixed inter-job pause
	LookupTimeout  time.Duration `json:"-"` // short timeout for lookups
	GenTimeout     time.Duration `json:"-"` // longer timeout for generation calls
	Verbose        bool          `json:"verbose,omitempty"`
	DryRun         bool          `json:"dry_run,omitempty"`
}

// Locations maps the supported location names to the listing service's geo
// identifiers. The CLI rejects locations outside this set.
var Locations = map[string]string{
	"US":                     "103644278",
	"Canada":                 "101174742",
	"Toronto, ON":            "102264111",
	"Vancouver, BC":          "101997229",
	"Montreal, QC":           "104057199",
	"San Francisco Bay Area": "90000084",
	"New York City":          "102571732",
	"London, UK":             "102257491",
	"Bangalore, India":       "102713980",
	"Singapore":              "106693272",
}

// LocationNames returns the supported location names in sorted order, for
// help text and error messages.
func LocationNames() []string {
	names := make([]string, 0, len(Locations))
	for name := range Locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GeoID resolves a supported location name to its geo identifier.
func GeoID(location string) (string, bool) {
	id, ok := Locations[location]
	return id, ok
}

// Load reads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FillFromEnv fills empty credential fields from environment variables. This
// is the single place environment lookups happen.
func (c *Config) FillFromEnv() {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	fill(&c.GeminiAPIKey, "GEMINI_API_KEY")
	fill(&c.ScrapeAPIKey, "SCRAPINGDOG_API_KEY")
	fill(&c.SearchAPIKey, "GOOGLE_SEARCH_API_KEY")
	fill(&c.SearchCX, "GOOGLE_SEARCH_CX")
	fill(&c.HunterAPIKey, "HUNTER_API_KEY")
	fill(&c.NewsAPIKey, "NEWS_API_KEY")
	fill(&c.EmailAddress, "EMAIL_ADDRESS")
	fill(&c.EmailPassword, "EMAIL_PASSWORD")
	fill(&c.LinkedInToken, "LINKEDIN_TOKEN")
	fill(&c.SheetURL, "SHEET_URL")
	fill(&c.FollowupSheetURL, "FOLLOWUP_SHEET_URL")
	fill(&c.DatabaseURL, "DATABASE_URL")
}

// ApplyDefaults fills zero-valued behavioral settings with their defaults.
func (c *Config) ApplyDefaults() {
	if c.ScrapeBaseURL == "" {
		c.ScrapeBaseURL = "https://api.scrapingdog.com/linkedinjobs"
	}
	if c.HunterBaseURL == "" {
		c.HunterBaseURL = "https://api.hunter.io/v2"
	}
	if c.NewsBaseURL == "" {
		c.NewsBaseURL = "https://newsapi.org/v2"
	}
	if c.SMTPHost == "" {
		c.SMTPHost = "smtp.gmail.com"
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = 465
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.RateLimitDelay == 0 {
		c.RateLimitDelay = 2 * time.Second
	}
	if c.LookupTimeout == 0 {
		c.LookupTimeout = 15 * time.Second
	}
	if c.GenTimeout == 0 {
		c.GenTimeout = 90 * time.Second
	}
}

// Validate checks that the configuration required to run a pipeline is
// present. The database URL is optional; everything else that backs a
// pipeline stage is required.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"gemini_api_key", c.GeminiAPIKey},
		{"scrape_api_key", c.ScrapeAPIKey},
		{"news_api_key", c.NewsAPIKey},
		{"email_address", c.EmailAddress},
		{"email_password", c.EmailPassword},
		{"sheet_url", c.SheetURL},
		{"followup_sheet_url", c.FollowupSheetURL},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}
	return nil
}
