// Package listings wraps the job-listing scraping service: searching postings
// by role and geo id, and fetching the detail record for one posting.
package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/outreach-agent/internal/config"
	"github.com/jonathan/outreach-agent/internal/retry"
	"github.com/jonathan/outreach-agent/internal/types"
)

// Client talks to the listing service's REST API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
}

// Error represents a listing service failure.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("listings %s: %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("listings %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewClient creates a listing client from the application config.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.LookupTimeout},
		apiKey:     cfg.ScrapeAPIKey,
		baseURL:    strings.TrimSuffix(cfg.ScrapeBaseURL, "/"),
	}
}

// detailWire is the listing service's detail payload shape.
type detailWire struct {
	JobID          string `json:"job_id"`
	Position       string `json:"job_position"`
	CompanyName    string `json:"company_name"`
	Location       string `json:"job_location"`
	Description    string `json:"job_description"`
	ApplyLink      string `json:"job_apply_link"`
	SeniorityLevel string `json:"Seniority_level"`
	EmploymentType string `json:"Employment_type"`
	JobFunction    string `json:"Job_function"`
	Industries     string `json:"Industries"`
	Recruiters     []struct {
		Name       string `json:"recruiter_name"`
		Title      string `json:"recruiter_title"`
		ProfileURL string `json:"recruiter_profile_url"`
	} `json:"recruiter_details"`
}

// Search returns the listings for a role in a geo region. An empty result is
// valid; entries without a position or company are filtered out as malformed.
// Entries without a job id are kept so the orchestrator can record them.
func (c *Client) Search(ctx context.Context, role, geoID string) ([]types.JobListing, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("field", role)
	params.Set("geoid", geoID)
	params.Set("page", "1")

	body, err := c.get(ctx, "search", c.baseURL+"/?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var wire []struct {
		JobID       string `json:"job_id"`
		Position    string `json:"job_position"`
		CompanyName string `json:"company_name"`
		Location    string `json:"job_location"`
		ApplyLink   string `json:"job_link"`
	}
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &Error{Op: "search", Message: "unexpected response format", Cause: err}
	}

	result := make([]types.JobListing, 0, len(wire))
	for _, w := range wire {
		if w.Position == "" || w.CompanyName == "" {
			continue
		}
		result = append(result, types.JobListing{
			JobID:       w.JobID,
			Position:    w.Position,
			CompanyName: w.CompanyName,
			Location:    w.Location,
			ApplyLink:   w.ApplyLink,
		})
	}
	return result, nil
}

// Fetch returns the detail record for one posting, or (nil, nil) when the
// service has no usable record for the id. The service replies with either a
// single-element list or a bare object; both shapes are accepted.
func (c *Client) Fetch(ctx context.Context, jobID string) (*types.JobDetail, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("job_id", jobID)

	body, err := c.get(ctx, "fetch", c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	wire, err := decodeDetail(body)
	if err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, nil
	}

	detail := &types.JobDetail{
		JobListing: types.JobListing{
			JobID:       firstNonEmpty(wire.JobID, jobID),
			Position:    wire.Position,
			CompanyName: wire.CompanyName,
			Location:    wire.Location,
			Description: cleanDescription(wire.Description),
			ApplyLink:   wire.ApplyLink,
		},
		SeniorityLevel: wire.SeniorityLevel,
		EmploymentType: wire.EmploymentType,
		JobFunction:    wire.JobFunction,
		Industries:     splitIndustries(wire.Industries),
	}
	if len(wire.Recruiters) > 0 {
		r := wire.Recruiters[0]
		detail.Lead = types.RecruiterLead{
			Name:       r.Name,
			Title:      r.Title,
			ProfileURL: r.ProfileURL,
		}
	}
	if detail.Position == "" && detail.Description == "" {
		// Service answered but carried nothing usable.
		return nil, nil
	}
	return detail, nil
}

// decodeDetail accepts both a list-wrapped and a bare-object detail payload.
func decodeDetail(body []byte) (*detailWire, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" || trimmed == "[]" || trimmed == "{}" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var list []detailWire
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, &Error{Op: "fetch", Message: "unexpected response format", Cause: err}
		}
		if len(list) == 0 {
			return nil, nil
		}
		return &list[0], nil
	}

	var single detailWire
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, &Error{Op: "fetch", Message: "unexpected response format", Cause: err}
	}
	return &single, nil
}

// get executes a GET request and classifies retryable failures as transient.
func (c *Client) get(ctx context.Context, op, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Op: op, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, retry.Transient(&Error{Op: op, Message: "request failed", Cause: err})
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retry.Transient(&Error{Op: op, Message: "failed to read response body", Cause: err})
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, retry.Transient(&Error{Op: op, Message: fmt.Sprintf("status %d", resp.StatusCode)})
	default:
		return nil, &Error{Op: op, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitIndustries(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
