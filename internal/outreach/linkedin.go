package outreach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/outreach-agent/internal/retry"
	"github.com/jonathan/outreach-agent/internal/types"
)

// LinkedInMessenger delivers direct messages through a professional-network
// messaging API. The recipient is addressed by profile URL; the slug is
// extracted from the /in/ path segment.
type LinkedInMessenger struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewLinkedInMessenger creates a network messenger.
func NewLinkedInMessenger(baseURL, token string, timeout time.Duration) *LinkedInMessenger {
	return &LinkedInMessenger{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
	}
}

// Send delivers msg to the profile at profileURL. The subject and the
// formatted parts travel as one message body; the network has no separate
// subject field.
func (m *LinkedInMessenger) Send(ctx context.Context, profileURL string, msg *types.OutreachMessage) error {
	slug := profileSlug(profileURL)
	if slug == "" {
		return &SendError{Channel: types.ChannelLinkedIn, Message: fmt.Sprintf("no profile slug in %q", profileURL)}
	}

	payload, err := json.Marshal(map[string]string{
		"recipient": slug,
		"message":   FormatBody(msg),
	})
	if err != nil {
		return &SendError{Channel: types.ChannelLinkedIn, Message: "payload encoding failed", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/messages", bytes.NewReader(payload))
	if err != nil {
		return &SendError{Channel: types.ChannelLinkedIn, Message: "request creation failed", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.token)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return retry.Transient(&SendError{Channel: types.ChannelLinkedIn, Message: "request failed", Cause: err})
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return retry.Transient(&SendError{Channel: types.ChannelLinkedIn, Message: fmt.Sprintf("status %d", resp.StatusCode)})
	default:
		return &SendError{Channel: types.ChannelLinkedIn, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
}

// profileSlug extracts the member identifier from a profile URL such as
// https://www.linkedin.com/in/jane-doe/. Returns empty when the URL carries
// no /in/ segment.
func profileSlug(profileURL string) string {
	idx := strings.Index(profileURL, "/in/")
	if idx < 0 {
		return ""
	}
	slug := profileURL[idx+len("/in/"):]
	if cut := strings.IndexAny(slug, "/?#"); cut >= 0 {
		slug = slug[:cut]
	}
	return strings.TrimSpace(slug)
}
