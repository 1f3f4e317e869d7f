package generate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-agent/internal/llm"
	"github.com/jonathan/outreach-agent/internal/types"
)

const profileJSON = `{
	"headline": "Senior Backend Engineer",
	"summary": "Seven years building payment infrastructure.",
	"skills": ["Go", "PostgreSQL", "Kubernetes", "Kafka"],
	"experience": [{"title": "Staff Engineer", "company": "PayCo", "start_year": 2021, "end_year": 2026}],
	"education": [{"school": "UBC", "degree": "BSc Computer Science", "graduation_year": 2019}]
}`

const messageJSON = `{
	"subject": "Staff engineer interested in your backend role",
	"greeting": "Hi Jane,",
	"opening": "Your posting caught my eye.",
	"body": "I spent the last five years building exactly the kind of payment systems Acme is scaling now.",
	"closing": "Could we find 20 minutes this week?",
	"signature": "Best,\nAlex"
}`

// scriptedLLM returns canned JSON keyed by a substring of the prompt.
type scriptedLLM struct {
	responses map[string]string
	err       error
	prompts   []string
}

func (s *scriptedLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return s.GenerateJSON(ctx, prompt, tier)
}

func (s *scriptedLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	for key, response := range s.responses {
		if strings.Contains(prompt, key) {
			return response, nil
		}
	}
	return "", errors.New("no scripted response for prompt")
}

func (s *scriptedLLM) Close() error { return nil }

func testDetail() *types.JobDetail {
	return &types.JobDetail{
		JobListing: types.JobListing{
			JobID:       "42",
			Position:    "Senior Backend Engineer",
			CompanyName: "Acme",
			Location:    "Toronto, ON",
			Description: strings.Repeat("Build payment rails. ", 5),
		},
		Recruiter: types.RecruiterContact{Name: "Jane Doe", Title: "Technical Recruiter"},
	}
}

func testResearch() *types.CompanyResearch {
	return &types.CompanyResearch{
		CompanyInfo:  "Acme is a fintech scaling payment rails.",
		RoleAnalysis: "Needs Go and distributed systems depth.",
		RecentNews: []types.NewsItem{
			{Title: "Acme raises Series C", Sentiment: types.SentimentPositive},
			{Title: "Acme misses targets", Sentiment: types.SentimentNegative},
			{Title: "Acme opens Toronto office", Sentiment: types.SentimentPositive},
		},
	}
}

func fixedGenerator(client llm.Client) *Generator {
	g := NewGenerator(client)
	g.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerateProfile(t *testing.T) {
	client := &scriptedLLM{responses: map[string]string{
		"creating realistic candidate profiles": profileJSON,
		"culture description":                   `["Ships fast", "Values ownership", "Customer obsessed"]`,
	}}
	g := fixedGenerator(client)

	profile, err := g.GenerateProfile(context.Background(), testDetail(), testResearch())
	require.NoError(t, err)

	assert.Equal(t, "Senior Backend Engineer", profile.Headline)
	assert.Len(t, profile.Skills, 4)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, "Staff Engineer", profile.Experience[0].Title)

	// Positive news titles become interests; the negative one is skipped.
	assert.Equal(t, []string{"Acme raises Series C", "Acme opens Toronto office"}, profile.Interests)
	assert.Equal(t, []string{"Ships fast", "Values ownership", "Customer obsessed"}, profile.CulturalAlignment)

	// Prompt carries the pinned date and the job context.
	require.NotEmpty(t, client.prompts)
	assert.Contains(t, client.prompts[0], "August 30, 2026")
	assert.Contains(t, client.prompts[0], "Acme")
}

func TestGenerateProfileSchemaGate(t *testing.T) {
	client := &scriptedLLM{responses: map[string]string{
		"creating realistic candidate profiles": `{"headline": "h", "summary": "s", "skills": ["Go"]}`,
	}}
	g := fixedGenerator(client)

	_, err := g.GenerateProfile(context.Background(), testDetail(), testResearch())
	require.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestGenerateProfileAPIError(t *testing.T) {
	g := fixedGenerator(&scriptedLLM{err: errors.New("quota exceeded")})

	_, err := g.GenerateProfile(context.Background(), testDetail(), testResearch())
	require.Error(t, err)

	var aerr *APICallError
	assert.ErrorAs(t, err, &aerr)
}

func TestGenerateProfileEnrichmentIsBestEffort(t *testing.T) {
	// The alignment call answers garbage; the profile must still come back.
	client := &scriptedLLM{responses: map[string]string{
		"creating realistic candidate profiles": profileJSON,
		"culture description":                   `not json at all`,
	}}
	g := fixedGenerator(client)

	profile, err := g.GenerateProfile(context.Background(), testDetail(), testResearch())
	require.NoError(t, err)
	assert.Empty(t, profile.CulturalAlignment)
}

func TestGenerateMessageEmail(t *testing.T) {
	client := &scriptedLLM{responses: map[string]string{"cold email copywriter": messageJSON}}
	g := fixedGenerator(client)

	msg, err := g.GenerateMessage(context.Background(), testDetail(), validProfile(), testResearch(), types.ChannelEmail)
	require.NoError(t, err)
	assert.Equal(t, "Hi Jane,", msg.Greeting)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Jane Doe, Technical Recruiter")
	assert.Contains(t, client.prompts[0], "Greet the contact by name (Jane Doe)")
}

func TestGenerateMessageLinkedIn(t *testing.T) {
	client := &scriptedLLM{responses: map[string]string{"professional-network direct message": messageJSON}}
	g := fixedGenerator(client)

	msg, err := g.GenerateMessage(context.Background(), testDetail(), validProfile(), testResearch(), types.ChannelLinkedIn)
	require.NoError(t, err)
	assert.NotEmpty(t, msg.Body)
}

func TestGenerateMessageSentinelGreetingRule(t *testing.T) {
	client := &scriptedLLM{responses: map[string]string{"cold email copywriter": messageJSON}}
	g := fixedGenerator(client)

	detail := testDetail()
	detail.Recruiter = types.SentinelContact()

	_, err := g.GenerateMessage(context.Background(), detail, validProfile(), testResearch(), types.ChannelEmail)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "NEVER invent a name")
	assert.NotContains(t, client.prompts[0], "Greet the contact by name")
}

func TestGenerateMessageSchemaGate(t *testing.T) {
	client := &scriptedLLM{responses: map[string]string{"cold email copywriter": `{"subject": "s"}`}}
	g := fixedGenerator(client)

	_, err := g.GenerateMessage(context.Background(), testDetail(), validProfile(), testResearch(), types.ChannelEmail)
	require.Error(t, err)

	var perr *ParseError
	assert.ErrorAs(t, err, &perr)
}

func TestGenerateMessageUnknownChannel(t *testing.T) {
	g := fixedGenerator(&scriptedLLM{})
	_, err := g.GenerateMessage(context.Background(), testDetail(), validProfile(), testResearch(), types.Channel("fax"))
	assert.Error(t, err)
}

func validProfile() *types.CandidateProfile {
	return &types.CandidateProfile{
		Headline:   "Senior Backend Engineer",
		Summary:    "Seven years building payment infrastructure.",
		Skills:     []string{"Go", "PostgreSQL", "Kubernetes", "Kafka", "gRPC", "Terraform"},
		Experience: []types.ExperienceEntry{{Title: "Staff Engineer", Company: "PayCo"}},
		Education:  []types.EducationEntry{{School: "UBC", Degree: "BSc Computer Science"}},
	}
}

func TestTopSkills(t *testing.T) {
	assert.Equal(t, "Go, SQL", topSkills([]string{"Go", "SQL"}, 5))
	assert.Equal(t, "a, b, c", topSkills([]string{"a", "b", "c", "d"}, 3))
	assert.Equal(t, "", topSkills(nil, 5))
}

func TestRecentRoleFallback(t *testing.T) {
	assert.Equal(t, "Staff Engineer at PayCo", recentRole([]types.ExperienceEntry{{Title: "Staff Engineer", Company: "PayCo"}}))
	assert.Equal(t, "Relevant professional experience", recentRole(nil))
}
