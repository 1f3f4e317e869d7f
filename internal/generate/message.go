package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/outreach-agent/internal/llm"
	"github.com/jonathan/outreach-agent/internal/prompts"
	"github.com/jonathan/outreach-agent/internal/schemas"
	"github.com/jonathan/outreach-agent/internal/types"
)

// GenerateMessage synthesizes outreach content for one channel. The sentinel
// contact forces role-neutral phrasing: the model is instructed to greet the
// hiring team without a name rather than fabricating one. Output is raw,
// pre-validation; the pipeline applies the message shape gate before any
// send.
func (g *Generator) GenerateMessage(ctx context.Context, detail *types.JobDetail, profile *types.CandidateProfile, research *types.CompanyResearch, channel types.Channel) (*types.OutreachMessage, error) {
	var key string
	switch channel {
	case types.ChannelEmail:
		key = "cold-email"
	case types.ChannelLinkedIn:
		key = "linkedin-message"
	default:
		return nil, fmt.Errorf("unsupported channel %q", channel)
	}

	contactLine := detail.Recruiter.Name
	if detail.Recruiter.Title != "" {
		contactLine += ", " + detail.Recruiter.Title
	}
	greetingRule := fmt.Sprintf("Greet the contact by name (%s)", detail.Recruiter.Name)
	if detail.Recruiter.IsSentinel() {
		greetingRule = "No contact name is known: use a role-neutral greeting such as \"Hello Hiring Team\" and NEVER invent a name"
	}

	template := prompts.MustGet("outreach.json", key)
	prompt := prompts.Format(template, map[string]string{
		"Headline":     profile.Headline,
		"Skills":       topSkills(profile.Skills, 5),
		"RecentRole":   recentRole(profile.Experience),
		"Education":    education(profile.Education),
		"Position":     detail.Position,
		"Company":      detail.CompanyName,
		"ContactLine":  contactLine,
		"CompanyInfo":  research.CompanyInfo,
		"GreetingRule": greetingRule,
	})

	raw, err := g.llm.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: fmt.Sprintf("%s message generation", channel), Cause: err}
	}

	if err := schemas.Validate(schemas.OutreachMessageSchema, raw); err != nil {
		return nil, &ParseError{Message: "message does not match schema", Cause: err}
	}

	var msg types.OutreachMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, &ParseError{Message: "failed to parse message JSON", Cause: err}
	}
	return &msg, nil
}

func topSkills(skills []string, n int) string {
	if len(skills) > n {
		skills = skills[:n]
	}
	return strings.Join(skills, ", ")
}

func recentRole(experience []types.ExperienceEntry) string {
	if len(experience) == 0 {
		return "Relevant professional experience"
	}
	e := experience[0]
	return fmt.Sprintf("%s at %s", e.Title, e.Company)
}

func education(entries []types.EducationEntry) string {
	if len(entries) == 0 {
		return "Relevant education"
	}
	e := entries[0]
	return fmt.Sprintf("%s from %s", e.Degree, e.School)
}
