// Package generate synthesizes candidate profiles and outreach messages with
// an LLM. Generated text is treated as untrusted input: every response must
// pass a JSON Schema gate before it is unmarshalled, and is never evaluated.
package generate

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonathan/outreach-agent/internal/llm"
	"github.com/jonathan/outreach-agent/internal/prompts"
	"github.com/jonathan/outreach-agent/internal/schemas"
	"github.com/jonathan/outreach-agent/internal/types"
)

// Generator produces profiles and messages. A fresh profile is generated per
// job; nothing is cached or reused across jobs.
type Generator struct {
	llm llm.Client
	now func() time.Time
}

// NewGenerator creates a Generator backed by the given LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{llm: client, now: time.Now}
}

// GenerateProfile synthesizes a candidate profile tailored to the job and the
// company research. The raw response is schema-validated before unmarshal;
// downstream shape validation remains the pipeline's gate.
func (g *Generator) GenerateProfile(ctx context.Context, detail *types.JobDetail, research *types.CompanyResearch) (*types.CandidateProfile, error) {
	template := prompts.MustGet("profile.json", "generate-profile")
	prompt := prompts.Format(template, map[string]string{
		"Today":        g.now().Format("January 2, 2006"),
		"Position":     detail.Position,
		"Company":      detail.CompanyName,
		"Location":     detail.Location,
		"Description":  detail.Description,
		"CompanyInfo":  research.CompanyInfo,
		"RoleAnalysis": research.RoleAnalysis,
	})

	raw, err := g.llm.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "profile generation", Cause: err}
	}

	if err := schemas.Validate(schemas.CandidateProfileSchema, raw); err != nil {
		return nil, &ParseError{Message: "profile does not match schema", Cause: err}
	}

	var profile types.CandidateProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, &ParseError{Message: "failed to parse profile JSON", Cause: err}
	}

	g.enrichProfile(ctx, &profile, research)
	return &profile, nil
}

// enrichProfile adds company-specific touches to a generated profile:
// industry-awareness interests from positive recent news, and cultural
// alignment examples derived from the company briefing. Both are best-effort.
func (g *Generator) enrichProfile(ctx context.Context, profile *types.CandidateProfile, research *types.CompanyResearch) {
	positive := 0
	for _, item := range research.RecentNews {
		if item.Sentiment != types.SentimentPositive {
			continue
		}
		profile.Interests = append(profile.Interests, item.Title)
		positive++
		if positive == 2 {
			break
		}
	}

	if research.CompanyInfo == "" {
		return
	}
	template := prompts.MustGet("profile.json", "cultural-alignment")
	prompt := prompts.Format(template, map[string]string{"CompanyInfo": research.CompanyInfo})

	raw, err := g.llm.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return
	}
	var alignment []string
	if err := json.Unmarshal([]byte(raw), &alignment); err != nil {
		return
	}
	profile.CulturalAlignment = alignment
}
