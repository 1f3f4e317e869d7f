// Package enrich resolves the hiring contact for a job posting. Resolution is
// best-effort with deterministic fallback tiers: structured recruiter data
// from the posting, then a web search for the contact's profile, then an
// email-discovery lookup, and finally the sentinel "Hiring Manager" contact.
// Resolution never fails the pipeline.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/outreach-agent/internal/types"
	"github.com/jonathan/outreach-agent/internal/validation"
)

// ProfileSearcher finds a professional-network profile URL for a named person
// at a company.
type ProfileSearcher interface {
	FindProfileURL(ctx context.Context, name, company string) (string, error)
}

// EmailFinder discovers a work email address for a named person at a company.
type EmailFinder interface {
	FindEmail(ctx context.Context, name, company string) (string, error)
}

// Resolver combines the fallback tiers into one deterministic resolution
// step. Either collaborator may be nil, which disables that tier.
type Resolver struct {
	search ProfileSearcher
	email  EmailFinder
	warn   func(format string, args ...any)
}

// NewResolver creates a Resolver. Pass nil for unavailable collaborators.
func NewResolver(search ProfileSearcher, email EmailFinder) *Resolver {
	return &Resolver{
		search: search,
		email:  email,
		warn:   func(format string, args ...any) { fmt.Printf("Warning: "+format+"\n", args...) },
	}
}

// Resolve produces the best-effort contact for a posting. Tiers are applied
// in a fixed order; lookup failures degrade to the next tier and are logged,
// never propagated.
func (r *Resolver) Resolve(ctx context.Context, lead types.RecruiterLead, companyName string) types.RecruiterContact {
	contact := types.RecruiterContact{
		Name:  strings.TrimSpace(lead.Name),
		Title: strings.TrimSpace(lead.Title),
	}
	if contact.Name == "" {
		contact = types.SentinelContact()
	}

	profileURL := strings.TrimSpace(lead.ProfileURL)
	if profileURL == "" && !contact.IsSentinel() && companyName != "" && r.search != nil {
		found, err := r.search.FindProfileURL(ctx, contact.Name, companyName)
		switch {
		case err != nil:
			r.warn("profile search failed for %s at %s: %v", contact.Name, companyName, err)
		case found != "":
			profileURL = found
		}
	}
	if profileURL != "" {
		if err := validation.ValidateProfileURL(profileURL); err == nil {
			contact.ProfileURL = &profileURL
		}
	}

	// Email discovery needs a real first/last name to work with.
	if !contact.IsSentinel() && companyName != "" && r.email != nil && len(strings.Fields(contact.Name)) >= 2 {
		address, err := r.email.FindEmail(ctx, contact.Name, companyName)
		switch {
		case err != nil:
			r.warn("email discovery failed for %s at %s: %v", contact.Name, companyName, err)
		case address != "":
			if err := validation.ValidateEmail(address); err == nil {
				contact.Email = &address
			}
		}
	}

	return contact
}
