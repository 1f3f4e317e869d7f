// Package validation provides pure shape checks for the records that flow
// between pipeline stages. Validators either return nil or a typed
// ValidationError naming the offending field; they never coerce, never touch
// the network, and act as the hard gate before any outbound side effect.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/jonathan/outreach-agent/internal/types"
)

// MinDescriptionLen is the minimum usable job description length.
const MinDescriptionLen = 50

// MaxJobsPerRun bounds the max_jobs run parameter.
const MaxJobsPerRun = 50

var (
	structValidator = playground.New(playground.WithRequiredStructEnabled())

	emailPattern      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	profileURLPattern = regexp.MustCompile(`^https?://(?:www\.)?linkedin\.com/in/[\w\-]+/?$`)
)

// ValidateJobDetail checks that a fetched job detail carries the fields the
// rest of the pipeline depends on.
func ValidateJobDetail(detail *types.JobDetail) error {
	if detail == nil {
		return &ValidationError{Message: "job detail is nil"}
	}
	required := []struct {
		field string
		value string
	}{
		{"job_id", detail.JobID},
		{"job_position", detail.Position},
		{"company_name", detail.CompanyName},
		{"job_location", detail.Location},
		{"job_description", detail.Description},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Message: "missing required field"}
		}
	}
	if len(detail.Description) < MinDescriptionLen {
		return &ValidationError{Field: "job_description", Message: "job description too short"}
	}
	return nil
}

// ValidateProfile checks a generated candidate profile against the profile
// shape rules: headline and summary present, at least 3 skills, at least one
// experience and one education entry.
func ValidateProfile(profile *types.CandidateProfile) error {
	if profile == nil {
		return &ValidationError{Message: "profile is nil"}
	}
	if err := structValidator.Struct(profile); err != nil {
		return mapStructErrors("profile", err)
	}
	return nil
}

// ValidateMessage checks generated outreach content before it may reach a
// delivery adapter: all six parts present, subject at least 5 characters,
// body at least 50.
func ValidateMessage(msg *types.OutreachMessage) error {
	if msg == nil {
		return &ValidationError{Message: "message is nil"}
	}
	if err := structValidator.Struct(msg); err != nil {
		return mapStructErrors("message", err)
	}
	return nil
}

// ValidateResearch checks that company research has the aggregate shape the
// generators expect. RecentNews must be a sequence, possibly empty, never nil.
func ValidateResearch(research *types.CompanyResearch) error {
	if research == nil {
		return &ValidationError{Message: "company research is nil"}
	}
	if research.RecentNews == nil {
		return &ValidationError{Field: "recent_news", Message: "recent news must be a sequence, not absent"}
	}
	return nil
}

// ValidateEmail checks the standard local@domain address shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: fmt.Sprintf("invalid email format: %s", email)}
	}
	return nil
}

// ValidateProfileURL checks the professional-network profile path shape.
func ValidateProfileURL(url string) error {
	if !profileURLPattern.MatchString(url) {
		return &ValidationError{Field: "profile_url", Message: fmt.Sprintf("invalid profile URL format: %s", url)}
	}
	return nil
}

// ValidateRunInput checks the pipeline run parameters before any adapter call.
func ValidateRunInput(role, location string, maxJobs int) error {
	if len(strings.TrimSpace(role)) < 3 {
		return &ValidationError{Field: "role", Message: "role must be at least 3 characters"}
	}
	if len(strings.TrimSpace(location)) < 3 {
		return &ValidationError{Field: "location", Message: "location must be at least 3 characters"}
	}
	if maxJobs < 1 || maxJobs > MaxJobsPerRun {
		return &ValidationError{Field: "max_jobs", Message: fmt.Sprintf("max_jobs must be between 1 and %d", MaxJobsPerRun)}
	}
	return nil
}

// mapStructErrors converts validator/v10 struct errors into the pipeline's
// typed ValidationError, reporting the first violation.
func mapStructErrors(entity string, err error) error {
	var fieldErrs playground.ValidationErrors
	if ok := asValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return &ValidationError{Field: field, Message: "missing required field"}
		case "min":
			return &ValidationError{Field: field, Message: fmt.Sprintf("must have at least %s", fe.Param())}
		default:
			return &ValidationError{Field: field, Message: fmt.Sprintf("failed %s constraint", fe.Tag())}
		}
	}
	return &ValidationError{Field: entity, Message: err.Error()}
}

func asValidationErrors(err error, target *playground.ValidationErrors) bool {
	ve, ok := err.(playground.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}
