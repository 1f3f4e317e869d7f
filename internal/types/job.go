// Package types provides type definitions for structured data used throughout the outreach-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobListing represents one scraped job posting from the listing search.
// Listings are read-only once created and are discarded at the end of a run.
type JobListing struct {
	JobID       string `json:"job_id"`
	Position    string `json:"job_position"`
	CompanyName string `json:"company_name"`
	Location    string `json:"job_location"`
	Description string `json:"job_description,omitempty"`
	ApplyLink   string `json:"job_apply_link,omitempty"`
}

// JobDetail is an enriched JobListing with the extra fields the detail fetch
// provides, plus the resolved recruiter contact. Immutable once assembled.
type JobDetail struct {
	JobListing

	SeniorityLevel string   `json:"seniority_level,omitempty"`
	EmploymentType string   `json:"employment_type,omitempty"`
	JobFunction    string   `json:"job_function,omitempty"`
	Industries     []string `json:"industries,omitempty"`

	// Lead carries the raw recruiter hints from the detail payload; the
	// resolved contact lands in Recruiter during the enrichment stage.
	Lead      RecruiterLead    `json:"-"`
	Recruiter RecruiterContact `json:"recruiter"`
}

// RecruiterLead is the raw recruiter hint scraped from a job detail payload,
// before contact resolution. Any field may be empty.
type RecruiterLead struct {
	Name       string `json:"recruiter_name,omitempty"`
	Title      string `json:"recruiter_title,omitempty"`
	ProfileURL string `json:"recruiter_profile_url,omitempty"`
}

// SentinelContactName is the fallback recruiter name used when no specific
// contact is resolvable. Downstream personalization must use role-neutral
// phrasing when it sees this value.
const SentinelContactName = "Hiring Manager"

// SentinelContactTitle is the title paired with the sentinel contact name.
const SentinelContactTitle = "Talent Acquisition"

// RecruiterContact identifies the hiring contact for a posting. ProfileURL and
// Email are nil when unknown; absence is valid, not an error.
type RecruiterContact struct {
	Name       string  `json:"name"`
	Title      string  `json:"title,omitempty"`
	ProfileURL *string `json:"profile_url,omitempty"`
	Email      *string `json:"email,omitempty"`
}

// SentinelContact returns the fallback contact used when no recruiter data is
// available.
func SentinelContact() RecruiterContact {
	return RecruiterContact{
		Name:  SentinelContactName,
		Title: SentinelContactTitle,
	}
}

// IsSentinel reports whether the contact is the fallback "Hiring Manager"
// record rather than a resolved person.
func (c RecruiterContact) IsSentinel() bool {
	return c.Name == SentinelContactName
}

// HasEmail reports whether a deliverable email address was resolved.
func (c RecruiterContact) HasEmail() bool {
	return c.Email != nil && *c.Email != ""
}

// HasProfileURL reports whether a professional-network profile was resolved.
func (c RecruiterContact) HasProfileURL() bool {
	return c.ProfileURL != nil && *c.ProfileURL != ""
}
