package types

// CandidateProfile is a synthetic applicant profile tailored to one job
// posting. Profiles are generated fresh per job and never reused, so two
// recruiters at the same company never receive identical-looking outreach.
type CandidateProfile struct {
	Headline   string            `json:"headline" validate:"required"`
	Summary    string            `json:"summary" validate:"required"`
	Skills     []string          `json:"skills" validate:"min=3,dive,required"`
	Experience []ExperienceEntry `json:"experience" validate:"min=1"`
	Education  []EducationEntry  `json:"education" validate:"min=1"`

	// Optional enrichment derived from company research.
	Interests         []string `json:"interests,omitempty"`
	CulturalAlignment []string `json:"cultural_alignment,omitempty"`
}

// ExperienceEntry is one prior role in a candidate profile.
type ExperienceEntry struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	StartYear int    `json:"start_year,omitempty"`
	EndYear   int    `json:"end_year,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// EducationEntry is one education record in a candidate profile.
type EducationEntry struct {
	School         string   `json:"school"`
	Degree         string   `json:"degree"`
	GraduationYear int      `json:"graduation_year,omitempty"`
	GPA            string   `json:"gpa,omitempty"`
	Clubs          []string `json:"clubs,omitempty"`
}
