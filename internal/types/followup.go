package types

// FollowupStatus tracks the lifecycle of one scheduled follow-up entry.
// Status transitions after scheduling happen outside this system; they are
// modeled for completeness only.
type FollowupStatus string

// Follow-up entry statuses.
const (
	FollowupScheduled FollowupStatus = "scheduled"
	FollowupSent      FollowupStatus = "sent"
	FollowupCancelled FollowupStatus = "cancelled"
)

// FollowupEntry is one scheduled follow-up touch on a specific channel.
type FollowupEntry struct {
	Date    string         `json:"date"` // YYYY-MM-DD
	Channel Channel        `json:"channel"`
	Status  FollowupStatus `json:"status"`
}

// FollowupRecord is the follow-up schedule created after a successful send.
// At most one record is created per job per run; duplicate scheduling across
// runs is not deduplicated.
type FollowupRecord struct {
	JobID          string          `json:"job_id"`
	RecruiterEmail string          `json:"recruiter_email,omitempty"`
	Entries        []FollowupEntry `json:"followups"`
}
