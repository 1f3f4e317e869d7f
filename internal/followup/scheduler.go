// Package followup schedules post-outreach follow-up touches. Scheduling is
// best-effort: a failed export never fails the job that triggered it.
package followup

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/outreach-agent/internal/types"
)

// Offsets from the initial outreach to each follow-up touch.
const (
	emailOffset    = 5 * 24 * time.Hour
	linkedinOffset = 10 * 24 * time.Hour
)

// RowStore persists one follow-up entry as a sheet row.
type RowStore interface {
	AppendRow(ctx context.Context, endpoint string, record map[string]any) error
}

// Scheduler builds and exports the follow-up schedule for a job after a
// successful send.
type Scheduler struct {
	store    RowStore
	endpoint string
	now      func() time.Time
	warn     func(format string, args ...any)
}

// NewScheduler creates a follow-up scheduler writing to the given sheet
// endpoint.
func NewScheduler(store RowStore, endpoint string) *Scheduler {
	return &Scheduler{
		store:    store,
		endpoint: endpoint,
		now:      time.Now,
		warn: func(format string, args ...any) {
			fmt.Printf("Warning: "+format+"\n", args...)
		},
	}
}

// Schedule creates the follow-up record for detail: an email touch five days
// out and a network touch ten days out, both "scheduled". Each entry is
// exported as its own row; entries that fail to export are reported and
// skipped, and the returned record reflects only what was persisted.
func (s *Scheduler) Schedule(ctx context.Context, detail *types.JobDetail) (*types.FollowupRecord, error) {
	if s.store == nil || s.endpoint == "" {
		return nil, fmt.Errorf("follow-up export is not configured")
	}

	now := s.now()
	planned := []types.FollowupEntry{
		{Date: now.Add(emailOffset).Format("2006-01-02"), Channel: types.ChannelEmail, Status: types.FollowupScheduled},
		{Date: now.Add(linkedinOffset).Format("2006-01-02"), Channel: types.ChannelLinkedIn, Status: types.FollowupScheduled},
	}

	record := &types.FollowupRecord{JobID: detail.JobID}
	if detail.Recruiter.HasEmail() {
		record.RecruiterEmail = *detail.Recruiter.Email
	}

	for _, entry := range planned {
		row := map[string]any{
			"jobId":    record.JobID,
			"company":  detail.CompanyName,
			"position": detail.Position,
			"contact":  detail.Recruiter.Name,
			"email":    record.RecruiterEmail,
			"date":     entry.Date,
			"channel":  string(entry.Channel),
			"status":   string(entry.Status),
		}
		if err := s.store.AppendRow(ctx, s.endpoint, row); err != nil {
			s.warn("could not schedule %s follow-up for job %s: %v", entry.Channel, record.JobID, err)
			continue
		}
		record.Entries = append(record.Entries, entry)
	}

	if len(record.Entries) == 0 {
		return nil, fmt.Errorf("no follow-up entries were persisted for job %s", record.JobID)
	}
	return record, nil
}
