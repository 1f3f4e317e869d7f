package types

import (
	"fmt"
	"strings"
)

// JobStatus is the terminal verdict for one processed job.
type JobStatus string

// Job verdicts recorded in a RunReport.
const (
	JobSucceeded JobStatus = "succeeded"
	JobSkipped   JobStatus = "skipped"
	JobFailed    JobStatus = "failed"
)

// JobOutcome records the verdict for one job id, with a reason for skipped and
// failed jobs.
type JobOutcome struct {
	JobID  string    `json:"job_id"`
	Status JobStatus `json:"status"`
	Reason string    `json:"reason,omitempty"`
}

// RunReport aggregates per-job outcomes for one pipeline run. It is appended
// to sequentially by the orchestrator and is the only state shared across
// jobs.
type RunReport struct {
	Role     string       `json:"role"`
	Location string       `json:"location"`
	Outcomes []JobOutcome `json:"outcomes"`
}

// NewRunReport creates an empty report for a run.
func NewRunReport(role, location string) *RunReport {
	return &RunReport{Role: role, Location: location, Outcomes: []JobOutcome{}}
}

// Succeeded records a successful job.
func (r *RunReport) Succeeded(jobID string) {
	r.Outcomes = append(r.Outcomes, JobOutcome{JobID: jobID, Status: JobSucceeded})
}

// Skipped records a skipped job with a reason.
func (r *RunReport) Skipped(jobID, reason string) {
	r.Outcomes = append(r.Outcomes, JobOutcome{JobID: jobID, Status: JobSkipped, Reason: reason})
}

// Failed records a failed job with a reason.
func (r *RunReport) Failed(jobID, reason string) {
	r.Outcomes = append(r.Outcomes, JobOutcome{JobID: jobID, Status: JobFailed, Reason: reason})
}

// Count returns the number of outcomes with the given status.
func (r *RunReport) Count(status JobStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Summary returns a human-readable end-of-run summary: aggregate counts plus
// the reason string for every skipped or failed job.
func (r *RunReport) Summary() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed %d jobs: %d succeeded, %d skipped, %d failed\n",
		len(r.Outcomes), r.Count(JobSucceeded), r.Count(JobSkipped), r.Count(JobFailed)))
	for _, o := range r.Outcomes {
		if o.Status == JobSucceeded {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s: %s (%s)\n", o.JobID, o.Status, o.Reason))
	}
	return sb.String()
}
