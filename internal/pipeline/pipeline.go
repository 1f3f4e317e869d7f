// Package pipeline provides the high-level orchestration for an outreach run:
// search listings, then for each job fetch detail, resolve the hiring
// contact, research the company, generate a candidate profile and outreach
// messages, deliver on the available channels, and schedule follow-ups.
// Jobs are processed strictly sequentially; a failure in one job never stops
// the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jonathan/outreach-agent/internal/config"
	"github.com/jonathan/outreach-agent/internal/observability"
	"github.com/jonathan/outreach-agent/internal/retry"
	"github.com/jonathan/outreach-agent/internal/types"
	"github.com/jonathan/outreach-agent/internal/validation"
)

// Stage names used for progress output and artifact storage.
const (
	StageDetail   = "job_detail"
	StageContact  = "recruiter_contact"
	StageResearch = "company_research"
	StageProfile  = "candidate_profile"
	StageEmail    = "email_message"
	StageLinkedIn = "linkedin_message"
	StageFollowup = "followup_schedule"
)

// Skip and failure reasons recorded in the run report.
const (
	ReasonMissingID         = "missing id"
	ReasonNoDetail          = "no detail available"
	ReasonInvalidDetail     = "invalid job detail"
	ReasonDetailFetch       = "detail fetch failed"
	ReasonInvalidProfile    = "invalid profile"
	ReasonProfileGeneration = "profile generation failed"
	ReasonInvalidMessage    = "invalid message"
	ReasonMessageGeneration = "message generation failed"
	ReasonAllChannelsFailed = "all channels failed"
)

// JobSource searches listings and fetches job detail.
type JobSource interface {
	Search(ctx context.Context, role, geoID string) ([]types.JobListing, error)
	Fetch(ctx context.Context, jobID string) (*types.JobDetail, error)
}

// ContactResolver resolves the hiring contact for a posting.
type ContactResolver interface {
	Resolve(ctx context.Context, lead types.RecruiterLead, companyName string) types.RecruiterContact
}

// CompanyResearcher runs the three independent research lookups.
type CompanyResearcher interface {
	CompanyInfo(ctx context.Context, companyName string) (string, error)
	AnalyzeRole(ctx context.Context, description string) (string, error)
	RecentNews(ctx context.Context, companyName string) ([]types.NewsItem, error)
}

// ContentGenerator produces candidate profiles and outreach messages.
type ContentGenerator interface {
	GenerateProfile(ctx context.Context, detail *types.JobDetail, research *types.CompanyResearch) (*types.CandidateProfile, error)
	GenerateMessage(ctx context.Context, detail *types.JobDetail, profile *types.CandidateProfile, research *types.CompanyResearch, channel types.Channel) (*types.OutreachMessage, error)
}

// EmailSender delivers a message to an email address.
type EmailSender interface {
	Send(ctx context.Context, to string, msg *types.OutreachMessage) error
}

// NetworkMessenger delivers a message to a professional-network profile.
type NetworkMessenger interface {
	Send(ctx context.Context, profileURL string, msg *types.OutreachMessage) error
}

// RowStore appends rows to a spreadsheet-backed endpoint.
type RowStore interface {
	AppendRow(ctx context.Context, endpoint string, record map[string]any) error
}

// FollowupScheduler schedules post-outreach follow-up touches.
type FollowupScheduler interface {
	Schedule(ctx context.Context, detail *types.JobDetail) (*types.FollowupRecord, error)
}

// ArtifactStore optionally persists run history and stage artifacts.
type ArtifactStore interface {
	CreateRun(ctx context.Context, role, location string) (uuid.UUID, error)
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
	RecordOutcome(ctx context.Context, runID uuid.UUID, outcome types.JobOutcome) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, jobID, stage string, content any) error
}

// Pipeline wires the stage collaborators together. Construct with New.
type Pipeline struct {
	source    JobSource
	resolver  ContactResolver
	research  CompanyResearcher
	generator ContentGenerator
	email     EmailSender
	network   NetworkMessenger
	rows      RowStore
	followups FollowupScheduler
	artifacts ArtifactStore

	sheetURL string
	policy   retry.Policy
	limiter  *rate.Limiter
	printer  *observability.Printer
	verbose  bool
	dryRun   bool
	out      io.Writer
}

// Options holds the collaborators and behavior settings for a Pipeline.
// Rows, Followups and Artifacts are optional; the matching exports become
// no-ops when absent.
type Options struct {
	Source    JobSource
	Resolver  ContactResolver
	Research  CompanyResearcher
	Generator ContentGenerator
	Email     EmailSender
	Network   NetworkMessenger
	Rows      RowStore
	Followups FollowupScheduler
	Artifacts ArtifactStore

	SheetURL       string
	Policy         retry.Policy
	RateLimitDelay time.Duration
	Verbose        bool
	DryRun         bool
	Out            io.Writer
}

// New creates a Pipeline from its collaborators.
func New(opts Options) *Pipeline {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	delay := opts.RateLimitDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	limiter := rate.NewLimiter(rate.Every(delay), 1)
	// The bucket starts full; drain it so the first inter-job wait blocks.
	limiter.Allow()
	return &Pipeline{
		source:    opts.Source,
		resolver:  opts.Resolver,
		research:  opts.Research,
		generator: opts.Generator,
		email:     opts.Email,
		network:   opts.Network,
		rows:      opts.Rows,
		followups: opts.Followups,
		artifacts: opts.Artifacts,
		sheetURL:  opts.SheetURL,
		policy:    opts.Policy,
		limiter:   limiter,
		printer:   observability.NewPrinter(out),
		verbose:   opts.Verbose,
		dryRun:    opts.DryRun,
		out:       out,
	}
}

// Run executes one outreach run: searches listings for role in location and
// processes up to maxJobs of them sequentially. The returned report records a
// terminal outcome for every listing considered. Only input validation, an
// unsupported location, or an exhausted listing search abort the run.
func (p *Pipeline) Run(ctx context.Context, role, location string, maxJobs int) (*types.RunReport, error) {
	if err := validation.ValidateRunInput(role, location, maxJobs); err != nil {
		return nil, err
	}
	geoID, ok := config.GeoID(location)
	if !ok {
		return nil, fmt.Errorf("unsupported location %q (supported: %v)", location, config.LocationNames())
	}

	fmt.Fprintf(p.out, "Searching %q listings in %s...\n", role, location)
	listings, err := retry.Do(ctx, p.policy, func(ctx context.Context) ([]types.JobListing, error) {
		return p.source.Search(ctx, role, geoID)
	})
	if err != nil {
		return nil, fmt.Errorf("listing search failed: %w", err)
	}
	if len(listings) > maxJobs {
		listings = listings[:maxJobs]
	}
	fmt.Fprintf(p.out, "Processing %d listings\n", len(listings))

	report := types.NewRunReport(role, location)

	var runID uuid.UUID
	if p.artifacts != nil {
		runID, err = p.artifacts.CreateRun(ctx, role, location)
		if err != nil {
			p.warnf("could not record run start: %v", err)
			runID = uuid.Nil
		}
	}

	for i, listing := range listings {
		fmt.Fprintf(p.out, "\nJob %d/%d: %s at %s\n", i+1, len(listings), listing.Position, listing.CompanyName)

		outcome := p.processJob(ctx, runID, listing)
		switch outcome.Status {
		case types.JobSucceeded:
			report.Succeeded(outcome.JobID)
		case types.JobSkipped:
			report.Skipped(outcome.JobID, outcome.Reason)
		case types.JobFailed:
			report.Failed(outcome.JobID, outcome.Reason)
		}
		p.recordOutcome(ctx, runID, outcome)

		if ctx.Err() != nil {
			break
		}
		if i < len(listings)-1 {
			if err := p.limiter.Wait(ctx); err != nil {
				break
			}
		}
	}

	if p.artifacts != nil && runID != uuid.Nil {
		_ = p.artifacts.CompleteRun(ctx, runID, "completed")
	}

	p.printer.PrintReport(report)
	return report, nil
}

// processJob runs the full stage sequence for one listing and returns its
// terminal outcome.
func (p *Pipeline) processJob(ctx context.Context, runID uuid.UUID, listing types.JobListing) types.JobOutcome {
	if listing.JobID == "" {
		fmt.Fprintf(p.out, "  Skipping: listing has no job id\n")
		return types.JobOutcome{JobID: "", Status: types.JobSkipped, Reason: ReasonMissingID}
	}
	jobID := listing.JobID

	// Stage 1: job detail.
	fmt.Fprintf(p.out, "  Step 1/6: Fetching job detail...\n")
	detail, err := retry.Do(ctx, p.policy, func(ctx context.Context) (*types.JobDetail, error) {
		return p.source.Fetch(ctx, jobID)
	})
	if err != nil {
		return types.JobOutcome{JobID: jobID, Status: types.JobFailed, Reason: ReasonDetailFetch}
	}
	if detail == nil {
		return types.JobOutcome{JobID: jobID, Status: types.JobSkipped, Reason: ReasonNoDetail}
	}
	if err := validation.ValidateJobDetail(detail); err != nil {
		p.warnf("job %s detail rejected: %v", jobID, err)
		return types.JobOutcome{JobID: jobID, Status: types.JobSkipped, Reason: ReasonInvalidDetail}
	}
	p.saveArtifact(ctx, runID, jobID, StageDetail, detail)

	// Stage 2: contact resolution. Never fatal; worst case is the sentinel.
	fmt.Fprintf(p.out, "  Step 2/6: Resolving hiring contact...\n")
	detail.Recruiter = p.resolver.Resolve(ctx, detail.Lead, detail.CompanyName)
	p.saveArtifact(ctx, runID, jobID, StageContact, detail.Recruiter)
	if p.verbose {
		p.printer.PrintJobDetail(detail)
	}

	p.exportRow(ctx, detail)

	// Stage 3: company research. Each lookup degrades independently.
	fmt.Fprintf(p.out, "  Step 3/6: Researching %s...\n", detail.CompanyName)
	research := p.runResearch(ctx, detail)
	p.saveArtifact(ctx, runID, jobID, StageResearch, research)
	if p.verbose {
		p.printer.PrintResearch(research)
	}

	// Stage 4: candidate profile. Validation failure is terminal.
	fmt.Fprintf(p.out, "  Step 4/6: Generating candidate profile...\n")
	profile, err := retry.Do(ctx, p.policy, func(ctx context.Context) (*types.CandidateProfile, error) {
		return p.generator.GenerateProfile(ctx, detail, research)
	})
	if err != nil {
		p.warnf("job %s profile generation failed: %v", jobID, err)
		return types.JobOutcome{JobID: jobID, Status: types.JobFailed, Reason: ReasonProfileGeneration}
	}
	if err := validation.ValidateProfile(profile); err != nil {
		p.warnf("job %s profile rejected: %v", jobID, err)
		return types.JobOutcome{JobID: jobID, Status: types.JobFailed, Reason: ReasonInvalidProfile}
	}
	p.saveArtifact(ctx, runID, jobID, StageProfile, profile)
	if p.verbose {
		p.printer.PrintProfile(profile)
	}

	// Stage 5: message generation, both channels up front.
	fmt.Fprintf(p.out, "  Step 5/6: Generating outreach messages...\n")
	messages := map[types.Channel]*types.OutreachMessage{}
	for _, channel := range []types.Channel{types.ChannelEmail, types.ChannelLinkedIn} {
		msg, err := retry.Do(ctx, p.policy, func(ctx context.Context) (*types.OutreachMessage, error) {
			return p.generator.GenerateMessage(ctx, detail, profile, research, channel)
		})
		if err != nil {
			p.warnf("job %s %s message generation failed: %v", jobID, channel, err)
			return types.JobOutcome{JobID: jobID, Status: types.JobFailed, Reason: ReasonMessageGeneration}
		}
		if err := validation.ValidateMessage(msg); err != nil {
			p.warnf("job %s %s message rejected: %v", jobID, channel, err)
			return types.JobOutcome{JobID: jobID, Status: types.JobFailed, Reason: ReasonInvalidMessage}
		}
		messages[channel] = msg
		if p.verbose {
			p.printer.PrintMessage(channel, msg)
		}
	}
	p.saveArtifact(ctx, runID, jobID, StageEmail, messages[types.ChannelEmail])
	p.saveArtifact(ctx, runID, jobID, StageLinkedIn, messages[types.ChannelLinkedIn])

	// Stage 6: delivery. Channels are independent; one success suffices.
	fmt.Fprintf(p.out, "  Step 6/6: Sending outreach...\n")
	sent := p.deliver(ctx, detail, messages)
	if sent == 0 {
		return types.JobOutcome{JobID: jobID, Status: types.JobFailed, Reason: ReasonAllChannelsFailed}
	}

	// Follow-ups are best-effort; scheduling failures never demote a success.
	if p.followups != nil {
		record, err := p.followups.Schedule(ctx, detail)
		if err != nil {
			p.warnf("job %s follow-up scheduling failed: %v", jobID, err)
		} else {
			p.saveArtifact(ctx, runID, jobID, StageFollowup, record)
		}
	}

	return types.JobOutcome{JobID: jobID, Status: types.JobSucceeded}
}

// runResearch gathers the three research results, retrying transient lookup
// failures and degrading each piece independently to its zero value.
func (p *Pipeline) runResearch(ctx context.Context, detail *types.JobDetail) *types.CompanyResearch {
	research := types.EmptyResearch()

	info, err := retry.Do(ctx, p.policy, func(ctx context.Context) (string, error) {
		return p.research.CompanyInfo(ctx, detail.CompanyName)
	})
	if err != nil {
		p.warnf("company info lookup failed for %s: %v", detail.CompanyName, err)
	} else {
		research.CompanyInfo = info
	}

	analysis, err := retry.Do(ctx, p.policy, func(ctx context.Context) (string, error) {
		return p.research.AnalyzeRole(ctx, detail.Description)
	})
	if err != nil {
		p.warnf("role analysis failed for %s: %v", detail.CompanyName, err)
	} else {
		research.RoleAnalysis = analysis
	}

	news, err := retry.Do(ctx, p.policy, func(ctx context.Context) ([]types.NewsItem, error) {
		return p.research.RecentNews(ctx, detail.CompanyName)
	})
	if err != nil {
		p.warnf("news lookup failed for %s: %v", detail.CompanyName, err)
	} else if news != nil {
		research.RecentNews = news
	}

	return research
}

// deliver attempts each channel the contact supports and returns the number
// of successful sends. A channel without an address is failed, not attempted.
func (p *Pipeline) deliver(ctx context.Context, detail *types.JobDetail, messages map[types.Channel]*types.OutreachMessage) int {
	sent := 0

	if detail.Recruiter.HasEmail() && p.email != nil {
		if p.sendChannel(ctx, types.ChannelEmail, detail, messages[types.ChannelEmail]) {
			sent++
		}
	} else {
		fmt.Fprintf(p.out, "  Email: no address resolved, channel failed\n")
	}

	if detail.Recruiter.HasProfileURL() && p.network != nil {
		if p.sendChannel(ctx, types.ChannelLinkedIn, detail, messages[types.ChannelLinkedIn]) {
			sent++
		}
	} else {
		fmt.Fprintf(p.out, "  LinkedIn: no profile resolved, channel failed\n")
	}

	return sent
}

func (p *Pipeline) sendChannel(ctx context.Context, channel types.Channel, detail *types.JobDetail, msg *types.OutreachMessage) bool {
	if p.dryRun {
		fmt.Fprintf(p.out, "  %s: dry run, not sending\n", channel)
		return true
	}

	var err error
	switch channel {
	case types.ChannelEmail:
		_, err = retry.Do(ctx, p.policy, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, p.email.Send(ctx, *detail.Recruiter.Email, msg)
		})
	case types.ChannelLinkedIn:
		_, err = retry.Do(ctx, p.policy, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, p.network.Send(ctx, *detail.Recruiter.ProfileURL, msg)
		})
	}
	if err != nil {
		p.warnf("%s send failed for job %s: %v", channel, detail.JobID, err)
		return false
	}
	fmt.Fprintf(p.out, "  %s: sent\n", channel)
	return true
}

// exportRow appends the job and its resolved contact to the tracking sheet.
// Export failures are logged and never affect the job outcome.
func (p *Pipeline) exportRow(ctx context.Context, detail *types.JobDetail) {
	if p.rows == nil || p.sheetURL == "" {
		return
	}
	row := map[string]any{
		"jobId":     detail.JobID,
		"position":  detail.Position,
		"company":   detail.CompanyName,
		"location":  detail.Location,
		"applyLink": detail.ApplyLink,
		"contact":   detail.Recruiter.Name,
		"title":     detail.Recruiter.Title,
	}
	if detail.Recruiter.HasEmail() {
		row["email"] = *detail.Recruiter.Email
	}
	if detail.Recruiter.HasProfileURL() {
		row["profile"] = *detail.Recruiter.ProfileURL
	}
	if err := p.rows.AppendRow(ctx, p.sheetURL, row); err != nil {
		p.warnf("sheet export failed for job %s: %v", detail.JobID, err)
	}
}

func (p *Pipeline) saveArtifact(ctx context.Context, runID uuid.UUID, jobID, stage string, content any) {
	if p.artifacts == nil || runID == uuid.Nil {
		return
	}
	if err := p.artifacts.SaveArtifact(ctx, runID, jobID, stage, content); err != nil {
		p.warnf("could not save %s artifact for job %s: %v", stage, jobID, err)
	}
}

func (p *Pipeline) recordOutcome(ctx context.Context, runID uuid.UUID, outcome types.JobOutcome) {
	if p.artifacts == nil || runID == uuid.Nil || outcome.JobID == "" {
		return
	}
	if err := p.artifacts.RecordOutcome(ctx, runID, outcome); err != nil {
		p.warnf("could not record outcome for job %s: %v", outcome.JobID, err)
	}
}

//nolint:errcheck // best-effort progress output
func (p *Pipeline) warnf(format string, args ...any) {
	fmt.Fprintf(p.out, "Warning: "+format+"\n", args...)
}
