// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/outreach-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobDetail outputs a human-readable summary of one fetched job with its
// resolved recruiter contact.
func (p *Printer) PrintJobDetail(detail *types.JobDetail) {
	if detail == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:   %s\n", detail.CompanyName))
	sb.WriteString(fmt.Sprintf("Position:  %s\n", detail.Position))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", detail.Location))
	if detail.SeniorityLevel != "" {
		sb.WriteString(fmt.Sprintf("Seniority: %s\n", detail.SeniorityLevel))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Contact:   %s", detail.Recruiter.Name))
	if detail.Recruiter.Title != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", detail.Recruiter.Title))
	}
	sb.WriteString("\n")
	if detail.Recruiter.HasEmail() {
		sb.WriteString(fmt.Sprintf("Email:     %s\n", *detail.Recruiter.Email))
	}
	if detail.Recruiter.HasProfileURL() {
		sb.WriteString(fmt.Sprintf("Profile:   %s\n", *detail.Recruiter.ProfileURL))
	}

	p.printBox(fmt.Sprintf("JOB %s", detail.JobID), strings.TrimRight(sb.String(), "\n"))
}

// PrintResearch outputs a summary of the gathered company research.
func (p *Printer) PrintResearch(research *types.CompanyResearch) {
	if research == nil {
		return
	}

	var sb strings.Builder
	if research.CompanyInfo != "" {
		sb.WriteString(firstLine(research.CompanyInfo))
		sb.WriteString("\n\n")
	}
	if len(research.RecentNews) > 0 {
		sb.WriteString("Recent News:\n")
		count := min(len(research.RecentNews), maxItemsToShow)
		for i := 0; i < count; i++ {
			item := research.RecentNews[i]
			sb.WriteString(fmt.Sprintf("  • [%s] %s\n", item.Sentiment, item.Title))
		}
		if len(research.RecentNews) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(research.RecentNews)-maxItemsToShow))
		}
	} else {
		sb.WriteString("No recent news found\n")
	}

	p.printBox("COMPANY RESEARCH", strings.TrimRight(sb.String(), "\n"))
}

// PrintProfile outputs a summary of the generated candidate profile.
func (p *Printer) PrintProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Headline: %s\n\n", profile.Headline))

	if len(profile.Skills) > 0 {
		sb.WriteString("Skills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	for _, exp := range profile.Experience {
		sb.WriteString(fmt.Sprintf("  %s at %s\n", exp.Title, exp.Company))
	}
	for _, edu := range profile.Education {
		sb.WriteString(fmt.Sprintf("  %s, %s\n", edu.Degree, edu.School))
	}

	p.printBox("CANDIDATE PROFILE", strings.TrimRight(sb.String(), "\n"))
}

// PrintMessage outputs a generated outreach message for one channel.
func (p *Printer) PrintMessage(channel types.Channel, msg *types.OutreachMessage) {
	if msg == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Subject: %s\n\n", msg.Subject))
	sb.WriteString(msg.Greeting)
	sb.WriteString("\n\n")
	sb.WriteString(msg.Body)

	p.printBox(fmt.Sprintf("%s MESSAGE", strings.ToUpper(string(channel))), strings.TrimRight(sb.String(), "\n"))
}

// PrintReport outputs the end-of-run summary.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReport(report *types.RunReport) {
	if report == nil {
		return
	}
	p.printBox("RUN REPORT", fmt.Sprintf("Role:     %s\nLocation: %s", report.Role, report.Location))
	fmt.Fprint(p.out, report.Summary())
}

// firstLine returns the content up to the first newline.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
