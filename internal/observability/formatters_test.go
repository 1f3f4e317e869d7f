package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/outreach-agent/internal/types"
)

func TestPrintJobDetail(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	email := "jane@acme.io"
	detail := &types.JobDetail{
		JobListing: types.JobListing{
			JobID:       "42",
			Position:    "Senior Engineer",
			CompanyName: "Acme Corp",
			Location:    "Toronto, ON",
		},
		SeniorityLevel: "Mid-Senior level",
		Recruiter:      types.RecruiterContact{Name: "Jane Doe", Title: "Recruiter", Email: &email},
	}

	p.PrintJobDetail(detail)
	output := buf.String()

	assert.Contains(t, output, "JOB 42")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@acme.io")
}

func TestPrintResearch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResearch(&types.CompanyResearch{
		CompanyInfo: "Acme builds rockets.",
		RecentNews: []types.NewsItem{
			{Title: "Acme raises Series C", Sentiment: types.SentimentPositive},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "COMPANY RESEARCH")
	assert.Contains(t, output, "Acme builds rockets.")
	assert.Contains(t, output, "POSITIVE")
}

func TestPrintResearchNoNews(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResearch(types.EmptyResearch())
	assert.Contains(t, buf.String(), "No recent news found")
}

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.CandidateProfile{
		Headline:   "Senior Backend Engineer",
		Skills:     []string{"Go", "SQL", "Kafka", "K8s", "gRPC", "Terraform"},
		Experience: []types.ExperienceEntry{{Title: "Engineer", Company: "PayCo"}},
		Education:  []types.EducationEntry{{School: "UBC", Degree: "BSc"}},
	})
	output := buf.String()

	assert.Contains(t, output, "CANDIDATE PROFILE")
	assert.Contains(t, output, "Senior Backend Engineer")
	assert.Contains(t, output, "and 1 more")
	assert.Contains(t, output, "Engineer at PayCo")
	assert.Contains(t, output, "BSc, UBC")
}

func TestPrintMessage(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMessage(types.ChannelEmail, &types.OutreachMessage{
		Subject:  "A strong subject line",
		Greeting: "Hi Jane,",
		Body:     "Body text.",
	})
	output := buf.String()

	assert.Contains(t, output, "EMAIL MESSAGE")
	assert.Contains(t, output, "A strong subject line")
	assert.Contains(t, output, "Hi Jane,")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	report := types.NewRunReport("Software Engineer", "Toronto, ON")
	report.Succeeded("j1")
	report.Failed("j2", "all channels failed")

	p.PrintReport(report)
	output := buf.String()

	assert.Contains(t, output, "RUN REPORT")
	assert.Contains(t, output, "Toronto, ON")
	assert.Contains(t, output, "1 succeeded")
	assert.Contains(t, output, "j2: failed (all channels failed)")
}

func TestPrintersIgnoreNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobDetail(nil)
	p.PrintResearch(nil)
	p.PrintProfile(nil)
	p.PrintMessage(types.ChannelEmail, nil)
	p.PrintReport(nil)

	assert.Empty(t, buf.String())
}
