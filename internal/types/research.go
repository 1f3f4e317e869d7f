package types

// Sentiment classifies the tone of a news article about a company.
type Sentiment string

// Sentiment values produced by the news classifier.
const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// NewsItem is one recent news article about the target company.
type NewsItem struct {
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	URL       string    `json:"url"`
	Sentiment Sentiment `json:"sentiment"`
}

// CompanyResearch aggregates the three independent research sub-results for a
// company. Any field may be degraded to its empty default when the underlying
// lookup fails; RecentNews is always a slice, never nil.
type CompanyResearch struct {
	CompanyInfo  string     `json:"company_info"`
	RoleAnalysis string     `json:"role_analysis"`
	RecentNews   []NewsItem `json:"recent_news"`
}

// EmptyResearch returns a fully degraded CompanyResearch with an empty (but
// non-nil) news slice.
func EmptyResearch() *CompanyResearch {
	return &CompanyResearch{RecentNews: []NewsItem{}}
}
