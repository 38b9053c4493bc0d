package query

import "github.com/bryanwahyu/checkops/internal/domain/screening"

// Intent classifies which rule produced a Result.
type Intent string

const (
	IntentCandidateStatus   Intent = "candidate_status"
	IntentBenchmarkLookup   Intent = "benchmark_lookup"
	IntentVerificationDelta Intent = "verification_delta"
	IntentDelayBreakdown    Intent = "delay_breakdown"
	IntentFallback          Intent = "fallback"
)

// FallbackSummary is returned when no rule matches.
const FallbackSummary = "I can surface candidate statuses, verification progress, turnaround averages, or explain delays. Try asking for one of those insights."

// Context is the read-only snapshot a query is evaluated against.
// VerificationSummary must be ascending by date: the last element is today.
type Context struct {
	Applicants          []screening.Applicant
	CaseStatuses        []screening.CaseStatus
	Benchmarks          []screening.TurnaroundBenchmark
	VerificationSummary []screening.VerificationDay
	DelayInsights       []screening.DelayInsight
}

// Result is the classified answer to a console prompt.
//
// A nil Highlights or RecommendedActions means "not applicable" and is
// omitted from JSON; a non-nil empty slice is encoded as [].
type Result struct {
	Intent             Intent   `json:"intent"`
	Summary            string   `json:"summary"`
	Highlights         []string `json:"highlights,omitzero"`
	RecommendedActions []string `json:"recommendedActions,omitzero"`
}

// HasHighlights reports whether the highlights field is present.
func (r Result) HasHighlights() bool { return r.Highlights != nil }

// HasRecommendedActions reports whether the recommended actions field is present.
func (r Result) HasRecommendedActions() bool { return r.RecommendedActions != nil }
