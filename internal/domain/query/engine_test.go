package query

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

func fixture() Context {
	return Context{
		CaseStatuses: []screening.CaseStatus{
			{
				ID:                  "CASE-8901",
				ApplicantName:       "Jane Doe",
				OverallStatus:       screening.CaseInProgress,
				EstimatedCompletion: time.Date(2025, 9, 22, 18, 0, 0, 0, time.UTC),
				Events: []screening.CaseEvent{
					{Label: "Identity verification", Owner: "LexisNexis", Status: screening.EventComplete},
					{Label: "Employment verification", Owner: "Company HR", Status: screening.EventPending},
				},
			},
			{
				ID:                  "CASE-8898",
				ApplicantName:       "Priya Singh",
				OverallStatus:       screening.CaseRequiresAttention,
				EstimatedCompletion: time.Date(2025, 9, 24, 16, 0, 0, 0, time.UTC),
				Events: []screening.CaseEvent{
					{Label: "Global sanctions", Owner: "Internal Risk", Status: screening.EventFlagged},
					{Label: "Identity verification", Owner: "Onfido", Status: screening.EventComplete},
					{Label: "Education", Owner: "Registrar", Status: screening.EventPending},
				},
			},
			{
				ID:                  "CASE-8893",
				ApplicantName:       "Aiko Yamamoto",
				OverallStatus:       screening.CaseComplete,
				EstimatedCompletion: time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC),
				Events: []screening.CaseEvent{
					{Label: "Identity verification", Owner: "GBG", Status: screening.EventComplete},
				},
			},
		},
		Benchmarks: []screening.TurnaroundBenchmark{
			{Region: "US-East", CheckType: "Criminal", AverageDays: 2.1, Trend: screening.TrendUp, DeltaPercentage: 12},
			{Region: "US-West", CheckType: "Employment", AverageDays: 3.8, Trend: screening.TrendDown, DeltaPercentage: -8},
			{Region: "India-North", CheckType: "Education", AverageDays: 5.2, Trend: screening.TrendFlat, DeltaPercentage: 1},
		},
		VerificationSummary: []screening.VerificationDay{
			{Date: "2025-09-18", Verified: 29, Total: 31},
			{Date: "2025-09-19", Verified: 34, Total: 37},
			{Date: "2025-09-20", Verified: 31, Total: 33},
		},
		DelayInsights: []screening.DelayInsight{
			{ID: "DELAY-9001", Region: "Nepal", Category: screening.DelayRegional, Summary: "Municipality records offline.", ImpactDays: 4, ContributingOrders: 18, RecommendedAction: "Route through backup vendor."},
			{ID: "DELAY-9002", Region: "US-East", Category: screening.DelaySystem, Summary: "Maintenance window outage.", ImpactDays: 1, ContributingOrders: 42, RecommendedAction: "Enable SMS fallback."},
			{ID: "DELAY-9003", Region: "Philippines", Category: screening.DelayCandidate, Summary: "Candidates responding outside SLA.", ImpactDays: 2, ContributingOrders: 27, RecommendedAction: "Launch WhatsApp reminders."},
		},
	}
}

func TestEvaluate_CandidateStatus(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		summary    string
		highlights []string
	}{
		{
			name:       "pending event",
			query:      "What is the status of Jane Doe's background check?",
			summary:    "Jane Doe's check is in progress. Estimated completion 9/22/2025, 6:00:00 PM.",
			highlights: []string{"Employment verification owned by Company HR is pending."},
		},
		{
			name:    "non-complete events keep order",
			query:   "STATUS OF priya singh",
			summary: "Priya Singh's check is requires attention. Estimated completion 9/24/2025, 4:00:00 PM.",
			highlights: []string{
				"Global sanctions owned by Internal Risk is flagged.",
				"Education owned by Registrar is pending.",
			},
		},
		{
			name:       "all complete",
			query:      "status of aiko yamamoto please",
			summary:    "Aiko Yamamoto's check is complete. Estimated completion 9/16/2025, 12:00:00 PM.",
			highlights: []string{"All components completed."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.query, fixture())
			assert.Equal(t, IntentCandidateStatus, res.Intent)
			assert.Equal(t, tt.summary, res.Summary)
			assert.Equal(t, tt.highlights, res.Highlights)
			assert.False(t, res.HasRecommendedActions())
		})
	}
}

func TestEvaluate_CandidateStatusFirstMatchWins(t *testing.T) {
	c := fixture()
	c.CaseStatuses = append([]screening.CaseStatus{{
		ApplicantName:       "Jane",
		OverallStatus:       screening.CaseDelayed,
		EstimatedCompletion: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
	}}, c.CaseStatuses...)

	res := Evaluate("status of jane doe", c)
	require.Equal(t, IntentCandidateStatus, res.Intent)
	assert.Equal(t, "Jane's check is delayed. Estimated completion 10/1/2025, 9:00:00 AM.", res.Summary)
	assert.Equal(t, []string{"All components completed."}, res.Highlights)
}

func TestEvaluate_StatusOfWithoutMatchFallsThrough(t *testing.T) {
	c := fixture()

	res := Evaluate("status of John Smith, and why the delay in Nepal?", c)
	assert.Equal(t, IntentDelayBreakdown, res.Intent)

	res = Evaluate("status of the average time in US-West", c)
	assert.Equal(t, IntentBenchmarkLookup, res.Intent)

	res = Evaluate("status of John Smith", c)
	assert.Equal(t, IntentFallback, res.Intent)
}

func TestEvaluate_EmptyApplicantNameMatchesAnyStatusPrompt(t *testing.T) {
	c := fixture()
	c.CaseStatuses = append(c.CaseStatuses, screening.CaseStatus{
		OverallStatus:       screening.CaseComplete,
		EstimatedCompletion: time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	})

	res := Evaluate("status of John Smith", c)
	require.Equal(t, IntentCandidateStatus, res.Intent)
	assert.Equal(t, "'s check is complete. Estimated completion 9/30/2025, 12:00:00 AM.", res.Summary)
}

func TestEvaluate_BenchmarkLookup(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		summary string
		action  string
	}{
		{
			name:    "rising trend by region",
			query:   "average time for US-East criminal checks",
			summary: "Criminal checks in US-East average 2.1 days. Rising by 12% week over week.",
			action:  "Investigate vendor throughput and add surge capacity.",
		},
		{
			name:    "improving trend by check type",
			query:   "What's the time on average for employment?",
			summary: "Employment checks in US-West average 3.8 days. Improving by 8% week over week.",
			action:  "Maintain current staffing, monitor weekly for deviations.",
		},
		{
			name:    "stable trend",
			query:   "average turnaround time india-north",
			summary: "Education checks in India-North average 5.2 days. Stable by 1% week over week.",
			action:  "Maintain current staffing, monitor weekly for deviations.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.query, fixture())
			assert.Equal(t, IntentBenchmarkLookup, res.Intent)
			assert.Equal(t, tt.summary, res.Summary)
			assert.Equal(t, []string{tt.action}, res.RecommendedActions)
			assert.False(t, res.HasHighlights())
		})
	}
}

func TestEvaluate_BenchmarkRegionOrCheckTypeInCollectionOrder(t *testing.T) {
	// "education" names the third benchmark, "us-west" the second: collection order wins.
	res := Evaluate("average time for education in us-west", fixture())
	require.Equal(t, IntentBenchmarkLookup, res.Intent)
	assert.Contains(t, res.Summary, "Employment checks in US-West")
}

func TestEvaluate_BenchmarkRequiresBothKeywords(t *testing.T) {
	res := Evaluate("average for US-East", fixture())
	assert.Equal(t, IntentFallback, res.Intent)

	res = Evaluate("time for US-East criminal", fixture())
	assert.Equal(t, IntentFallback, res.Intent)
}

func TestEvaluate_VerificationDelta(t *testing.T) {
	res := Evaluate("How many profiles were verified today?", fixture())
	assert.Equal(t, IntentVerificationDelta, res.Intent)
	assert.Equal(t, "31 profiles verified today. -3 versus yesterday (34).", res.Summary)
	assert.Nil(t, res.Highlights)
	assert.Nil(t, res.RecommendedActions)

	c := fixture()
	c.VerificationSummary = c.VerificationSummary[:2]
	res = Evaluate("how many verified", c)
	assert.Equal(t, "34 profiles verified today. +5 versus yesterday (29).", res.Summary)
}

func TestEvaluate_VerificationDeltaNeedsTwoDays(t *testing.T) {
	for _, days := range [][]screening.VerificationDay{nil, {{Date: "2025-09-20", Verified: 31, Total: 33}}} {
		c := fixture()
		c.VerificationSummary = days

		res := Evaluate("how many verified today", c)
		assert.Equal(t, IntentFallback, res.Intent)

		// a later rule still gets its chance
		res = Evaluate("how many verified today, and why so slow in Nepal", c)
		assert.Equal(t, IntentDelayBreakdown, res.Intent)
	}
}

func TestEvaluate_DelayBreakdown(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		summary string
		id      int
	}{
		{name: "region with delay", query: "Explain the delay in Nepal", summary: "Nepal delays add ~4 days (18 orders impacted).", id: 0},
		{name: "region with why", query: "why is us-east slow", summary: "US-East delays add ~1 days (42 orders impacted).", id: 1},
		{name: "category literal", query: "any candidate delays?", summary: "Philippines delays add ~2 days (27 orders impacted).", id: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fixture()
			res := Evaluate(tt.query, c)
			assert.Equal(t, IntentDelayBreakdown, res.Intent)
			assert.Equal(t, tt.summary, res.Summary)
			assert.Equal(t, []string{c.DelayInsights[tt.id].Summary}, res.Highlights)
			assert.Equal(t, []string{c.DelayInsights[tt.id].RecommendedAction}, res.RecommendedActions)
		})
	}
}

func TestEvaluate_Fallback(t *testing.T) {
	for _, q := range []string{"random unrelated text", "", "why?", "delay"} {
		res := Evaluate(q, fixture())
		assert.Equal(t, Result{Intent: IntentFallback, Summary: FallbackSummary}, res, "query %q", q)
	}

	res := Evaluate("status of anyone, how many verified, why the delay", Context{})
	assert.Equal(t, IntentFallback, res.Intent)
}

func TestEvaluate_Idempotent(t *testing.T) {
	c := fixture()
	for _, q := range []string{
		"status of Jane Doe",
		"average time US-East",
		"how many verified",
		"why nepal",
		"hello",
	} {
		first := Evaluate(q, c)
		second := Evaluate(q, c)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Evaluate(%q) not idempotent (-first +second):\n%s", q, diff)
		}
	}
}

func TestEvaluate_ResultDoesNotAliasInput(t *testing.T) {
	c := fixture()
	res := Evaluate("why nepal", c)
	res.Highlights[0] = "changed"
	res.RecommendedActions[0] = "changed"

	assert.Equal(t, "Municipality records offline.", c.DelayInsights[0].Summary)
	assert.Equal(t, "Route through backup vendor.", c.DelayInsights[0].RecommendedAction)
}

func TestEngine_WithLocation(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	e := NewEngine(WithLocation(loc), WithTimeLayout("Jan 2 15:04"))

	res := e.Evaluate("status of jane doe", fixture())
	assert.Equal(t, "Jane Doe's check is in progress. Estimated completion Sep 22 13:00.", res.Summary)
}

func TestIntents_Order(t *testing.T) {
	assert.Equal(t, []Intent{
		IntentCandidateStatus,
		IntentBenchmarkLookup,
		IntentVerificationDelta,
		IntentDelayBreakdown,
		IntentFallback,
	}, Intents())
}

func TestResult_JSONOptionalFields(t *testing.T) {
	b, err := json.Marshal(Result{Intent: IntentFallback, Summary: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"intent":"fallback","summary":"x"}`, string(b))

	b, err = json.Marshal(Result{Intent: IntentDelayBreakdown, Summary: "x", Highlights: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"intent":"delay_breakdown","summary":"x","highlights":[]}`, string(b))
}
