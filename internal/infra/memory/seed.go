package memory

import (
	"time"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

func ts(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(v string) *time.Time {
	t := ts(v)
	return &t
}

// Seed is the operational data the console starts with.
type Seed struct {
	Applicants          []screening.Applicant
	VerificationSummary []screening.VerificationDay
	CaseStatuses        []screening.CaseStatus
	Alerts              []screening.Alert
	Benchmarks          []screening.TurnaroundBenchmark
	ProgressStreams     []screening.ProgressStream
	DelayInsights       []screening.DelayInsight
	History             []screening.HistoryEntry
}

// DefaultSeed returns a fresh copy of the demo dataset.
func DefaultSeed() Seed {
	return Seed{
		Applicants: []screening.Applicant{
			{ID: "APP-1021", Name: "Jane Doe", Role: "Senior Data Analyst", Region: "US-East", Status: screening.ApplicantInProgress, SubmittedAt: ts("2025-09-17T13:45:00Z")},
			{ID: "APP-1020", Name: "Luis Martínez", Role: "Compliance Specialist", Region: "US-West", Status: screening.ApplicantVerified, SubmittedAt: ts("2025-09-12T09:12:00Z"), VerifiedAt: tsPtr("2025-09-18T14:10:00Z")},
			{ID: "APP-1019", Name: "Priya Singh", Role: "People Partner", Region: "India-North", Status: screening.ApplicantFlagged, SubmittedAt: ts("2025-09-11T16:22:00Z")},
			{ID: "APP-1018", Name: "Noah Johnson", Role: "Sales Director", Region: "US-South", Status: screening.ApplicantNew, SubmittedAt: ts("2025-09-19T08:15:00Z")},
			{ID: "APP-1017", Name: "Aiko Yamamoto", Role: "Finance Manager", Region: "APAC", Status: screening.ApplicantVerified, SubmittedAt: ts("2025-09-08T10:05:00Z"), VerifiedAt: tsPtr("2025-09-15T17:32:00Z")},
		},
		VerificationSummary: []screening.VerificationDay{
			{Date: "2025-09-14", Verified: 18, Total: 24},
			{Date: "2025-09-15", Verified: 22, Total: 26},
			{Date: "2025-09-16", Verified: 25, Total: 28},
			{Date: "2025-09-17", Verified: 21, Total: 25},
			{Date: "2025-09-18", Verified: 29, Total: 31},
			{Date: "2025-09-19", Verified: 34, Total: 37},
			{Date: "2025-09-20", Verified: 31, Total: 33},
		},
		CaseStatuses: []screening.CaseStatus{
			{
				ID: "CASE-8901", ApplicantID: "APP-1021", ApplicantName: "Jane Doe", Position: "Senior Data Analyst", Region: "US-East",
				OverallStatus: screening.CaseInProgress, EstimatedCompletion: ts("2025-09-22T18:00:00Z"),
				Events: []screening.CaseEvent{
					{Label: "Identity verification", Timestamp: ts("2025-09-17T15:21:00Z"), Owner: "LexisNexis", Status: screening.EventComplete},
					{Label: "Criminal check", Timestamp: ts("2025-09-18T10:12:00Z"), Owner: "Checkr", Status: screening.EventComplete},
					{Label: "Employment verification", Timestamp: ts("2025-09-18T10:12:00Z"), Owner: "Company HR", Status: screening.EventPending, Notes: "Waiting on manager response"},
				},
			},
			{
				ID: "CASE-8898", ApplicantID: "APP-1019", ApplicantName: "Priya Singh", Position: "People Partner", Region: "India-North",
				OverallStatus: screening.CaseRequiresAttention, EstimatedCompletion: ts("2025-09-24T16:00:00Z"),
				Events: []screening.CaseEvent{
					{Label: "Identity verification", Timestamp: ts("2025-09-12T11:00:00Z"), Owner: "Onfido", Status: screening.EventComplete},
					{Label: "Global sanctions", Timestamp: ts("2025-09-14T18:00:00Z"), Owner: "Internal Risk", Status: screening.EventFlagged, Notes: "Further review requested"},
				},
			},
			{
				ID: "CASE-8893", ApplicantID: "APP-1017", ApplicantName: "Aiko Yamamoto", Position: "Finance Manager", Region: "APAC",
				OverallStatus: screening.CaseComplete, EstimatedCompletion: ts("2025-09-16T12:00:00Z"),
				Events: []screening.CaseEvent{
					{Label: "Identity verification", Timestamp: ts("2025-09-09T07:40:00Z"), Owner: "GBG", Status: screening.EventComplete},
					{Label: "Criminal check", Timestamp: ts("2025-09-11T13:45:00Z"), Owner: "First Advantage", Status: screening.EventComplete},
					{Label: "Employment history", Timestamp: ts("2025-09-15T16:10:00Z"), Owner: "Regional Ops", Status: screening.EventComplete},
				},
			},
		},
		Alerts: []screening.Alert{
			{ID: "ALT-3001", Severity: screening.SeverityWarning, Title: "NY criminal checks trending slower", Detail: "Average completion time is up 20% week-over-week. Vendor SLA review recommended.", RaisedAt: ts("2025-09-19T09:30:00Z")},
			{ID: "ALT-3002", Severity: screening.SeverityCritical, Title: "Employer verification backlog", Detail: "15 cases pending > 72 hours due to auto-fax outage. Switch to manual outreach.", RaisedAt: ts("2025-09-18T21:50:00Z")},
		},
		Benchmarks: []screening.TurnaroundBenchmark{
			{Region: "US-East", CheckType: "Criminal", AverageDays: 2.1, Trend: screening.TrendUp, DeltaPercentage: 12},
			{Region: "US-West", CheckType: "Employment", AverageDays: 3.8, Trend: screening.TrendDown, DeltaPercentage: -8},
			{Region: "India-North", CheckType: "Education", AverageDays: 5.2, Trend: screening.TrendFlat, DeltaPercentage: 1},
		},
		ProgressStreams: []screening.ProgressStream{
			{Label: "Weekly", Period: "weekly", Points: []screening.TrendPoint{
				{Period: "Week 31", Value: 112}, {Period: "Week 32", Value: 124}, {Period: "Week 33", Value: 138},
				{Period: "Week 34", Value: 150}, {Period: "Week 35", Value: 146}, {Period: "Week 36", Value: 158},
			}},
			{Label: "Monthly", Period: "monthly", Points: []screening.TrendPoint{
				{Period: "Apr", Value: 410}, {Period: "May", Value: 452}, {Period: "Jun", Value: 475},
				{Period: "Jul", Value: 498}, {Period: "Aug", Value: 520}, {Period: "Sep", Value: 548},
			}},
			{Label: "Yearly", Period: "yearly", Points: []screening.TrendPoint{
				{Period: "2021", Value: 3200}, {Period: "2022", Value: 3580}, {Period: "2023", Value: 4025},
				{Period: "2024", Value: 4380}, {Period: "2025", Value: 4615},
			}},
		},
		DelayInsights: []screening.DelayInsight{
			{ID: "DELAY-9001", Region: "Nepal", Category: screening.DelayRegional, Summary: "Local municipality records offline due to security audit.", ImpactDays: 4, ContributingOrders: 18, RecommendedAction: "Route verifications through Kathmandu backup vendor until services resume."},
			{ID: "DELAY-9002", Region: "US-East", Category: screening.DelaySystem, Summary: "Database maintenance window caused 6-hour outage for automated employer outreach.", ImpactDays: 1, ContributingOrders: 42, RecommendedAction: "Enable SMS fallback within the outreach playbook for the next 72 hours."},
			{ID: "DELAY-9003", Region: "Philippines", Category: screening.DelayCandidate, Summary: "Candidates responding outside SLA; 32% requiring 2nd follow-up.", ImpactDays: 2, ContributingOrders: 27, RecommendedAction: "Launch WhatsApp reminders and extend follow-up hours to 9pm local."},
		},
		History: []screening.HistoryEntry{
			{HistoryID: "HIST-5001", UserID: "hr-manager-1", SearchQuery: "Show me cases delayed in New York", Intent: "case_delay_summary", Entities: map[string]any{"region": "US-East", "city": "New York"}, Timestamp: ts("2025-09-18T14:25:00Z")},
			{HistoryID: "HIST-5002", UserID: "hr-manager-1", SearchQuery: "What is the status of Jane Doe's background check?", Intent: "candidate_status", Entities: map[string]any{"candidate": "Jane Doe"}, Timestamp: ts("2025-09-18T18:42:00Z")},
			{HistoryID: "HIST-5003", UserID: "hr-manager-2", SearchQuery: "Average turnaround for education verifications in California", Intent: "benchmark_lookup", Entities: map[string]any{"checkType": "Education", "region": "California"}, Timestamp: ts("2025-09-19T07:15:00Z")},
		},
	}
}
