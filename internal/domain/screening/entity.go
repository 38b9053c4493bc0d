package screening

import "time"

// ApplicantStatus enum
type ApplicantStatus string

const (
	ApplicantNew        ApplicantStatus = "new"
	ApplicantInProgress ApplicantStatus = "in_progress"
	ApplicantVerified   ApplicantStatus = "verified"
	ApplicantFlagged    ApplicantStatus = "flagged"
)

// Valid reports whether s is one of the known pipeline states.
func (s ApplicantStatus) Valid() bool {
	switch s {
	case ApplicantNew, ApplicantInProgress, ApplicantVerified, ApplicantFlagged:
		return true
	}
	return false
}

// Applicant is a candidate in the screening pipeline.
type Applicant struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Role        string          `json:"role"`
	Region      string          `json:"region"`
	Status      ApplicantStatus `json:"status"`
	SubmittedAt time.Time       `json:"submittedAt"`
	VerifiedAt  *time.Time      `json:"verifiedAt,omitempty"`
}

// EventStatus enum
type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventComplete EventStatus = "complete"
	EventFlagged  EventStatus = "flagged"
)

// CaseEvent is one sub-check of a background check.
type CaseEvent struct {
	Label     string      `json:"label"`
	Timestamp time.Time   `json:"timestamp"`
	Owner     string      `json:"owner"`
	Status    EventStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
}

// CaseOverallStatus enum
type CaseOverallStatus string

const (
	CaseInProgress        CaseOverallStatus = "in_progress"
	CaseComplete          CaseOverallStatus = "complete"
	CaseDelayed           CaseOverallStatus = "delayed"
	CaseRequiresAttention CaseOverallStatus = "requires_attention"
)

// CaseStatus aggregates the verification state of one applicant.
// Events keep the order produced by the data source.
type CaseStatus struct {
	ID                  string            `json:"id"`
	ApplicantID         string            `json:"applicantId"`
	ApplicantName       string            `json:"applicantName"`
	Position            string            `json:"position"`
	Region              string            `json:"region"`
	OverallStatus       CaseOverallStatus `json:"overallStatus"`
	EstimatedCompletion time.Time         `json:"estimatedCompletion"`
	Events              []CaseEvent       `json:"events"`
}

// Trend enum
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// TurnaroundBenchmark is an average turnaround for a region/check-type pair.
type TurnaroundBenchmark struct {
	Region          string  `json:"region"`
	CheckType       string  `json:"checkType"`
	AverageDays     float64 `json:"averageDays"`
	Trend           Trend   `json:"trend"`
	DeltaPercentage float64 `json:"deltaPercentage"`
}

// VerificationDay holds the verified/total counts for one calendar day.
type VerificationDay struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Verified int    `json:"verified"`
	Total    int    `json:"total"`
}

// DelayCategory enum
type DelayCategory string

const (
	DelayRegional  DelayCategory = "regional"
	DelaySystem    DelayCategory = "system"
	DelayCandidate DelayCategory = "candidate"
)

// DelayInsight explains why a region or category runs slower.
type DelayInsight struct {
	ID                 string        `json:"id"`
	Region             string        `json:"region"`
	Category           DelayCategory `json:"category"`
	Summary            string        `json:"summary"`
	ImpactDays         float64       `json:"impactDays"`
	ContributingOrders int           `json:"contributingOrders"`
	RecommendedAction  string        `json:"recommendedAction"`
}

// Severity enum
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

type Alert struct {
	ID       string    `json:"id"`
	Severity Severity  `json:"severity"`
	Title    string    `json:"title"`
	Detail   string    `json:"detail"`
	RaisedAt time.Time `json:"raisedAt"`
}

type TrendPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

type ProgressStream struct {
	Label  string       `json:"label"`
	Period string       `json:"period"` // weekly | monthly | yearly
	Points []TrendPoint `json:"points"`
}
