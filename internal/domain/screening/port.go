package screening

import (
	"context"
	"io"
	"time"
)

// Provider is the read side of the operational data (data provider port).
// Every method returns a copy the caller may keep.
type Provider interface {
	Applicants(ctx context.Context) ([]Applicant, error)
	CaseStatuses(ctx context.Context) ([]CaseStatus, error)
	Benchmarks(ctx context.Context) ([]TurnaroundBenchmark, error)
	VerificationSummary(ctx context.Context) ([]VerificationDay, error)
	DelayInsights(ctx context.Context) ([]DelayInsight, error)
	Alerts(ctx context.Context) ([]Alert, error)
	ProgressStreams(ctx context.Context) ([]ProgressStream, error)
}

// ApplicantRepository is the write side for applicants.
type ApplicantRepository interface {
	AddApplicant(ctx context.Context, a Applicant) error
	RemoveApplicant(ctx context.Context, id string) (bool, error)
}

// HistoryRepository persists console queries.
type HistoryRepository interface {
	Save(ctx context.Context, e *HistoryEntry) error
	ListByUser(ctx context.Context, userID string) ([]HistoryEntry, error)
	Ping(ctx context.Context) error
}

// RecommendationCache memoizes personal recommendations per user.
type RecommendationCache interface {
	Get(ctx context.Context, userID string) ([]Recommendation, bool, error)
	Set(ctx context.Context, userID string, recs []Recommendation, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}

// UploadStore port (object storage for console attachments)
type UploadStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}
