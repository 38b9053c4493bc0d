package dashboard

import (
	"context"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/checkops/internal/application"
	"github.com/bryanwahyu/checkops/internal/domain/screening"
	"github.com/bryanwahyu/checkops/internal/logger"
)

const maxPersonalRecommendations = 3

// GlobalRecommendations are shown to every user after the personal ones.
var GlobalRecommendations = []screening.Recommendation{
	{
		Type:           screening.RecommendationGlobal,
		Title:          "Adverse findings digest",
		Description:    "See all adverse findings across regions for the past 30 days.",
		SuggestedQuery: "Show all adverse findings from the last 30 days",
	},
	{
		Type:           screening.RecommendationGlobal,
		Title:          "Vendor performance leaderboard",
		Description:    "Compare average SLA attainment for background check vendors.",
		SuggestedQuery: "Which vendors are missing SLA this month?",
	},
}

// Service implements the dashboard use-cases. It is safe for concurrent use
// as long as its collaborators are.
type Service struct {
	Provider    screening.Provider
	Applicants  screening.ApplicantRepository
	History     screening.HistoryRepository
	Cache       screening.RecommendationCache
	Clock       application.Clock
	Logger      logger.Logger
	CacheTTL    time.Duration
	DefaultUser string

	// NewApplicantID and NewHistoryID are replaced in tests.
	NewApplicantID func() string
	NewHistoryID   func() string
}

func (s *Service) applicantID() string {
	if s.NewApplicantID != nil {
		return s.NewApplicantID()
	}
	return fmt.Sprintf("APP-%d", rand.IntN(9000)+1000)
}

func (s *Service) historyID() string {
	if s.NewHistoryID != nil {
		return s.NewHistoryID()
	}
	return uuid.NewString()
}

func (s *Service) log() logger.Logger {
	if s.Logger == nil {
		return logger.NewNop()
	}
	return s.Logger
}

// User resolves an empty user id to the configured default.
func (s *Service) User(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return s.DefaultUser
	}
	return userID
}

//
// ==== APPLICANTS ====
//

type AddApplicantCommand struct {
	Name   string                    `json:"name"`
	Role   string                    `json:"role"`
	Region string                    `json:"region"`
	Status screening.ApplicantStatus `json:"status,omitempty"`
}

func (s *Service) ListApplicants(ctx context.Context) ([]screening.Applicant, error) {
	return s.Provider.Applicants(ctx)
}

// AddApplicant creates an applicant at the top of the list and resets the
// default user's recommendations.
func (s *Service) AddApplicant(ctx context.Context, cmd AddApplicantCommand) (screening.Applicant, error) {
	var missing []string
	if strings.TrimSpace(cmd.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(cmd.Role) == "" {
		missing = append(missing, "role")
	}
	if strings.TrimSpace(cmd.Region) == "" {
		missing = append(missing, "region")
	}
	if cmd.Status != "" && !cmd.Status.Valid() {
		missing = append(missing, "status")
	}
	if len(missing) > 0 {
		return screening.Applicant{}, &screening.ValidationError{Fields: missing}
	}

	status := cmd.Status
	if status == "" {
		status = screening.ApplicantNew
	}
	a := screening.Applicant{
		ID:          s.applicantID(),
		Name:        cmd.Name,
		Role:        cmd.Role,
		Region:      cmd.Region,
		Status:      status,
		SubmittedAt: s.Clock.Now(),
	}
	if err := s.Applicants.AddApplicant(ctx, a); err != nil {
		return screening.Applicant{}, err
	}
	s.invalidate(ctx, s.DefaultUser)
	return a, nil
}

func (s *Service) RemoveApplicant(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &screening.ValidationError{Fields: []string{"id"}}
	}
	ok, err := s.Applicants.RemoveApplicant(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("applicant %s: %w", id, screening.ErrNotFound)
	}
	return nil
}

//
// ==== READ-ONLY COLLECTIONS ====
//

func (s *Service) CaseStatuses(ctx context.Context) ([]screening.CaseStatus, error) {
	return s.Provider.CaseStatuses(ctx)
}

func (s *Service) Benchmarks(ctx context.Context) ([]screening.TurnaroundBenchmark, error) {
	return s.Provider.Benchmarks(ctx)
}

func (s *Service) VerificationSummary(ctx context.Context) ([]screening.VerificationDay, error) {
	return s.Provider.VerificationSummary(ctx)
}

func (s *Service) DelayInsights(ctx context.Context) ([]screening.DelayInsight, error) {
	return s.Provider.DelayInsights(ctx)
}

func (s *Service) Alerts(ctx context.Context) ([]screening.Alert, error) {
	return s.Provider.Alerts(ctx)
}

//
// ==== HISTORY & RECOMMENDATIONS ====
//

type RecordQueryCommand struct {
	UserID      string         `json:"userId"`
	SearchQuery string         `json:"searchQuery"`
	Intent      string         `json:"intent"`
	Entities    map[string]any `json:"entities,omitempty"`
}

func (s *Service) ListHistory(ctx context.Context, userID string) ([]screening.HistoryEntry, error) {
	return s.History.ListByUser(ctx, s.User(userID))
}

// RecordQuery appends a history entry and resets the user's recommendations.
func (s *Service) RecordQuery(ctx context.Context, cmd RecordQueryCommand) (screening.HistoryEntry, error) {
	var missing []string
	if strings.TrimSpace(cmd.UserID) == "" {
		missing = append(missing, "userId")
	}
	if strings.TrimSpace(cmd.SearchQuery) == "" {
		missing = append(missing, "searchQuery")
	}
	if strings.TrimSpace(cmd.Intent) == "" {
		missing = append(missing, "intent")
	}
	if len(missing) > 0 {
		return screening.HistoryEntry{}, &screening.ValidationError{Fields: missing}
	}

	entities := maps.Clone(cmd.Entities)
	if entities == nil {
		entities = map[string]any{}
	}
	e := screening.HistoryEntry{
		HistoryID:   s.historyID(),
		UserID:      cmd.UserID,
		SearchQuery: cmd.SearchQuery,
		Intent:      cmd.Intent,
		Entities:    entities,
		Timestamp:   s.Clock.Now(),
	}
	if err := s.History.Save(ctx, &e); err != nil {
		return screening.HistoryEntry{}, fmt.Errorf("save history: %w", err)
	}
	s.invalidate(ctx, cmd.UserID)
	return e, nil
}

// Recommendations returns the personal recommendations followed by the global ones.
func (s *Service) Recommendations(ctx context.Context, userID string) ([]screening.Recommendation, error) {
	personal, err := s.personalRecommendations(ctx, s.User(userID))
	if err != nil {
		return nil, err
	}
	return slices.Concat(personal, GlobalRecommendations), nil
}

func (s *Service) personalRecommendations(ctx context.Context, userID string) ([]screening.Recommendation, error) {
	if s.Cache != nil {
		recs, ok, err := s.Cache.Get(ctx, userID)
		if err != nil {
			s.log().WithError(err).Warn("recommendation cache read failed", map[string]any{"userId": userID})
		} else if ok {
			return recs, nil
		}
	}

	entries, err := s.History.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	recs := BuildPersonalRecommendations(entries)

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, userID, recs, s.CacheTTL); err != nil {
			s.log().WithError(err).Warn("recommendation cache write failed", map[string]any{"userId": userID})
		}
	}
	return recs, nil
}

// BuildPersonalRecommendations picks up to three distinct intents from the
// newest entries and suggests re-running the newest query of each.
func BuildPersonalRecommendations(entries []screening.HistoryEntry) []screening.Recommendation {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b screening.HistoryEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	recs := []screening.Recommendation{}
	seen := map[string]bool{}
	for _, e := range sorted {
		if seen[e.Intent] {
			continue
		}
		seen[e.Intent] = true
		recs = append(recs, screening.Recommendation{
			Type:           screening.RecommendationPersonal,
			Title:          "Revisit: " + e.SearchQuery,
			Description:    "Jump back into your recent workflow with a single tap.",
			SuggestedQuery: e.SearchQuery,
		})
		if len(recs) == maxPersonalRecommendations {
			break
		}
	}
	return recs
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx, userID); err != nil {
		s.log().WithError(err).Warn("recommendation cache invalidation failed", map[string]any{"userId": userID})
	}
}

//
// ==== SNAPSHOT ====
//

// Snapshot is everything the dashboard renders on load.
type Snapshot struct {
	Applicants          []screening.Applicant           `json:"applicants"`
	VerificationSummary []screening.VerificationDay     `json:"verificationSummary"`
	CaseStatuses        []screening.CaseStatus          `json:"caseStatuses"`
	Alerts              []screening.Alert               `json:"alerts"`
	Benchmarks          []screening.TurnaroundBenchmark `json:"benchmarks"`
	History             []screening.HistoryEntry        `json:"history"`
	Recommendations     []screening.Recommendation      `json:"recommendations"`
	ProgressStreams     []screening.ProgressStream      `json:"progressStreams"`
	DelayInsights       []screening.DelayInsight        `json:"delayInsights"`
}

// Snapshot gathers all collections concurrently; the first error wins.
func (s *Service) Snapshot(ctx context.Context, userID string) (*Snapshot, error) {
	userID = s.User(userID)
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) { snap.Applicants, err = s.Provider.Applicants(ctx); return })
	g.Go(func() (err error) { snap.VerificationSummary, err = s.Provider.VerificationSummary(ctx); return })
	g.Go(func() (err error) { snap.CaseStatuses, err = s.Provider.CaseStatuses(ctx); return })
	g.Go(func() (err error) { snap.Alerts, err = s.Provider.Alerts(ctx); return })
	g.Go(func() (err error) { snap.Benchmarks, err = s.Provider.Benchmarks(ctx); return })
	g.Go(func() (err error) { snap.History, err = s.History.ListByUser(ctx, userID); return })
	g.Go(func() (err error) { snap.Recommendations, err = s.Recommendations(ctx, userID); return })
	g.Go(func() (err error) { snap.ProgressStreams, err = s.Provider.ProgressStreams(ctx); return })
	g.Go(func() (err error) { snap.DelayInsights, err = s.Provider.DelayInsights(ctx); return })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}
