package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

// Store is the in-process data provider. It is safe for concurrent use and
// every read returns a copy, so callers hold an immutable snapshot.
type Store struct {
	mu   sync.RWMutex
	seed Seed
}

var (
	_ screening.Provider            = (*Store)(nil)
	_ screening.ApplicantRepository = (*Store)(nil)
)

func NewStore(seed Seed) *Store {
	return &Store{seed: seed}
}

func (s *Store) Applicants(context.Context) ([]screening.Applicant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]screening.Applicant, len(s.seed.Applicants))
	for i, a := range s.seed.Applicants {
		if a.VerifiedAt != nil {
			v := *a.VerifiedAt
			a.VerifiedAt = &v
		}
		out[i] = a
	}
	return out, nil
}

func (s *Store) CaseStatuses(context.Context) ([]screening.CaseStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]screening.CaseStatus, len(s.seed.CaseStatuses))
	for i, c := range s.seed.CaseStatuses {
		c.Events = slices.Clone(c.Events)
		out[i] = c
	}
	return out, nil
}

func (s *Store) Benchmarks(context.Context) ([]screening.TurnaroundBenchmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.seed.Benchmarks), nil
}

// VerificationSummary is sorted ascending by date.
func (s *Store) VerificationSummary(context.Context) ([]screening.VerificationDay, error) {
	s.mu.RLock()
	out := slices.Clone(s.seed.VerificationSummary)
	s.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b screening.VerificationDay) int {
		switch {
		case a.Date < b.Date:
			return -1
		case a.Date > b.Date:
			return 1
		}
		return 0
	})
	return out, nil
}

func (s *Store) DelayInsights(context.Context) ([]screening.DelayInsight, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.seed.DelayInsights), nil
}

func (s *Store) Alerts(context.Context) ([]screening.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.seed.Alerts), nil
}

func (s *Store) ProgressStreams(context.Context) ([]screening.ProgressStream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]screening.ProgressStream, len(s.seed.ProgressStreams))
	for i, p := range s.seed.ProgressStreams {
		p.Points = slices.Clone(p.Points)
		out[i] = p
	}
	return out, nil
}

// AddApplicant prepends a so the newest applicant is listed first.
func (s *Store) AddApplicant(_ context.Context, a screening.Applicant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed.Applicants = slices.Insert(s.seed.Applicants, 0, a)
	return nil
}

func (s *Store) RemoveApplicant(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.seed.Applicants, func(a screening.Applicant) bool { return a.ID == id })
	if i < 0 {
		return false, nil
	}
	s.seed.Applicants = slices.Delete(s.seed.Applicants, i, i+1)
	return true, nil
}

// HistoryStore keeps console history in memory.
type HistoryStore struct {
	mu      sync.RWMutex
	entries []screening.HistoryEntry
}

var _ screening.HistoryRepository = (*HistoryStore)(nil)

func NewHistoryStore(seed []screening.HistoryEntry) *HistoryStore {
	return &HistoryStore{entries: slices.Clone(seed)}
}

func (h *HistoryStore) Save(_ context.Context, e *screening.HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := *e
	cp.Entities = maps.Clone(e.Entities)
	h.entries = append(h.entries, cp)
	return nil
}

// ListByUser returns the user's entries in insertion order.
func (h *HistoryStore) ListByUser(_ context.Context, userID string) ([]screening.HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := []screening.HistoryEntry{}
	for _, e := range h.entries {
		if e.UserID == userID {
			e.Entities = maps.Clone(e.Entities)
			out = append(out, e)
		}
	}
	return out, nil
}

func (h *HistoryStore) Ping(context.Context) error { return nil }

type cacheItem struct {
	recs      []screening.Recommendation
	expiresAt time.Time
}

// RecommendationCache is the in-process fallback when Redis is not configured.
type RecommendationCache struct {
	mu    sync.Mutex
	items map[string]cacheItem
	now   func() time.Time
}

var _ screening.RecommendationCache = (*RecommendationCache)(nil)

func NewRecommendationCache() *RecommendationCache {
	return &RecommendationCache{items: make(map[string]cacheItem), now: time.Now}
}

func (c *RecommendationCache) Get(_ context.Context, userID string) ([]screening.Recommendation, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.items[userID]
	if !ok {
		return nil, false, nil
	}
	if !it.expiresAt.IsZero() && c.now().After(it.expiresAt) {
		delete(c.items, userID)
		return nil, false, nil
	}
	return slices.Clone(it.recs), true, nil
}

// Set stores recs; ttl <= 0 keeps them until invalidated.
func (c *RecommendationCache) Set(_ context.Context, userID string, recs []screening.Recommendation, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	it := cacheItem{recs: slices.Clone(recs)}
	if ttl > 0 {
		it.expiresAt = c.now().Add(ttl)
	}
	c.items[userID] = it
	return nil
}

func (c *RecommendationCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
	return nil
}
