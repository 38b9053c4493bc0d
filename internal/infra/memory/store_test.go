package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/checkops/internal/domain/screening"
)

func TestStore_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore(DefaultSeed())

	cases, err := s.CaseStatuses(ctx)
	require.NoError(t, err)
	cases[0].Events[0].Status = screening.EventFlagged
	cases[0].ApplicantName = "changed"

	again, err := s.CaseStatuses(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", again[0].ApplicantName)
	assert.Equal(t, screening.EventComplete, again[0].Events[0].Status)

	apps, err := s.Applicants(ctx)
	require.NoError(t, err)
	*apps[1].VerifiedAt = time.Time{}
	apps2, _ := s.Applicants(ctx)
	assert.False(t, apps2[1].VerifiedAt.IsZero())
}

func TestStore_VerificationSummarySorted(t *testing.T) {
	seed := DefaultSeed()
	seed.VerificationSummary = []screening.VerificationDay{
		{Date: "2025-09-20", Verified: 31},
		{Date: "2025-09-18", Verified: 29},
		{Date: "2025-09-19", Verified: 34},
	}
	s := NewStore(seed)

	days, err := s.VerificationSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, []string{"2025-09-18", "2025-09-19", "2025-09-20"}, []string{days[0].Date, days[1].Date, days[2].Date})
}

func TestStore_AddRemoveApplicant(t *testing.T) {
	ctx := context.Background()
	s := NewStore(DefaultSeed())

	require.NoError(t, s.AddApplicant(ctx, screening.Applicant{ID: "APP-2000", Name: "New Person"}))
	apps, _ := s.Applicants(ctx)
	assert.Equal(t, "APP-2000", apps[0].ID)
	assert.Len(t, apps, 6)

	ok, err := s.RemoveApplicant(ctx, "APP-1019")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.RemoveApplicant(ctx, "APP-1019")
	require.NoError(t, err)
	assert.False(t, ok)

	apps, _ = s.Applicants(ctx)
	assert.Len(t, apps, 5)
}

func TestHistoryStore_ListByUser(t *testing.T) {
	ctx := context.Background()
	h := NewHistoryStore(DefaultSeed().History)

	list, err := h.ListByUser(ctx, "hr-manager-1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, h.Save(ctx, &screening.HistoryEntry{HistoryID: "x", UserID: "hr-manager-1", Intent: "fallback"}))
	list, _ = h.ListByUser(ctx, "hr-manager-1")
	require.Len(t, list, 3)
	assert.Equal(t, "x", list[2].HistoryID)

	none, err := h.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRecommendationCache_TTLAndInvalidate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 9, 20, 12, 0, 0, 0, time.UTC)
	c := NewRecommendationCache()
	c.now = func() time.Time { return now }

	recs := []screening.Recommendation{{Type: screening.RecommendationPersonal, Title: "Revisit: x"}}
	require.NoError(t, c.Set(ctx, "u", recs, time.Minute))

	got, ok, err := c.Get(ctx, "u")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, recs, got)

	now = now.Add(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "u")
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "u", recs, 0))
	require.NoError(t, c.Invalidate(ctx, "u"))
	_, ok, _ = c.Get(ctx, "u")
	assert.False(t, ok)
}
