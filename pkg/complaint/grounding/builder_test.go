package grounding

import (
	"context"
	"errors"
	"testing"
	"time"

	"solosolver-be/internal/entity"
	"solosolver-be/internal/pkg/logger"
	"solosolver-be/internal/repository/memory"
	"solosolver-be/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rating(v float64) *float64 { return &v }

func seedStore() *testutil.MockStore {
	store := testutil.NewMockStore()
	store.AddTransactions(
		&entity.Transaction{UserId: "u1", ProductTitle: "Sneakers", InferredComplaintDriver: "Sizing Issue", ComplaintBodyText: "too small", TimestampReview: 5, RatingReview: rating(2)},
		&entity.Transaction{UserId: "u1", ProductTitle: "Lamp", InferredComplaintDriver: "Damaged Item", ComplaintBodyText: "lamp arrived broken", TimestampReview: 4, RatingReview: rating(1)},
		&entity.Transaction{UserId: "u1", ProductTitle: "Mug", InferredComplaintDriver: "Damaged Item", ComplaintBodyText: "chipped mug", TimestampReview: 3},
		&entity.Transaction{UserId: "u1", ProductTitle: "Socks", InferredComplaintDriver: "Sizing Issue", ComplaintBodyText: "socks too big", TimestampReview: 2, RatingReview: rating(4)},
		&entity.Transaction{UserId: "u1", ProductTitle: "Cable", InferredComplaintDriver: "Shipping Problem", ComplaintBodyText: "late", TimestampReview: 1},
		&entity.Transaction{UserId: "u2", ProductTitle: "Other", InferredComplaintDriver: "Damaged Item", ComplaintBodyText: "broken", TimestampReview: 9},
	)
	return store
}

func TestNewBuilder_ClampsTopK(t *testing.T) {
	store := testutil.NewMockStore()
	assert.Equal(t, 3, NewBuilder(store, nil, logger.NewNopLogger(), 1, 10).TopK())
	assert.Equal(t, 4, NewBuilder(store, nil, logger.NewNopLogger(), 4, 10).TopK())
	assert.Equal(t, 5, NewBuilder(store, nil, logger.NewNopLogger(), 9, 10).TopK())
}

func TestLoadHistory_ProfileAndCandidates(t *testing.T) {
	b := NewBuilder(seedStore(), nil, logger.NewNopLogger(), 3, 10)

	h := b.LoadHistory(context.Background(), "u1", "my lamp arrived broken")

	require.NotNil(t, h.Profile)
	assert.Equal(t, int64(5), h.Profile.PurchaseCount)
	assert.InDelta(t, 7.0/5.0, h.Profile.AvgRating, 1e-9)
	assert.Equal(t, []string{"Damaged Item", "Sizing Issue", "Shipping Problem"}, h.Profile.TopComplaintDrivers)
	require.Len(t, h.Candidates, 5)
	assert.Equal(t, "Lamp", h.Candidates[0].ProductTitle)
	for _, c := range h.Candidates {
		assert.Equal(t, "u1", c.UserId)
	}
}

func TestLoadHistory_StoreFailureDegrades(t *testing.T) {
	store := seedStore()
	store.FindErr = errors.New("connection refused")
	b := NewBuilder(store, nil, logger.NewNopLogger(), 3, 10)

	h := b.LoadHistory(context.Background(), "u1", "broken")
	ctx := b.Build(entity.Classification{Category: entity.CategoryDamagedItem}, h)

	assert.Nil(t, h.Profile)
	assert.Empty(t, h.Candidates)
	assert.Equal(t, NoHistoryProfile, ctx.ProfileSummary)
	assert.Equal(t, NoHistoryMatches, ctx.HistorySummary)
	assert.False(t, ctx.HasHistory)
}

func TestLoadHistory_UsesProfileCache(t *testing.T) {
	store := seedStore()
	cache := memory.NewProfileCache(time.Minute)
	b := NewBuilder(store, cache, logger.NewNopLogger(), 3, 10)

	b.LoadHistory(context.Background(), "u1", "x")
	b.LoadHistory(context.Background(), "u1", "x")

	assert.Equal(t, 1, store.StatsCalls)
	_, ok := cache.Get("u1")
	assert.True(t, ok)
}

func TestLoadHistory_StoredProfileFlags(t *testing.T) {
	store := seedStore()
	store.Profiles["u1"] = &entity.UserProfile{UserId: "u1", Name: "Dana", ComplaintCount: 9, IsChronicComplainer: true}
	b := NewBuilder(store, nil, logger.NewNopLogger(), 3, 10)

	h := b.LoadHistory(context.Background(), "u1", "x")

	assert.Equal(t, int64(9), h.Profile.ComplaintCount)
	assert.Contains(t, ProfileSummary(h.Profile), "frequent complainer")
}

func TestBuild_BoostsCategoryAndTruncates(t *testing.T) {
	b := NewBuilder(seedStore(), nil, logger.NewNopLogger(), 3, 10)
	h := b.LoadHistory(context.Background(), "u1", "nothing in common")

	ctx := b.Build(entity.Classification{Category: entity.CategorySizingIssue}, h)

	require.Len(t, ctx.MatchedTransactions, 3)
	assert.Equal(t, "Sneakers", ctx.MatchedTransactions[0].ProductTitle)
	assert.Equal(t, "Socks", ctx.MatchedTransactions[1].ProductTitle)
	assert.Equal(t, "Lamp", ctx.MatchedTransactions[2].ProductTitle)
	assert.True(t, ctx.HasHistory)
	assert.Equal(t, "Recent transactions: Sneakers - Sizing Issue, Socks - Sizing Issue, Lamp - Damaged Item", ctx.HistorySummary)
}

func TestBuild_NoHistory(t *testing.T) {
	b := NewBuilder(testutil.NewMockStore(), nil, logger.NewNopLogger(), 3, 10)
	h := b.LoadHistory(context.Background(), "new-user", "hello")

	ctx := b.Build(entity.Classification{Category: entity.CategoryOther}, h)

	assert.Empty(t, ctx.MatchedTransactions)
	assert.Equal(t, NoHistoryProfile, ctx.ProfileSummary)
	assert.Equal(t, NoHistoryMatches, ctx.HistorySummary)
}

func TestProfileSummary(t *testing.T) {
	assert.Equal(t, NoHistoryProfile, ProfileSummary(nil))
	assert.Equal(t,
		"Customer Profile: 4 previous transactions, average rating 3.5, common complaint categories: Sizing Issue, Damaged Item",
		ProfileSummary(&entity.UserProfile{PurchaseCount: 4, AvgRating: 3.5, TopComplaintDrivers: []string{"Sizing Issue", "Damaged Item"}}),
	)
}
