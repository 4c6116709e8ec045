// internal/services/summary_cache_test.go
package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/medialicense-backend/internal/cache"
	"github.com/javajoker/medialicense-backend/internal/models"
)

// brokenStore fails every operation, standing in for an unreachable redis.
type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("connection refused")
}

func (brokenStore) Delete(ctx context.Context, key string) error {
	return errors.New("connection refused")
}

func TestSummaryFallsBackWhenStoreIsDown(t *testing.T) {
	db := newTestDB(t)
	seedTrack(t, db, "Titles underscore")

	summary := NewWorkflowSummaryCache(db, brokenStore{}, "workflow-summary", 5*time.Minute)

	counts, err := summary.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.StatusPending])
	assert.Len(t, counts, len(models.AllStatuses))

	// Invalidation against a dead store must not panic or propagate.
	summary.Invalidate(context.Background())
}

func TestSummaryDiscardsCorruptCacheEntry(t *testing.T) {
	db := newTestDB(t)
	seedTrack(t, db, "Titles underscore")

	store := cache.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.SetWithTTL(ctx, "workflow-summary", []byte("{not json"), time.Minute))

	summary := NewWorkflowSummaryCache(db, store, "workflow-summary", 5*time.Minute)

	counts, err := summary.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.StatusPending])

	// The bad entry was overwritten by the refill.
	raw, err := store.Get(ctx, "workflow-summary")
	require.NoError(t, err)
	assert.JSONEq(t, `{"pending":1,"in_review":0,"negotiating":0,"approved":0,"rejected":0,"expired":0}`, string(raw))
}

func TestSummaryZeroCountsOnEmptyDatabase(t *testing.T) {
	db := newTestDB(t)
	summary := NewWorkflowSummaryCache(db, cache.NewMemoryStore(), "workflow-summary", 5*time.Minute)

	counts, err := summary.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Len(t, counts, len(models.AllStatuses))
	for status, count := range counts {
		assert.Zero(t, count, "expected zero count for %s", status)
	}
}
