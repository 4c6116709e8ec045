// internal/services/summary_cache.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/medialicense-backend/internal/cache"
	"github.com/javajoker/medialicense-backend/internal/models"
)

// WorkflowSummaryCache serves the per-status license counts cache-aside.
// The cache store is a performance optimization only: every store failure
// is logged and the caller falls back to the repository.
type WorkflowSummaryCache struct {
	db    *gorm.DB
	store cache.Store
	key   string
	ttl   time.Duration
}

func NewWorkflowSummaryCache(db *gorm.DB, store cache.Store, key string, ttl time.Duration) *WorkflowSummaryCache {
	return &WorkflowSummaryCache{
		db:    db,
		store: store,
		key:   key,
		ttl:   ttl,
	}
}

// GetSummary returns the count of licenses per status. All six statuses
// are always present, zero included. Concurrent callers may race through
// a miss and both refill the cache; last writer wins.
func (c *WorkflowSummaryCache) GetSummary(ctx context.Context) (map[models.LicensingStatus]int64, error) {
	if raw, err := c.store.Get(ctx, c.key); err != nil {
		logrus.WithError(err).WithField("key", c.key).Error("Cache GET failed, falling back to repository")
	} else if raw != nil {
		var summary map[models.LicensingStatus]int64
		if err := json.Unmarshal(raw, &summary); err != nil {
			logrus.WithError(err).WithField("key", c.key).Error("Discarding undecodable cached summary")
		} else {
			return summary, nil
		}
	}

	summary, err := c.queryCounts(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(summary); err == nil {
		if err := c.store.SetWithTTL(ctx, c.key, raw, c.ttl); err != nil {
			logrus.WithError(err).WithField("key", c.key).Error("Cache SET failed")
		}
	}

	return summary, nil
}

// Invalidate removes the cached summary. It is idempotent and never fails
// the caller; store errors are logged and swallowed.
func (c *WorkflowSummaryCache) Invalidate(ctx context.Context) {
	if err := c.store.Delete(ctx, c.key); err != nil {
		logrus.WithError(err).WithField("key", c.key).Error("Cache DELETE failed")
	}
}

func (c *WorkflowSummaryCache) queryCounts(ctx context.Context) (map[models.LicensingStatus]int64, error) {
	var counts []models.StatusCount
	err := c.db.WithContext(ctx).
		Model(&models.License{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count licenses by status: %w", err)
	}

	summary := make(map[models.LicensingStatus]int64, len(models.AllStatuses))
	for _, status := range models.AllStatuses {
		summary[status] = 0
	}
	for _, row := range counts {
		summary[row.Status] = row.Count
	}

	return summary, nil
}
