// Package cache provides the short-TTL redis snapshot of the dashboard
// aggregate. It is strictly best effort: any redis failure reads as a miss
// and writes are fire-and-forget, so the store stays the source of truth.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"sgc/internal/workflow/models"
)

const summaryKey = "sgc:workflow:dashboard-summary"

type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl, logger: logger}
}

func (c *SummaryCache) Get(ctx context.Context) (*models.DashboardSummary, bool) {
	payload, err := c.client.Get(ctx, summaryKey).Bytes()
	if err != nil {
		if err != redis.Nil && c.logger != nil {
			c.logger.WarnContext(ctx, "summary cache read failed", "error", err)
		}
		return nil, false
	}

	var summary models.DashboardSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		if c.logger != nil {
			c.logger.WarnContext(ctx, "summary cache payload corrupt, ignoring", "error", err)
		}
		return nil, false
	}
	return &summary, true
}

func (c *SummaryCache) Set(ctx context.Context, summary models.DashboardSummary) {
	payload, err := json.Marshal(summary)
	if err != nil {
		if c.logger != nil {
			c.logger.WarnContext(ctx, "summary cache marshal failed", "error", err)
		}
		return
	}
	if err := c.client.Set(ctx, summaryKey, payload, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.WarnContext(ctx, "summary cache write failed", "error", err)
	}
}
