package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"

	"github.com/robfig/cron/v3"
)

const DefaultSweepSpec = "@every 1m"

// MemoryCache keeps results in process memory. A cron job drops records
// older than the retention period; nothing survives a restart.
type MemoryCache struct {
	mu        sync.RWMutex
	results   map[string][]model.SentimentResult
	nextID    int64
	retention time.Duration
	now       func() time.Time
	cron      *cron.Cron
}

func NewMemoryCache(retention time.Duration) *MemoryCache {
	return &MemoryCache{
		results:   make(map[string][]model.SentimentResult),
		retention: retention,
		now:       time.Now,
	}
}

// StartSweeper schedules Sweep on spec (cron syntax or "@every <duration>").
func (c *MemoryCache) StartSweeper(spec string) error {
	cr := cron.New()
	if _, err := cr.AddFunc(spec, func() {
		removed := c.Sweep()
		if removed > 0 {
			slog.Debug("memory cache swept", "removed", removed)
		}
	}); err != nil {
		return err
	}

	c.mu.Lock()
	c.cron = cr
	c.mu.Unlock()

	cr.Start()
	return nil
}

func (c *MemoryCache) Lookup(ctx context.Context, symbol string, notBefore time.Time) (*model.SentimentResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var latest *model.SentimentResult
	for i := range c.results[symbol] {
		r := &c.results[symbol][i]
		if !r.Timestamp.After(notBefore) {
			continue
		}
		if latest == nil || !r.Timestamp.Before(latest.Timestamp) {
			latest = r
		}
	}

	if latest == nil {
		return nil, nil
	}

	out := *latest
	out.Headlines = append([]model.Headline(nil), latest.Headlines...)
	return &out, nil
}

func (c *MemoryCache) Store(ctx context.Context, result *model.SentimentResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	result.ID = c.nextID

	stored := *result
	stored.Headlines = append([]model.Headline(nil), result.Headlines...)
	if stored.Timestamp.IsZero() {
		stored.Timestamp = c.now().UTC()
	}

	c.results[result.Symbol] = append(c.results[result.Symbol], stored)
	return nil
}

// Sweep removes records older than the retention period and reports how
// many were dropped. A zero retention keeps everything.
func (c *MemoryCache) Sweep() int {
	if c.retention <= 0 {
		return 0
	}

	cutoff := c.now().Add(-c.retention)

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for symbol, results := range c.results {
		kept := results[:0]
		for _, r := range results {
			if r.Timestamp.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, r)
		}

		if len(kept) == 0 {
			delete(c.results, symbol)
			continue
		}
		c.results[symbol] = kept
	}

	return removed
}

func (c *MemoryCache) Ping(ctx context.Context) error {
	return nil
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	cr := c.cron
	c.cron = nil
	c.mu.Unlock()

	if cr != nil {
		<-cr.Stop().Done()
	}
	return nil
}
