package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/macrotrack/backend/internal/types"
)

// SummaryCache stores computed daily summaries between mutations. Every
// invalidation bumps the user's generation, and SetIfVersion refuses a
// summary computed under an older generation.
type SummaryCache interface {
	Get(ctx context.Context, userID uuid.UUID, date string) (*types.DailySummary, bool, error)
	// Version returns the user's current generation. Read it before loading
	// the data the summary is built from.
	Version(ctx context.Context, userID uuid.UUID) (int64, error)
	SetIfVersion(ctx context.Context, userID uuid.UUID, date string, version int64, summary *types.DailySummary) (bool, error)
	Invalidate(ctx context.Context, userID uuid.UUID, date string) error
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}

const (
	summaryKeyPrefix    = "summary"
	generationKeyPrefix = "summarygen"
)

func summaryKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("%s:%s:%s", summaryKeyPrefix, userID, date)
}

func generationKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", generationKeyPrefix, userID)
}

// RedisSummaryCache keeps summaries in Redis so every API instance shares them
type RedisSummaryCache struct {
	redis *redis.Client
	ttl   time.Duration
}

var _ SummaryCache = (*RedisSummaryCache)(nil)

// NewRedisSummaryCache creates a Redis-backed cache with the given entry TTL
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{redis: client, ttl: ttl}
}

func (c *RedisSummaryCache) Get(ctx context.Context, userID uuid.UUID, date string) (*types.DailySummary, bool, error) {
	data, err := c.redis.Get(ctx, summaryKey(userID, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var summary types.DailySummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return &summary, true, nil
}

func (c *RedisSummaryCache) Version(ctx context.Context, userID uuid.UUID) (int64, error) {
	return readGeneration(ctx, c.redis, userID)
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd stringGetter, userID uuid.UUID) (int64, error) {
	version, err := cmd.Get(ctx, generationKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// SetIfVersion watches the generation key so a concurrent invalidation
// aborts the write.
func (c *RedisSummaryCache) SetIfVersion(ctx context.Context, userID uuid.UUID, date string, version int64, summary *types.DailySummary) (bool, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return false, err
	}

	stored := false
	err = c.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, userID)
		if err != nil {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, summaryKey(userID, date), data, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, generationKey(userID))
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

func (c *RedisSummaryCache) Invalidate(ctx context.Context, userID uuid.UUID, date string) error {
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(userID))
		pipe.Del(ctx, summaryKey(userID, date))
		return nil
	})
	return err
}

// InvalidateUser bumps the generation before scanning, so a write that lands
// during the scan is either refused or deleted.
func (c *RedisSummaryCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	if err := c.redis.Incr(ctx, generationKey(userID)).Err(); err != nil {
		return err
	}

	pattern := fmt.Sprintf("%s:%s:*", summaryKeyPrefix, userID)
	iter := c.redis.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.redis.Del(ctx, keys...).Err()
}

// MemorySummaryCache is an in-process cache for single-instance deployments and tests
type MemorySummaryCache struct {
	mu          sync.RWMutex
	entries     map[string]types.DailySummary
	generations map[uuid.UUID]int64
}

var _ SummaryCache = (*MemorySummaryCache)(nil)

// NewMemorySummaryCache creates an empty in-process cache
func NewMemorySummaryCache() *MemorySummaryCache {
	return &MemorySummaryCache{
		entries:     make(map[string]types.DailySummary),
		generations: make(map[uuid.UUID]int64),
	}
}

// cloneSummary copies the Meals slice so callers never share it with the cache
func cloneSummary(summary types.DailySummary) types.DailySummary {
	if summary.Meals != nil {
		summary.Meals = append([]types.MealTotals(nil), summary.Meals...)
	}
	return summary
}

func (c *MemorySummaryCache) Get(_ context.Context, userID uuid.UUID, date string) (*types.DailySummary, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	summary, ok := c.entries[summaryKey(userID, date)]
	if !ok {
		return nil, false, nil
	}
	summary = cloneSummary(summary)
	return &summary, true, nil
}

func (c *MemorySummaryCache) Version(_ context.Context, userID uuid.UUID) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generations[userID], nil
}

func (c *MemorySummaryCache) SetIfVersion(_ context.Context, userID uuid.UUID, date string, version int64, summary *types.DailySummary) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[userID] != version {
		return false, nil
	}
	c.entries[summaryKey(userID, date)] = cloneSummary(*summary)
	return true, nil
}

func (c *MemorySummaryCache) Invalidate(_ context.Context, userID uuid.UUID, date string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	delete(c.entries, summaryKey(userID, date))
	return nil
}

func (c *MemorySummaryCache) InvalidateUser(_ context.Context, userID uuid.UUID) error {
	prefix := fmt.Sprintf("%s:%s:", summaryKeyPrefix, userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}
