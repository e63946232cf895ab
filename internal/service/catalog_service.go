package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rse-quest/internal/cache"
	"rse-quest/internal/catalog"
	"rse-quest/internal/domain"
	"rse-quest/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// cachedLevelCatalog decorates a level source with a Redis-backed
// cache of the flat level records. Concurrent misses for the same
// level are collapsed into one source load via singleflight.
type cachedLevelCatalog struct {
	source domain.LevelCatalog
	cache  domain.Cache
	ttl    time.Duration
	group  singleflight.Group
}

// NewCachedLevelCatalog wraps a level source with caching. A nil
// cache returns the source unchanged, so callers need no branching
// when Redis is disabled.
func NewCachedLevelCatalog(source domain.LevelCatalog, levelCache domain.Cache, ttl time.Duration) domain.LevelCatalog {
	if levelCache == nil {
		return source
	}
	return &cachedLevelCatalog{
		source: source,
		cache:  levelCache,
		ttl:    ttl,
	}
}

// GetLevel implements domain.LevelCatalog
func (c *cachedLevelCatalog) GetLevel(ctx context.Context, levelID int) (*domain.Level, error) {
	key := cache.GenerateCacheKey("catalog", "level", fmt.Sprintf("%d", levelID))

	cached, err := c.cache.Get(ctx, key)
	if err == nil {
		var rec catalog.LevelRecord
		if err := json.Unmarshal([]byte(cached), &rec); err == nil {
			return catalog.ParseLevel(rec), nil
		}
		// A corrupt entry is dropped and reloaded from the source
		logger.Get().Warn("Dropping corrupt cached level record",
			zap.String("key", key), zap.Error(err))
		_ = c.cache.Delete(ctx, key)
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Level cache read failed, falling back to source",
			zap.String("key", key), zap.Error(err))
	}

	result, err, _ := c.group.Do(key, func() (interface{}, error) {
		level, err := c.source.GetLevel(ctx, levelID)
		if err != nil {
			return nil, err
		}

		rec := catalog.LevelToRecord(level)
		if data, err := json.Marshal(rec); err == nil {
			if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
				logger.Get().Warn("Level cache write failed",
					zap.String("key", key), zap.Error(err))
			}
		}
		return level, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Level), nil
}

// ListLevels implements domain.LevelCatalog. The index is small and
// changes with the catalog file, so it goes to the source directly.
func (c *cachedLevelCatalog) ListLevels(ctx context.Context) ([]domain.LevelSummary, error) {
	return c.source.ListLevels(ctx)
}
