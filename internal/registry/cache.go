package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/geo_checkin/internal/metrics"
	"github.com/sirupsen/logrus"
)

const rowsCacheKeyPrefix = "registry:rows:"

// CachedSource кеширует строки источника в Redis
type CachedSource struct {
	inner       Source
	redisClient *redis.Client
	ttl         time.Duration
	logger      *logrus.Logger
}

// NewCachedSource создает кеширующую обертку над источником
func NewCachedSource(inner Source, client *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedSource {
	return &CachedSource{
		inner:       inner,
		redisClient: client,
		ttl:         ttl,
		logger:      logger,
	}
}

// ReadRows отдает строки из кеша, при промахе читает источник и сохраняет результат.
// Ошибки Redis не блокируют чтение источника.
func (c *CachedSource) ReadRows(ctx context.Context, rangeName string) ([][]string, error) {
	key := rowsCacheKeyPrefix + rangeName
	log := c.logger.WithField("cache_key", key)

	val, err := c.redisClient.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rows [][]string
		if err := json.Unmarshal(val, &rows); err == nil {
			metrics.CacheHits.Inc()
			log.Debug("Registry rows served from cache")
			return rows, nil
		}
		log.Warn("Corrupted registry cache entry, reading source")
	case errors.Is(err, redis.Nil):
	default:
		log.WithError(err).Warn("Failed to read registry cache")
	}

	metrics.CacheMisses.Inc()
	rows, err := c.inner.ReadRows(ctx, rangeName)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal registry rows: %w", err)
	}
	if err := c.redisClient.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("Failed to store registry rows in cache")
	}
	return rows, nil
}
