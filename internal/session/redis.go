package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/geo_checkin/internal/visit"
)

const (
	sessionKeyPrefix = "session:"
	maxUpdateRetries = 5
)

// RedisStore хранит сессии в Redis в виде JSON с TTL
type RedisStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// NewRedisStore создает хранилище сессий в Redis
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		redisClient: client,
		ttl:         ttl,
	}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *RedisStore) Create(ctx context.Context, s *visit.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.redisClient.Set(ctx, sessionKey(s.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id uuid.UUID) (*visit.Session, error) {
	return r.load(ctx, r.redisClient, id)
}

// Update использует оптимистическую транзакцию WATCH/MULTI; при конкурентной записи повторяет попытку
func (r *RedisStore) Update(ctx context.Context, id uuid.UUID, fn UpdateFunc) (*visit.Session, error) {
	key := sessionKey(id)
	var result *visit.Session

	txf := func(tx *redis.Tx) error {
		current, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		payload, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = next
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.redisClient.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("failed to update session %s: too many concurrent updates", id)
}

// getter - общий метод *redis.Client и *redis.Tx
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (r *RedisStore) load(ctx context.Context, c getter, id uuid.UUID) (*visit.Session, error) {
	val, err := c.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	s := &visit.Session{}
	if err := json.Unmarshal(val, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return s, nil
}
