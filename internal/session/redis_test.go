package session

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/geo_checkin/internal/visit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisStore подключается к REDIS_ADDR; без него тест пропускается
func newTestRedisStore(t *testing.T) *RedisStore {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return NewRedisStore(client, time.Minute)
}

func TestRedisStore_CreateGet(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()
	s := visit.NewSession("user_123", time.Now())
	t.Cleanup(func() { store.redisClient.Del(ctx, sessionKey(s.ID)) })

	require.NoError(t, store.Create(ctx, s))
	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, "user_123", got.UserID)

	ttl, err := store.redisClient.TTL(ctx, sessionKey(s.ID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_UpdateAbortsOnError(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()
	s := visit.NewSession("u", time.Now())
	t.Cleanup(func() { store.redisClient.Del(ctx, sessionKey(s.ID)) })
	require.NoError(t, store.Create(ctx, s))

	boom := errors.New("boom")
	_, err := store.Update(ctx, s.ID, func(cur *visit.Session) (*visit.Session, error) {
		cur.LocateRequests = 10
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LocateRequests)

	_, err = store.Update(ctx, uuid.New(), func(cur *visit.Session) (*visit.Session, error) { return cur, nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_UpdateSerialized(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()
	s := visit.NewSession("u", time.Now())
	t.Cleanup(func() { store.redisClient.Del(ctx, sessionKey(s.ID)) })
	require.NoError(t, store.Create(ctx, s))

	// меньше горутин, чем в тесте памяти: WATCH/MULTI ограничен maxUpdateRetries
	const workers = 4
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, s.ID, func(cur *visit.Session) (*visit.Session, error) {
				tr, err := visit.Apply(cur, visit.Refresh{}, time.Now())
				return tr.Session, err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, workers, got.LocateRequests)
}

func TestRedisStore_CanceledContext(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()
	s := visit.NewSession("u", time.Now())
	t.Cleanup(func() { store.redisClient.Del(ctx, sessionKey(s.ID)) })
	require.NoError(t, store.Create(ctx, s))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := store.Update(canceled, s.ID, func(cur *visit.Session) (*visit.Session, error) { return cur, nil })

	assert.ErrorIs(t, err, context.Canceled)
}
