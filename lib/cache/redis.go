package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisStore shares cached responses between instances. Keys are namespaced
// by path so a purge only touches the entries of one path.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, path string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "invoicehub:page:" + strings.Trim(path, "/") + ":",
	}
}

// NewRedis builds a PageCache whose stores live in redis.
func NewRedis(client *redis.Client, ttl time.Duration) *PageCache {
	return New(func(path string) (Store, error) {
		return NewRedisStore(client, path), nil
	}, ttl)
}

func (s *RedisStore) key(key uint64) string {
	return s.prefix + strconv.FormatUint(key, 36)
}

func (s *RedisStore) Get(key uint64) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	response, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		return nil, false
	}
	return response, true
}

func (s *RedisStore) Set(key uint64, response []byte, expiration time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	s.client.Set(ctx, s.key(key), response, time.Until(expiration))
}

func (s *RedisStore) Release(key uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	s.client.Del(ctx, s.key(key))
}

func (s *RedisStore) Purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*redisOpTimeout)
	defer cancel()
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			s.client.Del(ctx, keys...)
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
