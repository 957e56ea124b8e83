package storage

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// SessionStore is the server-side allowlist of issued admin session tokens.
// A token that is not present here is dead even if its signature verifies.
type SessionStore interface {
	Put(ctx context.Context, token string, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

// RedisSessions backs the allowlist with Redis so sessions survive restarts
// and are shared across instances.
type RedisSessions struct {
	rdb *redis.Client
}

func NewRedisSessions(addr string) *RedisSessions {
	if addr == "" {
		addr = "localhost:6379"
		log.Warn("REDIS_URL not set, using localhost:6379 (development mode)")
	}
	return &RedisSessions{
		rdb: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   0,
		}),
	}
}

func (s *RedisSessions) Put(ctx context.Context, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, token, "true", ttl).Err()
}

func (s *RedisSessions) Exists(ctx context.Context, token string) (bool, error) {
	val, err := s.rdb.Get(ctx, token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

func (s *RedisSessions) Revoke(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, token).Err()
}

// MemorySessions keeps the allowlist in process memory. Used by tests and
// single-instance development runs without Redis.
type MemorySessions struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{tokens: make(map[string]time.Time)}
}

func (s *MemorySessions) Put(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (s *MemorySessions) Exists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.tokens[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(s.tokens, token)
		return false, nil
	}
	return true, nil
}

func (s *MemorySessions) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
