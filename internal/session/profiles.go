package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/pkg/circuitbreaker"
)

// ProfileStore keeps the profile that came with a token at login.
type ProfileStore interface {
	Get(ctx context.Context, token string) (model.Profile, bool, error)
	Set(ctx context.Context, token string, p model.Profile, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// MemoryProfiles is a per-process ProfileStore.
type MemoryProfiles struct {
	c *cache.Cache
}

func NewMemoryProfiles(ttl time.Duration) *MemoryProfiles {
	return &MemoryProfiles{c: cache.New(ttl, 10*time.Minute)}
}

func (m *MemoryProfiles) Get(_ context.Context, token string) (model.Profile, bool, error) {
	v, ok := m.c.Get(token)
	if !ok {
		return model.Profile{}, false, nil
	}
	return v.(model.Profile), true, nil
}

func (m *MemoryProfiles) Set(_ context.Context, token string, p model.Profile, ttl time.Duration) error {
	m.c.Set(token, p, ttl)
	return nil
}

func (m *MemoryProfiles) Delete(_ context.Context, token string) error {
	m.c.Delete(token)
	return nil
}

// RedisProfiles shares profiles between console replicas. Calls go through
// a circuit breaker so a dead Redis costs one fast error per request.
type RedisProfiles struct {
	client *redis.Client
	cb     *circuitbreaker.CircuitBreaker
	prefix string
}

func NewRedisProfiles(ctx context.Context, url string) (*RedisProfiles, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return newRedisProfiles(client), nil
}

func newRedisProfiles(client *redis.Client) *RedisProfiles {
	return &RedisProfiles{
		client: client,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-profiles",
			MaxFailures: 5,
			Timeout:     5 * time.Second,
		}),
		prefix: "profile:",
	}
}

func (r *RedisProfiles) key(token string) string {
	return r.prefix + token
}

func (r *RedisProfiles) Get(ctx context.Context, token string) (model.Profile, bool, error) {
	var raw []byte
	err := r.cb.Execute(func() error {
		var err error
		raw, err = r.client.Get(ctx, r.key(token)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	})
	if err != nil {
		return model.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	if raw == nil {
		return model.Profile{}, false, nil
	}

	var p model.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Profile{}, false, fmt.Errorf("decode profile: %w", err)
	}
	return p, true, nil
}

func (r *RedisProfiles) Set(ctx context.Context, token string, p model.Profile, ttl time.Duration) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return r.cb.Execute(func() error {
		return r.client.Set(ctx, r.key(token), raw, ttl).Err()
	})
}

func (r *RedisProfiles) Delete(ctx context.Context, token string) error {
	return r.cb.Execute(func() error {
		return r.client.Del(ctx, r.key(token)).Err()
	})
}

func (r *RedisProfiles) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisProfiles) Close() error {
	return r.client.Close()
}
