package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/MelloMattGit/CFBPyckem/internal/domain/user"
	"github.com/MelloMattGit/CFBPyckem/internal/platform/id"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis under "session:<id>" with a TTL. The
// value is the serialized profile, so session resolution never touches
// Postgres.
type RedisStore struct {
	client *redis.Client
	ids    id.Generator
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ids id.Generator, ttl time.Duration) *RedisStore {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, ids: ids, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, profile user.Profile) (string, error) {
	sessionID, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	payload, err := sonic.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("encode session profile: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+sessionID, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sessionID, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (user.Profile, bool, error) {
	payload, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return user.Profile{}, false, nil
		}
		return user.Profile{}, false, fmt.Errorf("load session: %w", err)
	}

	var profile user.Profile
	if err := sonic.Unmarshal(payload, &profile); err != nil {
		return user.Profile{}, false, fmt.Errorf("decode session profile: %w", err)
	}
	return profile, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
