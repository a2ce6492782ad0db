package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the document as a JSON string under pagekit:document:{handle}.
type RedisStore struct {
	client *redis.Client
	key    string
}

var _ interfaces.RemoteStore = (*RedisStore)(nil)

// NewRedisStore connects to redisURL.
func NewRedisStore(ctx context.Context, redisURL, handle string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisStoreWithClient(client, handle), nil
}

// NewRedisStoreWithClient creates a store from an existing client.
func NewRedisStoreWithClient(client *redis.Client, handle string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    "pagekit:document:" + handle,
	}
}

func (s *RedisStore) Fetch(ctx context.Context) (map[string]any, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, interfaces.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis fetch: %w", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("redis fetch: decode: %w", err)
	}
	return payload, nil
}

func (s *RedisStore) Replace(ctx context.Context, payload map[string]any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("redis replace: encode: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis replace: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
