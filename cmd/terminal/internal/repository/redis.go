package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shubham-shewale/fx-terminal/pkg/models"
)

// Compile-time check to ensure RedisStore implements RateStore
var _ RateStore = (*RedisStore)(nil)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// GetSnapshots resolves the class index (SMEMBERS) and fetches the latest
// payloads in one MGET.
func (r *RedisStore) GetSnapshots(ctx context.Context, class models.Class) ([]string, error) {
	symbols, err := r.client.SMembers(ctx, models.IndexKey(class)).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s index: %w", class, err)
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	keys := make([]string, len(symbols))
	for i, sym := range symbols {
		keys[i] = models.QuoteKey(class, sym)
	}

	results, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read %s quotes: %w", class, err)
	}

	snapshots := make([]string, 0, len(results))
	for _, val := range results {
		if payload, ok := val.(string); ok && payload != "" {
			snapshots = append(snapshots, payload)
		}
	}
	return snapshots, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
