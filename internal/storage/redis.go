package storage

import (
	"context"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"nomadix/internal/models"
	"nomadix/internal/structures"
)

// RedisStore keeps each list as one JSON string value.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(ctx context.Context, conf structures.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("storage.NewRedisStore: ping %s: %w", conf.Addr, err)
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]models.LocationRecord, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.LocationRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage.RedisStore.Get: %w", err)
	}

	var records []models.LocationRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("storage.RedisStore.Get: decode %s: %w", key, err)
	}
	return records, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, records []models.LocationRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("storage.RedisStore.Set: %w", err)
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("storage.RedisStore.Set: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
