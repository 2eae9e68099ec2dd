package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"servicemap/internal/models"
	"servicemap/internal/source"
)

// RedisSource reads the dataset stored as a JSON array under one key.
type RedisSource struct {
	client *redis.Client
	key    string
}

func NewRedisSource(client *redis.Client, key string) *RedisSource {
	return &RedisSource{client: client, key: key}
}

func (s *RedisSource) Name() string { return "redis:" + s.key }

func (s *RedisSource) Fetch(ctx context.Context) ([]models.ServiceRecord, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("key %q not found", s.key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q from redis: %w", s.key, err)
	}
	return source.Decode(bytes.NewReader(data))
}

// Publish replaces the stored dataset.
func (s *RedisSource) Publish(ctx context.Context, records []models.ServiceRecord) error {
	if records == nil {
		records = []models.ServiceRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal services to JSON: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %q to redis: %w", s.key, err)
	}
	return nil
}
