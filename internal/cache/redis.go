package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for cached answers
	answerKeyPrefix = "answer:"

	// Key prefix for uploaded files
	uploadKeyPrefix = "upload:"
)

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache client
func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{
		client: client,
	}, nil
}

// GetAnswer retrieves a cached answer by key
func (c *RedisCache) GetAnswer(ctx context.Context, key string) (*Answer, error) {
	var answer Answer
	found, err := c.get(ctx, answerKeyPrefix+key, &answer)
	if err != nil || !found {
		return nil, err
	}
	return &answer, nil
}

// SetAnswer stores an answer with TTL
func (c *RedisCache) SetAnswer(ctx context.Context, key string, answer *Answer, ttl time.Duration) error {
	return c.set(ctx, answerKeyPrefix+key, answer, ttl)
}

// GetUpload retrieves an uploaded file by dataset id
func (c *RedisCache) GetUpload(ctx context.Context, id string) (*Upload, error) {
	var upload Upload
	found, err := c.get(ctx, uploadKeyPrefix+id, &upload)
	if err != nil || !found {
		return nil, err
	}
	return &upload, nil
}

// SetUpload stores an uploaded file with TTL
func (c *RedisCache) SetUpload(ctx context.Context, id string, upload *Upload, ttl time.Duration) error {
	return c.set(ctx, uploadKeyPrefix+id, upload, ttl)
}

// Close closes the cache connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil // Cache miss
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}
