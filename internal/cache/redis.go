package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	resultKeyPrefix = "newssentiment:results:"
	resultIDKey     = "newssentiment:results:id"
)

// RedisCache keeps one list per symbol, newest record at the head.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

type redisRecord struct {
	ID               int64            `json:"id"`
	Symbol           string           `json:"symbol"`
	Timestamp        time.Time        `json:"timestamp"`
	Headlines        []model.Headline `json:"headlines"`
	OverallSentiment model.Sentiment  `json:"overall_sentiment"`
}

func resultKey(symbol string) string {
	return resultKeyPrefix + symbol
}

func (c *RedisCache) Store(ctx context.Context, result *model.SentimentResult) error {
	id, err := c.client.Incr(ctx, resultIDKey).Result()
	if err != nil {
		return fmt.Errorf("redis next id: %w", err)
	}

	rec := redisRecord{
		ID:               id,
		Symbol:           result.Symbol,
		Timestamp:        result.Timestamp.UTC(),
		Headlines:        result.Headlines,
		OverallSentiment: result.OverallSentiment,
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if err := c.client.LPush(ctx, resultKey(result.Symbol), data).Err(); err != nil {
		return fmt.Errorf("redis push %s: %w", result.Symbol, err)
	}

	result.ID = id
	return nil
}

func (c *RedisCache) Lookup(ctx context.Context, symbol string, notBefore time.Time) (*model.SentimentResult, error) {
	data, err := c.client.LIndex(ctx, resultKey(symbol), 0).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis read %s: %w", symbol, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}

	if !rec.Timestamp.After(notBefore) {
		return nil, nil
	}

	return &model.SentimentResult{
		ID:               rec.ID,
		Symbol:           rec.Symbol,
		Timestamp:        rec.Timestamp,
		Headlines:        rec.Headlines,
		OverallSentiment: rec.OverallSentiment,
	}, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
