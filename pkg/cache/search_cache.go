package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"solosolver-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "search:v1:"

// SearchCache is a read-through cache for search responses. A nil client or an
// unreachable Redis turns every call into a miss.
type SearchCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger logger.ILogger
}

func NewSearchCache(client redis.UniversalClient, ttl time.Duration, log logger.ILogger) *SearchCache {
	return &SearchCache{
		client: client,
		ttl:    ttl,
		logger: log,
	}
}

func (c *SearchCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Key hashes the normalized filter so any JSON-able value can be a key.
func Key(filter interface{}) (string, error) {
	raw, err := json.Marshal(filter)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return keyPrefix + hex.EncodeToString(sum[:]), nil
}

// Get decodes a cached value into dst and reports whether it was found.
func (c *SearchCache) Get(ctx context.Context, key string, dst interface{}) bool {
	if !c.enabled() {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("SEARCH", "Search cache read skipped", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.logger.Warn("SEARCH", "Dropping unreadable cache entry", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		c.client.Del(ctx, key)
		return false
	}
	return true
}

func (c *SearchCache) Set(ctx context.Context, key string, value interface{}) {
	if !c.enabled() {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Debug("SEARCH", "Search cache write skipped", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
