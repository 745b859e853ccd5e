package cache

import (
	"context"
	"testing"
	"time"

	"solosolver-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_StableAndDistinct(t *testing.T) {
	type filter struct {
		UserId string
		Limit  int
	}

	a, err := Key(filter{UserId: "u1", Limit: 20})
	require.NoError(t, err)
	b, err := Key(filter{UserId: "u1", Limit: 20})
	require.NoError(t, err)
	c, err := Key(filter{UserId: "u2", Limit: 20})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, keyPrefix)
}

func TestSearchCache_NilClientIsAlwaysMiss(t *testing.T) {
	c := NewSearchCache(nil, time.Minute, logger.NewNopLogger())

	c.Set(context.Background(), "k", map[string]int{"a": 1})
	var out map[string]int
	assert.False(t, c.Get(context.Background(), "k", &out))
}

func TestSearchCache_UnreachableRedisIsBypassed(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	c := NewSearchCache(client, time.Minute, logger.NewNopLogger())

	assert.NotPanics(t, func() { c.Set(context.Background(), "k", "v") })
	var out string
	assert.False(t, c.Get(context.Background(), "k", &out))
}
