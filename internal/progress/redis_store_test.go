package progress

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return NewRedisStore(client, ""), server
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, server := newRedisStore(t)

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	first := Record{Weight: 50, CorrectCount: 1, NextReviewAt: 1060, LastReviewedAt: int64Ptr(1000)}
	other := NewRecord()
	require.NoError(t, store.Save(ctx, 1, first))
	require.NoError(t, store.Save(ctx, 2, other))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Blob{1: first, 2: other}, got)
	assert.Equal(t, `{"weight":100,"correct_count":0,"next_review_at":0}`, server.HGet(DefaultRedisKey, "2"))
}

func TestRedisStore_LoadSkipsMalformedFields(t *testing.T) {
	ctx := context.Background()
	store, server := newRedisStore(t)

	server.HSet(DefaultRedisKey,
		"1", `{"weight":50,"next_review_at":1060}`,
		"2", `not json`,
		"x", `{"weight":50,"correct_count":1,"next_review_at":1060}`,
		"3", `{"weight":12.5,"correct_count":3,"next_review_at":86400}`,
	)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Blob{3: {Weight: 12.5, CorrectCount: 3, NextReviewAt: 86400}}, got)
}

func TestRedisStore_ServerError(t *testing.T) {
	store, server := newRedisStore(t)
	server.Close()

	_, err := store.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, store.Save(context.Background(), 1, NewRecord()))
}
