package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisKey = "verbdrill:progress"

// RedisStore keeps progress in one Redis hash: one field per card id, JSON encoded records.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

// NewRedisStore creates a RedisStore writing to key, or DefaultRedisKey when key is empty.
func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load implements Store. A missing hash is an empty Blob.
func (s *RedisStore) Load(ctx context.Context) (Blob, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("client.HGetAll(%s) > %w", s.key, err)
	}

	blob := make(Blob, len(fields))
	for field, value := range fields {
		id, err := strconv.Atoi(field)
		if err != nil {
			slog.Default().Warn("skip progress field with non numeric id", "key", s.key, "field", field)
			continue
		}
		var raw rawRecord
		if err := json.Unmarshal([]byte(value), &raw); err != nil {
			slog.Default().Warn("skip undecodable progress field", "key", s.key, "id", id, "error", err)
			continue
		}
		record, ok := raw.toRecord()
		if !ok {
			slog.Default().Warn("skip malformed progress field", "key", s.key, "id", id)
			continue
		}
		blob[id] = record
	}
	return blob, nil
}

// Save implements Store. HSET touches only the field of cardID.
func (s *RedisStore) Save(ctx context.Context, cardID int, record Record) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("json.Marshal(%d) > %w", cardID, err)
	}
	if err := s.client.HSet(ctx, s.key, strconv.Itoa(cardID), string(value)).Err(); err != nil {
		return fmt.Errorf("client.HSet(%s, %d) > %w", s.key, cardID, err)
	}
	return nil
}
