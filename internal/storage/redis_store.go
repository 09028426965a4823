package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore records which daily digests have already been delivered, so a
// restart inside the delivery window does not send the same digest twice.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func deliveredKey(course, day string) string {
	return fmt.Sprintf("herald:delivered:%s:%s", course, day)
}

// IsDelivered reports whether the digest for the given UTC day was sent.
func (s *RedisStore) IsDelivered(ctx context.Context, course, day string) (bool, error) {
	res, err := s.rdb.Get(ctx, deliveredKey(course, day)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return res == "1", nil
}

// MarkDelivered records a sent digest. Markers expire after a month; they
// only need to outlive the day they guard.
func (s *RedisStore) MarkDelivered(ctx context.Context, course, day string) error {
	return s.rdb.Set(ctx, deliveredKey(course, day), "1", 30*24*time.Hour).Err()
}
