// Package cache provides the Redis-backed calendar view cache. Entries are
// keyed per schedule and range and dropped wholesale on any mutation of the
// schedule.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/praxisdesk/availability/internal/availability/application/queries"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "availability:calendar:"

// RedisCalendarCache implements queries.CalendarCache and the command side's
// CalendarInvalidator on one Redis client.
type RedisCalendarCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCalendarCache creates a calendar cache with the given entry TTL.
func NewRedisCalendarCache(client *redis.Client, ttl time.Duration) *RedisCalendarCache {
	return &RedisCalendarCache{client: client, ttl: ttl}
}

func cacheKey(scheduleID uuid.UUID, from, to time.Time) string {
	return fmt.Sprintf("%s%s:%d:%d", keyPrefix, scheduleID, from.Unix(), to.Unix())
}

// Get returns the cached view for the exact schedule and range, if present.
func (c *RedisCalendarCache) Get(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) ([]queries.SlotDTO, bool, error) {
	data, err := c.client.Get(ctx, cacheKey(scheduleID, from, to)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var slots []queries.SlotDTO
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, false, err
	}
	return slots, true, nil
}

// Set stores the view under the schedule and range key.
func (c *RedisCalendarCache) Set(ctx context.Context, scheduleID uuid.UUID, from, to time.Time, slots []queries.SlotDTO) error {
	data, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(scheduleID, from, to), data, c.ttl).Err()
}

// Invalidate drops every cached range for the schedule.
func (c *RedisCalendarCache) Invalidate(ctx context.Context, scheduleID uuid.UUID) error {
	pattern := keyPrefix + scheduleID.String() + ":*"
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
