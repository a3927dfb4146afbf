package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gasanadj/demo-rise360-backend/internal/domain"
	"github.com/gasanadj/demo-rise360-backend/pkg/log"
)

const chatHistoryKey = "chat:history"

// RedisMessageCache implements MessageCache over a Redis list.
type RedisMessageCache struct {
	client *redis.Client
	ttl    time.Duration
	maxLen int64
}

// NewRedisMessageCache creates a message cache with the given history TTL
// and maximum retained length.
func NewRedisMessageCache(client *redis.Client, ttl time.Duration, maxLen int64) *RedisMessageCache {
	return &RedisMessageCache{
		client: client,
		ttl:    ttl,
		maxLen: maxLen,
	}
}

// Append pushes one message onto the history list and refreshes the TTL.
func (c *RedisMessageCache) Append(ctx context.Context, msg *domain.ChatMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.RPush(ctx, chatHistoryKey, data)
	if c.maxLen > 0 {
		pipe.LTrim(ctx, chatHistoryKey, -c.maxLen, -1)
	}
	if c.ttl > 0 {
		pipe.Expire(ctx, chatHistoryKey, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("failed to append chat message to cache")
		return err
	}
	return nil
}

// Recent returns the cached history in write order. When the list has
// grown to the trim limit, older entries may already be gone, so the
// cache reports a miss instead of a possibly truncated backlog.
func (c *RedisMessageCache) Recent(ctx context.Context) ([]domain.ChatMessage, error) {
	l := log.Ctx(ctx)

	raw, err := c.client.LRange(ctx, chatHistoryKey, 0, -1).Result()
	if err != nil {
		l.Warn().Err(err).Msg("failed to read chat history from cache")
		return nil, err
	}
	if c.maxLen > 0 && int64(len(raw)) >= c.maxLen {
		return nil, nil
	}

	messages := make([]domain.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg domain.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			// A corrupt entry poisons the whole list; treat as a miss.
			l.Warn().Err(err).Msg("corrupt chat history entry in cache")
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Replace rewrites the history list atomically via a pipeline. A
// backlog at or past the trim limit is not cached: it would be cut down
// to maxLen and every later Recent would miss anyway.
func (c *RedisMessageCache) Replace(ctx context.Context, msgs []domain.ChatMessage) error {
	if c.maxLen > 0 && int64(len(msgs)) >= c.maxLen {
		return nil
	}

	pipe := c.client.Pipeline()
	pipe.Del(ctx, chatHistoryKey)

	if len(msgs) > 0 {
		values := make([]interface{}, 0, len(msgs))
		for i := range msgs {
			data, err := json.Marshal(&msgs[i])
			if err != nil {
				return err
			}
			values = append(values, data)
		}
		pipe.RPush(ctx, chatHistoryKey, values...)
		if c.maxLen > 0 {
			pipe.LTrim(ctx, chatHistoryKey, -c.maxLen, -1)
		}
		if c.ttl > 0 {
			pipe.Expire(ctx, chatHistoryKey, c.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("failed to replace chat history in cache")
		return err
	}
	return nil
}
