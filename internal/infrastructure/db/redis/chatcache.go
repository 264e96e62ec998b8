package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/divyandj/pdfchat-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// ChatListCache stores per-user chat summaries as JSON under
// "chats:<userId>". Saves invalidate the key, but a concurrent list can
// re-populate it with a snapshot read just before the save, so the only hard
// freshness bound is the key TTL: a stale list is served for at most
// cacheTTL after the write that obsoleted it.
type ChatListCache struct {
	client *redis.Client
}

// NewChatListCache wraps the given Redis client.
func NewChatListCache(client *redis.Client) *ChatListCache {
	return &ChatListCache{client: client}
}

// Get returns the cached summaries and whether the key was present.
func (c *ChatListCache) Get(ctx context.Context, userID string) ([]domain.ChatSummary, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var summaries []domain.ChatSummary
	if err := json.Unmarshal(raw, &summaries); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return summaries, true, nil
}

// Set stores the summaries with the standard TTL.
func (c *ChatListCache) Set(ctx context.Context, userID string, summaries []domain.ChatSummary) error {
	raw, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(userID), raw, cacheTTL).Err()
}

// Invalidate drops the user's cached list.
func (c *ChatListCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *ChatListCache) key(userID string) string {
	return "chats:" + userID
}
