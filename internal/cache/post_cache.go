package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"miniblog/internal/model"
)

// PostCache keeps recently read posts in Redis so hot posts skip the
// database. Entries are dropped on any mutation of the post.
type PostCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewPostCache(client *redisv9.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &PostCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *PostCache) Get(ctx context.Context, postID uint) (*model.Post, bool, error) {
	raw, err := c.client.Get(ctx, c.key(postID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get post failed: %w", err)
	}

	var post model.Post
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached post failed: %w", err)
	}
	return &post, true, nil
}

func (c *PostCache) Set(ctx context.Context, post *model.Post) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(post.PostID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set post failed: %w", err)
	}
	return nil
}

func (c *PostCache) Delete(ctx context.Context, postID uint) error {
	if err := c.client.Del(ctx, c.key(postID)).Err(); err != nil {
		return fmt.Errorf("redis delete post failed: %w", err)
	}
	return nil
}

func (c *PostCache) key(postID uint) string {
	return fmt.Sprintf("post:%d", postID)
}
