package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"

	"github.com/Abdullah-Baher/social-app-back/models"
)

const feedKeyPrefix = "feed:"

// FeedCache keeps per-viewer feeds in Redis. Concurrent misses for the same
// viewer are collapsed into a single store read. A nil *FeedCache disables
// caching; Fetch then just calls the loader.
type FeedCache struct {
	rdb *redis.Client
	ttl time.Duration
	sf  singleflight.Group
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{rdb: rdb, ttl: ttl}
}

// Fetch returns the cached feed for viewerID, loading and caching it on miss.
func (c *FeedCache) Fetch(ctx context.Context, viewerID primitive.ObjectID, load func() ([]models.Post, error)) ([]models.Post, error) {
	if c == nil || c.rdb == nil {
		return load()
	}
	key := feedKeyPrefix + viewerID.Hex()
	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
			var posts []models.Post
			if err := json.Unmarshal(b, &posts); err == nil {
				return posts, nil
			}
		}
		posts, err := load()
		if err != nil {
			return nil, err
		}
		if b, err := json.Marshal(posts); err == nil {
			_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
		}
		return posts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Post), nil
}

// Invalidate drops the cached feeds of the given viewers. Cache errors are
// swallowed: a stale feed expires with the TTL anyway.
func (c *FeedCache) Invalidate(ctx context.Context, viewerIDs ...primitive.ObjectID) {
	if c == nil || c.rdb == nil || len(viewerIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(viewerIDs))
	for _, id := range viewerIDs {
		keys = append(keys, feedKeyPrefix+id.Hex())
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}
