package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	publishedPostKeyPrefix = "post:published:%d"
	publishedListKey       = "posts:published"
)

const (
	// PostTTL bounds staleness of a cached published post.
	PostTTL = 5 * time.Minute
	// ListTTL is short because the published list changes on every publish.
	ListTTL = time.Minute
)

// PublishedPostKey is the cache key for a single published post.
func PublishedPostKey(postID uint) string {
	return fmt.Sprintf(publishedPostKeyPrefix, postID)
}

// PublishedListKey is the cache key for the first default-size page of the
// published posts listing. Other page sizes and offsets are never cached.
func PublishedListKey() string {
	return publishedListKey
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) on a miss or
// when the cache is disabled.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}
	s, err := client.Get(ctx, key).Result()
	if err != nil {
		// Misses and outages both fall back to the source of truth.
		return false, nil
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, errors.New("corrupt cache entry")
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL. Best effort.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if client == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	client.Set(ctx, key, b, ttl)
}

// Aside tries Redis first; on miss it calls fetch (which must populate dest)
// and stores the result with ttl.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	SetJSON(ctx, key, dest, ttl)
	return nil
}

// Invalidate removes a key from the cache.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops the cached post and the published listing.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PublishedPostKey(postID))
	Invalidate(ctx, publishedListKey)
}
