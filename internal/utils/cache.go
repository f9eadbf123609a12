package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem[V any] struct {
	Data      V
	ExpiresAt time.Time
}

// Cache is a bounded LRU with optional per-entry expiry. A zero ttl never expires.
type Cache[V any] struct {
	lruCache *lru.Cache[string, CacheItem[V]]
}

func NewCache[V any](size int) (*Cache[V], error) {
	l, err := lru.New[string, CacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lruCache: l}, nil
}

func (c *Cache[V]) Set(key string, data V, ttl time.Duration) {
	item := CacheItem[V]{Data: data}
	if ttl > 0 {
		item.ExpiresAt = time.Now().Add(ttl)
	}
	c.lruCache.Add(key, item)
}

// Get returns the cached value, dropping it if expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.lruCache.Get(key)
	if !ok {
		return zero, false
	}

	// 检查过期
	if !val.ExpiresAt.IsZero() && time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return zero, false
	}

	return val.Data, true
}

// Purge drops every entry.
func (c *Cache[V]) Purge() {
	c.lruCache.Purge()
}

func (c *Cache[V]) Len() int {
	return c.lruCache.Len()
}
