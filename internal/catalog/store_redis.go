// Copyright (c) 2026 Bookhaven. All rights reserved.
// Author: dev@bookhaven.shop

package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookhaven/api/internal/platform/constants"
)

// cacheTTL bounds how stale a cached catalogue page can get even if an
// invalidation is ever missed.
const cacheTTL = 5 * time.Minute

// cachedList is the serialized form of a listing page.
type cachedList struct {
	Books []*Book `json:"books"`
	Total int     `json:"total"`
}

// # Redis Cache

// RedisCache implements the Cache interface on top of go-redis.
//
// All methods are best-effort: a Redis failure is logged at debug level and
// treated as a miss, so the catalogue keeps serving from PostgreSQL.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisCache creates the catalogue cache.
func NewRedisCache(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// GetList returns a cached listing page, or ok=false on a miss.
func (cache *RedisCache) GetList(context context.Context, key string) ([]*Book, int, bool) {
	raw, err := cache.client.Get(context, constants.RedisPrefixBookList+key).Bytes()
	if err != nil {
		cache.miss(context, err)
		return nil, 0, false
	}

	var entry cachedList
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, 0, false
	}

	return entry.Books, entry.Total, true
}

// SetList stores a listing page under the given key.
func (cache *RedisCache) SetList(context context.Context, key string, books []*Book, total int) {
	raw, err := json.Marshal(cachedList{Books: books, Total: total})
	if err != nil {
		return
	}

	if err := cache.client.Set(context, constants.RedisPrefixBookList+key, raw, cacheTTL).Err(); err != nil {
		cache.miss(context, err)
	}
}

// GetBook returns a cached book, or ok=false on a miss.
func (cache *RedisCache) GetBook(context context.Context, id string) (*Book, bool) {
	raw, err := cache.client.Get(context, constants.RedisPrefixBook+id).Bytes()
	if err != nil {
		cache.miss(context, err)
		return nil, false
	}

	book := &Book{}
	if err := json.Unmarshal(raw, book); err != nil {
		return nil, false
	}

	return book, true
}

// SetBook stores a single book.
func (cache *RedisCache) SetBook(context context.Context, book *Book) {
	raw, err := json.Marshal(book)
	if err != nil {
		return
	}

	if err := cache.client.Set(context, constants.RedisPrefixBook+book.ID, raw, cacheTTL).Err(); err != nil {
		cache.miss(context, err)
	}
}

// Invalidate drops every cached listing page plus the given book entries.
//
// Listing keys are enumerated with SCAN rather than KEYS so invalidation
// never blocks the Redis server on a large keyspace.
func (cache *RedisCache) Invalidate(context context.Context, bookIDs ...string) {
	iterator := cache.client.Scan(context, 0, constants.RedisPrefixBookList+"*", 100).Iterator()
	for iterator.Next(context) {
		if err := cache.client.Del(context, iterator.Val()).Err(); err != nil {
			cache.miss(context, err)
		}
	}
	if err := iterator.Err(); err != nil {
		cache.miss(context, err)
	}

	for _, id := range bookIDs {
		if err := cache.client.Del(context, constants.RedisPrefixBook+id).Err(); err != nil {
			cache.miss(context, err)
		}
	}
}

// miss logs a cache infrastructure failure. redis.Nil is an ordinary miss
// and is not logged.
func (cache *RedisCache) miss(context context.Context, err error) {
	if err == redis.Nil {
		return
	}
	cache.logger.DebugContext(context, "catalog_cache_unavailable", slog.String("error", err.Error()))
}
