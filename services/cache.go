package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"dummyblog/models"

	"github.com/go-redis/redis/v8"
)

const (
	PAGE_CACHE_TTL    = 5 * time.Minute // TTL для кеша страниц постов
	PAGE_KEY_PREFIX   = "posts_page:"   // Префикс для ключей страниц в Redis
	PAGE_KEY_WILDCARD = PAGE_KEY_PREFIX + "*"
)

// PageCache кеширует страницы постов удаленного API в Redis.
// Без Redis кеш молча выключен, запросы идут напрямую в API.
type PageCache struct {
	client *redis.Client
}

func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{client: client}
}

func pageKey(limit, skip int) string {
	return fmt.Sprintf("%s%d:%d", PAGE_KEY_PREFIX, limit, skip)
}

// Get возвращает закешированную страницу или nil при промахе
func (pc *PageCache) Get(ctx context.Context, limit, skip int) *models.PostsResponse {
	if pc.client == nil {
		return nil
	}

	data, err := pc.client.Get(ctx, pageKey(limit, skip)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("ERROR: Failed to read page cache: %v", err)
		}
		return nil
	}

	var resp models.PostsResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		log.Printf("ERROR: Failed to unmarshal cached page: %v", err)
		return nil
	}
	return &resp
}

// Set кеширует страницу постов с TTL
func (pc *PageCache) Set(ctx context.Context, limit, skip int, resp *models.PostsResponse) {
	if pc.client == nil || resp == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		log.Printf("ERROR: Failed to marshal page for cache: %v", err)
		return
	}

	if err := pc.client.Set(ctx, pageKey(limit, skip), data, PAGE_CACHE_TTL).Err(); err != nil {
		log.Printf("ERROR: Failed to cache page: %v", err)
	}
}

// Invalidate сбрасывает все закешированные страницы.
// Вызывается после create/update/delete, чтобы лента не отдавала устаревшее.
func (pc *PageCache) Invalidate(ctx context.Context) {
	if pc.client == nil {
		return
	}

	iter := pc.client.Scan(ctx, 0, PAGE_KEY_WILDCARD, 0).Iterator()
	for iter.Next(ctx) {
		if err := pc.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("ERROR: Failed to delete cache key %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("ERROR: Failed to scan page cache keys: %v", err)
	}
}
