package data

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync"
	"time"

	"overnight-analyzer/internal/model"
)

// CacheEntry is one cached gateway response.
type CacheEntry struct {
	Frame     *model.SeriesResponse
	ExpiresAt time.Time
}

// ResponseCache is an in-memory TTL cache for gateway responses. It is
// meant for local development and repeated offline runs; it is disabled
// unless ENABLE_PROVIDER_CACHE=true and never runs when APP_ENV=production.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache if caching is enabled, else nil.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_PROVIDER_CACHE") != "true" {
		return nil
	}
	if os.Getenv("APP_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("PROVIDER_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalCache = &ResponseCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}
		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached frame if present and not expired.
func (c *ResponseCache) Get(key string) (*model.SeriesResponse, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Frame, true
}

// Set stores a frame in the cache.
func (c *ResponseCache) Set(key string, frame *model.SeriesResponse) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Frame:     frame,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*CacheEntry)
}

func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// CacheKey derives a deterministic key for a symbol/window request.
func CacheKey(symbol string, start time.Time) string {
	keyStr := symbol + ":" + model.FormatDate(start) + ":1d"
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
