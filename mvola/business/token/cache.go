package token

import (
	"sync/atomic"
	"time"

	"encore.app/mvola/model"
)

// SafetyMargin is subtracted from every token lifetime so a token is never sent right at expiry.
const SafetyMargin = 60 * time.Second

// Cache holds at most one access token. Reads and writes are lock free: the pair is swapped
// as a whole, so concurrent refreshes may both run and the last Store wins.
type Cache struct {
	current atomic.Pointer[model.CachedToken]
	now     func() time.Time
}

func NewCache() *Cache {
	return NewCacheWithClock(time.Now)
}

func NewCacheWithClock(now func() time.Time) *Cache {
	return &Cache{now: now}
}

// Valid returns the cached token if it is still usable.
func (c *Cache) Valid() (string, bool) {
	cached := c.current.Load()
	if cached == nil || cached.Value == "" {
		return "", false
	}
	if !c.now().Before(cached.ExpiresAt) {
		return "", false
	}
	return cached.Value, true
}

// Store replaces the cached token. The returned instant is the computed expiry.
func (c *Cache) Store(value string, ttl time.Duration) time.Time {
	expiresAt := c.now().Add(ttl - SafetyMargin)
	c.current.Store(&model.CachedToken{Value: value, ExpiresAt: expiresAt})
	return expiresAt
}

// ExpiresAt returns the expiry of the cached token, or the zero time when empty.
func (c *Cache) ExpiresAt() time.Time {
	if cached := c.current.Load(); cached != nil {
		return cached.ExpiresAt
	}
	return time.Time{}
}
