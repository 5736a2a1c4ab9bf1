package web

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/jasperwreed/chatgpt-stats/internal/analytics"
)

// Cache memoizes the rendered payload JSON for a TTL. Rebuilds happen
// under the lock, so while one request recomputes, concurrent requests
// block and then reuse the fresh result instead of rebuilding again.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	build   func() (analytics.Payload, error)
	raw     []byte
	builtAt time.Time
}

func NewCache(ttl time.Duration, build func() (analytics.Payload, error)) *Cache {
	return &Cache{ttl: ttl, build: build}
}

// Get returns the cached payload JSON, rebuilding when stale or when
// force is set. The returned time is when the payload was built.
func (c *Cache) Get(force bool) ([]byte, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.raw != nil && time.Since(c.builtAt) < c.ttl {
		return c.raw, c.builtAt, nil
	}

	payload, err := c.build()
	if err != nil {
		// Serve the stale copy if we have one rather than a hard error.
		if c.raw != nil {
			return c.raw, c.builtAt, err
		}
		return nil, time.Time{}, err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, time.Time{}, err
	}
	c.raw = raw
	c.builtAt = time.Now()
	return c.raw, c.builtAt, nil
}
