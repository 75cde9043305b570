package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"quotewatch/internal/quote"
	"quotewatch/internal/security"
)

// entry stores one cached quote with expiry.
type entry struct {
	expiresAt time.Time
	data      *quote.Data
}

// Client caches successful quotes per security for a TTL and coalesces
// concurrent refreshes of the same security into a single upstream call.
// Failures are never cached, so a security that produced no data is retried
// on the next request.
type Client struct {
	C        quote.Client
	TTL      time.Duration
	MaxItems int

	mu    sync.RWMutex
	items map[security.Identifier]entry
	sf    singleflight.Group
}

func (c *Client) Quote(ctx context.Context, id security.Identifier) (*quote.Data, error) {
	if c.TTL <= 0 {
		return c.C.Quote(ctx, id)
	}

	c.mu.RLock()
	e, ok := c.items[id]
	c.mu.RUnlock()
	if ok && time.Now().Before(e.expiresAt) {
		return e.data, nil
	}

	key := id.Market.String() + ":" + id.Code
	v, err, _ := c.sf.Do(key, func() (any, error) {
		data, err := c.C.Quote(ctx, id)
		if err != nil {
			return nil, err
		}
		c.store(id, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*quote.Data), nil
}

func (c *Client) store(id security.Identifier, data *quote.Data) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = make(map[security.Identifier]entry)
	}
	c.items[id] = entry{expiresAt: time.Now().Add(c.TTL), data: data}
	if c.MaxItems <= 0 || len(c.items) <= c.MaxItems {
		return
	}
	// best-effort cap: drop expired entries first, then arbitrary ones
	now := time.Now()
	for k, v := range c.items {
		if len(c.items) <= c.MaxItems {
			return
		}
		if now.After(v.expiresAt) {
			delete(c.items, k)
		}
	}
	for k := range c.items {
		if len(c.items) <= c.MaxItems {
			return
		}
		delete(c.items, k)
	}
}
