package ratelimit

import (
	"context"
	"sync"
	"time"

	"quotewatch/internal/quote"
	"quotewatch/internal/security"
)

// MinInterval wraps a quote.Client and enforces a minimum time between
// outbound requests. Each caller reserves the next free slot up front, so
// concurrent callers are spaced Interval apart in arrival order. A canceled
// context returns before the request is made.
type MinInterval struct {
	C        quote.Client
	Interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func (m *MinInterval) Quote(ctx context.Context, id security.Identifier) (*quote.Data, error) {
	if m.Interval > 0 {
		m.mu.Lock()
		wait := time.Until(m.next)
		if wait < 0 {
			wait = 0
		}
		m.next = time.Now().Add(wait + m.Interval)
		m.mu.Unlock()

		if wait > 0 {
			t := time.NewTimer(wait)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-t.C:
			}
		}
	}
	return m.C.Quote(ctx, id)
}
