package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"quotewatch/internal/quote"
	"quotewatch/internal/security"
)

// TokenBucket is a stdlib-only token bucket limiter.
// - rate: tokens per second
// - capacity: maximum tokens the bucket can hold (burst)
type TokenBucket struct {
	rate     float64
	capacity float64

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

func NewTokenBucket(tokensPerSecond float64, burst int) *TokenBucket {
	if tokensPerSecond <= 0 {
		tokensPerSecond = 0.0000001
	}
	if burst <= 0 {
		burst = 1
	}
	return &TokenBucket{
		rate:     tokensPerSecond,
		capacity: float64(burst),
		tokens:   float64(burst), // start full to allow an initial burst
		last:     time.Now(),
	}
}

// take refills from elapsed time and claims one token. When the bucket is
// empty it reports how long until a full token accumulates.
func (tb *TokenBucket) take() (ok bool, wait time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	now := time.Now()
	if elapsed := now.Sub(tb.last).Seconds(); elapsed > 0 {
		tb.tokens = math.Min(tb.tokens+elapsed*tb.rate, tb.capacity)
		tb.last = now
	}
	if tb.tokens >= 1 {
		tb.tokens--
		return true, 0
	}
	return false, time.Duration((1 - tb.tokens) / tb.rate * float64(time.Second))
}

// wait blocks until one token is available or the context is canceled.
func (tb *TokenBucket) wait(ctx context.Context) error {
	for {
		ok, d := tb.take()
		if ok {
			return nil
		}
		if d <= 0 {
			d = time.Millisecond
		}
		t := time.NewTimer(d)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// TokenBucketClient wraps a quote.Client and gates calls using a token bucket.
type TokenBucketClient struct {
	C  quote.Client
	TB *TokenBucket
}

func (t *TokenBucketClient) Quote(ctx context.Context, id security.Identifier) (*quote.Data, error) {
	if t.TB != nil {
		if err := t.TB.wait(ctx); err != nil {
			return nil, err
		}
	}
	return t.C.Quote(ctx, id)
}
