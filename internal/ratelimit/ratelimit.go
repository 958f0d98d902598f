// Package ratelimit provides the process-wide limiter shared by every
// component that talks to the network: a concurrency bound plus a token
// bucket over call starts. Many faculty-record workers acquire and release
// it concurrently; no token is held across anything but the guarded call.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// tokenBucket refills at a steady rate up to a burst capacity.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity), // Start with full bucket
		lastRefill: time.Now(),
	}
}

// take consumes one token if available. When the bucket is empty it
// returns the wait until the next token instead of blocking under the lock.
func (tb *tokenBucket) take() (ok bool, wait time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true, 0
	}

	needed := 1.0 - tb.tokens
	return false, time.Duration(needed / tb.refillRate * float64(time.Second))
}

// Limiter bounds both the number of in-flight external calls and the rate
// at which new calls start.
type Limiter struct {
	sem    *semaphore.Weighted
	bucket *tokenBucket
}

// New creates a limiter allowing at most maxConcurrent in-flight calls and
// callsPerSecond call starts. Either bound may be zero to disable it.
func New(maxConcurrent, callsPerSecond int) *Limiter {
	l := &Limiter{}
	if maxConcurrent > 0 {
		l.sem = semaphore.NewWeighted(int64(maxConcurrent))
	}
	if callsPerSecond > 0 {
		l.bucket = newTokenBucket(callsPerSecond, float64(callsPerSecond))
	}
	return l
}

// Acquire blocks until a call slot and a rate token are available, or the
// context is done. Callers must Release exactly once per successful Acquire.
func (l *Limiter) Acquire(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}

	if l.sem != nil {
		if err := l.sem.Acquire(ctx, 1); err != nil {
			return err
		}
	}

	if l.bucket != nil {
		for {
			ok, wait := l.bucket.take()
			if ok {
				return nil
			}
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				if l.sem != nil {
					l.sem.Release(1)
				}
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return nil
}

// Release returns the call slot taken by Acquire.
func (l *Limiter) Release() {
	if l != nil && l.sem != nil {
		l.sem.Release(1)
	}
}

// Do runs fn while holding the limiter. The slot is held for the duration
// of the call only.
func (l *Limiter) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()
	return fn(ctx)
}
