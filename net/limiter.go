package net

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/ratelimit"
	"golang.org/x/time/rate"
)

// ThroughputLimiter is a token bucket counted in bytes. Each client gets one to cap
// its voice throughput. The configuration can be swapped at runtime.
type ThroughputLimiter struct {
	limiter atomic.Pointer[rate.Limiter]
}

// NewThroughputLimiter allows bytesPerSec sustained with bursts of up to burst bytes.
// burst must be at least the largest single payload or that payload is never allowed.
func NewThroughputLimiter(bytesPerSec, burst int) *ThroughputLimiter {
	l := &ThroughputLimiter{}
	l.limiter.Store(rate.NewLimiter(rate.Limit(bytesPerSec), burst))
	return l
}

// Allow reports whether n bytes may pass now, and consumes them if so.
func (l *ThroughputLimiter) Allow(n int) bool {
	return l.limiter.Load().AllowN(time.Now(), n)
}

// Wait blocks until n bytes may pass or ctx is done.
func (l *ThroughputLimiter) Wait(ctx context.Context, n int) error {
	return l.limiter.Load().WaitN(ctx, n)
}

// Reload replaces the limits. Tokens already consumed are forgotten.
func (l *ThroughputLimiter) Reload(bytesPerSec, burst int) {
	l.limiter.Store(rate.NewLimiter(rate.Limit(bytesPerSec), burst))
}

// FunnelLimiter is a leaky bucket pacing server-wide group fan-outs. A rate of zero
// or less disables pacing.
type FunnelLimiter struct {
	limiter atomic.Pointer[ratelimit.Limiter]
}

func NewFunnelLimiter(perSec int) *FunnelLimiter {
	l := &FunnelLimiter{}
	l.Reload(perSec)
	return l
}

// Take blocks until the next fan-out may start.
func (l *FunnelLimiter) Take() time.Time {
	return (*l.limiter.Load()).Take()
}

func (l *FunnelLimiter) Reload(perSec int) {
	var limiter ratelimit.Limiter
	if perSec <= 0 {
		limiter = ratelimit.NewUnlimited()
	} else {
		limiter = ratelimit.New(perSec)
	}
	l.limiter.Store(&limiter)
}
