package retrieve

import (
	"context"
	"sync"
	"time"

	"github.com/duna-akin/sitechat"
	"golang.org/x/time/rate"
)

var _ sitechat.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter enforces a minimum delay between successive requests to
// the same domain using per-domain token buckets. One limiter is shared by
// all in-flight requests so the politeness delay holds under concurrent
// load.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	delay    time.Duration
}

// NewDomainLimiter creates a DomainLimiter with the given minimum gap
// between requests to one domain. Each domain gets its own limiter with a
// burst of 1 (no bursting allowed).
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		delay:    delay,
	}
}

// Wait blocks until the politeness delay allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.delay), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
