package api

import (
	"sync"

	"golang.org/x/time/rate"
)

// Default per-channel command rate limits.
const (
	defaultRateLimitRPS   = 5
	defaultRateLimitBurst = 10
)

// channelLimiters keeps one token bucket per channel so a noisy channel
// cannot starve the others.
type channelLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newChannelLimiters(rps float64, burst int) *channelLimiters {
	return &channelLimiters{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (c *channelLimiters) allow(channelID string) bool {
	c.mu.Lock()
	l, ok := c.limiters[channelID]
	if !ok {
		l = rate.NewLimiter(c.rps, c.burst)
		c.limiters[channelID] = l
	}
	c.mu.Unlock()

	return l.Allow()
}
