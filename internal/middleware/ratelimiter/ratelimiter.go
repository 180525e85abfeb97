package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// PerClient keeps an independent token bucket per client key (an IP
// address for anonymous endpoints). A single mutex guards the map and
// the buckets; with a handful of credential requests per client that
// is far from being a bottleneck. Buckets idle past the expiration
// window are swept out lazily on lookup, so there are no timers and
// nothing to shut down.
type PerClient struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	rate       float64
	capacity   float64
	expiration time.Duration
	lastSweep  time.Time
}

func New(rate, capacity float64, expiration time.Duration) *PerClient {
	return &PerClient{
		buckets:    make(map[string]*bucket),
		rate:       rate,
		capacity:   capacity,
		expiration: expiration,
		lastSweep:  time.Now(),
	}
}

// Allow reports whether a request from the given client may proceed,
// consuming one token if so.
func (pc *PerClient) Allow(key string) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := time.Now()
	pc.sweep(now)

	b, ok := pc.buckets[key]
	if !ok {
		b = &bucket{tokens: pc.capacity, lastSeen: now}
		pc.buckets[key] = b
	}

	// refill for the time passed since this client was last seen
	b.tokens += now.Sub(b.lastSeen).Seconds() * pc.rate
	if b.tokens > pc.capacity {
		b.tokens = pc.capacity
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweep drops buckets idle past the expiration window. Runs at most
// once per window so lookups stay cheap. Caller holds pc.mu.
func (pc *PerClient) sweep(now time.Time) {
	if now.Sub(pc.lastSweep) < pc.expiration {
		return
	}
	pc.lastSweep = now

	for key, b := range pc.buckets {
		if now.Sub(b.lastSeen) >= pc.expiration {
			delete(pc.buckets, key)
		}
	}
}
