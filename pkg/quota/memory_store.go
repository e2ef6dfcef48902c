package quota

import (
	"context"
	"sync"
	"time"
)

// bucketState is one identity's bucket. The refill parameters from the
// most recent use are captured on the state itself, so the sweeper can
// judge a bucket without a Config in hand.
type bucketState struct {
	tokens     int
	lastRefill time.Time

	capacity int
	rate     int
	interval time.Duration
}

// refill credits tokens for the whole intervals elapsed since the last
// refill, up to capacity. Tokens below zero (accumulated denials) are
// paid back before the bucket fills.
func (b *bucketState) refill(now time.Time) {
	if b.rate <= 0 || b.interval <= 0 {
		return
	}
	intervals := int64(now.Sub(b.lastRefill) / b.interval)
	if intervals <= 0 {
		return
	}
	deficit := int64(b.capacity) - int64(b.tokens)
	if intervals >= deficit || intervals*int64(b.rate) >= deficit {
		b.tokens = b.capacity
	} else {
		b.tokens += int(intervals * int64(b.rate))
	}
	b.lastRefill = now
}

// replenished reports whether the bucket would be full at now. Dropping a
// replenished bucket loses nothing: recreating it later yields the same
// full bucket.
func (b *bucketState) replenished(now time.Time) bool {
	if b.tokens >= b.capacity {
		return true
	}
	if b.rate <= 0 || b.interval <= 0 {
		return false
	}
	deficit := int64(b.capacity) - int64(b.tokens)
	intervals := int64(now.Sub(b.lastRefill) / b.interval)
	return intervals >= deficit || intervals*int64(b.rate) >= deficit
}

// MemoryStore implements Store with in-process state. Suitable for a
// single-node deployment; use RedisStore when the gate must be shared.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucketState

	sweepInterval time.Duration
	done          chan struct{}
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithSweepInterval sets how often replenished buckets are dropped.
// Zero disables the sweeper.
func WithSweepInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.sweepInterval = interval
	}
}

// NewMemoryStore creates an in-memory store. Unless disabled, a background
// sweeper keeps the bucket map bounded by the set of identities still
// below capacity.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:       make(map[string]*bucketState),
		sweepInterval: 5 * time.Minute,
		done:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ms)
	}

	if ms.sweepInterval > 0 {
		go ms.sweep()
	}

	return ms
}

// ConsumeTokens refills the bucket for elapsed time, then consumes.
func (ms *MemoryStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucketState{tokens: config.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}
	b.capacity = config.Capacity
	b.rate = config.RefillRate
	b.interval = config.RefillInterval
	b.refill(now)

	b.tokens -= tokens

	return b.tokens, b.lastRefill.Add(b.interval), nil
}

// Reset clears bucket state for the key.
func (ms *MemoryStore) Reset(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.buckets, key)
	return nil
}

func (ms *MemoryStore) sweep() {
	ticker := time.NewTicker(ms.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			ms.mu.Lock()
			for key, b := range ms.buckets {
				if b.replenished(now) {
					delete(ms.buckets, key)
				}
			}
			ms.mu.Unlock()
		case <-ms.done:
			return
		}
	}
}

// Close stops the sweeper. Safe to call more than once.
func (ms *MemoryStore) Close() {
	select {
	case <-ms.done:
	default:
		close(ms.done)
	}
}
