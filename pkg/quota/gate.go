package quota

import (
	"context"
	"fmt"
	"time"
)

// Gate answers whether a caller identity may run another upload right now.
// The ingestion pipeline itself never consults the gate; the caller-facing
// layer checks it before invoking the pipeline.
type Gate interface {
	Allow(ctx context.Context, identity string) (*Result, error)
}

// Store is the bucket state backend. Implementations must be safe for
// concurrent use.
type Store interface {
	// ConsumeTokens attempts to consume tokens for the key and returns the
	// remaining count and next refill time. A negative remaining count
	// means the request should be denied.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	// Reset clears bucket state for the key.
	Reset(ctx context.Context, key string) error
}

// TokenBucket implements Gate over a pluggable Store.
type TokenBucket struct {
	store  Store
	config Config
}

// NewTokenBucket creates a token bucket gate.
func NewTokenBucket(store Store, config Config) (*TokenBucket, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &TokenBucket{store: store, config: config}, nil
}

// Allow consumes one token for the identity.
func (g *TokenBucket) Allow(ctx context.Context, identity string) (*Result, error) {
	return g.AllowN(ctx, identity, 1)
}

// AllowN consumes n tokens for the identity.
func (g *TokenBucket) AllowN(ctx context.Context, identity string, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	return g.consume(ctx, identity, n)
}

// Status returns the current state without consuming tokens.
func (g *TokenBucket) Status(ctx context.Context, identity string) (*Result, error) {
	return g.consume(ctx, identity, 0)
}

func (g *TokenBucket) consume(ctx context.Context, identity string, n int) (*Result, error) {
	if identity == "" {
		return nil, ErrEmptyIdentity
	}

	remaining, resetAt, err := g.store.ConsumeTokens(ctx, identity, n, g.config)
	if err != nil {
		return nil, err
	}

	return &Result{
		Limit:     g.config.Capacity,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the bucket for the identity.
func (g *TokenBucket) Reset(ctx context.Context, identity string) error {
	return g.store.Reset(ctx, identity)
}
