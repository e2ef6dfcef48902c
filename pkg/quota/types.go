package quota

import "time"

// Result contains the outcome of a quota check.
type Result struct {
	Limit     int       // Maximum tokens (bucket capacity)
	Remaining int       // Tokens remaining after the check
	ResetAt   time.Time // Time when tokens will next be refilled
}

// Allowed reports whether the call may proceed.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter returns how long to wait before the next attempt.
// Returns 0 if the call was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Config defines the token bucket configuration. Fields carry env tags so
// the gate can be configured through the process environment.
type Config struct {
	Capacity       int           `env:"QUOTA_CAPACITY" envDefault:"30"`
	RefillRate     int           `env:"QUOTA_REFILL_RATE" envDefault:"30"`
	RefillInterval time.Duration `env:"QUOTA_REFILL_INTERVAL" envDefault:"1m"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return ErrInvalidConfig
	}
	if c.RefillRate <= 0 {
		return ErrInvalidConfig
	}
	if c.RefillInterval <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
