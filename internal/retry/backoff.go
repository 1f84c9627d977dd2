// Package retry provides exponential backoff for callers that want to
// repeat a failed socket operation, such as a client waiting for its
// server to come up.  The socket package itself never retries.
package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Backoff implements exponential backoff with optional jitter.
type Backoff struct {
	// InitialDelay is the delay before the first retry (default 100ms).
	InitialDelay time.Duration
	// MaxDelay caps the backoff duration (default 2s).
	MaxDelay time.Duration
	// Multiplier increases the delay each attempt (default 2.0).
	Multiplier float64
	// MaxAttempts is the total number of tries including the first.
	// 0 retries until ctx is done.
	MaxAttempts int
	// Jitter adds ±25% randomisation to each delay.
	Jitter bool

	// Retryable reports whether a failed attempt is worth repeating.
	// A nil Retryable retries every error.
	Retryable func(err error) bool
	// OnRetry, when set, is called before each wait.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// ConnectBackoff returns the schedule used while waiting for a peer to
// start listening: quick first retries, bounded by ctx rather than by
// an attempt count.
func ConnectBackoff() *Backoff {
	return &Backoff{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}
}

// Do calls fn until it succeeds, fails with a non-retryable error, or
// the budget (attempts or ctx) runs out.  The attempt passed to fn is
// 1-based.  When the budget runs out the last error from fn is
// returned wrapped, so callers can still inspect it.
func (b *Backoff) Do(ctx context.Context, fn func(attempt int) error) error {
	delay := b.InitialDelay
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	multiplier := b.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}
	maxDelay := b.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 2 * time.Second
	}

	for attempt := 1; ; attempt++ {
		err := fn(attempt)
		if err == nil {
			return nil
		}
		if b.Retryable != nil && !b.Retryable(err) {
			return err
		}
		if b.MaxAttempts > 0 && attempt >= b.MaxAttempts {
			return fmt.Errorf("gave up after %d attempts: %w", attempt, err)
		}

		wait := delay
		if b.Jitter {
			wait = addJitter(delay)
		}
		if b.OnRetry != nil {
			b.OnRetry(attempt, wait, err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("gave up after %d attempts: %w", attempt, err)
		case <-time.After(wait):
		}

		delay = time.Duration(float64(delay) * multiplier)
		if delay > maxDelay {
			delay = maxDelay
		}
	}
}

// addJitter adds ±25% randomisation to a duration.
func addJitter(d time.Duration) time.Duration {
	quarter := float64(d) * 0.25
	delta := (rand.Float64() * 2 * quarter) - quarter
	result := float64(d) + delta
	return time.Duration(math.Max(result, float64(time.Millisecond)))
}
