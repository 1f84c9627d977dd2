package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

// BenchmarkBackoff_ImmediateSuccess measures overhead when the first
// attempt succeeds (the common case).
func BenchmarkBackoff_ImmediateSuccess(b *testing.B) {
	bo := ConnectBackoff()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bo.Do(ctx, func(_ int) error { return nil }) //nolint:errcheck
	}
}

// BenchmarkBackoff_NotRetryable measures early-exit overhead.
func BenchmarkBackoff_NotRetryable(b *testing.B) {
	bo := ConnectBackoff()
	bo.Retryable = func(error) bool { return false }
	ctx := context.Background()
	fatal := errors.New("fatal")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		bo.Do(ctx, func(_ int) error { return fatal }) //nolint:errcheck
	}
}

// BenchmarkJitter measures the jitter helper without backoff overhead.
func BenchmarkJitter(b *testing.B) {
	d := 100 * time.Millisecond
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = addJitter(d)
	}
}
