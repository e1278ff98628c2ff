package speech

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Retrier is an injectable retry policy for remote calls, applied at the
// orchestration boundary rather than inside individual clients. The zero
// value performs a single attempt with no retries.
type Retrier struct {
	Attempts int           // total attempts, including the first
	Interval time.Duration // constant delay between attempts
}

// Do runs op, retrying failures up to the configured number of attempts.
// Context cancellation stops the retries.
func (r Retrier) Do(ctx context.Context, op func() error) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.Interval), uint64(attempts-1)), ctx)
	return backoff.Retry(op, policy)
}
