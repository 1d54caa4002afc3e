// Package retry runs an operation under a bounded fixed-delay retry policy.
package retry

import (
	"context"
	"time"

	backoff "github.com/sethvargo/go-retry"
)

// Do runs op up to attempts times, sleeping delay between attempts. Every
// error from op is treated as retryable; the last error is returned once the
// attempts are exhausted. Callers that need to stop early should do so by
// succeeding or by cancelling ctx.
func Do(ctx context.Context, attempts uint64, delay time.Duration, op func(context.Context) error) error {
	if attempts == 0 {
		attempts = 1
	}

	b := backoff.WithMaxRetries(attempts-1, backoff.NewConstant(delay))

	return backoff.Do(ctx, b, func(ctx context.Context) error {
		if err := op(ctx); err != nil {
			return backoff.RetryableError(err)
		}
		return nil
	})
}
