package batch

import (
	"context"
	"time"

	"github.com/fwojciec/repometa"
)

// FetchFunc fetches one page body.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryFunc is told about each failed attempt that will be retried.
type RetryFunc func(attempt int, err error)

// DefaultRetryDelays returns the backoff before each retry: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
}

// Permanent reports whether a fetch error will not clear up on retry.
// Withdrawn items (ENOTFOUND) and malformed URLs (EINVALID) are permanent;
// timeouts, server errors and network failures are not.
func Permanent(err error) bool {
	switch repometa.ErrorCode(err) {
	case repometa.ENOTFOUND, repometa.EINVALID:
		return true
	}
	return false
}

// FetchWithRetry calls fetch, retrying after each delay in turn until it
// succeeds, fails permanently or ctx ends. onRetry may be nil. The error of
// the last attempt is returned.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, onRetry RetryFunc, delays []time.Duration) (string, error) {
	for attempt := 0; ; attempt++ {
		body, err := fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if Permanent(err) || attempt == len(delays) {
			return "", err
		}
		if onRetry != nil {
			onRetry(attempt+1, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}
