package api

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
)

// RetryPolicy is the retry budget for one resource type. Each resource
// configures its own budget; the product list carries more attempts and a
// longer base delay than categories because it is the primary page content.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// PolicyFor builds a RetryPolicy from a configured resource budget.
func PolicyFor(budget config.ResourceRetry, maxDelay time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxRetries: budget.MaxRetries,
		BaseDelay:  budget.BaseDelay,
		MaxDelay:   maxDelay,
	}
}

// Delay returns the backoff before retry number attempt (zero-based):
// baseDelay * 2^attempt, capped at MaxDelay.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	// Beyond 30 doublings the shift would overflow any sane cap anyway.
	if attempt > 30 {
		return p.MaxDelay
	}
	delay := p.BaseDelay << uint(attempt)
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// SleepFunc waits for a backoff delay. The production implementation uses a
// timer; tests inject one that records delays and returns immediately.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep waits for d or until the context is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// retryState is the explicit state of one retry loop.
type retryState struct {
	attempt int
	policy  RetryPolicy
}

// next reports whether another attempt is allowed and, if so, the delay to
// wait first.
func (s *retryState) next() (time.Duration, bool) {
	if s.attempt >= s.policy.MaxRetries {
		return 0, false
	}
	delay := s.policy.Delay(s.attempt)
	s.attempt++
	return delay, true
}

// doWithRetry runs op, retrying transient failures within the policy budget.
// Terminal failures (404, other 4xx, exhausted budget, cancelled context)
// surface immediately.
func doWithRetry[T any](ctx context.Context, policy RetryPolicy, sleep SleepFunc, logger *logrus.Logger, operation string, op func(ctx context.Context) (T, error)) (T, error) {
	state := retryState{policy: policy}
	for {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}

		apiErr, ok := AsError(err)
		if !ok || !apiErr.Retryable() {
			return result, err
		}

		delay, retry := state.next()
		if !retry {
			logger.WithFields(logrus.Fields{
				"operation": operation,
				"attempts":  state.attempt + 1,
			}).Warn("retry budget exhausted")
			return result, err
		}

		logger.WithFields(logrus.Fields{
			"operation": operation,
			"attempt":   state.attempt,
			"delay":     delay,
			"error":     err.Error(),
		}).Debug("transient failure, backing off before retry")

		if sleepErr := sleep(ctx, delay); sleepErr != nil {
			return result, sleepErr
		}
	}
}
