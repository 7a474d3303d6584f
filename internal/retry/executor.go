package retry

import (
	"context"
	"time"

	"github.com/vvka-141/shipload/pkg/shipload"
)

// Executor runs an operation until it succeeds, fails fatally, or runs out
// of attempts. It is safe for concurrent use.
type Executor struct {
	classifier shipload.ErrorClassifier
	strategy   shipload.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates an Executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier shipload.ErrorClassifier, strategy shipload.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of e that calls fn before each wait.
// attempt starts at 0 for the first retry.
func (e *Executor) WithOnRetry(fn func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = fn
	return &clone
}

// Execute runs op once, then retries while it returns transient errors.
// A negative MaxAttempts retries until ctx is done. The last error is returned.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	limit := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if limit >= 0 && attempt >= limit {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}
		if waitErr := sleep(ctx, delay); waitErr != nil {
			return waitErr
		}

		err = op(ctx)
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
