package llm

import (
	"context"
	"time"
)

// WithTimeout races fn against a timer. When the timer wins, the returned
// error is a TimeoutError carrying the configured budget in milliseconds.
//
// The child context is cancelled on timeout, but the underlying network
// request is not guaranteed to be aborted server-side; the goroutine running
// fn is abandoned and its eventual result discarded.
func WithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithCancel(ctx)

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)

	go func() {
		value, err := fn(callCtx)
		done <- outcome{value: value, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-done:
		cancel()
		return out.value, out.err
	case <-timer.C:
		cancel()
		var zero T
		return zero, &TimeoutError{TimeoutMs: timeout.Milliseconds()}
	case <-ctx.Done():
		cancel()
		var zero T
		return zero, ctx.Err()
	}
}
