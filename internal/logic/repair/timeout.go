package repair

import (
	"context"
	"fmt"
	"time"
)

// RunWithTimeout runs fn and returns whichever comes first: its result or the
// expiry of timeout. On expiry the context passed to fn is cancelled so the
// in-flight call is abandoned, and ErrTimeout is returned.
func RunWithTimeout(
	ctx context.Context,
	timeout time.Duration,
	fn func(ctx context.Context) error,
) error {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// buffered so the abandoned call can always deliver its result and exit
	result := make(chan error, 1)

	go func() {
		result <- fn(callCtx)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-result:
		return err
	case <-timer.C:
		return fmt.Errorf("%w after %s", ErrTimeout, timeout)
	case <-ctx.Done():
		return fmt.Errorf("run with timeout: %w", ctx.Err())
	}
}
