package validator

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Config holds the parameters of one validation run.
type Config struct {
	Timeout     time.Duration
	ListenAddr  string
	ConnectAddr string
}

// Run validates once. Whichever comes first decides the outcome: the
// validation result, the timeout or a signal on signals.
func (v *Validator) Run(ctx context.Context, cfg Config, signals <-chan os.Signal) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	result := make(chan error, 1)

	go func() {
		result <- v.Validate(ctx, cfg.ListenAddr, cfg.ConnectAddr)
	}()

	timer := time.NewTimer(cfg.Timeout)
	defer timer.Stop()

	select {
	case err := <-result:
		if err != nil {
			return fmt.Errorf("validate: %w", err)
		}

		v.logger.InfoContext(ctx, "validated")

		return nil
	case <-timer.C:
		v.logger.ErrorContext(ctx, "failed to validate networking configuration, "+
			"please ensure iptables rules are rewriting traffic as expected",
			"timeout", FormatTimeout(cfg.Timeout),
		)

		return fmt.Errorf("%w after %s", ErrTimeout, FormatTimeout(cfg.Timeout))
	case sig := <-signals:
		return fmt.Errorf("%w: %s", ErrTerminated, sig)
	case <-ctx.Done():
		return fmt.Errorf("validate: %w", ctx.Err())
	}
}
