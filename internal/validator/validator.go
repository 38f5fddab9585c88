package validator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DialFunc opens the outbound connection of a validation.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Validator checks that connections to an arbitrary address are redirected by
// the operating system to a local listener.
type Validator struct {
	logger     *slog.Logger
	dial       DialFunc
	listenAddr atomic.Pointer[string]
}

// New creates a validator dialing with a plain net.Dialer.
func New(logger *slog.Logger) *Validator {
	var dialer net.Dialer

	return &Validator{
		logger: logger.With("component", "network-validator"),
		dial:   dialer.DialContext,
	}
}

// WithDialer replaces the dialer of the outbound connection.
func (v *Validator) WithDialer(dial DialFunc) *Validator {
	v.dial = dial

	return v
}

// ListenAddr returns the address the server is bound to, empty before listening.
func (v *Validator) ListenAddr() string {
	if addr := v.listenAddr.Load(); addr != nil {
		return *addr
	}

	return ""
}

// Validate binds listenAddr, serves a fresh token to every accepted connection
// and connects to connectAddr. It succeeds only if the bytes read from the
// outbound connection are exactly the token.
func (v *Validator) Validate(ctx context.Context, listenAddr, connectAddr string) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddr, err)
	}

	bound := listener.Addr().String()
	v.listenAddr.Store(&bound)

	v.logger.InfoContext(ctx, "listening for connections", "addr", bound)

	token, err := NewToken()
	if err != nil {
		_ = listener.Close()

		return fmt.Errorf("generate token: %w", err)
	}

	v.logger.DebugContext(ctx, "generated token", "token", string(token))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return v.serve(gctx, listener, token)
	})

	g.Go(func() error {
		// stops the server once the client side is done
		defer listener.Close()

		v.logger.InfoContext(gctx, "connecting", "addr", connectAddr)

		data, err := v.connect(gctx, connectAddr, len(token))
		if err != nil {
			v.logger.ErrorContext(gctx, "unable to connect to validator, "+
				"please ensure iptables rules are rewriting traffic as expected",
				"reason", err,
			)

			return fmt.Errorf("connect to %s: %w", connectAddr, err)
		}

		v.logger.DebugContext(gctx, "read message from server", "data", string(data), "size", len(data))

		if !bytes.Equal(data, token) {
			return fmt.Errorf("%w: expected %q, got %q", ErrTokenMismatch, token, data)
		}

		return nil
	})

	return g.Wait()
}

// serve writes token to every accepted connection and closes it. It returns
// once the listener is closed and every write finished.
func (v *Validator) serve(ctx context.Context, listener net.Listener, token []byte) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}

			return fmt.Errorf("accept connection: %w", err)
		}

		wg.Go(func() {
			defer conn.Close()

			logger := v.logger.With("client", conn.RemoteAddr().String())

			if _, err := conn.Write(token); err != nil {
				logger.ErrorContext(ctx, "failed to write token to client", "reason", err)

				return
			}

			logger.DebugContext(ctx, "wrote token to client", "bytes", len(token))
		})
	}
}

// connect dials addr and reads exactly size bytes.
func (v *Validator) connect(ctx context.Context, addr string, size int) ([]byte, error) {
	conn, err := v.dial(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	v.logger.DebugContext(ctx, "connected", "local", conn.LocalAddr().String())

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}

	stop := context.AfterFunc(ctx, func() {
		// unblocks the read on cancellation
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	buf := make([]byte, size)

	n, err := io.ReadFull(conn, buf)
	if err != nil {
		return buf[:n], fmt.Errorf("read token: %w", err)
	}

	return buf, nil
}
