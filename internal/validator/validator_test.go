package validator_test

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"syscall"
	"testing"
	"time"
	"unicode"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/cni-repair-controller/internal/validator"
)

const unroutableAddr = "192.0.2.2:1404"

// redirectTo simulates the redirection rules: connections to unroutableAddr
// land on the validator's own listener.
func redirectTo(t *testing.T, v *validator.Validator) validator.DialFunc {
	t.Helper()

	return func(ctx context.Context, network, address string) (net.Conn, error) {
		if address != unroutableAddr {
			return nil, errors.New("unexpected address " + address)
		}

		var d net.Dialer

		return d.DialContext(ctx, network, v.ListenAddr())
	}
}

func TestNewToken(t *testing.T) {
	t.Parallel()

	token, err := validator.NewToken()
	require.NoError(t, err)
	require.Len(t, token, validator.TokenLength+1)
	require.Equal(t, byte('\n'), token[validator.TokenLength])

	for _, c := range token[:validator.TokenLength] {
		require.True(t, c < unicode.MaxASCII && (unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))), "char %q", c)
	}

	other, err := validator.NewToken()
	require.NoError(t, err)
	require.NotEqual(t, token, other)
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	t.Run("redirected connection receives the token", func(t *testing.T) {
		t.Parallel()

		v := validator.New(slog.Default())
		v.WithDialer(redirectTo(t, v))

		require.NoError(t, v.Validate(t.Context(), "127.0.0.1:0", unroutableAddr))
	})

	t.Run("missing redirection fails", func(t *testing.T) {
		t.Parallel()

		v := validator.New(slog.Default()).WithDialer(
			func(context.Context, string, string) (net.Conn, error) {
				return nil, syscall.ECONNREFUSED
			},
		)

		err := v.Validate(t.Context(), "127.0.0.1:0", unroutableAddr)
		require.ErrorIs(t, err, syscall.ECONNREFUSED)
	})

	t.Run("connection to another server fails", func(t *testing.T) {
		t.Parallel()

		other, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		defer other.Close()

		go func() {
			conn, err := other.Accept()
			if err != nil {
				return
			}
			defer conn.Close()

			_, _ = conn.Write([]byte("not the token you are looking for\n"))
		}()

		v := validator.New(slog.Default())

		err = v.Validate(t.Context(), "127.0.0.1:0", other.Addr().String())
		require.Error(t, err)
	})

	t.Run("occupied listen address fails", func(t *testing.T) {
		t.Parallel()

		occupied, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)

		defer occupied.Close()

		v := validator.New(slog.Default())
		v.WithDialer(redirectTo(t, v))

		err = v.Validate(t.Context(), occupied.Addr().String(), unroutableAddr)
		require.Error(t, err)
	})
}

func TestValidator_Run(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		v := validator.New(slog.Default())
		v.WithDialer(redirectTo(t, v))

		err := v.Run(t.Context(), validator.Config{
			Timeout:     5 * time.Second,
			ListenAddr:  "127.0.0.1:0",
			ConnectAddr: unroutableAddr,
		}, nil)
		require.NoError(t, err)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		v := validator.New(slog.Default()).WithDialer(
			func(ctx context.Context, _, _ string) (net.Conn, error) {
				<-ctx.Done()

				return nil, ctx.Err()
			},
		)

		err := v.Run(t.Context(), validator.Config{
			Timeout:     50 * time.Millisecond,
			ListenAddr:  "127.0.0.1:0",
			ConnectAddr: unroutableAddr,
		}, nil)
		require.ErrorIs(t, err, validator.ErrTimeout)
	})

	t.Run("signal", func(t *testing.T) {
		t.Parallel()

		signals := make(chan os.Signal, 1)
		signals <- syscall.SIGTERM

		v := validator.New(slog.Default()).WithDialer(
			func(ctx context.Context, _, _ string) (net.Conn, error) {
				<-ctx.Done()

				return nil, ctx.Err()
			},
		)

		err := v.Run(t.Context(), validator.Config{
			Timeout:     time.Minute,
			ListenAddr:  "127.0.0.1:0",
			ConnectAddr: unroutableAddr,
		}, signals)
		require.ErrorIs(t, err, validator.ErrTerminated)
	})

	t.Run("validation failure", func(t *testing.T) {
		t.Parallel()

		v := validator.New(slog.Default()).WithDialer(
			func(context.Context, string, string) (net.Conn, error) {
				return nil, syscall.EHOSTUNREACH
			},
		)

		err := v.Run(t.Context(), validator.Config{
			Timeout:     time.Minute,
			ListenAddr:  "127.0.0.1:0",
			ConnectAddr: unroutableAddr,
		}, nil)
		require.ErrorIs(t, err, syscall.EHOSTUNREACH)
	})
}
