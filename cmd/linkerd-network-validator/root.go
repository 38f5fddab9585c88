package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/skillcoder/cni-repair-controller/internal/infra/logging"
	"github.com/skillcoder/cni-repair-controller/internal/logic/repair"
	"github.com/skillcoder/cni-repair-controller/internal/validator"
)

const (
	envKeyLogLevel  = "LINKERD_NETWORK_VALIDATOR_LOG_LEVEL"
	envKeyLogFormat = "LINKERD_NETWORK_VALIDATOR_LOG_FORMAT"
)

// exitError carries the process exit code of a failed validation.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func newRootCommand(signals <-chan os.Signal) *cobra.Command {
	var (
		cfg       validator.Config
		logLevel  string
		logFormat string
	)

	cmd := &cobra.Command{
		Use:   "linkerd-network-validator",
		Short: "Validate that a container's networking is setup for the proxy",
		Long: `Validation is done by binding a server on the proxy's outbound port and
initiating a connection to an arbitrary (hopefully unroutable) address. If
networking has been configured properly, the connection is established to
the server.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := logging.NewWithWriter(cmd.OutOrStdout(), logFormat, logLevel)

			err := validator.New(logger).Run(cmd.Context(), cfg, signals)
			if err != nil {
				logger.ErrorContext(cmd.Context(), "validation failed", "reason", err)

				return &exitError{code: int(repair.UnsuccessfulExitCode), err: err}
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.Var(validator.NewTimeoutValue(&cfg.Timeout, validator.DefaultTimeout), "timeout",
		"Overall validation timeout (units: ms, s, m, h, d)")
	flags.StringVar(&cfg.ListenAddr, "listen-addr", validator.DefaultListenAddr,
		"Address to which connections are supposed to be redirected by the operating system")
	flags.StringVar(&cfg.ConnectAddr, "connect-addr", validator.DefaultConnectAddr,
		"Address to which the client will attempt to connect")
	flags.StringVar(&logLevel, "log-level", envOrDefault(envKeyLogLevel, "info"),
		"Log level: debug, info, warn or error")
	flags.StringVar(&logFormat, "log-format", envOrDefault(envKeyLogFormat, "plain"),
		"Log format: plain or json")

	return cmd
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}
