package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/skillcoder/cni-repair-controller/internal/infra/shutdown"
)

const usageExitCode = 2

func main() {
	signals := shutdown.Notify()

	err := newRootCommand(signals).ExecuteContext(context.Background())
	if err == nil {
		return
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.code)
	}

	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(usageExitCode)
}
