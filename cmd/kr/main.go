package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/michaeldyrynda/kr/internal/cli"
	"github.com/michaeldyrynda/kr/internal/kr"
	"github.com/michaeldyrynda/kr/internal/ui"
)

// These variables are set at build time via -ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.Execute(ctx)
	stop()

	if err != nil {
		// knowledge_repo has already reported its own failure.
		var exitErr *kr.ExitError
		if !errors.As(err, &exitErr) && !ui.IsAbort(err) {
			ui.FprintError(os.Stderr, err.Error())
		}
		os.Exit(cli.ExitCode(err))
	}
}
