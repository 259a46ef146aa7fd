// Command bucketkit is a toolkit for everyday S3 bucket operations.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/3leaps/bucketkit/internal/cmd"
	"github.com/3leaps/bucketkit/internal/observability"
)

// Populated at build time via -ldflags.
var (
	version   = "dev"
	commit    = "HEAD"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	code := cmd.ExitCode(err)
	if err != nil {
		observability.CLILogger.Error("Command failed",
			zap.Error(err),
			zap.Int("exit_code", code))
	}
	observability.Sync()
	stop()
	os.Exit(code)
}
