// Package observability provides logger bootstrap for the bucketkit CLI.
//
// Commands log through CLILogger, which starts as a no-op logger so
// library code and tests never need nil checks. InitCLILogger replaces it
// with a configured zap logger during CLI startup.
package observability

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLILogger is the process-wide logger for CLI commands.
//
// It defaults to a no-op logger until InitCLILogger is called.
var CLILogger = zap.NewNop()

// InitCLILogger configures CLILogger with the given level and format.
//
// Supported levels: debug, info, warn, error. Supported formats:
// "console" (human-readable, the default) and "json" (structured, one
// event per line). Logs are written to stderr so stdout stays clean for
// JSONL records.
func InitCLILogger(level, format string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch format {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return fmt.Errorf("invalid log format %q (supported: console, json)", format)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), lvl)
	CLILogger = zap.New(core)
	return nil
}

// Sync flushes any buffered log entries. Safe to call on the no-op logger.
func Sync() {
	_ = CLILogger.Sync()
}
