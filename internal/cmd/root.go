// Package cmd implements the bucketkit command-line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/3leaps/bucketkit/internal/observability"
	"github.com/3leaps/bucketkit/pkg/bucket"
	"github.com/3leaps/bucketkit/pkg/output"
	s3store "github.com/3leaps/bucketkit/pkg/store/s3"
)

// versionInfo holds build-time version metadata, set via SetVersionInfo
// from main before Execute.
var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{
	Version:   "dev",
	Commit:    "HEAD",
	BuildDate: "unknown",
}

// SetVersionInfo sets the version information displayed by --version.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate)
}

var rootCmd = &cobra.Command{
	Use:   "bucketkit",
	Short: "S3 bucket convenience toolkit",
	Long: `bucketkit is a toolkit for everyday S3 bucket operations: listing,
key collection across prefixes, tagging, bulk deletion, uploads, and
content streaming.

Structured results are written to stdout as JSONL records; logs go to
stderr. Works with AWS S3 and S3-compatible endpoints (MinIO, Wasabi,
moto) via --endpoint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initRuntime()
	},
}

// Persistent connection and logging flags shared by all commands.
var (
	flagRegion    string
	flagEndpoint  string
	flagProfile   string
	flagLogLevel  string
	flagLogFormat string
)

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagRegion, "region", "", "AWS region (default from environment)")
	pf.StringVar(&flagEndpoint, "endpoint", "", "Custom S3 endpoint URL (MinIO, Wasabi, moto)")
	pf.StringVar(&flagProfile, "profile", "", "AWS credential profile")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	pf.StringVar(&flagLogFormat, "log-format", "", "Log format (console|json)")

	_ = viper.BindPFlag("connection.region", pf.Lookup("region"))
	_ = viper.BindPFlag("connection.endpoint", pf.Lookup("endpoint"))
	_ = viper.BindPFlag("connection.profile", pf.Lookup("profile"))
	_ = viper.BindPFlag("logging.level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", pf.Lookup("log-format"))
}

// initConfig configures viper for environment variable overrides.
// BUCKETKIT_CONNECTION_ENDPOINT maps to connection.endpoint, etc.
func initConfig() {
	viper.SetEnvPrefix("BUCKETKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setDefaults()
}

// setDefaults establishes default configuration values.
func setDefaults() {
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")

	viper.SetDefault("connection.region", "")
	viper.SetDefault("connection.endpoint", "")
	viper.SetDefault("connection.profile", "")

	viper.SetDefault("perform.concurrency", 4)
	viper.SetDefault("perform.rate_limit", 0.0)
}

// initRuntime initializes the logger from resolved configuration.
func initRuntime() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")
	if err := observability.InitCLILogger(level, format); err != nil {
		return exitError(exitCodeInvalidArgument, "Invalid logging configuration", err)
	}
	return nil
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// codedError carries a process exit code alongside the underlying error.
type codedError struct {
	code    int
	message string
	err     error
}

func (e *codedError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}
	return e.message
}

func (e *codedError) Unwrap() error {
	return e.err
}

// exitError creates an error that causes the CLI to exit with the given code.
func exitError(code int, message string, err error) error {
	return &codedError{code: code, message: message, err: err}
}

// ExitCode returns the process exit code for err: 0 for nil, the coded
// value for exit errors, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}

// connectionConfig builds the store configuration from resolved flags
// and environment.
func connectionConfig() s3store.Config {
	endpoint := viper.GetString("connection.endpoint")
	return s3store.Config{
		Region:   viper.GetString("connection.region"),
		Endpoint: endpoint,
		Profile:  viper.GetString("connection.profile"),
		// S3-compatible services (moto, MinIO, etc.) require path-style URLs.
		ForcePathStyle: endpoint != "",
	}
}

// newClient opens a bucket client using the shared connection flags.
func newClient(ctx context.Context, concurrency int, rateLimit float64) (*bucket.Client, error) {
	cfg := bucket.Config{
		Concurrency: concurrency,
		RateLimit:   rateLimit,
	}
	c, err := bucket.Open(ctx, connectionConfig(), cfg)
	if err != nil {
		observability.CLILogger.Error("Failed to connect to storage", zap.Error(err))
		return nil, exitError(exitCodeServiceUnavailable, "Failed to connect to storage", err)
	}
	return c, nil
}

// createWriter creates a JSONL output writer for the given destination.
// Supported destinations: "" or "stdout", "file:/path", or a bare path.
// Returns the writer, a cleanup function, and any error.
func createWriter(dest, jobID, bucketName string) (output.Writer, func(), error) {
	if dest == "" || dest == "stdout" {
		w := output.NewJSONLWriter(os.Stdout, jobID, bucketName)
		return w, func() { _ = w.Close() }, nil
	}

	path := strings.TrimPrefix(dest, "file:")
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file %s: %w", path, err)
	}

	w := output.NewJSONLWriter(f, jobID, bucketName)
	cleanup := func() {
		_ = w.Close()
		_ = f.Close()
	}
	return w, cleanup, nil
}
