package cmd

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/bucketkit/internal/observability"
	"github.com/3leaps/bucketkit/pkg/manifest"
	"github.com/3leaps/bucketkit/pkg/output"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Collect keys across prefixes in parallel",
	Long: `Collect every object key under one or more prefixes, listing the
prefixes concurrently. The first listing failure cancels the remaining
work and fails the command.

Keys are emitted as JSONL records on stdout. Overlapping prefixes can
produce the same key more than once; no deduplication is performed.

Prefixes come from repeated --prefix flags or from a job manifest.

Examples:
  bucketkit keys --bucket my-data --prefix data/2024/ --prefix data/2025/
  bucketkit keys --job job.yaml
  bucketkit keys --job job.yaml --concurrency 8`,
	RunE: runKeys,
}

var (
	keysBucket      string
	keysPrefixes    []string
	keysJobPath     string
	keysConcurrency int
	keysRateLimit   float64
	keysOutput      string
)

func init() {
	rootCmd.AddCommand(keysCmd)

	keysCmd.Flags().StringVarP(&keysBucket, "bucket", "b", "", "Bucket to collect from")
	keysCmd.Flags().StringArrayVarP(&keysPrefixes, "prefix", "p", nil, "Key prefix (repeatable)")
	keysCmd.Flags().StringVarP(&keysJobPath, "job", "j", "", "Path to job manifest (YAML or JSON)")
	keysCmd.Flags().IntVar(&keysConcurrency, "concurrency", 0, "Concurrent prefix listings (default 4)")
	keysCmd.Flags().Float64Var(&keysRateLimit, "rate-limit", 0, "Max list requests per second (0 = unlimited)")
	keysCmd.Flags().StringVarP(&keysOutput, "output", "o", "", "Output destination (stdout or file path)")
}

func runKeys(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	bucketName := keysBucket
	prefixes := keysPrefixes
	concurrency := keysConcurrency
	rateLimit := keysRateLimit
	dest := keysOutput

	// A job manifest supplies defaults; explicit flags win.
	if keysJobPath != "" {
		m, err := manifest.Load(keysJobPath)
		if err != nil {
			observability.CLILogger.Error("Failed to load manifest",
				zap.String("path", keysJobPath),
				zap.Error(err))
			return exitError(exitCodeInvalidArgument, "Invalid manifest", err)
		}
		if bucketName == "" {
			bucketName = m.Bucket
		}
		if len(prefixes) == 0 {
			prefixes = m.Prefixes
		}
		if concurrency == 0 {
			concurrency = m.Perform.Concurrency
		}
		if rateLimit == 0 {
			rateLimit = m.Perform.RateLimit
		}
		if dest == "" {
			dest = m.Output.Destination
		}
	}

	if bucketName == "" {
		return exitError(exitCodeInvalidArgument, "Missing bucket", errors.New("--bucket or --job is required"))
	}
	if len(prefixes) == 0 {
		return exitError(exitCodeInvalidArgument, "Missing prefixes", errors.New("at least one --prefix (or a manifest with prefixes) is required"))
	}

	jobID := uuid.New().String()

	client, err := newClient(ctx, concurrency, rateLimit)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	writer, cleanup, err := createWriter(dest, jobID, bucketName)
	if err != nil {
		return exitError(exitCodeFileWriteError, "Failed to create output", err)
	}
	defer cleanup()

	observability.CLILogger.Info("Collecting keys",
		zap.String("job_id", jobID),
		zap.String("bucket", bucketName),
		zap.Strings("prefixes", prefixes),
		zap.Int("concurrency", concurrency))

	start := time.Now()

	keys, err := client.Keys(ctx, bucketName, prefixes)
	if err != nil {
		_ = writer.WriteError(ctx, &output.ErrorRecord{
			Code:    errorCode(err),
			Message: err.Error(),
		})
		if ctx.Err() != nil {
			observability.CLILogger.Warn("Key collection cancelled",
				zap.String("job_id", jobID))
			return exitError(exitCodeInterrupted, "Key collection cancelled", err)
		}
		observability.CLILogger.Error("Key collection failed",
			zap.String("job_id", jobID),
			zap.Error(err))
		return exitError(exitCodeServiceUnavailable, "Key collection failed", err)
	}

	for _, key := range keys {
		if err := writer.WriteKey(ctx, &output.KeyRecord{Key: key}); err != nil {
			return exitError(exitCodeFileWriteError, "Failed to write record", err)
		}
	}

	duration := time.Since(start)
	if err := writer.WriteSummary(ctx, &output.SummaryRecord{
		Objects:       int64(len(keys)),
		Duration:      duration,
		DurationHuman: duration.Round(time.Millisecond).String(),
		Prefixes:      prefixes,
	}); err != nil {
		return exitError(exitCodeFileWriteError, "Failed to write summary", err)
	}

	observability.CLILogger.Info("Key collection completed",
		zap.String("job_id", jobID),
		zap.Int("keys", len(keys)),
		zap.Duration("duration", duration))

	return nil
}
