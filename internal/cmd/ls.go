package cmd

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/bucketkit/internal/observability"
	"github.com/3leaps/bucketkit/pkg/output"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List objects under a prefix",
	Long: `List every object under a bucket prefix, paginating to completion.

Each object is emitted as a JSONL record on stdout, followed by a final
summary record. An optional --suffix restricts results to keys ending
with that exact string (literal match, not a glob).

Examples:
  bucketkit ls --bucket my-data --prefix data/2025/
  bucketkit ls --bucket my-data --prefix data/ --suffix .avro
  bucketkit ls --bucket my-data --prefix logs/ --output results.jsonl`,
	RunE: runLs,
}

var (
	lsBucket    string
	lsPrefix    string
	lsSuffix    string
	lsOutput    string
	lsRateLimit float64
)

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().StringVarP(&lsBucket, "bucket", "b", "", "Bucket to list (required)")
	lsCmd.Flags().StringVarP(&lsPrefix, "prefix", "p", "", "Key prefix to list under")
	lsCmd.Flags().StringVarP(&lsSuffix, "suffix", "s", "", "Only emit keys ending with this string")
	lsCmd.Flags().StringVarP(&lsOutput, "output", "o", "", "Output destination (stdout or file path)")
	lsCmd.Flags().Float64Var(&lsRateLimit, "rate-limit", 0, "Max list requests per second (0 = unlimited)")

	_ = lsCmd.MarkFlagRequired("bucket")
}

func runLs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	jobID := uuid.New().String()

	client, err := newClient(ctx, 1, lsRateLimit)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	writer, cleanup, err := createWriter(lsOutput, jobID, lsBucket)
	if err != nil {
		return exitError(exitCodeFileWriteError, "Failed to create output", err)
	}
	defer cleanup()

	observability.CLILogger.Debug("Listing objects",
		zap.String("job_id", jobID),
		zap.String("bucket", lsBucket),
		zap.String("prefix", lsPrefix),
		zap.String("suffix", lsSuffix))

	start := time.Now()

	summaries, err := client.Summaries(ctx, lsBucket, lsPrefix, lsSuffix)
	if err != nil {
		_ = writer.WriteError(ctx, &output.ErrorRecord{
			Code:    errorCode(err),
			Message: err.Error(),
			Prefix:  lsPrefix,
		})
		observability.CLILogger.Error("Listing failed",
			zap.String("bucket", lsBucket),
			zap.String("prefix", lsPrefix),
			zap.Error(err))
		return exitError(exitCodeServiceUnavailable, "Listing failed", err)
	}

	var bytesTotal int64
	for _, obj := range summaries {
		bytesTotal += obj.Size
		if err := writer.WriteObject(ctx, &output.ObjectRecord{
			Key:          obj.Key,
			Size:         obj.Size,
			ETag:         obj.ETag,
			LastModified: obj.LastModified,
		}); err != nil {
			return exitError(exitCodeFileWriteError, "Failed to write record", err)
		}
	}

	duration := time.Since(start)
	if err := writer.WriteSummary(ctx, &output.SummaryRecord{
		Objects:       int64(len(summaries)),
		BytesTotal:    bytesTotal,
		Duration:      duration,
		DurationHuman: duration.Round(time.Millisecond).String(),
		Prefixes:      []string{lsPrefix},
	}); err != nil {
		return exitError(exitCodeFileWriteError, "Failed to write summary", err)
	}

	observability.CLILogger.Info("Listing completed",
		zap.String("job_id", jobID),
		zap.Int("objects", len(summaries)),
		zap.Int64("bytes_total", bytesTotal),
		zap.Duration("duration", duration))

	return nil
}
