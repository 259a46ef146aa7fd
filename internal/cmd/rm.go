package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/bucketkit/internal/observability"
	"github.com/3leaps/bucketkit/pkg/output"
)

var rmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Bulk delete objects",
	Long: `Delete objects by explicit key or by prefix in a single batch call.

Keys collected from --prefix flags are resolved first, then combined
with explicit --key flags and deleted together. The confirmed deletion
count is reported in the final summary record.

Without --yes the command shows what would be deleted and exits.

Examples:
  bucketkit rm --bucket my-data --key tmp/a.txt --key tmp/b.txt --yes
  bucketkit rm --bucket my-data --prefix tmp/ --yes
  bucketkit rm --bucket my-data --prefix tmp/          # dry run`,
	RunE: runRm,
}

var (
	rmBucket      string
	rmKeys        []string
	rmPrefixes    []string
	rmConcurrency int
	rmYes         bool
	rmOutput      string
)

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().StringVarP(&rmBucket, "bucket", "b", "", "Bucket to delete from (required)")
	rmCmd.Flags().StringArrayVarP(&rmKeys, "key", "k", nil, "Object key to delete (repeatable)")
	rmCmd.Flags().StringArrayVarP(&rmPrefixes, "prefix", "p", nil, "Delete everything under this prefix (repeatable)")
	rmCmd.Flags().IntVar(&rmConcurrency, "concurrency", 0, "Concurrent prefix listings (default 4)")
	rmCmd.Flags().BoolVar(&rmYes, "yes", false, "Actually delete (without this flag the command is a dry run)")
	rmCmd.Flags().StringVarP(&rmOutput, "output", "o", "", "Output destination (stdout or file path)")

	_ = rmCmd.MarkFlagRequired("bucket")
}

func runRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(rmKeys) == 0 && len(rmPrefixes) == 0 {
		return exitError(exitCodeInvalidArgument, "Nothing to delete", errors.New("at least one --key or --prefix is required"))
	}

	jobID := uuid.New().String()

	client, err := newClient(ctx, rmConcurrency, 0)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	// Resolve prefixes to keys before touching anything.
	keys := append([]string(nil), rmKeys...)
	if len(rmPrefixes) > 0 {
		collected, err := client.Keys(ctx, rmBucket, rmPrefixes)
		if err != nil {
			observability.CLILogger.Error("Failed to resolve prefixes",
				zap.String("bucket", rmBucket),
				zap.Strings("prefixes", rmPrefixes),
				zap.Error(err))
			return exitError(exitCodeServiceUnavailable, "Failed to resolve prefixes", err)
		}
		keys = append(keys, collected...)
	}

	if !rmYes {
		fmt.Printf("=== Delete Plan (dry-run) ===\n\n")
		fmt.Printf("Bucket: %s\n", rmBucket)
		fmt.Printf("Keys:   %d\n\n", len(keys))
		for _, k := range keys {
			fmt.Printf("  - %s\n", k)
		}
		fmt.Printf("\nAdd --yes to delete.\n")
		return nil
	}

	writer, cleanup, err := createWriter(rmOutput, jobID, rmBucket)
	if err != nil {
		return exitError(exitCodeFileWriteError, "Failed to create output", err)
	}
	defer cleanup()

	observability.CLILogger.Info("Deleting objects",
		zap.String("job_id", jobID),
		zap.String("bucket", rmBucket),
		zap.Int("keys", len(keys)))

	start := time.Now()

	deleted, err := client.DeleteAll(ctx, rmBucket, keys)
	if err != nil {
		_ = writer.WriteError(ctx, &output.ErrorRecord{
			Code:    errorCode(err),
			Message: err.Error(),
		})
		observability.CLILogger.Error("Delete failed",
			zap.String("job_id", jobID),
			zap.Error(err))
		return exitError(exitCodeServiceUnavailable, "Delete failed", err)
	}

	duration := time.Since(start)
	if err := writer.WriteSummary(ctx, &output.SummaryRecord{
		Objects:       int64(len(keys)),
		Deleted:       int64(deleted),
		Duration:      duration,
		DurationHuman: duration.Round(time.Millisecond).String(),
		Prefixes:      rmPrefixes,
	}); err != nil {
		return exitError(exitCodeFileWriteError, "Failed to write summary", err)
	}

	observability.CLILogger.Info("Delete completed",
		zap.String("job_id", jobID),
		zap.Int("requested", len(keys)),
		zap.Int("deleted", deleted),
		zap.Duration("duration", duration))

	return nil
}
