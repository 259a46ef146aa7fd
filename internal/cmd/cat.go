package cmd

import (
	"errors"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/bucketkit/internal/observability"
)

var catCmd = &cobra.Command{
	Use:   "cat",
	Short: "Stream object contents to stdout",
	Long: `Fetch matching objects one at a time and write their contents to
stdout in listing order.

The listing is resolved up front; object bodies are fetched lazily, one
per object as it is consumed. Use --suffix to restrict which keys are
fetched.

Examples:
  bucketkit cat --bucket my-data --prefix data/2025/part-00000.avro
  bucketkit cat --bucket my-data --prefix logs/2025-08-28/ --suffix .log`,
	RunE: runCat,
}

var (
	catBucket string
	catPrefix string
	catSuffix string
)

func init() {
	rootCmd.AddCommand(catCmd)

	catCmd.Flags().StringVarP(&catBucket, "bucket", "b", "", "Bucket to read from (required)")
	catCmd.Flags().StringVarP(&catPrefix, "prefix", "p", "", "Fetch every object under this prefix (required)")
	catCmd.Flags().StringVarP(&catSuffix, "suffix", "s", "", "Only fetch keys ending with this string")

	_ = catCmd.MarkFlagRequired("bucket")
	_ = catCmd.MarkFlagRequired("prefix")
}

func runCat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	jobID := uuid.New().String()

	if catPrefix == "" {
		return exitError(exitCodeInvalidArgument, "Nothing to fetch", errors.New("--prefix is required"))
	}

	client, err := newClient(ctx, 1, 0)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	iter, err := client.Contents(ctx, catBucket, catPrefix, catSuffix)
	if err != nil {
		observability.CLILogger.Error("Listing failed",
			zap.String("job_id", jobID),
			zap.String("bucket", catBucket),
			zap.String("prefix", catPrefix),
			zap.Error(err))
		return exitError(exitCodeServiceUnavailable, "Listing failed", err)
	}

	observability.CLILogger.Debug("Streaming contents",
		zap.String("job_id", jobID),
		zap.String("bucket", catBucket),
		zap.Int("objects", iter.Remaining()))

	var streamed int
	for {
		content, err := iter.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			observability.CLILogger.Error("Fetch failed",
				zap.String("job_id", jobID),
				zap.Error(err))
			return exitError(exitCodeServiceUnavailable, "Fetch failed", err)
		}

		_, copyErr := io.Copy(os.Stdout, content.Body)
		closeErr := content.Body.Close()
		if copyErr != nil {
			return exitError(exitCodeServiceUnavailable, "Read failed", copyErr)
		}
		if closeErr != nil {
			return exitError(exitCodeServiceUnavailable, "Close failed", closeErr)
		}
		streamed++
	}

	observability.CLILogger.Debug("Streaming completed",
		zap.String("job_id", jobID),
		zap.Int("objects", streamed))

	return nil
}
