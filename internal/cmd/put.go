package cmd

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/bucketkit/internal/observability"
	"github.com/3leaps/bucketkit/pkg/objuri"
)

var putCmd = &cobra.Command{
	Use:   "put",
	Short: "Upload a local file",
	Long: `Upload a local file to a bucket key.

The object is always written with the bucket-owner-full-control ACL so
cross-account uploads remain readable by the bucket owner. With
--encrypt the object is stored with AES-256 server-side encryption.

Examples:
  bucketkit put --file report.csv --bucket my-data --key reports/report.csv
  bucketkit put --file secret.bin --bucket my-data --key vault/secret.bin --encrypt`,
	RunE: runPut,
}

var (
	putFile    string
	putBucket  string
	putKey     string
	putEncrypt bool
)

func init() {
	rootCmd.AddCommand(putCmd)

	putCmd.Flags().StringVarP(&putFile, "file", "f", "", "Local file to upload (required)")
	putCmd.Flags().StringVarP(&putBucket, "bucket", "b", "", "Destination bucket (required)")
	putCmd.Flags().StringVarP(&putKey, "key", "k", "", "Destination object key (required)")
	putCmd.Flags().BoolVar(&putEncrypt, "encrypt", false, "Store with AES-256 server-side encryption")

	_ = putCmd.MarkFlagRequired("file")
	_ = putCmd.MarkFlagRequired("bucket")
	_ = putCmd.MarkFlagRequired("key")
}

func runPut(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	jobID := uuid.New().String()

	if _, err := os.Stat(putFile); err != nil {
		observability.CLILogger.Error("Source file not accessible",
			zap.String("file", putFile),
			zap.Error(err))
		return exitError(exitCodeFileNotFound, "Source file not accessible", err)
	}

	client, err := newClient(ctx, 1, 0)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	dest := objuri.Format(putBucket, putKey)

	observability.CLILogger.Info("Uploading file",
		zap.String("job_id", jobID),
		zap.String("file", putFile),
		zap.String("destination", dest),
		zap.Bool("encrypted", putEncrypt))

	start := time.Now()

	result, err := client.UploadFile(ctx, putFile, putBucket, putKey, putEncrypt)
	if err != nil {
		observability.CLILogger.Error("Upload failed",
			zap.String("job_id", jobID),
			zap.String("destination", dest),
			zap.Error(err))
		return exitError(exitCodeServiceUnavailable, "Upload failed", err)
	}

	observability.CLILogger.Info("Upload completed",
		zap.String("job_id", jobID),
		zap.String("destination", dest),
		zap.String("sse", string(result.ServerSideEncryption)),
		zap.Duration("duration", time.Since(start)))

	return nil
}
