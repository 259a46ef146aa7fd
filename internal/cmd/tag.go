package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/bucketkit/internal/observability"
	"github.com/3leaps/bucketkit/pkg/store"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage object tags across prefixes",
	Long: `Add or remove a tag on every object under one or more prefixes.

Tag mutation is read-modify-write per object and is not atomic across
the set: a failure partway through leaves earlier objects mutated.

Examples:
  bucketkit tag add --bucket my-data --prefix data/2025/ --tag tier=archive
  bucketkit tag rm --bucket my-data --prefix data/2025/ --name tier`,
}

var tagAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a tag to matched objects",
	RunE:  runTagAdd,
}

var tagRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove a tag key from matched objects",
	RunE:  runTagRm,
}

var (
	tagBucket      string
	tagPrefixes    []string
	tagConcurrency int
	tagPair        string
	tagName        string
)

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRmCmd)

	tagCmd.PersistentFlags().StringVarP(&tagBucket, "bucket", "b", "", "Bucket to operate on (required)")
	tagCmd.PersistentFlags().StringArrayVarP(&tagPrefixes, "prefix", "p", nil, "Key prefix (repeatable, required)")
	tagCmd.PersistentFlags().IntVar(&tagConcurrency, "concurrency", 0, "Concurrent prefix listings (default 4)")

	tagAddCmd.Flags().StringVarP(&tagPair, "tag", "t", "", "Tag as key=value (required)")
	tagRmCmd.Flags().StringVarP(&tagName, "name", "n", "", "Tag key to remove (required)")

	_ = tagCmd.MarkPersistentFlagRequired("bucket")
	_ = tagAddCmd.MarkFlagRequired("tag")
	_ = tagRmCmd.MarkFlagRequired("name")
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(tagPrefixes) == 0 {
		return exitError(exitCodeInvalidArgument, "Missing prefixes", errors.New("at least one --prefix is required"))
	}

	tag, err := parseTagPair(tagPair)
	if err != nil {
		return exitError(exitCodeInvalidArgument, "Invalid --tag value", err)
	}

	jobID := uuid.New().String()

	client, err := newClient(ctx, tagConcurrency, 0)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	observability.CLILogger.Info("Adding tag",
		zap.String("job_id", jobID),
		zap.String("bucket", tagBucket),
		zap.Strings("prefixes", tagPrefixes),
		zap.String("tag_key", tag.Key))

	start := time.Now()

	if err := client.AddTag(ctx, tagBucket, tagPrefixes, tag); err != nil {
		observability.CLILogger.Error("Tag add failed",
			zap.String("job_id", jobID),
			zap.Error(err))
		return exitError(exitCodeServiceUnavailable, "Tag add failed", err)
	}

	observability.CLILogger.Info("Tag add completed",
		zap.String("job_id", jobID),
		zap.Duration("duration", time.Since(start)))

	return nil
}

func runTagRm(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(tagPrefixes) == 0 {
		return exitError(exitCodeInvalidArgument, "Missing prefixes", errors.New("at least one --prefix is required"))
	}

	jobID := uuid.New().String()

	client, err := newClient(ctx, tagConcurrency, 0)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	observability.CLILogger.Info("Removing tag",
		zap.String("job_id", jobID),
		zap.String("bucket", tagBucket),
		zap.Strings("prefixes", tagPrefixes),
		zap.String("tag_key", tagName))

	start := time.Now()

	if err := client.RemoveTag(ctx, tagBucket, tagPrefixes, tagName); err != nil {
		observability.CLILogger.Error("Tag remove failed",
			zap.String("job_id", jobID),
			zap.Error(err))
		return exitError(exitCodeServiceUnavailable, "Tag remove failed", err)
	}

	observability.CLILogger.Info("Tag remove completed",
		zap.String("job_id", jobID),
		zap.Duration("duration", time.Since(start)))

	return nil
}

// parseTagPair parses a key=value tag argument.
func parseTagPair(s string) (store.Tag, error) {
	key, value, found := strings.Cut(s, "=")
	if !found || key == "" {
		return store.Tag{}, fmt.Errorf("expected key=value, got %q", s)
	}
	return store.Tag{Key: key, Value: value}, nil
}
