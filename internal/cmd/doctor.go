package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/fulmenhq/gofulmen/crucible"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/bucketkit/internal/observability"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks",
	Long: `Run diagnostic checks on the environment and suggest fixes for
common issues. With --bucket, also probes the given prefixes with
one-key listing calls to verify reachability and permissions.

Examples:
  bucketkit doctor                                  # Environment check
  bucketkit doctor --bucket my-data --prefix data/  # Probe a prefix`,
	Run: runDoctor,
}

var (
	doctorBucket   string
	doctorPrefixes []string
)

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().StringVarP(&doctorBucket, "bucket", "b", "", "Bucket to probe")
	doctorCmd.Flags().StringArrayVarP(&doctorPrefixes, "prefix", "p", nil, "Prefix to probe (repeatable)")
}

func runDoctor(cmd *cobra.Command, args []string) {
	observability.CLILogger.Info("=== bucketkit doctor ===")
	observability.CLILogger.Info("")
	observability.CLILogger.Info("Running diagnostic checks...")
	observability.CLILogger.Info("")

	allChecks := true
	checkNum := 1
	totalChecks := 4
	if doctorBucket != "" {
		totalChecks++
	}

	// Check 1: Go version
	goVersion := runtime.Version()
	if goVersion >= "go1.23" {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking Go version... ✅ %s", checkNum, totalChecks, goVersion),
			zap.String("go_version", goVersion))
	} else {
		observability.CLILogger.Warn(fmt.Sprintf("[%d/%d] Checking Go version... ⚠️  %s (recommended: go1.23+)", checkNum, totalChecks, goVersion),
			zap.String("go_version", goVersion))
		allChecks = false
	}
	checkNum++

	// Check 2: Gofulmen access
	version := crucible.GetVersion()
	if version.Gofulmen != "" {
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking Gofulmen access... ✅ v%s", checkNum, totalChecks, version.Gofulmen),
			zap.String("gofulmen_version", version.Gofulmen))
	} else {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking Gofulmen access... ❌ Cannot access Gofulmen", checkNum, totalChecks))
		allChecks = false
	}
	checkNum++

	// Check 3: AWS credentials
	if !checkAWSCredentials(cmd.Context(), checkNum, totalChecks) {
		allChecks = false
	}
	checkNum++

	// Check 4: Environment
	observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking environment... ✅ %s/%s", checkNum, totalChecks, runtime.GOOS, runtime.GOARCH),
		zap.String("os", runtime.GOOS),
		zap.String("arch", runtime.GOARCH))
	checkNum++

	// Check 5: Prefix reachability probes
	if doctorBucket != "" {
		if !runPrefixProbes(cmd.Context(), checkNum, totalChecks) {
			allChecks = false
		}
	}

	observability.CLILogger.Info("")
	if allChecks {
		observability.CLILogger.Info("✅ All checks passed! Your bucketkit installation is healthy.")
	} else {
		observability.CLILogger.Warn("⚠️  Some checks failed. Review the output above for details.")
	}
	observability.CLILogger.Info("")
	observability.CLILogger.Info("=== End Diagnostics ===")
}

// checkAWSCredentials verifies the default credential chain resolves.
func checkAWSCredentials(ctx context.Context, checkNum, totalChecks int) bool {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking AWS credentials... ❌ Cannot load AWS config", checkNum, totalChecks),
			zap.Error(err))
		printAWSCredentialsHelp()
		return false
	}

	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking AWS credentials... ❌ Cannot retrieve credentials", checkNum, totalChecks),
			zap.Error(err))
		printAWSCredentialsHelp()
		return false
	}

	observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking AWS credentials... ✅ Found credentials", checkNum, totalChecks),
		zap.String("access_key", maskAccessKey(creds.AccessKeyID)),
		zap.String("source", creds.Source))
	return true
}

// runPrefixProbes probes each configured prefix with a one-key listing.
func runPrefixProbes(ctx context.Context, checkNum, totalChecks int) bool {
	prefixes := doctorPrefixes
	if len(prefixes) == 0 {
		prefixes = []string{""}
	}

	client, err := newClient(ctx, 1, 0)
	if err != nil {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Probing prefixes... ❌ Cannot connect to storage", checkNum, totalChecks),
			zap.Error(err))
		return false
	}
	defer func() { _ = client.Close() }()

	ok := true
	for _, res := range client.Check(ctx, doctorBucket, prefixes) {
		label := res.Prefix
		if label == "" {
			label = "(bucket root)"
		}
		if res.Err != nil {
			observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Probing %s... ❌ %v", checkNum, totalChecks, label, res.Err),
				zap.String("prefix", res.Prefix),
				zap.Error(res.Err))
			ok = false
			continue
		}
		observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Probing %s... ✅ listable (%d object(s) on probe page)", checkNum, totalChecks, label, res.Objects),
			zap.String("prefix", res.Prefix),
			zap.Int("objects", res.Objects))
	}
	return ok
}

// maskAccessKey masks all but the last 4 characters of an access key.
func maskAccessKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// printAWSCredentialsHelp prints help for configuring AWS credentials.
func printAWSCredentialsHelp() {
	observability.CLILogger.Info("")
	observability.CLILogger.Info("To configure AWS credentials:")
	observability.CLILogger.Info("  1. Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables, or")
	observability.CLILogger.Info("  2. Run 'aws configure' to set up a profile, or")
	observability.CLILogger.Info("  3. Use IAM role when running on AWS infrastructure")
	observability.CLILogger.Info("")
	observability.CLILogger.Info("For S3-compatible storage (MinIO, Wasabi, moto), also set:")
	observability.CLILogger.Info("  - AWS_ENDPOINT_URL or use --endpoint flag")
	observability.CLILogger.Info("")
}
