package cmd

import (
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestSetVersionInfo(t *testing.T) {
	// Save original values
	origVersion := versionInfo.Version
	origCommit := versionInfo.Commit
	origBuildDate := versionInfo.BuildDate
	defer func() {
		versionInfo.Version = origVersion
		versionInfo.Commit = origCommit
		versionInfo.BuildDate = origBuildDate
	}()

	tests := []struct {
		name      string
		version   string
		commit    string
		buildDate string
	}{
		{
			name:      "set all values",
			version:   "1.0.0",
			commit:    "abc123",
			buildDate: "2024-01-15",
		},
		{
			name:      "set dev version",
			version:   "dev",
			commit:    "HEAD",
			buildDate: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersionInfo(tt.version, tt.commit, tt.buildDate)

			assert.Equal(t, tt.version, versionInfo.Version)
			assert.Equal(t, tt.commit, versionInfo.Commit)
			assert.Equal(t, tt.buildDate, versionInfo.BuildDate)
		})
	}
}

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	setDefaults()

	// Logging defaults
	assert.Equal(t, "info", viper.GetString("logging.level"))
	assert.Equal(t, "console", viper.GetString("logging.format"))

	// Connection defaults
	assert.Equal(t, "", viper.GetString("connection.region"))
	assert.Equal(t, "", viper.GetString("connection.endpoint"))
	assert.Equal(t, "", viper.GetString("connection.profile"))

	// Perform defaults
	assert.Equal(t, 4, viper.GetInt("perform.concurrency"))
	assert.Equal(t, 0.0, viper.GetFloat64("perform.rate_limit"))
}

func TestExitCode(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.Equal(t, 0, ExitCode(nil))
	})

	t.Run("coded error", func(t *testing.T) {
		err := exitError(exitCodeInvalidArgument, "Bad input", errors.New("boom"))
		assert.Equal(t, exitCodeInvalidArgument, ExitCode(err))
	})

	t.Run("wrapped coded error", func(t *testing.T) {
		inner := exitError(exitCodeServiceUnavailable, "Down", errors.New("boom"))
		wrapped := errors.Join(errors.New("context"), inner)
		assert.Equal(t, exitCodeServiceUnavailable, ExitCode(wrapped))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, 1, ExitCode(errors.New("boom")))
	})
}

func TestCodedErrorMessage(t *testing.T) {
	err := exitError(exitCodeInvalidArgument, "Invalid manifest", errors.New("missing bucket"))
	assert.Equal(t, "Invalid manifest: missing bucket", err.Error())

	bare := exitError(exitCodeInvalidArgument, "Invalid manifest", nil)
	assert.Equal(t, "Invalid manifest", bare.Error())
}

func TestParseTagPair(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantKey string
		wantVal string
		wantErr bool
	}{
		{name: "simple pair", input: "tier=archive", wantKey: "tier", wantVal: "archive"},
		{name: "empty value", input: "tier=", wantKey: "tier", wantVal: ""},
		{name: "value with equals", input: "expr=a=b", wantKey: "expr", wantVal: "a=b"},
		{name: "missing equals", input: "tier", wantErr: true},
		{name: "empty key", input: "=archive", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := parseTagPair(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantKey, tag.Key)
			assert.Equal(t, tt.wantVal, tag.Value)
		})
	}
}
