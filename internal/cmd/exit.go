package cmd

import "github.com/fulmenhq/gofulmen/foundry"

// Exit codes follow the foundry convention shared across 3leaps tools.
const (
	exitCodeInvalidArgument    = foundry.ExitInvalidArgument
	exitCodeServiceUnavailable = foundry.ExitExternalServiceUnavailable
	exitCodeFileWriteError     = foundry.ExitFileWriteError
	exitCodeFileNotFound       = foundry.ExitFileNotFound
	exitCodeInterrupted        = foundry.ExitSignalInt
)
