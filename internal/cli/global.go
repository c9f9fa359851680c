// Package cli provides global state and utilities for CLI commands.
package cli

import (
	"sync"

	"github.com/spf13/cobra"
)

var (
	// NoInput indicates that interactive prompts and the progress TUI
	// should be disabled. This is set by the global --no-input flag.
	NoInput bool

	// noInputMutex protects NoInput for concurrent access.
	noInputMutex sync.RWMutex
)

// AddGlobalFlags adds global flags to a command.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&NoInput, "no-input", false,
		"disable interactive prompts and progress UI; use plain text output")
}

// IsNoInput returns true if interactive mode is disabled.
func IsNoInput() bool {
	noInputMutex.RLock()
	defer noInputMutex.RUnlock()
	return NoInput
}
