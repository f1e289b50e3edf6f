// Package shared provides common utility functions used across multiple
// packages in the toolchain-fixtures codebase.
package shared

import (
	"fmt"
	"runtime"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}

// DefaultJobs returns the default parallelism for external tools: all CPUs
// but two, and at least one.
func DefaultJobs() int {
	jobs := runtime.NumCPU() - 2
	if jobs < 1 {
		return 1
	}
	return jobs
}
