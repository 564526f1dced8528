// Package shared provides constants and types used across CLI subpackages.
package shared

import "fmt"

// Exit codes for the convlog CLI.
// These codes support programmatic composition and CI/CD integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0
	// ExitFailure indicates a runtime failure (unreadable input, write error)
	ExitFailure = 1
	// ExitEmptyChangelog indicates --fail-on-empty found no commits to list
	ExitEmptyChangelog = 2
	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3
	// ExitMissingDependency indicates a missing prerequisite (no repository, no release tag)
	ExitMissingDependency = 4
	// ExitInvalidConfig indicates the configuration could not be loaded
	ExitInvalidConfig = 5
)

// Command groups shown in root help.
const (
	GroupReleases      = "releases"
	GroupConfiguration = "configuration"
	GroupInfo          = "info"
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}
