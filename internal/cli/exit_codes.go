package cli

import (
	"errors"

	"github.com/ariel-frischer/convlog/internal/cli/shared"
	clierrors "github.com/ariel-frischer/convlog/internal/errors"
)

// ExitCode maps an error returned by a command to the process exit code.
// Explicit ExitErrors win; CLIErrors map by category; anything else is a
// runtime failure.
func ExitCode(err error) int {
	if err == nil {
		return shared.ExitSuccess
	}

	var exitErr *shared.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument:
			return shared.ExitInvalidArguments
		case clierrors.Configuration:
			return shared.ExitInvalidConfig
		case clierrors.Prerequisite:
			return shared.ExitMissingDependency
		}
	}
	return shared.ExitFailure
}
