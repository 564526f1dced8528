package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the convlog CLI.
// These templates ensure consistent, actionable error messages.

// MissingVersion creates an error for a generate call without --version.
func MissingVersion() *CLIError {
	return NewArgumentErrorWithUsage(
		"release version is required",
		"convlog generate --version <version>",
		"Pass the version being released, e.g. --version 1.4.0",
	)
}

// InvalidFormat creates an error for an unknown output format.
func InvalidFormat(provided string, valid []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown format %q", provided),
		"convlog generate --format <"+strings.Join(valid, "|")+">",
		"Valid formats: "+strings.Join(valid, ", "),
	)
}

// InvalidDate creates an error for a --date value that is not YYYY-MM-DD.
func InvalidDate(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid date %q", provided),
		"convlog generate --date YYYY-MM-DD",
		"Use an ISO date such as 2019-05-25",
		"Omit --date to use today's date",
	)
}

// ConflictingFlags creates an error for mutually exclusive flags.
func ConflictingFlags(a, b string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("--%s and --%s cannot be used together", a, b),
		fmt.Sprintf("Remove either --%s or --%s", a, b),
	)
}

// GitNotRepository creates an error when not in a git repository.
func GitNotRepository(cause error) *CLIError {
	cliErr := NewPrerequisiteError(
		"not in a git repository",
		"Run convlog from inside a git repository",
		"Or pipe pre-formatted commits in with: convlog generate --input -",
	)
	cliErr.Cause = cause
	return cliErr
}

// RevisionNotFound creates an error when --from or --to cannot be resolved.
func RevisionNotFound(rev string, cause error) *CLIError {
	return WrapWithMessage(cause, Argument,
		fmt.Sprintf("revision %q not found", rev),
		"Check the tag or branch exists: git rev-parse "+rev,
		"Fetch tags from the remote: git fetch --tags",
	)
}

// NoReleaseTag creates an error when --from-latest-tag finds no version tag.
func NoReleaseTag(cause error) *CLIError {
	return WrapWithMessage(cause, Prerequisite,
		"no release tag to start from",
		"Tag the previous release, e.g. git tag v1.0.0",
		"Or pass the start revision explicitly with --from",
		"Or drop --from-latest-tag to include the whole history",
	)
}

// CommitSourceError creates an error when commit records cannot be read.
func CommitSourceError(source string, cause error) *CLIError {
	return WrapWithMessage(cause, Runtime,
		fmt.Sprintf("reading commits from %s", source),
		"Check the file exists and is readable",
		"Each record must be: subject|body|long hash|short hash|author|timestamp|>",
	)
}

// ConfigParseError creates an error for configuration loading failures.
func ConfigParseError(cause error) *CLIError {
	return WrapWithMessage(cause, Configuration,
		"failed to load configuration",
		"Check .convlog/config.yml and ~/.config/convlog/config.yml",
		"Show the effective configuration with: convlog config show",
		"List valid keys with: convlog config keys",
	)
}

// OutputError creates an error when the changelog cannot be written.
func OutputError(path string, cause error) *CLIError {
	return WrapWithMessage(cause, Runtime,
		fmt.Sprintf("writing changelog to %s", path),
		"Check the directory exists and is writable",
	)
}
