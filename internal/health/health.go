// Package health provides the environment checks behind 'convlog doctor':
// a readable repository, a loadable configuration and a release tag for
// --from-latest-tag to start from.
package health

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/convlog/internal/config"
	"github.com/ariel-frischer/convlog/internal/git"
)

// Check names, in report order.
const (
	CheckRepository    = "Git repository"
	CheckConfiguration = "Configuration"
	CheckLegacyConfig  = "Legacy config"
	CheckReleaseTag    = "Release tag"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Advisory checks are reported but do not fail the report.
	Advisory bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options selects what the checks look at.
type Options struct {
	// RepoPath is the repository to inspect; empty means the working directory.
	RepoPath string
	// ProjectConfigPath overrides .convlog/config.yml.
	ProjectConfigPath string
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(opts Options) *HealthReport {
	report := &HealthReport{Passed: true}

	repo, repoCheck := CheckRepositoryAt(opts.RepoPath)
	report.add(repoCheck)
	report.add(CheckConfig(opts.ProjectConfigPath))

	projectDir := ""
	if repo != nil {
		if root, err := repo.Root(); err == nil {
			projectDir = root
		}
	}
	report.add(CheckLegacyConfigIn(projectDir))

	if repo != nil {
		report.add(CheckLatestTag(repo))
	}
	return report
}

func (r *HealthReport) add(check CheckResult) {
	r.Checks = append(r.Checks, check)
	if !check.Passed && !check.Advisory {
		r.Passed = false
	}
}

// CheckRepositoryAt opens the repository containing path. The repository is
// nil when the check fails.
func CheckRepositoryAt(path string) (*git.Repository, CheckResult) {
	result := CheckResult{Name: CheckRepository}

	repo, err := git.Open(path)
	if errors.Is(err, git.ErrNotRepository) {
		result.Message = "not inside a git repository (use --input to render pre-formatted records)"
		return nil, result
	}
	if err != nil {
		result.Message = err.Error()
		return nil, result
	}

	root, err := repo.Root()
	if err != nil {
		// bare repositories have no worktree but can still be read
		root = "(bare)"
	}
	result.Passed = true
	result.Message = "found at " + root
	return repo, result
}

// CheckConfig loads the layered configuration and reports the first problem.
func CheckConfig(projectConfigPath string) CheckResult {
	result := CheckResult{Name: CheckConfiguration}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: projectConfigPath,
		SkipWarnings:      true,
	})
	if err != nil {
		result.Message = err.Error()
		return result
	}

	result.Passed = true
	result.Message = fmt.Sprintf("valid (format %s)", cfg.Format)
	return result
}

// CheckLegacyConfigIn looks for a .convlog/config.json under projectDir (the
// working directory when empty) that has not been migrated.
func CheckLegacyConfigIn(projectDir string) CheckResult {
	result := CheckResult{Name: CheckLegacyConfig, Advisory: true}

	legacy := filepath.Join(projectDir, config.LegacyProjectConfigPath())
	if _, err := os.Stat(legacy); err != nil {
		result.Passed = true
		result.Message = "none"
		return result
	}

	result.Message = fmt.Sprintf("%s found; run 'convlog config migrate'", legacy)
	return result
}

// CheckLatestTag reports the tag --from-latest-tag would start from.
func CheckLatestTag(repo *git.Repository) CheckResult {
	result := CheckResult{Name: CheckReleaseTag, Advisory: true}

	tag, err := repo.LatestTag(false)
	if errors.Is(err, git.ErrNoReleaseTag) {
		result.Message = "no semantic version tag; --from-latest-tag will fail"
		return result
	}
	if err != nil {
		result.Message = err.Error()
		return result
	}

	result.Passed = true
	result.Message = fmt.Sprintf("%s (%s)", tag.Name, tag.Commit.String()[:git.DefaultShortHashLength])
	return result
}

// FormatReport formats a health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		switch {
		case check.Passed:
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		case check.Advisory:
			output += fmt.Sprintf("○ %s: %s\n", check.Name, check.Message)
		default:
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}

	return output
}
