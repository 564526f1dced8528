package util

import (
	"fmt"

	"github.com/ariel-frischer/convlog/internal/cli/shared"
	"github.com/ariel-frischer/convlog/internal/health"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the repository, configuration and release tags",
	Long: `Check that convlog can run here: the repository opens, the configuration
loads and validates, and a semantic version tag exists for --from-latest-tag.

Advisory findings are marked with ○ and do not fail the command.`,
	Example: `  convlog doctor
  convlog doctor --repo ../other-service`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().String("repo", "", "Repository path (default: current directory)")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	repo, _ := cmd.Flags().GetString("repo")
	configPath, _ := cmd.Flags().GetString("config")

	report := health.RunHealthChecks(health.Options{RepoPath: repo, ProjectConfigPath: configPath})
	fmt.Fprint(cmd.OutOrStdout(), health.FormatReport(report))

	if !report.Passed {
		return shared.NewExitError(shared.ExitMissingDependency)
	}
	return nil
}
