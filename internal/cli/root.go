// Package cli implements the convlog command-line interface with cobra.
package cli

import (
	"errors"
	"fmt"

	configcmd "github.com/ariel-frischer/convlog/internal/cli/config"
	"github.com/ariel-frischer/convlog/internal/cli/shared"
	"github.com/ariel-frischer/convlog/internal/cli/util"
	"github.com/ariel-frischer/convlog/internal/config"
	clierrors "github.com/ariel-frischer/convlog/internal/errors"
	"github.com/ariel-frischer/convlog/internal/git"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "convlog",
	Short: "Generate release changelogs from conventional commits",
	Long: `convlog reads commit history and renders a changelog grouped by
conventional-commit type (feat, fix, perf, docs, style, refactor, test).

Commits come from the current git repository, or from pre-formatted
pipe-delimited records on a file or stdin. Output is Markdown, plain text,
or Slack markup.`,
	Example: `  # Changelog for everything since the last release tag
  convlog generate --version 1.4.0 --from-latest-tag

  # Slack message for a range, with authors
  convlog generate --version 1.4.0 --from v1.3.0 --format slack --author

  # Render records produced by git log
  git log --format='%s|%b|%H|%h|%an|%at|>' | convlog generate --version 1.4.0 --input -`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: shared.GroupReleases, Title: "Release Commands:"},
		&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration Commands:"},
		&cobra.Group{ID: shared.GroupInfo, Title: "Info Commands:"},
	)

	configcmd.Register(rootCmd)
	util.Register(rootCmd)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Project config file (default: .convlog/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to stderr")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for the available flags", cmd.CommandPath()))
	})
}

// Execute runs the root command and reports any error on stderr.
// ExitErrors are silent: the command already printed what it had to say.
func Execute() error {
	err := rootCmd.Execute()
	var exitErr *shared.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		clierrors.Report(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// logger is a no-op until --debug is given.
var logger = zap.NewNop().Sugar()

// setupLogging installs a zap development logger when --debug is set and
// routes git debug output through it.
func setupLogging(cmd *cobra.Command, args []string) error {
	if !debugMode {
		return nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("creating debug logger: %w", err)
	}
	logger = l.Sugar().Named("convlog")
	git.SetDebugLogger(logger.Named("git").Debugf)
	logger.Debugw("debug logging enabled", "command", cmd.CommandPath())
	return nil
}

// loadConfig loads the layered configuration, honoring --config.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: configPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.ConfigParseError(err)
	}
	logger.Debugw("configuration loaded", "format", cfg.Format, "short_hash_length", cfg.ShortHashLength)
	return cfg, nil
}
