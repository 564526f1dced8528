// Package config provides the convlog config subcommands: show, init,
// keys, set and migrate.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ariel-frischer/convlog/internal/cli/shared"
	"github.com/ariel-frischer/convlog/internal/config"
	clierrors "github.com/ariel-frischer/convlog/internal/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cGreen = color.New(color.FgGreen).SprintFunc()
	cBold  = color.New(color.Bold).SprintFunc()
	cDim   = color.New(color.Faint).SprintFunc()
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage convlog configuration",
	Long: `Manage convlog configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (CONVLOG_*)
  3. Project config (.convlog/config.yml)
  4. User config (~/.config/convlog/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  convlog config show

  # Create a commented project config
  convlog config init

  # Set a value in the project config
  convlog config set format slack
  convlog config set section_titles.bug_fixes Fixes`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every configuration key with its type and default",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the project (or --user) config",
	Long: `Set a value in the project config, or the user config with --user.

Map keys take one entry at a time: types.<token> maps a commit type token to
a section name, section_titles.<section> overrides a heading. List keys such
as ignore_scopes must be edited in the file.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert .convlog/config.json to .convlog/config.yml",
	Args:  cobra.NoArgs,
	RunE:  runConfigMigrate,
}

// Register adds the config command tree to root.
func Register(root *cobra.Command) {
	configCmd.GroupID = shared.GroupConfiguration
	root.AddCommand(configCmd)
}

func init() {
	configShowCmd.Flags().Bool("json", false, "Output in JSON format")
	configSetCmd.Flags().Bool("user", false, "Write to the user config instead of the project config")
	configMigrateCmd.Flags().Bool("dry-run", false, "Report what would change without writing")

	configCmd.AddCommand(configShowCmd, configInitCmd, configKeysCmd, configSetCmd, configMigrateCmd)
}

// projectConfigPath returns the --config override or the default project path.
func projectConfigPath(cmd *cobra.Command) string {
	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		return path
	}
	return config.ProjectConfigPath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	projectPath := projectConfigPath(cmd)
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectConfigPath: projectPath,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		return clierrors.ConfigParseError(err)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	printSources(out, projectPath)
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// printSources lists the config files as a YAML comment block.
func printSources(out io.Writer, projectPath string) {
	userPath, err := config.UserConfigPath()
	if err != nil {
		userPath = "(unavailable)"
	}

	fmt.Fprintln(out, "# Configuration Sources")
	for _, src := range []struct{ label, path string }{
		{"user", userPath},
		{"project", projectPath},
		{"legacy", config.LegacyProjectConfigPath()},
	} {
		state := "not found"
		if _, err := os.Stat(src.path); err == nil {
			state = "loaded"
		}
		fmt.Fprintf(out, "#   %-8s %s (%s)\n", src.label+":", src.path, state)
	}
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, config.EnvPrefix) {
			name, _, _ := strings.Cut(kv, "=")
			env = append(env, name)
		}
	}
	if len(env) > 0 {
		fmt.Fprintf(out, "#   env:     %s\n", strings.Join(env, ", "))
	}
	fmt.Fprintln(out)
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tDEFAULT\tDESCRIPTION")
	for _, name := range config.KeyNames() {
		schema := config.KnownKeys[name]
		typ := schema.Type.String()
		if len(schema.AllowedValues) > 0 {
			typ = strings.Join(schema.AllowedValues, "|")
		}
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", name, typ, formatDefault(schema.Default), schema.Description)
	}
	return w.Flush()
}

// formatDefault renders a default value for the keys table.
func formatDefault(v interface{}) string {
	switch d := v.(type) {
	case string:
		if d == "" {
			return `""`
		}
		return d
	case []string:
		return "[]"
	case map[string]string:
		return "{}"
	default:
		return fmt.Sprint(d)
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := projectConfigPath(cmd)
	if user, _ := cmd.Flags().GetBool("user"); user {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return fmt.Errorf("getting user config path: %w", err)
		}
		path = userPath
	}

	if err := config.SetConfigValue(path, args[0], args[1]); err != nil {
		return clierrors.Wrap(err, clierrors.Configuration,
			"List valid keys with: convlog config keys")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Set %s = %s in %s\n", cGreen("✓"), cBold(args[0]), args[1], cDim(path))
	return nil
}

func runConfigMigrate(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	result, err := config.MigrateProjectConfig(dryRun)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Configuration)
	}
	fmt.Fprintln(out, result.Message)
	for _, key := range result.UnknownKeys {
		fmt.Fprintf(out, "  %s unknown key %q copied as-is\n", cDim("note:"), key)
	}

	if result.Success && !dryRun {
		if err := config.RemoveLegacyConfig(result.SourcePath, false); err != nil {
			return err
		}
		fmt.Fprintf(out, "Legacy config backed up to %s.bak\n", result.SourcePath)
	}
	return nil
}
