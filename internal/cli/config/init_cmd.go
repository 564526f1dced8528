package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/convlog/internal/config"
	"github.com/spf13/cobra"
)

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a commented config file with the defaults",
	Long: `Create a config file holding every setting at its default value.

By default the project config (.convlog/config.yml) is created in the current
directory, or under [path] when given. Use --user for ~/.config/convlog/config.yml.

An existing file is left unchanged unless --force is set.`,
	Example: `  # Project config in the current repository
  convlog config init

  # Project config for another checkout
  convlog config init ~/src/my-app

  # User-level config
  convlog config init --user`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("user", false, "Create the user config instead of the project config")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")
	if user && len(args) > 0 {
		return fmt.Errorf("--user cannot be combined with a path argument")
	}

	configPath, err := getConfigPath(cmd, args, user)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if _, err := initializeConfig(out, configPath, force); err != nil {
		return err
	}

	if !user {
		legacy := filepath.Join(filepath.Dir(configPath), filepath.Base(config.LegacyProjectConfigPath()))
		if fileExists(legacy) {
			fmt.Fprintf(out, "%s legacy %s found; run 'convlog config migrate' to carry its settings over\n",
				cDim("note:"), legacy)
		}
	}
	return nil
}

// initializeConfig writes the default template to configPath. It reports
// whether a new file was created.
func initializeConfig(out io.Writer, configPath string, force bool) (bool, error) {
	configExists := fileExists(configPath)

	if configExists && !force {
		fmt.Fprintf(out, "%s %s: exists at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
		return false, nil
	}

	if err := writeDefaultConfig(configPath); err != nil {
		return false, fmt.Errorf("writing default config: %w", err)
	}

	if configExists {
		fmt.Fprintf(out, "%s %s: overwritten at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
	} else {
		fmt.Fprintf(out, "%s %s: created at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
	}
	return !configExists, nil
}

// getConfigPath picks the file config init writes: the user config, the
// project config under a path argument, or the --config/default project path.
func getConfigPath(cmd *cobra.Command, args []string, user bool) (string, error) {
	if user {
		configPath, err := config.UserConfigPath()
		if err != nil {
			return "", fmt.Errorf("getting user config path: %w", err)
		}
		return configPath, nil
	}

	if len(args) > 0 && args[0] != "" {
		root, err := ResolvePath(args[0])
		if err != nil {
			return "", err
		}
		if err := EnsureDirectory(root); err != nil {
			return "", err
		}
		return filepath.Join(root, config.ProjectConfigPath()), nil
	}
	return projectConfigPath(cmd), nil
}

// writeDefaultConfig writes the default configuration to the given path
func writeDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
