package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/convlog/internal/changelog"
	"github.com/ariel-frischer/convlog/internal/cli/shared"
	clierrors "github.com/ariel-frischer/convlog/internal/errors"
	"github.com/spf13/cobra"
)

var renderOutput string

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a changelog saved by 'convlog classify'",
	Long: `Render a grouped changelog from the YAML written by 'convlog classify'.

The version, title and date come from the file; sections are rendered in
their fixed order with headings from the configuration. Use '-' to read
from stdin. The output is identical for identical input.`,
	Example: `  # Inspect, edit, then render
  convlog classify --version 1.4.0 --from-latest-tag > release.yaml
  convlog render release.yaml --format slack

  # Pipe straight through
  convlog classify --input commits.txt | convlog render - -o CHANGES.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args[0], renderOutput, overridesFromFlags(cmd.Flags()))
	},
}

func init() {
	renderCmd.GroupID = shared.GroupReleases
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Write the changelog to a file instead of stdout")
	addRenderFlags(renderCmd)
}

func runRender(cmd *cobra.Command, path, output string, overrides renderOverrides) error {
	c, err := loadChangelog(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	renderOpts, _, err := prepareRendering(cfg, overrides)
	if err != nil {
		return err
	}
	if overrides.Title != nil {
		c.Title = renderOpts.Title
	}

	return writeChangelog(cmd, c, renderOpts, output)
}

// loadChangelog reads a YAML changelog from path, or from stdin for "-".
func loadChangelog(stdin io.Reader, path string) (*changelog.Changelog, error) {
	in := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, clierrors.WrapWithMessage(err, clierrors.Runtime,
				fmt.Sprintf("opening changelog %s", path))
		}
		defer f.Close()
		in = f
	}

	c, err := changelog.LoadYAML(in)
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Argument,
			fmt.Sprintf("cannot read changelog from %s", path),
			"Produce the file with: convlog classify > release.yaml")
	}
	logger.Debugw("changelog loaded", "path", path, "sections", len(c.Sections))
	return c, nil
}
