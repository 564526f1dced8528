package cli

import (
	"github.com/ariel-frischer/convlog/internal/changelog"
	"github.com/ariel-frischer/convlog/internal/cli/shared"
	"github.com/spf13/cobra"
)

// unreleasedVersion labels the classification when --version is omitted.
const unreleasedVersion = "unreleased"

type classifyOptions struct {
	Version string
	Date    string
	Source  sourceOptions
}

var classifyOpts classifyOptions

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Show how commits are classified, as YAML",
	Long: `Show how commits are classified without rendering them.

Reads commits like 'convlog generate' and prints the grouped sections as
YAML: every entry with its scope, subject, hashes and breaking-change
note. Useful for checking configured types and ignored scopes.`,
	Example: `  # Classification of everything since the latest tag
  convlog classify --from-latest-tag

  # Classify records from a file
  convlog classify --input commits.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runClassify(cmd, classifyOpts)
	},
}

func init() {
	classifyCmd.GroupID = shared.GroupReleases
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVarP(&classifyOpts.Version, "version", "v", unreleasedVersion, "Release version recorded in the output")
	classifyCmd.Flags().StringVar(&classifyOpts.Date, "date", "", "Release date as YYYY-MM-DD (default: today)")
	addSourceFlags(classifyCmd, &classifyOpts.Source)
}

func runClassify(cmd *cobra.Command, opts classifyOptions) error {
	if err := opts.Source.validate(); err != nil {
		return err
	}
	clock, err := parseClock(opts.Date)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	renderOpts, classifier, err := prepareRendering(cfg, renderOverrides{})
	if err != nil {
		return err
	}

	records, err := readCommits(cmd, opts.Source, cfg.ShortHashLength)
	if err != nil {
		return err
	}

	version := opts.Version
	if version == "" {
		version = unreleasedVersion
	}
	c := changelog.Build(classifier.ClassifyAll(records), version, clock.Today().Format(dateFlagLayout))
	c.Title = renderOpts.Title
	c.Retitle(renderOpts.SectionTitles)

	return changelog.WriteYAML(c, cmd.OutOrStdout())
}
