package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ariel-frischer/convlog/internal/changelog"
	"github.com/ariel-frischer/convlog/internal/cli/shared"
	"github.com/ariel-frischer/convlog/internal/config"
	clierrors "github.com/ariel-frischer/convlog/internal/errors"
	"github.com/ariel-frischer/convlog/internal/output"
	"github.com/ariel-frischer/convlog/internal/progress"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// dateFlagLayout is the layout accepted by --date.
const dateFlagLayout = "2006-01-02"

// generateOptions holds the generate command's flags.
type generateOptions struct {
	Version     string
	Date        string
	Output      string
	Summary     bool
	FailOnEmpty bool
	Source      sourceOptions
	Render      renderOverrides
}

// renderOverrides are rendering flags given explicitly on the command
// line; nil fields fall back to the configuration.
type renderOverrides struct {
	Format        *string
	Title         *string
	CommitURL     *string
	DisplayTitle  *bool
	DisplayAuthor *bool
	DisplayLinks  *bool
}

var generateOpts generateOptions

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Render the changelog for a release (gen)",
	Long: `Render the changelog for a release.

Commits are read from the current repository (newest first) or from
pipe-delimited records given with --input, classified by conventional-commit
type and grouped into sections in a fixed order: Features, Bug fixes,
Performance improvements, Reverts, BREAKING CHANGES, Documentation, Styles,
Code refactoring, Tests, Other work. Merge commits are left out.

Flags override the configuration files and CONVLOG_* environment variables.`,
	Example: `  # Everything since the latest release tag, as Markdown
  convlog generate --version 1.4.0 --from-latest-tag

  # Plain text without the header, written to a file
  convlog generate --version 1.4.0 --from v1.3.0 --format plain --no-title -o NOTES.txt

  # Slack message with authors and GitHub links
  convlog generate --version 1.4.0 --format slack --author \
    --commit-url https://github.com/org/repo/commit

  # Records from git log on stdin, with a fixed release date
  git log --format='%s|%b|%H|%h|%an|%at|>' v1.3.0..HEAD | \
    convlog generate --version 1.4.0 --input - --date 2019-05-25`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := generateOpts
		opts.Render = overridesFromFlags(cmd.Flags())
		return runGenerate(cmd, opts)
	},
}

func init() {
	generateCmd.GroupID = shared.GroupReleases
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringVarP(&generateOpts.Version, "version", "v", "", "Release version shown in the header (required)")
	f.StringVar(&generateOpts.Date, "date", "", "Release date as YYYY-MM-DD (default: today)")
	f.StringVarP(&generateOpts.Output, "output", "o", "", "Write the changelog to a file instead of stdout")
	f.BoolVar(&generateOpts.Summary, "summary", false, "Print a per-section summary to stderr")
	f.BoolVar(&generateOpts.FailOnEmpty, "fail-on-empty", false, "Exit with code 2 when no commits are listed")
	addSourceFlags(generateCmd, &generateOpts.Source)
	addRenderFlags(generateCmd)
}

// addRenderFlags registers the flags read back by overridesFromFlags.
func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("format", "f", "", "Output format: "+strings.Join(changelog.ValidFormats(), ", "))
	f.String("title", "", "Text inside the parentheses after the version")
	f.String("commit-url", "", "Commit link prefix, e.g. https://github.com/org/repo/commit")
	f.Bool("no-title", false, "Omit the version/date header")
	f.Bool("author", false, "Append the author to every commit line")
	f.Bool("no-links", false, "Omit commit hash links")
}

// overridesFromFlags collects the rendering flags that were set explicitly.
func overridesFromFlags(flags *pflag.FlagSet) renderOverrides {
	var o renderOverrides
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	boolean := func(name string, negate bool) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		v = v != negate
		return &v
	}
	o.Format = str("format")
	o.Title = str("title")
	o.CommitURL = str("commit-url")
	o.DisplayTitle = boolean("no-title", true)
	o.DisplayAuthor = boolean("author", false)
	o.DisplayLinks = boolean("no-links", true)
	return o
}

// apply writes the overrides into cfg.
func (o renderOverrides) apply(cfg *config.Configuration) error {
	if o.Format != nil {
		format, err := changelog.ParseFormat(*o.Format)
		if err != nil {
			return clierrors.InvalidFormat(*o.Format, changelog.ValidFormats())
		}
		cfg.Format = string(format)
	}
	if o.Title != nil {
		cfg.Title = *o.Title
	}
	if o.CommitURL != nil {
		cfg.CommitURL = strings.TrimRight(*o.CommitURL, "/")
	}
	if o.DisplayTitle != nil {
		cfg.DisplayTitle = *o.DisplayTitle
	}
	if o.DisplayAuthor != nil {
		cfg.DisplayAuthor = *o.DisplayAuthor
	}
	if o.DisplayLinks != nil {
		cfg.DisplayLinks = *o.DisplayLinks
	}
	return nil
}

// parseClock returns the clock dating the header: fixed when --date is
// given, the system clock otherwise.
func parseClock(date string) (changelog.Clock, error) {
	if date == "" {
		return changelog.SystemClock{}, nil
	}
	t, err := time.Parse(dateFlagLayout, date)
	if err != nil {
		return nil, clierrors.InvalidDate(date)
	}
	return changelog.FixedClock(t), nil
}

// prepareRendering merges flag overrides into cfg and derives the renderer
// options and classifier.
func prepareRendering(cfg *config.Configuration, overrides renderOverrides) (changelog.RenderOptions, *changelog.Classifier, error) {
	if err := overrides.apply(cfg); err != nil {
		return changelog.RenderOptions{}, nil, err
	}
	opts, err := cfg.RenderOptions()
	if err != nil {
		return changelog.RenderOptions{}, nil, clierrors.ConfigParseError(err)
	}
	classifier, err := cfg.Classifier()
	if err != nil {
		return changelog.RenderOptions{}, nil, clierrors.ConfigParseError(err)
	}
	return opts, classifier, nil
}

func runGenerate(cmd *cobra.Command, opts generateOptions) error {
	if strings.TrimSpace(opts.Version) == "" {
		return clierrors.MissingVersion()
	}
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
	renderOpts, classifier, err := prepareRendering(cfg, opts.Render)
	if err != nil {
		return err
	}

	records, err := readCommits(cmd, opts.Source, cfg.ShortHashLength)
	if err != nil {
		return err
	}

	c := changelog.Build(classifier.ClassifyAll(records), opts.Version, clock.Today().Format(dateFlagLayout))
	c.Title = renderOpts.Title
	logger.Debugw("changelog built", "version", c.Version, "sections", len(c.Sections), "entries", c.CommitCount())

	if err := writeChangelog(cmd, c, renderOpts, opts.Output); err != nil {
		return err
	}

	if opts.Summary {
		output.PrintSummary(cmd.ErrOrStderr(), c, output.GetTerminalWidth(os.Stderr))
	}

	if opts.FailOnEmpty && c.IsEmpty() {
		fmt.Fprintln(cmd.ErrOrStderr(), "No changelog entries found.")
		return shared.NewExitError(shared.ExitEmptyChangelog)
	}
	return nil
}

// writeChangelog renders c to stdout, or to path when one is given. The
// text ends with a single newline.
func writeChangelog(cmd *cobra.Command, c *changelog.Changelog, opts changelog.RenderOptions, path string) error {
	text := changelog.RenderString(c, opts)
	if text != "" {
		text += "\n"
	}

	if path == "" || path == "-" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return clierrors.OutputError(path, err)
	}
	symbols := progress.SelectSymbols(progress.DetectTerminalCapabilities(os.Stderr))
	output.PrintWritten(cmd.ErrOrStderr(), symbols.Checkmark, path)
	return nil
}
