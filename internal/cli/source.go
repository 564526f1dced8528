package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ariel-frischer/convlog/internal/changelog"
	clierrors "github.com/ariel-frischer/convlog/internal/errors"
	"github.com/ariel-frischer/convlog/internal/git"
	"github.com/ariel-frischer/convlog/internal/progress"
	"github.com/spf13/cobra"
)

// sourceOptions selects where commit records come from.
type sourceOptions struct {
	Repo              string
	From              string
	To                string
	FromLatestTag     bool
	IncludePrerelease bool
	Input             string
}

// addSourceFlags registers the commit source flags on cmd.
func addSourceFlags(cmd *cobra.Command, o *sourceOptions) {
	cmd.Flags().StringVar(&o.Repo, "repo", "", "Repository path (default: current directory)")
	cmd.Flags().StringVar(&o.From, "from", "", "Exclusive start revision (tag, branch or hash)")
	cmd.Flags().StringVar(&o.To, "to", "", "Inclusive end revision (default: HEAD)")
	cmd.Flags().BoolVar(&o.FromLatestTag, "from-latest-tag", false, "Start after the highest semantic version tag")
	cmd.Flags().BoolVar(&o.IncludePrerelease, "include-prerelease", false, "Let --from-latest-tag pick prerelease tags")
	cmd.Flags().StringVarP(&o.Input, "input", "i", "", "Read pipe-delimited commit records from a file ('-' for stdin)")
}

// validate rejects flag combinations that select two sources at once.
func (o sourceOptions) validate() error {
	if o.From != "" && o.FromLatestTag {
		return clierrors.ConflictingFlags("from", "from-latest-tag")
	}
	if o.Input == "" {
		return nil
	}
	conflicts := []struct {
		flag string
		set  bool
	}{
		{"from", o.From != ""},
		{"to", o.To != ""},
		{"from-latest-tag", o.FromLatestTag},
		{"repo", o.Repo != ""},
	}
	for _, c := range conflicts {
		if c.set {
			return clierrors.ConflictingFlags("input", c.flag)
		}
	}
	return nil
}

// openSource resolves the options to a commit source, the range to read
// and a label for messages.
func openSource(cmd *cobra.Command, o sourceOptions, shortHashLength int) (git.CommitSource, git.Range, string, error) {
	if o.Input != "" {
		label := o.Input
		if o.Input == git.StdinPath {
			label = "stdin"
		}
		return git.FileSource{Path: o.Input, Stdin: cmd.InOrStdin()}, git.Range{}, label, nil
	}

	repo, err := git.Open(o.Repo)
	if errors.Is(err, git.ErrNotRepository) {
		return nil, git.Range{}, "", clierrors.GitNotRepository(err)
	}
	if err != nil {
		return nil, git.Range{}, "", clierrors.Wrap(err, clierrors.Runtime)
	}
	repo.ShortHashLength = shortHashLength

	rng := git.Range{From: o.From, To: o.To}
	if o.FromLatestTag {
		tag, err := repo.LatestTag(o.IncludePrerelease)
		if errors.Is(err, git.ErrNoReleaseTag) {
			return nil, git.Range{}, "", clierrors.NoReleaseTag(err)
		}
		if err != nil {
			return nil, git.Range{}, "", clierrors.Wrap(err, clierrors.Runtime)
		}
		logger.Debugw("starting after latest tag", "tag", tag.Name, "commit", tag.Commit.String())
		rng.From = tag.Name
	}
	return repo, rng, rng.String(), nil
}

// readCommits reads the records selected by o, showing a spinner while the
// history is walked when stderr is a terminal.
func readCommits(cmd *cobra.Command, o sourceOptions, shortHashLength int) ([]changelog.Record, error) {
	source, rng, label, err := openSource(cmd, o, shortHashLength)
	if err != nil {
		return nil, err
	}
	return fetchCommits(cmd, source, rng, label)
}

// fetchCommits reads rng from source and maps its failures to CLI errors.
// label names the source in messages.
func fetchCommits(cmd *cobra.Command, source git.CommitSource, rng git.Range, label string) ([]changelog.Record, error) {
	var spin *progress.Spinner
	if cmd.ErrOrStderr() == os.Stderr {
		if caps := progress.DetectTerminalCapabilities(os.Stderr); caps.IsTTY {
			spin = progress.NewSpinner(os.Stderr, caps)
			spin.Start("Reading commits " + label)
		}
	}

	records, err := source.Commits(commandContext(cmd), rng)
	if spin != nil {
		spin.Stop(fmt.Sprintf("%d commits read from %s", len(records), label), err)
	}

	var revErr *git.RevisionError
	switch {
	case err == nil:
		logger.Debugw("commits read", "source", label, "count", len(records))
		return records, nil
	case errors.As(err, &revErr):
		return nil, clierrors.RevisionNotFound(revErr.Rev, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, clierrors.CommitSourceError(label, err)
	}
}

// commandContext returns the command's context, or Background when the
// command was invoked without Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
