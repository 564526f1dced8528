// Package git provides the commit sources convlog renders changelogs from.
// Repository reads history with the go-git library, so no git CLI is needed;
// FileSource reads pre-formatted pipe-delimited records from a file or stdin.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ariel-frischer/convlog/internal/changelog"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// DefaultShortHashLength matches git's default abbreviation.
const DefaultShortHashLength = 7

// DefaultTo is the revision history is read up to when Range.To is empty.
const DefaultTo = "HEAD"

// Range selects the commits between two revisions, like "from..to":
// everything reachable from To that is not reachable from From.
// An empty From selects the whole history of To.
type Range struct {
	From string
	To   string
}

// String returns the range in git's two-dot notation.
func (r Range) String() string {
	to := r.To
	if to == "" {
		to = DefaultTo
	}
	if r.From == "" {
		return to
	}
	return r.From + ".." + to
}

// CommitSource produces commit records, newest first.
type CommitSource interface {
	Commits(ctx context.Context, rng Range) ([]changelog.Record, error)
}

// ErrNotRepository is returned when no repository is found at or above a path.
var ErrNotRepository = errors.New("not a git repository")

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("opening repository at %s: %w", path, ErrNotRepository)
	}
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// IsGitRepository checks if path (or the working directory when empty) is
// within a git repository.
func IsGitRepository(path string) bool {
	_, err := openRepo(path)
	result := err == nil
	logDebug("[git] IsGitRepository: %v", result)
	return result
}

// Repository is a CommitSource backed by a local git repository.
type Repository struct {
	repo *git.Repository
	// ShortHashLength is the length of Record.ShortHash.
	ShortHashLength int
}

// Open opens the repository containing path. An empty path means the
// current working directory.
func Open(path string) (*Repository, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}
	return &Repository{repo: repo, ShortHashLength: DefaultShortHashLength}, nil
}

// Root returns the absolute path of the repository's working tree.
func (r *Repository) Root() (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	root := worktree.Filesystem.Root()
	logDebug("[git] Root: %s", root)
	return root, nil
}

// RevisionError reports a revision that does not name a commit.
type RevisionError struct {
	Rev string
	Err error
}

func (e *RevisionError) Error() string {
	return fmt.Sprintf("resolving revision %q: %v", e.Rev, e.Err)
}

func (e *RevisionError) Unwrap() error {
	return e.Err
}

// resolve turns a revision (hash, tag, branch, HEAD~2, ...) into a commit hash.
func (r *Repository) resolve(rev string) (plumbing.Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, &RevisionError{Rev: rev, Err: err}
	}
	return *h, nil
}

// Commits returns the records in rng, newest first by committer time.
// Merge commits are included; classification drops them.
func (r *Repository) Commits(ctx context.Context, rng Range) ([]changelog.Record, error) {
	to := rng.To
	if to == "" {
		to = DefaultTo
	}

	toHash, err := r.resolve(to)
	if err != nil {
		return nil, err
	}

	excluded := make(map[plumbing.Hash]bool)
	if rng.From != "" {
		fromHash, err := r.resolve(rng.From)
		if err != nil {
			return nil, err
		}
		if err := r.walk(ctx, fromHash, func(c *object.Commit) error {
			excluded[c.Hash] = true
			return nil
		}); err != nil {
			return nil, fmt.Errorf("reading history of %s: %w", rng.From, err)
		}
		logDebug("[git] Commits: %d commits reachable from %s excluded", len(excluded), rng.From)
	}

	var records []changelog.Record
	err = r.walk(ctx, toHash, func(c *object.Commit) error {
		if excluded[c.Hash] {
			return nil
		}
		records = append(records, r.record(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading history %s: %w", rng, err)
	}

	logDebug("[git] Commits: %d commits in %s", len(records), rng)
	return records, nil
}

// walk visits every commit reachable from start, stopping early when ctx is done.
func (r *Repository) walk(ctx context.Context, start plumbing.Hash, visit func(*object.Commit) error) error {
	iter, err := r.repo.Log(&git.LogOptions{From: start, Order: git.LogOrderCommitterTime})
	if err != nil {
		return err
	}
	defer iter.Close()

	var ctxErr error
	err = iter.ForEach(func(c *object.Commit) error {
		if ctxErr = ctx.Err(); ctxErr != nil {
			return storer.ErrStop
		}
		return visit(c)
	})
	if ctxErr != nil {
		return ctxErr
	}
	return err
}

// record converts a commit into a changelog record.
func (r *Repository) record(c *object.Commit) changelog.Record {
	subject, body, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")

	long := c.Hash.String()
	short := long
	if n := r.ShortHashLength; n > 0 && n < len(long) {
		short = long[:n]
	}

	return changelog.Record{
		Subject:   strings.TrimSpace(subject),
		Body:      strings.TrimSpace(body),
		LongHash:  long,
		ShortHash: short,
		Author:    c.Author.Name,
		Timestamp: strconv.FormatInt(c.Author.When.Unix(), 10),
	}
}
