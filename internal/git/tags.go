package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	version "github.com/hashicorp/go-version"
)

// ErrNoReleaseTag is returned when no tag parses as a semantic version.
var ErrNoReleaseTag = errors.New("no semantic version tag found")

// TagInfo describes a release tag.
type TagInfo struct {
	Name    string
	Version *version.Version
	// Commit is the hash of the commit the tag points at; annotated tags
	// are peeled.
	Commit plumbing.Hash
}

// LatestTag returns the tag with the highest semantic version, e.g. v1.10.0
// over v1.9.3. Tags that do not parse as versions ("nightly") are ignored.
// Prereleases take part in the comparison; pass includePrerelease=false to
// skip them.
func (r *Repository) LatestTag(includePrerelease bool) (*TagInfo, error) {
	refs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var latest *TagInfo
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		v, err := version.NewVersion(name)
		if err != nil {
			logDebug("[git] LatestTag: skipping non-version tag %s", name)
			return nil
		}
		if v.Prerelease() != "" && !includePrerelease {
			return nil
		}
		if latest != nil && !v.GreaterThan(latest.Version) {
			return nil
		}

		commit, err := r.peel(ref)
		if err != nil {
			return fmt.Errorf("resolving tag %s: %w", name, err)
		}
		latest = &TagInfo{Name: name, Version: v, Commit: commit}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if latest == nil {
		return nil, ErrNoReleaseTag
	}

	logDebug("[git] LatestTag: %s (%s)", latest.Name, latest.Commit)
	return latest, nil
}

// peel returns the commit hash a tag reference points at.
func (r *Repository) peel(ref *plumbing.Reference) (plumbing.Hash, error) {
	tag, err := r.repo.TagObject(ref.Hash())
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		// lightweight tag
		return ref.Hash(), nil
	}
	if err != nil {
		return plumbing.ZeroHash, err
	}

	commit, err := tag.Commit()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return commit.Hash, nil
}
