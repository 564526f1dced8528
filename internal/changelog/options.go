package changelog

import (
	"fmt"
	"strings"
	"time"
)

// Format selects the markup the changelog is rendered in.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPlain    Format = "plain"
	FormatSlack    Format = "slack"
)

// ValidFormats returns the supported format names.
func ValidFormats() []string {
	return []string{string(FormatMarkdown), string(FormatPlain), string(FormatSlack)}
}

// ParseFormat resolves a format name case-insensitively. An empty name
// selects Markdown.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatPlain:
		return FormatPlain, nil
	case FormatSlack:
		return FormatSlack, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: %s)", name, strings.Join(ValidFormats(), ", "))
	}
}

// RenderOptions controls what the renderer emits.
type RenderOptions struct {
	// Format selects the markup. Unknown values render as Markdown.
	Format Format
	// DisplayTitle emits the "<version> (<title>) (<date>)" header block.
	DisplayTitle bool
	// DisplayAuthor appends " - <author>" to every commit line.
	DisplayAuthor bool
	// DisplayLinks appends the hash link to every commit line.
	DisplayLinks bool

	// Title is placed inside the parentheses after the version.
	Title string
	// CommitURL prefixes "/<long hash>" in links, e.g.
	// "https://github.com/org/repo/commit".
	CommitURL string
	// SectionTitles overrides the default heading of individual sections.
	SectionTitles map[SectionKind]string
}

// DefaultRenderOptions returns Markdown output with the header and links
// shown and authors hidden.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Format:       FormatMarkdown,
		DisplayTitle: true,
		DisplayLinks: true,
	}
}

// sectionTitle returns the heading for kind, honoring overrides.
func (o RenderOptions) sectionTitle(kind SectionKind) string {
	if title, ok := o.SectionTitles[kind]; ok && title != "" {
		return title
	}
	return kind.Title()
}

// Clock supplies the release date printed in the header.
type Clock interface {
	Today() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Today returns the current local time.
func (SystemClock) Today() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

// Today returns the fixed instant.
func (c FixedClock) Today() time.Time {
	return time.Time(c)
}
