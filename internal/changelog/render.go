package changelog

import (
	"fmt"
	"io"
	"strings"
)

const (
	// blockSeparator sits between the header and each section. The blank
	// line holds a single space, and downstream consumers match on it.
	blockSeparator = "\n \n "
	// lineSeparator sits between a section title and its commit lines.
	lineSeparator = "\n "
)

// Group collects entries into sections in display order. Commits keep
// their input order within a section and kinds without commits produce no
// section. Every entry is listed: two records sharing a hash are still two
// commits.
func Group(entries []Entry) []Section {
	byKind := make(map[SectionKind][]Commit)
	for _, e := range entries {
		byKind[e.Kind] = append(byKind[e.Kind], e.Commit)
	}

	var sections []Section
	for _, kind := range SectionKinds() {
		commits := byKind[kind]
		if len(commits) == 0 {
			continue
		}
		sections = append(sections, Section{Kind: kind, Title: kind.Title(), Commits: commits})
	}
	return sections
}

// Build groups entries into a Changelog for the given version and date.
func Build(entries []Entry, version, date string) *Changelog {
	return &Changelog{
		Version:  version,
		Date:     date,
		Sections: Group(entries),
	}
}

// Render groups entries and renders them for version, dating the header
// with clock.
func Render(entries []Entry, version string, opts RenderOptions, clock Clock) string {
	if clock == nil {
		clock = SystemClock{}
	}
	c := Build(entries, version, clock.Today().Format(dateLayout))
	c.Title = opts.Title
	return RenderString(c, opts)
}

// RenderString renders a grouped changelog. The result has no trailing newline.
func RenderString(c *Changelog, opts RenderOptions) string {
	var b strings.Builder
	// strings.Builder never fails to write.
	_ = Write(c, &b, opts)
	return b.String()
}

// Write renders a grouped changelog to w.
//
// The output is idempotent: the same changelog and options always produce
// identical bytes.
func Write(c *Changelog, w io.Writer, opts RenderOptions) error {
	m := markupFor(opts.Format)

	var blocks []string
	if opts.DisplayTitle {
		blocks = append(blocks, formatHeader(c, opts, m))
	}
	for _, s := range c.Sections {
		if len(s.Commits) == 0 {
			continue
		}
		blocks = append(blocks, formatSection(s, opts, m))
	}

	if _, err := io.WriteString(w, strings.Join(blocks, blockSeparator)); err != nil {
		return fmt.Errorf("writing changelog: %w", err)
	}
	return nil
}

// formatHeader renders "<version> (<title>) (<date>)" in the format's header markup.
func formatHeader(c *Changelog, opts RenderOptions, m markup) string {
	title := c.Title
	if title == "" {
		title = opts.Title
	}
	return fmt.Sprintf(m.header, fmt.Sprintf("%s (%s) (%s)", c.Version, title, c.Date))
}

// formatSection renders a section title followed by one line per commit.
func formatSection(s Section, opts RenderOptions, m markup) string {
	lines := make([]string, 0, len(s.Commits)+1)
	lines = append(lines, fmt.Sprintf(m.section, opts.sectionTitle(s.Kind)))
	for _, c := range s.Commits {
		lines = append(lines, formatCommit(c, opts, m))
	}
	return strings.Join(lines, lineSeparator)
}

// formatCommit renders "- [scope: ]subject[ (link)][ - author]".
func formatCommit(c Commit, opts RenderOptions, m markup) string {
	var b strings.Builder
	b.WriteString("- ")
	if c.HasScope() {
		fmt.Fprintf(&b, m.scope, c.Scope)
	}
	b.WriteString(c.Subject)
	if opts.DisplayLinks {
		b.WriteString(" ")
		b.WriteString(m.link(opts.CommitURL, c.LongHash, c.ShortHash))
	}
	if opts.DisplayAuthor {
		b.WriteString(" - ")
		b.WriteString(c.Author)
	}
	return b.String()
}
