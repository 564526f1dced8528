package changelog

import (
	"fmt"
	"strings"
)

// SectionNotFoundError is returned when a changelog has no commits of a kind.
type SectionNotFoundError struct {
	Kind              SectionKind
	AvailableSections []string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found (available: %s)",
		e.Kind.String(), strings.Join(e.AvailableSections, ", "))
}

// Section returns the section of the given kind.
func (c *Changelog) Section(kind SectionKind) (*Section, error) {
	for i := range c.Sections {
		if c.Sections[i].Kind == kind {
			return &c.Sections[i], nil
		}
	}
	return nil, &SectionNotFoundError{Kind: kind, AvailableSections: c.SectionNames()}
}

// Kinds returns the kinds present in the changelog, in display order.
func (c *Changelog) Kinds() []SectionKind {
	kinds := make([]SectionKind, len(c.Sections))
	for i, s := range c.Sections {
		kinds[i] = s.Kind
	}
	return kinds
}

// SectionNames returns the configuration names of the present sections.
func (c *Changelog) SectionNames() []string {
	names := make([]string, len(c.Sections))
	for i, s := range c.Sections {
		names[i] = s.Kind.String()
	}
	return names
}

// CommitCount returns the number of rendered commit lines across all sections.
func (c *Changelog) CommitCount() int {
	count := 0
	for _, s := range c.Sections {
		count += len(s.Commits)
	}
	return count
}

// IsEmpty reports whether no section has any commits.
func (c *Changelog) IsEmpty() bool {
	return c.CommitCount() == 0
}

// HasBreakingChanges reports whether the release carries breaking changes.
func (c *Changelog) HasBreakingChanges() bool {
	_, err := c.Section(SectionBreakingChanges)
	return err == nil
}

// Retitle replaces section titles with the given overrides.
func (c *Changelog) Retitle(titles map[SectionKind]string) {
	opts := RenderOptions{SectionTitles: titles}
	for i := range c.Sections {
		c.Sections[i].Title = opts.sectionTitle(c.Sections[i].Kind)
	}
}
