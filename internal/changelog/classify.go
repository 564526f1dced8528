package changelog

import (
	"regexp"
	"strings"
)

// BreakingChangeMarker introduces a breaking-change note in a commit body.
const BreakingChangeMarker = "BREAKING CHANGE:"

// mergePrefix marks merge commits, which never appear in a changelog.
const mergePrefix = "Merge"

// headerPattern matches "type" or "type(scope)".
var headerPattern = regexp.MustCompile(`^(\w+)(?:\(([^()]*)\))?$`)

// defaultTypes is the conventional-commit token table.
var defaultTypes = map[string]CommitType{
	"feat":     TypeFeatures,
	"fix":      TypeBugFixes,
	"docs":     TypeDocumentation,
	"style":    TypeStyles,
	"refactor": TypeCodeRefactoring,
	"perf":     TypePerformance,
	"test":     TypeTests,
}

// DefaultTypes returns the built-in token → section table.
func DefaultTypes() map[string]SectionKind {
	types := make(map[string]SectionKind, len(defaultTypes))
	for token, t := range defaultTypes {
		types[token] = sectionForType(t)
	}
	return types
}

// Classifier turns records into section entries. The zero value is not
// usable; construct one with NewClassifier.
type Classifier struct {
	types        map[string]SectionKind
	ignoreScopes map[string]bool
}

// ClassifierOption customizes a Classifier.
type ClassifierOption func(*Classifier)

// WithTypes registers extra type tokens, e.g. "revert" → SectionReverts.
// Built-in tokens may be remapped as well.
func WithTypes(types map[string]SectionKind) ClassifierOption {
	return func(c *Classifier) {
		for token, kind := range types {
			c.types[token] = kind
		}
	}
}

// WithIgnoredScopes drops every commit written with one of the given scopes.
func WithIgnoredScopes(scopes ...string) ClassifierOption {
	return func(c *Classifier) {
		for _, s := range scopes {
			if s = strings.TrimSpace(s); s != "" {
				c.ignoreScopes[s] = true
			}
		}
	}
}

// NewClassifier builds a classifier over the default token table.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		types:        DefaultTypes(),
		ignoreScopes: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = NewClassifier()

// Classify classifies a record with the built-in token table.
func Classify(r Record) []Entry {
	return defaultClassifier.Classify(r)
}

// ClassifyAll classifies records with the built-in token table.
func ClassifyAll(records []Record) []Entry {
	return defaultClassifier.ClassifyAll(records)
}

// ClassifyAll classifies every record and concatenates the entries in input order.
func (c *Classifier) ClassifyAll(records []Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, c.Classify(r)...)
	}
	return entries
}

// Classify returns the entries a record contributes to the changelog:
// none for merge commits, one in the commit's own section, and one more in
// SectionBreakingChanges when the body carries a breaking-change note.
// Subjects that are not conventional commits land in SectionOther verbatim.
func (c *Classifier) Classify(r Record) []Entry {
	if strings.HasPrefix(r.Subject, mergePrefix) {
		return nil
	}

	commit := Commit{
		Type:      TypeOther,
		Subject:   r.Subject,
		LongHash:  r.LongHash,
		ShortHash: r.ShortHash,
		Author:    r.Author,
		Date:      FormatDate(r.Timestamp),
	}
	kind := SectionOther

	if token, scope, description, ok := splitSubject(r.Subject); ok {
		if k, known := c.types[token]; known {
			commit.Type = typeForSection(k)
			commit.Scope = scope
			commit.Subject = description
			kind = k
		}
	}

	if commit.HasScope() && c.ignoreScopes[commit.Scope] {
		return nil
	}

	entries := []Entry{{Commit: commit, Kind: kind}}

	if note, ok := breakingNote(r.Body); ok {
		entries[0].Commit.IsBreaking = true
		entries[0].Commit.BreakingSubject = note

		breaking := entries[0].Commit
		breaking.Scope = ""
		breaking.Subject = note
		entries = append(entries, Entry{Commit: breaking, Kind: SectionBreakingChanges})
	}

	return entries
}

// splitSubject parses "type(scope): description". ok is false when the
// subject has no ':' or the header is not a word token with an optional
// parenthesized scope.
func splitSubject(subject string) (token, scope, description string, ok bool) {
	header, rest, found := strings.Cut(subject, ":")
	if !found {
		return "", "", "", false
	}

	m := headerPattern.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return "", "", "", false
	}

	return m[1], strings.TrimSpace(m[2]), strings.TrimSpace(rest), true
}

// breakingNote extracts the text following BreakingChangeMarker, up to the
// end of its first non-empty line.
func breakingNote(body string) (string, bool) {
	_, after, found := strings.Cut(body, BreakingChangeMarker)
	if !found {
		return "", false
	}

	note := strings.TrimSpace(after)
	if line, _, multi := strings.Cut(note, "\n"); multi {
		note = strings.TrimSpace(line)
	}
	return note, true
}
