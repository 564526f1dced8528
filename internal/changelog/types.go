package changelog

import "fmt"

// Record is a single commit as delivered by a commit source.
// Records are never modified after they are received.
type Record struct {
	Subject   string
	Body      string
	LongHash  string
	ShortHash string
	Author    string
	Timestamp string
}

// CommitType is the conventional-commit category of a commit.
type CommitType int

const (
	TypeOther CommitType = iota
	TypeFeatures
	TypeBugFixes
	TypeDocumentation
	TypeStyles
	TypeCodeRefactoring
	TypePerformance
	TypeTests
	TypeReverts
)

// String returns the conventional-commit token for the type.
func (t CommitType) String() string {
	switch t {
	case TypeFeatures:
		return "feat"
	case TypeBugFixes:
		return "fix"
	case TypeDocumentation:
		return "docs"
	case TypeStyles:
		return "style"
	case TypeCodeRefactoring:
		return "refactor"
	case TypePerformance:
		return "perf"
	case TypeTests:
		return "test"
	case TypeReverts:
		return "revert"
	default:
		return "other"
	}
}

// SectionKind identifies a changelog section. The numeric order of the
// constants is the display order.
type SectionKind int

const (
	SectionFeatures SectionKind = iota
	SectionBugFixes
	SectionPerformance
	SectionReverts
	SectionBreakingChanges
	SectionDocumentation
	SectionStyles
	SectionCodeRefactoring
	SectionTests
	SectionOther
)

var sectionNames = map[SectionKind]string{
	SectionFeatures:        "features",
	SectionBugFixes:        "bug_fixes",
	SectionPerformance:     "performance",
	SectionReverts:         "reverts",
	SectionBreakingChanges: "breaking_changes",
	SectionDocumentation:   "documentation",
	SectionStyles:          "styles",
	SectionCodeRefactoring: "code_refactoring",
	SectionTests:           "tests",
	SectionOther:           "other",
}

var defaultSectionTitles = map[SectionKind]string{
	SectionFeatures:        "Features",
	SectionBugFixes:        "Bug fixes",
	SectionPerformance:     "Performance improvements",
	SectionReverts:         "Reverts",
	SectionBreakingChanges: "BREAKING CHANGES",
	SectionDocumentation:   "Documentation",
	SectionStyles:          "Styles",
	SectionCodeRefactoring: "Code refactoring",
	SectionTests:           "Tests",
	SectionOther:           "Other work",
}

// SectionKinds returns every section kind in display order.
func SectionKinds() []SectionKind {
	return []SectionKind{
		SectionFeatures,
		SectionBugFixes,
		SectionPerformance,
		SectionReverts,
		SectionBreakingChanges,
		SectionDocumentation,
		SectionStyles,
		SectionCodeRefactoring,
		SectionTests,
		SectionOther,
	}
}

// String returns the configuration name of the section (e.g. "bug_fixes").
func (k SectionKind) String() string {
	if name, ok := sectionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("section(%d)", int(k))
}

// Title returns the default human-readable heading for the section.
func (k SectionKind) Title() string {
	return defaultSectionTitles[k]
}

// MarshalText encodes the kind by its configuration name.
func (k SectionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseSectionKind resolves a configuration name such as "bug_fixes".
func ParseSectionKind(name string) (SectionKind, error) {
	for kind, n := range sectionNames {
		if n == name {
			return kind, nil
		}
	}
	return SectionOther, fmt.Errorf("unknown section %q (valid: %v)", name, SectionNames())
}

// SectionNames returns the configuration names of all sections in display order.
func SectionNames() []string {
	kinds := SectionKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

// sectionForType maps a commit type to the section it is listed under.
func sectionForType(t CommitType) SectionKind {
	switch t {
	case TypeFeatures:
		return SectionFeatures
	case TypeBugFixes:
		return SectionBugFixes
	case TypeDocumentation:
		return SectionDocumentation
	case TypeStyles:
		return SectionStyles
	case TypeCodeRefactoring:
		return SectionCodeRefactoring
	case TypePerformance:
		return SectionPerformance
	case TypeTests:
		return SectionTests
	case TypeReverts:
		return SectionReverts
	default:
		return SectionOther
	}
}

// typeForSection is the inverse of sectionForType. Breaking changes are not
// a commit type and map to TypeOther.
func typeForSection(k SectionKind) CommitType {
	switch k {
	case SectionFeatures:
		return TypeFeatures
	case SectionBugFixes:
		return TypeBugFixes
	case SectionPerformance:
		return TypePerformance
	case SectionReverts:
		return TypeReverts
	case SectionDocumentation:
		return TypeDocumentation
	case SectionStyles:
		return TypeStyles
	case SectionCodeRefactoring:
		return TypeCodeRefactoring
	case SectionTests:
		return TypeTests
	default:
		return TypeOther
	}
}

// Commit is a classified commit.
type Commit struct {
	Type            CommitType `yaml:"-"`
	Scope           string     `yaml:"scope,omitempty"`
	Subject         string     `yaml:"subject"`
	IsBreaking      bool       `yaml:"breaking,omitempty"`
	BreakingSubject string     `yaml:"breaking_subject,omitempty"`
	LongHash        string     `yaml:"hash"`
	ShortHash       string     `yaml:"short_hash"`
	Author          string     `yaml:"author"`
	Date            string     `yaml:"date"`
}

// HasScope reports whether the commit was written as type(scope): subject.
func (c Commit) HasScope() bool {
	return c.Scope != ""
}

// Entry pairs a commit with the section it is listed under.
type Entry struct {
	Commit Commit
	Kind   SectionKind
}

// Section is one rendered block of the changelog.
type Section struct {
	Kind    SectionKind `yaml:"kind"`
	Title   string      `yaml:"title"`
	Commits []Commit    `yaml:"commits"`
}

// Changelog is the grouped form of a release: a version header plus its
// non-empty sections in display order.
type Changelog struct {
	Version  string    `yaml:"version"`
	Title    string    `yaml:"title,omitempty"`
	Date     string    `yaml:"date"`
	Sections []Section `yaml:"sections"`
}
