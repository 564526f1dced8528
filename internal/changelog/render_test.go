package changelog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var releaseDay = FixedClock(time.Date(2019, 5, 25, 14, 30, 0, 0, time.UTC))

func renderLines(t *testing.T, lines []string, opts RenderOptions) string {
	t.Helper()
	records := make([]Record, len(lines))
	for i, l := range lines {
		records[i] = ParseRecord(l)
	}
	return Render(ClassifyAll(records), "1.0.2", opts, releaseDay)
}

func withOptions(mutate func(*RenderOptions)) RenderOptions {
	opts := DefaultRenderOptions()
	mutate(&opts)
	return opts
}

func TestRender_Sections(t *testing.T) {
	t.Parallel()

	commits := []string{
		"docs: sub|body|long_hash|short_hash|Jiri Otahal|time",
		"fix: sub||long_hash|short_hash|Jiri Otahal|time",
	}

	tests := map[string]struct {
		opts RenderOptions
		want string
	}{
		"markdown": {
			opts: DefaultRenderOptions(),
			want: "# 1.0.2 () (2019-05-25)\n \n ### Bug fixes\n - sub ([short_hash](/long_hash))\n \n ### Documentation\n - sub ([short_hash](/long_hash))",
		},
		"plain": {
			opts: withOptions(func(o *RenderOptions) { o.Format = FormatPlain }),
			want: "1.0.2 () (2019-05-25)\n \n Bug fixes:\n - sub (/long_hash)\n \n Documentation:\n - sub (/long_hash)",
		},
		"slack": {
			opts: withOptions(func(o *RenderOptions) { o.Format = FormatSlack }),
			want: "*1.0.2 () (2019-05-25)*\n \n *Bug fixes*\n - sub (</long_hash|short_hash>)\n \n *Documentation*\n - sub (</long_hash|short_hash>)",
		},
		"markdown without links": {
			opts: withOptions(func(o *RenderOptions) { o.DisplayLinks = false }),
			want: "# 1.0.2 () (2019-05-25)\n \n ### Bug fixes\n - sub\n \n ### Documentation\n - sub",
		},
		"slack without links": {
			opts: withOptions(func(o *RenderOptions) {
				o.Format = FormatSlack
				o.DisplayLinks = false
			}),
			want: "*1.0.2 () (2019-05-25)*\n \n *Bug fixes*\n - sub\n \n *Documentation*\n - sub",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, renderLines(t, commits, tt.opts))
		})
	}
}

func TestRender_BreakingChange(t *testing.T) {
	t.Parallel()

	commits := []string{"fix: sub|BREAKING CHANGE: Test|long_hash|short_hash|Jiri Otahal|time"}

	tests := map[string]struct {
		opts RenderOptions
		want string
	}{
		"markdown": {
			opts: DefaultRenderOptions(),
			want: "# 1.0.2 () (2019-05-25)\n \n ### Bug fixes\n - sub ([short_hash](/long_hash))\n \n ### BREAKING CHANGES\n - Test ([short_hash](/long_hash))",
		},
		"slack": {
			opts: withOptions(func(o *RenderOptions) { o.Format = FormatSlack }),
			want: "*1.0.2 () (2019-05-25)*\n \n *Bug fixes*\n - sub (</long_hash|short_hash>)\n \n *BREAKING CHANGES*\n - Test (</long_hash|short_hash>)",
		},
		"markdown without title": {
			opts: withOptions(func(o *RenderOptions) { o.DisplayTitle = false }),
			want: "### Bug fixes\n - sub ([short_hash](/long_hash))\n \n ### BREAKING CHANGES\n - Test ([short_hash](/long_hash))",
		},
		"plain without title": {
			opts: withOptions(func(o *RenderOptions) {
				o.Format = FormatPlain
				o.DisplayTitle = false
			}),
			want: "Bug fixes:\n - sub (/long_hash)\n \n BREAKING CHANGES:\n - Test (/long_hash)",
		},
		"slack without title": {
			opts: withOptions(func(o *RenderOptions) {
				o.Format = FormatSlack
				o.DisplayTitle = false
			}),
			want: "*Bug fixes*\n - sub (</long_hash|short_hash>)\n \n *BREAKING CHANGES*\n - Test (</long_hash|short_hash>)",
		},
		"markdown with author": {
			opts: withOptions(func(o *RenderOptions) { o.DisplayAuthor = true }),
			want: "# 1.0.2 () (2019-05-25)\n \n ### Bug fixes\n - sub ([short_hash](/long_hash)) - Jiri Otahal\n \n ### BREAKING CHANGES\n - Test ([short_hash](/long_hash)) - Jiri Otahal",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, renderLines(t, commits, tt.opts))
		})
	}
}

func TestRender_Scopes(t *testing.T) {
	t.Parallel()

	commits := []string{"fix(test): sub||long_hash|short_hash|Jiri Otahal|time"}

	tests := map[string]struct {
		format Format
		want   string
	}{
		"markdown": {
			format: FormatMarkdown,
			want:   "# 1.0.2 () (2019-05-25)\n \n ### Bug fixes\n - **test:** sub ([short_hash](/long_hash))",
		},
		"plain": {
			format: FormatPlain,
			want:   "1.0.2 () (2019-05-25)\n \n Bug fixes:\n - test: sub (/long_hash)",
		},
		"slack": {
			format: FormatSlack,
			want:   "*1.0.2 () (2019-05-25)*\n \n *Bug fixes*\n - *test:* sub (</long_hash|short_hash>)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			opts := withOptions(func(o *RenderOptions) { o.Format = tt.format })
			assert.Equal(t, tt.want, renderLines(t, commits, opts))
		})
	}
}

func TestRender_SkipsMergeCommits(t *testing.T) {
	t.Parallel()

	commits := []string{
		"Merge ...||long_hash|short_hash|Jiri Otahal|time",
		"Custom Merge...||long_hash|short_hash|Jiri Otahal|time",
		"fix(test): sub||long_hash|short_hash|Jiri Otahal|time",
	}

	tests := map[string]struct {
		format Format
		want   string
	}{
		"markdown": {
			format: FormatMarkdown,
			want:   "# 1.0.2 () (2019-05-25)\n \n ### Bug fixes\n - **test:** sub ([short_hash](/long_hash))\n \n ### Other work\n - Custom Merge... ([short_hash](/long_hash))",
		},
		"slack": {
			format: FormatSlack,
			want:   "*1.0.2 () (2019-05-25)*\n \n *Bug fixes*\n - *test:* sub (</long_hash|short_hash>)\n \n *Other work*\n - Custom Merge... (</long_hash|short_hash>)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			opts := withOptions(func(o *RenderOptions) { o.Format = tt.format })
			assert.Equal(t, tt.want, renderLines(t, commits, opts))
		})
	}
}

func TestRender_SectionOrderIndependentOfInput(t *testing.T) {
	t.Parallel()

	commits := []string{
		"chore: tidy||h1|s1|A|0",
		"test: add cases||h2|s2|A|0",
		"refactor: split||h3|s3|A|0",
		"style: gofmt||h4|s4|A|0",
		"docs: readme||h5|s5|A|0",
		"perf: faster||h6|s6|A|0",
		"fix: crash|BREAKING CHANGE: api gone|h7|s7|A|0",
		"feat: thing||h8|s8|A|0",
	}

	opts := withOptions(func(o *RenderOptions) {
		o.DisplayTitle = false
		o.DisplayLinks = false
	})
	got := renderLines(t, commits, opts)

	want := strings.Join([]string{
		"### Features\n - thing",
		"### Bug fixes\n - crash",
		"### Performance improvements\n - faster",
		"### BREAKING CHANGES\n - api gone",
		"### Documentation\n - readme",
		"### Styles\n - gofmt",
		"### Code refactoring\n - split",
		"### Tests\n - add cases",
		"### Other work\n - chore: tidy",
	}, "\n \n ")
	assert.Equal(t, want, got)
}

func TestRender_DisplayTitleOnlyRemovesHeader(t *testing.T) {
	t.Parallel()

	commits := []string{
		"feat(api): add endpoint|BREAKING CHANGE: v1 removed|abc|a|Dev|1558742400",
		"fix: typo||def|d|Dev|1558742400",
	}

	for _, format := range []Format{FormatMarkdown, FormatPlain, FormatSlack} {
		with := renderLines(t, commits, withOptions(func(o *RenderOptions) { o.Format = format }))
		without := renderLines(t, commits, withOptions(func(o *RenderOptions) {
			o.Format = format
			o.DisplayTitle = false
		}))

		header, rest, found := strings.Cut(with, "\n \n ")
		require.True(t, found, "format %s", format)
		assert.Contains(t, header, "1.0.2 () (2019-05-25)")
		assert.Equal(t, rest, without, "format %s", format)
	}
}

func TestRender_DisplayLinksOnlyRemovesLink(t *testing.T) {
	t.Parallel()

	commits := []string{
		"feat(api): add endpoint||abc|a|Dev|0",
		"chore: deps||def|d|Dev|0",
	}

	tests := map[string]struct {
		format Format
		links  []string
	}{
		"markdown": {format: FormatMarkdown, links: []string{" ([a](/abc))", " ([d](/def))"}},
		"plain":    {format: FormatPlain, links: []string{" (/abc)", " (/def)"}},
		"slack":    {format: FormatSlack, links: []string{" (</abc|a>)", " (</def|d>)"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			with := renderLines(t, commits, withOptions(func(o *RenderOptions) {
				o.Format = tt.format
				o.DisplayAuthor = true
			}))
			without := renderLines(t, commits, withOptions(func(o *RenderOptions) {
				o.Format = tt.format
				o.DisplayAuthor = true
				o.DisplayLinks = false
			}))

			stripped := with
			for _, l := range tt.links {
				require.Contains(t, stripped, l)
				stripped = strings.Replace(stripped, l, "", 1)
			}
			assert.Equal(t, without, stripped)
		})
	}
}

func TestRender_DisplayAuthorAllFormats(t *testing.T) {
	t.Parallel()

	commits := []string{
		"feat: one||h1|s1|Ada Lovelace|0",
		"nonsense subject||h2|s2|Grace Hopper|0",
	}

	for _, format := range []Format{FormatMarkdown, FormatPlain, FormatSlack} {
		out := renderLines(t, commits, withOptions(func(o *RenderOptions) {
			o.Format = format
			o.DisplayAuthor = true
		}))

		var commitLines []string
		for _, line := range strings.Split(out, "\n") {
			if strings.HasPrefix(line, " - ") {
				commitLines = append(commitLines, line)
			}
		}
		require.Len(t, commitLines, 2, "format %s", format)
		assert.True(t, strings.HasSuffix(commitLines[0], " - Ada Lovelace"), "format %s: %q", format, commitLines[0])
		assert.True(t, strings.HasSuffix(commitLines[1], " - Grace Hopper"), "format %s: %q", format, commitLines[1])
	}
}

func TestRender_SharedHashDistinctAuthors(t *testing.T) {
	t.Parallel()

	commits := []string{
		"fix: same subject||h1|s1|Ada Lovelace|0",
		"fix: same subject||h1|s1|Grace Hopper|0",
	}
	out := renderLines(t, commits, withOptions(func(o *RenderOptions) {
		o.DisplayAuthor = true
	}))

	assert.Equal(t, 2, strings.Count(out, "same subject"))
	assert.Contains(t, out, "/h1)) - Ada Lovelace")
	assert.Contains(t, out, "/h1)) - Grace Hopper")
}

func TestRender_TitleAndCommitURL(t *testing.T) {
	t.Parallel()

	commits := []string{"feat(cli): flags||0123456789abcdef|0123456|Dev|0"}

	tests := map[string]struct {
		format Format
		want   string
	}{
		"markdown": {
			format: FormatMarkdown,
			want:   "# 2.0.0 (Aurora) (2019-05-25)\n \n ### Features\n - **cli:** flags ([0123456](https://example.com/c/0123456789abcdef))",
		},
		"plain": {
			format: FormatPlain,
			want:   "2.0.0 (Aurora) (2019-05-25)\n \n Features:\n - cli: flags (https://example.com/c/0123456789abcdef)",
		},
		"slack": {
			format: FormatSlack,
			want:   "*2.0.0 (Aurora) (2019-05-25)*\n \n *Features*\n - *cli:* flags (<https://example.com/c/0123456789abcdef|0123456>)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			opts := withOptions(func(o *RenderOptions) {
				o.Format = tt.format
				o.Title = "Aurora"
				o.CommitURL = "https://example.com/c"
			})
			entries := ClassifyAll([]Record{ParseRecord(commits[0])})
			assert.Equal(t, tt.want, Render(entries, "2.0.0", opts, releaseDay))
		})
	}
}

func TestRender_SectionTitleOverride(t *testing.T) {
	t.Parallel()

	opts := withOptions(func(o *RenderOptions) {
		o.DisplayTitle = false
		o.DisplayLinks = false
		o.SectionTitles = map[SectionKind]string{SectionBugFixes: "Fixes"}
	})
	got := renderLines(t, []string{"fix: a||h|s|A|0", "docs: b||h2|s2|A|0"}, opts)
	assert.Equal(t, "### Fixes\n - a\n \n ### Documentation\n - b", got)
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "# 1.0.2 () (2019-05-25)", Render(nil, "1.0.2", DefaultRenderOptions(), releaseDay))

	noTitle := withOptions(func(o *RenderOptions) { o.DisplayTitle = false })
	assert.Equal(t, "", Render(nil, "1.0.2", noTitle, releaseDay))
}

func TestRender_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	out := renderLines(t, []string{"feat: a||h|s|A|0"}, DefaultRenderOptions())
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestRender_Idempotent(t *testing.T) {
	t.Parallel()

	commits := []string{
		"feat: a|BREAKING CHANGE: b|h|s|A|0",
		"fix(x): c||h2|s2|B|0",
	}
	first := renderLines(t, commits, DefaultRenderOptions())
	second := renderLines(t, commits, DefaultRenderOptions())
	assert.Equal(t, first, second)
}

func TestRender_UnknownFormatFallsBackToMarkdown(t *testing.T) {
	t.Parallel()

	opts := withOptions(func(o *RenderOptions) { o.Format = Format("html") })
	out := renderLines(t, []string{"fix: sub||long_hash|short_hash|A|0"}, opts)
	assert.True(t, strings.HasPrefix(out, "# 1.0.2 () (2019-05-25)"))
}

func TestGroup(t *testing.T) {
	t.Parallel()

	a := Commit{Subject: "a", LongHash: "1"}
	b := Commit{Subject: "b", LongHash: "2"}
	c := Commit{Subject: "c", LongHash: "3"}

	tests := map[string]struct {
		entries []Entry
		want    []Section
	}{
		"empty input": {
			entries: nil,
			want:    nil,
		},
		"stable order within a kind": {
			entries: []Entry{
				{Commit: b, Kind: SectionFeatures},
				{Commit: a, Kind: SectionFeatures},
				{Commit: c, Kind: SectionFeatures},
			},
			want: []Section{
				{Kind: SectionFeatures, Title: "Features", Commits: []Commit{b, a, c}},
			},
		},
		"fixed kind order": {
			entries: []Entry{
				{Commit: a, Kind: SectionOther},
				{Commit: b, Kind: SectionReverts},
				{Commit: c, Kind: SectionFeatures},
			},
			want: []Section{
				{Kind: SectionFeatures, Title: "Features", Commits: []Commit{c}},
				{Kind: SectionReverts, Title: "Reverts", Commits: []Commit{b}},
				{Kind: SectionOther, Title: "Other work", Commits: []Commit{a}},
			},
		},
		"repeated entries all listed": {
			entries: []Entry{
				{Commit: a, Kind: SectionBugFixes},
				{Commit: a, Kind: SectionBugFixes},
				{Commit: a, Kind: SectionBreakingChanges},
			},
			want: []Section{
				{Kind: SectionBugFixes, Title: "Bug fixes", Commits: []Commit{a, a}},
				{Kind: SectionBreakingChanges, Title: "BREAKING CHANGES", Commits: []Commit{a}},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Group(tt.entries))
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Format
		wantErr bool
	}{
		"empty defaults to markdown": {input: "", want: FormatMarkdown},
		"markdown":                   {input: "markdown", want: FormatMarkdown},
		"plain uppercase":            {input: "PLAIN", want: FormatPlain},
		"slack padded":               {input: " slack ", want: FormatSlack},
		"unknown":                    {input: "html", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
