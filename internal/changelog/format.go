package changelog

import "fmt"

// markup holds the per-format decorations consumed by the renderer.
// Every format shares one rendering algorithm; only these strings differ.
type markup struct {
	header  string // wraps the version line
	section string // wraps a section title
	scope   string // wraps a commit scope, including the trailing space
	link    func(commitURL, long, short string) string
}

var markups = map[Format]markup{
	FormatMarkdown: {
		header:  "# %s",
		section: "### %s",
		scope:   "**%s:** ",
		link: func(commitURL, long, short string) string {
			return fmt.Sprintf("([%s](%s/%s))", short, commitURL, long)
		},
	},
	FormatPlain: {
		header:  "%s",
		section: "%s:",
		scope:   "%s: ",
		link: func(commitURL, long, _ string) string {
			return fmt.Sprintf("(%s/%s)", commitURL, long)
		},
	},
	FormatSlack: {
		header:  "*%s*",
		section: "*%s*",
		scope:   "*%s:* ",
		link: func(commitURL, long, short string) string {
			return fmt.Sprintf("(<%s/%s|%s>)", commitURL, long, short)
		},
	},
}

// markupFor returns the decorations for f, falling back to Markdown.
func markupFor(f Format) markup {
	if m, ok := markups[f]; ok {
		return m
	}
	return markups[FormatMarkdown]
}
