package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# convlog configuration
# See 'convlog config -h' for commands, 'convlog config keys' for all options

# Rendering
format: markdown                      # markdown | plain | slack
display_title: true                   # Emit the "<version> (<title>) (<date>)" header
display_author: false                 # Append " - <author>" to every commit line
display_links: true                   # Append the commit hash link to every line
title: ""                             # Text inside the parentheses after the version
commit_url: ""                        # Link prefix, e.g. https://github.com/org/repo/commit

# History
short_hash_length: 7                  # Abbreviated hash length (4-40)

# Classification
ignore_scopes: []                     # Drop commits with these scopes, e.g. [deps, ci]
types: {}                             # Extra type tokens, e.g. {revert: reverts, chore: other}
section_titles: {}                    # Heading overrides, e.g. {bug_fixes: Fixes}
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"format":         "markdown",
		"display_title":  true,
		"display_author": false,
		"display_links":  true,
		"title":          "",
		"commit_url":     "",
		// short_hash_length: git's default abbreviation.
		"short_hash_length": 7,
		"ignore_scopes":     []string{},
		// types: token -> section name. The seven conventional tokens are
		// always mapped; entries here add to or remap them.
		"types":          map[string]interface{}{},
		"section_titles": map[string]interface{}{},
	}
}
