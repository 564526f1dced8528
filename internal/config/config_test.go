// Package config tests layered configuration loading for convlog.
// Related: internal/config/config.go, internal/config/validate.go
// Tags: config, koanf, yaml, env, validation

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/convlog/internal/changelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPaths returns project and user config paths inside a temp dir; the
// files are not created.
func testPaths(t *testing.T) (project, user string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "project", "config.yml"), filepath.Join(dir, "user", "config.yml")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func load(t *testing.T, project, user string) (*Configuration, string, error) {
	t.Helper()
	var warnings bytes.Buffer
	cfg, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: project,
		UserConfigPath:    user,
		WarningWriter:     &warnings,
	})
	return cfg, warnings.String(), err
}

func TestLoad_Defaults(t *testing.T) {
	project, user := testPaths(t)

	cfg, warnings, err := load(t, project, user)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "markdown", cfg.Format)
	assert.True(t, cfg.DisplayTitle)
	assert.False(t, cfg.DisplayAuthor)
	assert.True(t, cfg.DisplayLinks)
	assert.Empty(t, cfg.Title)
	assert.Empty(t, cfg.CommitURL)
	assert.Equal(t, 7, cfg.ShortHashLength)
	assert.Empty(t, cfg.IgnoreScopes)
	assert.Empty(t, cfg.Types)
	assert.Empty(t, cfg.SectionTitles)
}

func TestLoad_Layering(t *testing.T) {
	project, user := testPaths(t)
	writeFile(t, user, "format: plain\ntitle: Nightly\nignore_scopes: [deps]\n")
	writeFile(t, project, "format: SLACK\ndisplay_links: false\ntypes:\n  revert: reverts\n")

	cfg, _, err := load(t, project, user)
	require.NoError(t, err)

	assert.Equal(t, "slack", cfg.Format, "project overrides user and is normalized")
	assert.Equal(t, "Nightly", cfg.Title, "user value survives when project is silent")
	assert.False(t, cfg.DisplayLinks)
	assert.Equal(t, []string{"deps"}, cfg.IgnoreScopes)
	assert.Equal(t, map[string]string{"revert": "reverts"}, cfg.Types)
}

func TestLoad_EnvironmentOverridesFiles(t *testing.T) {
	project, user := testPaths(t)
	writeFile(t, project, "format: slack\ndisplay_author: false\n")

	t.Setenv("CONVLOG_FORMAT", "plain")
	t.Setenv("CONVLOG_DISPLAY_AUTHOR", "true")
	t.Setenv("CONVLOG_SHORT_HASH_LENGTH", "12")

	cfg, _, err := load(t, project, user)
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Format)
	assert.True(t, cfg.DisplayAuthor)
	assert.Equal(t, 12, cfg.ShortHashLength)
}

func TestLoad_LegacyJSON(t *testing.T) {
	project, user := testPaths(t)
	legacy := filepath.Join(filepath.Dir(project), "config.json")
	writeFile(t, legacy, `{"format": "plain", "display_author": true}`)

	cfg, warnings, err := load(t, project, user)
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Format)
	assert.True(t, cfg.DisplayAuthor)
	assert.Contains(t, warnings, "Using deprecated JSON config at "+legacy)
	assert.Contains(t, warnings, "convlog config migrate")

	writeFile(t, project, "format: slack\n")
	cfg, warnings, err = load(t, project, user)
	require.NoError(t, err)
	assert.Equal(t, "slack", cfg.Format, "YAML wins over legacy JSON")
	assert.False(t, cfg.DisplayAuthor)
	assert.Contains(t, warnings, "Legacy JSON config found")
}

func TestLoad_SkipWarnings(t *testing.T) {
	project, user := testPaths(t)
	writeFile(t, filepath.Join(filepath.Dir(project), "config.json"), `{"format": "plain"}`)

	var warnings bytes.Buffer
	_, err := LoadWithOptions(LoadOptions{
		ProjectConfigPath: project,
		UserConfigPath:    user,
		WarningWriter:     &warnings,
		SkipWarnings:      true,
	})
	require.NoError(t, err)
	assert.Empty(t, warnings.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		content     string
		errContains []string
	}{
		"bad yaml": {
			content:     "format: markdown\n  title: [\n",
			errContains: []string{"validating YAML syntax for project config"},
		},
		"unknown format": {
			content:     "format: html\n",
			errContains: []string{"field 'format'", "must be one of: markdown, plain, slack"},
		},
		"short hash too short": {
			content:     "short_hash_length: 2\n",
			errContains: []string{"field 'short_hash_length'", "must be at least 4"},
		},
		"short hash too long": {
			content:     "short_hash_length: 41\n",
			errContains: []string{"must be at most 40"},
		},
		"bad commit url": {
			content:     "commit_url: not a url\n",
			errContains: []string{"field 'commit_url'", "must be a valid URL"},
		},
		"unknown section in types": {
			content:     "types:\n  chore: chores\n",
			errContains: []string{"field 'types.chore'", `unknown section "chores"`},
		},
		"bad type token": {
			content:     "types:\n  \"re vert\": reverts\n",
			errContains: []string{`invalid type token "re vert"`},
		},
		"unknown section title": {
			content:     "section_titles:\n  chores: Chores\n",
			errContains: []string{"field 'section_titles'", `unknown section "chores"`},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			project, user := testPaths(t)
			writeFile(t, project, tt.content)

			_, _, err := load(t, project, user)
			require.Error(t, err)
			for _, want := range tt.errContains {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoad_CommitURLTrailingSlash(t *testing.T) {
	project, user := testPaths(t)
	writeFile(t, project, "commit_url: https://github.com/org/repo/commit/\n")

	cfg, _, err := load(t, project, user)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/org/repo/commit", cfg.CommitURL)
}

func TestConfiguration_RenderOptions(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{
		Format:        "slack",
		DisplayTitle:  false,
		DisplayAuthor: true,
		DisplayLinks:  true,
		Title:         "Spring",
		CommitURL:     "https://example.com/commit",
		SectionTitles: map[string]string{"bug_fixes": "Fixes"},
	}

	opts, err := cfg.RenderOptions()
	require.NoError(t, err)
	assert.Equal(t, changelog.RenderOptions{
		Format:        changelog.FormatSlack,
		DisplayAuthor: true,
		DisplayLinks:  true,
		Title:         "Spring",
		CommitURL:     "https://example.com/commit",
		SectionTitles: map[changelog.SectionKind]string{changelog.SectionBugFixes: "Fixes"},
	}, opts)

	cfg.SectionTitles = map[string]string{"chores": "Chores"}
	_, err = cfg.RenderOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section_titles")
}

func TestConfiguration_Classifier(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{
		Types:        map[string]string{"revert": "reverts", "chore": "other"},
		IgnoreScopes: []string{"deps"},
	}
	classifier, err := cfg.Classifier()
	require.NoError(t, err)

	entries := classifier.ClassifyAll([]changelog.Record{
		changelog.ParseRecord("revert: undo the thing||h1|s1|Dev|1558742400"),
		changelog.ParseRecord("chore(deps): bump go-git||h2|s2|Dev|1558742400"),
		changelog.ParseRecord("feat: keep||h3|s3|Dev|1558742400"),
	})
	require.Len(t, entries, 2)
	assert.Equal(t, changelog.SectionReverts, entries[0].Kind)
	assert.Equal(t, "undo the thing", entries[0].Commit.Subject)
	assert.Equal(t, changelog.SectionFeatures, entries[1].Kind)

	cfg.Types = map[string]string{"chore": "chores"}
	_, err = cfg.Classifier()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "types.chore")
}

func TestGetDefaults_MatchSchema(t *testing.T) {
	t.Parallel()

	defaults := GetDefaults()
	assert.Len(t, defaults, len(KnownKeys))
	for key := range defaults {
		_, err := GetKeySchema(key)
		assert.NoError(t, err, "default %q has no schema entry", key)
	}
	assert.Contains(t, GetDefaultConfigTemplate(), "format: markdown")
}
