package util

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ariel-frischer/convlog/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	color.NoColor = true
}

func TestPrintPlainVersion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPlainVersion(&buf)

	out := buf.String()
	assert.Contains(t, out, "convlog "+version.Version+"\n")
	assert.Contains(t, out, "commit: "+version.Commit)
	assert.Contains(t, out, "go: "+runtime.Version())
}

func TestPrintPrettyVersion_BoxAligned(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printPrettyVersion(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(versionFields())+2)

	width := utf8.RuneCountInString(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), SourceURL)
}

func TestTruncateCommit(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		commit string
		want   string
	}{
		"long hash":  {commit: "0123456789abcdef", want: "01234567"},
		"short hash": {commit: "abc", want: "abc"},
		"unknown":    {commit: "unknown", want: "unknown"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, truncateCommit(tt.commit))
		})
	}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "convlog"}
	root.AddGroup(&cobra.Group{ID: "info", Title: "Info"})
	Register(root)

	found, _, err := root.Find([]string{"v"})
	require.NoError(t, err)
	assert.Equal(t, "version", found.Name())
	assert.Equal(t, "info", found.GroupID)

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version", "--plain"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "platform: ")
}
