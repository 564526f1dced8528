package changelog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(sampleChangelog(), &buf))

	out := buf.String()
	assert.Contains(t, out, "version: 1.2.0")
	assert.Contains(t, out, "2019-05-25")
	assert.Contains(t, out, "kind: bug_fixes")
	assert.Contains(t, out, "title: BREAKING CHANGES")
	assert.Contains(t, out, "scope: api")
	assert.Contains(t, out, "breaking_subject: v1 gone")
	assert.NotContains(t, out, "Merge branch")

	loaded, err := LoadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleChangelog().Kinds(), loaded.Kinds())
}

func TestLoadYAML_UnknownSection(t *testing.T) {
	t.Parallel()

	_, err := LoadYAML(bytes.NewBufferString("version: 1.0.0\nsections:\n  - kind: chores\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing changelog YAML")
}
