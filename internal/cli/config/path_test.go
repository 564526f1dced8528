package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	t.Parallel()

	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := map[string]struct {
		input string
		want  string
	}{
		"empty":    {input: "", want: cwd},
		"dot":      {input: ".", want: cwd},
		"relative": {input: "sub/dir", want: filepath.Join(cwd, "sub", "dir")},
		"absolute": {input: "/tmp/project", want: "/tmp/project"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ResolvePath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandTilde(t *testing.T) {
	t.Parallel()

	got, err := expandTilde("~/projects")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "projects", filepath.Base(got))

	got, err = expandTilde("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", got)
}

func TestEnsureDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, EnsureDirectory(nested))
	assert.DirExists(t, nested)
	require.NoError(t, EnsureDirectory(nested))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	err := EnsureDirectory(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}
