package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key        string
		value      string
		want       interface{}
		errContain string
	}{
		"enum":            {key: "format", value: "Plain", want: "plain"},
		"enum invalid":    {key: "format", value: "html", errContain: "valid options: markdown, plain, slack"},
		"bool":            {key: "display_links", value: "FALSE", want: false},
		"bool invalid":    {key: "display_links", value: "no", errContain: "invalid boolean"},
		"int":             {key: "short_hash_length", value: "40", want: 40},
		"int below range": {key: "short_hash_length", value: "3", errContain: "out of range: 3 (expected 4-40)"},
		"string":          {key: "title", value: "Spring release", want: "Spring release"},
		"map":             {key: "types", value: "x", errContain: "types is a map"},
		"unknown":         {key: "nope", value: "x", errContain: "unknown configuration key: nope"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateValue(tt.key, tt.value)
			if tt.errContain != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContain)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Parsed)
			assert.Equal(t, tt.value, got.Raw)
		})
	}
}

func TestKeyNames(t *testing.T) {
	t.Parallel()

	names := KeyNames()
	assert.Len(t, names, len(KnownKeys))
	assert.Equal(t, "commit_url", names[0])
	assert.IsIncreasing(t, names)

	for _, name := range names {
		schema := KnownKeys[name]
		assert.Equal(t, name, schema.Path)
		assert.NotEmpty(t, schema.Description)
		assert.NotEqual(t, "unknown", schema.Type.String())
	}
	assert.False(t, KnownKeys["types"].Settable())
	assert.True(t, KnownKeys["format"].Settable())
}
