package changelog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML encodes the grouped changelog as YAML.
func WriteYAML(c *Changelog, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flushing changelog YAML: %w", err)
	}
	return nil
}

// LoadYAML decodes a changelog previously written by WriteYAML.
func LoadYAML(r io.Reader) (*Changelog, error) {
	var c Changelog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("parsing changelog YAML: %w", err)
	}
	return &c, nil
}

// UnmarshalText decodes a kind from its configuration name.
func (k *SectionKind) UnmarshalText(text []byte) error {
	kind, err := ParseSectionKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}
