package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/convlog/internal/changelog"
	"gopkg.in/yaml.v3"
)

// ErrEmptyKeyPath is returned for an empty dotted key.
var ErrEmptyKeyPath = errors.New("empty key path")

// ParseKeyPath splits a dotted key ("section_titles.bug_fixes") into segments.
func ParseKeyPath(path string) ([]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrEmptyKeyPath
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid key path %q: empty segment", path)
		}
	}
	return parts, nil
}

// documentMapping returns the top-level mapping of a document node,
// initializing an empty document in place.
func documentMapping(root *yaml.Node) (*yaml.Node, error) {
	if root.Kind == 0 {
		root.Kind = yaml.DocumentNode
	}
	if root.Kind != yaml.DocumentNode {
		return nil, fmt.Errorf("expected a YAML document, got node kind %d", root.Kind)
	}
	if len(root.Content) == 0 {
		root.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, errors.New("top level of config is not a mapping")
	}
	return m, nil
}

// SetNestedValue sets keyPath to value in the document, creating
// intermediate mappings as needed. Existing comments are kept.
func SetNestedValue(root *yaml.Node, keyPath []string, value interface{}) error {
	if len(keyPath) == 0 {
		return ErrEmptyKeyPath
	}
	node, err := documentMapping(root)
	if err != nil {
		return err
	}

	for i, key := range keyPath {
		last := i == len(keyPath)-1
		child := mappingValue(node, key)

		if last {
			var encoded yaml.Node
			if err := encoded.Encode(value); err != nil {
				return fmt.Errorf("encoding value for %s: %w", strings.Join(keyPath, "."), err)
			}
			if child != nil {
				child.Kind, child.Tag, child.Value = encoded.Kind, encoded.Tag, encoded.Value
				child.Style, child.Content = encoded.Style, encoded.Content
				return nil
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, &encoded)
			return nil
		}

		if child == nil {
			child = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, child)
		}
		if child.Kind != yaml.MappingNode {
			return fmt.Errorf("%s is not a mapping", strings.Join(keyPath[:i+1], "."))
		}
		node = child
	}
	return nil
}

// GetNestedValue returns the node at keyPath, or nil when absent.
func GetNestedValue(root *yaml.Node, keyPath []string) *yaml.Node {
	if len(keyPath) == 0 || root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	node := root.Content[0]
	for _, key := range keyPath {
		if node.Kind != yaml.MappingNode {
			return nil
		}
		node = mappingValue(node, key)
		if node == nil {
			return nil
		}
	}
	return node
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// resolveValue validates value for a dotted key. Map keys accept one
// level of nesting: types.<token> and section_titles.<section>.
func resolveValue(keyPath []string, value string) (interface{}, error) {
	key := strings.Join(keyPath, ".")
	schema, err := GetKeySchema(keyPath[0])
	if err != nil {
		return nil, ErrUnknownKey{Key: key}
	}

	if schema.Type != TypeMap {
		if len(keyPath) > 1 {
			return nil, ErrUnknownKey{Key: key}
		}
		parsed, err := validateAgainstSchema(schema, value)
		if err != nil {
			return nil, err
		}
		return parsed.Parsed, nil
	}

	if len(keyPath) != 2 {
		return nil, fmt.Errorf("%s is a map; set one entry, e.g. %s.<name>", keyPath[0], keyPath[0])
	}
	switch keyPath[0] {
	case "types":
		if !typeTokenPattern.MatchString(keyPath[1]) {
			return nil, fmt.Errorf("invalid type token %q", keyPath[1])
		}
		if _, err := changelog.ParseSectionKind(value); err != nil {
			return nil, errors.New(sectionNameMessage(value))
		}
	case "section_titles":
		if _, err := changelog.ParseSectionKind(keyPath[1]); err != nil {
			return nil, errors.New(sectionNameMessage(keyPath[1]))
		}
	}
	return value, nil
}

// SetConfigValue validates value for key and writes it to the YAML config
// at configPath, creating the file and its directory when missing.
func SetConfigValue(configPath, key, value string) error {
	keyPath, err := ParseKeyPath(key)
	if err != nil {
		return err
	}
	parsed, err := resolveValue(keyPath, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}

	var root yaml.Node
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config %s: %w", configPath, err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		if err := ValidateYAMLSyntaxFromBytes(data, configPath); err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &root); err != nil {
			return fmt.Errorf("parsing config %s: %w", configPath, err)
		}
	}

	if err := SetNestedValue(&root, keyPath, parsed); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", configPath, err)
	}
	return nil
}
