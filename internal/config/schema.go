package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
	TypeList
	TypeMap
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Key path (e.g., "display_links")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Min, Max      int             // Inclusive bounds for int types (zero Max = unbounded)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value
}

// Settable reports whether the key can be written with a single scalar value.
func (s ConfigKeySchema) Settable() bool {
	return s.Type != TypeList && s.Type != TypeMap
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"format": {
		Path:          "format",
		Type:          TypeEnum,
		AllowedValues: []string{"markdown", "plain", "slack"},
		Description:   "Output markup",
		Default:       "markdown",
	},
	"display_title": {
		Path:        "display_title",
		Type:        TypeBool,
		Description: "Emit the version/title/date header block",
		Default:     true,
	},
	"display_author": {
		Path:        "display_author",
		Type:        TypeBool,
		Description: "Append the commit author to every line",
		Default:     false,
	},
	"display_links": {
		Path:        "display_links",
		Type:        TypeBool,
		Description: "Append the commit hash link to every line",
		Default:     true,
	},
	"title": {
		Path:        "title",
		Type:        TypeString,
		Description: "Text inside the parentheses after the version",
		Default:     "",
	},
	"commit_url": {
		Path:        "commit_url",
		Type:        TypeString,
		Description: "Prefix of commit links (e.g. https://github.com/org/repo/commit)",
		Default:     "",
	},
	"short_hash_length": {
		Path:        "short_hash_length",
		Type:        TypeInt,
		Min:         4,
		Max:         40,
		Description: "Length of abbreviated commit hashes read from git",
		Default:     7,
	},
	"ignore_scopes": {
		Path:        "ignore_scopes",
		Type:        TypeList,
		Description: "Commit scopes left out of the changelog",
		Default:     []string{},
	},
	"types": {
		Path:        "types",
		Type:        TypeMap,
		Description: "Extra commit type tokens mapped to section names",
		Default:     map[string]string{},
	},
	"section_titles": {
		Path:        "section_titles",
		Type:        TypeMap,
		Description: "Section heading overrides keyed by section name",
		Default:     map[string]string{},
	},
}

// KeyNames returns the known keys in alphabetical order.
func KeyNames() []string {
	names := make([]string, 0, len(KnownKeys))
	for name := range KnownKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

// validateAgainstSchema validates a value against a specific schema.
func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeInt:
		return parseIntValue(schema, value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("%s is a %s; edit the config file to change it", schema.Path, schema.Type)
	}
}

// parseBoolValue parses and validates a boolean value.
func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

// parseIntValue parses an integer value and checks the schema bounds.
func parseIntValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	if n < schema.Min || (schema.Max > 0 && n > schema.Max) {
		return ParsedValue{}, fmt.Errorf("out of range: %d (expected %d-%d)", n, schema.Min, schema.Max)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

// parseEnumValue validates a value against allowed enum options.
func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if strings.EqualFold(value, allowed) {
			return ParsedValue{Raw: value, Parsed: allowed, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}
