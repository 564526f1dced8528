// convlog - Conventional commit changelog generator
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/convlog

// Package config provides hierarchical configuration management for convlog using koanf.
// Configuration is loaded with priority: environment variables > project config (.convlog/config.yml)
// > user config (~/.config/convlog/config.yml) > defaults. Command-line flags are applied on top
// by the CLI. A legacy JSON project config is still read, with a migration warning.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/convlog/internal/changelog"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable convlog reads.
const EnvPrefix = "CONVLOG_"

// Configuration represents the convlog CLI tool configuration
type Configuration struct {
	// Format selects the markup: markdown, plain or slack.
	// Can be set via CONVLOG_FORMAT env var.
	Format        string `koanf:"format" yaml:"format" json:"format" validate:"oneof=markdown plain slack"`
	DisplayTitle  bool   `koanf:"display_title" yaml:"display_title" json:"display_title"`
	DisplayAuthor bool   `koanf:"display_author" yaml:"display_author" json:"display_author"`
	DisplayLinks  bool   `koanf:"display_links" yaml:"display_links" json:"display_links"`
	Title         string `koanf:"title" yaml:"title" json:"title"`
	// CommitURL prefixes commit links, e.g. https://github.com/org/repo/commit
	CommitURL string `koanf:"commit_url" yaml:"commit_url" json:"commit_url" validate:"omitempty,url"`

	ShortHashLength int `koanf:"short_hash_length" yaml:"short_hash_length" json:"short_hash_length" validate:"min=4,max=40"`

	IgnoreScopes []string `koanf:"ignore_scopes" yaml:"ignore_scopes" json:"ignore_scopes"`
	// Types maps extra commit type tokens to section names (e.g. revert: reverts).
	Types map[string]string `koanf:"types" yaml:"types" json:"types"`
	// SectionTitles overrides section headings by section name (e.g. bug_fixes: Fixes).
	SectionTitles map[string]string `koanf:"section_titles" yaml:"section_titles" json:"section_titles"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .convlog/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: ~/.config/convlog/config.yml)
	UserConfigPath string
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
//
// YAML config paths:
//   - User config: ~/.config/convlog/config.yml (XDG compliant)
//   - Project config: .convlog/config.yml
//
// Legacy JSON config path (deprecated, triggers migration warning):
//   - Project config: .convlog/config.json
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	userYAMLPath := customPath
	if userYAMLPath == "" {
		userYAMLPath, _ = UserConfigPath()
	}
	if !fileExists(userYAMLPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userYAMLPath, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// Supports custom path override (for testing). Falls back to legacy JSON with warning.
// Warns if both exist (YAML used, JSON ignored).
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	projectYAMLPath := ProjectConfigPath()
	legacyProjectPath := LegacyProjectConfigPath()
	if customPath != "" {
		projectYAMLPath = customPath
		legacyProjectPath = strings.TrimSuffix(customPath, ".yml") + ".json"
	}

	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		warnLegacyExists(warningWriter, legacyProjectPath, projectYAMLPath, legacyProjectExists, skipWarnings)
	} else if legacyProjectExists {
		if err := loadLegacyJSONConfig(k, legacyProjectPath, warningWriter, skipWarnings); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadLegacyJSONConfig loads legacy JSON and warns about migration
func loadLegacyJSONConfig(k *koanf.Koanf, path string, warningWriter io.Writer, skipWarnings bool) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load legacy project config %s: %w", path, err)
	}
	if !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", path)
		fmt.Fprintf(warningWriter, "  Run 'convlog config migrate' to migrate to YAML format.\n\n")
	}
	return nil
}

// warnLegacyExists warns if legacy JSON exists alongside new YAML
func warnLegacyExists(warningWriter io.Writer, legacyPath, yamlPath string, legacyExists, skipWarnings bool) {
	if legacyExists && !skipWarnings {
		fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyPath, yamlPath)
		fmt.Fprintf(warningWriter, "  Run 'convlog config migrate' to remove the legacy file.\n\n")
	}
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, normalizes and validates the merged config
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	if cfg.Format == "" {
		cfg.Format = string(changelog.FormatMarkdown)
	}
	cfg.CommitURL = strings.TrimRight(cfg.CommitURL, "/")

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CONVLOG_SHORT_HASH_LENGTH -> short_hash_length
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// RenderOptions converts the configuration into renderer options.
func (c *Configuration) RenderOptions() (changelog.RenderOptions, error) {
	format, err := changelog.ParseFormat(c.Format)
	if err != nil {
		return changelog.RenderOptions{}, err
	}

	titles := make(map[changelog.SectionKind]string, len(c.SectionTitles))
	for name, title := range c.SectionTitles {
		kind, err := changelog.ParseSectionKind(name)
		if err != nil {
			return changelog.RenderOptions{}, fmt.Errorf("section_titles: %w", err)
		}
		titles[kind] = title
	}

	return changelog.RenderOptions{
		Format:        format,
		DisplayTitle:  c.DisplayTitle,
		DisplayAuthor: c.DisplayAuthor,
		DisplayLinks:  c.DisplayLinks,
		Title:         c.Title,
		CommitURL:     c.CommitURL,
		SectionTitles: titles,
	}, nil
}

// Classifier builds a classifier with the configured extra types and
// ignored scopes.
func (c *Configuration) Classifier() (*changelog.Classifier, error) {
	types := make(map[string]changelog.SectionKind, len(c.Types))
	for token, name := range c.Types {
		kind, err := changelog.ParseSectionKind(name)
		if err != nil {
			return nil, fmt.Errorf("types.%s: %w", token, err)
		}
		types[token] = kind
	}
	return changelog.NewClassifier(
		changelog.WithTypes(types),
		changelog.WithIgnoredScopes(c.IgnoreScopes...),
	), nil
}
