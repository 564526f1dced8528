package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/knadh/koanf/parsers/json"
	"gopkg.in/yaml.v3"
)

// MigrationResult describes the outcome of a migration operation
type MigrationResult struct {
	SourcePath string
	TargetPath string
	Success    bool
	DryRun     bool
	Message    string
	// UnknownKeys lists keys in the JSON file that convlog does not read.
	// They are carried over unchanged.
	UnknownKeys []string
}

// MigrateJSONToYAML converts a JSON config file to YAML. Nothing is written
// when the YAML file already exists or dryRun is set.
func MigrateJSONToYAML(jsonPath, yamlPath string, dryRun bool) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: jsonPath,
		TargetPath: yamlPath,
		DryRun:     dryRun,
	}

	jsonData, err := os.ReadFile(jsonPath)
	if os.IsNotExist(err) {
		result.Message = fmt.Sprintf("No JSON config found at %s", jsonPath)
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading JSON config: %w", err)
	}

	values, err := json.Parser().Unmarshal(jsonData)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON config %s: %w", jsonPath, err)
	}
	for key := range values {
		if _, err := GetKeySchema(key); err != nil {
			result.UnknownKeys = append(result.UnknownKeys, key)
		}
	}
	sort.Strings(result.UnknownKeys)

	if fileExists(yamlPath) {
		result.Message = fmt.Sprintf("YAML config already exists at %s (skipped)", yamlPath)
		return result, nil
	}

	if dryRun {
		result.Success = true
		result.Message = fmt.Sprintf("Would migrate %s -> %s", jsonPath, yamlPath)
		return result, nil
	}

	yamlData, err := yaml.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("converting to YAML: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(yamlPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	header := "# convlog configuration\n# Migrated from " + filepath.Base(jsonPath) + "\n\n"
	if err := os.WriteFile(yamlPath, []byte(header+string(yamlData)), 0o644); err != nil {
		return nil, fmt.Errorf("writing YAML config: %w", err)
	}

	result.Success = true
	result.Message = fmt.Sprintf("Migrated %s -> %s", jsonPath, yamlPath)
	return result, nil
}

// MigrateProjectConfig migrates .convlog/config.json to .convlog/config.yml.
func MigrateProjectConfig(dryRun bool) (*MigrationResult, error) {
	return MigrateJSONToYAML(LegacyProjectConfigPath(), ProjectConfigPath(), dryRun)
}

// RemoveLegacyConfig renames a migrated JSON config to <name>.bak.
func RemoveLegacyConfig(jsonPath string, dryRun bool) error {
	if dryRun || !fileExists(jsonPath) {
		return nil
	}
	if err := os.Rename(jsonPath, jsonPath+".bak"); err != nil {
		return fmt.Errorf("backing up legacy config: %w", err)
	}
	return nil
}

// DetectLegacyConfig returns the legacy JSON project config path when one exists.
func DetectLegacyConfig() string {
	path := LegacyProjectConfigPath()
	if fileExists(path) {
		return path
	}
	return ""
}
