// Package yaml provides the YAML-based settings adapter.
package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/anvil-mc/anvil/internal/domain/entities"
)

// yamlSettings represents the raw YAML structure
type yamlSettings struct {
	Root        string        `yaml:"root"`
	Concurrency int           `yaml:"concurrency"`
	Mirrors     []string      `yaml:"mirrors"`
	Java        string        `yaml:"java"`
	Endpoints   yamlEndpoints `yaml:"endpoints"`
	Verify      yamlVerify    `yaml:"verify"`
}

type yamlEndpoints struct {
	LegacyVersions  string `yaml:"legacy_versions"`
	ModernVersions  string `yaml:"modern_versions"`
	LegacyInstaller string `yaml:"legacy_installer"`
	ModernInstaller string `yaml:"modern_installer"`
}

type yamlVerify struct {
	Signature bool   `yaml:"signature"`
	KeyFile   string `yaml:"key_file"`
}

// SettingsParser parses YAML settings files
type SettingsParser struct{}

// NewSettingsParser creates a new YAML parser
func NewSettingsParser() *SettingsParser {
	return &SettingsParser{}
}

// ParseFile parses a YAML settings file into a Settings entity
func (p *SettingsParser) ParseFile(filePath string) (*entities.Settings, error) {
	//nolint:gosec // G304: filePath is the user's settings file path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return p.Parse(data)
}

// Parse parses YAML bytes into a Settings entity. Unset fields keep the
// defaults pointing at the upstream loader repository.
func (p *SettingsParser) Parse(data []byte) (*entities.Settings, error) {
	var raw yamlSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	s := entities.DefaultSettings()
	if raw.Root != "" {
		s.Root = raw.Root
	}
	if raw.Concurrency > 0 {
		s.Concurrency = raw.Concurrency
	}
	if len(raw.Mirrors) > 0 {
		s.Mirrors = raw.Mirrors
	}
	if raw.Java != "" {
		s.JavaPath = raw.Java
	}
	if raw.Endpoints.LegacyVersions != "" {
		s.Endpoints.LegacyVersions = raw.Endpoints.LegacyVersions
	}
	if raw.Endpoints.ModernVersions != "" {
		s.Endpoints.ModernVersions = raw.Endpoints.ModernVersions
	}
	if raw.Endpoints.LegacyInstaller != "" {
		s.Endpoints.LegacyInstaller = raw.Endpoints.LegacyInstaller
	}
	if raw.Endpoints.ModernInstaller != "" {
		s.Endpoints.ModernInstaller = raw.Endpoints.ModernInstaller
	}
	s.Verify.Signature = raw.Verify.Signature
	s.Verify.KeyFile = raw.Verify.KeyFile

	if s.Verify.Signature && s.Verify.KeyFile == "" {
		return nil, fmt.Errorf("verify.signature requires verify.key_file")
	}
	return &s, nil
}
