// Package config holds all filingdesk configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration tree.
type Config struct {
	// Branding supplied by the theming collaborator.
	Branding BrandingConfig `yaml:"branding"`

	// Export settings.
	Export ExportConfig `yaml:"export"`

	// Storage settings.
	Store StoreConfig `yaml:"store"`
}

// BrandingConfig identifies the toolkit in headers, footers and filenames.
type BrandingConfig struct {
	ToolkitName string `yaml:"toolkit_name"`
	IconURL     string `yaml:"icon_url"`
	BrandLine   string `yaml:"brand_line"`
}

// ExportConfig controls the document exporter.
type ExportConfig struct {
	// TypographyVersion selects the styling revision (1, 2 or 3).
	TypographyVersion int `yaml:"typography_version"`

	// OutputDir is where exported documents are written.
	OutputDir string `yaml:"output_dir"`

	// IconTimeout bounds the branding icon fetch, e.g. "5s".
	IconTimeout string `yaml:"icon_timeout"`
}

// IconTimeoutDuration parses the icon fetch timeout. An empty value falls
// back to the default.
func (e ExportConfig) IconTimeoutDuration() (time.Duration, error) {
	if e.IconTimeout == "" {
		return 5 * time.Second, nil
	}
	d, err := time.ParseDuration(e.IconTimeout)
	if err != nil {
		return 0, fmt.Errorf("export.icon_timeout %q is not a duration: %w", e.IconTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("export.icon_timeout must be positive, got %s", d)
	}
	return d, nil
}

// StoreConfig configures the SQLite report store.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Branding: BrandingConfig{
			ToolkitName: "Compliance Toolkit",
			BrandLine:   "Generated by filingdesk",
		},
		Export: ExportConfig{
			TypographyVersion: 3,
			OutputDir:         "exports",
			IconTimeout:       "5s",
		},
		Store: StoreConfig{
			DatabasePath: filepath.Join(".filingdesk", "reports.db"),
		},
	}
}

// Load reads a YAML config file, filling gaps with defaults. A missing file
// is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.Branding.ToolkitName == "" {
		return fmt.Errorf("branding.toolkit_name must not be empty")
	}
	if v := c.Export.TypographyVersion; v < 1 || v > 3 {
		return fmt.Errorf("export.typography_version must be 1, 2 or 3, got %d", v)
	}
	if _, err := c.Export.IconTimeoutDuration(); err != nil {
		return err
	}
	return nil
}
