package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Compliance Toolkit", cfg.Branding.ToolkitName)
	assert.Equal(t, 3, cfg.Export.TypographyVersion)
	assert.Equal(t, "exports", cfg.Export.OutputDir)
	assert.NotEmpty(t, cfg.Store.DatabasePath)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "filingdesk.yaml")
	content := `
branding:
  toolkit_name: Registry Suite
  icon_url: https://brand.example/icon.png
export:
  typography_version: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Registry Suite", cfg.Branding.ToolkitName)
	assert.Equal(t, "https://brand.example/icon.png", cfg.Branding.IconURL)
	assert.Equal(t, 2, cfg.Export.TypographyVersion)
	// Untouched keys keep their defaults.
	assert.Equal(t, "exports", cfg.Export.OutputDir)
	assert.Equal(t, "Generated by filingdesk", cfg.Branding.BrandLine)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{"bad_yaml", "branding: ["},
		{"empty_toolkit_name", "branding:\n  toolkit_name: \"\"\n"},
		{"typography_out_of_range", "export:\n  typography_version: 7\n"},
		{"icon_timeout_not_a_duration", "export:\n  icon_timeout: soon\n"},
		{"icon_timeout_negative", "export:\n  icon_timeout: -3s\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "filingdesk.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestIconTimeoutDuration(t *testing.T) {
	t.Parallel()

	e := ExportConfig{IconTimeout: "2s"}
	d, err := e.IconTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)

	// Empty falls back to the default rather than erroring.
	d, err = ExportConfig{}.IconTimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)

	_, err = ExportConfig{IconTimeout: "soon"}.IconTimeoutDuration()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Export.TypographyVersion = 0
	assert.Error(t, cfg.Validate())
}
