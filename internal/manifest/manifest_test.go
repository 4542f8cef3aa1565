package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"net-tools.yaml", FormatYAML, false},
		{"dir/net-tools.YML", FormatYAML, false},
		{"net-tools.hcl", FormatHCL, false},
		{"net-tools.json", "", true},
		{"net-tools", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_YAML(t *testing.T) {
	data := []byte(`
name: net-tools
version: 1.4.0
description: Network helpers
exports: [Get-Route, Test-Port]
`)

	m, err := Parse(data, FormatYAML, "net-tools.yaml")
	require.NoError(t, err)

	assert.Equal(t, "net-tools", m.Name)
	assert.Equal(t, "1.4.0", m.Version)
	assert.Equal(t, "Network helpers", m.Description)
	assert.Equal(t, []string{"Get-Route", "Test-Port"}, m.Exports)
	assert.Empty(t, m.Fail)
}

func TestParse_HCL(t *testing.T) {
	data := []byte(`
module "net-tools" {
  version     = "1.4.0"
  description = "Network helpers"
  exports     = ["Get-Route", "Test-Port"]
}
`)

	m, err := Parse(data, FormatHCL, "net-tools.hcl")
	require.NoError(t, err)

	assert.Equal(t, "net-tools", m.Name)
	assert.Equal(t, "1.4.0", m.Version)
	assert.Equal(t, []string{"Get-Route", "Test-Port"}, m.Exports)
}

func TestParse_HCLRequiresOneModuleBlock(t *testing.T) {
	data := []byte(`
module "a" {
  version = "1.0.0"
}
module "b" {
  version = "1.0.0"
}
`)

	_, err := Parse(data, FormatHCL, "two.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one module block")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr string
	}{
		{"bad yaml", "name: [", FormatYAML, "failed to unmarshal yaml"},
		{"missing name", "version: 1.0.0", FormatYAML, "name is required"},
		{"missing version", "name: x", FormatYAML, "version is required"},
		{"bad version", "name: x\nversion: banana", FormatYAML, "invalid version"},
		{"empty export", "name: x\nversion: 1.0.0\nexports: ['']", FormatYAML, "name is empty"},
		{"duplicate export", "name: x\nversion: 1.0.0\nexports: [a, a]", FormatYAML, "duplicate export"},
		{"bad hcl", "module {", FormatHCL, "failed to parse HCL"},
		{"unknown format", "", Format("toml"), "unknown manifest format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format, "test")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestManifest_SemVer(t *testing.T) {
	m := &Manifest{Name: "x", Version: "v2.1.0-rc.1"}

	v, err := m.SemVer()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), v.Major())
	assert.Equal(t, "rc.1", v.Prerelease())
}
