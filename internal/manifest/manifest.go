package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// Format is a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Extensions lists the manifest file extensions in lookup order.
var Extensions = []string{".yaml", ".yml", ".hcl"}

// ErrUnknownFormat is returned for files that are not YAML or HCL.
var ErrUnknownFormat = errors.New("unknown manifest format")

// Manifest describes a module that can be imported into the host.
type Manifest struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Description string   `yaml:"description,omitempty"`
	Exports     []string `yaml:"exports,omitempty"`

	// Fail makes the import fail with this message. It stands in for a
	// module whose initialization throws.
	Fail string `yaml:"fail,omitempty"`
}

// hclFile is the top-level HCL shape: a single labelled module block.
type hclFile struct {
	Modules []*hclModule `hcl:"module,block"`
	Remain  hcl.Body     `hcl:",remain"`
}

type hclModule struct {
	Name        string   `hcl:"name,label"`
	Version     string   `hcl:"version"`
	Description string   `hcl:"description,optional"`
	Exports     []string `hcl:"exports,optional"`
	Fail        string   `hcl:"fail,optional"`
}

// FormatFromPath returns the format matching the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Parse decodes and validates a manifest. filename is only used in
// diagnostics.
func Parse(data []byte, format Format, filename string) (*Manifest, error) {
	var m *Manifest
	var err error

	switch format {
	case FormatYAML:
		m, err = parseYAML(data)
	case FormatHCL:
		m, err = parseHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", filename, err)
	}
	return m, nil
}

func parseYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	return &m, nil
}

func parseHCL(data []byte, filename string) (*Manifest, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	if len(root.Modules) != 1 {
		return nil, fmt.Errorf("HCL file %s must contain exactly one module block, found %d", filename, len(root.Modules))
	}

	b := root.Modules[0]
	return &Manifest{
		Name:        b.Name,
		Version:     b.Version,
		Description: b.Description,
		Exports:     b.Exports,
		Fail:        b.Fail,
	}, nil
}

// Validate checks required fields and export names.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if _, err := m.SemVer(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(m.Exports))
	for i, e := range m.Exports {
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("exports[%d]: name is empty", i)
		}
		if seen[e] {
			return fmt.Errorf("exports[%d]: duplicate export %q", i, e)
		}
		seen[e] = true
	}
	return nil
}

// SemVer parses the manifest version.
func (m *Manifest) SemVer() (*semver.Version, error) {
	if m.Version == "" {
		return nil, fmt.Errorf("version is required")
	}
	v, err := semver.NewVersion(m.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", m.Version, err)
	}
	return v, nil
}
