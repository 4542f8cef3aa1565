package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/imamik/asyncmod/internal/manifest"
)

// Dir searches module roots on the local filesystem.
//
// For a module "net-tools" each root is checked for
// net-tools/net-tools.{yaml,yml,hcl} and then net-tools.{yaml,yml,hcl}.
// A name that is itself a path to a manifest file is loaded directly.
type Dir struct {
	Roots []string
}

// NewDir returns a Dir over the given roots.
func NewDir(roots ...string) *Dir {
	return &Dir{Roots: roots}
}

// Resolve implements Source.
func (d *Dir) Resolve(_ context.Context, name string) (*manifest.Manifest, string, error) {
	if _, ok := stripExt(name); ok && isFile(name) {
		m, err := readManifest(name)
		if err != nil {
			return nil, "", err
		}
		return m, name, nil
	}

	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, "", notFound(name)
	}

	for _, root := range d.Roots {
		for _, path := range candidates(root, name) {
			if !isFile(path) {
				continue
			}
			m, err := readManifest(path)
			if err != nil {
				return nil, "", err
			}
			if err := checkName(m, name, path); err != nil {
				return nil, "", err
			}
			return m, path, nil
		}
	}
	return nil, "", notFound(name)
}

// List implements Source. Missing roots are skipped.
func (d *Dir) List(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}

	for _, root := range d.Roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read module root %s: %w", root, err)
		}

		for _, e := range entries {
			if e.IsDir() {
				for _, ext := range manifest.Extensions {
					if isFile(filepath.Join(root, e.Name(), e.Name()+ext)) {
						add(e.Name())
						break
					}
				}
				continue
			}
			if n, ok := stripExt(e.Name()); ok {
				add(n)
			}
		}
	}

	sort.Strings(names)
	return names, nil
}

func candidates(root, name string) []string {
	paths := make([]string, 0, 2*len(manifest.Extensions))
	for _, ext := range manifest.Extensions {
		paths = append(paths, filepath.Join(root, name, name+ext))
	}
	for _, ext := range manifest.Extensions {
		paths = append(paths, filepath.Join(root, name+ext))
	}
	return paths
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func readManifest(path string) (*manifest.Manifest, error) {
	format, err := manifest.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return manifest.Parse(data, format, path)
}
