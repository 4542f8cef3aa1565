package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/imamik/asyncmod/internal/manifest"
)

// ErrNotFound is returned when no source has a manifest for the module.
var ErrNotFound = errors.New("module not found")

// Source resolves module names to manifests.
//
// Implementations are called concurrently by the host.
type Source interface {
	// Resolve returns the manifest for name and a human-readable location.
	Resolve(ctx context.Context, name string) (*manifest.Manifest, string, error)
	// List returns the names of all modules the source can resolve.
	List(ctx context.Context) ([]string, error)
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// checkName verifies that a manifest found under name declares that name.
func checkName(m *manifest.Manifest, name, location string) error {
	if m.Name != name {
		return fmt.Errorf("manifest %s declares module %q, expected %q", location, m.Name, name)
	}
	return nil
}

// stripExt returns base without a manifest extension, and whether one was found.
func stripExt(base string) (string, bool) {
	for _, ext := range manifest.Extensions {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)], true
		}
	}
	return base, false
}

// Chain tries each source in order.
type Chain []Source

// Resolve returns the first manifest found. Errors other than ErrNotFound
// stop the search.
func (c Chain) Resolve(ctx context.Context, name string) (*manifest.Manifest, string, error) {
	for _, src := range c {
		m, loc, err := src.Resolve(ctx, name)
		if err == nil {
			return m, loc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, "", err
		}
	}
	return nil, "", notFound(name)
}

// List queries all sources concurrently and returns the sorted union.
func (c Chain) List(ctx context.Context) ([]string, error) {
	results := make([][]string, len(c))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range c {
		g.Go(func() error {
			names, err := src.List(ctx)
			if err != nil {
				return err
			}
			results[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, r := range results {
		for _, n := range r {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}
