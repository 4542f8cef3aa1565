package host

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-logr/logr"

	"github.com/imamik/asyncmod/internal/source"
)

var (
	// ErrEmptyName is returned when an import is requested for "".
	ErrEmptyName = errors.New("module name is empty")

	// ErrModuleInit is returned when a manifest declares a load failure.
	ErrModuleInit = errors.New("module initialization failed")
)

// Module is a module loaded into the host.
type Module struct {
	Name        string
	Version     *semver.Version
	Description string
	Path        string
	Exports     []string
	LoadedAt    time.Time

	// Generation starts at 1 and is bumped on every reload.
	Generation int
}

// Host is the shared module environment.
type Host struct {
	src source.Source
	log logr.Logger
	now func() time.Time

	mu       sync.RWMutex
	modules  map[string]*Module
	commands map[string]string
}

// New returns an empty Host that resolves modules through src.
func New(src source.Source, log logr.Logger) *Host {
	return &Host{
		src:      src,
		log:      log,
		now:      time.Now,
		modules:  make(map[string]*Module),
		commands: make(map[string]string),
	}
}

// Execute imports name into the host. It implements loader.Executor.
//
// A module already loaded at the same version is left alone unless force
// is set. A different version, or force, replaces the loaded module and
// its exports.
func (h *Host) Execute(ctx context.Context, name string, force bool) error {
	if name == "" {
		return ErrEmptyName
	}

	m, location, err := h.src.Resolve(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to resolve module %s: %w", name, err)
	}
	if m.Fail != "" {
		return fmt.Errorf("%w: %s", ErrModuleInit, m.Fail)
	}
	version, err := m.SemVer()
	if err != nil {
		return fmt.Errorf("module %s: %w", name, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	generation := 1
	if prev, ok := h.modules[m.Name]; ok {
		if !force && prev.Version.Equal(version) {
			return nil
		}
		h.log.V(1).Info("Reloading module", "module", m.Name,
			"from", prev.Version.String(), "to", version.String(), "force", force)
		h.removeExportsLocked(prev)
		generation = prev.Generation + 1
	}

	mod := &Module{
		Name:        m.Name,
		Version:     version,
		Description: m.Description,
		Path:        location,
		Exports:     slices.Clone(m.Exports),
		LoadedAt:    h.now(),
		Generation:  generation,
	}
	for _, cmd := range mod.Exports {
		if owner, ok := h.commands[cmd]; ok && owner != mod.Name {
			h.log.V(1).Info("Command clobbered", "command", cmd, "previous", owner, "module", mod.Name)
		}
		h.commands[cmd] = mod.Name
	}
	h.modules[mod.Name] = mod
	return nil
}

// removeExportsLocked drops the commands still owned by m.
func (h *Host) removeExportsLocked(m *Module) {
	for _, cmd := range m.Exports {
		if h.commands[cmd] == m.Name {
			delete(h.commands, cmd)
		}
	}
}

// Remove unloads a module and its exports. It reports whether the module
// was loaded.
func (h *Host) Remove(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.modules[name]
	if !ok {
		return false
	}
	h.removeExportsLocked(m)
	delete(h.modules, name)
	return true
}

// Lookup returns a copy of the loaded module with the given name.
func (h *Host) Lookup(name string) (Module, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	m, ok := h.modules[name]
	if !ok {
		return Module{}, false
	}
	return copyModule(m), true
}

// CommandOwner returns the module that currently provides cmd.
func (h *Host) CommandOwner(cmd string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	owner, ok := h.commands[cmd]
	return owner, ok
}

// Modules returns a snapshot of all loaded modules sorted by name.
func (h *Host) Modules() []Module {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Module, 0, len(h.modules))
	for _, m := range h.modules {
		out = append(out, copyModule(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of loaded modules.
func (h *Host) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.modules)
}

func copyModule(m *Module) Module {
	c := *m
	c.Exports = slices.Clone(m.Exports)
	return c
}
