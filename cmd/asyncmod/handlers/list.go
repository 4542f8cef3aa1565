package handlers

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ListOptions holds the flags of the list command.
type ListOptions struct {
	ConfigPath  string
	ModulePaths []string
	YAML        bool
}

// List prints the modules available from the configured sources.
func List(ctx context.Context, opts ListOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	src, err := buildSource(cfg, opts.ModulePaths)
	if err != nil {
		return err
	}

	names, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list modules: %w", err)
	}

	if opts.YAML {
		out, err := yaml.Marshal(map[string][]string{"modules": names})
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		fmt.Fprint(stdout, string(out))
		return nil
	}

	for _, n := range names {
		fmt.Fprintln(stdout, n)
	}
	return nil
}
