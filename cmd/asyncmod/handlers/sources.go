package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/asyncmod/internal/config"
	"github.com/imamik/asyncmod/internal/platform/s3"
	"github.com/imamik/asyncmod/internal/source"
	"github.com/imamik/asyncmod/internal/util/retry"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfig loads the config file, or the defaults when none exists.
	loadConfig = config.Load

	// newObjectStore creates the S3 client behind a bucket source.
	newObjectStore = func(cfg config.S3Config) (source.ObjectStore, error) {
		return s3.NewClient(cfg.Endpoint, cfg.Region, cfg.AccessKey, cfg.SecretKey)
	}

	// isInteractiveTTY reports whether stdout is a terminal.
	isInteractiveTTY = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// buildSource assembles the module search order: paths given on the
// command line, then the configured roots, then the bucket.
func buildSource(cfg *config.Config, extraPaths []string) (source.Source, error) {
	roots := append(append([]string{}, extraPaths...), cfg.ModulePaths...)

	var chain source.Chain
	if len(roots) > 0 {
		chain = append(chain, source.NewDir(roots...))
	}

	if cfg.S3.Enabled() {
		store, err := newObjectStore(cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		fetch := cfg.Fetch
		if fetch == nil {
			fetch = config.LoadFetchSettings()
		}
		chain = append(chain, source.NewBucket(store, cfg.S3.Bucket, cfg.S3.Prefix,
			retry.WithMaxAttempts(fetch.RetryMaxAttempts),
			retry.WithInitialDelay(fetch.RetryInitialDelay),
			retry.WithMaxDelay(fetch.RetryMaxDelay),
		))
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("no module sources configured")
	}
	return chain, nil
}
