package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/imamik/asyncmod/internal/host"
	"github.com/imamik/asyncmod/internal/loader"
	"github.com/imamik/asyncmod/internal/logging"
	"github.com/imamik/asyncmod/internal/metrics"
)

// ErrImportFailed is returned after reporting when at least one module failed.
var ErrImportFailed = errors.New("module import failed")

// ImportOptions holds the flags of the import command.
type ImportOptions struct {
	Names       []string
	Force       bool
	ConfigPath  string
	ModulePaths []string
	Verbose     bool
	JSON        bool
	MetricsFile string
}

// importReport is the JSON shape of an import run.
type importReport struct {
	Imported []reportModule `json:"imported"`
	Failed   []reportError  `json:"failed"`
}

type reportModule struct {
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Path       string   `json:"path"`
	Exports    []string `json:"exports,omitempty"`
	Generation int      `json:"generation"`
}

type reportError struct {
	Name     string `json:"name"`
	ErrorID  string `json:"error_id"`
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Import loads the named modules into a fresh host concurrently.
//
// Every module is attempted. Verbose lines (with --verbose) and errors
// are written to stderr only after all imports have finished, followed
// by a summary on stdout. ErrImportFailed is returned when any module
// failed.
func Import(ctx context.Context, opts ImportOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	src, err := buildSource(cfg, opts.ModulePaths)
	if err != nil {
		return err
	}

	verbosity := 0
	if opts.Verbose {
		verbosity = 1
	}
	log := logging.New(stderr, verbosity).WithName("asyncmod")

	// The host logs from the import goroutines; its lines are held until
	// the reporter has flushed.
	hostLog, notices := logging.NewBuffered(verbosity)
	h := host.New(src, hostLog.WithName("asyncmod"))
	rec := metrics.NewRecorder()

	summary := loader.Import(ctx, opts.Names, opts.Force, rec.Instrument(h),
		func(message string) {
			log.V(1).Info(message)
		},
		func(f loader.Failure) {
			log.Error(f.Err, "Module import failed",
				"module", f.Name, "errorId", f.ID, "category", string(f.Category))
		},
	)
	notices.Replay(stderr)
	rec.SetModulesLoaded(h.Len())

	metricsFile := opts.MetricsFile
	if metricsFile == "" {
		metricsFile = cfg.MetricsFile
	}
	if metricsFile != "" {
		if err := rec.WriteTextfile(metricsFile); err != nil {
			log.Error(err, "Failed to write metrics")
		}
	}

	report := buildImportReport(h.Modules(), summary)
	switch {
	case opts.JSON:
		b, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(b))
	case isInteractiveTTY():
		fmt.Fprint(stdout, renderImportSummary(report))
	default:
		printImportSummary(stdout, report)
	}

	if summary.HasFailures() {
		return fmt.Errorf("%w: %d of %d modules", ErrImportFailed, len(summary.Failed), summary.Total())
	}
	return nil
}

func buildImportReport(modules []host.Module, summary loader.Summary) importReport {
	report := importReport{
		Imported: []reportModule{},
		Failed:   []reportError{},
	}
	for _, m := range modules {
		report.Imported = append(report.Imported, reportModule{
			Name:       m.Name,
			Version:    m.Version.String(),
			Path:       m.Path,
			Exports:    m.Exports,
			Generation: m.Generation,
		})
	}
	for _, f := range summary.Failed {
		report.Failed = append(report.Failed, reportError{
			Name:     f.Name,
			ErrorID:  f.ID,
			Category: string(f.Category),
			Message:  f.Err.Error(),
		})
	}
	return report
}
