// Package metrics records import outcomes with Prometheus collectors.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/asyncmod/internal/loader"
)

const namespace = "asyncmod"

// Recorder owns the import collectors and the registry they live in.
type Recorder struct {
	registry *prometheus.Registry

	importTotal    *prometheus.CounterVec
	importDuration *prometheus.HistogramVec
	modulesLoaded  prometheus.Gauge
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		importTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "import_total",
				Help:      "Total number of module imports by result",
			},
			[]string{"result"},
		),

		importDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "import_duration_seconds",
				Help:      "Duration of a single module import in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~2s
			},
			[]string{"result"},
		),

		modulesLoaded: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "modules_loaded",
				Help:      "Number of modules loaded in the host",
			},
		),
	}

	r.registry.MustRegister(r.importTotal, r.importDuration, r.modulesLoaded)
	return r
}

// Registry returns the registry the collectors are registered with.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordImport records one finished import.
func (r *Recorder) RecordImport(err error, d time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	r.importTotal.WithLabelValues(result).Inc()
	r.importDuration.WithLabelValues(result).Observe(d.Seconds())
}

// SetModulesLoaded sets the loaded-modules gauge.
func (r *Recorder) SetModulesLoaded(n int) {
	r.modulesLoaded.Set(float64(n))
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

// Instrument wraps exec so that every call is recorded by r.
func (r *Recorder) Instrument(exec loader.Executor) loader.Executor {
	return loader.ExecutorFunc(func(ctx context.Context, name string, force bool) (err error) {
		start := time.Now()
		defer func() {
			// a panic still counts as a failed import before it propagates
			if p := recover(); p != nil {
				r.RecordImport(fmt.Errorf("panic: %v", p), time.Since(start))
				panic(p)
			}
			r.RecordImport(err, time.Since(start))
		}()
		return exec.Execute(ctx, name, force)
	})
}
