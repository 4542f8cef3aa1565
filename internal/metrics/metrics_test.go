package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/asyncmod/internal/loader"
)

func TestRecordImport(t *testing.T) {
	r := NewRecorder()

	r.RecordImport(nil, 10*time.Millisecond)
	r.RecordImport(nil, 20*time.Millisecond)
	r.RecordImport(errors.New("boom"), time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.importTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.importTotal.WithLabelValues("failure")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.importDuration))
}

func TestSetModulesLoaded(t *testing.T) {
	r := NewRecorder()

	r.SetModulesLoaded(7)

	assert.Equal(t, float64(7), testutil.ToFloat64(r.modulesLoaded))
}

func TestInstrument_WithDispatcher(t *testing.T) {
	r := NewRecorder()
	exec := r.Instrument(loader.ExecutorFunc(func(_ context.Context, name string, _ bool) error {
		switch name {
		case "bad":
			return errors.New("bad module")
		case "panics":
			panic("kaboom")
		}
		return nil
	}))

	successes, failures := loader.RunAll(context.Background(), []string{"a", "b", "bad", "panics"}, false, exec)

	assert.Equal(t, 2, successes.Len())
	require.Equal(t, 2, failures.Len())
	assert.Equal(t, float64(2), testutil.ToFloat64(r.importTotal.WithLabelValues("success")))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.importTotal.WithLabelValues("failure")))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRecorder()
	r.RecordImport(nil, time.Millisecond)
	r.SetModulesLoaded(1)

	path := filepath.Join(t.TempDir(), "asyncmod.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.Contains(out, `asyncmod_import_total{result="success"} 1`), out)
	assert.Contains(t, out, "asyncmod_modules_loaded 1")
}

func TestWriteTextfile_BadPath(t *testing.T) {
	r := NewRecorder()

	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "out.prom"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics")
}
