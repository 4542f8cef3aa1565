package handlers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/require"

	"github.com/imamik/asyncmod/internal/config"
	"github.com/imamik/asyncmod/internal/source"
)

// saveAndRestoreFactories restores the package-level factories after a test
// and captures stdout/stderr into the returned buffers.
func saveAndRestoreFactories(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	origLoadConfig := loadConfig
	origNewObjectStore := newObjectStore
	origIsInteractiveTTY := isInteractiveTTY
	origStdout := stdout
	origStderr := stderr

	t.Cleanup(func() {
		loadConfig = origLoadConfig
		newObjectStore = origNewObjectStore
		isInteractiveTTY = origIsInteractiveTTY
		stdout = origStdout
		stderr = origStderr
	})

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	stdout, stderr = out, errOut
	isInteractiveTTY = func() bool { return false }
	return out, errOut
}

// moduleRoot writes YAML manifests into a temp dir and points loadConfig at it.
func moduleRoot(t *testing.T, manifests map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range manifests {
		require.NoError(t, os.WriteFile(filepath.Join(root, name+".yaml"), []byte(body), 0o600))
	}
	loadConfig = func(string) (*config.Config, error) {
		return &config.Config{ModulePaths: []string{root}, Fetch: config.LoadFetchSettings()}, nil
	}
	return root
}

type fakeStore struct {
	objects map[string][]byte
}

func (f *fakeStore) GetObject(_ context.Context, _, key string) ([]byte, error) {
	if data, ok := f.objects[key]; ok {
		return data, nil
	}
	return nil, &types.NoSuchKey{}
}

func (f *fakeStore) ListObjects(_ context.Context, _, _ string) ([]string, error) {
	var keys []string
	for k := range f.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ source.ObjectStore = (*fakeStore)(nil)
