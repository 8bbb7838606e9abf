package plugin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfUpdaterRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("-- updated entry point\n"))
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "vis-plug")
	require.NoError(t, os.WriteFile(target, []byte("-- old entry point\n"), 0o755))

	updater := NewSelfUpdater(server.Client(), server.URL, target)
	require.NoError(t, updater.Run(context.Background()))

	replaced, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "-- updated entry point\n", string(replaced))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	}
}

func TestSelfUpdaterRunTargetMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("-- entry point\n"))
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "vis-plug")

	updater := NewSelfUpdater(server.Client(), server.URL, target)
	require.NoError(t, updater.Run(context.Background()))

	replaced, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "-- entry point\n", string(replaced))
}

func TestSelfUpdaterRunHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "vis-plug")
	require.NoError(t, os.WriteFile(target, []byte("-- old entry point\n"), 0o755))

	updater := NewSelfUpdater(server.Client(), server.URL, target)
	err := updater.Run(context.Background())
	require.Error(t, err)

	var pluginErr *Error
	require.ErrorAs(t, err, &pluginErr)
	assert.Equal(t, ErrCodeSelfUpdateFailed, pluginErr.Code)
	assert.Equal(t, http.StatusNotFound, pluginErr.Context["status"])

	// the existing artifact survives a failed fetch
	kept, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, "-- old entry point\n", string(kept))
}

func TestSelfUpdaterRunEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	target := filepath.Join(t.TempDir(), "vis-plug")
	require.NoError(t, os.WriteFile(target, []byte("-- old entry point\n"), 0o755))

	updater := NewSelfUpdater(server.Client(), server.URL, target)
	err := updater.Run(context.Background())
	require.Error(t, err)

	kept, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, "-- old entry point\n", string(kept))
}

func TestSelfUpdaterRunMissingConfig(t *testing.T) {
	err := NewSelfUpdater(nil, "", "/tmp/vis-plug").Run(context.Background())
	require.Error(t, err)

	err = NewSelfUpdater(nil, "https://example.org/vis-plug", "").Run(context.Background())
	require.Error(t, err)
}
