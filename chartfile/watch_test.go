package chartfile_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ludokit/statetree/chartfile"
)

func TestWatcherReportsChartChanges(t *testing.T) {
	dir := t.TempDir()

	w, err := chartfile.NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	chart := filepath.Join(dir, "player.yaml")
	require.NoError(t, os.WriteFile(chart, []byte("initial: Idle\nstates:\n  - name: Idle\n"), 0o644))

	select {
	case got := <-w.Events:
		require.Equal(t, chart, got)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for chart change event")
	}
}

func TestWatcherIgnoresNonChartFiles(t *testing.T) {
	dir := t.TempDir()

	w, err := chartfile.NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case got, ok := <-w.Events:
		if ok {
			t.Fatalf("unexpected event for %q", got)
		}
	case <-time.After(250 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := chartfile.NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
