package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"photocull/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.AddDirectory(dir))
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(100 * time.Millisecond)
	return w
}

func expectRemoval(t *testing.T, w *Watcher, path string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case r, ok := <-w.Removals():
			require.True(t, ok, "removal channel closed unexpectedly")
			if r.Path == path {
				return
			}
		case <-deadline:
			t.Fatalf("timeout waiting for removal of %s", path)
		}
	}
}

func TestWatcherReportsDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_0001.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w := startWatcher(t, dir)
	require.NoError(t, os.Remove(path))
	expectRemoval(t, w, path)
}

func TestWatcherReportsRenameAway(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	path := filepath.Join(dir, "IMG_0002.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w := startWatcher(t, dir)
	require.NoError(t, os.Rename(path, filepath.Join(other, "IMG_0002.jpg")))
	expectRemoval(t, w, path)
}

func TestWatcherIgnoresCreate(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.jpg"), []byte("x"), 0644))

	select {
	case r := <-w.Removals():
		t.Fatalf("unexpected removal %+v", r)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherLifecycle(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	require.NoError(t, err)

	require.NoError(t, w.AddDirectory(dir))
	require.NoError(t, w.AddDirectory(dir))
	assert.Equal(t, []string{dir}, w.directories, "duplicates are ignored")

	require.NoError(t, w.Start())
	assert.True(t, w.running)
	assert.Error(t, w.Start())

	w.Stop()
	w.Stop()
	assert.False(t, w.running)
	_, ok := <-w.Removals()
	assert.False(t, ok, "channel closes after stop")
	assert.Error(t, w.Start())
}

func TestAddDirectoryErrors(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	err = w.AddDirectory(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsFileNotFound(err))

	file := filepath.Join(t.TempDir(), "f.jpg")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Equal(t, errors.NotADirectory, errors.KindOf(w.AddDirectory(file)))
}
