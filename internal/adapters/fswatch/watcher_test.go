package fswatch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReportsDroppedCSV(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var got []string
	require.NoError(t, w.Watch(dir, func(path string) {
		mu.Lock()
		got = append(got, path)
		mu.Unlock()
	}))

	path := filepath.Join(dir, "posts.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 10*time.Second, 50*time.Millisecond)

	mu.Lock()
	assert.Equal(t, path, got[0])
	mu.Unlock()
}

func TestWatch_IgnoresUnsupportedAndHidden(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	calls := 0
	require.NoError(t, w.Watch(dir, func(string) {
		mu.Lock()
		calls++
		mu.Unlock()
	}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.csv"), []byte("a,b\n"), 0o644))

	time.Sleep(2 * time.Second)
	mu.Lock()
	assert.Zero(t, calls)
	mu.Unlock()
}

func TestWatch_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "drop")

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Watch(dir, func(string) {}))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
