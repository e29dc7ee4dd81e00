package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherTriggersRebuildOnWrite(t *testing.T) {
	dir := t.TempDir()

	rebuilt := make(chan struct{}, 1)
	w, err := New(func() error {
		select {
		case rebuilt <- struct{}{}:
		default:
		}
		return nil
	}, Options{DebounceMs: 50}, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "button.tsx"), []byte("export const Button = () => null"), 0o644))

	select {
	case <-rebuilt:
	case <-time.After(3 * time.Second):
		t.Fatal("rebuild was not triggered")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()

	rebuilds := make(chan struct{}, 16)
	w, err := New(func() error {
		rebuilds <- struct{}{}
		return nil
	}, Options{DebounceMs: 150}, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start(dir))

	path := filepath.Join(dir, "card.tsx")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("export const Card = () => null"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-rebuilds:
	case <-time.After(3 * time.Second):
		t.Fatal("rebuild was not triggered")
	}
	// the burst collapses; no second rebuild follows
	select {
	case <-rebuilds:
		t.Fatal("debounce did not collapse the burst")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherIgnoresNonSourceFiles(t *testing.T) {
	dir := t.TempDir()

	rebuilds := make(chan struct{}, 1)
	w, err := New(func() error {
		rebuilds <- struct{}{}
		return nil
	}, Options{DebounceMs: 50}, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, w.Start(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("# notes"), 0o644))

	select {
	case <-rebuilds:
		t.Fatal("non-source file triggered a rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := New(func() error { return nil }, DefaultOptions(), nil)
	require.NoError(t, err)
	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
	assert.Error(t, w.Start(t.TempDir()))
}

func TestShouldIgnore(t *testing.T) {
	w, err := New(func() error { return nil }, Options{IgnoreBasenames: []string{"*.gen.tsx"}}, nil)
	require.NoError(t, err)
	defer w.Stop()

	assert.True(t, w.shouldIgnore("/p/node_modules"))
	assert.True(t, w.shouldIgnore("/p/dist"))
	assert.True(t, w.shouldIgnore("/p/api.gen.tsx"))
	assert.False(t, w.shouldIgnore("/p/src"))
}
