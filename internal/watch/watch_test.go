package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 10)

	w := New(dir, func(_ context.Context, path string) error {
		got <- path
		return nil
	}, WithDebounce(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "20240506_101112_PART1234(567).csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err := f.WriteString("1,2\n")
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	select {
	case p := <-got:
		assert.Equal(t, path, p)
	case <-time.After(3 * time.Second):
		t.Fatal("handler not called")
	}

	select {
	case p := <-got:
		t.Fatalf("unexpected second call for %s", p)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 1, w.Stats().Handled)
}

func TestRunFailsForMissingDir(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing"), func(context.Context, string) error { return nil })
	assert.Error(t, w.Run(context.Background()))
}

func TestSettledRespectsDebounce(t *testing.T) {
	w := New(".", nil, WithDebounce(time.Second))
	w.handleEvent(fsnotify.Event{Name: "a.CSV", Op: fsnotify.Create})
	w.handleEvent(fsnotify.Event{Name: "b.csv", Op: fsnotify.Write})
	w.handleEvent(fsnotify.Event{Name: "b.csv", Op: fsnotify.Remove})
	w.handleEvent(fsnotify.Event{Name: "c.xlsx", Op: fsnotify.Create})

	now := time.Now()
	assert.Empty(t, w.settled(now))
	assert.Equal(t, []string{"a.CSV"}, w.settled(now.Add(2*time.Second)))
	assert.Empty(t, w.settled(now.Add(3*time.Second)))
	assert.Equal(t, 2, w.Stats().Events)
}

func TestHandlerErrorsAreCounted(t *testing.T) {
	w := New(".", func(_ context.Context, path string) error {
		if path == "bad.csv" {
			return errors.New("unrecognized bend test CSV")
		}
		return nil
	})

	w.handle(context.Background(), "good.csv")
	w.handle(context.Background(), "bad.csv")
	w.handle(context.Background(), "other.csv")

	st := w.Stats()
	assert.Equal(t, 2, st.Handled)
	assert.Equal(t, 1, st.Errors)
}
