package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	t.Setenv("DUIT_STORAGE", "")
	t.Setenv("DUIT_DATA_DIR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interaction:\n  loading_delay: 2000ms\n"), 0644))

	var (
		mu   sync.Mutex
		seen []*Config
	)
	w, err := NewWatcher(path, func(c *Config) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, c)
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("interaction:\n  loading_delay: 10ms\n"), 0644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1].GetLoadingDelay() == 10*time.Millisecond
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcherRejectsInvalidConfig(t *testing.T) {
	t.Setenv("DUIT_STORAGE", "")
	t.Setenv("DUIT_DATA_DIR", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: sqlite\n"), 0644))

	calls := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { calls <- c })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: floppy\n"), 0644))

	select {
	case c := <-calls:
		t.Fatalf("unexpected reload with backend %q", c.Storage.Backend)
	case <-time.After(700 * time.Millisecond):
	}
}

func TestWatcherStopWithoutStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.yaml"), nil)
	require.NoError(t, err)
	assert.NotPanics(t, w.Stop)
}
