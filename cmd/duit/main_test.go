package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"duit/internal/config"
	"duit/internal/entry"
	"duit/internal/home"
	"duit/internal/setup"
	"duit/internal/storage"
)

func init() {
	// Use a no-op logger for tests
	logger = zap.NewNop()
}

// useTempDataDir points the global flags at a fresh data directory.
func useTempDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DUIT_DATA_DIR", "")
	t.Setenv("DUIT_STORAGE", "")
	dataDir = dir
	configPath = ""
	resetYes = false
	backupOut = ""
	verbose = false
	t.Cleanup(func() {
		dataDir = ""
		resetYes = false
		backupOut = ""
		logger = zap.NewNop()
	})
	return dir
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// seed writes a completed profile and a blocked count into the temp data dir.
func seed(t *testing.T, blocked int) {
	t.Helper()
	ctx := context.Background()
	e, err := openEnv(ctx)
	require.NoError(t, err)
	defer e.Close()

	p := setup.Profile{Goal: setup.GoalFitness, Tone: setup.ToneAggressive, SetupComplete: true}
	require.True(t, entry.SaveProfile(ctx, e.adapter, p).OK())
	require.True(t, e.adapter.Save(ctx, storage.KeyBlockedCount, blocked).OK())
}

func TestStatus(t *testing.T) {
	t.Run("fresh install", func(t *testing.T) {
		useTempDataDir(t)
		out, err := execute(t, "", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "not completed")
		assert.Contains(t, out, "Blocked apps opened: 0")
		assert.Contains(t, out, "Reminder: 20:00")
	})

	t.Run("completed profile", func(t *testing.T) {
		useTempDataDir(t)
		seed(t, 4)
		out, err := execute(t, "", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "Setup:    complete")
		assert.Contains(t, out, "Goal:     Fitness")
		assert.Contains(t, out, "Blocked apps opened: 4")
	})
}

func TestReset(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		useTempDataDir(t)
		seed(t, 2)
		out, err := execute(t, "n\n", "reset")
		require.NoError(t, err)
		assert.Contains(t, out, "Reset cancelled.")

		out, err = execute(t, "", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "Blocked apps opened: 2")
	})

	t.Run("confirmed with flag", func(t *testing.T) {
		useTempDataDir(t)
		seed(t, 2)
		out, err := execute(t, "", "reset", "--yes")
		require.NoError(t, err)
		assert.Contains(t, out, home.ResetSuccess)

		resetYes = false
		out, err = execute(t, "", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "not completed")
		assert.Contains(t, out, "Blocked apps opened: 0")
	})
}

func TestBackup(t *testing.T) {
	dir := useTempDataDir(t)
	seed(t, 7)

	path := filepath.Join(dir, "export.json")
	out, err := execute(t, "", "backup", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, home.BackupSuccess)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var b home.Backup
	require.NoError(t, json.Unmarshal(raw, &b))
	assert.JSONEq(t, "7", string(b.Data[storage.KeyBlockedCount]))
	assert.Contains(t, b.Data, storage.KeyProfile)
}

func TestHistoryShowsSamplesWhenEmpty(t *testing.T) {
	useTempDataDir(t)
	out, err := execute(t, "", "history")
	require.NoError(t, err)
	for _, e := range home.SampleEntries() {
		assert.Contains(t, out, e.Action)
	}
}

func TestInvalidStorageBackend(t *testing.T) {
	useTempDataDir(t)
	t.Setenv("DUIT_STORAGE", "floppy")
	_, err := execute(t, "", "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestReloadHelpersFollowConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	dark := true
	cfg.UI.DarkMode = &dark
	assert.True(t, stylesFor(cfg, false).Theme.IsDark)

	cfg.UI.DarkMode = nil
	assert.False(t, stylesFor(cfg, false).Theme.IsDark)

	cfg.Interaction.LoadingDelay = "0ms"
	cfg.Interaction.RevealDelay = "0ms"
	op := interactionFor(cfg)()
	assert.NoError(t, op.Await(context.Background()))
}
