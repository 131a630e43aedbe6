package home

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"duit/internal/logging"
	"duit/internal/storage"
)

// Backup is the exported file layout.
type Backup struct {
	App        string                     `json:"app"`
	ExportedAt string                     `json:"exportedAt"`
	Data       map[string]json.RawMessage `json:"data"`
}

// BackupPath returns <dir>/backups/duit-backup-<timestamp>.json.
func BackupPath(dir string, now time.Time) string {
	return filepath.Join(dir, "backups", "duit-backup-"+now.Format("20060102-150405")+".json")
}

// WriteBackup snapshots every Duit key and writes it to path as indented JSON.
func WriteBackup(ctx context.Context, adapter *storage.Adapter, path string, now time.Time) (*Backup, error) {
	timer := logging.StartTimer(logging.CategoryHome, "backup")
	defer timer.StopWithThreshold(2 * time.Second)

	data, err := adapter.Snapshot(ctx, storage.AllKeys...)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot store: %w", err)
	}

	b := &Backup{
		App:        "duit",
		ExportedAt: now.UTC().Format(time.RFC3339),
		Data:       data,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return nil, fmt.Errorf("failed to write backup: %w", err)
	}

	logging.Home("Backup written to %s (%d keys)", path, len(data))
	return b, nil
}
