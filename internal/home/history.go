package home

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"duit/internal/storage"
)

// MaxHistory caps the stored log; the oldest entries are dropped first.
const MaxHistory = 100

// Entry is one line in the activity log.
type Entry struct {
	ID     string `json:"id"`
	Time   string `json:"time"` // HH:MM
	Action string `json:"action"`
}

// SampleEntries is shown while nothing has been recorded.
func SampleEntries() []Entry {
	return []Entry{
		{ID: "1", Time: "08:30", Action: "Blocked Instagram"},
		{ID: "2", Time: "10:15", Action: "Dismissed reminder"},
		{ID: "3", Time: "12:00", Action: "Opened Duit from Shortcut"},
	}
}

// History reads and appends the activity log.
type History struct {
	adapter *storage.Adapter
	now     func() time.Time
	mu      sync.Mutex
}

// NewHistory returns a History backed by adapter.
func NewHistory(adapter *storage.Adapter) *History {
	return &History{adapter: adapter, now: time.Now}
}

// List returns the recorded entries, or the samples when there are none.
func (h *History) List(ctx context.Context) []Entry {
	entries := h.stored(ctx)
	if len(entries) == 0 {
		return SampleEntries()
	}
	return entries
}

func (h *History) stored(ctx context.Context) []Entry {
	var entries []Entry
	if res := h.adapter.Load(ctx, storage.KeyHistory, &entries); !res.Found() {
		return nil
	}
	return entries
}

// Record appends action stamped with the current time.
func (h *History) Record(ctx context.Context, action string) (Entry, storage.Result) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	e := Entry{
		ID:     uuid.NewString(),
		Time:   fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute()),
		Action: action,
	}

	entries := append(h.stored(ctx), e)
	if len(entries) > MaxHistory {
		entries = entries[len(entries)-MaxHistory:]
	}
	return e, h.adapter.Save(ctx, storage.KeyHistory, entries)
}
