package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/errgroup"

	"duit/internal/logging"
)

// Status is the outcome of a persistence call.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result reports how a Save, Load or Clear ended. Err is set only when Failed.
type Result struct {
	Status Status
	Err    error
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Status == StatusOK }

// Found reports a present value, folding NotFound and Failed into "absent".
func (r Result) Found() bool { return r.Status == StatusOK }

// Failed reports whether the backend or codec failed.
func (r Result) Failed() bool { return r.Status == StatusFailed }

func failed(err error) Result { return Result{Status: StatusFailed, Err: err} }

// Adapter JSON-encodes values into a Store and never returns raw errors.
type Adapter struct {
	store Store
}

// NewAdapter wraps store.
func NewAdapter(store Store) *Adapter {
	return &Adapter{store: store}
}

// Store returns the wrapped backend.
func (a *Adapter) Store() Store {
	return a.store
}

// Save serializes value and writes it under key. Failures are logged.
func (a *Adapter) Save(ctx context.Context, key string, value any) Result {
	data, err := json.Marshal(value)
	if err != nil {
		logging.StoreError("Error saving %s: %v", key, err)
		return failed(fmt.Errorf("encode %s: %w", key, err))
	}
	if err := a.store.Set(ctx, key, string(data)); err != nil {
		logging.StoreError("Error saving %s: %v", key, err)
		return failed(err)
	}
	logging.StoreDebug("Saved %s (%d bytes)", key, len(data))
	return Result{Status: StatusOK}
}

// Load reads key and decodes it into dst, which must be a pointer.
// dst is left untouched unless the result is OK.
func (a *Adapter) Load(ctx context.Context, key string, dst any) Result {
	raw, err := a.store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Result{Status: StatusNotFound}
	}
	if err != nil {
		logging.StoreError("Error loading %s: %v", key, err)
		return failed(err)
	}
	target := reflect.ValueOf(dst)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return failed(fmt.Errorf("decode %s: destination must be a non-nil pointer, got %T", key, dst))
	}
	// Decode into a scratch value so a partial decode never reaches dst.
	fresh := reflect.New(target.Elem().Type())
	if err := json.Unmarshal([]byte(raw), fresh.Interface()); err != nil {
		logging.StoreError("Error loading %s: %v", key, err)
		return failed(fmt.Errorf("decode %s: %w", key, err))
	}
	target.Elem().Set(fresh.Elem())
	return Result{Status: StatusOK}
}

// Clear wipes every key in the store.
func (a *Adapter) Clear(ctx context.Context) Result {
	if err := a.store.Clear(ctx); err != nil {
		logging.StoreError("Error clearing store: %v", err)
		return failed(err)
	}
	logging.Store("Store cleared")
	return Result{Status: StatusOK}
}

// Snapshot reads keys concurrently and returns the present ones as raw JSON.
// Values that are not valid JSON are returned as JSON strings.
func (a *Adapter) Snapshot(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	timer := logging.StartTimer(logging.CategoryStore, "snapshot")
	defer timer.Stop()

	var (
		mu  sync.Mutex
		out = make(map[string]json.RawMessage, len(keys))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		key := key
		g.Go(func() error {
			raw, err := a.store.Get(gctx, key)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			value := json.RawMessage(raw)
			if !json.Valid(value) {
				quoted, err := json.Marshal(raw)
				if err != nil {
					return fmt.Errorf("encode %s: %w", key, err)
				}
				value = quoted
			}
			mu.Lock()
			out[key] = value
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logging.StoreError("Snapshot failed: %v", err)
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return out, nil
}
