package entry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duit/internal/setup"
	"duit/internal/storage"
)

// countingStore counts Get calls and can be told to fail.
type countingStore struct {
	*storage.MemoryStore
	gets int
	err  error
}

func (c *countingStore) Get(ctx context.Context, key string) (string, error) {
	c.gets++
	if c.err != nil {
		return "", c.err
	}
	return c.MemoryStore.Get(ctx, key)
}

func newStore() *countingStore {
	return &countingStore{MemoryStore: storage.NewMemoryStore()}
}

func TestResolve_FreshInstall(t *testing.T) {
	r := NewResolver(storage.NewAdapter(newStore()))
	assert.Equal(t, Welcome, r.Resolve(context.Background()))
}

func TestResolve_PersistedProfile(t *testing.T) {
	ctx := context.Background()
	adapter := storage.NewAdapter(newStore())
	require.True(t, SaveProfile(ctx, adapter, setup.Profile{
		Goal: setup.GoalFitness, Tone: setup.ToneAggressive, SetupComplete: true,
	}).OK())

	got := NewResolver(adapter).Resolve(ctx)
	want := Destination{
		Step: setup.StepMain,
		Bag:  setup.Bag{Goal: setup.GoalFitness, Tone: setup.ToneAggressive},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("destination mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_IncompleteProfile(t *testing.T) {
	ctx := context.Background()
	adapter := storage.NewAdapter(newStore())
	SaveProfile(ctx, adapter, setup.Profile{Goal: setup.GoalStudy, Tone: setup.ToneFriendly})

	assert.Equal(t, Welcome, NewResolver(adapter).Resolve(ctx))
}

func TestResolve_LoadFailureIsNoProfile(t *testing.T) {
	s := newStore()
	s.err = errors.New("disk on fire")
	r := NewResolver(storage.NewAdapter(s))
	assert.Equal(t, Welcome, r.Resolve(context.Background()))
}

func TestResolve_CorruptProfile(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	require.NoError(t, s.Set(ctx, storage.KeyProfile, "{not json"))
	assert.Equal(t, Welcome, NewResolver(storage.NewAdapter(s)).Resolve(ctx))
}

func TestResolve_RunsOnce(t *testing.T) {
	ctx := context.Background()
	s := newStore()
	adapter := storage.NewAdapter(s)
	r := NewResolver(adapter)

	first := r.Resolve(ctx)
	// A profile written later must not change the memoized answer.
	SaveProfile(ctx, adapter, setup.Profile{Goal: setup.GoalStudy, Tone: setup.ToneFriendly, SetupComplete: true})
	second := r.Resolve(ctx)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, s.gets)
}
