// Package entry decides where the app opens: the wizard or the home screen.
package entry

import (
	"context"
	"sync"

	"duit/internal/logging"
	"duit/internal/setup"
	"duit/internal/storage"
)

// Destination is the first screen and the parameters it starts with.
type Destination struct {
	Step setup.Step
	Bag  setup.Bag
}

// Welcome is the fresh-install destination.
var Welcome = Destination{Step: setup.StepWelcome}

// Resolver loads the persisted profile once per process.
type Resolver struct {
	adapter *storage.Adapter

	once sync.Once
	dest Destination
}

// NewResolver returns a Resolver reading through adapter.
func NewResolver(adapter *storage.Adapter) *Resolver {
	return &Resolver{adapter: adapter}
}

// Resolve returns Main with the stored goal and tone when a completed profile
// exists, and Welcome otherwise. Load failures count as "no profile". Only the
// first call touches storage; later calls return the same answer.
func (r *Resolver) Resolve(ctx context.Context) Destination {
	r.once.Do(func() {
		r.dest = r.resolve(ctx)
	})
	return r.dest
}

func (r *Resolver) resolve(ctx context.Context) Destination {
	timer := logging.StartTimer(logging.CategoryEntry, "resolve")
	defer timer.Stop()

	profile, res := LoadProfile(ctx, r.adapter)
	if !res.Found() {
		logging.Entry("No profile (%s), starting setup", res.Status)
		return Welcome
	}
	if !profile.SetupComplete || !profile.Bag().Complete() {
		logging.Entry("Profile incomplete, starting setup")
		return Welcome
	}

	logging.Entry("Resuming at Main (goal=%s tone=%s)", profile.Goal, profile.Tone)
	return Destination{Step: setup.StepMain, Bag: profile.Bag()}
}

// LoadProfile reads the persisted setup profile.
func LoadProfile(ctx context.Context, adapter *storage.Adapter) (setup.Profile, storage.Result) {
	var p setup.Profile
	res := adapter.Load(ctx, storage.KeyProfile, &p)
	if !res.Found() {
		return setup.Profile{}, res
	}
	return p, res
}

// SaveProfile overwrites the persisted setup profile.
func SaveProfile(ctx context.Context, adapter *storage.Adapter, p setup.Profile) storage.Result {
	return adapter.Save(ctx, storage.KeyProfile, p)
}
