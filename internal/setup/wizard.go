package setup

import (
	"errors"
	"fmt"

	"duit/internal/logging"
)

var (
	// ErrMissingParameter is returned when a step is entered without the
	// choices its predecessors should have supplied.
	ErrMissingParameter = errors.New("setup: missing wizard parameter")

	// ErrNotReady is returned by Advance when the forward action is disabled.
	ErrNotReady = errors.New("setup: step not ready to advance")
)

// Step is a wizard screen.
type Step int

const (
	StepWelcome          Step = iota // Intro, unconditional Next
	StepGoalSelection                // Pick a goal
	StepToneSelection                // Pick a tone (needs goal)
	StepPermissionsIntro             // Shortcut explainer
	StepTestInteraction              // Simulated check-in
	StepSetupComplete                // Persist and hand off
	StepMain                         // Terminal
)

var stepNames = [...]string{
	StepWelcome:          "Welcome",
	StepGoalSelection:    "GoalSelection",
	StepToneSelection:    "ToneSelection",
	StepPermissionsIntro: "PermissionsIntro",
	StepTestInteraction:  "TestInteraction",
	StepSetupComplete:    "SetupComplete",
	StepMain:             "Main",
}

func (s Step) String() string {
	if s >= 0 && int(s) < len(stepNames) {
		return stepNames[s]
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// requiresGoal reports whether the step cannot be entered without a goal.
func (s Step) requiresGoal() bool {
	return s >= StepToneSelection && s <= StepSetupComplete
}

// requiresTone reports whether the step cannot be entered without a tone.
func (s Step) requiresTone() bool {
	return s >= StepPermissionsIntro && s <= StepSetupComplete
}

// Phase tracks the TestInteraction pending operation.
type Phase int

const (
	PhaseLoading  Phase = iota // loading indicator visible
	PhaseWaiting               // indicator gone, message not yet shown
	PhaseRevealed              // message shown, Finish enabled
)

// State is one wizard screen plus its local selection. It is a value type.
type State struct {
	step  Step
	bag   Bag
	goal  Goal  // GoalSelection local selection
	tone  Tone  // ToneSelection local selection
	phase Phase // TestInteraction only
}

// Start returns the Welcome state with an empty bag.
func Start() State {
	return State{step: StepWelcome}
}

// Enter builds the state for step with bag, rejecting bags that lack the
// fields the step requires. Main accepts an incomplete bag; the caller is
// expected to recover the profile from storage (see NeedsProfile).
func Enter(step Step, bag Bag) (State, error) {
	if step < StepWelcome || step > StepMain {
		return State{}, fmt.Errorf("setup: unknown step %d", int(step))
	}
	if step.requiresGoal() && !bag.HasGoal() {
		return State{}, fmt.Errorf("%w: %s requires goal", ErrMissingParameter, step)
	}
	if step.requiresTone() && !bag.HasTone() {
		return State{}, fmt.Errorf("%w: %s requires tone", ErrMissingParameter, step)
	}
	return State{step: step, bag: bag}, nil
}

// Step returns the current screen.
func (s State) Step() Step { return s.step }

// Bag returns the parameters carried into this screen.
func (s State) Bag() Bag { return s.bag }

// Goal returns the GoalSelection local selection, or "" if unset.
func (s State) Goal() Goal { return s.goal }

// Tone returns the ToneSelection local selection, or "" if unset.
func (s State) Tone() Tone { return s.tone }

// Phase returns the TestInteraction progress.
func (s State) Phase() Phase { return s.phase }

// Message is the revealed check-in text, or "" before reveal.
func (s State) Message() string {
	if s.step != StepTestInteraction || s.phase != PhaseRevealed {
		return ""
	}
	return CheckInMessage(s.bag.Goal, s.bag.Tone)
}

// NeedsProfile reports a Main state entered without parameters.
func (s State) NeedsProfile() bool {
	return s.step == StepMain && !s.bag.Complete()
}

// Select sets the local selection on GoalSelection or ToneSelection.
// Unknown choices and other steps leave the state unchanged.
func (s State) Select(choice string) State {
	switch s.step {
	case StepGoalSelection:
		if g := Goal(choice); g.Valid() {
			s.goal = g
		}
	case StepToneSelection:
		if t := Tone(choice); t.Valid() {
			s.tone = t
		}
	}
	return s
}

// Loaded ends the loading indicator on TestInteraction.
func (s State) Loaded() State {
	if s.step == StepTestInteraction && s.phase == PhaseLoading {
		s.phase = PhaseWaiting
	}
	return s
}

// Reveal shows the TestInteraction message and enables Finish.
func (s State) Reveal() State {
	if s.step == StepTestInteraction {
		s.phase = PhaseRevealed
	}
	return s
}

// CanAdvance reports whether the forward action is enabled.
func (s State) CanAdvance() bool {
	switch s.step {
	case StepWelcome, StepPermissionsIntro, StepSetupComplete:
		return true
	case StepGoalSelection:
		return s.goal != ""
	case StepToneSelection:
		return s.tone != ""
	case StepTestInteraction:
		return s.phase == PhaseRevealed
	default:
		return false
	}
}

// Effect is a side effect the caller must run after a transition, in order.
type Effect interface {
	isEffect()
}

// SaveProfile persists Profile. Navigation must wait for it to finish.
type SaveProfile struct {
	Profile Profile
}

// Navigate moves to To carrying Bag.
type Navigate struct {
	To  Step
	Bag Bag
}

func (SaveProfile) isEffect() {}
func (Navigate) isEffect()    {}

// Advance performs the forward action of s.
func Advance(s State) (State, []Effect, error) {
	if !s.CanAdvance() {
		return s, nil, fmt.Errorf("%w: %s", ErrNotReady, s.step)
	}

	var (
		next    = s.step + 1
		bag     = s.bag
		effects []Effect
	)
	switch s.step {
	case StepGoalSelection:
		bag = bag.WithGoal(s.goal)
	case StepToneSelection:
		bag = bag.WithTone(s.tone)
	case StepSetupComplete:
		effects = append(effects, SaveProfile{Profile: bag.Profile()})
	}

	ns, err := Enter(next, bag)
	if err != nil {
		return s, nil, err
	}
	effects = append(effects, Navigate{To: next, Bag: bag})

	logging.Wizard("%s -> %s (goal=%q tone=%q)", s.step, next, bag.Goal, bag.Tone)
	return ns, effects, nil
}
