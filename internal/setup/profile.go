// Package setup implements the Duit onboarding wizard as a pure state machine.
//
// The wizard is strictly linear:
//
//	Welcome → GoalSelection → ToneSelection → PermissionsIntro →
//	TestInteraction → SetupComplete → Main
//
// Each step carries an immutable Bag of the choices made so far. Advance
// returns the next State together with the side effects the caller must run,
// so nothing in this package touches storage or timers directly.
package setup

// Goal is the user's focus category.
type Goal string

const (
	GoalStudy      Goal = "study"
	GoalFitness    Goal = "fitness"
	GoalSideHustle Goal = "sideHustle"
)

// Goals returns every goal in display order.
func Goals() []Goal {
	return []Goal{GoalStudy, GoalFitness, GoalSideHustle}
}

// Valid reports whether g is a known goal.
func (g Goal) Valid() bool {
	switch g {
	case GoalStudy, GoalFitness, GoalSideHustle:
		return true
	}
	return false
}

// Label returns the display name.
func (g Goal) Label() string {
	switch g {
	case GoalStudy:
		return "Study"
	case GoalFitness:
		return "Fitness"
	case GoalSideHustle:
		return "Side Hustle"
	default:
		return string(g)
	}
}

// Tone is the motivational messaging style.
type Tone string

const (
	ToneFriendly   Tone = "friendly"
	ToneAggressive Tone = "aggressive"
)

// Tones returns every tone in display order.
func Tones() []Tone {
	return []Tone{ToneFriendly, ToneAggressive}
}

// Valid reports whether t is a known tone.
func (t Tone) Valid() bool {
	return t == ToneFriendly || t == ToneAggressive
}

// Label returns the display name.
func (t Tone) Label() string {
	switch t {
	case ToneFriendly:
		return "Friendly"
	case ToneAggressive:
		return "Aggressive"
	default:
		return string(t)
	}
}

// Description is the one-line blurb shown under the tone option.
func (t Tone) Description() string {
	switch t {
	case ToneFriendly:
		return "Gentle reminders and positive reinforcement"
	case ToneAggressive:
		return "Direct, no-nonsense motivation to push harder"
	default:
		return ""
	}
}

// Profile is the persisted result of the wizard. Always written whole.
type Profile struct {
	Goal          Goal `json:"goal"`
	Tone          Tone `json:"tone"`
	SetupComplete bool `json:"setupComplete"`
}

// Bag returns the navigation parameters carried by the profile.
func (p Profile) Bag() Bag {
	return Bag{Goal: p.Goal, Tone: p.Tone}
}

// Bag is the parameter set threaded through the wizard. It is a value type;
// the With* methods return modified copies.
type Bag struct {
	Goal Goal `json:"goal,omitempty"`
	Tone Tone `json:"tone,omitempty"`
}

// WithGoal returns a copy of b with the goal set.
func (b Bag) WithGoal(g Goal) Bag {
	b.Goal = g
	return b
}

// WithTone returns a copy of b with the tone set.
func (b Bag) WithTone(t Tone) Bag {
	b.Tone = t
	return b
}

// HasGoal reports whether a goal has been chosen.
func (b Bag) HasGoal() bool { return b.Goal != "" }

// HasTone reports whether a tone has been chosen.
func (b Bag) HasTone() bool { return b.Tone != "" }

// Complete reports whether both choices are present.
func (b Bag) Complete() bool { return b.HasGoal() && b.HasTone() }

// Profile builds the completed profile for this bag.
func (b Bag) Profile() Profile {
	return Profile{Goal: b.Goal, Tone: b.Tone, SetupComplete: true}
}
