package home

import (
	"context"
	"fmt"
	"math/rand/v2"

	"duit/internal/logging"
	"duit/internal/setup"
	"duit/internal/storage"
)

// Quotes are the motivational lines shown on the home screen.
var Quotes = []string{
	"Small progress is still progress!",
	"You're building better habits, one day at a time",
	"Stay focused on your goals, future you will thank you",
	"Every time you resist, you grow stronger",
}

// Blocked-app confirmation copy.
const (
	BlockedAppTitle   = "Start Focus Timer"
	BlockedAppMessage = "The app will open after a 60-second mindfulness pause. Use this time to reflect on your goals."
	BlockedAppAction  = "Opened blocked app after mindfulness pause"
)

// UsageLevel classifies how close an app is to its limit.
type UsageLevel string

const (
	UsageOK       UsageLevel = "ok"
	UsageWarning  UsageLevel = "warning"
	UsageCritical UsageLevel = "critical"
)

// AppUsage is today's minutes against the daily limit.
type AppUsage struct {
	Name  string
	Used  int
	Limit int
}

// Percent returns Used as a percentage of Limit. A zero limit yields 0.
func (a AppUsage) Percent() float64 {
	if a.Limit <= 0 {
		return 0
	}
	return float64(a.Used*100) / float64(a.Limit)
}

// Ratio returns Percent as a 0..1 fraction clamped for progress bars.
func (a AppUsage) Ratio() float64 {
	r := a.Percent() / 100
	if r > 1 {
		return 1
	}
	return r
}

// Level is critical above 90%, warning above 70%.
func (a AppUsage) Level() UsageLevel {
	switch p := a.Percent(); {
	case p > 90:
		return UsageCritical
	case p > 70:
		return UsageWarning
	default:
		return UsageOK
	}
}

// CheckIn is the next scheduled accountability prompt.
type CheckIn struct {
	Time string
	Note string
}

// Streak is the consecutive-day record persisted under KeyStreaks.
type Streak struct {
	Days      int    `json:"days"`
	BonusNote string `json:"bonusNote"`
}

// DefaultStreak is shown until a streak has been stored.
func DefaultStreak() Streak {
	return Streak{Days: 5, BonusNote: "+100 bonus points at 7 days!"}
}

// LoadStreak reads the stored streak, falling back to DefaultStreak.
func LoadStreak(ctx context.Context, adapter *storage.Adapter) Streak {
	s := DefaultStreak()
	var stored Streak
	if res := adapter.Load(ctx, storage.KeyStreaks, &stored); res.Found() {
		s.Days = stored.Days
		if stored.BonusNote != "" {
			s.BonusNote = stored.BonusNote
		}
	}
	return s
}

// Dashboard is everything the Main screen shows.
type Dashboard struct {
	Bag           setup.Bag
	DailyProgress int // percent
	PointsEarned  int
	Usage         []AppUsage
	CheckIn       CheckIn
	Streak        Streak
	Quote         string
}

// NewDashboard builds the home view for bag. pick chooses the quote index
// from n choices; nil picks at random.
func NewDashboard(bag setup.Bag, streak Streak, pick func(n int) int) Dashboard {
	if pick == nil {
		pick = rand.IntN
	}
	return Dashboard{
		Bag:           bag,
		DailyProgress: 65,
		Usage: []AppUsage{
			{Name: "Instagram", Used: 25, Limit: 60},
			{Name: "TikTok", Used: 15, Limit: 30},
			{Name: "YouTube", Used: 45, Limit: 90},
		},
		CheckIn: CheckIn{Time: "6:15 PM", Note: "AI will help you review your progress"},
		Streak:  streak,
		Quote:   Quotes[pick(len(Quotes))%len(Quotes)],
	}
}

// PointsBonus is the bonus caption, empty until points are earned.
func (d Dashboard) PointsBonus() string {
	if d.PointsEarned > 0 {
		return "+50 for early quit!"
	}
	return ""
}

// StreakLabel renders the streak headline.
func (d Dashboard) StreakLabel() string {
	if d.Streak.Days == 1 {
		return "1 day 🔥"
	}
	return fmt.Sprintf("%d days 🔥", d.Streak.Days)
}

// ConfirmBlockedApp runs the "Open Blocked App with Delay" confirmation:
// the counter goes up by one and the action is logged to history.
// The returned result is the counter's; a history failure is only logged.
func ConfirmBlockedApp(ctx context.Context, counter *Counter, history *History) (int, storage.Result) {
	n, res := counter.Increment(ctx)
	if _, hres := history.Record(ctx, BlockedAppAction); hres.Failed() {
		logging.HomeWarn("Blocked app confirmed but history not recorded: %v", hres.Err)
	}
	return n, res
}

// EditGoal re-enters the wizard at GoalSelection with an empty bag.
func EditGoal() setup.State {
	s, _ := setup.Enter(setup.StepGoalSelection, setup.Bag{})
	return s
}
