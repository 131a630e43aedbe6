package home

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"duit/internal/logging"
	"duit/internal/setup"
	"duit/internal/storage"
)

// MaxLimitDigits bounds the minutes field.
const MaxLimitDigits = 3

// Settings screen copy.
const (
	ResetConfirmTitle   = "Reset Progress"
	ResetConfirmMessage = "Are you sure? This will delete all your progress and cannot be undone."
	BackupSuccess       = "Data backed up successfully!"
	BackupFailure       = "Failed to backup data"
	ResetSuccess        = "All progress has been reset"
	ResetFailure        = "Failed to reset progress"
)

var reminderTimeRE = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// AppLimit is a per-app daily allowance in minutes.
type AppLimit struct {
	App     string `json:"app"`
	Minutes int    `json:"minutes"`
}

// Settings is the document stored under KeySettings.
type Settings struct {
	AppLimits     []AppLimit `json:"appLimits"`
	DailyReminder bool       `json:"dailyReminder"`
	ReminderTime  string     `json:"reminderTime"`
	StreakWarning bool       `json:"streakWarning"`
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() Settings {
	return Settings{
		AppLimits: []AppLimit{
			{App: "Instagram", Minutes: 30},
			{App: "TikTok", Minutes: 30},
			{App: "YouTube", Minutes: 45},
			{App: "Twitter", Minutes: 20},
		},
		DailyReminder: true,
		ReminderTime:  "20:00",
		StreakWarning: true,
	}
}

// ParseLimit turns the minutes field into an int using its leading digits,
// at most MaxLimitDigits of them. Input without leading digits is 0.
func ParseLimit(input string) int {
	input = strings.TrimSpace(input)
	if len(input) > MaxLimitDigits {
		input = input[:MaxLimitDigits]
	}
	end := 0
	for end < len(input) && input[end] >= '0' && input[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(input[:end])
	if err != nil {
		return 0
	}
	return n
}

// ValidReminderTime reports whether s is a 24h HH:MM time.
func ValidReminderTime(s string) bool {
	return reminderTimeRE.MatchString(s)
}

// WithLimit returns a copy with app's limit parsed from input.
func (s Settings) WithLimit(app, input string) Settings {
	limits := make([]AppLimit, len(s.AppLimits))
	copy(limits, s.AppLimits)
	for i := range limits {
		if limits[i].App == app {
			limits[i].Minutes = ParseLimit(input)
		}
	}
	s.AppLimits = limits
	return s
}

// WithReminderTime returns a copy with the reminder time set, or s unchanged
// with ok=false when the time is invalid.
func (s Settings) WithReminderTime(t string) (Settings, bool) {
	t = strings.TrimSpace(t)
	if !ValidReminderTime(t) {
		return s, false
	}
	s.ReminderTime = t
	return s, true
}

// SettingsManager loads and saves Settings.
type SettingsManager struct {
	adapter *storage.Adapter

	mu       sync.RWMutex
	settings *Settings
}

// NewSettingsManager returns a manager backed by adapter.
func NewSettingsManager(adapter *storage.Adapter) *SettingsManager {
	return &SettingsManager{adapter: adapter}
}

// Load reads settings, using defaults if none are stored or they are unreadable.
func (sm *SettingsManager) Load(ctx context.Context) Settings {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s := DefaultSettings()
	var stored Settings
	if res := sm.adapter.Load(ctx, storage.KeySettings, &stored); res.Found() {
		s = stored
		if !ValidReminderTime(s.ReminderTime) {
			logging.HomeWarn("Stored reminder time %q invalid, using default", s.ReminderTime)
			s.ReminderTime = DefaultSettings().ReminderTime
		}
	}
	sm.settings = &s
	return s
}

// Get returns the last loaded or saved settings (thread-safe).
func (sm *SettingsManager) Get() Settings {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.settings == nil {
		return DefaultSettings()
	}
	return *sm.settings
}

// Save persists s.
func (sm *SettingsManager) Save(ctx context.Context, s Settings) storage.Result {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.settings = &s
	return sm.adapter.Save(ctx, storage.KeySettings, s)
}

// UpdateGoal re-enters the wizard at GoalSelection.
func UpdateGoal() setup.State {
	return EditGoal()
}

// ChangeTone re-enters the wizard at ToneSelection keeping the current goal.
// The profile is rewritten when that wizard run finishes.
func ChangeTone(current setup.Bag) (setup.State, error) {
	return setup.Enter(setup.StepToneSelection, setup.Bag{Goal: current.Goal})
}

// Reset wipes all stored progress.
func Reset(ctx context.Context, adapter *storage.Adapter) storage.Result {
	logging.HomeWarn("Resetting all progress")
	return adapter.Clear(ctx)
}
