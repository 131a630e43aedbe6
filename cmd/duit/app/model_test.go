package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"duit/cmd/duit/ui"
	"duit/internal/home"
	"duit/internal/setup"
	"duit/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	t     *testing.T
	mem   *storage.MemoryStore
	model tea.Model
	dir   string
}

func newHarness(t *testing.T, interaction func() setup.Interaction) *harness {
	t.Helper()
	if interaction == nil {
		interaction = func() setup.Interaction { return setup.NewInteraction(0, 0) }
	}
	mem := storage.NewMemoryStore()
	dir := t.TempDir()
	m := New(Options{
		Adapter:     storage.NewAdapter(mem),
		Styles:      ui.NewStyles(ui.LightTheme()),
		Interaction: interaction,
		DataDir:     dir,
		Now:         func() time.Time { return time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC) },
		PickQuote:   func(int) int { return 0 },
	})
	return &harness{t: t, mem: mem, model: m, dir: dir}
}

// drain runs cmd and feeds every resulting app message back into the model.
// Spinner ticks and other framework messages are dropped.
func (h *harness) drain(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case nil, spinner.TickMsg, tea.QuitMsg:
		default:
			var next tea.Cmd
			h.model, next = h.model.Update(msg)
			queue = append(queue, next)
		}
	}
}

func (h *harness) start() {
	h.drain(h.model.Init())
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends keys and drains the resulting commands.
func (h *harness) press(keys ...string) {
	for _, k := range keys {
		var cmd tea.Cmd
		h.model, cmd = h.model.Update(keyMsg(k))
		h.drain(cmd)
	}
}

// type sends keys without running their commands (cursor blink would sleep).
func (h *harness) typeKeys(keys ...string) {
	for _, k := range keys {
		h.model, _ = h.model.Update(keyMsg(k))
	}
}

func (h *harness) m() Model {
	return h.model.(Model)
}

// view returns the rendered screen without styling escapes.
func (h *harness) view() string {
	return ansi.Strip(h.model.View())
}

func (h *harness) storeProfile(p setup.Profile) {
	h.t.Helper()
	require.True(h.t, storage.NewAdapter(h.mem).Save(context.Background(), storage.KeyProfile, p).OK())
}

func TestFreshInstallStartsWizard(t *testing.T) {
	h := newHarness(t, nil)
	assert.Contains(t, h.view(), "Loading...")

	h.start()
	assert.Equal(t, setup.StepWelcome, h.m().Step())
	assert.Contains(t, h.view(), "Welcome to Duit")
	assert.Contains(t, h.view(), "Start Setup")
}

func TestNextDisabledWithoutSelection(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	h.press("enter")
	require.Equal(t, setup.StepGoalSelection, h.m().Step())

	h.press("enter")
	assert.Equal(t, setup.StepGoalSelection, h.m().Step())
	assert.Contains(t, h.view(), "Choose an option first")

	h.press("2", "enter")
	assert.Equal(t, setup.StepToneSelection, h.m().Step())
	assert.Equal(t, setup.GoalFitness, h.m().wizard.Bag().Goal)
}

func TestWizardStudyFriendly(t *testing.T) {
	h := newHarness(t, nil)
	h.start()

	h.press("enter")          // Welcome
	h.press("space", "enter") // study
	assert.Contains(t, h.view(), "Choose your motivation style")
	h.press("space", "enter") // friendly
	assert.Contains(t, h.view(), "Enable Shortcuts")

	h.press("enter") // Continue; the zero-delay interaction resolves while draining
	require.Equal(t, setup.StepTestInteraction, h.m().Step())
	assert.Equal(t, setup.PhaseRevealed, h.m().wizard.Phase())
	assert.Contains(t, h.view(), "AI Assistant")
	assert.Contains(t, h.view(), setup.FriendlyMessage(setup.GoalStudy))

	h.press("enter")
	require.Equal(t, setup.StepSetupComplete, h.m().Step())
	assert.Contains(t, h.view(), setup.FriendlyCompletion)
	assert.Contains(t, h.view(), "Start Using Duit")

	h.press("enter")
	require.Equal(t, setup.StepMain, h.m().Step())
	assert.Equal(t, setup.Bag{Goal: setup.GoalStudy, Tone: setup.ToneFriendly}, h.m().wizard.Bag())

	raw, err := h.mem.Get(context.Background(), storage.KeyProfile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"goal":"study","tone":"friendly","setupComplete":true}`, raw)

	view := h.view()
	assert.Contains(t, view, "Study")
	assert.Contains(t, view, "Friendly")
	assert.Contains(t, view, home.Quotes[0])
}

func TestFinishDisabledUntilReveal(t *testing.T) {
	h := newHarness(t, func() setup.Interaction { return setup.NewInteraction(time.Hour, time.Hour) })
	h.start()
	h.press("enter", "space", "enter", "space", "enter")

	// Continue into TestInteraction but keep its pending command unexecuted.
	var pending tea.Cmd
	h.model, pending = h.model.Update(keyMsg("enter"))
	require.Equal(t, setup.StepTestInteraction, h.m().Step())

	h.typeKeys("enter")
	assert.Equal(t, setup.StepTestInteraction, h.m().Step(), "Finish must stay disabled while loading")
	assert.NotContains(t, h.view(), "AI Assistant")

	// Quitting tears the operation down; the held command returns promptly.
	h.model, _ = h.model.Update(keyMsg("ctrl+c"))
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, msg := range runBatch(pending) {
			if loaded, ok := msg.(interactionLoadedMsg); ok {
				assert.True(t, errors.Is(loaded.err, context.Canceled))
			}
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("pending operation was not cancelled")
	}
}

// runBatch executes cmd and returns the messages of a top-level batch,
// skipping spinner ticks.
func runBatch(cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if m := c(); m != nil {
			if _, tick := m.(spinner.TickMsg); !tick {
				out = append(out, m)
			}
		}
	}
	return out
}

func TestStaleInteractionMessagesIgnored(t *testing.T) {
	h := newHarness(t, func() setup.Interaction { return setup.NewInteraction(time.Hour, time.Hour) })
	h.start()
	h.press("enter", "space", "enter", "space", "enter")
	h.model, _ = h.model.Update(keyMsg("enter"))
	require.Equal(t, setup.StepTestInteraction, h.m().Step())

	h.model, _ = h.model.Update(interactionRevealedMsg{id: h.m().pendingID + 1})
	assert.Equal(t, setup.PhaseLoading, h.m().wizard.Phase())

	h.model, _ = h.model.Update(interactionLoadedMsg{id: h.m().pendingID, err: context.Canceled})
	assert.Equal(t, setup.PhaseLoading, h.m().wizard.Phase())

	h.model, _ = h.model.Update(keyMsg("ctrl+c"))
}

func TestAssistantHeaderShownWhileWaiting(t *testing.T) {
	h := newHarness(t, func() setup.Interaction { return setup.NewInteraction(time.Hour, time.Hour) })
	h.start()
	h.press("enter", "space", "enter", "space", "enter")
	h.model, _ = h.model.Update(keyMsg("enter"))
	require.Equal(t, setup.StepTestInteraction, h.m().Step())

	// Loading finished; the reveal command is held back.
	h.model, _ = h.model.Update(interactionLoadedMsg{id: h.m().pendingID})
	require.Equal(t, setup.PhaseWaiting, h.m().wizard.Phase())
	assert.Contains(t, h.view(), "AI Assistant")
	assert.NotContains(t, h.view(), setup.FriendlyMessage(setup.GoalStudy))
	assert.False(t, h.m().wizard.CanAdvance())

	h.model, _ = h.model.Update(keyMsg("ctrl+c"))
}

func TestInteractionFailureRevealsDefaultMessage(t *testing.T) {
	down := setup.PendingFunc(func(context.Context) error { return errors.New("backend down") })
	for name, op := range map[string]setup.Interaction{
		"load fails":   {Load: down, Reveal: setup.Delay(0)},
		"reveal fails": {Load: setup.Delay(0), Reveal: down},
	} {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t, func() setup.Interaction { return op })
			h.start()
			h.press("enter", "space", "enter", "space", "enter", "enter")
			require.Equal(t, setup.StepTestInteraction, h.m().Step())

			assert.Equal(t, setup.PhaseRevealed, h.m().wizard.Phase())
			assert.Contains(t, h.view(), setup.FriendlyMessage(setup.GoalStudy))
			assert.Contains(t, h.view(), interactionFallbackStatus)

			h.press("enter")
			assert.Equal(t, setup.StepSetupComplete, h.m().Step())
		})
	}
}

func TestResumeAtMain(t *testing.T) {
	h := newHarness(t, nil)
	h.storeProfile(setup.Profile{Goal: setup.GoalFitness, Tone: setup.ToneAggressive, SetupComplete: true})
	h.start()

	require.Equal(t, screenHome, h.m().screen)
	assert.Equal(t, setup.Bag{Goal: setup.GoalFitness, Tone: setup.ToneAggressive}, h.m().wizard.Bag())
	view := h.view()
	assert.Contains(t, view, "Fitness")
	assert.Contains(t, view, "Aggressive")
	assert.Contains(t, view, "65% toward a Perfect Day")
	assert.Contains(t, view, "Blocked apps opened: 0")
}

func TestMainWithoutProfileRestartsSetup(t *testing.T) {
	h := newHarness(t, nil)
	s, err := setup.Enter(setup.StepMain, setup.Bag{})
	require.NoError(t, err)

	var cmd tea.Cmd
	h.model, cmd = h.m().enter(s)
	h.drain(cmd)
	assert.Equal(t, setup.StepWelcome, h.m().Step())
}

func TestBlockedAppIncrementsCounter(t *testing.T) {
	h := newHarness(t, nil)
	h.storeProfile(setup.Profile{Goal: setup.GoalStudy, Tone: setup.ToneFriendly, SetupComplete: true})
	h.start()

	h.press("b")
	assert.Contains(t, h.view(), home.BlockedAppTitle)
	h.press("n")
	assert.NotContains(t, h.view(), home.BlockedAppTitle)

	for i := 0; i < 3; i++ {
		h.press("b", "y")
	}
	raw, err := h.mem.Get(context.Background(), storage.KeyBlockedCount)
	require.NoError(t, err)
	assert.Equal(t, "3", raw)
	assert.Contains(t, h.view(), "Blocked apps opened: 3")

	h.press("h")
	assert.Contains(t, h.view(), home.BlockedAppAction)
	h.press("esc")
	assert.Equal(t, screenHome, h.m().screen)
}

func TestHistoryShowsSamples(t *testing.T) {
	h := newHarness(t, nil)
	h.storeProfile(setup.Profile{Goal: setup.GoalStudy, Tone: setup.ToneFriendly, SetupComplete: true})
	h.start()
	h.model, _ = h.model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	h.press("h")
	view := h.view()
	assert.Contains(t, view, "History")
	assert.Contains(t, view, "Blocked Instagram")
	assert.Contains(t, view, "Opened Duit from Shortcut")
}

func TestEditGoalFromHome(t *testing.T) {
	h := newHarness(t, nil)
	h.storeProfile(setup.Profile{Goal: setup.GoalStudy, Tone: setup.ToneFriendly, SetupComplete: true})
	h.start()

	h.press("e")
	assert.Equal(t, setup.StepGoalSelection, h.m().Step())
	assert.Contains(t, h.view(), "What's your main goal?")
}

func settingsHarness(t *testing.T) *harness {
	h := newHarness(t, nil)
	h.storeProfile(setup.Profile{Goal: setup.GoalSideHustle, Tone: setup.ToneFriendly, SetupComplete: true})
	h.start()
	h.press("s")
	require.Equal(t, screenSettings, h.m().screen)
	return h
}

func TestSettingsView(t *testing.T) {
	h := settingsHarness(t)
	view := h.view()
	for _, want := range []string{"Goals & Preferences", "Side Hustle", "App Limits", "Twitter", "20:00", "Reset Progress"} {
		assert.Contains(t, view, want)
	}
}

func TestSettingsChangeTone(t *testing.T) {
	h := settingsHarness(t)
	h.press("down", "enter")

	require.Equal(t, setup.StepToneSelection, h.m().Step())
	assert.Equal(t, setup.Bag{Goal: setup.GoalSideHustle}, h.m().wizard.Bag())
}

func TestSettingsEditLimit(t *testing.T) {
	h := settingsHarness(t)
	h.press("down", "down") // Instagram
	h.typeKeys("enter", "backspace", "backspace", "9", "0")
	h.press("enter")

	got := home.NewSettingsManager(storage.NewAdapter(h.mem)).Load(context.Background())
	assert.Equal(t, 90, got.AppLimits[0].Minutes)
	assert.True(t, strings.Contains(h.view(), "90 min"))
}

func TestSettingsInvalidReminderTime(t *testing.T) {
	h := settingsHarness(t)
	for i := 0; i < 7; i++ {
		h.press("down")
	}
	h.typeKeys("enter", "backspace", "backspace", "backspace", "backspace", "backspace", "9", "9")
	h.press("enter")

	assert.Contains(t, h.view(), "Use HH:MM")
	assert.Equal(t, "20:00", h.m().prefs.ReminderTime)
}

func TestSettingsBackupAndReset(t *testing.T) {
	h := settingsHarness(t)
	for i := 0; i < 9; i++ {
		h.press("down")
	}
	h.press("enter")
	assert.Contains(t, h.view(), home.BackupSuccess)

	entries, err := os.ReadDir(filepath.Join(h.dir, "backups"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	h.press("down", "enter")
	assert.Contains(t, h.view(), home.ResetConfirmMessage)
	h.press("y")
	assert.Contains(t, h.view(), home.ResetSuccess)
	assert.Equal(t, 0, h.mem.Len())
}

func TestQuit(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	_, cmd := h.model.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestReloadSwapsThemeAndInteraction(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	require.False(t, h.m().styles.Theme.IsDark)

	called := false
	h.model, _ = h.model.Update(ReloadMsg{
		Styles: ui.NewStyles(ui.DarkTheme()),
		Interaction: func() setup.Interaction {
			called = true
			return setup.NewInteraction(0, 0)
		},
	})
	assert.True(t, h.m().styles.Theme.IsDark)

	// Welcome -> Goal -> Tone -> Permissions -> TestInteraction
	h.press("enter", "space", "enter", "space", "enter", "enter")
	require.Equal(t, setup.StepTestInteraction, h.m().Step())
	assert.True(t, called)
}

func TestReloadWithZeroValueKeepsModel(t *testing.T) {
	h := newHarness(t, nil)
	h.start()
	before := h.m().styles.Theme
	h.model, _ = h.model.Update(ReloadMsg{})
	assert.Equal(t, before, h.m().styles.Theme)
	assert.Equal(t, setup.StepWelcome, h.m().Step())
}
