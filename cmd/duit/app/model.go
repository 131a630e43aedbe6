// Package app is the interactive Duit terminal application.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"duit/cmd/duit/ui"
	"duit/internal/entry"
	"duit/internal/home"
	"duit/internal/logging"
	"duit/internal/setup"
	"duit/internal/storage"
)

// screen is the top-level view currently shown.
type screen int

const (
	screenLoading  screen = iota // entry resolution pending
	screenWizard                 // any setup step before Main
	screenHome                   // Main
	screenHistory                // activity log
	screenSettings               // preferences
)

// confirmKind is an open yes/no prompt.
type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmBlockedApp
	confirmReset
)

const interactionFallbackStatus = "Assistant unavailable right now; showing the default message."

// Options configures a Model.
type Options struct {
	Adapter *storage.Adapter
	Styles  ui.Styles

	// Interaction builds the TestInteraction pending operation.
	Interaction func() setup.Interaction

	// DataDir receives backups under backups/.
	DataDir string

	// Now and PickQuote are replaceable for tests.
	Now       func() time.Time
	PickQuote func(n int) int
}

// Model is the root bubbletea model.
type Model struct {
	opts   Options
	styles ui.Styles

	// Lifetime of the program; cancelled on quit.
	ctx    context.Context
	cancel context.CancelFunc

	resolver *entry.Resolver
	counter  *home.Counter
	history  *home.History
	settings *home.SettingsManager

	screen screen
	wizard setup.State
	cursor int
	saving bool

	// TestInteraction pending operation. pendingID discards messages from
	// an operation that was torn down.
	pending       setup.Interaction
	pendingCtx    context.Context
	pendingCancel context.CancelFunc
	pendingID     int

	// Main
	dashboard   home.Dashboard
	homeReady   bool
	blocked     int
	confirm     confirmKind
	historyPage ui.HistoryPageModel

	// Settings
	prefs   home.Settings
	editing settingsItem
	input   textinput.Model

	status string
	err    error

	spinner  spinner.Model
	progress progress.Model
	renderer *glamour.TermRenderer

	width  int
	height int
}

// New builds the root model. Nothing touches storage until Init runs.
func New(opts Options) Model {
	if opts.Interaction == nil {
		opts.Interaction = setup.DefaultInteraction
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	styles := opts.Styles
	if styles.Theme.Primary == "" {
		styles = ui.DefaultStyles()
	}

	ctx, cancel := context.WithCancel(context.Background())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	pb := progress.New(progress.WithSolidFill(string(styles.Theme.Primary)), progress.WithoutPercentage())
	pb.Width = 30

	ti := textinput.New()
	ti.CharLimit = home.MaxLimitDigits
	ti.Width = 10
	ti.Prompt = "> "

	return Model{
		opts:        opts,
		styles:      styles,
		ctx:         ctx,
		cancel:      cancel,
		resolver:    entry.NewResolver(opts.Adapter),
		counter:     home.NewCounter(opts.Adapter),
		history:     home.NewHistory(opts.Adapter),
		settings:    home.NewSettingsManager(opts.Adapter),
		screen:      screenLoading,
		spinner:     sp,
		progress:    pb,
		renderer:    newRenderer(styles),
		input:       ti,
		historyPage: ui.NewHistoryPageModel(styles),
	}
}

// newRenderer builds the markdown renderer for the theme, or nil.
func newRenderer(styles ui.Styles) *glamour.TermRenderer {
	style := "light"
	if styles.Theme.IsDark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		logging.Get(logging.CategoryUI).Warn("Markdown renderer unavailable: %v", err)
		return nil
	}
	return renderer
}

// ReloadMsg applies a reloaded config to a running model. Zero fields are
// left unchanged.
type ReloadMsg struct {
	Styles      ui.Styles
	Interaction func() setup.Interaction
}

// reload swaps theme and interaction timing. An interaction already in
// flight keeps its original delays.
func (m Model) reload(msg ReloadMsg) Model {
	if msg.Interaction != nil {
		m.opts.Interaction = msg.Interaction
	}
	if msg.Styles.Theme.Primary != "" && msg.Styles.Theme != m.styles.Theme {
		m.styles = msg.Styles
		m.spinner.Style = msg.Styles.Spinner
		m.renderer = newRenderer(msg.Styles)
		m.historyPage = ui.NewHistoryPageModel(msg.Styles)
		m.historyPage.SetSize(m.width, m.height)
	}
	logging.UI("Applied reloaded config")
	return m
}

// Init starts the spinner and resolves the first screen.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		resolveCmd(m.ctx, m.resolver),
	)
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.historyPage.SetSize(msg.Width, msg.Height)
		m.progress.Width = min(max(msg.Width/3, 10), 40)
		return m, nil

	case ReloadMsg:
		m = m.reload(msg)
		if m.screen == screenHistory {
			return m, loadHistoryCmd(m.ctx, m.history)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.editing != itemNone {
			return m.updateSettingsInput(msg)
		}
		if m.confirm != confirmNone {
			return m.updateConfirm(msg)
		}
		switch m.screen {
		case screenWizard:
			return m.updateWizard(msg)
		case screenHome:
			return m.updateHome(msg)
		case screenHistory:
			return m.updateHistory(msg)
		case screenSettings:
			return m.updateSettings(msg)
		}
		return m, nil

	case resolvedMsg:
		logging.UI("Resolved entry destination %s", msg.dest.Step)
		if msg.dest.Step == setup.StepMain {
			s, _ := setup.Enter(setup.StepMain, msg.dest.Bag)
			return m.enter(s)
		}
		return m.enter(setup.Start())

	case profileSavedMsg:
		m.saving = false
		if msg.res.Failed() {
			m.status = "Could not save your profile; continuing anyway."
		}
		return m.enter(msg.next)

	case profileLoadedMsg:
		if !msg.res.Found() || !msg.profile.Bag().Complete() {
			logging.Get(logging.CategoryUI).Warn("Main entered without a profile (%s), restarting setup", msg.res.Status)
			return m.enter(setup.Start())
		}
		s, _ := setup.Enter(setup.StepMain, msg.profile.Bag())
		m.wizard = s
		return m.showHome()

	case interactionLoadedMsg:
		if msg.id != m.pendingID || m.wizard.Step() != setup.StepTestInteraction {
			return m, nil
		}
		if msg.err != nil {
			return m.interactionFailed(msg.err)
		}
		m.wizard = m.wizard.Loaded()
		return m, awaitReveal(m.pendingCtx, m.pendingID, m.pending.Reveal)

	case interactionRevealedMsg:
		if msg.id != m.pendingID || m.wizard.Step() != setup.StepTestInteraction {
			return m, nil
		}
		if msg.err != nil {
			return m.interactionFailed(msg.err)
		}
		m.wizard = m.wizard.Reveal()
		m.clearPending()
		return m, nil

	case homeLoadedMsg:
		m.blocked = msg.blocked
		m.dashboard.Streak = msg.streak
		m.homeReady = true
		return m, nil

	case blockedConfirmedMsg:
		m.blocked = msg.count
		m.status = "Focus timer started. Take a breath."
		return m, nil

	case historyLoadedMsg:
		m.historyPage.UpdateContent(msg.entries)
		return m, nil

	case settingsLoadedMsg:
		m.prefs = msg.settings
		return m, nil

	case settingsSavedMsg:
		if msg.res.Failed() {
			m.status = "Could not save settings."
		}
		return m, nil

	case backupDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = home.BackupFailure
		} else {
			m.status = home.BackupSuccess + " (" + msg.path + ")"
		}
		return m, nil

	case resetDoneMsg:
		if msg.res.Failed() {
			m.status = home.ResetFailure
			return m, nil
		}
		m.status = home.ResetSuccess
		m.prefs = home.DefaultSettings()
		m.blocked = 0
		m.counter = home.NewCounter(m.opts.Adapter)
		return m, nil
	}

	return m, nil
}

// interactionFailed reveals the local message when the pending operation
// errors. Cancellation means the step was torn down and is ignored.
func (m Model) interactionFailed(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return m, nil
	}
	logging.Get(logging.CategoryUI).Warn("Test interaction failed, showing default message: %v", err)
	m.wizard = m.wizard.Loaded().Reveal()
	m.clearPending()
	m.status = interactionFallbackStatus
	return m, nil
}

// quit tears down pending work and the program context.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.clearPending()
	m.cancel()
	return m, tea.Quit
}

// Step reports the current wizard step; Main once the wizard is done.
func (m Model) Step() setup.Step {
	return m.wizard.Step()
}

// enter switches to wizard state s, tearing down any pending operation.
func (m Model) enter(s setup.State) (tea.Model, tea.Cmd) {
	m.clearPending()
	m.wizard = s
	m.cursor = 0
	m.confirm = confirmNone

	switch s.Step() {
	case setup.StepMain:
		if s.NeedsProfile() {
			m.screen = screenLoading
			return m, loadProfileCmd(m.ctx, m.opts.Adapter)
		}
		return m.showHome()

	case setup.StepTestInteraction:
		m.screen = screenWizard
		op := m.opts.Interaction()
		ctx, cancel := context.WithCancel(m.ctx)
		m.pending = op
		m.pendingCtx = ctx
		m.pendingCancel = cancel
		m.pendingID++
		logging.UI("Starting test interaction #%d", m.pendingID)
		return m, tea.Batch(m.spinner.Tick, awaitLoad(ctx, m.pendingID, op.Load))

	default:
		m.screen = screenWizard
		return m, nil
	}
}

func (m Model) showHome() (tea.Model, tea.Cmd) {
	m.screen = screenHome
	m.dashboard = home.NewDashboard(m.wizard.Bag(), home.DefaultStreak(), m.opts.PickQuote)
	return m, loadHomeCmd(m.ctx, m.counter, m.opts.Adapter)
}

// View renders the active screen.
func (m Model) View() string {
	var body string
	switch m.screen {
	case screenLoading:
		body = m.spinner.View() + " Loading..."
	case screenWizard:
		body = m.viewWizard()
	case screenHome:
		body = m.viewHome()
	case screenHistory:
		body = m.viewHistory()
	case screenSettings:
		body = m.viewSettings()
	}
	if m.status != "" {
		body += "\n\n" + m.styles.Info.Render(m.status)
	}
	return m.styles.Content.Render(body)
}

// markdown renders md, falling back to plain text.
func (m Model) markdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
