package app

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"duit/internal/entry"
	"duit/internal/home"
	"duit/internal/setup"
	"duit/internal/storage"
)

// Message types
type (
	resolvedMsg struct{ dest entry.Destination }

	profileSavedMsg struct {
		res  storage.Result
		next setup.State
	}

	profileLoadedMsg struct {
		profile setup.Profile
		res     storage.Result
	}

	interactionLoadedMsg struct {
		id  int
		err error
	}

	interactionRevealedMsg struct {
		id  int
		err error
	}

	homeLoadedMsg struct {
		blocked int
		streak  home.Streak
	}

	blockedConfirmedMsg struct{ count int }

	historyLoadedMsg struct{ entries []home.Entry }

	settingsLoadedMsg struct{ settings home.Settings }

	settingsSavedMsg struct{ res storage.Result }

	backupDoneMsg struct {
		path string
		err  error
	}

	resetDoneMsg struct{ res storage.Result }
)

func resolveCmd(ctx context.Context, r *entry.Resolver) tea.Cmd {
	return func() tea.Msg {
		return resolvedMsg{dest: r.Resolve(ctx)}
	}
}

// saveProfileCmd writes the profile and only then reports next, so
// navigation waits for the save whatever its outcome.
func saveProfileCmd(ctx context.Context, a *storage.Adapter, p setup.Profile, next setup.State) tea.Cmd {
	return func() tea.Msg {
		return profileSavedMsg{res: entry.SaveProfile(ctx, a, p), next: next}
	}
}

func loadProfileCmd(ctx context.Context, a *storage.Adapter) tea.Cmd {
	return func() tea.Msg {
		p, res := entry.LoadProfile(ctx, a)
		return profileLoadedMsg{profile: p, res: res}
	}
}

func awaitLoad(ctx context.Context, id int, op setup.Pending) tea.Cmd {
	return func() tea.Msg {
		return interactionLoadedMsg{id: id, err: op.Await(ctx)}
	}
}

func awaitReveal(ctx context.Context, id int, op setup.Pending) tea.Cmd {
	if ctx == nil || op == nil {
		return nil
	}
	return func() tea.Msg {
		return interactionRevealedMsg{id: id, err: op.Await(ctx)}
	}
}

func loadHomeCmd(ctx context.Context, c *home.Counter, a *storage.Adapter) tea.Cmd {
	return func() tea.Msg {
		return homeLoadedMsg{blocked: c.Load(ctx), streak: home.LoadStreak(ctx, a)}
	}
}

func confirmBlockedCmd(ctx context.Context, c *home.Counter, h *home.History) tea.Cmd {
	return func() tea.Msg {
		n, _ := home.ConfirmBlockedApp(ctx, c, h)
		return blockedConfirmedMsg{count: n}
	}
}

func loadHistoryCmd(ctx context.Context, h *home.History) tea.Cmd {
	return func() tea.Msg {
		return historyLoadedMsg{entries: h.List(ctx)}
	}
}

func loadSettingsCmd(ctx context.Context, sm *home.SettingsManager) tea.Cmd {
	return func() tea.Msg {
		return settingsLoadedMsg{settings: sm.Load(ctx)}
	}
}

func saveSettingsCmd(ctx context.Context, sm *home.SettingsManager, s home.Settings) tea.Cmd {
	return func() tea.Msg {
		return settingsSavedMsg{res: sm.Save(ctx, s)}
	}
}

func backupCmd(ctx context.Context, a *storage.Adapter, dataDir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		if dataDir == "" {
			dataDir = "."
		}
		path := home.BackupPath(filepath.Clean(dataDir), now)
		if _, err := home.WriteBackup(ctx, a, path, now); err != nil {
			return backupDoneMsg{err: err}
		}
		return backupDoneMsg{path: path}
	}
}

func resetCmd(ctx context.Context, a *storage.Adapter) tea.Cmd {
	return func() tea.Msg {
		return resetDoneMsg{res: home.Reset(ctx, a)}
	}
}

// clearPending cancels the TestInteraction operation, if any.
func (m *Model) clearPending() {
	if m.pendingCancel != nil {
		m.pendingCancel()
	}
	m.pendingCancel = nil
	m.pendingCtx = nil
	m.pending = setup.Interaction{}
}
