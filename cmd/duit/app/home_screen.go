package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"duit/cmd/duit/ui"
	"duit/internal/home"
)

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b":
		m.confirm = confirmBlockedApp
		m.status = ""
	case "e":
		m.status = ""
		return m.enter(home.EditGoal())
	case "h":
		m.screen = screenHistory
		m.status = ""
		return m, loadHistoryCmd(m.ctx, m.history)
	case "s":
		m.screen = screenSettings
		m.cursor = 0
		m.status = ""
		return m, loadSettingsCmd(m.ctx, m.settings)
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind := m.confirm
	switch msg.String() {
	case "y", "enter":
		m.confirm = confirmNone
		switch kind {
		case confirmBlockedApp:
			return m, confirmBlockedCmd(m.ctx, m.counter, m.history)
		case confirmReset:
			return m, resetCmd(m.ctx, m.opts.Adapter)
		}
	case "n", "esc":
		m.confirm = confirmNone
	}
	return m, nil
}

func (m Model) viewConfirm() string {
	s := m.styles
	switch m.confirm {
	case confirmBlockedApp:
		return s.Card.Render(s.Bold.Render(home.BlockedAppTitle) + "\n" + home.BlockedAppMessage +
			"\n\n[y] Start Timer   [n] Cancel")
	case confirmReset:
		return s.Card.Render(s.Error.Render(home.ResetConfirmTitle) + "\n" + home.ResetConfirmMessage +
			"\n\n[y] Reset   [n] Cancel")
	}
	return ""
}

func (m Model) bar(ratio float64, color string) string {
	pb := progress.New(progress.WithSolidFill(color), progress.WithoutPercentage())
	pb.Width = m.progress.Width
	return pb.ViewAs(ratio)
}

func (m Model) viewHome() string {
	s := m.styles
	d := m.dashboard
	var b strings.Builder

	if m.confirm != confirmNone {
		b.WriteString(m.viewConfirm())
		return b.String()
	}

	// Goal header
	b.WriteString(s.Muted.Render("Current Goal"))
	b.WriteString("\n")
	b.WriteString(s.Title.Render(d.Bag.Goal.Label()))
	b.WriteString("\n")
	b.WriteString("Style: " + s.Bold.Render(d.Bag.Tone.Label()) + "   " + s.Muted.Render("[e] Edit"))
	b.WriteString("\n\n")

	// Points and progress
	b.WriteString(fmt.Sprintf("Today's Points: %s", s.Bold.Render(fmt.Sprint(d.PointsEarned))))
	if bonus := d.PointsBonus(); bonus != "" {
		b.WriteString("  " + s.Success.Render(bonus))
	}
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(float64(d.DailyProgress) / 100))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("%d%% toward a Perfect Day", d.DailyProgress)))
	b.WriteString("\n\n")

	// App usage
	b.WriteString(s.Bold.Render("Today's App Usage"))
	b.WriteString("\n")
	for _, app := range d.Usage {
		b.WriteString(fmt.Sprintf("%-10s %3dm / %dm  ", app.Name, app.Used, app.Limit))
		b.WriteString(m.bar(app.Ratio(), string(ui.UsageColor(app.Level()))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Check-in
	b.WriteString(s.Bold.Render("Next Check-in"))
	b.WriteString("\n")
	b.WriteString(s.Card.Render(d.CheckIn.Time + "\n" + s.Muted.Render(d.CheckIn.Note)))
	b.WriteString("\n\n")

	// Blocked app
	b.WriteString(s.RenderButton("[b] Open Blocked App with Delay", true))
	b.WriteString("\n")
	if m.homeReady {
		b.WriteString(s.Muted.Render(fmt.Sprintf("Blocked apps opened: %d", m.blocked)))
	} else {
		b.WriteString(m.spinner.View())
	}
	b.WriteString("\n\n")

	// Quote and streak
	b.WriteString(s.Subtitle.Render("\"" + d.Quote + "\""))
	b.WriteString("\n\n")
	b.WriteString(s.Bold.Render("Current Streak") + "  " + d.StreakLabel())
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(d.Streak.BonusNote))
	b.WriteString("\n\n")

	b.WriteString(s.Footer.Render("b blocked app • e edit goal • h history • s settings • q quit"))
	return b.String()
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.screen = screenHome
		return m, nil
	}
	var cmd tea.Cmd
	m.historyPage, cmd = m.historyPage.Update(msg)
	return m, cmd
}

func (m Model) viewHistory() string {
	s := m.styles
	return s.Title.Render("History") + "\n" +
		m.historyPage.View() + "\n\n" +
		s.Footer.Render("↑/↓ scroll • esc back")
}
