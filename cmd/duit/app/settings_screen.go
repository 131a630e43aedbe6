package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"duit/internal/home"
	"duit/internal/logging"
)

// settingsItem is a row on the Settings screen. Values from itemLimit up
// address AppLimits by offset.
type settingsItem int

const (
	itemNone settingsItem = iota
	itemUpdateGoal
	itemTone
	itemDailyReminder
	itemReminderTime
	itemStreakWarning
	itemBackup
	itemReset
	itemLimit
)

// settingsItems lists the visible rows in display order.
func (m Model) settingsItems() []settingsItem {
	items := []settingsItem{itemUpdateGoal, itemTone}
	for i := range m.prefs.AppLimits {
		items = append(items, itemLimit+settingsItem(i))
	}
	items = append(items, itemDailyReminder)
	if m.prefs.DailyReminder {
		items = append(items, itemReminderTime)
	}
	return append(items, itemStreakWarning, itemBackup, itemReset)
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.settingsItems()
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}

	switch msg.String() {
	case "esc", "q":
		m.screen = screenHome
		m.status = ""
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
		return m, nil
	case "enter", " ":
	default:
		return m, nil
	}

	m.status = ""
	switch item := items[m.cursor]; item {
	case itemUpdateGoal:
		return m.enter(home.UpdateGoal())
	case itemTone:
		s, err := home.ChangeTone(m.wizard.Bag())
		if err != nil {
			logging.HomeWarn("Cannot change tone: %v", err)
			m.status = "Pick a goal first."
			return m, nil
		}
		return m.enter(s)
	case itemDailyReminder:
		m.prefs.DailyReminder = !m.prefs.DailyReminder
		return m, saveSettingsCmd(m.ctx, m.settings, m.prefs)
	case itemStreakWarning:
		m.prefs.StreakWarning = !m.prefs.StreakWarning
		return m, saveSettingsCmd(m.ctx, m.settings, m.prefs)
	case itemReminderTime:
		m.input.CharLimit = 5
		m.input.SetValue(m.prefs.ReminderTime)
		m.editing = item
		return m, m.input.Focus()
	case itemBackup:
		return m, backupCmd(m.ctx, m.opts.Adapter, m.opts.DataDir, m.opts.Now())
	case itemReset:
		m.confirm = confirmReset
		return m, nil
	default:
		idx := int(item - itemLimit)
		m.input.CharLimit = home.MaxLimitDigits
		m.input.SetValue(fmt.Sprint(m.prefs.AppLimits[idx].Minutes))
		m.editing = item
		return m, m.input.Focus()
	}
}

func (m Model) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = itemNone
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		item := m.editing
		value := m.input.Value()
		m.editing = itemNone
		m.input.Blur()

		if item == itemReminderTime {
			next, ok := m.prefs.WithReminderTime(value)
			if !ok {
				m.status = "Use HH:MM (24h), e.g. 20:00"
				return m, nil
			}
			m.prefs = next
		} else {
			app := m.prefs.AppLimits[int(item-itemLimit)].App
			m.prefs = m.prefs.WithLimit(app, value)
		}
		return m, saveSettingsCmd(m.ctx, m.settings, m.prefs)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}

func (m Model) settingsRow(item settingsItem) string {
	switch item {
	case itemUpdateGoal:
		return "Update Goal      " + m.wizard.Bag().Goal.Label()
	case itemTone:
		return "AI Tone          " + m.wizard.Bag().Tone.Label()
	case itemDailyReminder:
		return "Daily Reminder   " + onOff(m.prefs.DailyReminder)
	case itemReminderTime:
		if m.editing == item {
			return "Reminder Time    " + m.input.View()
		}
		return "Reminder Time    " + m.prefs.ReminderTime
	case itemStreakWarning:
		return "Streak Warning   " + onOff(m.prefs.StreakWarning)
	case itemBackup:
		return "Backup Data"
	case itemReset:
		return m.styles.Error.Render("Reset Progress")
	default:
		l := m.prefs.AppLimits[int(item-itemLimit)]
		if m.editing == item {
			return fmt.Sprintf("%-16s %s min", l.App, m.input.View())
		}
		return fmt.Sprintf("%-16s %d min", l.App, l.Minutes)
	}
}

func (m Model) viewSettings() string {
	s := m.styles
	if m.confirm != confirmNone {
		return m.viewConfirm()
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Settings"))
	b.WriteString("\n")

	section := func(item settingsItem) string {
		switch {
		case item == itemUpdateGoal:
			return "Goals & Preferences"
		case item == itemLimit:
			return "App Limits"
		case item == itemDailyReminder:
			return "Notifications"
		case item == itemBackup:
			return "Data Management"
		}
		return ""
	}

	for i, item := range m.settingsItems() {
		if title := section(item); title != "" {
			b.WriteString("\n" + s.Bold.Render(title) + "\n")
		}
		cursor := "  "
		if i == m.cursor {
			cursor = s.Cursor.Render("> ")
		}
		b.WriteString(cursor + m.settingsRow(item) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Footer.Render("↑/↓ move • enter change • esc back"))
	return b.String()
}
