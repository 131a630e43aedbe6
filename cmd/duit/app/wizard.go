package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"duit/cmd/duit/ui"
	"duit/internal/logging"
	"duit/internal/setup"
)

const permissionsMarkdown = `# Enable Shortcuts

Duit uses Apple Shortcuts to help you stay on track. We'll create personalized reminders and notifications based on your preferences.

- Automated check-ins at your preferred times
- Custom notifications with your chosen tone
- Progress tracking through the day

*You can always adjust these settings later in the app.*
`

const completeInfoMarkdown = `Duit will now help you stay focused by delaying access to distracting apps. We'll check in with you throughout the day to keep you accountable.`

// options lists the choices on the current selection step.
func (m Model) options() []string {
	switch m.wizard.Step() {
	case setup.StepGoalSelection:
		var out []string
		for _, g := range setup.Goals() {
			out = append(out, string(g))
		}
		return out
	case setup.StepToneSelection:
		var out []string
		for _, t := range setup.Tones() {
			out = append(out, string(t))
		}
		return out
	}
	return nil
}

func (m Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	opts := m.options()

	switch key := msg.String(); key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case " ", "x":
		if len(opts) > 0 {
			m.wizard = m.wizard.Select(opts[m.cursor])
		}
	case "1", "2", "3":
		if i := int(key[0] - '1'); i < len(opts) {
			m.cursor = i
			m.wizard = m.wizard.Select(opts[i])
		}
	case "enter":
		return m.advance()
	}
	return m, nil
}

// advance runs the forward action and executes its effects in order.
func (m Model) advance() (tea.Model, tea.Cmd) {
	next, effects, err := setup.Advance(m.wizard)
	if err != nil {
		logging.WizardDebug("Advance rejected: %v", err)
		switch m.wizard.Step() {
		case setup.StepGoalSelection, setup.StepToneSelection:
			m.status = "Choose an option first (space to select)."
		}
		return m, nil
	}
	m.status = ""

	var save *setup.Profile
	for _, e := range effects {
		switch e := e.(type) {
		case setup.SaveProfile:
			p := e.Profile
			save = &p
		case setup.Navigate:
			if s, err := setup.Enter(e.To, e.Bag); err == nil {
				next = s
			}
		}
	}

	if save != nil {
		m.saving = true
		return m, tea.Batch(m.spinner.Tick, saveProfileCmd(m.ctx, m.opts.Adapter, *save, next))
	}
	return m.enter(next)
}

func (m Model) viewWizard() string {
	s := m.styles
	st := m.wizard
	var b strings.Builder

	switch st.Step() {
	case setup.StepWelcome:
		b.WriteString(ui.Logo(s))
		b.WriteString("\n")
		b.WriteString(s.Title.Render("Welcome to Duit"))
		b.WriteString("\n\n")
		b.WriteString(s.RenderButton("Start Setup", true))

	case setup.StepGoalSelection:
		b.WriteString(s.Title.Render("What's your main goal?"))
		b.WriteString("\n")
		for i, g := range setup.Goals() {
			b.WriteString(s.RenderOption(g.Label(), "", st.Goal() == g, i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(s.RenderButton("Next", st.CanAdvance()))

	case setup.StepToneSelection:
		b.WriteString(s.Title.Render("Choose your motivation style"))
		b.WriteString("\n")
		for i, t := range setup.Tones() {
			b.WriteString(s.RenderOption(t.Label(), t.Description(), st.Tone() == t, i == m.cursor))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(s.RenderButton("Next", st.CanAdvance()))

	case setup.StepPermissionsIntro:
		b.WriteString(m.markdown(permissionsMarkdown))
		b.WriteString("\n")
		b.WriteString(s.RenderButton("Continue", true))

	case setup.StepTestInteraction:
		b.WriteString(s.Title.Render("Test Interaction"))
		b.WriteString("\n")
		b.WriteString(s.Body.Render("Here's how Duit will interact with you throughout the day:"))
		b.WriteString("\n\n")
		switch st.Phase() {
		case setup.PhaseLoading:
			b.WriteString(m.spinner.View())
			b.WriteString("\n")
		case setup.PhaseWaiting:
			b.WriteString(s.Bubble.Render(s.Bold.Render("AI Assistant")))
			b.WriteString("\n")
		case setup.PhaseRevealed:
			b.WriteString(s.Bubble.Render(s.Bold.Render("AI Assistant") + "\n" + st.Message()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(s.RenderButton("Finish Setup", st.CanAdvance()))

	case setup.StepSetupComplete:
		b.WriteString(s.Success.Render("✓"))
		b.WriteString("\n")
		b.WriteString(s.Title.Render("Setup Complete!"))
		b.WriteString("\n")
		b.WriteString(s.Body.Render(setup.CompletionMessage(st.Bag().Tone)))
		b.WriteString("\n")
		b.WriteString(m.markdown(completeInfoMarkdown))
		b.WriteString("\n")
		if m.saving {
			b.WriteString(m.spinner.View() + " Saving...")
		} else {
			b.WriteString(s.RenderButton("Start Using Duit", true))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(s.Footer.Render(wizardHelp(st.Step())))
	return b.String()
}

func wizardHelp(step setup.Step) string {
	switch step {
	case setup.StepGoalSelection, setup.StepToneSelection:
		return "↑/↓ move • space select • enter next • ctrl+c quit"
	default:
		return "enter continue • ctrl+c quit"
	}
}
