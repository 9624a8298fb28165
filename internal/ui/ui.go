package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/maestro/internal/models"
)

// CommandService turns free-form command text into a playback outcome.
type CommandService interface {
	Handle(ctx context.Context, text string) models.Outcome
}

// historyEntry pairs a submitted command with its outcome.
type historyEntry struct {
	command string
	outcome models.Outcome
}

// maxHistory bounds how many past outcomes the view retains.
const maxHistory = 50

// Model represents the REPL application state.
type Model struct {
	ctx     context.Context
	service CommandService
	input   textinput.Model
	history []historyEntry
	pending int
	width   int
	height  int
}

// NewModel creates the REPL model around a command service.
func NewModel(ctx context.Context, service CommandService) Model {
	ti := textinput.New()
	ti.Placeholder = `Try "play bohemian rhapsody" or "volume up"`
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	return Model{
		ctx:     ctx,
		service: service,
		input:   ti,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if text == "exit" || text == "quit" {
				return m, tea.Quit
			}
			m.input.SetValue("")
			m.pending++
			return m, m.dispatch(text)
		}

	case Msg:
		if msg.kind == MsgOutcome {
			data := msg.data.(struct {
				command string
				outcome models.Outcome
			})
			m.history = append(m.history, historyEntry{command: data.command, outcome: data.outcome})
			if len(m.history) > maxHistory {
				m.history = m.history[len(m.history)-maxHistory:]
			}
			if m.pending > 0 {
				m.pending--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// dispatch runs the command off the update loop and delivers the outcome as
// a message.
func (m Model) dispatch(text string) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg(text, m.service.Handle(m.ctx, text))
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("maestro"))
	b.WriteString("\n")

	for _, entry := range m.history {
		b.WriteString(styles.prompt.Render("> "))
		b.WriteString(entry.command)
		b.WriteString("\n")
		b.WriteString(renderOutcome(entry.outcome))
	}

	if m.pending > 0 {
		b.WriteString(styles.warn.Render("  ...working"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter: send • esc: quit"))
	b.WriteString("\n")

	return b.String()
}

func renderOutcome(outcome models.Outcome) string {
	var b strings.Builder

	if outcome.Success {
		b.WriteString(styles.ok.Render("  " + outcome.Message))
	} else {
		b.WriteString(styles.err.Render("  " + outcome.Message))
	}
	b.WriteString("\n")

	if d := outcome.Details; d != nil {
		b.WriteString(styles.help.Render(fmt.Sprintf("  %s - %s (%s, volume %d%%)",
			d.Artists, d.Track, d.Device, d.Volume)))
		b.WriteString("\n")
	}

	return b.String()
}

// Run starts the REPL and blocks until the user quits.
func Run(ctx context.Context, service CommandService) error {
	program := tea.NewProgram(NewModel(ctx, service))
	_, err := program.Run()
	return err
}
