package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/maestro/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the REPL (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgOutcome MsgKind = iota
)

// outcomeMsg is the constructor for [MsgOutcome]
func outcomeMsg(command string, outcome models.Outcome) Msg {
	return Msg{
		kind: MsgOutcome,
		data: struct {
			command string
			outcome models.Outcome
		}{command, outcome},
	}
}
