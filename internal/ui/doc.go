// Package ui implements an interactive command REPL using bubbletea's Elm
// architecture.
//
// The [Model] implements bubbletea's standard Init/Update/View pattern,
// receiving messages via the Msg union type. Each submitted line is handed
// to the command service off the update loop; the outcome arrives back as a
// [MsgOutcome] and joins a bounded history the view renders above the input.
//
// Styling uses lipgloss with a small named palette; the text input comes
// from charmbracelet/bubbles.
package ui
