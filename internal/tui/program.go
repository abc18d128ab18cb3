package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// NewProgram creates the full screen browser program. Callers may Send
// ReloadMsg to it when the catalog changes on disk.
func NewProgram(opts Options, programOpts ...tea.ProgramOption) *tea.Program {
	programOpts = append([]tea.ProgramOption{tea.WithAltScreen()}, programOpts...)
	return tea.NewProgram(InitBrowseModel(opts), programOpts...)
}
