package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"glide/internal/config"
	"glide/pkg/logging"
)

// NewProgram builds the demo bubbletea program and attaches the list
// source's notification handler once a send function exists. Handler
// replay is deferred by the source's queue, so the initial
// begin/inserted.../end sequence arrives as ordinary messages after
// the program starts.
func NewProgram(cfg config.Config, logCh <-chan logging.Entry) *tea.Program {
	m := NewModel(cfg, logCh)
	p := tea.NewProgram(m, tea.WithAltScreen())

	m.Source().SetHandler(newListBinder(func(msg any) {
		p.Send(msg)
	}))
	return p
}
