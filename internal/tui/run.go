package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/notes/internal/view"
)

// Run starts the interactive UI against backend and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, backend view.Backend, logger *log.Logger) error {
	out := &relay{}
	ctl := view.NewController(backend,
		paneList{out: out, pane: notesPane},
		paneList{out: out, pane: actionsPane},
		logger,
	)
	m := newModel(ctx, ctl, out)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	out.set(p)

	_, err := p.Run()
	return err
}
