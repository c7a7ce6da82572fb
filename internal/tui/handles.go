package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/notes/internal/view"
)

// Controller operations run off the event loop; the handles below turn their
// writes into messages so the model is only ever touched inside Update.

type sender interface {
	Send(msg tea.Msg)
}

// relay forwards to a program that is created after the controller.
type relay struct {
	mu sync.RWMutex
	p  sender
}

func (r *relay) set(p sender) {
	r.mu.Lock()
	r.p = p
	r.mu.Unlock()
}

func (r *relay) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.p
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

type pane int

const (
	notesPane pane = iota
	actionsPane
)

type entriesMsg struct {
	pane    pane
	entries []view.Entry
}

type resetNoteFormMsg struct{}
type resetActionFormMsg struct{}
type clearSearchMsg struct{}

// paneList is the view.List handle for one pane.
type paneList struct {
	out  sender
	pane pane
}

func (l paneList) Replace(entries []view.Entry) {
	l.out.Send(entriesMsg{pane: l.pane, entries: entries})
}

// Forms are snapshotted when submitted; Reset is delivered back as a message.

type noteForm struct {
	out            sender
	title, content string
}

func (f noteForm) Title() string   { return f.title }
func (f noteForm) Content() string { return f.content }
func (f noteForm) Reset()          { f.out.Send(resetNoteFormMsg{}) }

type actionForm struct {
	out  sender
	desc string
}

func (f actionForm) Description() string { return f.desc }
func (f actionForm) Reset()              { f.out.Send(resetActionFormMsg{}) }

type searchBox struct {
	out   sender
	query string
}

func (b searchBox) Query() string { return b.query }
func (b searchBox) Clear()        { b.out.Send(clearSearchMsg{}) }
