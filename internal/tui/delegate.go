package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/notes/internal/view"
)

// listItem adapts a rendered view.Entry to bubbles/list.Item.
type listItem struct {
	view.Entry
}

func (i listItem) Title() string       { return i.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.Text }

func toItems(entries []view.Entry) []list.Item {
	out := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		out = append(out, listItem{e})
	}
	return out
}

// itemDelegate renders one entry per line; open action items show their
// completion control. The cursor is drawn only in the active pane.
type itemDelegate struct {
	active bool
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	text := it.Text
	switch {
	case it.Placeholder:
		text = mutedStyle.Render(text)
	case it.Completable:
		text += " " + pendingStyle.Render("[complete]")
	case it.Done:
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if d.active && index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+text)
}
