// Package tui is the interactive terminal front end: two panes (notes and
// action items) driven by a view.Controller.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/notes/internal/view"
)

type mode int

const (
	browsing mode = iota
	addingNote
	addingAction
	searching
)

type errMsg struct{ err error }
type doneMsg struct{}

type modelTUI struct {
	ctx context.Context
	ctl *view.Controller
	out sender

	notes   list.Model
	actions list.Model
	focus   pane

	mode     mode
	titleIn  textinput.Model
	bodyIn   textinput.Model
	actionIn textinput.Model
	searchIn textinput.Model
	filter   string // last query sent to the backend

	busy    int // in-flight commands
	status  string
	errText string

	width, height int
}

var (
	noteBind     = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new note"))
	actionBind   = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new action"))
	searchBind   = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
	clearBind    = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear search"))
	completeBind = key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "complete"))
	reloadBind   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload"))
	switchBind   = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane"))
	quitBind     = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

func newList(title string, active bool) list.Model {
	l := list.New(nil, itemDelegate{active: active}, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = helpStyle
	return l
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

func newModel(ctx context.Context, ctl *view.Controller, out sender) modelTUI {
	return modelTUI{
		ctx:      ctx,
		ctl:      ctl,
		out:      out,
		notes:    newList("Notes", true),
		actions:  newList("Action items", false),
		titleIn:  newInput("title> ", "Note title...", 200),
		bodyIn:   newInput("content> ", "Note content...", 10000),
		actionIn: newInput("> ", "New action item...", 500),
		searchIn: newInput("/ ", "Search notes...", 200),
		width:    80,
		height:   24,
	}
}

// run executes a controller operation off the event loop.
func (m *modelTUI) run(op func(context.Context) error) tea.Cmd {
	m.busy++
	ctx := m.ctx
	return func() tea.Msg {
		if err := op(ctx); err != nil {
			return errMsg{err}
		}
		return doneMsg{}
	}
}

// Init performs the initial load: notes, then action items.
func (m modelTUI) Init() tea.Cmd {
	return m.run(m.ctl.Start)
}

func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case entriesMsg:
		l := &m.notes
		if msg.pane == actionsPane {
			l = &m.actions
		}
		cmd := l.SetItems(toItems(msg.entries))
		return m, cmd

	case resetNoteFormMsg:
		m.titleIn.SetValue("")
		m.bodyIn.SetValue("")
		if m.mode == addingNote {
			m.leaveForm()
		}
		return m, nil

	case resetActionFormMsg:
		m.actionIn.SetValue("")
		if m.mode == addingAction {
			m.leaveForm()
		}
		return m, nil

	case clearSearchMsg:
		m.searchIn.SetValue("")
		m.filter = ""
		return m, nil

	case errMsg:
		m.done()
		m.errText = msg.err.Error()
		return m, nil

	case doneMsg:
		m.done()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case addingNote:
			return m.updateNoteForm(msg)
		case addingAction:
			return m.updateActionForm(msg)
		case searching:
			return m.updateSearch(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m *modelTUI) done() {
	if m.busy > 0 {
		m.busy--
	}
	if m.busy == 0 {
		m.status = ""
	}
}

func (m modelTUI) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, quitBind):
		return m, tea.Quit
	case key.Matches(msg, switchBind):
		m.setFocus(1 - m.focus)
		return m, nil
	case key.Matches(msg, noteBind):
		m.errText = ""
		m.mode = addingNote
		m.bodyIn.Blur()
		cmd := m.titleIn.Focus()
		return m, cmd
	case key.Matches(msg, actionBind):
		m.errText = ""
		m.mode = addingAction
		cmd := m.actionIn.Focus()
		return m, cmd
	case key.Matches(msg, searchBind):
		m.errText = ""
		m.mode = searching
		cmd := m.searchIn.Focus()
		return m, cmd
	case key.Matches(msg, clearBind):
		m.errText = ""
		m.status = "loading notes..."
		box := searchBox{out: m.out, query: m.searchIn.Value()}
		cmd := m.run(func(ctx context.Context) error { return m.ctl.ClearSearch(ctx, box) })
		return m, cmd
	case key.Matches(msg, reloadBind):
		m.errText = ""
		m.status = "reloading..."
		cmd := m.run(m.ctl.Start)
		return m, cmd
	case key.Matches(msg, completeBind):
		if m.focus != actionsPane {
			return m, nil
		}
		it, ok := m.actions.SelectedItem().(listItem)
		if !ok || !it.Completable {
			return m, nil
		}
		m.errText = ""
		m.status = "completing..."
		id := it.ItemID
		cmd := m.run(func(ctx context.Context) error { return m.ctl.CompleteAction(ctx, id) })
		return m, cmd
	}

	var cmd tea.Cmd
	if m.focus == notesPane {
		m.notes, cmd = m.notes.Update(msg)
	} else {
		m.actions, cmd = m.actions.Update(msg)
	}
	return m, cmd
}

func (m modelTUI) updateNoteForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveForm()
		return m, nil
	case "tab", "shift+tab":
		cmd := m.toggleNoteField()
		return m, cmd
	case "enter":
		if m.titleIn.Focused() {
			cmd := m.toggleNoteField()
			return m, cmd
		}
		f := noteForm{out: m.out, title: m.titleIn.Value(), content: m.bodyIn.Value()}
		m.errText = ""
		m.status = "saving note..."
		cmd := m.run(func(ctx context.Context) error { return m.ctl.SubmitNote(ctx, f) })
		return m, cmd
	}
	var cmd tea.Cmd
	if m.titleIn.Focused() {
		m.titleIn, cmd = m.titleIn.Update(msg)
	} else {
		m.bodyIn, cmd = m.bodyIn.Update(msg)
	}
	return m, cmd
}

func (m *modelTUI) toggleNoteField() tea.Cmd {
	if m.titleIn.Focused() {
		m.titleIn.Blur()
		return m.bodyIn.Focus()
	}
	m.bodyIn.Blur()
	return m.titleIn.Focus()
}

func (m modelTUI) updateActionForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveForm()
		return m, nil
	case "enter":
		f := actionForm{out: m.out, desc: m.actionIn.Value()}
		m.errText = ""
		m.status = "saving action item..."
		cmd := m.run(func(ctx context.Context) error { return m.ctl.SubmitAction(ctx, f) })
		return m, cmd
	}
	var cmd tea.Cmd
	m.actionIn, cmd = m.actionIn.Update(msg)
	return m, cmd
}

func (m modelTUI) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveForm()
		return m, nil
	case "enter":
		q := m.searchIn.Value()
		m.leaveForm()
		if strings.TrimSpace(q) == "" {
			return m, nil
		}
		m.filter = q
		m.errText = ""
		m.status = "searching..."
		box := searchBox{out: m.out, query: q}
		cmd := m.run(func(ctx context.Context) error { return m.ctl.Search(ctx, box) })
		return m, cmd
	}
	var cmd tea.Cmd
	m.searchIn, cmd = m.searchIn.Update(msg)
	return m, cmd
}

func (m *modelTUI) leaveForm() {
	m.mode = browsing
	m.titleIn.Blur()
	m.bodyIn.Blur()
	m.actionIn.Blur()
	m.searchIn.Blur()
}

func (m *modelTUI) setFocus(p pane) {
	m.focus = p
	m.notes.SetDelegate(itemDelegate{active: p == notesPane})
	m.actions.SetDelegate(itemDelegate{active: p == actionsPane})
}

func (m *modelTUI) resize() {
	w := m.width/2 - 4
	if w < 20 {
		w = 20
	}
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	m.notes.SetSize(w, h)
	m.actions.SetSize(w, h)
}

func (m modelTUI) View() string {
	w := m.width/2 - 2
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		panelString(m.notes.View(), m.focus == notesPane, w),
		panelString(m.actions.View(), m.focus == actionsPane, w),
	)

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(panes)

	switch m.mode {
	case addingNote:
		b.WriteString("\n" + inputBar(accentStyle.Render("New note")+"\n"+m.titleIn.View()+"\n"+m.bodyIn.View()))
	case addingAction:
		b.WriteString("\n" + inputBar(accentStyle.Render("New action item")+"\n"+m.actionIn.View()))
	case searching:
		b.WriteString("\n" + inputBar(accentStyle.Render("Search notes")+"\n"+m.searchIn.View()))
	}

	b.WriteString("\n")
	switch {
	case m.errText != "":
		b.WriteString(errorStyle.Render("✖ " + m.errText))
	case m.status != "":
		b.WriteString(mutedStyle.Render(m.status))
	default:
		b.WriteString(helpStyle.Render(helpLine()))
	}
	return b.String()
}

func (m modelTUI) header() string {
	var open, done int
	for _, it := range m.actions.Items() {
		if li, ok := it.(listItem); ok {
			switch {
			case li.Completable:
				open++
			case li.Done:
				done++
			}
		}
	}
	h := fmt.Sprintf("%s   %s %d  %s %d",
		titleStyle.Render("Notes & action items"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), open,
	)
	if m.filter != "" {
		h += "   " + accentStyle.Render("filter: "+m.filter)
	}
	return h
}

func helpLine() string {
	binds := []key.Binding{noteBind, actionBind, searchBind, clearBind, completeBind, reloadBind, switchBind, quitBind}
	parts := make([]string, 0, len(binds))
	for _, b := range binds {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
