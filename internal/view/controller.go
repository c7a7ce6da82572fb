// Package view turns backend data into list projections and user actions
// into request/render cycles.
package view

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/notes/internal/model"
)

// Backend is the subset of the API client the controller needs.
type Backend interface {
	ListNotes(ctx context.Context) ([]model.Note, error)
	SearchNotes(ctx context.Context, query string) ([]model.Note, error)
	CreateNote(ctx context.Context, in model.NoteCreate) (model.Note, error)
	ListActionItems(ctx context.Context) ([]model.ActionItem, error)
	CreateActionItem(ctx context.Context, in model.ActionItemCreate) (model.ActionItem, error)
	CompleteActionItem(ctx context.Context, id int64) (model.ActionItem, error)
}

// Controller owns no data: every list it writes is the projection of the
// latest load it started for that list.
type Controller struct {
	backend Backend
	notes   List
	actions List
	log     *log.Logger

	// Bumped when a load starts; a result is rendered only if its ticket
	// is still the newest. The mutex spans the check and the Replace.
	notesGen   atomic.Uint64
	actionsGen atomic.Uint64
	notesMu    sync.Mutex
	actionsMu  sync.Mutex
}

// NewController wires the controller to its backend and list handles.
func NewController(b Backend, notes, actions List, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Controller{backend: b, notes: notes, actions: actions, log: logger}
}

// Start performs the initial load of notes, then action items.
func (c *Controller) Start(ctx context.Context) error {
	if err := c.LoadNotes(ctx); err != nil {
		return err
	}
	return c.LoadActions(ctx)
}

// LoadNotes fetches every note and renders it.
func (c *Controller) LoadNotes(ctx context.Context) error {
	ticket := c.notesGen.Add(1)
	notes, err := c.backend.ListNotes(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	c.renderNotes(ticket, notes)
	return nil
}

// SearchNotes fetches notes matching query and renders them.
func (c *Controller) SearchNotes(ctx context.Context, query string) error {
	ticket := c.notesGen.Add(1)
	notes, err := c.backend.SearchNotes(ctx, query)
	if err != nil {
		return fmt.Errorf("search notes: %w", err)
	}
	c.renderNotes(ticket, notes)
	return nil
}

func (c *Controller) renderNotes(ticket uint64, notes []model.Note) {
	c.notesMu.Lock()
	defer c.notesMu.Unlock()
	if c.notesGen.Load() != ticket {
		c.log.WithField("ticket", ticket).Debug("dropping stale notes response")
		return
	}
	c.notes.Replace(RenderNotes(notes))
}

// LoadActions fetches every action item and renders it.
func (c *Controller) LoadActions(ctx context.Context) error {
	ticket := c.actionsGen.Add(1)
	items, err := c.backend.ListActionItems(ctx)
	if err != nil {
		return fmt.Errorf("load action items: %w", err)
	}
	c.renderActions(ticket, items)
	return nil
}

func (c *Controller) renderActions(ticket uint64, items []model.ActionItem) {
	c.actionsMu.Lock()
	defer c.actionsMu.Unlock()
	if c.actionsGen.Load() != ticket {
		c.log.WithField("ticket", ticket).Debug("dropping stale action items response")
		return
	}
	c.actions.Replace(RenderActions(items))
}

// CompleteAction is the completion control: mark done, then reload.
func (c *Controller) CompleteAction(ctx context.Context, id int64) error {
	if _, err := c.backend.CompleteActionItem(ctx, id); err != nil {
		return fmt.Errorf("complete action item %d: %w", id, err)
	}
	return c.LoadActions(ctx)
}

// SubmitNote creates a note from the form, resets it and reloads notes.
func (c *Controller) SubmitNote(ctx context.Context, f NoteForm) error {
	n, err := c.backend.CreateNote(ctx, model.NoteCreate{Title: f.Title(), Content: f.Content()})
	if err != nil {
		return fmt.Errorf("create note: %w", err)
	}
	c.log.WithField("id", n.ID).Info("note created")
	f.Reset()
	return c.LoadNotes(ctx)
}

// SubmitAction creates an action item from the form, resets it and reloads.
func (c *Controller) SubmitAction(ctx context.Context, f ActionForm) error {
	a, err := c.backend.CreateActionItem(ctx, model.ActionItemCreate{Description: f.Description()})
	if err != nil {
		return fmt.Errorf("create action item: %w", err)
	}
	c.log.WithField("id", a.ID).Info("action item created")
	f.Reset()
	return c.LoadActions(ctx)
}

// Search runs the box's query. A blank query is ignored.
func (c *Controller) Search(ctx context.Context, box SearchBox) error {
	q := box.Query()
	if strings.TrimSpace(q) == "" {
		return nil
	}
	return c.SearchNotes(ctx, q)
}

// ClearSearch empties the box and reloads the unfiltered notes.
func (c *Controller) ClearSearch(ctx context.Context, box SearchBox) error {
	box.Clear()
	return c.LoadNotes(ctx)
}
