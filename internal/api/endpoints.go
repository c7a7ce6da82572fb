package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/idilsaglam/notes/internal/model"
)

const (
	notesPath       = "/notes/"
	notesSearchPath = "/notes/search/"
	actionItemsPath = "/action-items/"
)

// EscapeQuery percent-encodes a query value the way browsers'
// encodeURIComponent does: only A-Z a-z 0-9 and -_.!~*'() pass through,
// so a space becomes %20 and never "+".
func EscapeQuery(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnescaped(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnescaped(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// ListNotes returns every note.
func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := c.FetchJSON(ctx, http.MethodGet, notesPath, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SearchNotes returns notes matching query.
func (c *Client) SearchNotes(ctx context.Context, query string) ([]model.Note, error) {
	var notes []model.Note
	path := notesSearchPath + "?q=" + EscapeQuery(query)
	if err := c.FetchJSON(ctx, http.MethodGet, path, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote posts a new note and returns what the backend stored.
func (c *Client) CreateNote(ctx context.Context, in model.NoteCreate) (model.Note, error) {
	var n model.Note
	err := c.FetchJSON(ctx, http.MethodPost, notesPath, in, &n)
	return n, err
}

// ListActionItems returns every action item.
func (c *Client) ListActionItems(ctx context.Context) ([]model.ActionItem, error) {
	var items []model.ActionItem
	if err := c.FetchJSON(ctx, http.MethodGet, actionItemsPath, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateActionItem posts a new action item.
func (c *Client) CreateActionItem(ctx context.Context, in model.ActionItemCreate) (model.ActionItem, error) {
	var a model.ActionItem
	err := c.FetchJSON(ctx, http.MethodPost, actionItemsPath, in, &a)
	return a, err
}

// CompleteActionItem marks the item done.
func (c *Client) CompleteActionItem(ctx context.Context, id int64) (model.ActionItem, error) {
	var a model.ActionItem
	path := actionItemsPath + strconv.FormatInt(id, 10) + "/complete"
	err := c.FetchJSON(ctx, http.MethodPut, path, nil, &a)
	return a, err
}
