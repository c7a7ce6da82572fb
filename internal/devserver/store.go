package devserver

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/idilsaglam/notes/internal/model"
	"github.com/idilsaglam/notes/internal/store/jsonstore"
)

// ErrNotFound is returned for unknown ids.
var ErrNotFound = errors.New("not found")

// Store is the in-memory state of the dev backend, optionally snapshotted to
// a JSON file after every mutation.
type Store struct {
	mu   sync.Mutex
	snap jsonstore.Snapshot
	path string
	now  func() time.Time
}

// NewStore loads path when given; an empty path keeps data in memory only.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path, now: time.Now}
	if path == "" {
		return s, nil
	}
	snap, err := jsonstore.Load(path)
	if err != nil {
		return nil, err
	}
	s.snap = snap
	return s, nil
}

// commit applies fn to a copy of the state and keeps it only when the
// snapshot write succeeds. Callers hold s.mu.
func (s *Store) commit(fn func(*jsonstore.Snapshot) error) error {
	next := jsonstore.Snapshot{
		Notes:        slices.Clone(s.snap.Notes),
		ActionItems:  slices.Clone(s.snap.ActionItems),
		NextNoteID:   s.snap.NextNoteID,
		NextActionID: s.snap.NextActionID,
	}
	if err := fn(&next); err != nil {
		return err
	}
	if s.path != "" {
		if err := jsonstore.Save(s.path, next); err != nil {
			return err
		}
	}
	s.snap = next
	return nil
}

// ListNotes returns all notes in creation order.
func (s *Store) ListNotes() []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Note{}, s.snap.Notes...)
}

// SearchNotes matches q case-insensitively against title and content.
// An empty q matches everything.
func (s *Store) SearchNotes(q string) []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	q = strings.ToLower(q)
	out := []model.Note{}
	for _, n := range s.snap.Notes {
		if q == "" ||
			strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// GetNote looks a note up by id.
func (s *Store) GetNote(id int64) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.snap.Notes {
		if n.ID == id {
			return n, nil
		}
	}
	return model.Note{}, ErrNotFound
}

// CreateNote stores a new note. Inputs are expected to be validated.
func (s *Store) CreateNote(in model.NoteCreate) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := model.Timestamp{Time: s.now().UTC()}
	var n model.Note
	err := s.commit(func(snap *jsonstore.Snapshot) error {
		snap.NextNoteID++
		n = model.Note{
			ID:        snap.NextNoteID,
			Title:     in.Title,
			Content:   in.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		snap.Notes = append(snap.Notes, n)
		return nil
	})
	if err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// ListActionItems returns action items, filtered by completion when
// completed is non-nil.
func (s *Store) ListActionItems(completed *bool) []model.ActionItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.ActionItem{}
	for _, a := range s.snap.ActionItems {
		if completed != nil && a.Completed != *completed {
			continue
		}
		out = append(out, a)
	}
	return out
}

// GetActionItem looks an action item up by id.
func (s *Store) GetActionItem(id int64) (model.ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := actionIndex(s.snap.ActionItems, id); i >= 0 {
		return s.snap.ActionItems[i], nil
	}
	return model.ActionItem{}, ErrNotFound
}

// CreateActionItem stores a new, open action item.
func (s *Store) CreateActionItem(in model.ActionItemCreate) (model.ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := model.Timestamp{Time: s.now().UTC()}
	var a model.ActionItem
	err := s.commit(func(snap *jsonstore.Snapshot) error {
		snap.NextActionID++
		a = model.ActionItem{
			ID:          snap.NextActionID,
			Description: in.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		snap.ActionItems = append(snap.ActionItems, a)
		return nil
	})
	if err != nil {
		return model.ActionItem{}, err
	}
	return a, nil
}

// CompleteActionItem marks an item done. Completing twice is a no-op.
func (s *Store) CompleteActionItem(id int64) (model.ActionItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var a model.ActionItem
	err := s.commit(func(snap *jsonstore.Snapshot) error {
		i := actionIndex(snap.ActionItems, id)
		if i < 0 {
			return ErrNotFound
		}
		it := &snap.ActionItems[i]
		if !it.Completed {
			it.Completed = true
			it.UpdatedAt = model.Timestamp{Time: s.now().UTC()}
		}
		a = *it
		return nil
	})
	if err != nil {
		return model.ActionItem{}, err
	}
	return a, nil
}

// DeleteActionItem removes an item.
func (s *Store) DeleteActionItem(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(func(snap *jsonstore.Snapshot) error {
		i := actionIndex(snap.ActionItems, id)
		if i < 0 {
			return ErrNotFound
		}
		snap.ActionItems = slices.Delete(snap.ActionItems, i, i+1)
		return nil
	})
}

func actionIndex(items []model.ActionItem, id int64) int {
	return slices.IndexFunc(items, func(a model.ActionItem) bool { return a.ID == id })
}
