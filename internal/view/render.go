package view

import (
	"fmt"

	"github.com/idilsaglam/notes/internal/model"
)

// NoResults is the placeholder shown for an empty note list.
const NoResults = "No results found"

// Entry is one rendered list row.
// Completable marks rows that carry a completion control for ItemID.
type Entry struct {
	Text        string
	ItemID      int64
	Completable bool
	Done        bool
	Placeholder bool
}

// RenderNotes projects notes into list rows, "{title}: {content}" each.
func RenderNotes(notes []model.Note) []Entry {
	if len(notes) == 0 {
		return []Entry{{Text: NoResults, Placeholder: true}}
	}
	out := make([]Entry, 0, len(notes))
	for _, n := range notes {
		out = append(out, Entry{
			Text:   fmt.Sprintf("%s: %s", n.Title, n.Content),
			ItemID: n.ID,
		})
	}
	return out
}

// RenderActions projects action items into rows, "{description} [done|open]".
// Open items get a completion control.
func RenderActions(items []model.ActionItem) []Entry {
	out := make([]Entry, 0, len(items))
	for _, a := range items {
		out = append(out, Entry{
			Text:        fmt.Sprintf("%s [%s]", a.Description, a.Status()),
			ItemID:      a.ID,
			Completable: !a.Completed,
			Done:        a.Completed,
		})
	}
	return out
}
