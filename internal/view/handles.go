package view

// List is an externally owned list widget. Replace swaps its whole content.
type List interface {
	Replace(entries []Entry)
}

// NoteForm is the note creation form.
type NoteForm interface {
	Title() string
	Content() string
	Reset()
}

// ActionForm is the action-item creation form.
type ActionForm interface {
	Description() string
	Reset()
}

// SearchBox is the note search input.
type SearchBox interface {
	Query() string
	Clear()
}

// ListFunc adapts a plain function to List.
type ListFunc func([]Entry)

func (f ListFunc) Replace(entries []Entry) { f(entries) }
