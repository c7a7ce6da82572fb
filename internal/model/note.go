package model

// Note is a titled text record owned by the backend.
// The client never edits or deletes notes; it only lists and creates them.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at,omitzero"`
	UpdatedAt Timestamp `json:"updated_at,omitzero"`
}

// NoteCreate is the body of POST /notes/.
type NoteCreate struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
