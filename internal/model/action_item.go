package model

// ActionItem is a task record with a completion flag.
type ActionItem struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   Timestamp `json:"created_at,omitzero"`
	UpdatedAt   Timestamp `json:"updated_at,omitzero"`
}

// ActionItemCreate is the body of POST /action-items/.
type ActionItemCreate struct {
	Description string `json:"description"`
}

// Status is the bracketed state shown next to the description.
func (a ActionItem) Status() string {
	if a.Completed {
		return "done"
	}
	return "open"
}
