package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/idilsaglam/notes/internal/model"
)

// JSON-backed snapshot of the development backend. Single file,
// human-readable. The caller serializes access.

// Snapshot is everything the dev backend keeps.
type Snapshot struct {
	Notes        []model.Note       `json:"notes"`
	ActionItems  []model.ActionItem `json:"action_items"`
	NextNoteID   int64              `json:"next_note_id"`
	NextActionID int64              `json:"next_action_id"`
}

// Load reads the snapshot at path. A missing file is an empty snapshot.
func Load(path string) (Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{Notes: []model.Note{}, ActionItems: []model.ActionItem{}}, nil
		}
		return Snapshot{}, fmt.Errorf("read file: %w", err)
	}
	var s Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return s, nil
}

// Save writes the snapshot to path.
func Save(path string, s Snapshot) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
