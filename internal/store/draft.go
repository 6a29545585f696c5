package store

import (
	"encoding/json"
	"fmt"
	"time"
)

const draftKey = "log_draft"

// Draft is the serialized state of an in-progress new-log form. It is
// overwritten on every autosave and cleared only by a successful submit.
type Draft struct {
	ProjectID    int64   `json:"projectId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	LogDate      string  `json:"logDate"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Achievements string  `json:"achievements"`
	Challenges   string  `json:"challenges"`
	Learnings    string  `json:"learnings"`
	CodeSnippets string  `json:"codeSnippets"`
	TechTagIDs   []int64 `json:"techTagIds"`
	Mood         string  `json:"mood"`
	SavedAt      string  `json:"savedAt"`
}

func (s *Store) SaveDraft(d Draft) error {
	d.SavedAt = time.Now().UTC().Format(time.RFC3339)
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return s.setValue(draftKey, string(data))
}

// LoadDraft returns the saved draft, or nil when none exists.
func (s *Store) LoadDraft() (*Draft, error) {
	raw, ok, err := s.getValue(draftKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

func (s *Store) ClearDraft() error {
	return s.deleteValue(draftKey)
}
