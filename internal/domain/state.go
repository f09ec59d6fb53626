package domain

import "time"

// State is the persisted read position of a file input.
// It lets a restarted receiver resume after the last fully processed line.
type State struct {
	// Input is the absolute path of the file the offset refers to.
	Input string `json:"input"`

	// Offset is the byte offset just past the last processed line.
	Offset int64 `json:"offset"`

	// Lines is the number of lines processed since the state was created.
	Lines uint64 `json:"lines"`

	// UpdatedAt is when the state was last saved.
	UpdatedAt time.Time `json:"updated_at"`
}

// ResumeOffset returns the offset to seek to for input, or 0 when the
// state belongs to a different file.
func (s State) ResumeOffset(input string) int64 {
	if s.Input != input {
		return 0
	}
	return s.Offset
}
