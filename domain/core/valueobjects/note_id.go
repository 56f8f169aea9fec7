package valueobjects

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NoteID is a value object identifying a note. Engine-created notes carry a
// sequential id of the form "note-N"; ids arriving in an external transcript
// document are accepted as-is. Chronological order is recovered by comparing
// the numeric suffix.
type NoteID struct {
	value string
}

// NewNoteID creates a NoteID from a creation sequence number
func NewNoteID(seq int) NoteID {
	return NoteID{value: fmt.Sprintf("note-%d", seq)}
}

// NewNoteIDFromString creates a NoteID from an existing string
func NewNoteIDFromString(id string) (NoteID, error) {
	if id == "" {
		return NoteID{}, errors.New("note ID cannot be empty")
	}
	return NoteID{value: id}, nil
}

// String returns the string representation of the NoteID
func (id NoteID) String() string {
	return id.value
}

// Equals checks if two NoteIDs are equal
func (id NoteID) Equals(other NoteID) bool {
	return id.value == other.value
}

// IsZero checks if the NoteID is the zero value
func (id NoteID) IsZero() bool {
	return id.value == ""
}

// Sequence returns the numeric suffix of the id, or 0 when the id carries
// no parseable suffix. Sorting on Sequence restores creation order.
func (id NoteID) Sequence() int {
	i := strings.LastIndex(id.value, "-")
	if i < 0 || i == len(id.value)-1 {
		return 0
	}
	n, err := strconv.Atoi(id.value[i+1:])
	if err != nil {
		return 0
	}
	return n
}

// MarshalJSON implements json.Marshaler
func (id NoteID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.value + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (id *NoteID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("NoteID must be a string")
	}
	id.value = string(data[1 : len(data)-1])
	return nil
}
