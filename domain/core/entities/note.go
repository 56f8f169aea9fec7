package entities

import (
	"riboflavin-backend/domain/core/valueobjects"
	pkgerrors "riboflavin-backend/pkg/errors"
)

// Note is a single positioned content unit: one line of dialogue, or a
// user-authored annotation. Content is the only field the user mutates
// directly; position is derived by the layout engine.
type Note struct {
	id       valueobjects.NoteID
	content  string
	columnID string
	position valueobjects.Position
	isNew    bool
}

// NewNote creates a new note owned by the given column. Blank content is
// allowed: interactively created notes start empty.
func NewNote(id valueobjects.NoteID, content, columnID string) (*Note, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("note id cannot be empty")
	}
	if columnID == "" {
		return nil, pkgerrors.NewValidationError("note must belong to a column")
	}
	return &Note{
		id:       id,
		content:  content,
		columnID: columnID,
	}, nil
}

// ID returns the note's unique identifier
func (n *Note) ID() valueobjects.NoteID {
	return n.id
}

// Content returns the note's text
func (n *Note) Content() string {
	return n.content
}

// ColumnID returns the id of the owning column
func (n *Note) ColumnID() string {
	return n.columnID
}

// Position returns the note's computed position
func (n *Note) Position() valueobjects.Position {
	return n.position
}

// IsNew reports whether this is the most recently created note. The
// consuming UI uses it to drive auto-focus; at most one note has it set.
func (n *Note) IsNew() bool {
	return n.isNew
}

// SetContent replaces the note's text and clears the isNew flag.
// Positions are fixed at placement time and are not recomputed here.
func (n *Note) SetContent(content string) {
	n.content = content
	n.isNew = false
}

// MoveTo assigns the note's derived position. Only the layout engine and
// the owning graph call this.
func (n *Note) MoveTo(position valueobjects.Position) {
	n.position = position
}

// MarkNew flags the note as the most recently created one
func (n *Note) MarkNew() {
	n.isNew = true
}

// ClearNew resets the auto-focus flag
func (n *Note) ClearNew() {
	n.isNew = false
}

// SetColumnID reassigns the owning column. Used when document columns are
// merged during ingestion.
func (n *Note) SetColumnID(columnID string) {
	n.columnID = columnID
}
