package entities

import (
	pkgerrors "riboflavin-backend/pkg/errors"
)

// Column is a named vertical lane holding the notes attributed to one
// speaker. The derived annotation lane is the one column with an empty title.
type Column struct {
	id    string
	title string
	x     float64
}

// NewColumn creates a new column
func NewColumn(id, title string, x float64) (*Column, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("column id cannot be empty")
	}
	return &Column{
		id:    id,
		title: title,
		x:     x,
	}, nil
}

// ID returns the column's unique identifier
func (c *Column) ID() string {
	return c.id
}

// Title returns the speaker display name, empty for the annotation lane
func (c *Column) Title() string {
	return c.title
}

// X returns the column's leftmost horizontal coordinate
func (c *Column) X() float64 {
	return c.x
}

// SetX moves the column horizontally. Only the layout engine calls this,
// during the centering pass.
func (c *Column) SetX(x float64) {
	c.x = x
}

// IsUntitled reports whether this is a derived lane with no speaker
func (c *Column) IsUntitled() bool {
	return c.title == ""
}
