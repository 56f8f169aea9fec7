package config

import "fmt"

// LayoutConfig holds all configurable layout rules and constraints.
// Every coordinate the engine produces is derived from this one set of
// constants, so height estimation, placement and scroll bounds stay consistent.
type LayoutConfig struct {
	// Column geometry
	ColumnWidth   float64
	ColumnSpacing float64

	// Note geometry
	NoteWidth   float64
	NoteSpacing float64
	TopMargin   float64

	// Height estimation
	CharsPerLine    int
	LineHeight      float64
	VerticalPadding float64
	MinNoteHeight   float64

	// Viewport
	ScrollMargin         float64
	DefaultViewportWidth float64
}

// DefaultLayoutConfig returns the default layout configuration
func DefaultLayoutConfig() *LayoutConfig {
	return &LayoutConfig{
		ColumnWidth:   320,
		ColumnSpacing: 80,

		NoteWidth:   260,
		NoteSpacing: 40,
		TopMargin:   80,

		CharsPerLine:    45,
		LineHeight:      24,
		VerticalPadding: 60,
		MinNoteHeight:   120,

		ScrollMargin:         50,
		DefaultViewportWidth: 1600,
	}
}

// Validate checks if the configuration is usable
func (c *LayoutConfig) Validate() error {
	if c.CharsPerLine <= 0 {
		return fmt.Errorf("invalid layout config: CharsPerLine must be positive")
	}
	if c.ColumnWidth <= 0 || c.NoteWidth <= 0 {
		return fmt.Errorf("invalid layout config: column and note widths must be positive")
	}
	if c.MinNoteHeight <= 0 {
		return fmt.Errorf("invalid layout config: MinNoteHeight must be positive")
	}
	return nil
}
