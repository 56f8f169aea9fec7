package services

// GraphView is the read model handed to the rendering layer: every column,
// every note with its computed position, and every edge. Consumers treat it
// as read-only; the mutation methods on GraphService are the only write path.
type GraphView struct {
	Columns []ColumnView `json:"columns"`
	Notes   []NoteView   `json:"notes"`
	Edges   []EdgeView   `json:"edges"`
}

// ColumnView is the rendered shape of a column
type ColumnView struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	X     float64 `json:"x"`
}

// NoteView is the rendered shape of a note
type NoteView struct {
	ID       string       `json:"id"`
	Content  string       `json:"content"`
	ColumnID string       `json:"columnId"`
	Position PositionView `json:"position"`
	IsNew    bool         `json:"isNew"`
}

// PositionView is a note's computed coordinates
type PositionView struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EdgeView is the rendered shape of an edge
type EdgeView struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	Type         string `json:"type"`
	SourceHandle string `json:"sourceHandle"`
	TargetHandle string `json:"targetHandle"`
}
