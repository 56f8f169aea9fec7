package transcript

// Entry is one line of dialogue attributed to a speaker
type Entry struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Document is the external transcript document shape. It is produced by the
// parsers here, consumed by ingestion, and emitted again by the graph
// snapshot for outbound persistence. Stored copies are treated as opaque.
type Document struct {
	Columns []DocumentColumn `json:"columns"`
	Edges   []DocumentEdge   `json:"edges"`
}

// DocumentColumn is a column as it appears in a transcript document
type DocumentColumn struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Notes []DocumentNote `json:"notes"`
}

// DocumentNote is a note as it appears in a transcript document
type DocumentNote struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	ColumnID string `json:"columnId"`
}

// DocumentEdge is an edge as it appears in a transcript document. Type and
// handles are optional; ingestion defaults them.
type DocumentEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	Type         string `json:"type,omitempty"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

// IsEmpty reports whether the document carries no content at all
func (d Document) IsEmpty() bool {
	return len(d.Columns) == 0 && len(d.Edges) == 0
}
