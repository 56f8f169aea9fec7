package aggregates

import (
	"fmt"
	"time"

	"riboflavin-backend/domain/config"
	"riboflavin-backend/domain/core/entities"
	"riboflavin-backend/domain/core/valueobjects"
	"riboflavin-backend/domain/events"
	"riboflavin-backend/domain/layout"
	"riboflavin-backend/domain/transcript"
)

// TranscriptGraph is the aggregate root for the note board. It is the
// single owner and sole mutator of columns, notes and edges at runtime;
// ingestion replaces its contents wholesale, and every later change flows
// through the mutation methods below.
//
// Mutations that reference unknown ids are no-ops, never errors: the UI may
// race ahead of a just-deleted entity, and the board must shrug that off.
//
// The aggregate itself is not safe for concurrent mutation; callers must
// serialize access (GraphService does so with a single mutex).
type TranscriptGraph struct {
	columns []*entities.Column
	notes   []*entities.Note
	edges   []*entities.Edge

	columnIndex map[string]*entities.Column
	noteIndex   map[string]*entities.Note

	nextNoteSeq    int
	lastEdgeType   entities.EdgeType
	lastAnnotation map[string]valueobjects.NoteID

	layoutCfg *config.LayoutConfig
	events    []events.DomainEvent
}

// NewTranscriptGraph creates an empty graph
func NewTranscriptGraph(cfg *config.LayoutConfig) *TranscriptGraph {
	if cfg == nil {
		cfg = config.DefaultLayoutConfig()
	}
	return &TranscriptGraph{
		columnIndex:    make(map[string]*entities.Column),
		noteIndex:      make(map[string]*entities.Note),
		nextNoteSeq:    1,
		lastEdgeType:   entities.EdgeTypeDefault,
		lastAnnotation: make(map[string]valueobjects.NoteID),
		layoutCfg:      cfg,
	}
}

// Replace swaps the whole column/note/edge set atomically. Ingestion builds
// the complete new graph first and only then calls Replace, so a failed
// ingestion never leaves a half-applied board. The annotation bookkeeping
// resets; the last used edge type survives as a UI default.
func (g *TranscriptGraph) Replace(columns []*entities.Column, notes []*entities.Note, edges []*entities.Edge) {
	g.columns = columns
	g.notes = notes
	g.edges = edges

	g.columnIndex = make(map[string]*entities.Column, len(columns))
	for _, c := range columns {
		g.columnIndex[c.ID()] = c
	}
	g.noteIndex = make(map[string]*entities.Note, len(notes))
	maxSeq := 0
	for _, n := range notes {
		g.noteIndex[n.ID().String()] = n
		if s := n.ID().Sequence(); s > maxSeq {
			maxSeq = s
		}
	}
	g.nextNoteSeq = maxSeq + 1
	g.lastAnnotation = make(map[string]valueobjects.NoteID)

	g.addEvent(events.NewGraphReplaced(len(columns), len(notes), len(edges), time.Now()))
}

// CreateNote appends a blank note to the given column, below every existing
// note. The new note is flagged for auto-focus and the flag is cleared
// everywhere else. Returns a zero id and false when the column is unknown.
func (g *TranscriptGraph) CreateNote(columnID string) (valueobjects.NoteID, bool) {
	col, ok := g.columnIndex[columnID]
	if !ok {
		return valueobjects.NoteID{}, false
	}

	y := g.layoutCfg.TopMargin
	if len(g.notes) > 0 {
		lowest := g.notes[0]
		for _, n := range g.notes[1:] {
			if n.Position().Y() > lowest.Position().Y() {
				lowest = n
			}
		}
		y = lowest.Position().Y() + layout.EstimateHeight(lowest.Content(), g.layoutCfg) + g.layoutCfg.NoteSpacing
	}

	id := valueobjects.NewNoteID(g.nextNoteSeq)
	note, err := entities.NewNote(id, "", col.ID())
	if err != nil {
		return valueobjects.NoteID{}, false
	}
	g.nextNoteSeq++

	pos, err := valueobjects.NewPosition(g.noteX(col), y)
	if err != nil {
		return valueobjects.NoteID{}, false
	}
	note.MoveTo(pos)

	for _, n := range g.notes {
		n.ClearNew()
	}
	note.MarkNew()

	g.notes = append(g.notes, note)
	g.noteIndex[id.String()] = note

	g.addEvent(events.NewNoteCreated(id, col.ID(), time.Now()))
	return id, true
}

// UpdateNoteContent replaces a note's text and clears its auto-focus flag.
// Positions are fixed at placement time; a content edit does not move any
// note. Returns false (no-op) when the id is unknown.
func (g *TranscriptGraph) UpdateNoteContent(id, content string) bool {
	note, ok := g.noteIndex[id]
	if !ok {
		return false
	}

	note.SetContent(content)
	g.addEvent(events.NewNoteContentUpdated(note.ID(), time.Now()))
	return true
}

// Connect appends a plain connector edge between two notes and returns its
// id. Endpoints are not checked: connecting unknown ids produces a dangling
// edge, and an identical edge may be appended twice. Both behaviors are
// part of the observed contract.
func (g *TranscriptGraph) Connect(sourceID, targetID string) string {
	source, err := valueobjects.NewNoteIDFromString(sourceID)
	if err != nil {
		return ""
	}
	target, err := valueobjects.NewNoteIDFromString(targetID)
	if err != nil {
		return ""
	}

	edge, err := entities.NewEdge(
		fmt.Sprintf("edge-%s-%s", sourceID, targetID),
		source, target,
		entities.EdgeTypeDefault,
		"", "",
	)
	if err != nil {
		return ""
	}

	g.edges = append(g.edges, edge)
	g.addEvent(events.NewNotesConnected(source, target, string(entities.EdgeTypeDefault), time.Now()))
	return edge.ID()
}

// DeleteNote removes a note and every edge where it is source or target.
// Returns false (no-op) when the id is unknown.
func (g *TranscriptGraph) DeleteNote(id string) bool {
	note, ok := g.noteIndex[id]
	if !ok {
		return false
	}

	delete(g.noteIndex, id)
	delete(g.lastAnnotation, id)

	notes := g.notes[:0]
	for _, n := range g.notes {
		if n != note {
			notes = append(notes, n)
		}
	}
	g.notes = notes

	removed := 0
	edges := g.edges[:0]
	for _, e := range g.edges {
		if e.Involves(note.ID()) {
			removed++
			continue
		}
		edges = append(edges, e)
	}
	g.edges = edges

	g.addEvent(events.NewNoteDeleted(note.ID(), removed, time.Now()))
	return true
}

// AddAnnotationNote creates a pre-filled note in the derived annotation
// lane with a typed edge back to its source. The lane is created lazily to
// the right of the rightmost column. The first annotation for a source is
// aligned with the source's y; later ones stack below the most recent
// annotation for that same source. The edge type becomes the new "last
// used" default. Returns a zero id and false when the source is unknown.
func (g *TranscriptGraph) AddAnnotationNote(content, sourceID string, edgeType entities.EdgeType) (valueobjects.NoteID, bool) {
	source, ok := g.noteIndex[sourceID]
	if !ok {
		return valueobjects.NoteID{}, false
	}
	if edgeType == "" {
		edgeType = g.lastEdgeType
	}

	col := g.annotationColumn()

	y := source.Position().Y()
	if lastID, ok := g.lastAnnotation[sourceID]; ok {
		// Stale entries (annotation since deleted) fall back to source alignment.
		if last, ok := g.noteIndex[lastID.String()]; ok {
			y = last.Position().Y() + layout.EstimateHeight(last.Content(), g.layoutCfg) + g.layoutCfg.NoteSpacing
		}
	}

	id := valueobjects.NewNoteID(g.nextNoteSeq)
	note, err := entities.NewNote(id, content, col.ID())
	if err != nil {
		return valueobjects.NoteID{}, false
	}
	g.nextNoteSeq++

	pos, err := valueobjects.NewPosition(g.noteX(col), y)
	if err != nil {
		return valueobjects.NoteID{}, false
	}
	note.MoveTo(pos)

	edge, err := entities.NewEdge(
		fmt.Sprintf("edge-%s-%s", sourceID, id.String()),
		source.ID(), id,
		edgeType,
		"", "",
	)
	if err != nil {
		return valueobjects.NoteID{}, false
	}

	g.notes = append(g.notes, note)
	g.noteIndex[id.String()] = note
	g.edges = append(g.edges, edge)
	g.lastAnnotation[sourceID] = id
	g.lastEdgeType = edgeType

	g.addEvent(events.NewAnnotationAdded(id, source.ID(), string(edgeType), time.Now()))
	return id, true
}

// annotationColumn returns the untitled lane, creating it to the right of
// the rightmost column on first use.
func (g *TranscriptGraph) annotationColumn() *entities.Column {
	for _, c := range g.columns {
		if c.IsUntitled() {
			return c
		}
	}

	x := 0.0
	if len(g.columns) > 0 {
		maxX := g.columns[0].X()
		for _, c := range g.columns[1:] {
			if c.X() > maxX {
				maxX = c.X()
			}
		}
		x = maxX + g.layoutCfg.ColumnWidth + g.layoutCfg.ColumnSpacing
	}

	col, err := entities.NewColumn(fmt.Sprintf("column-%d", len(g.columns)+1), "", x)
	if err != nil {
		// Unreachable: id is always non-empty.
		return nil
	}
	g.columns = append(g.columns, col)
	g.columnIndex[col.ID()] = col
	return col
}

// noteX centers a note horizontally within a column
func (g *TranscriptGraph) noteX(col *entities.Column) float64 {
	return col.X() + (g.layoutCfg.ColumnWidth-g.layoutCfg.NoteWidth)/2
}

// Columns returns the column list in display order
func (g *TranscriptGraph) Columns() []*entities.Column {
	columns := make([]*entities.Column, len(g.columns))
	copy(columns, g.columns)
	return columns
}

// Notes returns the note list in creation order
func (g *TranscriptGraph) Notes() []*entities.Note {
	notes := make([]*entities.Note, len(g.notes))
	copy(notes, g.notes)
	return notes
}

// Edges returns the edge list
func (g *TranscriptGraph) Edges() []*entities.Edge {
	edges := make([]*entities.Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// FindNote looks up a note by id
func (g *TranscriptGraph) FindNote(id string) (*entities.Note, bool) {
	n, ok := g.noteIndex[id]
	return n, ok
}

// FindColumn looks up a column by id
func (g *TranscriptGraph) FindColumn(id string) (*entities.Column, bool) {
	c, ok := g.columnIndex[id]
	return c, ok
}

// LastEdgeType returns the edge type of the most recent annotation, used
// as the default in annotation UIs.
func (g *TranscriptGraph) LastEdgeType() entities.EdgeType {
	return g.lastEdgeType
}

// LinkedNotes returns the ids of every note connected to the given note by
// an edge in either direction. Relationship questions are answered from the
// edge set alone, never from presentation state.
func (g *TranscriptGraph) LinkedNotes(id string) []string {
	nid, err := valueobjects.NewNoteIDFromString(id)
	if err != nil {
		return nil
	}

	var linked []string
	seen := make(map[string]bool)
	for _, e := range g.edges {
		var other valueobjects.NoteID
		switch {
		case e.Source().Equals(nid):
			other = e.Target()
		case e.Target().Equals(nid):
			other = e.Source()
		default:
			continue
		}
		if !seen[other.String()] {
			seen[other.String()] = true
			linked = append(linked, other.String())
		}
	}
	return linked
}

// Snapshot serializes the graph back into the transcript document shape for
// outbound persistence. Notes are grouped under their owning columns in
// creation order.
func (g *TranscriptGraph) Snapshot() transcript.Document {
	doc := transcript.Document{
		Columns: make([]transcript.DocumentColumn, 0, len(g.columns)),
		Edges:   make([]transcript.DocumentEdge, 0, len(g.edges)),
	}

	notesByColumn := make(map[string][]transcript.DocumentNote)
	for _, n := range g.notes {
		notesByColumn[n.ColumnID()] = append(notesByColumn[n.ColumnID()], transcript.DocumentNote{
			ID:       n.ID().String(),
			Content:  n.Content(),
			ColumnID: n.ColumnID(),
		})
	}

	for _, c := range g.columns {
		doc.Columns = append(doc.Columns, transcript.DocumentColumn{
			ID:    c.ID(),
			Title: c.Title(),
			Notes: notesByColumn[c.ID()],
		})
	}

	for _, e := range g.edges {
		doc.Edges = append(doc.Edges, transcript.DocumentEdge{
			ID:           e.ID(),
			Source:       e.Source().String(),
			Target:       e.Target().String(),
			Type:         string(e.Type()),
			SourceHandle: e.SourceHandle(),
			TargetHandle: e.TargetHandle(),
		})
	}

	return doc
}

// GetUncommittedEvents returns all uncommitted domain events
func (g *TranscriptGraph) GetUncommittedEvents() []events.DomainEvent {
	return g.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (g *TranscriptGraph) MarkEventsAsCommitted() {
	g.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (g *TranscriptGraph) addEvent(event events.DomainEvent) {
	g.events = append(g.events, event)
}
