package services

import (
	"sync"

	"riboflavin-backend/domain/config"
	"riboflavin-backend/domain/core/aggregates"
	"riboflavin-backend/domain/core/entities"
	"riboflavin-backend/domain/layout"
	"riboflavin-backend/domain/transcript"
	pkgerrors "riboflavin-backend/pkg/errors"

	"go.uber.org/zap"
)

// GraphService owns the long-lived transcript graph and runs the ingestion
// pipeline (normalize, group into columns, place, build edges) in front of
// it. HTTP handlers call it concurrently, so all access is serialized
// behind one mutex; the aggregate underneath assumes a single writer.
type GraphService struct {
	mu     sync.Mutex
	graph  *aggregates.TranscriptGraph
	cfg    *config.LayoutConfig
	logger *zap.Logger
}

// NewGraphService creates a graph service with an empty graph
func NewGraphService(cfg *config.LayoutConfig, logger *zap.Logger) *GraphService {
	if cfg == nil {
		cfg = config.DefaultLayoutConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphService{
		graph:  aggregates.NewTranscriptGraph(cfg),
		cfg:    cfg,
		logger: logger,
	}
}

// IngestDialogue builds a fresh graph from raw (speaker, text) pairs and
// swaps it in atomically.
func (s *GraphService) IngestDialogue(entries []transcript.Entry, viewportWidth float64) {
	if viewportWidth <= 0 {
		viewportWidth = s.cfg.DefaultViewportWidth
	}

	normalized := transcript.NormalizeSpeakers(entries)
	columns := layout.BuildColumns(normalized, viewportWidth, s.cfg)
	notes := layout.PlaceDialogue(normalized, columns, s.cfg)
	edges := layout.BuildSequentialEdges(notes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.Replace(columns, notes, edges)
	s.drainEvents()

	s.logger.Info("dialogue ingested",
		zap.Int("entries", len(entries)),
		zap.Int("columns", len(columns)),
		zap.Int("notes", len(notes)),
		zap.Int("edges", len(edges)),
	)
}

// IngestDocument builds a fresh graph from a pre-parsed transcript document
// and swaps it in atomically. Duplicate-titled columns are merged and
// blank-titled ones dropped before placement; document edges pass through
// with defaults, and a document without edges gets sequential ones. The
// complete new state is assembled before Replace, so the prior graph stays
// untouched if anything upstream failed.
func (s *GraphService) IngestDocument(doc transcript.Document, viewportWidth float64) {
	if viewportWidth <= 0 {
		viewportWidth = s.cfg.DefaultViewportWidth
	}

	columns, remap := layout.MergeDocumentColumns(doc.Columns, s.cfg)
	layout.CenterColumns(columns, viewportWidth, s.cfg)

	notes := layout.PlaceDocument(doc, columns, remap, s.cfg, func(noteID, columnID string) {
		s.logger.Warn("note skipped: column reference not resolved",
			zap.String("noteID", noteID),
			zap.String("columnID", columnID),
		)
	})

	var edges []*entities.Edge
	if len(doc.Edges) > 0 {
		edges = layout.NormalizeDocumentEdges(doc.Edges)
	} else {
		edges = layout.BuildSequentialEdges(notes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.graph.Replace(columns, notes, edges)
	s.drainEvents()

	s.logger.Info("document ingested",
		zap.Int("columns", len(columns)),
		zap.Int("notes", len(notes)),
		zap.Int("edges", len(edges)),
	)
}

// IngestText parses raw transcript text into a document and ingests it.
// The parsed document is returned so callers can persist or echo it.
func (s *GraphService) IngestText(text string, viewportWidth float64) (transcript.Document, error) {
	entries := transcript.ParseDialogue(text)
	if len(entries) == 0 {
		return transcript.Document{}, pkgerrors.NewValidationError("no dialogue found in text")
	}

	doc := transcript.BuildDocument(transcript.NormalizeSpeakers(entries))
	s.IngestDocument(doc, viewportWidth)
	return doc, nil
}

// CreateNote appends a blank note to a column. Returns the new note's id;
// an unknown column is a logged no-op.
func (s *GraphService) CreateNote(columnID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.graph.CreateNote(columnID)
	if !ok {
		s.logger.Warn("create note ignored: unknown column", zap.String("columnID", columnID))
		return "", false
	}
	s.drainEvents()
	return id.String(), true
}

// UpdateNoteContent replaces a note's text. An unknown note is a logged no-op.
func (s *GraphService) UpdateNoteContent(id, content string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.graph.UpdateNoteContent(id, content) {
		s.logger.Warn("update ignored: unknown note", zap.String("noteID", id))
		return false
	}
	s.drainEvents()
	return true
}

// Connect appends a plain connector edge and returns its id
func (s *GraphService) Connect(sourceID, targetID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.graph.Connect(sourceID, targetID)
	s.drainEvents()
	return id
}

// DeleteNote removes a note and its incident edges. An unknown note is a
// logged no-op.
func (s *GraphService) DeleteNote(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.graph.DeleteNote(id) {
		s.logger.Warn("delete ignored: unknown note", zap.String("noteID", id))
		return false
	}
	s.drainEvents()
	return true
}

// AddAnnotationNote creates an annotation note linked to a source note.
// An unknown source is a logged no-op.
func (s *GraphService) AddAnnotationNote(content, sourceID, edgeType string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.graph.AddAnnotationNote(content, sourceID, entities.EdgeType(edgeType))
	if !ok {
		s.logger.Warn("annotation ignored: unknown source note", zap.String("sourceID", sourceID))
		return "", false
	}
	s.drainEvents()
	return id.String(), true
}

// LastEdgeType returns the annotation UI's current default edge type
func (s *GraphService) LastEdgeType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.graph.LastEdgeType())
}

// ScrollBounds computes the scroll clamp range for the current note set
func (s *GraphService) ScrollBounds(visibleHeight float64) layout.ScrollBounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return layout.ComputeScrollBounds(
		layout.PlacementsFromNotes(s.graph.Notes(), s.cfg),
		visibleHeight,
		s.cfg,
	)
}

// Snapshot serializes the current graph into the transcript document shape
func (s *GraphService) Snapshot() transcript.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graph.Snapshot()
}

// View builds the read model the rendering layer consumes
func (s *GraphService) View() GraphView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := GraphView{
		Columns: make([]ColumnView, 0, len(s.graph.Columns())),
		Notes:   []NoteView{},
		Edges:   []EdgeView{},
	}

	for _, c := range s.graph.Columns() {
		view.Columns = append(view.Columns, ColumnView{
			ID:    c.ID(),
			Title: c.Title(),
			X:     c.X(),
		})
	}

	for _, n := range s.graph.Notes() {
		view.Notes = append(view.Notes, NoteView{
			ID:       n.ID().String(),
			Content:  n.Content(),
			ColumnID: n.ColumnID(),
			Position: PositionView{X: n.Position().X(), Y: n.Position().Y()},
			IsNew:    n.IsNew(),
		})
	}

	for _, e := range s.graph.Edges() {
		view.Edges = append(view.Edges, EdgeView{
			ID:           e.ID(),
			Source:       e.Source().String(),
			Target:       e.Target().String(),
			Type:         string(e.Type()),
			SourceHandle: e.SourceHandle(),
			TargetHandle: e.TargetHandle(),
		})
	}

	return view
}

// drainEvents logs and discards the aggregate's uncommitted events.
// Callers must hold the mutex.
func (s *GraphService) drainEvents() {
	for _, e := range s.graph.GetUncommittedEvents() {
		s.logger.Debug("graph event",
			zap.String("type", e.GetEventType()),
			zap.String("aggregateID", e.GetAggregateID()),
		)
	}
	s.graph.MarkEventsAsCommitted()
}
