package events

import (
	"time"

	"riboflavin-backend/domain/core/valueobjects"
)

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// Note Events

// NoteCreated is raised when a new note is created interactively
type NoteCreated struct {
	BaseEvent
	NoteID   valueobjects.NoteID `json:"note_id"`
	ColumnID string              `json:"column_id"`
}

// NewNoteCreated creates a NoteCreated event
func NewNoteCreated(noteID valueobjects.NoteID, columnID string, timestamp time.Time) NoteCreated {
	return NoteCreated{
		BaseEvent: BaseEvent{
			AggregateID: noteID.String(),
			EventType:   "note.created",
			Timestamp:   timestamp,
		},
		NoteID:   noteID,
		ColumnID: columnID,
	}
}

// NoteContentUpdated is raised when note content is edited
type NoteContentUpdated struct {
	BaseEvent
	NoteID valueobjects.NoteID `json:"note_id"`
}

// NewNoteContentUpdated creates a NoteContentUpdated event
func NewNoteContentUpdated(noteID valueobjects.NoteID, timestamp time.Time) NoteContentUpdated {
	return NoteContentUpdated{
		BaseEvent: BaseEvent{
			AggregateID: noteID.String(),
			EventType:   "note.content_updated",
			Timestamp:   timestamp,
		},
		NoteID: noteID,
	}
}

// NoteDeleted is raised when a note and its incident edges are removed
type NoteDeleted struct {
	BaseEvent
	NoteID       valueobjects.NoteID `json:"note_id"`
	EdgesRemoved int                 `json:"edges_removed"`
}

// NewNoteDeleted creates a NoteDeleted event
func NewNoteDeleted(noteID valueobjects.NoteID, edgesRemoved int, timestamp time.Time) NoteDeleted {
	return NoteDeleted{
		BaseEvent: BaseEvent{
			AggregateID: noteID.String(),
			EventType:   "note.deleted",
			Timestamp:   timestamp,
		},
		NoteID:       noteID,
		EdgesRemoved: edgesRemoved,
	}
}

// NotesConnected is raised when an edge is appended between two notes
type NotesConnected struct {
	BaseEvent
	SourceID valueobjects.NoteID `json:"source_id"`
	TargetID valueobjects.NoteID `json:"target_id"`
	EdgeType string              `json:"edge_type"`
}

// NewNotesConnected creates a NotesConnected event
func NewNotesConnected(sourceID, targetID valueobjects.NoteID, edgeType string, timestamp time.Time) NotesConnected {
	return NotesConnected{
		BaseEvent: BaseEvent{
			AggregateID: sourceID.String(),
			EventType:   "notes.connected",
			Timestamp:   timestamp,
		},
		SourceID: sourceID,
		TargetID: targetID,
		EdgeType: edgeType,
	}
}

// AnnotationAdded is raised when an annotation note is attached to a source note
type AnnotationAdded struct {
	BaseEvent
	NoteID   valueobjects.NoteID `json:"note_id"`
	SourceID valueobjects.NoteID `json:"source_id"`
	EdgeType string              `json:"edge_type"`
}

// NewAnnotationAdded creates an AnnotationAdded event
func NewAnnotationAdded(noteID, sourceID valueobjects.NoteID, edgeType string, timestamp time.Time) AnnotationAdded {
	return AnnotationAdded{
		BaseEvent: BaseEvent{
			AggregateID: noteID.String(),
			EventType:   "annotation.added",
			Timestamp:   timestamp,
		},
		NoteID:   noteID,
		SourceID: sourceID,
		EdgeType: edgeType,
	}
}

// GraphReplaced is raised when ingestion swaps the whole graph atomically
type GraphReplaced struct {
	BaseEvent
	ColumnCount int `json:"column_count"`
	NoteCount   int `json:"note_count"`
	EdgeCount   int `json:"edge_count"`
}

// NewGraphReplaced creates a GraphReplaced event
func NewGraphReplaced(columns, notes, edges int, timestamp time.Time) GraphReplaced {
	return GraphReplaced{
		BaseEvent: BaseEvent{
			AggregateID: "transcript-graph",
			EventType:   "graph.replaced",
			Timestamp:   timestamp,
		},
		ColumnCount: columns,
		NoteCount:   notes,
		EdgeCount:   edges,
	}
}
