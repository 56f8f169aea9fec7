package entities

import (
	"riboflavin-backend/domain/core/valueobjects"
	pkgerrors "riboflavin-backend/pkg/errors"
)

// EdgeType defines the kind of connector drawn between two notes
type EdgeType string

const (
	EdgeTypeDefault  EdgeType = "smoothstep"
	EdgeTypeYes      EdgeType = "yes"
	EdgeTypeNo       EdgeType = "no"
	EdgeTypeEllipsis EdgeType = "ellipsis"
)

// Attachment sides for edge endpoints
const (
	HandleLeft   = "left"
	HandleRight  = "right"
	HandleTop    = "top"
	HandleBottom = "bottom"
)

// Edge is a typed directed relation between two notes. Endpoints are not
// validated against the note set: a connect racing a delete may leave a
// dangling edge, and duplicates are permitted.
type Edge struct {
	id           string
	source       valueobjects.NoteID
	target       valueobjects.NoteID
	edgeType     EdgeType
	sourceHandle string
	targetHandle string
}

// NewEdge creates an edge, defaulting the type to the plain connector and
// the attachment sides to right/left when unspecified.
func NewEdge(id string, source, target valueobjects.NoteID, edgeType EdgeType, sourceHandle, targetHandle string) (*Edge, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("edge id cannot be empty")
	}
	if source.IsZero() || target.IsZero() {
		return nil, pkgerrors.NewValidationError("edge endpoints cannot be empty")
	}
	if edgeType == "" {
		edgeType = EdgeTypeDefault
	}
	if sourceHandle == "" {
		sourceHandle = HandleRight
	}
	if targetHandle == "" {
		targetHandle = HandleLeft
	}
	return &Edge{
		id:           id,
		source:       source,
		target:       target,
		edgeType:     edgeType,
		sourceHandle: sourceHandle,
		targetHandle: targetHandle,
	}, nil
}

// ID returns the edge's unique identifier
func (e *Edge) ID() string {
	return e.id
}

// Source returns the id of the note the edge starts at
func (e *Edge) Source() valueobjects.NoteID {
	return e.source
}

// Target returns the id of the note the edge points to
func (e *Edge) Target() valueobjects.NoteID {
	return e.target
}

// Type returns the connector type
func (e *Edge) Type() EdgeType {
	return e.edgeType
}

// SourceHandle returns the attachment side on the source note
func (e *Edge) SourceHandle() string {
	return e.sourceHandle
}

// TargetHandle returns the attachment side on the target note
func (e *Edge) TargetHandle() string {
	return e.targetHandle
}

// Involves reports whether the edge touches the given note
func (e *Edge) Involves(id valueobjects.NoteID) bool {
	return e.source.Equals(id) || e.target.Equals(id)
}
