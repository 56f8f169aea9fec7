package layout

import (
	"fmt"

	"riboflavin-backend/domain/core/entities"
	"riboflavin-backend/domain/core/valueobjects"
	"riboflavin-backend/domain/transcript"
)

// BuildSequentialEdges synthesizes one plain connector per adjacent pair in
// the chronological placement sequence. Used when the ingested source
// carries no edges of its own.
func BuildSequentialEdges(notes []*entities.Note) []*entities.Edge {
	var edges []*entities.Edge
	for i := 0; i+1 < len(notes); i++ {
		edge, err := entities.NewEdge(
			fmt.Sprintf("edge-%d", i+1),
			notes[i].ID(),
			notes[i+1].ID(),
			entities.EdgeTypeDefault,
			"", "",
		)
		if err != nil {
			continue
		}
		edges = append(edges, edge)
	}
	return edges
}

// NormalizeDocumentEdges passes document-supplied edges through, defaulting
// the connector type and the right/left attachment sides when the document
// omits them. Endpoints are not validated against the note set; edges are
// descriptive metadata only.
func NormalizeDocumentEdges(docEdges []transcript.DocumentEdge) []*entities.Edge {
	edges := make([]*entities.Edge, 0, len(docEdges))
	for i, de := range docEdges {
		id := de.ID
		if id == "" {
			id = fmt.Sprintf("edge-%d", i+1)
		}

		source, err := valueobjects.NewNoteIDFromString(de.Source)
		if err != nil {
			continue
		}
		target, err := valueobjects.NewNoteIDFromString(de.Target)
		if err != nil {
			continue
		}

		edge, err := entities.NewEdge(id, source, target, entities.EdgeType(de.Type), de.SourceHandle, de.TargetHandle)
		if err != nil {
			continue
		}
		edges = append(edges, edge)
	}
	return edges
}
