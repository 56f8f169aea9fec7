package transcript

import "fmt"

// BuildDocument groups normalized dialogue entries into a transcript
// document: one column per canonical speaker in first-seen order, one note
// per entry with sequential ids, and one plain sequential edge per adjacent
// pair. Callers should normalize entries first; titles are used verbatim.
func BuildDocument(entries []Entry) Document {
	var (
		columns      []DocumentColumn
		columnByName = make(map[string]int)
		notes        []DocumentNote
	)

	for i, e := range entries {
		idx, ok := columnByName[e.Speaker]
		if !ok {
			idx = len(columns)
			columnByName[e.Speaker] = idx
			columns = append(columns, DocumentColumn{
				ID:    fmt.Sprintf("column-%d", idx+1),
				Title: e.Speaker,
			})
		}
		note := DocumentNote{
			ID:       fmt.Sprintf("note-%d", i+1),
			Content:  e.Text,
			ColumnID: columns[idx].ID,
		}
		columns[idx].Notes = append(columns[idx].Notes, note)
		notes = append(notes, note)
	}

	var edges []DocumentEdge
	for i := 0; i+1 < len(notes); i++ {
		edges = append(edges, DocumentEdge{
			ID:     fmt.Sprintf("edge-%d", i+1),
			Source: notes[i].ID,
			Target: notes[i+1].ID,
			Type:   "smoothstep",
		})
	}

	return Document{Columns: columns, Edges: edges}
}
