package layout

import (
	"sort"
	"strings"

	"riboflavin-backend/domain/config"
	"riboflavin-backend/domain/core/entities"
	"riboflavin-backend/domain/core/valueobjects"
	"riboflavin-backend/domain/transcript"
)

// SkipFunc receives a diagnostic for each note dropped during placement
// because its column reference could not be resolved.
type SkipFunc func(noteID, columnID string)

// PlaceDialogue walks normalized entries in input order, assigns sequential
// note ids, and stacks every note along one global vertical cursor so the
// conversation reads top to bottom regardless of column. Each note is
// horizontally centered within its speaker's column.
func PlaceDialogue(entries []transcript.Entry, columns []*entities.Column, cfg *config.LayoutConfig) []*entities.Note {
	byTitle := make(map[string]*entities.Column, len(columns))
	for _, c := range columns {
		byTitle[c.Title()] = c
	}

	notes := make([]*entities.Note, 0, len(entries))
	currentY := cfg.TopMargin

	for i, e := range entries {
		col, ok := byTitle[e.Speaker]
		if !ok {
			continue
		}

		note, err := entities.NewNote(valueobjects.NewNoteID(i+1), e.Text, col.ID())
		if err != nil {
			continue
		}

		pos, err := valueobjects.NewPosition(noteX(col, cfg), currentY)
		if err != nil {
			continue
		}
		note.MoveTo(pos)
		notes = append(notes, note)

		currentY += EstimateHeight(e.Text, cfg) + cfg.NoteSpacing
	}

	return notes
}

// PlaceDocument collects every note from the document's titled columns,
// restores chronological order by sorting on the numeric id suffix, and
// applies the same single-cursor stacking as PlaceDialogue. Column
// references are translated through the merge table; a note whose column
// cannot be resolved is skipped with a diagnostic rather than failing the
// whole pass.
func PlaceDocument(doc transcript.Document, columns []*entities.Column, remap map[string]string, cfg *config.LayoutConfig, onSkip SkipFunc) []*entities.Note {
	byID := make(map[string]*entities.Column, len(columns))
	for _, c := range columns {
		byID[c.ID()] = c
	}

	var docNotes []transcript.DocumentNote
	for _, dc := range doc.Columns {
		if strings.TrimSpace(dc.Title) == "" {
			continue
		}
		docNotes = append(docNotes, dc.Notes...)
	}

	sort.SliceStable(docNotes, func(i, j int) bool {
		return sequenceOf(docNotes[i].ID) < sequenceOf(docNotes[j].ID)
	})

	notes := make([]*entities.Note, 0, len(docNotes))
	currentY := cfg.TopMargin

	for _, dn := range docNotes {
		col := byID[remap[dn.ColumnID]]
		if col == nil {
			if onSkip != nil {
				onSkip(dn.ID, dn.ColumnID)
			}
			continue
		}

		id, err := valueobjects.NewNoteIDFromString(dn.ID)
		if err != nil {
			if onSkip != nil {
				onSkip(dn.ID, dn.ColumnID)
			}
			continue
		}

		note, err := entities.NewNote(id, dn.Content, col.ID())
		if err != nil {
			if onSkip != nil {
				onSkip(dn.ID, dn.ColumnID)
			}
			continue
		}

		pos, err := valueobjects.NewPosition(noteX(col, cfg), currentY)
		if err != nil {
			continue
		}
		note.MoveTo(pos)
		notes = append(notes, note)

		currentY += EstimateHeight(dn.Content, cfg) + cfg.NoteSpacing
	}

	return notes
}

// noteX centers a note horizontally within its column
func noteX(col *entities.Column, cfg *config.LayoutConfig) float64 {
	return col.X() + (cfg.ColumnWidth-cfg.NoteWidth)/2
}

// sequenceOf extracts the numeric suffix used for chronological ordering
func sequenceOf(id string) int {
	nid, err := valueobjects.NewNoteIDFromString(id)
	if err != nil {
		return 0
	}
	return nid.Sequence()
}
