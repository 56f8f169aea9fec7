package layout

import (
	"testing"

	"riboflavin-backend/domain/config"
	"riboflavin-backend/domain/transcript"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceDialogue(t *testing.T) {
	cfg := config.DefaultLayoutConfig()
	entries := []transcript.Entry{
		{Speaker: "Alice Smith", Text: "hello"},
		{Speaker: "Bob Jones", Text: "hi there"},
		{Speaker: "Alice Smith", Text: "how are you"},
	}
	columns := BuildColumns(entries, 1600, cfg)

	notes := PlaceDialogue(entries, columns, cfg)
	require.Len(t, notes, 3)

	t.Run("sequential ids in input order", func(t *testing.T) {
		assert.Equal(t, "note-1", notes[0].ID().String())
		assert.Equal(t, "note-2", notes[1].ID().String())
		assert.Equal(t, "note-3", notes[2].ID().String())
	})

	t.Run("single global cursor stacks across columns", func(t *testing.T) {
		for i := 0; i+1 < len(notes); i++ {
			gap := notes[i].Position().Y() + EstimateHeight(notes[i].Content(), cfg) + cfg.NoteSpacing
			assert.Equal(t, gap, notes[i+1].Position().Y())
		}
	})

	t.Run("notes are centered within their column", func(t *testing.T) {
		offset := (cfg.ColumnWidth - cfg.NoteWidth) / 2
		assert.Equal(t, columns[0].X()+offset, notes[0].Position().X())
		assert.Equal(t, columns[1].X()+offset, notes[1].Position().X())
	})

	t.Run("first note starts at the top margin", func(t *testing.T) {
		assert.Equal(t, cfg.TopMargin, notes[0].Position().Y())
	})
}

func TestPlaceDocument(t *testing.T) {
	cfg := config.DefaultLayoutConfig()

	doc := transcript.Document{
		Columns: []transcript.DocumentColumn{
			{ID: "c1", Title: "Alice Smith", Notes: []transcript.DocumentNote{
				{ID: "note-1", Content: "first", ColumnID: "c1"},
				{ID: "note-3", Content: "third", ColumnID: "c1"},
			}},
			{ID: "c2", Title: "Bob Jones", Notes: []transcript.DocumentNote{
				{ID: "note-2", Content: "second", ColumnID: "c2"},
			}},
			{ID: "c3", Title: "", Notes: []transcript.DocumentNote{
				{ID: "note-9", Content: "ignored", ColumnID: "c3"},
			}},
		},
	}

	columns, remap := MergeDocumentColumns(doc.Columns, cfg)
	CenterColumns(columns, 1600, cfg)

	t.Run("chronological order restored from id suffixes", func(t *testing.T) {
		notes := PlaceDocument(doc, columns, remap, cfg, nil)
		require.Len(t, notes, 3)

		for i := 0; i+1 < len(notes); i++ {
			assert.Less(t, notes[i].ID().Sequence(), notes[i+1].ID().Sequence())
			assert.Less(t, notes[i].Position().Y(), notes[i+1].Position().Y())
		}
		assert.Equal(t, "second", notes[1].Content())
	})

	t.Run("column references map through the merge table", func(t *testing.T) {
		notes := PlaceDocument(doc, columns, remap, cfg, nil)
		assert.Equal(t, remap["c1"], notes[0].ColumnID())
		assert.Equal(t, remap["c2"], notes[1].ColumnID())
	})

	t.Run("unresolvable column skips the note with a diagnostic", func(t *testing.T) {
		broken := transcript.Document{
			Columns: []transcript.DocumentColumn{
				{ID: "c1", Title: "Alice Smith", Notes: []transcript.DocumentNote{
					{ID: "note-1", Content: "ok", ColumnID: "c1"},
					{ID: "note-2", Content: "lost", ColumnID: "c-missing"},
				}},
			},
		}
		cols, rm := MergeDocumentColumns(broken.Columns, cfg)

		var skipped []string
		notes := PlaceDocument(broken, cols, rm, cfg, func(noteID, columnID string) {
			skipped = append(skipped, noteID+"/"+columnID)
		})

		require.Len(t, notes, 1)
		assert.Equal(t, []string{"note-2/c-missing"}, skipped)
	})
}
