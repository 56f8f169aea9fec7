package transcript

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDialogue(t *testing.T) {
	t.Run("attributed lines keep their speaker", func(t *testing.T) {
		entries := ParseDialogue("MICHAEL BARBARO: From The New York Times.\nSABRINA TAVERNISE: And I'm Sabrina.")

		require.Len(t, entries, 2)
		assert.Equal(t, Entry{Speaker: "MICHAEL BARBARO", Text: "From The New York Times."}, entries[0])
		assert.Equal(t, Entry{Speaker: "SABRINA TAVERNISE", Text: "And I'm Sabrina."}, entries[1])
	})

	t.Run("long unattributed lines become narration", func(t *testing.T) {
		entries := ParseDialogue("The room went quiet as the tape started playing.")

		require.Len(t, entries, 1)
		assert.Equal(t, NarrationSpeaker, entries[0].Speaker)
	})

	t.Run("short fragments and blank lines are dropped", func(t *testing.T) {
		assert.Empty(t, ParseDialogue("ok\n\n   \n[music]"))
	})

	t.Run("speaker line with no content is dropped", func(t *testing.T) {
		assert.Empty(t, ParseDialogue("MICHAEL BARBARO:"))
	})

	t.Run("mixed-case prefixes are not speakers", func(t *testing.T) {
		entries := ParseDialogue("Michael Barbaro: this line is treated as plain prose.")

		require.Len(t, entries, 1)
		assert.Equal(t, NarrationSpeaker, entries[0].Speaker)
	})
}

const paragraphTranscript = `Transcript
2026 archive

michael barbaro
Welcome to the show today.

This is a second paragraph.

jane doe
[laughs]
Thanks for having me.

background reading
Some promotional copy that should never become a note.

michael barbaro
archived recording of an earlier episode
Back to you.`

func TestParseParagraphTranscript(t *testing.T) {
	doc := ParseParagraphTranscript(paragraphTranscript, nil)

	t.Run("columns follow first-seen speaker order plus an untitled lane", func(t *testing.T) {
		require.Len(t, doc.Columns, 3)
		assert.Equal(t, "Michael Barbaro", doc.Columns[0].Title)
		assert.Equal(t, "Jane Doe", doc.Columns[1].Title)
		assert.Empty(t, doc.Columns[2].Title)
		assert.Empty(t, doc.Columns[2].Notes)
	})

	t.Run("paragraphs become sequentially numbered notes", func(t *testing.T) {
		require.Len(t, doc.Columns[0].Notes, 3)
		require.Len(t, doc.Columns[1].Notes, 1)

		assert.Equal(t, "note-1", doc.Columns[0].Notes[0].ID)
		assert.Equal(t, "Welcome to the show today.", doc.Columns[0].Notes[0].Content)
		assert.Equal(t, "note-2", doc.Columns[0].Notes[1].ID)
		assert.Equal(t, "note-3", doc.Columns[1].Notes[0].ID)
		assert.Equal(t, "Thanks for having me.", doc.Columns[1].Notes[0].Content)
		assert.Equal(t, "note-4", doc.Columns[0].Notes[2].ID)
		assert.Equal(t, "Back to you.", doc.Columns[0].Notes[2].Content)
	})

	t.Run("excluded sections and stage directions produce nothing", func(t *testing.T) {
		for _, col := range doc.Columns {
			assert.NotEqual(t, "Background Reading", col.Title)
			for _, n := range col.Notes {
				assert.NotContains(t, n.Content, "promotional copy")
				assert.NotContains(t, n.Content, "laughs")
				assert.NotContains(t, n.Content, "archived recording")
			}
		}
	})

	t.Run("adjacent notes are linked with position-aware handles", func(t *testing.T) {
		require.Len(t, doc.Edges, 3)

		// note-1 -> note-2 stay in the same column
		assert.Equal(t, "bottom", doc.Edges[0].SourceHandle)
		assert.Equal(t, "top", doc.Edges[0].TargetHandle)

		// note-2 -> note-3 crosses left to right
		assert.Equal(t, "right", doc.Edges[1].SourceHandle)
		assert.Equal(t, "left", doc.Edges[1].TargetHandle)

		// note-3 -> note-4 crosses back
		assert.Equal(t, "left", doc.Edges[2].SourceHandle)
		assert.Equal(t, "right", doc.Edges[2].TargetHandle)
	})

	t.Run("nil rng yields plain connectors", func(t *testing.T) {
		for _, e := range doc.Edges {
			assert.Equal(t, "smoothstep", e.Type)
		}
	})

	t.Run("seeded rng draws connectors from the palette", func(t *testing.T) {
		randomized := ParseParagraphTranscript(paragraphTranscript, rand.New(rand.NewSource(7)))
		for _, e := range randomized.Edges {
			assert.Contains(t, conversationEdgeTypes, e.Type)
		}
	})

	t.Run("page header above the first speaker is ignored", func(t *testing.T) {
		for _, col := range doc.Columns {
			assert.False(t, strings.Contains(col.Title, "Transcript"))
			for _, n := range col.Notes {
				assert.NotContains(t, n.Content, "2026 archive")
			}
		}
	})
}

func TestBuildDocument(t *testing.T) {
	entries := []Entry{
		{Speaker: "MICHAEL BARBARO", Text: "First."},
		{Speaker: "NARRATION", Text: "A pause."},
		{Speaker: "MICHAEL BARBARO", Text: "Second."},
	}

	doc := BuildDocument(entries)

	require.Len(t, doc.Columns, 2)
	assert.Equal(t, "MICHAEL BARBARO", doc.Columns[0].Title)
	assert.Equal(t, "NARRATION", doc.Columns[1].Title)

	require.Len(t, doc.Columns[0].Notes, 2)
	assert.Equal(t, "note-1", doc.Columns[0].Notes[0].ID)
	assert.Equal(t, "note-3", doc.Columns[0].Notes[1].ID)
	assert.Equal(t, "note-2", doc.Columns[1].Notes[0].ID)

	require.Len(t, doc.Edges, 2)
	assert.Equal(t, "note-1", doc.Edges[0].Source)
	assert.Equal(t, "note-2", doc.Edges[0].Target)
	assert.Equal(t, "note-2", doc.Edges[1].Source)
	assert.Equal(t, "note-3", doc.Edges[1].Target)
}
