package transcript

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
)

// NarrationSpeaker is the speaker assigned to unattributed prose lines
const NarrationSpeaker = "NARRATION"

var (
	speakerLineRe   = regexp.MustCompile(`^([A-Z][A-Z\s]+):\s*(.*)$`)
	paragraphNameRe = regexp.MustCompile(`^[a-z]+\s+[a-z]+$`)
)

// excludedSections are headings that match the speaker-name pattern but are
// page chrome rather than dialogue; they produce no notes or edges.
var excludedSections = map[string]bool{
	"Background Reading": true,
	"Site Index":         true,
}

// conversationEdgeTypes is the connector palette for synthesized
// conversation edges.
var conversationEdgeTypes = []string{"smoothstep", "ellipsis", "yes", "no"}

// ParseDialogue extracts (speaker, text) pairs from raw text. Lines of the
// form "SPEAKER NAME: text" become attributed entries; other lines longer
// than 20 characters become narration. Blank lines and short fragments are
// dropped.
func ParseDialogue(text string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := speakerLineRe.FindStringSubmatch(line); m != nil {
			speaker := strings.TrimSpace(m[1])
			content := strings.TrimSpace(m[2])
			if content != "" {
				entries = append(entries, Entry{Speaker: speaker, Text: content})
			}
		} else if len(line) > 20 {
			entries = append(entries, Entry{Speaker: NarrationSpeaker, Text: line})
		}
	}
	return entries
}

// ParseParagraphTranscript parses a published show transcript where speaker
// names appear alone on lowercase lines and their speech follows as
// paragraphs separated by blank lines. It produces a complete transcript
// document: one column per speaker in first-seen order plus a trailing
// untitled annotation lane, one note per paragraph, and synthesized
// sequential edges.
//
// Stage directions (lines opening with "[", "(" or "archived recording")
// are skipped, as are sections whose headings match the speaker pattern but
// are page chrome. When rng is non-nil, edge connector types are drawn at
// random from the conversation palette; a nil rng yields plain connectors.
func ParseParagraphTranscript(text string, rng *rand.Rand) Document {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	// The conversation starts at the first speaker-name line; everything
	// above it is page header.
	start := 0
	for i, line := range lines {
		if paragraphNameRe.MatchString(strings.ToLower(strings.TrimSpace(line))) {
			start = i
			break
		}
	}

	var (
		columns      []DocumentColumn
		columnByName = make(map[string]int)
		notes        []DocumentNote
		noteSeq      = 1
		speaker      string
		paragraph    []string
	)

	flush := func() {
		text := strings.TrimSpace(strings.Join(paragraph, "\n"))
		paragraph = paragraph[:0]
		if speaker == "" || text == "" {
			return
		}
		title := titleCaseWords(speaker)
		if excludedSections[title] {
			return
		}
		idx, ok := columnByName[title]
		if !ok {
			idx = len(columns)
			columnByName[title] = idx
			columns = append(columns, DocumentColumn{
				ID:    fmt.Sprintf("column-%d", idx+1),
				Title: title,
			})
		}
		note := DocumentNote{
			ID:       fmt.Sprintf("note-%d", noteSeq),
			Content:  text,
			ColumnID: columns[idx].ID,
		}
		noteSeq++
		columns[idx].Notes = append(columns[idx].Notes, note)
		notes = append(notes, note)
	}

	body := append(append([]string{}, lines[start:]...), "")
	for _, line := range body {
		line = strings.TrimRight(line, " \t\r")
		lower := strings.ToLower(line)
		switch {
		case paragraphNameRe.MatchString(lower):
			flush()
			speaker = lower
		case line == "":
			flush()
		default:
			if speaker == "" {
				continue
			}
			if strings.HasPrefix(line, "[") || strings.HasPrefix(line, "(") ||
				strings.HasPrefix(line, "archived recording") {
				continue
			}
			paragraph = append(paragraph, line)
		}
	}

	// Trailing untitled lane for interactively added annotations.
	columns = append(columns, DocumentColumn{
		ID: fmt.Sprintf("column-%d", len(columns)+1),
	})

	return Document{
		Columns: columns,
		Edges:   buildConversationEdges(notes, columnRanks(columns), rng),
	}
}

// columnRanks maps each column id to its horizontal order
func columnRanks(columns []DocumentColumn) map[string]int {
	ranks := make(map[string]int, len(columns))
	for i, c := range columns {
		ranks[c.ID] = i
	}
	return ranks
}

// buildConversationEdges links adjacent notes, choosing attachment sides
// from the speakers' relative positions: a same-speaker pair flows out of
// the bottom of the source into the top of the target, a cross-column pair
// attaches on the facing sides.
func buildConversationEdges(notes []DocumentNote, ranks map[string]int, rng *rand.Rand) []DocumentEdge {
	var edges []DocumentEdge
	for i := 0; i+1 < len(notes); i++ {
		source, target := notes[i], notes[i+1]

		var sourceHandle, targetHandle string
		switch {
		case source.ColumnID == target.ColumnID:
			sourceHandle, targetHandle = "bottom", "top"
		case ranks[source.ColumnID] < ranks[target.ColumnID]:
			sourceHandle, targetHandle = "right", "left"
		default:
			sourceHandle, targetHandle = "left", "right"
		}

		edgeType := conversationEdgeTypes[0]
		if rng != nil {
			edgeType = conversationEdgeTypes[rng.Intn(len(conversationEdgeTypes))]
		}

		edges = append(edges, DocumentEdge{
			ID:           fmt.Sprintf("edge-%d", i+1),
			Source:       source.ID,
			Target:       target.ID,
			Type:         edgeType,
			SourceHandle: sourceHandle,
			TargetHandle: targetHandle,
		})
	}
	return edges
}

// titleCaseWords capitalizes the first letter of each space-separated word
func titleCaseWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
