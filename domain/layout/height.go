package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"riboflavin-backend/domain/config"
)

// EstimateHeight maps note text to an estimated rendered pixel height. The
// line count is the text length divided by the characters that fit on a line,
// plus one extra line per explicit line break, floored at one. The same
// estimate feeds placement and scroll-bound calculations so the two never
// disagree about where a note ends.
func EstimateHeight(text string, cfg *config.LayoutConfig) float64 {
	lines := int(math.Ceil(float64(utf8.RuneCountInString(text))/float64(cfg.CharsPerLine))) +
		strings.Count(text, "\n")
	if lines < 1 {
		lines = 1
	}

	height := float64(lines)*cfg.LineHeight + cfg.VerticalPadding
	if height < cfg.MinNoteHeight {
		height = cfg.MinNoteHeight
	}
	return height
}
