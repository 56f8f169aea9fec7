package layout

import (
	"fmt"
	"strings"

	"riboflavin-backend/domain/config"
	"riboflavin-backend/domain/core/entities"
	"riboflavin-backend/domain/transcript"
)

// BuildColumns groups normalized dialogue entries by speaker in first-seen
// order, assigns each group a sequential column id and horizontal slot, and
// centers the row within the viewport.
func BuildColumns(entries []transcript.Entry, viewportWidth float64, cfg *config.LayoutConfig) []*entities.Column {
	var columns []*entities.Column
	seen := make(map[string]bool)

	for _, e := range entries {
		if seen[e.Speaker] {
			continue
		}
		seen[e.Speaker] = true

		slot := float64(len(columns)) * (cfg.ColumnWidth + cfg.ColumnSpacing)
		col, err := entities.NewColumn(fmt.Sprintf("column-%d", len(columns)+1), e.Speaker, slot)
		if err != nil {
			continue
		}
		columns = append(columns, col)
	}

	CenterColumns(columns, viewportWidth, cfg)
	return columns
}

// CenterColumns recomputes every column's x so the whole row is
// horizontally centered within the viewport. Centering is computed from the
// column count alone, so repeating it with the same width yields identical
// positions.
func CenterColumns(columns []*entities.Column, viewportWidth float64, cfg *config.LayoutConfig) {
	n := len(columns)
	if n == 0 {
		return
	}

	totalWidth := float64(n)*cfg.ColumnWidth + float64(n-1)*cfg.ColumnSpacing
	centerX := (viewportWidth - totalWidth) / 2
	for i, col := range columns {
		col.SetX(centerX + float64(i)*(cfg.ColumnWidth+cfg.ColumnSpacing))
	}
}

// MergeDocumentColumns collapses a transcript document's column list to one
// column per distinct speaker: blank-titled columns are dropped and columns
// sharing a title (compared case- and space-insensitively) are merged into
// the first occurrence. The returned remap table translates original
// document column ids to merged column ids; positions are pre-centering
// slots, so callers follow up with CenterColumns.
func MergeDocumentColumns(docColumns []transcript.DocumentColumn, cfg *config.LayoutConfig) ([]*entities.Column, map[string]string) {
	var columns []*entities.Column
	remap := make(map[string]string)
	byTitle := make(map[string]string)

	for _, dc := range docColumns {
		title := strings.Join(strings.Fields(dc.Title), " ")
		if title == "" {
			continue
		}

		key := strings.ToUpper(title)
		if mergedID, ok := byTitle[key]; ok {
			remap[dc.ID] = mergedID
			continue
		}

		slot := float64(len(columns)) * (cfg.ColumnWidth + cfg.ColumnSpacing)
		col, err := entities.NewColumn(fmt.Sprintf("column-%d", len(columns)+1), title, slot)
		if err != nil {
			continue
		}
		columns = append(columns, col)
		byTitle[key] = col.ID()
		remap[dc.ID] = col.ID()
	}

	return columns, remap
}
