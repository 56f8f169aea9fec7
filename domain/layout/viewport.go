package layout

import (
	"riboflavin-backend/domain/config"
	"riboflavin-backend/domain/core/entities"
)

// NotePlacement is the vertical extent of one placed note
type NotePlacement struct {
	Y      float64
	Height float64
}

// ScrollBounds is the clamp range for a proposed vertical scroll offset.
// Offsets inside [Min, Max] keep the topmost and bottommost notes reachable
// without scrolling indefinitely past the visible area.
type ScrollBounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Clamp restricts a proposed scroll offset to the bounds
func (b ScrollBounds) Clamp(offset float64) float64 {
	if offset < b.Min {
		return b.Min
	}
	if offset > b.Max {
		return b.Max
	}
	return offset
}

// ComputeScrollBounds derives the scroll clamp range from the active note
// subset. Callers must recompute whenever the subset changes, e.g. when a
// column or type filter is applied, passing only the filtered placements.
func ComputeScrollBounds(placements []NotePlacement, visibleHeight float64, cfg *config.LayoutConfig) ScrollBounds {
	if len(placements) == 0 {
		return ScrollBounds{}
	}

	lowest := placements[0]
	minY := placements[0].Y
	for _, p := range placements[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > lowest.Y {
			lowest = p
		}
	}

	return ScrollBounds{
		Min: -(lowest.Y + lowest.Height - visibleHeight + cfg.ScrollMargin),
		Max: -minY + cfg.ScrollMargin,
	}
}

// PlacementsFromNotes derives placement extents for the given notes using
// the same height estimate placement used.
func PlacementsFromNotes(notes []*entities.Note, cfg *config.LayoutConfig) []NotePlacement {
	placements := make([]NotePlacement, 0, len(notes))
	for _, n := range notes {
		placements = append(placements, NotePlacement{
			Y:      n.Position().Y(),
			Height: EstimateHeight(n.Content(), cfg),
		})
	}
	return placements
}
