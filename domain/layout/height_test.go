package layout

import (
	"strings"
	"testing"

	"riboflavin-backend/domain/config"

	"github.com/stretchr/testify/assert"
)

func TestEstimateHeight(t *testing.T) {
	cfg := config.DefaultLayoutConfig()

	t.Run("short text gets the minimum height", func(t *testing.T) {
		assert.Equal(t, cfg.MinNoteHeight, EstimateHeight("hello", cfg))
		assert.Equal(t, cfg.MinNoteHeight, EstimateHeight("", cfg))
	})

	t.Run("long text grows with line count", func(t *testing.T) {
		text := strings.Repeat("x", 200) // ceil(200/45) = 5 lines
		want := 5*cfg.LineHeight + cfg.VerticalPadding
		assert.Equal(t, want, EstimateHeight(text, cfg))
	})

	t.Run("explicit line breaks add lines", func(t *testing.T) {
		base := strings.Repeat("x", 200)
		broken := base + "\n\n"
		assert.Equal(t, EstimateHeight(base, cfg)+2*cfg.LineHeight, EstimateHeight(broken, cfg))
	})

	t.Run("height never drops below the floor", func(t *testing.T) {
		for _, text := range []string{"", "a", "a\nb", strings.Repeat("y", 44)} {
			assert.GreaterOrEqual(t, EstimateHeight(text, cfg), cfg.MinNoteHeight)
		}
	})
}
