package caption

import (
	"fmt"

	"go.uber.org/zap"
)

// CalculateWordSizes asks the renderer for every word's pixel box across all
// narration phases and stores the per-axis maximum as the word's slot size.
// Phases reporting non-positive dimensions do not contribute. Must run
// before splitting since the splitter packs lines by slot widths.
func CalculateWordSizes(d *Document, r Renderer, log *zap.Logger) error {
	var measured int
	for _, seg := range d.Segments() {
		for _, line := range seg.Lines() {
			for _, word := range line.Words() {
				var width, height float64
				for _, phase := range Phases {
					size, err := r.WordSize(word, phase.Line, phase.Word)
					if err != nil {
						return fmt.Errorf("unable to measure word %q: %w", word.Text, err)
					}
					if size.Width <= 0 || size.Height <= 0 {
						continue
					}
					width = max(width, float64(size.Width))
					height = max(height, float64(size.Height))
				}
				word.Layout.Width = width
				word.Layout.Height = height
				measured++
			}
		}
	}
	log.Debug("Measured word slots", zap.Int("words", measured))
	return nil
}
