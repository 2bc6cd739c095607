package caption

// Bottom-up aggregation passes over the caption tree. Each pass recomputes
// the whole tree and is idempotent, there is no incremental update. Sizes
// must always be aggregated before positions.

// UpdateSizes recomputes aggregate sizes from the leaves up. A word with
// clips takes the per-axis maximum of its clip boxes; a word without clips
// keeps its measured slot size, so the pass can run both before and after
// clip generation. Line width sums word widths with spacing, line height is
// the tallest word plus spacing, segment width is the widest line and
// segment height sums line heights.
func UpdateSizes(d *Document, spacing float64) {
	for _, seg := range d.Segments() {
		var segWidth, segHeight float64
		for _, line := range seg.Lines() {
			var lineWidth, lineHeight float64
			for _, word := range line.Words() {
				if clips := word.Clips(); len(clips) > 0 {
					var w, h float64
					for _, c := range clips {
						w = max(w, c.Layout.Width)
						h = max(h, c.Layout.Height)
					}
					word.Layout.Width = w
					word.Layout.Height = h
				}
				lineWidth += word.Layout.Width + spacing
				lineHeight = max(lineHeight, word.Layout.Height+spacing)
			}
			line.Layout.Width = lineWidth
			line.Layout.Height = lineHeight
			segWidth = max(segWidth, lineWidth)
			segHeight += lineHeight
		}
		seg.Layout.Width = segWidth
		seg.Layout.Height = segHeight
	}
}

// UpdatePositions pulls entity origins up from clip positions: every box
// origin becomes the per-axis minimum over its children. Words without
// clips and lines without any positioned clip are skipped and keep whatever
// position they had. Runs only after clips have been placed, see
// PositionClips.
func UpdatePositions(d *Document) {
	for _, seg := range d.Segments() {
		var (
			segX, segY float64
			segSeen    bool
		)
		for _, line := range seg.Lines() {
			var (
				lineX, lineY float64
				lineSeen     bool
			)
			for _, word := range line.Words() {
				clips := word.Clips()
				if len(clips) == 0 {
					continue
				}
				x, y := clips[0].Layout.X, clips[0].Layout.Y
				for _, c := range clips[1:] {
					x = min(x, c.Layout.X)
					y = min(y, c.Layout.Y)
				}
				word.Layout.X = x
				word.Layout.Y = y
				if !lineSeen {
					lineX, lineY, lineSeen = x, y, true
					continue
				}
				lineX = min(lineX, x)
				lineY = min(lineY, y)
			}
			if !lineSeen {
				continue
			}
			line.Layout.X = lineX
			line.Layout.Y = lineY
			if !segSeen {
				segX, segY, segSeen = lineX, lineY, true
				continue
			}
			segX = min(segX, lineX)
			segY = min(segY, lineY)
		}
		if segSeen {
			seg.Layout.X = segX
			seg.Layout.Y = segY
		}
	}
}
