// Package viewport computes how many glyph cells are needed to cover the
// visible area. The math is kept in the device-pixel units the glyph layer is
// designed around: 38px-tall cells under a 16px top inset, in a fixed-column
// grid. Front ends convert their own geometry to these units.
package viewport

// Grid metrics.
const (
	// StaticColumns is the column count in passive pulsing mode.
	StaticColumns = 28

	// WideColumns and NarrowColumns are the interactive-mode column counts
	// on either side of the breakpoint.
	WideColumns   = 28
	NarrowColumns = 10

	// NarrowBreakpoint is the viewport width below which interactive mode
	// drops to the narrow column count.
	NarrowBreakpoint = 768

	// CellHeight is the height of one glyph cell.
	CellHeight = 38

	// VerticalInset is the space above the first row.
	VerticalInset = 16

	// BufferRows are extra rows past the bottom edge so scrolling or rounding
	// never exposes a gap.
	BufferRows = 2

	// FallbackCount is used when no viewport dimensions exist, sized for a
	// large screen (28 columns by 30 rows).
	FallbackCount = 840
)

// Columns returns the column count for a viewport width.
func Columns(width int, interactive bool) int {
	if !interactive {
		return StaticColumns
	}
	if width < NarrowBreakpoint {
		return NarrowColumns
	}
	return WideColumns
}

// Count returns the number of glyph cells needed to fill a viewport of the
// given pixel dimensions, plus the buffer rows. Non-positive dimensions mean
// there is no viewport to measure and yield FallbackCount.
func Count(width, height int, interactive bool) int {
	if width <= 0 || height <= 0 {
		return FallbackCount
	}
	rows := ceilDiv(height-VerticalInset, CellHeight) + BufferRows
	if rows < BufferRows {
		rows = BufferRows
	}
	return Columns(width, interactive) * rows
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
