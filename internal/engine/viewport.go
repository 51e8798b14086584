package engine

import "github.com/vovakirdan/procgen-arcade/internal/core"

// Viewport maps world cells onto a terminal screen. Each world cell is
// CellW characters wide and one row tall; world y=0 is drawn at the bottom.
type Viewport struct {
	OriginX, OriginY int // world cell shown at the bottom-left of the view
	Cols, Rows       int // world cells visible
	ScreenX, ScreenY int // top-left screen position
	CellW            int
}

// Fit builds a viewport centred on (focusX, focusY) for a world of size
// worldW×worldH, using the area of the screen below hudRows.
// When the world is smaller than the view it is centred with a margin;
// cells beyond the world edge are drawn as out-of-bounds by the caller.
func Fit(screenW, screenH, hudRows, cellW, worldW, worldH, focusX, focusY int) Viewport {
	if cellW < 1 {
		cellW = 1
	}
	cols := screenW / cellW
	rows := screenH - hudRows
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	vp := Viewport{Cols: cols, Rows: rows, ScreenY: hudRows, CellW: cellW}
	vp.OriginX = axisOrigin(cols, worldW, focusX)
	vp.OriginY = axisOrigin(rows, worldH, focusY)
	vp.ScreenX = (screenW - cols*cellW) / 2
	return vp
}

func axisOrigin(view, world, focus int) int {
	if world <= view {
		return -(view - world) / 2
	}
	return core.Clamp(focus-view/2, 0, world-view)
}

// ToScreen converts a world cell to the top-left screen character for it.
// ok is false when the cell is outside the view.
func (v Viewport) ToScreen(wx, wy int) (sx, sy int, ok bool) {
	if !v.World().Contains(wx, wy) {
		return 0, 0, false
	}
	cx := wx - v.OriginX
	cy := wy - v.OriginY
	return v.ScreenX + cx*v.CellW, v.ScreenY + (v.Rows - 1 - cy), true
}

// Each calls fn for every visible world cell.
func (v Viewport) Each(fn func(wx, wy int)) {
	for cy := 0; cy < v.Rows; cy++ {
		for cx := 0; cx < v.Cols; cx++ {
			fn(v.OriginX+cx, v.OriginY+cy)
		}
	}
}

// World returns the rectangle of world cells in view, in world coordinates.
func (v Viewport) World() core.Rect {
	return core.NewRect(v.OriginX, v.OriginY, v.Cols, v.Rows)
}
