// Package engine holds the pieces shared by every game-rule variant:
// a tag grid, continuous entities, the action table and episode bookkeeping.
// It knows nothing about any particular game.
package engine

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/vovakirdan/procgen-arcade/internal/savestate"
)

// Tag identifies what occupies a grid cell or what kind an entity is.
// Games declare their own tags; only Space and Player are shared.
type Tag int

const (
	Space  Tag = 0
	Player Tag = 100
)

// Grid is a fixed-size board of cell tags stored row-major (idx = y*W + x).
// Row 0 is the bottom row; y grows upward.
// Reads outside the board return the grid's out-of-bounds tag.
type Grid struct {
	W, H  int
	cells []Tag
	oob   Tag
}

// NewGrid creates a w×h grid filled with Space.
func NewGrid(w, h int, outOfBounds Tag) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		cells: make([]Tag, w*h),
		oob:   outOfBounds,
	}
}

// OutOfBounds returns the tag reported for reads outside the board.
func (g *Grid) OutOfBounds() Tag {
	return g.oob
}

// Area returns the number of cells.
func (g *Grid) Area() int {
	return len(g.cells)
}

// Index converts (x, y) to a flat index. The result is only meaningful in bounds.
func (g *Grid) Index(x, y int) int {
	return y*g.W + x
}

// XY converts a flat index back to (x, y).
func (g *Grid) XY(idx int) (x, y int) {
	return idx % g.W, idx / g.W
}

// InBounds reports whether (x, y) lies on the board.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the tag at a flat index, or the out-of-bounds tag.
// Only the index range is checked; callers guard row wrap-around themselves.
func (g *Grid) Get(idx int) Tag {
	if idx < 0 || idx >= len(g.cells) {
		return g.oob
	}
	return g.cells[idx]
}

// GetXY returns the tag at (x, y), or the out-of-bounds tag.
func (g *Grid) GetXY(x, y int) Tag {
	if !g.InBounds(x, y) {
		return g.oob
	}
	return g.cells[g.Index(x, y)]
}

// Set writes a tag at a flat index. Out-of-range writes are ignored.
func (g *Grid) Set(idx int, t Tag) {
	if idx < 0 || idx >= len(g.cells) {
		return
	}
	g.cells[idx] = t
}

// SetXY writes a tag at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) SetXY(x, y int, t Tag) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[g.Index(x, y)] = t
}

// Fill sets every cell to t.
func (g *Grid) Fill(t Tag) {
	for i := range g.cells {
		g.cells[i] = t
	}
}

// CellsWith returns the indices holding t, in ascending order.
func (g *Grid) CellsWith(t Tag) []int {
	var out []int
	for i, c := range g.cells {
		if c == t {
			out = append(out, i)
		}
	}
	return out
}

// Count returns how many cells satisfy match.
func (g *Grid) Count(match func(Tag) bool) int {
	n := 0
	for _, c := range g.cells {
		if match(c) {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Tag, len(g.cells))
	copy(cells, g.cells)
	return &Grid{W: g.W, H: g.H, cells: cells, oob: g.oob}
}

// Equal returns true if both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// Hash returns an FNV-1a digest of the cell contents, for determinism checks.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, len(g.cells))
	for _, c := range g.cells {
		buf = append(buf, byte(c))
	}
	h.Write(buf) //nolint:errcheck // hash writes never fail
	return h.Sum64()
}

// String renders the grid top row first, one rune per cell, using glyph.
func (g *Grid) String(glyph func(Tag) rune) string {
	var b strings.Builder
	for y := g.H - 1; y >= 0; y-- {
		for x := 0; x < g.W; x++ {
			b.WriteRune(glyph(g.cells[g.Index(x, y)]))
		}
		if y > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Save appends the grid to w.
func (g *Grid) Save(w *savestate.Writer) {
	w.WriteInt(g.W)
	w.WriteInt(g.H)
	w.WriteInt(int(g.oob))
	for _, c := range g.cells {
		w.WriteInt(int(c))
	}
}

// LoadGrid reads a grid written by Save.
func LoadGrid(r *savestate.Reader) (*Grid, error) {
	w, h := r.ReadInt(), r.ReadInt()
	oob := Tag(r.ReadInt())
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("engine: load grid header: %w", err)
	}
	if w <= 0 || h <= 0 || w*h > r.Remaining()/4 {
		return nil, fmt.Errorf("engine: load grid: bad dimensions %dx%d", w, h)
	}

	g := NewGrid(w, h, oob)
	for i := range g.cells {
		g.cells[i] = Tag(r.ReadInt())
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("engine: load grid cells: %w", err)
	}
	return g, nil
}
