package tilegrid

import (
	"fmt"
	"strconv"
	"strings"
)

// NewGrid constructs a Grid of the given extents from a flat row-major slice.
// It copies values so later mutation of the input does not leak in.
// Returns ErrBadDimensions, ErrValueCount or ErrNegativeValue on bad input.
// Complexity: O(W×H) time and memory.
func NewGrid(width, height int, values []int, opts Options) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadDimensions, width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("%w: got %d values for %dx%d", ErrValueCount, len(values), width, height)
	}
	cells := make([]int, len(values))
	for i, v := range values {
		if v < 0 {
			return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrNegativeValue, v, i%width, i/width)
		}
		cells[i] = v
	}

	return &Grid{width: width, height: height, values: cells, opts: opts}, nil
}

// New constructs a width×height Grid with every cell set to fill.
func New(width, height, fill int, opts Options) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrBadDimensions, width, height)
	}
	values := make([]int, width*height)
	for i := range values {
		values[i] = fill
	}

	return NewGrid(width, height, values, opts)
}

// From2D constructs a Grid from rows indexed rows[y][x].
// Returns ErrEmptyGrid if there are no rows or no columns,
// ErrNonRectangular if any row length differs.
func From2D(rows [][]int, opts Options) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	values := make([]int, 0, w*h)
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		values = append(values, row...)
	}

	return NewGrid(w, h, values, opts)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Options returns the classification options the grid was built with.
func (g *Grid) Options() Options { return g.opts }

// Len returns width×height.
func (g *Grid) Len() int { return len(g.values) }

// IsOutOfRange reports whether (x,y) lies outside the grid.
// Complexity: O(1).
func (g *Grid) IsOutOfRange(x, y int) bool {
	return x < 0 || x >= g.width || y < 0 || y >= g.height
}

// Get returns the value at (x,y), or OutOfRange for coordinates outside the grid.
func (g *Grid) Get(x, y int) int {
	if g.IsOutOfRange(x, y) {
		return OutOfRange
	}
	return g.values[g.Index(x, y)]
}

// Set stores v at (x,y).
func (g *Grid) Set(x, y, v int) error {
	if g.IsOutOfRange(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfRange, x, y)
	}
	if v < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeValue, v)
	}
	g.values[g.Index(x, y)] = v

	return nil
}

// IsPassable reports whether (x,y) is inside the grid and its value lies
// within [PassableFrom, BlockAbove].
func (g *Grid) IsPassable(x, y int) bool {
	if g.IsOutOfRange(x, y) {
		return false
	}
	v := g.values[g.Index(x, y)]
	return v >= g.opts.PassableFrom && v <= g.opts.BlockAbove
}

// Index maps (x,y) to its row-major slot x + y*Width. The caller checks bounds.
func (g *Grid) Index(x, y int) int {
	return x + y*g.width
}

// Coordinate converts a row-major index back to (x,y).
func (g *Grid) Coordinate(idx int) (x, y int) {
	return idx % g.width, idx / g.width
}

// Values returns a copy of the row-major cell values.
func (g *Grid) Values() []int {
	out := make([]int, len(g.values))
	copy(out, g.values)
	return out
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{width: g.width, height: g.height, values: g.Values(), opts: g.opts}
}

// String dumps the grid one row per line, values separated by commas.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(g.values[g.Index(x, y)]))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var (
	offsets4 = [][2]int{{-1, 0}, {0, -1}, {1, 0}, {0, 1}}
	offsets8 = [][2]int{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
)

// NeighborOffsets returns the (dx,dy) offsets for conn in expansion order.
// Conn8 walks the 3×3 block row by row skipping the center; Conn4 visits W, N, E, S.
// The returned slice is shared and must not be modified.
func NeighborOffsets(conn Connectivity) [][2]int {
	if conn == Conn8 {
		return offsets8
	}
	return offsets4
}
