// Package tilegrid defines core types, options, and sentinel errors
// for the tilegrid subpackage of github.com/katalvlaran/tilepath.
package tilegrid

import (
	"errors"
	"fmt"
)

// Sentinel errors for tilegrid operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("tilegrid: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("tilegrid: all rows must have the same length")
	// ErrBadDimensions indicates a width or height below 1.
	ErrBadDimensions = errors.New("tilegrid: width and height must be at least 1")
	// ErrValueCount indicates a flat value slice whose length is not width×height.
	ErrValueCount = errors.New("tilegrid: value count must equal width*height")
	// ErrNegativeValue indicates a cell value below zero, which would collide with OutOfRange.
	ErrNegativeValue = errors.New("tilegrid: cell values must be non-negative")
	// ErrOutOfRange indicates a coordinate outside the grid.
	ErrOutOfRange = errors.New("tilegrid: coordinate out of range")
	// ErrNoFloorCell indicates random sampling found no floor cell.
	ErrNoFloorCell = errors.New("tilegrid: no floor cell found")
	// ErrBadDensity indicates a wall density outside [0,1].
	ErrBadDensity = errors.New("tilegrid: wall density must be within [0,1]")
)

const (
	// OutOfRange is returned by Get for coordinates outside the grid.
	OutOfRange = -1
	// DefaultBlockAbove is the highest passable cell value; anything above blocks movement.
	DefaultBlockAbove = 6
	// FloorValue is the canonical open-floor tile.
	FloorValue = 6
	// WallValue is the tile written by Generate for obstacles.
	WallValue = 7
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: W, N, E, S.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity over the full 3×3 neighborhood.
	Conn8
)

// String returns "conn4" or "conn8".
func (c Connectivity) String() string {
	if c == Conn8 {
		return "conn8"
	}
	return "conn4"
}

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// String formats the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Options contains tunable parameters for cell classification.
type Options struct {
	// PassableFrom is the lowest passable cell value.
	PassableFrom int
	// BlockAbove is the highest passable cell value.
	BlockAbove int
}

// DefaultOptions returns Options with PassableFrom=0 and BlockAbove=6.
func DefaultOptions() Options {
	return Options{
		PassableFrom: 0,
		BlockAbove:   DefaultBlockAbove,
	}
}

// Grid is a fixed-size rectangular tile map. Values are stored row-major,
// cell (x,y) lives at index x + y*Width.
// The engine only reads a Grid; Set is for map-building collaborators and
// must not be called while a search over the grid is in progress.
type Grid struct {
	width, height int
	values        []int
	opts          Options
}
