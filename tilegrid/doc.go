// Package tilegrid models a 2-D tile map as a fixed rectangular array of
// integer cell values and classifies cells for movement.
//
// What:
//
//   - Grid stores width×height values row-major; (x,y) maps to x + y*width.
//   - Get returns OutOfRange (-1) outside the grid; out-of-range cells are never passable.
//   - A cell is passable iff its value lies in [PassableFrom, BlockAbove] (defaults 0 and 6).
//   - Regions and StepDistance answer connectivity questions by breadth-first search.
//   - RandomFloorCell, Generate and ParseCSV are the map-side collaborators of a search.
//
// Why:
//
//   - Game maps: one shared, read-only map for any number of independent searches.
//   - Tests: StepDistance is an exact oracle for uniform-cost shortest paths.
//
// Complexity:
//
//   - Get, Set, IsPassable:     O(1).
//   - Regions, StepDistance:    O(W×H×d), Memory: O(W×H)    (d = 4 or 8).
//
// Errors:
//
//   - ErrEmptyGrid, ErrNonRectangular: bad 2-D input.
//   - ErrBadDimensions, ErrValueCount: bad flat input.
//   - ErrNegativeValue: a value would collide with OutOfRange.
//   - ErrOutOfRange: Set outside the grid.
//   - ErrNoFloorCell: sampling gave up.
//   - ErrBadDensity: Generate wall density outside [0,1].
package tilegrid
