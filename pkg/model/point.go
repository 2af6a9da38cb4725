// Package model holds the plain data types shared by the catalog, grid, and
// history packages: points, rectangles, directions, and the pattern catalog
// entries themselves.
package model

import "fmt"

// Point indexes a cell in the grid. X is the row (height axis), Y is the
// column (width axis) — the core uses (row, col) exclusively; see DESIGN.md
// for the coordinate-convention decision.
type Point struct {
	X int
	Y int
}

// String renders the point as "(x,y)" for logging.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the point offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// InBounds reports whether p falls within a height x width grid.
func (p Point) InBounds(height, width int) bool {
	return p.X >= 0 && p.X < height && p.Y >= 0 && p.Y < width
}
