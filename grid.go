package gridplanner

import (
	"math"
	"strings"
)

// MaxDimension is the largest accepted row or column count.
const MaxDimension = 1028

// Marker is the display classification of a cell.
type Marker byte

const (
	MarkerUnoccupied  Marker = '0'
	MarkerOccupied    Marker = '1'
	MarkerStart       Marker = 'S'
	MarkerDestination Marker = 'D'
	MarkerBestPath    Marker = '*'
)

// Cell holds per-position occupancy, display overlay and search state.
// Occupancy is the base layer (walls read from a map file) plus obstacle
// rasterization; overlay is set by path reconstruction and cleared at the
// start of every search.
type Cell struct {
	Occupied bool
	base     bool   // occupied in the loaded map, survives obstacle changes
	overlay  Marker // 0 when no overlay

	Parent    Coordinate
	hasParent bool
	G         float64 // cost from start
	F         float64 // G + weighted heuristic
}

// Marker returns the character this cell exports as.
func (c *Cell) Marker() Marker {
	if c.overlay != 0 {
		return c.overlay
	}
	if c.Occupied {
		return MarkerOccupied
	}
	return MarkerUnoccupied
}

func (c *Cell) resetSearch() {
	c.overlay = 0
	c.Parent = Coordinate{}
	c.hasParent = false
	c.G = math.Inf(1)
	c.F = math.Inf(1)
}

// Grid is an M×N matrix of cells stored row-major.
type Grid struct {
	Rows, Cols int
	cells      []Cell
}

func newGrid(rows, cols int) *Grid {
	g := &Grid{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	g.resetSearch()
	return g
}

// InBounds reports whether c lies within the grid.
func (g *Grid) InBounds(c Coordinate) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

// index maps c to its row-major slot. c must be in bounds.
func (g *Grid) index(c Coordinate) int {
	return c.Y*g.Cols + c.X
}

// coordinate converts a row-major index back to a Coordinate.
func (g *Grid) coordinate(idx int) Coordinate {
	return Coordinate{X: idx % g.Cols, Y: idx / g.Cols}
}

// Cell returns the cell at c, or nil when c is outside the grid.
func (g *Grid) Cell(c Coordinate) *Cell {
	if !g.InBounds(c) {
		return nil
	}
	return &g.cells[g.index(c)]
}

// resetSearch reinitializes costs, parents and overlay markers. Occupancy
// is kept.
func (g *Grid) resetSearch() {
	for i := range g.cells {
		g.cells[i].resetSearch()
	}
}

// resetOccupancy drops obstacle paint, leaving only the base layer.
func (g *Grid) resetOccupancy() {
	for i := range g.cells {
		g.cells[i].Occupied = g.cells[i].base
	}
}

// Lines renders the grid as one string of Cols markers per row.
func (g *Grid) Lines() []string {
	lines := make([]string, g.Rows)
	var sb strings.Builder
	for y := 0; y < g.Rows; y++ {
		sb.Reset()
		sb.Grow(g.Cols)
		for x := 0; x < g.Cols; x++ {
			sb.WriteByte(byte(g.cells[y*g.Cols+x].Marker()))
		}
		lines[y] = sb.String()
	}
	return lines
}
