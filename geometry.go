package gridplanner

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Coordinate is a grid cell index: X is the column, Y is the row.
type Coordinate struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// String formats the coordinate the way the path printer does.
func (c Coordinate) String() string {
	return fmt.Sprintf("[%d,%d]", c.X, c.Y)
}

// Less orders coordinates row-major: by row, then by column.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// Point converts the coordinate to a planar point at the cell centre.
func (c Coordinate) Point() orb.Point {
	return orb.Point{float64(c.X), float64(c.Y)}
}

// Distance calculates Euclidean distance between two cell centres
func (c Coordinate) Distance(other Coordinate) float64 {
	return planar.Distance(c.Point(), other.Point())
}

// discBound returns the axis-aligned bounding box of a disc.
func discBound(center orb.Point, radius float64) orb.Bound {
	return center.Bound().Pad(radius)
}

// lineCells walks the cells crossed by the segment a→b (Bresenham).
// Both endpoints are included.
func lineCells(a, b Coordinate) []Coordinate {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}

	cells := make([]Coordinate, 0, max(dx, dy)+1)
	err := dx - dy
	x, y := a.X, a.Y
	for {
		cells = append(cells, Coordinate{X: x, Y: y})
		if x == b.X && y == b.Y {
			return cells
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// perpendicularDistance calculates perpendicular distance from point to the
// line through lineStart and lineEnd
func perpendicularDistance(point, lineStart, lineEnd Coordinate) float64 {
	dx := float64(lineEnd.X - lineStart.X)
	dy := float64(lineEnd.Y - lineStart.Y)

	mag := math.Sqrt(dx*dx + dy*dy)
	if mag == 0 {
		return point.Distance(lineStart)
	}

	pvx := float64(point.X - lineStart.X)
	pvy := float64(point.Y - lineStart.Y)

	// |cross product| / |line|
	return math.Abs(pvx*dy-pvy*dx) / mag
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
