package gridplanner

import (
	"fmt"
	"math"
)

// MaxObstacles is the largest accepted obstacle field.
const MaxObstacles = 1028

// Obstacle is a circular exclusion zone.
type Obstacle struct {
	Origin Coordinate `json:"origin" yaml:"origin"`
	Radius float64    `json:"radius" yaml:"radius"`
}

// validateObstacles checks every obstacle against a rows×cols grid without
// touching any state.
func validateObstacles(obstacles []Obstacle, rows, cols int) error {
	if len(obstacles) > MaxObstacles {
		return fmt.Errorf("%w: %d obstacles exceeds limit %d", ErrInvalidParameter, len(obstacles), MaxObstacles)
	}

	limit := float64(min(rows, cols))
	for i, o := range obstacles {
		if o.Origin.X < 0 || o.Origin.X >= cols || o.Origin.Y < 0 || o.Origin.Y >= rows {
			return fmt.Errorf("%w: obstacle %d origin %v outside %dx%d grid", ErrInvalidParameter, i, o.Origin, rows, cols)
		}
		if math.IsNaN(o.Radius) || o.Radius <= 0 || o.Radius > limit {
			return fmt.Errorf("%w: obstacle %d radius %g not in (0, %g]", ErrInvalidParameter, i, o.Radius, limit)
		}
	}
	return nil
}

// rasterize marks every cell whose centre lies within o.Radius of o.Origin
// as occupied. Only cells inside the obstacle's bounding box are visited.
func (g *Grid) rasterize(o Obstacle) {
	bound := discBound(o.Origin.Point(), o.Radius)

	minX := max(0, int(math.Ceil(bound.Min.X())))
	minY := max(0, int(math.Ceil(bound.Min.Y())))
	maxX := min(g.Cols-1, int(math.Floor(bound.Max.X())))
	maxY := min(g.Rows-1, int(math.Floor(bound.Max.Y())))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			c := Coordinate{X: x, Y: y}
			if c.Distance(o.Origin) <= o.Radius {
				g.cells[g.index(c)].Occupied = true
			}
		}
	}
}
