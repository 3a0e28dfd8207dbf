package gridplanner

import "math"

// Edge represents a move to an adjacent cell with its cost
type Edge struct {
	To   Coordinate // Destination cell
	Cost float64    // Euclidean step length
}

// neighborOffsets lists the 8 Chebyshev-adjacent moves: N, NE, E, SE, S, SW, W, NW.
var neighborOffsets = [8][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

// neighbors returns the moves out of c that land on a traversable cell.
func (p *Planner) neighbors(c Coordinate, out []Edge) []Edge {
	out = out[:0]
	for _, d := range neighborOffsets {
		n := Coordinate{X: c.X + d[0], Y: c.Y + d[1]}
		if !p.IsTraversable(n) {
			continue
		}
		cost := 1.0
		if d[0] != 0 && d[1] != 0 {
			cost = math.Sqrt2
		}
		out = append(out, Edge{To: n, Cost: cost})
	}
	return out
}
