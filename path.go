package gridplanner

import "fmt"

// reconstructPath walks parent links from goal back to start and returns the
// path start → goal. Cells on the way are marked as best-path; start and
// goal keep their own markers.
func (p *Planner) reconstructPath(start, goal Coordinate) ([]Coordinate, error) {
	g := p.grid
	limit := g.Rows * g.Cols

	path := []Coordinate{goal}
	for c := goal; c != start; {
		cell := g.Cell(c)
		if cell == nil || !cell.hasParent || len(path) > limit {
			return nil, fmt.Errorf("%w: parent chain broken at %v", ErrInternalConsistency, c)
		}
		c = cell.Parent
		path = append(path, c)
	}

	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	for _, c := range path {
		g.Cell(c).overlay = MarkerBestPath
	}
	g.Cell(goal).overlay = MarkerDestination
	g.Cell(start).overlay = MarkerStart

	return path, nil
}

// PathLength sums the Euclidean length of consecutive path segments.
func PathLength(path []Coordinate) float64 {
	var length float64
	for i := 1; i < len(path); i++ {
		length += path[i-1].Distance(path[i])
	}
	return length
}
