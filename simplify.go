package gridplanner

// SimplifyPath reduces a path's waypoints using the Douglas-Peucker
// algorithm. A run of waypoints is only collapsed into a straight segment
// when every cell the segment crosses is traversable, so the simplified
// path stays collision-free on this planner's current configuration.
// An epsilon ≤ 0 returns the path unchanged.
func (p *Planner) SimplifyPath(path []Coordinate, epsilon float64) []Coordinate {
	if len(path) <= 2 || epsilon <= 0 {
		return path
	}
	return p.douglasPeucker(path, epsilon)
}

// douglasPeucker implements the Douglas-Peucker line simplification algorithm
func (p *Planner) douglasPeucker(points []Coordinate, epsilon float64) []Coordinate {
	if len(points) <= 2 {
		return points
	}

	// Find the point with maximum distance from line between first and last
	dmax := 0.0
	index := 0
	end := len(points) - 1

	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax <= epsilon && p.lineOfSight(points[0], points[end]) {
		// All points in between can be discarded
		return []Coordinate{points[0], points[end]}
	}
	if index == 0 {
		// collinear but blocked: split in the middle
		index = end / 2
	}

	left := p.douglasPeucker(points[0:index+1], epsilon)
	right := p.douglasPeucker(points[index:], epsilon)

	// Combine results (removing duplicate point at index)
	result := make([]Coordinate, 0, len(left)+len(right)-1)
	result = append(result, left[:len(left)-1]...)
	result = append(result, right...)
	return result
}

// lineOfSight reports whether every cell on the segment a→b is traversable.
func (p *Planner) lineOfSight(a, b Coordinate) bool {
	for _, c := range lineCells(a, b) {
		if !p.IsTraversable(c) {
			return false
		}
	}
	return true
}
