package gridplanner

// footprint is the inflated robot radius: robot radius plus safety margin.
func (p *Planner) footprint() float64 {
	return p.robotRadius + p.safetyMargin
}

// IsTraversable reports whether the robot, centred on c, stays strictly
// inside the grid and clear of every obstacle.
//
// Arithmetic is signed, so coordinates near the (0,0) corner fail the edge
// test instead of wrapping.
func (p *Planner) IsTraversable(c Coordinate) bool {
	if p.grid == nil || !p.grid.InBounds(c) {
		return false
	}

	reach := p.footprint()
	x, y := float64(c.X), float64(c.Y)

	// Would the robot cross an edge of the map?
	if x-reach < 0 || y-reach < 0 {
		return false
	}
	if x+reach >= float64(p.grid.Cols) || y+reach >= float64(p.grid.Rows) {
		return false
	}

	// Would the robot touch any obstacle?
	for _, o := range p.index.QueryRegion(c, reach) {
		if c.Distance(o.Origin) < reach+o.Radius {
			return false
		}
	}

	return true
}
