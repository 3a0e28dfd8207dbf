// Package gridplanner computes collision-free paths for a disc-shaped robot
// across a 2D occupancy grid populated with circular obstacles.
//
// A Planner owns one grid. The caller configures its size, the robot's
// radius and safety margin, the heuristic weight and the obstacle field,
// then asks for a path between two cells:
//
//	p := gridplanner.New()
//	_ = p.ConfigureMap(64, 64)
//	_ = p.SetRobotRadius(4.5)
//	_ = p.SetHeuristicWeight(0.75)
//	_ = p.PlaceObstacles([]gridplanner.Obstacle{{Origin: gridplanner.Coordinate{X: 25, Y: 12}, Radius: 3.5}})
//	path, err := p.FindPath(gridplanner.Coordinate{X: 50, Y: 10}, gridplanner.Coordinate{X: 15, Y: 15})
//
// Search:
//
//   - Weighted A* over the 8-connected grid. Moves cost their Euclidean
//     length (1 orthogonal, √2 diagonal).
//   - The heuristic is weight × (distance to start + distance to goal).
//     A weight of 0 gives uniform-cost search and shortest paths; larger
//     weights pull the search toward the straight start–goal line and
//     give up optimality.
//   - Ties on f-cost are broken by row-major coordinate order, so results
//     are reproducible.
//
// Collision:
//
//   - A cell is traversable when the robot disc of radius R+S centred on it
//     stays strictly inside the grid and does not touch any obstacle disc.
//   - The obstacle list is the authority. Occupancy markers painted onto the
//     grid are for display and persistence only.
//
// A Planner is not safe for concurrent use. Serialize the whole
// configure → search sequence, or use one Planner per request.
package gridplanner
