package gridplanner

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"time"
)

// Planner owns one grid, its obstacle field and the robot configuration.
// The zero value is not usable; call New.
type Planner struct {
	grid      *Grid
	obstacles []Obstacle
	index     *SpatialIndex

	robotRadius     float64
	safetyMargin    float64
	heuristicWeight float64

	maxExpansions int
	logger        *log.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger used for search summaries. A nil logger
// silences them.
func WithLogger(l *log.Logger) Option {
	return func(p *Planner) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		p.logger = l
	}
}

// WithMaxExpansions bounds the number of nodes a single search may close.
// Zero means unlimited.
func WithMaxExpansions(n int) Option {
	return func(p *Planner) { p.maxExpansions = n }
}

// New creates a planner with no grid. The heuristic weight and safety
// margin start at 0; the robot radius must be set before searching.
func New(opts ...Option) *Planner {
	p := &Planner{
		index:  NewSpatialIndex(nil),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ConfigureMap clears the current map and re-initializes it with rows×cols
// unoccupied cells. Obstacles are discarded.
func (p *Planner) ConfigureMap(rows, cols int) error {
	if rows <= 0 || cols <= 0 || rows > MaxDimension || cols > MaxDimension {
		return fmt.Errorf("%w: map size %dx%d not in [1, %d]", ErrInvalidParameter, rows, cols, MaxDimension)
	}
	p.grid = newGrid(rows, cols)
	p.setObstacles(nil)
	return nil
}

// Rows returns the configured row count, or 0 before ConfigureMap.
func (p *Planner) Rows() int {
	if p.grid == nil {
		return 0
	}
	return p.grid.Rows
}

// Cols returns the configured column count, or 0 before ConfigureMap.
func (p *Planner) Cols() int {
	if p.grid == nil {
		return 0
	}
	return p.grid.Cols
}

// SetRobotRadius sets the radius of the robot traversing the map. It must be
// positive and no larger than the smaller map dimension.
func (p *Planner) SetRobotRadius(r float64) error {
	limit := float64(min(p.Rows(), p.Cols()))
	if math.IsNaN(r) || r <= 0 || r > limit {
		return fmt.Errorf("%w: robot radius %g not in (0, %g]", ErrInvalidParameter, r, limit)
	}
	p.robotRadius = r
	return nil
}

// SetSafetyMargin sets the extra clearance kept from map edges and
// obstacles.
func (p *Planner) SetSafetyMargin(s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
		return fmt.Errorf("%w: safety margin %g must be non-negative", ErrInvalidParameter, s)
	}
	p.safetyMargin = s
	return nil
}

// SetHeuristicWeight sets the multiplier on the heuristic. 0 disables it and
// yields shortest paths; higher values favour the straight start–goal line
// at the expense of path quality.
func (p *Planner) SetHeuristicWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return fmt.Errorf("%w: heuristic weight %g must be non-negative", ErrInvalidParameter, w)
	}
	p.heuristicWeight = w
	return nil
}

// RobotRadius returns the configured robot radius.
func (p *Planner) RobotRadius() float64 { return p.robotRadius }

// SafetyMargin returns the configured safety margin.
func (p *Planner) SafetyMargin() float64 { return p.safetyMargin }

// HeuristicWeight returns the configured heuristic weight.
func (p *Planner) HeuristicWeight() float64 { return p.heuristicWeight }

// PlaceObstacles replaces the obstacle field and paints it onto the map.
// Paint from the previous field is removed first; occupancy read from a map
// file stays. All obstacles are validated before anything changes; on error
// the previous field and markers are left as they were.
func (p *Planner) PlaceObstacles(obstacles []Obstacle) error {
	if p.grid == nil {
		return fmt.Errorf("%w: map size not configured", ErrInvalidParameter)
	}
	if err := validateObstacles(obstacles, p.grid.Rows, p.grid.Cols); err != nil {
		return err
	}

	p.grid.resetOccupancy()
	for _, o := range obstacles {
		p.grid.rasterize(o)
	}
	p.setObstacles(obstacles)
	return nil
}

// setObstacles stores a private copy of the field and rebuilds the index.
func (p *Planner) setObstacles(obstacles []Obstacle) {
	p.obstacles = append([]Obstacle(nil), obstacles...)
	p.index = NewSpatialIndex(p.obstacles)
}

// Obstacles returns a copy of the current obstacle field.
func (p *Planner) Obstacles() []Obstacle {
	return append([]Obstacle(nil), p.obstacles...)
}

// FindPath runs the A* search from start to destination and returns the
// cells of the best path, start and destination included.
func (p *Planner) FindPath(start, destination Coordinate) ([]Coordinate, error) {
	res, err := p.Search(context.Background(), start, destination)
	if err != nil {
		return nil, err
	}
	return res.Path, nil
}

// Search is FindPath with cancellation and search statistics.
func (p *Planner) Search(ctx context.Context, start, destination Coordinate) (Result, error) {
	if p.grid == nil {
		return Result{}, fmt.Errorf("%w: map size not configured", ErrInvalidParameter)
	}
	if p.robotRadius <= 0 {
		return Result{}, fmt.Errorf("%w: robot radius not set", ErrInvalidParameter)
	}
	if limit := float64(min(p.grid.Rows, p.grid.Cols)); p.robotRadius > limit {
		return Result{}, fmt.Errorf("%w: robot radius %g exceeds map limit %g", ErrInvalidParameter, p.robotRadius, limit)
	}
	if !p.IsTraversable(start) {
		return Result{}, fmt.Errorf("%w: start %v is not traversable", ErrInvalidParameter, start)
	}
	if !p.IsTraversable(destination) {
		return Result{}, fmt.Errorf("%w: destination %v is not traversable", ErrInvalidParameter, destination)
	}

	began := time.Now()
	res, err := p.astar(ctx, start, destination)
	if err != nil {
		p.logger.Printf("search %v -> %v failed after %d expansions: %v", start, destination, res.Expanded, err)
		return res, err
	}

	p.logger.Printf("search %v -> %v: %d waypoints, length %.2f, %d expansions in %s",
		start, destination, len(res.Path), res.Cost, res.Expanded, time.Since(began).Round(time.Microsecond))
	return res, nil
}

// ExportMap returns the map as text, one line of Cols markers per row.
func (p *Planner) ExportMap() []string {
	if p.grid == nil {
		return nil
	}
	return p.grid.Lines()
}

// Marker returns the display marker at c. ok is false outside the grid.
func (p *Planner) Marker(c Coordinate) (m Marker, ok bool) {
	if p.grid == nil {
		return 0, false
	}
	cell := p.grid.Cell(c)
	if cell == nil {
		return 0, false
	}
	return cell.Marker(), true
}
