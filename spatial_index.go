package gridplanner

import (
	"github.com/dhconnelly/rtreego"
)

const minQueryReach = 1e-9

// obstacleEntry wraps an obstacle for R-tree storage
type obstacleEntry struct {
	Obstacle Obstacle
	BBox     rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.BBox
}

// SpatialIndex answers "which obstacles could reach this region" queries.
type SpatialIndex struct {
	tree *rtreego.Rtree
}

// NewSpatialIndex creates a new spatial index over the obstacles' bounding
// boxes. Obstacles contained in another obstacle are left out; they can
// never decide a collision on their own.
func NewSpatialIndex(obstacles []Obstacle) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for _, o := range PruneContained(obstacles) {
		bbox, err := obstacleBounds(o)
		if err != nil {
			continue
		}
		tree.Insert(&obstacleEntry{Obstacle: o, BBox: bbox})
	}

	return &SpatialIndex{tree: tree}
}

// Len returns the number of indexed obstacles.
func (si *SpatialIndex) Len() int {
	return si.tree.Size()
}

// QueryRegion returns obstacles whose bounding box intersects the square of
// half-width reach centred on c.
func (si *SpatialIndex) QueryRegion(c Coordinate, reach float64) []Obstacle {
	if si.tree.Size() == 0 {
		return nil
	}
	// rtreego rejects degenerate rectangles
	reach = max(reach, minQueryReach)

	bbox, err := rtreego.NewRect(
		rtreego.Point{float64(c.X) - reach, float64(c.Y) - reach},
		[]float64{2 * reach, 2 * reach},
	)
	if err != nil {
		return nil
	}

	results := si.tree.SearchIntersect(bbox)
	obstacles := make([]Obstacle, 0, len(results))
	for _, item := range results {
		obstacles = append(obstacles, item.(*obstacleEntry).Obstacle)
	}
	return obstacles
}

// obstacleBounds computes the axis-aligned bounding box for a disc
func obstacleBounds(o Obstacle) (rtreego.Rect, error) {
	b := discBound(o.Origin.Point(), o.Radius)
	return rtreego.NewRect(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		[]float64{b.Max.X() - b.Min.X(), b.Max.Y() - b.Min.Y()},
	)
}
