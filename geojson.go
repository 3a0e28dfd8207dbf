package gridplanner

import (
	"fmt"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RadiusProperty is the feature property holding an obstacle's radius.
const RadiusProperty = "radius"

// ParseObstaclesGeoJSON converts a GeoJSON FeatureCollection to obstacles.
// Point and MultiPoint features become obstacles centred on each point with
// the feature's radius property; other geometry types are skipped silently.
// Coordinates are grid cells (x = column, y = row) and must be integral.
func ParseObstaclesGeoJSON(data []byte) ([]Obstacle, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feature collection: %w", err)
	}

	var obstacles []Obstacle
	for i, feature := range fc.Features {
		var points []orb.Point
		switch geom := feature.Geometry.(type) {
		case orb.Point:
			points = []orb.Point{geom}
		case orb.MultiPoint:
			points = geom
		default:
			continue
		}

		radius, ok := feature.Properties[RadiusProperty].(float64)
		if !ok {
			return nil, fmt.Errorf("%w: feature %d has no numeric %q property", ErrInvalidParameter, i, RadiusProperty)
		}

		for _, pt := range points {
			origin, err := cellFromPoint(pt)
			if err != nil {
				return nil, fmt.Errorf("feature %d: %w", i, err)
			}
			obstacles = append(obstacles, Obstacle{Origin: origin, Radius: radius})
		}
	}

	return obstacles, nil
}

// LoadObstaclesGeoJSON reads obstacles from a GeoJSON file.
func LoadObstaclesGeoJSON(filename string) ([]Obstacle, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseObstaclesGeoJSON(data)
}

// PathFeatureCollection wraps a path in a GeoJSON FeatureCollection: one
// LineString feature (a Point for single-cell paths) carrying the path's
// length and waypoint count.
func PathFeatureCollection(path []Coordinate) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if len(path) == 0 {
		return fc
	}

	var feature *geojson.Feature
	if len(path) == 1 {
		feature = geojson.NewFeature(path[0].Point())
	} else {
		line := make(orb.LineString, 0, len(path))
		for _, c := range path {
			line = append(line, c.Point())
		}
		feature = geojson.NewFeature(line)
	}
	feature.Properties["length"] = PathLength(path)
	feature.Properties["waypoints"] = len(path)

	return fc.Append(feature)
}

// ObstacleFeatureCollection is the inverse of ParseObstaclesGeoJSON.
func ObstacleFeatureCollection(obstacles []Obstacle) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, o := range obstacles {
		f := geojson.NewFeature(o.Origin.Point())
		f.Properties[RadiusProperty] = o.Radius
		fc.Append(f)
	}
	return fc
}

func cellFromPoint(pt orb.Point) (Coordinate, error) {
	x, y := pt.X(), pt.Y()
	if x != math.Trunc(x) || y != math.Trunc(y) || math.Abs(x) > MaxDimension || math.Abs(y) > MaxDimension {
		return Coordinate{}, fmt.Errorf("%w: point (%g, %g) is not a grid cell", ErrInvalidParameter, x, y)
	}
	return Coordinate{X: int(x), Y: int(y)}, nil
}
