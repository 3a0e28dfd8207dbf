package main

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"gridplanner"
)

// Scenario describes one planning run: the map, the robot, the obstacles,
// the endpoints and where to write results.
type Scenario struct {
	Rows    int    `yaml:"rows"`
	Cols    int    `yaml:"cols"`
	MapFile string `yaml:"mapFile"` // load instead of Rows/Cols/Obstacles

	RobotRadius     float64 `yaml:"robotRadius"`
	SafetyMargin    float64 `yaml:"safetyMargin"`
	HeuristicWeight float64 `yaml:"heuristicWeight"`

	Obstacles        []gridplanner.Obstacle `yaml:"obstacles"`
	ObstaclesGeoJSON string                 `yaml:"obstaclesGeoJSON"`

	Start gridplanner.Coordinate `yaml:"start"`
	Goal  gridplanner.Coordinate `yaml:"goal"`

	MaxExpansions int     `yaml:"maxExpansions"`
	Simplify      float64 `yaml:"simplify"` // Douglas-Peucker epsilon, 0 = off

	Output Output `yaml:"output"`
}

// Output names the files written after a successful run. Empty means skip.
type Output struct {
	Map     string `yaml:"map"`
	PNG     string `yaml:"png"`
	GeoJSON string `yaml:"geojson"`
	Scale   int    `yaml:"scale"`
}

// DefaultScenario is the 64×64 demo map with three obstacles.
func DefaultScenario() Scenario {
	return Scenario{
		Rows:            64,
		Cols:            64,
		RobotRadius:     4.5,
		HeuristicWeight: 0.75,
		Obstacles: []gridplanner.Obstacle{
			{Origin: gridplanner.Coordinate{X: 25, Y: 12}, Radius: 3.5},
			{Origin: gridplanner.Coordinate{X: 5, Y: 5}, Radius: 7.0},
			{Origin: gridplanner.Coordinate{X: 30, Y: 30}, Radius: 7.0},
		},
		Start:  gridplanner.Coordinate{X: 50, Y: 10},
		Goal:   gridplanner.Coordinate{X: 15, Y: 15},
		Output: Output{Scale: 8},
	}
}

// LoadScenario reads a YAML scenario file. Fields left out of the file keep
// their zero value, except the map size and robot radius which fall back to
// 64×64 and 1.
func LoadScenario(filename string) (Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read file: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("failed to parse scenario: %w", err)
	}

	// Set defaults
	if sc.MapFile == "" {
		if sc.Rows == 0 {
			sc.Rows = 64
		}
		if sc.Cols == 0 {
			sc.Cols = 64
		}
	}
	if sc.RobotRadius == 0 {
		sc.RobotRadius = 1
	}
	if sc.Output.Scale == 0 {
		sc.Output.Scale = 8
	}
	return sc, nil
}

// Apply configures p from the scenario in the order the planner expects:
// map, robot, obstacles.
func (sc Scenario) Apply(p *gridplanner.Planner) error {
	if sc.MapFile != "" {
		if err := p.LoadMap(sc.MapFile); err != nil {
			return fmt.Errorf("LoadMap: %w", err)
		}
	} else if err := p.ConfigureMap(sc.Rows, sc.Cols); err != nil {
		return fmt.Errorf("ConfigureMap: %w", err)
	}

	if err := p.SetRobotRadius(sc.RobotRadius); err != nil {
		return fmt.Errorf("SetRobotRadius: %w", err)
	}
	if err := p.SetSafetyMargin(sc.SafetyMargin); err != nil {
		return fmt.Errorf("SetSafetyMargin: %w", err)
	}
	if err := p.SetHeuristicWeight(sc.HeuristicWeight); err != nil {
		return fmt.Errorf("SetHeuristicWeight: %w", err)
	}

	obstacles := sc.Obstacles
	if sc.ObstaclesGeoJSON != "" {
		extra, err := gridplanner.LoadObstaclesGeoJSON(sc.ObstaclesGeoJSON)
		if err != nil {
			return fmt.Errorf("LoadObstaclesGeoJSON: %w", err)
		}
		log.Printf("📦 Loaded %d obstacles from %s", len(extra), sc.ObstaclesGeoJSON)
		obstacles = append(append([]gridplanner.Obstacle(nil), obstacles...), extra...)
	}
	// A loaded map brings its own obstacles unless the scenario names some.
	if sc.MapFile == "" || len(obstacles) > 0 {
		if err := p.PlaceObstacles(obstacles); err != nil {
			return fmt.Errorf("PlaceObstacles: %w", err)
		}
	}
	return nil
}
