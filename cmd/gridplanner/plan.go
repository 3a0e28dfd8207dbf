package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gridplanner"
	"gridplanner/render"
)

// runPlan executes one scenario, prints the map and path to out, and writes
// the requested output files.
func runPlan(ctx context.Context, sc Scenario, out io.Writer, printMap bool) error {
	p := gridplanner.New(gridplanner.WithMaxExpansions(sc.MaxExpansions))
	if err := sc.Apply(p); err != nil {
		return err
	}

	log.Printf("🔍 Searching %v -> %v on %dx%d map (robot radius %.2f, margin %.2f, weight %.2f)",
		sc.Start, sc.Goal, p.Rows(), p.Cols(), p.RobotRadius(), p.SafetyMargin(), p.HeuristicWeight())

	res, err := p.Search(ctx, sc.Start, sc.Goal)
	if err != nil {
		return fmt.Errorf("FindPath: %w", err)
	}
	path := p.SimplifyPath(res.Path, sc.Simplify)

	if printMap {
		for _, line := range p.ExportMap() {
			fmt.Fprintln(out, line)
		}
	}
	fmt.Fprintln(out, formatPath(path))
	log.Printf("✅ Path found with %d waypoints, length %.2f, %d expansions", len(path), gridplanner.PathLength(path), res.Expanded)

	if sc.Output.Map != "" {
		if err := p.SaveMap(sc.Output.Map); err != nil {
			return fmt.Errorf("SaveMap: %w", err)
		}
	}
	if sc.Output.PNG != "" {
		if err := writePNG(sc.Output.PNG, p.ExportMap(), sc.Output.Scale); err != nil {
			return err
		}
	}
	if sc.Output.GeoJSON != "" {
		data, err := gridplanner.PathFeatureCollection(path).MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal path: %w", err)
		}
		if err := os.WriteFile(sc.Output.GeoJSON, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
	}
	return nil
}

// formatPath renders a path as "[x,y] -> [x,y] -> ...".
func formatPath(path []gridplanner.Coordinate) string {
	parts := make([]string, len(path))
	for i, c := range path {
		parts[i] = c.String()
	}
	return strings.Join(parts, " -> ")
}

func writePNG(filename string, lines []string, scale int) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := render.PNG(f, lines, render.Options{Scale: scale}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
