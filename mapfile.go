package gridplanner

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// objectsTag separates the grid lines from the obstacle triples.
const objectsTag = "OBJECTS:"

// WriteMap writes the map in plain-text form: one line per row with start,
// destination and best-path markers normalized to unoccupied, then the
// OBJECTS: tag and three lines (X, Y, radius) per obstacle.
func (p *Planner) WriteMap(w io.Writer) error {
	if p.grid == nil {
		return fmt.Errorf("%w: map size not configured", ErrInvalidParameter)
	}

	bw := bufio.NewWriter(w)
	g := p.grid
	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Cols; x++ {
			m := MarkerUnoccupied
			if g.cells[y*g.Cols+x].Occupied {
				m = MarkerOccupied
			}
			bw.WriteByte(byte(m))
		}
		bw.WriteByte('\n')
	}

	bw.WriteString(objectsTag + "\n")
	for _, o := range p.obstacles {
		fmt.Fprintf(bw, "%d\n%d\n%s\n", o.Origin.X, o.Origin.Y, strconv.FormatFloat(o.Radius, 'g', -1, 64))
	}
	return bw.Flush()
}

// SaveMap saves the currently loaded map to filename as plain text.
func (p *Planner) SaveMap(filename string) error {
	p.logger.Printf("saving map to %s", filename)

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := p.WriteMap(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write map: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// ReadMap replaces the current map and obstacle field with one read from r.
// Occupancy markers and obstacles are taken as-is: nothing is rasterized
// again and obstacles are not checked against the grid bounds. The loaded
// occupancy becomes the base that later PlaceObstacles calls paint on top
// of. On error the planner is left unchanged.
func (p *Planner) ReadMap(r io.Reader) error {
	grid, obstacles, err := parseMap(r)
	if err != nil {
		return err
	}
	p.grid = grid
	p.setObstacles(obstacles)
	return nil
}

// LoadMap clears the currently loaded map and loads the one saved in
// filename.
func (p *Planner) LoadMap(filename string) error {
	p.logger.Printf("loading map from %s", filename)

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	if err := p.ReadMap(f); err != nil {
		return err
	}
	p.logger.Printf("map loaded: %dx%d, %d obstacles", p.grid.Rows, p.grid.Cols, len(p.obstacles))
	return nil
}

func parseMap(r io.Reader) (*Grid, []Obstacle, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxDimension+64)

	var rows []string
	tagged := false
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == objectsTag {
			tagged = true
			break
		}
		rows = append(rows, line)
	}

	var fields []string
	if tagged {
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			fields = append(fields, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadFile, err)
	}

	grid, err := parseGrid(rows)
	if err != nil {
		return nil, nil, err
	}
	obstacles, err := parseObstacles(fields)
	if err != nil {
		return nil, nil, err
	}
	return grid, obstacles, nil
}

func parseGrid(rows []string) (*Grid, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("%w: no map rows", ErrBadFile)
	}
	if len(rows) > MaxDimension {
		return nil, fmt.Errorf("%w: %d rows exceeds limit %d", ErrBadFile, len(rows), MaxDimension)
	}

	cols := len(rows[0])
	if cols < 1 || cols > MaxDimension {
		return nil, fmt.Errorf("%w: row length %d not in [1, %d]", ErrBadFile, cols, MaxDimension)
	}

	grid := newGrid(len(rows), cols)
	for y, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrBadFile, y, len(row), cols)
		}
		for x := 0; x < cols; x++ {
			switch Marker(row[x]) {
			case MarkerOccupied:
				cell := &grid.cells[y*cols+x]
				cell.Occupied, cell.base = true, true
			case MarkerUnoccupied, MarkerStart, MarkerDestination, MarkerBestPath:
			default:
				return nil, fmt.Errorf("%w: unknown marker %q at row %d column %d", ErrBadFile, row[x], y, x)
			}
		}
	}
	return grid, nil
}

func parseObstacles(fields []string) ([]Obstacle, error) {
	if len(fields)%3 != 0 {
		return nil, fmt.Errorf("%w: %d obstacle lines is not a multiple of 3", ErrBadFile, len(fields))
	}

	obstacles := make([]Obstacle, 0, len(fields)/3)
	for i := 0; i < len(fields); i += 3 {
		x, err := strconv.Atoi(fields[i])
		if err != nil {
			return nil, fmt.Errorf("%w: obstacle %d origin X: %v", ErrBadFile, i/3, err)
		}
		y, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return nil, fmt.Errorf("%w: obstacle %d origin Y: %v", ErrBadFile, i/3, err)
		}
		radius, err := strconv.ParseFloat(fields[i+2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: obstacle %d radius: %v", ErrBadFile, i/3, err)
		}
		if math.IsNaN(radius) || radius <= 0 {
			return nil, fmt.Errorf("%w: obstacle %d radius %g must be positive", ErrBadFile, i/3, radius)
		}
		obstacles = append(obstacles, Obstacle{Origin: Coordinate{X: x, Y: y}, Radius: radius})
	}
	return obstacles, nil
}
