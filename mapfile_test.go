package gridplanner_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridplanner"
)

func TestWriteMap_Format(t *testing.T) {
	p := newPlanner(t, 4, 6, 1)
	require.NoError(t, p.PlaceObstacles([]gridplanner.Obstacle{{Origin: at(5, 0), Radius: 1.25}}))

	var buf bytes.Buffer
	require.NoError(t, p.WriteMap(&buf))

	want := strings.Join([]string{
		"000011",
		"000001",
		"000000",
		"000000",
		"OBJECTS:",
		"5",
		"0",
		"1.25",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteMap_NormalizesPathMarkers(t *testing.T) {
	p := newPlanner(t, 8, 8, 1)
	_, err := p.FindPath(at(1, 1), at(6, 6))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.WriteMap(&buf))
	assert.NotContains(t, buf.String(), "S")
	assert.NotContains(t, buf.String(), "D")
	assert.NotContains(t, buf.String(), "*")
}

func TestMapRoundTrip(t *testing.T) {
	obstacles := []gridplanner.Obstacle{
		{Origin: at(3, 3), Radius: 2},
		{Origin: at(10, 8), Radius: 2.5},
		{Origin: at(13, 1), Radius: 0.7},
	}
	p := newPlanner(t, 12, 15, 1)
	require.NoError(t, p.PlaceObstacles(obstacles))
	want := p.ExportMap()

	// Overlay markers from a search must not leak into the file.
	_, err := p.FindPath(at(1, 10), at(6, 10))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.WriteMap(&buf))

	loaded := gridplanner.New(gridplanner.WithLogger(nil))
	require.NoError(t, loaded.ReadMap(&buf))

	assert.Equal(t, 12, loaded.Rows())
	assert.Equal(t, 15, loaded.Cols())
	assert.Equal(t, want, loaded.ExportMap())

	got := loaded.Obstacles()
	require.Len(t, got, len(obstacles))
	for i := range obstacles {
		assert.Equal(t, obstacles[i].Origin, got[i].Origin)
		assert.InDelta(t, obstacles[i].Radius, got[i].Radius, 1e-9)
	}
}

func TestSaveLoadMap_File(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "map_1.txt")

	p := newPlanner(t, 10, 10, 1)
	require.NoError(t, p.PlaceObstacles([]gridplanner.Obstacle{{Origin: at(5, 5), Radius: 2}}))
	require.NoError(t, p.SaveMap(filename))

	loaded := gridplanner.New(gridplanner.WithLogger(nil))
	require.NoError(t, loaded.LoadMap(filename))
	require.NoError(t, loaded.SetRobotRadius(1))
	assert.Equal(t, p.ExportMap(), loaded.ExportMap())

	// The loaded obstacle field drives collision checks.
	assert.False(t, loaded.IsTraversable(at(5, 4)))
	path, err := loaded.FindPath(at(1, 1), at(8, 8))
	require.NoError(t, err)
	assert.Equal(t, at(8, 8), path[len(path)-1])
}

func TestLoadMap_MissingFile(t *testing.T) {
	p := gridplanner.New(gridplanner.WithLogger(nil))
	err := p.LoadMap(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, gridplanner.ErrBadFile)
}

func TestReadMap_BadFiles(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"Empty", ""},
		{"OnlyTag", "OBJECTS:\n1\n1\n1\n"},
		{"EmptyRow", "\n\nOBJECTS:\n"},
		{"Ragged", "010\n01\nOBJECTS:\n"},
		{"UnknownMarker", "010\n0x0\nOBJECTS:\n"},
		{"PartialTriple", "000\n000\nOBJECTS:\n1\n1\n"},
		{"BadX", "000\n000\nOBJECTS:\na\n1\n1\n"},
		{"BadRadius", "000\n000\nOBJECTS:\n1\n1\nwide\n"},
		{"NegativeRadius", "000\n000\nOBJECTS:\n1\n1\n-2\n"},
		{"TooWide", strings.Repeat("0", gridplanner.MaxDimension+1) + "\nOBJECTS:\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newPlanner(t, 5, 5, 1)
			before := p.ExportMap()

			err := p.ReadMap(strings.NewReader(tc.data))
			assert.ErrorIs(t, err, gridplanner.ErrBadFile)
			assert.Equal(t, before, p.ExportMap(), "planner must be unchanged")
		})
	}
}

func TestReadMap_Lenient(t *testing.T) {
	// Path markers read back as unoccupied, CRLF endings are accepted and
	// the obstacle section may be missing.
	p := gridplanner.New(gridplanner.WithLogger(nil))
	require.NoError(t, p.ReadMap(strings.NewReader("S*1\r\n0D1\r\n")))

	assert.Equal(t, []string{"001", "001"}, p.ExportMap())
	assert.Empty(t, p.Obstacles())
}

func TestPlaceObstacles_KeepsLoadedWalls(t *testing.T) {
	walled := strings.Join([]string{
		"1111111111",
		"0000000000",
		"0000000000",
		"0000000000",
		"1111111111",
		"OBJECTS:",
		"",
	}, "\n")
	p := gridplanner.New(gridplanner.WithLogger(nil))
	require.NoError(t, p.ReadMap(strings.NewReader(walled)))

	require.NoError(t, p.PlaceObstacles([]gridplanner.Obstacle{{Origin: at(5, 2), Radius: 1}}))
	assert.Equal(t, []string{
		"1111111111",
		"0000010000",
		"0000111000",
		"0000010000",
		"1111111111",
	}, p.ExportMap())

	// A new field replaces the previous disc but not the walls.
	require.NoError(t, p.PlaceObstacles([]gridplanner.Obstacle{{Origin: at(2, 2), Radius: 1}}))
	want := []string{
		"1111111111",
		"0010000000",
		"0111000000",
		"0010000000",
		"1111111111",
	}
	assert.Equal(t, want, p.ExportMap())

	var buf bytes.Buffer
	require.NoError(t, p.WriteMap(&buf))
	saved := gridplanner.New(gridplanner.WithLogger(nil))
	require.NoError(t, saved.ReadMap(&buf))
	assert.Equal(t, want, saved.ExportMap())

	// ConfigureMap starts from an empty base again.
	require.NoError(t, p.ConfigureMap(5, 10))
	require.NoError(t, p.PlaceObstacles(nil))
	assert.Equal(t, strings.Repeat("0", 10), p.ExportMap()[0])
}
