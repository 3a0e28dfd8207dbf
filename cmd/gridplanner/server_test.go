package main

import (
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridplanner"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := newServer(gridplanner.New(gridplanner.WithLogger(nil)), time.Second)
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, contentType, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func post(t *testing.T, ts *httptest.Server, path, body string) (*http.Response, []byte) {
	t.Helper()
	return do(t, ts, http.MethodPost, path, "application/json", body)
}

// setup configures an 11×21 map with a robot of radius 1.
func setup(t *testing.T, ts *httptest.Server) {
	t.Helper()
	resp, _ := post(t, ts, "/map", `{"rows": 11, "cols": 21}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = post(t, ts, "/robot", `{"radius": 1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t)

	resp, body := do(t, ts, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"waiting for map"`)

	setup(t, ts)
	_, body = do(t, ts, http.MethodGet, "/health", "", "")
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "ready", got["status"])
	assert.Equal(t, float64(11), got["rows"])
	assert.Equal(t, float64(21), got["cols"])
}

func TestServer_MapBeforeConfigure(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := do(t, ts, http.MethodGet, "/map", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodGet, "/map.png", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = post(t, ts, "/route", `{"start": {"x": 1, "y": 1}, "end": {"x": 2, "y": 2}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name, path, body string
	}{
		{"MapSize", "/map", `{"rows": 0, "cols": 5}`},
		{"MapBody", "/map", `{`},
		{"RobotBody", "/robot", `nope`},
		{"ObstaclesBody", "/obstacles", `[`},
		{"RouteBody", "/route", `{"start":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := post(t, ts, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	setup(t, ts)
	resp, _ := post(t, ts, "/robot", `{"radius": -1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = post(t, ts, "/obstacles", `{"obstacles": [{"origin": {"x": 50, "y": 1}, "radius": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodGet, "/map.png?scale=0", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, ts, http.MethodDelete, "/map", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServer_Preflight(t *testing.T) {
	ts := newTestServer(t)
	resp, _ := do(t, ts, http.MethodOptions, "/route", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_Route(t *testing.T) {
	ts := newTestServer(t)
	setup(t, ts)

	resp, body := post(t, ts, "/route", `{"start": {"x": 1, "y": 1}, "end": {"x": 6, "y": 6}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got RouteResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Success)
	require.Len(t, got.Path, 6)
	assert.Equal(t, gridplanner.Coordinate{X: 1, Y: 1}, got.Path[0])
	assert.Equal(t, gridplanner.Coordinate{X: 6, Y: 6}, got.Path[5])
	assert.InDelta(t, 5*1.4142135623730951, got.Distance, 1e-9)
	assert.NotZero(t, got.Expanded)

	_, body = do(t, ts, http.MethodGet, "/map", "", "")
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, byte('S'), lines[1][1])
	assert.Equal(t, byte('D'), lines[6][6])
}

func TestServer_RouteBlocked(t *testing.T) {
	ts := newTestServer(t)
	setup(t, ts)

	resp, _ := post(t, ts, "/obstacles", `{"obstacles": [{"origin": {"x": 10, "y": 5}, "radius": 4}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	route := `{"start": {"x": 2, "y": 5}, "end": {"x": 18, "y": 5}}`
	resp, body := post(t, ts, "/route", route)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got RouteResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.False(t, got.Success)
	assert.Empty(t, got.Path)
	assert.Contains(t, got.Message, "no path")

	resp, _ = post(t, ts, "/route?format=geojson", route)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_RouteGeoJSON(t *testing.T) {
	ts := newTestServer(t)
	setup(t, ts)

	resp, body := post(t, ts, "/route?format=geojson", `{"start": {"x": 1, "y": 1}, "end": {"x": 6, "y": 6}, "simplify": 0.5}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/geo+json", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), `"LineString"`)
	assert.Contains(t, string(body), `[[1,1],[6,6]]`)
}

func TestServer_ObstaclesGeoJSON(t *testing.T) {
	ts := newTestServer(t)
	setup(t, ts)

	fc := `{"type":"FeatureCollection","features":[
	  {"type":"Feature","geometry":{"type":"MultiPoint","coordinates":[[5,5],[15,5]]},"properties":{"radius":1.5}}]}`
	resp, body := do(t, ts, http.MethodPost, "/obstacles", "application/geo+json", fc)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"numObstacles":2`)

	resp, body = do(t, ts, http.MethodGet, "/obstacles", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := gridplanner.ParseObstaclesGeoJSON(body)
	require.NoError(t, err)
	assert.Equal(t, []gridplanner.Obstacle{
		{Origin: gridplanner.Coordinate{X: 5, Y: 5}, Radius: 1.5},
		{Origin: gridplanner.Coordinate{X: 15, Y: 5}, Radius: 1.5},
	}, got)
}

func TestServer_MapPNG(t *testing.T) {
	ts := newTestServer(t)
	setup(t, ts)

	resp, body := do(t, ts, http.MethodGet, "/map.png?scale=3", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := png.Decode(strings.NewReader(string(body)))
	require.NoError(t, err)
	assert.Equal(t, 63, img.Bounds().Dx())
	assert.Equal(t, 33, img.Bounds().Dy())
}
