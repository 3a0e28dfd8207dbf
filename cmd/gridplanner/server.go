package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"gridplanner"
	"gridplanner/render"
)

type MapRequest struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type RobotRequest struct {
	Radius          *float64 `json:"radius,omitempty"`
	SafetyMargin    *float64 `json:"safetyMargin,omitempty"`
	HeuristicWeight *float64 `json:"heuristicWeight,omitempty"`
}

type ObstaclesRequest struct {
	Obstacles []gridplanner.Obstacle `json:"obstacles"`
}

type RouteRequest struct {
	Start    gridplanner.Coordinate `json:"start"`
	End      gridplanner.Coordinate `json:"end"`
	Simplify float64                `json:"simplify,omitempty"` // Douglas-Peucker epsilon
}

type RouteResponse struct {
	Path     []gridplanner.Coordinate `json:"path"`
	Success  bool                     `json:"success"`
	Message  string                   `json:"message,omitempty"`
	Distance float64                  `json:"distance,omitempty"`
	Expanded int                      `json:"expanded,omitempty"`
}

// server serializes every request against one planner: a search mutates
// the grid, so even reads take the exclusive lock.
type server struct {
	mu            sync.Mutex
	planner       *gridplanner.Planner
	searchTimeout time.Duration
}

func newServer(p *gridplanner.Planner, searchTimeout time.Duration) *server {
	return &server{planner: p, searchTimeout: searchTimeout}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/map", corsMiddleware(s.mapHandler))
	mux.HandleFunc("/map.png", corsMiddleware(s.mapPNGHandler))
	mux.HandleFunc("/robot", corsMiddleware(s.robotHandler))
	mux.HandleFunc("/obstacles", corsMiddleware(s.obstaclesHandler))
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// GET /map - export the map as text; POST /map - configure its size
func (s *server) mapHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		lines := s.planner.ExportMap()
		s.mu.Unlock()

		if lines == nil {
			http.Error(w, "Map not configured. Call POST /map first", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, line := range lines {
			w.Write([]byte(line + "\n"))
		}

	case http.MethodPost:
		var req MapRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("❌ Invalid request body: %v\n", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		err := s.planner.ConfigureMap(req.Rows, req.Cols)
		s.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}

		log.Printf("🗺️  Map configured: %dx%d\n", req.Rows, req.Cols)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"rows":    req.Rows,
			"cols":    req.Cols,
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// GET /map.png?scale=N - render the map
func (s *server) mapPNGHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	opts := render.DefaultOptions()
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.Atoi(v)
		if err != nil || scale < 1 || scale > 64 {
			http.Error(w, "scale must be an integer in [1, 64]", http.StatusBadRequest)
			return
		}
		opts.Scale = scale
	}

	s.mu.Lock()
	lines := s.planner.ExportMap()
	s.mu.Unlock()

	if lines == nil {
		http.Error(w, "Map not configured. Call POST /map first", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := render.PNG(w, lines, opts); err != nil {
		log.Printf("⚠️  Failed to render map: %v\n", err)
	}
}

// POST /robot - set any of radius, safety margin and heuristic weight
func (s *server) robotHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RobotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if req.Radius != nil {
		if err := s.planner.SetRobotRadius(*req.Radius); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.SafetyMargin != nil {
		if err := s.planner.SetSafetyMargin(*req.SafetyMargin); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.HeuristicWeight != nil {
		if err := s.planner.SetHeuristicWeight(*req.HeuristicWeight); err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":         true,
		"radius":          s.planner.RobotRadius(),
		"safetyMargin":    s.planner.SafetyMargin(),
		"heuristicWeight": s.planner.HeuristicWeight(),
	})
}

// GET /obstacles - obstacle field as GeoJSON; POST /obstacles - replace it.
// POST accepts either {"obstacles": [...]} or, with Content-Type
// application/geo+json, a FeatureCollection of Point features.
func (s *server) obstaclesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		obstacles := s.planner.Obstacles()
		s.mu.Unlock()

		data, err := gridplanner.ObstacleFeatureCollection(obstacles).MarshalJSON()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write(data)

	case http.MethodPost:
		obstacles, err := decodeObstacles(r)
		if err != nil {
			log.Printf("❌ Invalid request body: %v\n", err)
			http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		err = s.planner.PlaceObstacles(obstacles)
		s.mu.Unlock()
		if err != nil {
			writeError(w, err)
			return
		}

		log.Printf("   Obstacles placed: %d\n", len(obstacles))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":      true,
			"numObstacles": len(obstacles),
		})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func decodeObstacles(r *http.Request) ([]gridplanner.Obstacle, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/geo+json") {
		var raw json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			return nil, err
		}
		return gridplanner.ParseObstaclesGeoJSON(raw)
	}

	var req ObstaclesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	return req.Obstacles, nil
}

// POST /route - compute a path; ?format=geojson returns a FeatureCollection
func (s *server) routeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Route request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log.Printf("   Start: %v\n", req.Start)
	log.Printf("   End:   %v\n", req.End)

	ctx := r.Context()
	if s.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.searchTimeout)
		defer cancel()
	}

	s.mu.Lock()
	res, err := s.planner.Search(ctx, req.Start, req.End)
	path := s.planner.SimplifyPath(res.Path, req.Simplify)
	s.mu.Unlock()

	if err != nil && !isSearchFailure(err) {
		writeError(w, err)
		log.Println("========================================")
		return
	}

	if r.URL.Query().Get("format") == "geojson" {
		if err != nil {
			writeJSON(w, http.StatusNotFound, RouteResponse{Success: false, Message: err.Error(), Expanded: res.Expanded})
			return
		}
		data, merr := gridplanner.PathFeatureCollection(path).MarshalJSON()
		if merr != nil {
			http.Error(w, merr.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write(data)
		return
	}

	response := RouteResponse{
		Path:     path,
		Success:  err == nil,
		Expanded: res.Expanded,
	}
	if err != nil {
		log.Printf("❌ %v\n", err)
		response.Path = []gridplanner.Coordinate{}
		response.Message = err.Error()
	} else {
		response.Distance = gridplanner.PathLength(path)
		log.Printf("✅ Path found with %d waypoints\n", len(path))
		log.Printf("   Distance: %.2f cells\n", response.Distance)
	}

	writeJSON(w, http.StatusOK, response)
	log.Println("========================================")
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rows, cols := s.planner.Rows(), s.planner.Cols()
	numObstacles := len(s.planner.Obstacles())
	s.mu.Unlock()

	status := "ready"
	if rows == 0 {
		status = "waiting for map"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       status,
		"rows":         rows,
		"cols":         cols,
		"numObstacles": numObstacles,
	})
}

// isSearchFailure reports errors that mean "no route" rather than a bad
// request.
func isSearchFailure(err error) bool {
	return errors.Is(err, gridplanner.ErrNoPathFound) ||
		errors.Is(err, gridplanner.ErrSearchLimit) ||
		errors.Is(err, context.DeadlineExceeded)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, gridplanner.ErrInvalidParameter) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
