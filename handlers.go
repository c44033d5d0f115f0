package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/paulmach/orb"

	"grid-planner/gridgraph"
	"grid-planner/internal/ctxlog"
)

// maxBodyBytes bounds request bodies, GeoJSON zone uploads included
const maxBodyBytes = 4 << 20

// planner serializes every shell command against one grid
type planner struct {
	mu     sync.Mutex
	grid   *gridgraph.GridGraph
	logger *slog.Logger
}

func newPlanner(grid *gridgraph.GridGraph, logger *slog.Logger) *planner {
	return &planner{grid: grid, logger: logger}
}

// nodeRequest names one node; id is required so an empty body never
// silently targets node 0
type nodeRequest struct {
	ID *int `json:"id"`
}

// decodeNodeRequest reads a nodeRequest and rejects a missing id
func decodeNodeRequest(r *http.Request) (int, error) {
	var req nodeRequest
	if err := decodeBody(r, &req); err != nil {
		return 0, err
	}
	if req.ID == nil {
		return 0, errMissingID
	}
	return *req.ID, nil
}

var errMissingID = errors.New(`missing required field "id"`)

type randomizeRequest struct {
	Probability *float64 `json:"probability,omitempty"` // defaults to 0.5
	Seed        int64    `json:"seed,omitempty"`        // 0 picks a time-based seed
}

type boundRequest struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

type popVisitedRequest struct {
	Count int `json:"count"`
}

type nodeView struct {
	ID       int    `json:"id"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Category string `json:"category"`
	AdjNodes []int  `json:"adjNodes"`
}

type gridResponse struct {
	Rows           int        `json:"rows"`
	Cols           int        `json:"cols"`
	Start          int        `json:"start"`
	End            int        `json:"end"`
	Nodes          []nodeView `json:"nodes"`
	ShortestPath   []int      `json:"shortestPath"`
	VisitedPending int        `json:"visitedPending"`
}

type solveResponse struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message,omitempty"`
	Path          []int          `json:"path"`
	PathPoints    orb.LineString `json:"pathPoints"`
	Cost          float64        `json:"cost"`
	ExpandedNodes int            `json:"expandedNodes"`
	VisitedNodes  int            `json:"visitedNodes"`
}

// routes wires every endpoint with request logging and CORS
func (p *planner) routes() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, handler http.HandlerFunc) {
		mux.HandleFunc(pattern, p.requestLogger(withCORS(handler)))
	}

	handle("/health", p.healthHandler)
	handle("/grid", p.gridHandler)
	handle("/adjacencyLines", p.adjacencyLinesHandler)
	handle("/toggleObstacle", p.toggleObstacleHandler)
	handle("/setStart", p.setStartHandler)
	handle("/setEnd", p.setEndHandler)
	handle("/randomize", p.randomizeHandler)
	handle("/fillObstacles", p.fillObstaclesHandler)
	handle("/clearObstacles", p.clearObstaclesHandler)
	handle("/stampZones", p.stampZonesHandler)
	handle("/solve", p.solveHandler)
	handle("/popVisited", p.popVisitedHandler)
	handle("/layout", p.layoutHandler)
	return mux
}

// requestLogger attaches a request-scoped logger to the request context
func (p *planner) requestLogger(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := p.logger.With("method", r.Method, "path", r.URL.Path)
		next(w, r.WithContext(ctxlog.WithLogger(r.Context(), logger)))
	}
}

// corsHeaders lets a browser front end served from another origin drive
// the planner
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// withCORS answers preflight requests itself and forwards everything else
func withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for name, value := range corsHeaders {
			w.Header().Set(name, value)
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	ctxlog.FromContext(r.Context()).Warn(message, "status", status, "error", err)
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// statusFor maps grid errors onto HTTP status codes
func statusFor(err error) int {
	if errors.Is(err, gridgraph.ErrInvalidNodeID) || errors.Is(err, gridgraph.ErrInvalidDimensions) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", errors.New(r.Method))
	return false
}

// decodeBody decodes an optional JSON body into v; an empty body leaves v alone
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// GET /health - Health check endpoint
func (p *planner) healthHandler(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	rows, cols := p.grid.Rows(), p.grid.Cols()
	p.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"rows":   rows,
		"cols":   cols,
	})
}

// GET /grid - Node positions, display categories and adjacency
func (p *planner) gridHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	writeJSON(w, http.StatusOK, p.snapshot())
}

// snapshot must be called with p.mu held
func (p *planner) snapshot() gridResponse {
	nodes := p.grid.Nodes()
	views := make([]nodeView, 0, len(nodes))
	for _, node := range nodes {
		adj := node.AdjNodes()
		if adj == nil {
			adj = []int{}
		}
		views = append(views, nodeView{
			ID:       node.ID(),
			X:        node.X(),
			Y:        node.Y(),
			Category: node.Category().String(),
			AdjNodes: adj,
		})
	}

	return gridResponse{
		Rows:           p.grid.Rows(),
		Cols:           p.grid.Cols(),
		Start:          p.grid.StartNode().ID(),
		End:            p.grid.EndNode().ID(),
		Nodes:          views,
		ShortestPath:   nonNil(p.grid.ShortestPath()),
		VisitedPending: p.grid.VisitedLen(),
	}
}

// GET /adjacencyLines - Adjacency edges as line strings for drawing connections
func (p *planner) adjacencyLinesHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	p.mu.Lock()
	lines := p.grid.AdjacencyLines()
	p.mu.Unlock()

	ctxlog.FromContext(r.Context()).Debug("returning adjacency lines", "lines", len(lines))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"lines":    lines,
		"numEdges": len(lines),
	})
}

// POST /toggleObstacle - Flip the obstacle flag of one node
func (p *planner) toggleObstacleHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	id, err := decodeNodeRequest(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	changed, err := p.grid.ToggleObstacle(id)
	if err != nil {
		writeError(w, r, statusFor(err), "toggle obstacle failed", err)
		return
	}
	p.grid.RebuildAdjacency()

	node, _ := p.grid.Node(id)
	ctxlog.FromContext(r.Context()).Info("obstacle toggled", "id", id, "changed", changed, "obstacle", node.IsObstacle())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"changed":  changed,
		"obstacle": node.IsObstacle(),
	})
}

// POST /setStart - Move the start node
func (p *planner) setStartHandler(w http.ResponseWriter, r *http.Request) {
	p.setRole(w, r, "start", p.grid.SetStart)
}

// POST /setEnd - Move the end node
func (p *planner) setEndHandler(w http.ResponseWriter, r *http.Request) {
	p.setRole(w, r, "end", p.grid.SetEnd)
}

func (p *planner) setRole(w http.ResponseWriter, r *http.Request, role string, set func(int) error) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	id, err := decodeNodeRequest(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := set(id); err != nil {
		writeError(w, r, statusFor(err), "set "+role+" failed", err)
		return
	}
	p.grid.RebuildAdjacency()

	ctxlog.FromContext(r.Context()).Info("node role moved", "role", role, "id", id)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, role: id})
}

// POST /randomize - Toggle obstacles at random from a seeded source
func (p *planner) randomizeHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req randomizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	probability := 0.5
	if req.Probability != nil {
		probability = *req.Probability
	}
	if probability < 0 || probability > 1 {
		writeError(w, r, http.StatusBadRequest, "probability must be within [0, 1]", nil)
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	toggled := p.grid.RandomizeObstacles(newRandomSource(seed), probability)
	p.grid.RebuildAdjacency()

	ctxlog.FromContext(r.Context()).Info("obstacles randomized", "seed", seed, "probability", probability, "toggled", toggled)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"seed":    seed,
		"toggled": toggled,
	})
}

// POST /fillObstacles - Mark every cell inside a rectangle as an obstacle
func (p *planner) fillObstaclesHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	var req boundRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	bound := orb.Bound{Min: orb.Point{req.MinX, req.MinY}, Max: orb.Point{req.MaxX, req.MaxY}}

	p.mu.Lock()
	defer p.mu.Unlock()

	filled := p.grid.FillObstacles(bound)
	p.grid.RebuildAdjacency()

	ctxlog.FromContext(r.Context()).Info("obstacles filled", "cells", filled)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "filled": filled})
}

// POST /clearObstacles - Remove every obstacle
func (p *planner) clearObstaclesHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	cleared := p.grid.ClearObstacles()
	p.grid.RebuildAdjacency()

	ctxlog.FromContext(r.Context()).Info("obstacles cleared", "cells", cleared)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "cleared": cleared})
}

// POST /stampZones - Stamp GeoJSON polygons onto the grid as obstacles
func (p *planner) stampZonesHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "failed to read request body", err)
		return
	}
	zones, err := parseZones(data)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid GeoJSON feature collection", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	stamped := p.grid.StampZones(zones)
	p.grid.RebuildAdjacency()

	ctxlog.FromContext(r.Context()).Info("obstacle zones stamped", "zones", len(zones), "cells", stamped)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"zones":   len(zones),
		"stamped": stamped,
	})
}

// POST /solve - Run A* from start to end
func (p *planner) solveHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	logger := ctxlog.FromContext(r.Context())

	p.mu.Lock()
	defer p.mu.Unlock()

	result := p.grid.Solve()
	response := solveResponse{
		Success:       result.Found,
		Path:          nonNil(p.grid.ShortestPath()),
		PathPoints:    p.grid.PathLineString(),
		Cost:          result.Cost,
		ExpandedNodes: result.ExpandedNodes,
		VisitedNodes:  result.VisitedNodes,
	}

	if !result.Found {
		response.Message = "no path from start to end node"
		logger.Info("no path found", "expanded", result.ExpandedNodes)
	} else {
		logger.Info("path found",
			"nodes", len(response.Path),
			"cost", result.Cost,
			"expanded", result.ExpandedNodes,
			"visited", result.VisitedNodes)
	}

	writeJSON(w, http.StatusOK, response)
}

// POST /popVisited - Pop visited nodes for step animation
func (p *planner) popVisitedHandler(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	req := popVisitedRequest{Count: 1}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Count <= 0 {
		req.Count = 1
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// the client count is only an upper bound
	count := min(req.Count, p.grid.VisitedLen())
	popped := make([]int, 0, count)
	for len(popped) < count {
		id, ok := p.grid.PopVisitedFront()
		if !ok {
			break
		}
		popped = append(popped, id)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"nodes":     popped,
		"remaining": p.grid.VisitedLen(),
	})
}

// GET /layout - Current layout; POST /layout - Replace the layout
func (p *planner) layoutHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p.mu.Lock()
		layout := p.grid.Layout()
		p.mu.Unlock()
		writeJSON(w, http.StatusOK, layout)

	case http.MethodPost:
		data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "failed to read request body", err)
			return
		}
		layout, err := gridgraph.UnmarshalLayout(data)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid layout", err)
			return
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		if err := p.grid.ApplyLayout(layout); err != nil {
			writeError(w, r, statusFor(err), "apply layout failed", err)
			return
		}
		p.grid.RebuildAdjacency()

		ctxlog.FromContext(r.Context()).Info("layout applied", "obstacles", len(layout.Obstacles))
		writeJSON(w, http.StatusOK, map[string]any{"success": true})

	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", errors.New(r.Method))
	}
}

func newRandomSource(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
