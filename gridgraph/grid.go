package gridgraph

import (
	"fmt"
	"log/slog"
	"slices"
)

// offsets lists the eight compass and diagonal neighbors in the order
// adjacency lists are built: left column, right column, then straight up/down.
var offsets = [8][2]int{
	{-1, 0}, {-1, -1}, {-1, 1},
	{1, 0}, {1, -1}, {1, 1},
	{0, -1}, {0, 1},
}

// RandomSource is the subset of a seeded generator RandomizeObstacles needs.
// Both *math/rand.Rand and *math/rand/v2.Rand satisfy it.
type RandomSource interface {
	Float64() float64
}

// GridGraph owns all nodes of a rows x cols grid, builds their adjacency and
// runs A* between the start and end nodes.
type GridGraph struct {
	rows, cols int
	nodes      []Node

	startID, endID int

	visitedQueue []int // ids in the order the last search marked them visited
	shortestPath []int // ids from end back to start

	// dirty is set whenever an obstacle/start/end flag changes and cleared
	// by RebuildAdjacency.
	dirty bool

	index  *SpatialIndex
	logger *slog.Logger
}

// Options defines construction parameters for a GridGraph.
type Options struct {
	Logger *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger used to report search outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// New allocates a rows x cols grid with node 0 as start and the last node as
// end. Adjacency is built before New returns.
func New(rows, cols int, options ...Option) (*GridGraph, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %d rows x %d cols", ErrInvalidDimensions, rows, cols)
	}

	gridOptions := Options{Logger: slog.Default()}
	for _, option := range options {
		option(&gridOptions)
	}

	totalNodes := rows * cols
	g := &GridGraph{
		rows:    rows,
		cols:    cols,
		nodes:   make([]Node, 0, totalNodes),
		startID: NoNode,
		endID:   NoNode,
		logger:  gridOptions.Logger,
	}
	for id := 0; id < totalNodes; id++ {
		g.nodes = append(g.nodes, newNode(id, id%cols, id/cols))
	}
	g.index = newSpatialIndex(g.nodes)

	// both ids are in range by construction
	_ = g.SetStart(0)
	_ = g.SetEnd(totalNodes - 1)
	g.RebuildAdjacency()

	g.logger.Debug("grid created", "rows", rows, "cols", cols, "nodes", totalNodes)
	return g, nil
}

func (g *GridGraph) Rows() int { return g.rows }
func (g *GridGraph) Cols() int { return g.cols }
func (g *GridGraph) Len() int  { return len(g.nodes) }

// ID returns the id of the cell at column x, row y.
func (g *GridGraph) ID(x, y int) (int, error) {
	if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
		return NoNode, fmt.Errorf("%w: cell (%d, %d) outside %dx%d grid", ErrInvalidNodeID, x, y, g.cols, g.rows)
	}
	return y*g.cols + x, nil
}

func (g *GridGraph) checkID(id int) error {
	if id < 0 || id >= len(g.nodes) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidNodeID, id, len(g.nodes))
	}
	return nil
}

// Node returns a copy of the node with the given id.
func (g *GridGraph) Node(id int) (Node, error) {
	if err := g.checkID(id); err != nil {
		return Node{}, err
	}
	return g.nodes[id], nil
}

// Nodes returns a copy of every node, indexed by id.
func (g *GridGraph) Nodes() []Node {
	return slices.Clone(g.nodes)
}

func (g *GridGraph) StartNode() Node { return g.nodes[g.startID] }
func (g *GridGraph) EndNode() Node   { return g.nodes[g.endID] }

// SetStart moves the start role to id. An obstacle at id is cleared.
func (g *GridGraph) SetStart(id int) error {
	if err := g.checkID(id); err != nil {
		return err
	}

	if g.startID != NoNode {
		previous := &g.nodes[g.startID]
		previous.start = false
		previous.resetSearch()
	}

	target := &g.nodes[id]
	target.obstacle = false
	target.start = true
	target.distFromStart = 0
	g.startID = id
	g.dirty = true
	return nil
}

// SetEnd moves the end role to id. An obstacle at id is cleared.
func (g *GridGraph) SetEnd(id int) error {
	if err := g.checkID(id); err != nil {
		return err
	}

	if g.endID != NoNode {
		previous := &g.nodes[g.endID]
		previous.end = false
		previous.resetSearch()
	}

	target := &g.nodes[id]
	target.obstacle = false
	target.end = true
	target.distToEnd = 0
	g.endID = id
	g.dirty = true
	return nil
}

// ToggleObstacle flips the obstacle flag of id and reports whether it
// changed. The start and end nodes are never toggled.
func (g *GridGraph) ToggleObstacle(id int) (bool, error) {
	if err := g.checkID(id); err != nil {
		return false, err
	}
	if id == g.startID || id == g.endID {
		return false, nil
	}

	g.nodes[id].toggleObstacle()
	g.dirty = true
	return true, nil
}

// RandomizeObstacles toggles each node's obstacle state with the given
// independent probability, drawing from src. Start and end are skipped. It
// returns the number of nodes toggled.
func (g *GridGraph) RandomizeObstacles(src RandomSource, probability float64) int {
	toggled := 0
	for id := range g.nodes {
		if src.Float64() >= probability {
			continue
		}
		if changed, _ := g.ToggleObstacle(id); changed {
			toggled++
		}
	}
	return toggled
}

// ClearObstacles removes every obstacle and returns how many were cleared.
func (g *GridGraph) ClearObstacles() int {
	cleared := 0
	for i := range g.nodes {
		if g.nodes[i].obstacle {
			g.nodes[i].obstacle = false
			cleared++
		}
	}
	if cleared > 0 {
		g.dirty = true
	}
	return cleared
}

// RebuildAdjacency recomputes every node's neighbor list and resets the
// search state, the visited queue and the shortest path. Obstacles get an
// empty neighbor list; other nodes get the up to eight in-bounds
// non-obstacle cells around them.
func (g *GridGraph) RebuildAdjacency() {
	for i := range g.nodes {
		node := &g.nodes[i]
		// fresh slices so node copies handed out earlier keep their view
		node.adj = nil

		if node.obstacle {
			continue
		}
		for _, offset := range offsets {
			x, y := node.x+offset[0], node.y+offset[1]
			if x < 0 || x >= g.cols || y < 0 || y >= g.rows {
				continue
			}
			adjID := y*g.cols + x
			if !g.nodes[adjID].obstacle {
				node.adj = append(node.adj, adjID)
			}
		}
	}

	g.resetSearch()
	g.dirty = false
}

// resetSearch clears everything a previous Solve left behind without
// touching adjacency.
func (g *GridGraph) resetSearch() {
	for i := range g.nodes {
		g.nodes[i].resetSearch()
	}
	g.visitedQueue = g.visitedQueue[:0]
	g.shortestPath = g.shortestPath[:0]
}

// VisitedQueue returns a copy of the ids still waiting in the visited queue.
func (g *GridGraph) VisitedQueue() []int {
	return slices.Clone(g.visitedQueue)
}

// VisitedLen returns how many ids are still waiting in the visited queue.
func (g *GridGraph) VisitedLen() int { return len(g.visitedQueue) }

// PopVisitedFront removes and returns the oldest id in the visited queue.
func (g *GridGraph) PopVisitedFront() (int, bool) {
	if len(g.visitedQueue) == 0 {
		return NoNode, false
	}
	id := g.visitedQueue[0]
	g.visitedQueue = g.visitedQueue[1:]
	return id, true
}

// ShortestPath returns a copy of the last solved path, end first. It is
// empty when no path was found.
func (g *GridGraph) ShortestPath() []int {
	return slices.Clone(g.shortestPath)
}
