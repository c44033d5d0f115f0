package gridgraph

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
)

// NoNode marks an unset node reference (no parent, no start, no end).
const NoNode = -1

// Node represents a single cell of the grid and its search state
type Node struct {
	id int
	x  int // column
	y  int // row

	obstacle bool
	start    bool
	end      bool
	visited  bool

	distFromStart float64 // accumulated cost from the start node (g)
	distToEnd     float64 // heuristic estimate to the end node (h)

	parent int   // id of the node this one was reached from
	adj    []int // ids of reachable neighbors
}

func newNode(id, x, y int) Node {
	return Node{
		id:            id,
		x:             x,
		y:             y,
		distFromStart: math.Inf(1),
		distToEnd:     math.Inf(1),
		parent:        NoNode,
	}
}

func (n Node) ID() int { return n.id }
func (n Node) X() int  { return n.x }
func (n Node) Y() int  { return n.y }

// Point returns the cell centre in grid units.
func (n Node) Point() orb.Point {
	return orb.Point{float64(n.x), float64(n.y)}
}

func (n Node) IsObstacle() bool { return n.obstacle }
func (n Node) IsStart() bool    { return n.start }
func (n Node) IsEnd() bool      { return n.end }
func (n Node) IsVisited() bool  { return n.visited }

func (n Node) DistFromStart() float64 { return n.distFromStart }
func (n Node) DistToEnd() float64     { return n.distToEnd }

// Parent returns the id this node was reached from during the last search.
func (n Node) Parent() (int, bool) {
	return n.parent, n.parent != NoNode
}

// AdjNodes returns a copy of the neighbor ids in adjacency order.
func (n Node) AdjNodes() []int {
	return slices.Clone(n.adj)
}

func (n *Node) toggleObstacle() { n.obstacle = !n.obstacle }

// resetFlags returns every flag and the search state to its defaults.
// Adjacency is owned by the grid and left alone.
func (n *Node) resetFlags() {
	n.obstacle = false
	n.start = false
	n.end = false
	n.resetSearch()
}

func (n *Node) resetSearch() {
	n.visited = false
	n.parent = NoNode
	n.distFromStart = math.Inf(1)
	n.distToEnd = math.Inf(1)
	if n.start {
		n.distFromStart = 0
	}
	if n.end {
		n.distToEnd = 0
	}
}
