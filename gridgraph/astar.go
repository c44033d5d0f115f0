package gridgraph

import (
	"container/heap"
)

// queueItem is one entry of the A* open set. A node may be queued more than
// once; entries for already expanded nodes are skipped when popped.
type queueItem struct {
	NodeID int
	F      float64 // distFromStart + distToEnd at push time
	Seq    int     // push order, breaks ties between equal F
}

// openSet is a min-heap of queue items ordered by F, then Seq.
// Items are never updated in place, so no heap index is tracked.
type openSet []queueItem

func (s openSet) Len() int { return len(s) }

func (s openSet) Less(i, j int) bool {
	if s[i].F == s[j].F {
		return s[i].Seq < s[j].Seq
	}
	return s[i].F < s[j].F
}

func (s openSet) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s *openSet) Push(x any) { *s = append(*s, x.(queueItem)) }

func (s *openSet) Pop() any {
	last := len(*s) - 1
	item := (*s)[last]
	*s = (*s)[:last]
	return item
}

// top returns the node id with the lowest F without removing it.
func (s openSet) top() int { return s[0].NodeID }

// Result summarizes a Solve call.
type Result struct {
	Found         bool
	Cost          float64 // distFromStart of the end node when found
	ExpandedNodes int
	VisitedNodes  int
}

// Solve runs A* from the start node to the end node and fills the visited
// queue and the shortest path. A pending obstacle/start/end change is folded
// in by rebuilding adjacency first; otherwise only the previous search state
// is reset.
func (g *GridGraph) Solve() Result {
	if g.dirty {
		g.RebuildAdjacency()
	} else {
		g.resetSearch()
	}

	startNode := &g.nodes[g.startID]
	endNode := &g.nodes[g.endID]

	open := &openSet{}
	seq := 0
	push := func(node *Node) {
		heap.Push(open, queueItem{
			NodeID: node.id,
			F:      node.distFromStart + node.distToEnd,
			Seq:    seq,
		})
		seq++
	}

	startNode.visited = true
	startNode.distFromStart = 0
	if startNode != endNode {
		startNode.distToEnd = euclideanDistance(startNode, endNode)
	}
	push(startNode)

	expanded := make([]bool, len(g.nodes))
	expandedNodes := 0

	for open.Len() > 0 && open.top() != endNode.id {
		current := &g.nodes[heap.Pop(open).(queueItem).NodeID]
		if expanded[current.id] {
			continue
		}
		expanded[current.id] = true
		expandedNodes++

		for _, adjID := range current.adj {
			adj := &g.nodes[adjID]
			if expanded[adjID] {
				continue
			}

			tentativeG := current.distFromStart + euclideanDistance(current, adj)
			if adj.visited && tentativeG >= adj.distFromStart {
				continue
			}

			if !adj.visited {
				adj.visited = true
				g.visitedQueue = append(g.visitedQueue, adjID)
			}
			adj.parent = current.id
			adj.distFromStart = tentativeG
			adj.distToEnd = euclideanDistance(adj, endNode)
			push(adj)
		}
	}

	g.reconstructPath()

	result := Result{
		Found:         len(g.shortestPath) > 0,
		ExpandedNodes: expandedNodes,
		VisitedNodes:  len(g.visitedQueue),
	}
	if result.Found {
		result.Cost = endNode.distFromStart
		g.logger.Debug("solved path from start to end node",
			"start", startNode.id, "end", endNode.id,
			"nodes", len(g.shortestPath), "cost", result.Cost, "expanded", expandedNodes)
	} else {
		g.logger.Debug("no path from start to end node",
			"start", startNode.id, "end", endNode.id, "expanded", expandedNodes)
	}
	return result
}

// reconstructPath walks parent links from the end node back to the start.
// The path stays empty when the end node was never reached.
func (g *GridGraph) reconstructPath() {
	g.shortestPath = g.shortestPath[:0]

	if g.startID == g.endID {
		g.shortestPath = append(g.shortestPath, g.endID)
		return
	}
	if g.nodes[g.endID].parent == NoNode {
		return
	}

	for id := g.endID; id != NoNode; id = g.nodes[id].parent {
		g.shortestPath = append(g.shortestPath, id)
	}
}
