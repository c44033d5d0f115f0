package gridgraph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// euclideanDistance is the straight-line distance between two cell centres
// in grid units. It is both the edge weight and the heuristic.
func euclideanDistance(a, b *Node) float64 {
	return planar.Distance(a.Point(), b.Point())
}

// PathLineString returns the shortest path as a line string, end to start.
func (g *GridGraph) PathLineString() orb.LineString {
	ls := make(orb.LineString, 0, len(g.shortestPath))
	for _, id := range g.shortestPath {
		ls = append(ls, g.nodes[id].Point())
	}
	return ls
}

// PathLength returns the Euclidean length of the shortest path, 0 when there
// is no path.
func (g *GridGraph) PathLength() float64 {
	if len(g.shortestPath) < 2 {
		return 0
	}
	return planar.Length(g.PathLineString())
}

// AdjacencyLines returns every undirected adjacency edge once, as two-point
// line strings, for drawing node connections.
func (g *GridGraph) AdjacencyLines() []orb.LineString {
	lines := make([]orb.LineString, 0)

	for i := range g.nodes {
		node := &g.nodes[i]
		for _, neighborID := range node.adj {
			// adjacency is symmetric, so emit each edge from its lower id
			if node.id > neighborID {
				continue
			}
			neighbor := &g.nodes[neighborID]
			lines = append(lines, orb.LineString{node.Point(), neighbor.Point()})
		}
	}

	return lines
}
