package gridgraph

import (
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// cellEntry wraps a grid cell for R-tree storage
type cellEntry struct {
	NodeID int
	Center orb.Point
	BBox   rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (c *cellEntry) Bounds() rtreego.Rect {
	return c.BBox
}

// SpatialIndex answers region queries over grid cells. Cell geometry never
// changes, so the index is built once per grid.
type SpatialIndex struct {
	tree *rtreego.Rtree
}

// minQueryExtent pads degenerate (zero width or height) query rectangles,
// which rtreego rejects.
const minQueryExtent = 1e-9

func newSpatialIndex(nodes []Node) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for i := range nodes {
		center := nodes[i].Point()
		// a cell covers the unit square around its centre
		bbox, err := rtreego.NewRect(
			rtreego.Point{center[0] - 0.5, center[1] - 0.5},
			[]float64{1, 1},
		)
		if err != nil {
			continue
		}
		tree.Insert(&cellEntry{NodeID: nodes[i].id, Center: center, BBox: bbox})
	}

	return &SpatialIndex{tree: tree}
}

// Query returns the ids of cells whose centre lies inside bound, ascending.
func (si *SpatialIndex) Query(bound orb.Bound) []int {
	width := bound.Max[0] - bound.Min[0]
	height := bound.Max[1] - bound.Min[1]
	if width < 0 || height < 0 {
		return []int{}
	}

	bbox, err := rtreego.NewRect(
		rtreego.Point{bound.Min[0], bound.Min[1]},
		[]float64{max(width, minQueryExtent), max(height, minQueryExtent)},
	)
	if err != nil {
		return []int{}
	}

	results := si.tree.SearchIntersect(bbox)
	ids := make([]int, 0, len(results))

	for _, item := range results {
		entry := item.(*cellEntry)
		if bound.Contains(entry.Center) {
			ids = append(ids, entry.NodeID)
		}
	}

	slices.Sort(ids)
	return ids
}

// NodesInBound returns the ids of cells whose centre lies inside bound.
func (g *GridGraph) NodesInBound(bound orb.Bound) []int {
	return g.index.Query(bound)
}
