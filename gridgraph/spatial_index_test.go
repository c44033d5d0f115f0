package gridgraph

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodesInBound(t *testing.T) {
	g := newTestGrid(t, 4, 5)

	tests := []struct {
		name  string
		bound orb.Bound
		want  []int
	}{
		{"single centre", orb.Bound{Min: orb.Point{2, 1}, Max: orb.Point{2, 1}}, []int{7}},
		{"two by two", orb.Bound{Min: orb.Point{0.6, 0.6}, Max: orb.Point{2.4, 2.4}}, []int{6, 7, 11, 12}},
		{"edges are inclusive", orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 0}}, []int{0, 1}},
		{"between centres", orb.Bound{Min: orb.Point{0.2, 0.2}, Max: orb.Point{0.8, 0.8}}, []int{}},
		{"outside grid", orb.Bound{Min: orb.Point{10, 10}, Max: orb.Point{12, 12}}, []int{}},
		{"whole grid", orb.Bound{Min: orb.Point{-1, -1}, Max: orb.Point{10, 10}}, []int{
			0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.NodesInBound(tt.bound))
		})
	}
}

func TestFillObstacles(t *testing.T) {
	g := newTestGrid(t, 3, 3)

	filled := g.FillObstacles(orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}})

	// start (0) is spared
	assert.Equal(t, 3, filled)
	assert.Equal(t, []int{1, 3, 4}, g.Layout().Obstacles)
	assert.Equal(t, 0, g.FillObstacles(orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{1, 1}}))
}

func TestStampZones(t *testing.T) {
	g := newTestGrid(t, 5, 5)
	triangle := orb.Polygon{orb.Ring{{0.5, 0.5}, {3.2, 0.5}, {0.5, 3.2}, {0.5, 0.5}}}
	corner := orb.Polygon{orb.Ring{{3.5, 3.5}, {4.5, 3.5}, {4.5, 4.5}, {3.5, 4.5}, {3.5, 3.5}}}

	stamped := g.StampZones([]orb.Polygon{triangle, corner, {}})

	// triangle covers (1,1), (2,1), (1,2); the corner square only covers the end node
	assert.Equal(t, 3, stamped)
	assert.Equal(t, []int{6, 7, 11}, g.Layout().Obstacles)
	assert.False(t, g.EndNode().IsObstacle())

	result := g.Solve()
	require.True(t, result.Found)
	for _, id := range g.ShortestPath() {
		assert.NotContains(t, []int{6, 7, 11}, id)
	}
}

func TestAdjacencyLines(t *testing.T) {
	g := newTestGrid(t, 2, 2)

	lines := g.AdjacencyLines()

	// a fully open 2x2 grid is a complete graph on four cells
	assert.Len(t, lines, 6)
	for _, line := range lines {
		require.Len(t, line, 2)
		assert.NotEqual(t, line[0], line[1])
	}

	_, err := g.ToggleObstacle(1)
	require.NoError(t, err)
	g.RebuildAdjacency()
	assert.Len(t, g.AdjacencyLines(), 3)
}

func TestPathLineString(t *testing.T) {
	g := newTestGrid(t, 1, 3)
	g.Solve()

	assert.Equal(t, orb.LineString{{2, 0}, {1, 0}, {0, 0}}, g.PathLineString())
	assert.InDelta(t, 2.0, g.PathLength(), 1e-12)
}
