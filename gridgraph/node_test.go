package gridgraph

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestNewNode_Defaults(t *testing.T) {
	n := newNode(7, 3, 1)

	assert.Equal(t, 7, n.ID())
	assert.Equal(t, 3, n.X())
	assert.Equal(t, 1, n.Y())
	assert.Equal(t, orb.Point{3, 1}, n.Point())
	assert.False(t, n.IsObstacle())
	assert.False(t, n.IsStart())
	assert.False(t, n.IsEnd())
	assert.False(t, n.IsVisited())
	assert.True(t, math.IsInf(n.DistFromStart(), 1))
	assert.True(t, math.IsInf(n.DistToEnd(), 1))
	parent, ok := n.Parent()
	assert.False(t, ok)
	assert.Equal(t, NoNode, parent)
	assert.Empty(t, n.AdjNodes())
}

func TestNode_ResetFlags(t *testing.T) {
	n := newNode(0, 0, 0)
	n.toggleObstacle()
	n.start = true
	n.end = true
	n.visited = true
	n.parent = 4
	n.distFromStart = 2
	n.distToEnd = 3
	n.adj = []int{1, 2}

	n.resetFlags()

	assert.False(t, n.IsObstacle())
	assert.False(t, n.IsStart())
	assert.False(t, n.IsEnd())
	assert.False(t, n.IsVisited())
	_, ok := n.Parent()
	assert.False(t, ok)
	assert.True(t, math.IsInf(n.DistFromStart(), 1))
	assert.True(t, math.IsInf(n.DistToEnd(), 1))
	assert.Equal(t, []int{1, 2}, n.AdjNodes())
}

func TestNode_AdjNodesIsACopy(t *testing.T) {
	n := newNode(0, 0, 0)
	n.adj = []int{1, 2, 3}

	adj := n.AdjNodes()
	adj[0] = 99

	assert.Equal(t, []int{1, 2, 3}, n.AdjNodes())
}

func TestNode_CategoryPriority(t *testing.T) {
	tests := []struct {
		name  string
		setup func(n *Node)
		want  Category
	}{
		{"neutral", func(n *Node) {}, CategoryNeutral},
		{"visited", func(n *Node) { n.visited = true }, CategoryVisited},
		{"obstacle over visited", func(n *Node) { n.visited = true; n.obstacle = true }, CategoryObstacle},
		{"end over obstacle", func(n *Node) { n.obstacle = true; n.end = true }, CategoryEnd},
		{"start over end", func(n *Node) { n.end = true; n.start = true; n.visited = true }, CategoryStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNode(0, 0, 0)
			tt.setup(&n)
			assert.Equal(t, tt.want, n.Category())
			assert.Equal(t, tt.want.String(), n.Category().String())
		})
	}
	assert.Equal(t, "start", CategoryStart.String())
	assert.Equal(t, "neutral", CategoryNeutral.String())
}
