package main

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grid-planner/gridgraph"
)

func newTestViewer(t *testing.T, rows, cols int) (*viewer, tcell.SimulationScreen) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	grid, err := gridgraph.New(rows, cols, gridgraph.WithLogger(logger))
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	return newViewer(screen, grid, rand.New(rand.NewPCG(1, 2)), 0.3, 1, logger), screen
}

func TestCellAt(t *testing.T) {
	v, _ := newTestViewer(t, 3, 4)

	id, ok := v.cellAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, 0, id)

	id, ok = v.cellAt(5, 2)
	require.True(t, ok)
	assert.Equal(t, 2*4+2, id)

	_, ok = v.cellAt(8, 0)
	assert.False(t, ok)
	_, ok = v.cellAt(0, 3)
	assert.False(t, ok)
}

func TestClickModifiers(t *testing.T) {
	v, _ := newTestViewer(t, 3, 3)

	v.handleClick(2, 1, tcell.ModNone)
	assert.True(t, v.grid.Nodes()[4].IsObstacle())

	v.handleClick(4, 0, tcell.ModShift)
	assert.Equal(t, 2, v.grid.StartNode().ID())

	v.handleClick(0, 2, tcell.ModCtrl)
	assert.Equal(t, 6, v.grid.EndNode().ID())

	v.handleClick(2, 1, tcell.ModNone)
	assert.False(t, v.grid.Nodes()[4].IsObstacle())

	// outside the grid
	v.handleClick(40, 1, tcell.ModNone)
	assert.Empty(t, v.grid.Layout().Obstacles)
}

func TestMouseEventTogglesOnPressOnly(t *testing.T) {
	v, _ := newTestViewer(t, 3, 3)

	assert.True(t, v.handleInput(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone)))
	// held button does not toggle again
	assert.True(t, v.handleInput(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone)))
	assert.True(t, v.grid.Nodes()[4].IsObstacle())

	assert.True(t, v.handleInput(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone)))
	assert.True(t, v.handleInput(tcell.NewEventMouse(2, 1, tcell.Button1, tcell.ModNone)))
	assert.False(t, v.grid.Nodes()[4].IsObstacle())
}

func TestKeys(t *testing.T) {
	v, _ := newTestViewer(t, 6, 6)

	assert.True(t, v.handleInput(tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModNone)))
	assert.Equal(t, 2, v.stepsPerFrame)
	assert.True(t, v.handleInput(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone)))
	assert.True(t, v.handleInput(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone)))
	assert.Equal(t, 1, v.stepsPerFrame)

	v.grid.FillObstacles(v.grid.Nodes()[7].Point().Bound())
	assert.True(t, v.handleInput(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone)))
	assert.Empty(t, v.grid.Layout().Obstacles)

	assert.False(t, v.handleInput(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, v.handleInput(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestPlaybackRevealsVisitedThenPath(t *testing.T) {
	v, screen := newTestViewer(t, 3, 3)
	v.handleClick(2, 1, tcell.ModNone)

	require.True(t, v.playing())
	v.draw()
	for _, node := range v.grid.Nodes() {
		assert.NotEqual(t, gridgraph.CategoryVisited, v.displayCategory(node))
	}

	for v.playing() {
		v.advance()
	}
	v.draw()

	start, _, _, _ := screen.GetContent(0, 0)
	end, _, _, _ := screen.GetContent(2*cellWidth, 2)
	obstacle, _, _, _ := screen.GetContent(1*cellWidth, 1)
	assert.Equal(t, 'S', start)
	assert.Equal(t, 'E', end)
	assert.Equal(t, '█', obstacle)

	path := v.grid.ShortestPath()
	require.Len(t, path, 4)
	middle := v.grid.Nodes()[path[1]]
	glyph, _, _, _ := screen.GetContent(middle.X()*cellWidth, middle.Y())
	assert.Equal(t, '●', glyph)
}
