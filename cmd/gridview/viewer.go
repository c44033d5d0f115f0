package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"grid-planner/gridgraph"
)

// cellWidth is the number of terminal columns per grid cell
const cellWidth = 2

// Display colors
var (
	backgroundColor = tcell.NewHexColor(0x282828)
	neutralColor    = tcell.NewHexColor(0x076678)
	visitedColor    = tcell.NewHexColor(0x83a598)
	obstacleColor   = tcell.NewHexColor(0x928374)
	startColor      = tcell.NewHexColor(0x98971a)
	endColor        = tcell.NewHexColor(0xfb4934)
	pathColor       = tcell.NewHexColor(0xfabd2f)
)

type viewer struct {
	screen tcell.Screen
	grid   *gridgraph.GridGraph
	logger *slog.Logger

	rng         gridgraph.RandomSource
	probability float64

	stepsPerFrame int
	revealed      []bool // visited nodes replayed so far
	result        gridgraph.Result
	buttonDown    bool
}

func newViewer(screen tcell.Screen, grid *gridgraph.GridGraph, rng gridgraph.RandomSource,
	probability float64, stepsPerFrame int, logger *slog.Logger) *viewer {
	screen.EnableMouse()
	v := &viewer{
		screen:        screen,
		grid:          grid,
		logger:        logger,
		rng:           rng,
		probability:   probability,
		stepsPerFrame: max(stepsPerFrame, 1),
	}
	v.resolve()
	return v
}

// resolve rebuilds adjacency, solves, and restarts playback
func (v *viewer) resolve() {
	v.grid.RebuildAdjacency()
	v.result = v.grid.Solve()
	v.revealed = make([]bool, v.grid.Len())
	v.logger.Debug("grid solved", "found", v.result.Found, "cost", v.result.Cost, "visited", v.result.VisitedNodes)
}

// replay restarts playback. Solving is deterministic, so the same search replays.
func (v *viewer) replay() {
	v.resolve()
}

// advance reveals the next batch of visited nodes
func (v *viewer) advance() {
	for i := 0; i < v.stepsPerFrame; i++ {
		id, ok := v.grid.PopVisitedFront()
		if !ok {
			return
		}
		v.revealed[id] = true
	}
}

// playing reports whether visited nodes are still waiting to be revealed
func (v *viewer) playing() bool {
	return v.grid.VisitedLen() > 0
}

// cellAt maps a terminal position to a node id
func (v *viewer) cellAt(col, row int) (int, bool) {
	id, err := v.grid.ID(col/cellWidth, row)
	if err != nil {
		return gridgraph.NoNode, false
	}
	return id, true
}

// handleClick applies one mouse click and re-solves
func (v *viewer) handleClick(col, row int, mods tcell.ModMask) {
	id, ok := v.cellAt(col, row)
	if !ok {
		return
	}

	var err error
	switch {
	case mods&tcell.ModShift != 0:
		err = v.grid.SetStart(id)
	case mods&(tcell.ModCtrl|tcell.ModAlt) != 0:
		err = v.grid.SetEnd(id)
	default:
		_, err = v.grid.ToggleObstacle(id)
	}
	if err != nil {
		v.logger.Warn("click ignored", "id", id, "error", err)
		return
	}
	v.resolve()
}

// handleInput processes one event and reports whether the viewer keeps running
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			toggled := v.grid.RandomizeObstacles(v.rng, v.probability)
			v.logger.Debug("obstacles randomized", "toggled", toggled)
			v.resolve()
		case 'c':
			v.grid.ClearObstacles()
			v.resolve()
		case ' ':
			v.replay()
		case '+':
			v.stepsPerFrame *= 2
		case '-':
			v.stepsPerFrame = max(v.stepsPerFrame/2, 1)
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !v.buttonDown {
			col, row := ev.Position()
			v.handleClick(col, row, ev.Modifiers())
		}
		v.buttonDown = pressed

	case *tcell.EventResize:
		v.screen.Sync()
	}

	return true
}

// displayCategory hides visited nodes the playback has not reached yet
func (v *viewer) displayCategory(node gridgraph.Node) gridgraph.Category {
	category := node.Category()
	if category == gridgraph.CategoryVisited && !v.revealed[node.ID()] {
		return gridgraph.CategoryNeutral
	}
	return category
}

func categoryStyle(category gridgraph.Category) (rune, tcell.Style) {
	style := tcell.StyleDefault.Background(backgroundColor)
	switch category {
	case gridgraph.CategoryStart:
		return 'S', style.Foreground(startColor)
	case gridgraph.CategoryEnd:
		return 'E', style.Foreground(endColor)
	case gridgraph.CategoryObstacle:
		return '█', style.Foreground(obstacleColor)
	case gridgraph.CategoryVisited:
		return '•', style.Foreground(visitedColor)
	default:
		return '·', style.Foreground(neutralColor)
	}
}

func (v *viewer) draw() {
	v.screen.Clear()

	onPath := make(map[int]bool)
	if !v.playing() {
		for _, id := range v.grid.ShortestPath() {
			onPath[id] = true
		}
	}

	for _, node := range v.grid.Nodes() {
		category := v.displayCategory(node)
		glyph, style := categoryStyle(category)
		if onPath[node.ID()] && category != gridgraph.CategoryStart && category != gridgraph.CategoryEnd {
			glyph, style = '●', style.Foreground(pathColor)
		}
		v.screen.SetContent(node.X()*cellWidth, node.Y(), glyph, nil, style)
		v.screen.SetContent(node.X()*cellWidth+1, node.Y(), ' ', nil, style)
	}

	v.drawStatus(v.grid.Rows() + 1)
	v.screen.Show()
}

func (v *viewer) drawStatus(row int) {
	status := "searching..."
	if !v.playing() {
		if v.result.Found {
			status = fmt.Sprintf("path: %d nodes, length %.2f", len(v.grid.ShortestPath()), v.grid.PathLength())
		} else {
			status = "no path"
		}
	}
	status += fmt.Sprintf("  |  speed %d/frame  |  click toggle, shift start, ctrl end, r c space +/- q", v.stepsPerFrame)

	for i, r := range status {
		v.screen.SetContent(i, row, r, nil, tcell.StyleDefault)
	}
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return
			}

		case <-ticker.C:
			v.advance()
			v.draw()
		}
	}
}
