package gridgraph

import (
	"encoding/json"
	"fmt"
)

// Layout captures the user-editable state of a grid: its dimensions, the
// start and end ids, and the obstacle ids in ascending order.
type Layout struct {
	Rows      int   `json:"rows"`
	Cols      int   `json:"cols"`
	Start     int   `json:"start"`
	End       int   `json:"end"`
	Obstacles []int `json:"obstacles"`
}

// Layout returns the current layout of the grid.
func (g *GridGraph) Layout() Layout {
	layout := Layout{
		Rows:      g.rows,
		Cols:      g.cols,
		Start:     g.startID,
		End:       g.endID,
		Obstacles: make([]int, 0),
	}
	for i := range g.nodes {
		if g.nodes[i].obstacle {
			layout.Obstacles = append(layout.Obstacles, g.nodes[i].id)
		}
	}
	return layout
}

// ApplyLayout replaces obstacles, start and end with the ones in layout.
// The layout is validated before anything changes: its dimensions must match
// the grid and every id must be in range. Adjacency is left stale until the
// next RebuildAdjacency or Solve.
func (g *GridGraph) ApplyLayout(layout Layout) error {
	if layout.Rows != g.rows || layout.Cols != g.cols {
		return fmt.Errorf("%w: layout is %dx%d, grid is %dx%d",
			ErrInvalidDimensions, layout.Rows, layout.Cols, g.rows, g.cols)
	}
	if err := g.checkID(layout.Start); err != nil {
		return fmt.Errorf("layout start: %w", err)
	}
	if err := g.checkID(layout.End); err != nil {
		return fmt.Errorf("layout end: %w", err)
	}
	for _, id := range layout.Obstacles {
		if err := g.checkID(id); err != nil {
			return fmt.Errorf("layout obstacle: %w", err)
		}
	}

	for i := range g.nodes {
		g.nodes[i].resetFlags()
	}
	g.startID, g.endID = NoNode, NoNode

	if err := g.SetStart(layout.Start); err != nil {
		return err
	}
	if err := g.SetEnd(layout.End); err != nil {
		return err
	}
	for _, id := range layout.Obstacles {
		g.setObstacle(id)
	}
	g.dirty = true
	return nil
}

// MarshalLayout serializes a layout to indented JSON
func MarshalLayout(layout Layout) ([]byte, error) {
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal layout: %w", err)
	}
	return data, nil
}

// UnmarshalLayout deserializes a layout from JSON
func UnmarshalLayout(data []byte) (Layout, error) {
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return Layout{}, fmt.Errorf("failed to unmarshal layout: %w", err)
	}
	if layout.Obstacles == nil {
		layout.Obstacles = make([]int, 0)
	}
	return layout, nil
}
