package gridgraph

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// setObstacle marks id as an obstacle unless it is the start or end node.
// It reports whether the flag changed.
func (g *GridGraph) setObstacle(id int) bool {
	node := &g.nodes[id]
	if node.obstacle || id == g.startID || id == g.endID {
		return false
	}
	node.obstacle = true
	g.dirty = true
	return true
}

// FillObstacles marks every cell whose centre lies inside bound as an
// obstacle and returns how many cells changed.
func (g *GridGraph) FillObstacles(bound orb.Bound) int {
	filled := 0
	for _, id := range g.index.Query(bound) {
		if g.setObstacle(id) {
			filled++
		}
	}
	return filled
}

// StampZones marks every cell whose centre lies inside one of the polygons
// as an obstacle. Start and end are never covered. It returns how many cells
// changed.
func (g *GridGraph) StampZones(zones []orb.Polygon) int {
	stamped := 0
	for _, zone := range zones {
		if len(zone) == 0 {
			continue
		}
		for _, id := range g.index.Query(zone.Bound()) {
			if !planar.PolygonContains(zone, g.nodes[id].Point()) {
				continue
			}
			if g.setObstacle(id) {
				stamped++
			}
		}
	}

	if stamped > 0 {
		g.logger.Debug("stamped obstacle zones", "zones", len(zones), "cells", stamped)
	}
	return stamped
}
