// Package gridgraph models a 2D grid of cells and finds shortest paths on it
// with A*.
//
// A GridGraph owns every Node in a single arena indexed by row-major id.
// Parent links and adjacency lists are plain ids into that arena. Shells
// mutate obstacle/start/end state, call RebuildAdjacency, run Solve, and then
// replay the visited queue and the shortest path to animate the result.
//
// A GridGraph is not safe for concurrent use; callers serialize access.
package gridgraph
