package gridgraph

import "errors"

var (
	// ErrInvalidNodeID is returned when an id falls outside [0, rows*cols).
	ErrInvalidNodeID = errors.New("invalid node id")
	// ErrInvalidDimensions is returned when a grid has rows or cols <= 0.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
)
