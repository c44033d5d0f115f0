package gridgraph

// Category is the display class a shell draws a node with.
type Category int

const (
	CategoryNeutral Category = iota
	CategoryVisited
	CategoryObstacle
	CategoryEnd
	CategoryStart
)

func (c Category) String() string {
	switch c {
	case CategoryStart:
		return "start"
	case CategoryEnd:
		return "end"
	case CategoryObstacle:
		return "obstacle"
	case CategoryVisited:
		return "visited"
	default:
		return "neutral"
	}
}

// Category derives the display class in priority order:
// start > end > obstacle > visited > neutral.
func (n Node) Category() Category {
	switch {
	case n.start:
		return CategoryStart
	case n.end:
		return CategoryEnd
	case n.obstacle:
		return CategoryObstacle
	case n.visited:
		return CategoryVisited
	default:
		return CategoryNeutral
	}
}
