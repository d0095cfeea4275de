package astar

import "github.com/katalvlaran/tilepath/tilegrid"

// Status is the search state of a single node.
type Status uint8

const (
	// Unvisited: materialized but never opened.
	Unvisited Status = iota
	// Open: discovered, waiting in the open set.
	Open
	// Closed: expanded; never reopened.
	Closed
)

func (s Status) String() string {
	switch s {
	case Open:
		return "open"
	case Closed:
		return "closed"
	}
	return "unvisited"
}

// NodeID is a handle into a NodeStore arena. It does not own anything.
type NodeID int32

// NoNode marks "no parent" and failed lookups.
const NoNode NodeID = -1

// Node is per-cell search bookkeeping.
// H is fixed at creation; Parent links back toward the start.
type Node struct {
	Pos    Point
	Status Status
	G      int
	H      int
	Parent NodeID
}

// F returns G + H.
func (n *Node) F() int { return n.G + n.H }

// heuristic is Chebyshev distance under Conn8 and Manhattan distance under Conn4.
func heuristic(movement tilegrid.Connectivity, p, goal Point) int {
	dx := abs(goal.X - p.X)
	dy := abs(goal.Y - p.Y)
	if movement == tilegrid.Conn8 {
		if dx > dy {
			return dx
		}
		return dy
	}
	return dx + dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
