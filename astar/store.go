package astar

import "github.com/katalvlaran/tilepath/tilegrid"

// NodeStore owns every Node of one search in a single arena.
// Nodes are materialized lazily, keyed by grid index; parents are NodeIDs
// into the same arena, so dropping the store drops the whole search tree.
type NodeStore struct {
	grid     Grid
	goal     Point
	movement tilegrid.Connectivity

	nodes  []Node
	byCell map[int]NodeID
	open   []NodeID
}

// NewNodeStore creates an empty store for a search toward goal.
func NewNodeStore(grid Grid, goal Point, movement tilegrid.Connectivity) *NodeStore {
	return &NodeStore{
		grid:     grid,
		goal:     goal,
		movement: movement,
		byCell:   make(map[int]NodeID),
	}
}

// GetOrCreate returns the node for (x,y), materializing it as Unvisited with
// its heuristic on first reference. Repeated calls return the same ID.
// Returns NoNode, false for out-of-range coordinates.
func (s *NodeStore) GetOrCreate(x, y int) (NodeID, bool) {
	if s.grid.IsOutOfRange(x, y) {
		return NoNode, false
	}
	idx := x + y*s.grid.Width()
	if id, ok := s.byCell[idx]; ok {
		return id, true
	}
	p := Point{X: x, Y: y}
	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, Node{
		Pos:    p,
		Status: Unvisited,
		H:      heuristic(s.movement, p, s.goal),
		Parent: NoNode,
	})
	s.byCell[idx] = id

	return id, true
}

// Lookup returns the node for (x,y) if it has been materialized.
func (s *NodeStore) Lookup(x, y int) (NodeID, bool) {
	if s.grid.IsOutOfRange(x, y) {
		return NoNode, false
	}
	id, ok := s.byCell[x+y*s.grid.Width()]
	return id, ok
}

// Node returns the node behind id. The pointer is valid until the next
// call that materializes a node.
func (s *NodeStore) Node(id NodeID) *Node {
	return &s.nodes[id]
}

// TryOpen opens (x,y) with cost g and the given parent.
// Returns NoNode, false if the cell is out of range, impassable, or was
// already opened or closed; a cheaper g never reopens a node.
func (s *NodeStore) TryOpen(x, y, g int, parent NodeID) (NodeID, bool) {
	if s.grid.IsOutOfRange(x, y) || !s.grid.IsPassable(x, y) {
		return NoNode, false
	}
	id, _ := s.GetOrCreate(x, y)
	n := &s.nodes[id]
	if n.Status != Unvisited {
		return NoNode, false
	}
	n.Status = Open
	n.G = g
	n.Parent = parent
	s.open = append(s.open, id)

	return id, true
}

// Close removes id from the open set, keeping the order of the rest.
// Marking the node Closed is left to the caller.
func (s *NodeStore) Close(id NodeID) {
	for i, o := range s.open {
		if o == id {
			s.open = append(s.open[:i], s.open[i+1:]...)
			return
		}
	}
}

// SelectBest scans the open set for the minimum F, breaking ties by
// minimum G; on a full tie the earliest opened node wins.
// Returns NoNode, false iff the open set is empty.
func (s *NodeStore) SelectBest() (NodeID, bool) {
	best := NoNode
	var bestF, bestG int
	for _, id := range s.open {
		n := &s.nodes[id]
		f := n.F()
		if best != NoNode && (f > bestF || (f == bestF && n.G >= bestG)) {
			continue
		}
		best, bestF, bestG = id, f, n.G
	}
	return best, best != NoNode
}

// OpenLen returns the size of the open set.
func (s *NodeStore) OpenLen() int { return len(s.open) }

// Len returns the number of materialized nodes.
func (s *NodeStore) Len() int { return len(s.nodes) }

// OpenPoints returns the open set coordinates in insertion order.
func (s *NodeStore) OpenPoints() []Point {
	out := make([]Point, len(s.open))
	for i, id := range s.open {
		out[i] = s.nodes[id].Pos
	}
	return out
}

// ClosedPoints returns the closed coordinates in materialization order.
func (s *NodeStore) ClosedPoints() []Point {
	var out []Point
	for i := range s.nodes {
		if s.nodes[i].Status == Closed {
			out = append(out, s.nodes[i].Pos)
		}
	}
	return out
}

// PathTo walks parent links from id back to the root and returns the
// coordinates root first.
func (s *NodeStore) PathTo(id NodeID) Path {
	var path Path
	for cur := id; cur != NoNode; cur = s.nodes[cur].Parent {
		path = append(path, s.nodes[cur].Pos)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
