package astar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/tilepath/tilegrid"
)

// Search is a single A* query from start to goal. It owns its NodeStore;
// independent searches may share one read-only Grid.
// A Search is not safe for concurrent use.
type Search struct {
	grid        Grid
	start, goal Point
	opts        Options
	offsets     [][2]int

	store      *NodeStore
	phase      Phase
	reason     Reason
	frontier   NodeID
	iterations int
	path       Path
}

// New validates its inputs and returns a Search in PhaseInitialized.
// Returns ErrNilGrid, ErrStartOutOfRange, ErrGoalOutOfRange, or
// ErrBadIterationLimit. The start and goal need not be passable.
func New(grid Grid, start, goal Point, opts ...Option) (*Search, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if grid.IsOutOfRange(start.X, start.Y) {
		return nil, fmt.Errorf("%w: %v on %dx%d", ErrStartOutOfRange, start, grid.Width(), grid.Height())
	}
	if grid.IsOutOfRange(goal.X, goal.Y) {
		return nil, fmt.Errorf("%w: %v on %dx%d", ErrGoalOutOfRange, goal, grid.Width(), grid.Height())
	}

	return &Search{
		grid:     grid,
		start:    start,
		goal:     goal,
		opts:     o,
		offsets:  tilegrid.NeighborOffsets(o.Movement),
		store:    NewNodeStore(grid, goal, o.Movement),
		phase:    PhaseInitialized,
		frontier: NoNode,
	}, nil
}

// Advance performs one bounded unit of work: seeding on the first call,
// then one expansion and one scan of the open set. Terminal searches keep
// returning their terminal Step.
func (s *Search) Advance() Step {
	switch s.phase {
	case PhaseSucceeded:
		return StepSucceeded
	case PhaseFailed:
		return StepFailed
	case PhaseInitialized:
		if step, done := s.seed(); done {
			return step
		}
	}

	s.expand(s.frontier)

	best, ok := s.store.SelectBest()
	if !ok {
		return s.fail(ReasonNoPath)
	}
	if s.store.Node(best).Pos == s.goal {
		return s.succeed(best)
	}

	s.iterations++
	if s.iterations >= s.opts.IterationLimit {
		return s.fail(ReasonIterationLimit)
	}
	s.frontier = best

	return StepContinue
}

// seed opens the start node. done is true when the search resolved without
// needing an expansion.
func (s *Search) seed() (step Step, done bool) {
	id, ok := s.store.TryOpen(s.start.X, s.start.Y, 0, NoNode)
	if !ok {
		return s.fail(ReasonStartBlocked), true
	}
	s.phase = PhaseExpanding
	s.opts.OnOpen(s.start, 0, s.store.Node(id).H)
	if s.start == s.goal {
		return s.succeed(id), true
	}
	if s.opts.IterationLimit == 0 {
		return s.fail(ReasonIterationLimit), true
	}
	s.frontier = id

	return StepContinue, false
}

// expand closes the frontier and opens its passable, unvisited neighbors
// at cost g+1.
func (s *Search) expand(id NodeID) {
	s.store.Close(id)
	n := s.store.Node(id)
	n.Status = Closed
	base, g := n.Pos, n.G
	s.opts.OnClose(base, g)

	for _, d := range s.offsets {
		x, y := base.X+d[0], base.Y+d[1]
		if nid, ok := s.store.TryOpen(x, y, g+1, id); ok {
			s.opts.OnOpen(Point{X: x, Y: y}, g+1, s.store.Node(nid).H)
		}
	}
}

func (s *Search) succeed(id NodeID) Step {
	s.store.Close(id)
	s.store.Node(id).Status = Closed
	s.path = s.store.PathTo(id)
	s.frontier = id
	s.phase = PhaseSucceeded
	s.opts.Logger.LogAttrs(context.Background(), slog.LevelDebug, "astar: path found",
		slog.String("start", s.start.String()),
		slog.String("goal", s.goal.String()),
		slog.Int("steps", s.path.Steps()),
		slog.Int("iterations", s.iterations),
		slog.Int("nodes", s.store.Len()),
	)
	return StepSucceeded
}

func (s *Search) fail(r Reason) Step {
	s.phase = PhaseFailed
	s.reason = r
	level := slog.LevelInfo
	if r == ReasonIterationLimit {
		level = slog.LevelWarn
	}
	s.opts.Logger.LogAttrs(context.Background(), level, "astar: search failed",
		slog.String("reason", r.String()),
		slog.String("start", s.start.String()),
		slog.String("goal", s.goal.String()),
		slog.Int("iterations", s.iterations),
		slog.Int("limit", s.opts.IterationLimit),
		slog.Int("nodes", s.store.Len()),
	)
	return StepFailed
}

// Phase returns the current state.
func (s *Search) Phase() Phase { return s.phase }

// Reason returns the failure tag, ReasonNone unless the search failed.
func (s *Search) Reason() Reason { return s.reason }

// Err returns the sentinel error for a failed search, nil otherwise.
func (s *Search) Err() error {
	if s.phase != PhaseFailed {
		return nil
	}
	return s.reason.Err()
}

// Path returns a copy of the start→goal path, or nil unless the search succeeded.
func (s *Search) Path() Path {
	if s.phase != PhaseSucceeded {
		return nil
	}
	out := make(Path, len(s.path))
	copy(out, s.path)
	return out
}

// Iterations returns the number of completed non-terminal iterations.
func (s *Search) Iterations() int { return s.iterations }

// Start returns the start coordinate.
func (s *Search) Start() Point { return s.start }

// Goal returns the goal coordinate.
func (s *Search) Goal() Point { return s.goal }

// Movement returns the active movement policy.
func (s *Search) Movement() tilegrid.Connectivity { return s.opts.Movement }

// Frontier returns the node that the next Advance expands, or the goal
// node after success.
func (s *Search) Frontier() (Point, bool) {
	if s.frontier == NoNode {
		return Point{}, false
	}
	return s.store.Node(s.frontier).Pos, true
}

// NodeView is a read-only copy of a materialized node.
type NodeView struct {
	Pos       Point
	Status    Status
	G, H, F   int
	Parent    Point
	HasParent bool
}

// Node returns a copy of the node at p, if the search has touched it.
func (s *Search) Node(p Point) (NodeView, bool) {
	id, ok := s.store.Lookup(p.X, p.Y)
	if !ok {
		return NodeView{}, false
	}
	n := s.store.Node(id)
	v := NodeView{Pos: n.Pos, Status: n.Status, G: n.G, H: n.H, F: n.F()}
	if n.Parent != NoNode {
		v.Parent, v.HasParent = s.store.Node(n.Parent).Pos, true
	}
	return v, true
}

// Snapshot is a point-in-time copy of the search state for viewers.
type Snapshot struct {
	Phase       Phase
	Reason      Reason
	Iteration   int
	Frontier    Point
	HasFrontier bool
	Open        []Point
	Closed      []Point
	Path        Path
}

// Snapshot copies the current open and closed sets, frontier and path.
func (s *Search) Snapshot() Snapshot {
	f, ok := s.Frontier()
	return Snapshot{
		Phase:       s.phase,
		Reason:      s.reason,
		Iteration:   s.iterations,
		Frontier:    f,
		HasFrontier: ok,
		Open:        s.store.OpenPoints(),
		Closed:      s.store.ClosedPoints(),
		Path:        s.Path(),
	}
}
