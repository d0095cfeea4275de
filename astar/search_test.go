package astar_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/tilegrid"
)

// runToEnd advances s until it resolves and returns the number of Advance calls.
func runToEnd(t testing.TB, s *astar.Search) int {
	t.Helper()
	for calls := 1; ; calls++ {
		if s.Advance() != astar.StepContinue {
			return calls
		}
		require.Less(t, calls, 1_000_000, "search did not terminate")
	}
}

// chebyshev and manhattan are local distance helpers.
func chebyshev(a, b tilegrid.Point) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func manhattan(a, b tilegrid.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// assertValidPath checks endpoints, adjacency and passability.
func assertValidPath(t *testing.T, g *tilegrid.Grid, p astar.Path, start, goal tilegrid.Point, conn tilegrid.Connectivity) {
	t.Helper()
	require.NotEmpty(t, p)
	assert.Equal(t, start, p[0], "first cell is start")
	assert.Equal(t, goal, p[len(p)-1], "last cell is goal")
	for i, c := range p {
		assert.True(t, g.IsPassable(c.X, c.Y), "cell %v at %d is passable", c, i)
		if i == 0 {
			continue
		}
		prev := p[i-1]
		if conn == tilegrid.Conn8 {
			assert.Equal(t, 1, chebyshev(prev, c), "step %d: %v -> %v", i, prev, c)
		} else {
			assert.Equal(t, 1, manhattan(prev, c), "step %d: %v -> %v", i, prev, c)
		}
	}
}

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

func TestNew_Errors(t *testing.T) {
	g := openGrid(t, 3, 3)
	cases := []struct {
		name        string
		grid        astar.Grid
		start, goal tilegrid.Point
		opts        []astar.Option
		err         error
	}{
		{"NilGrid", nil, tilegrid.Pt(0, 0), tilegrid.Pt(1, 1), nil, astar.ErrNilGrid},
		{"StartOutOfRange", g, tilegrid.Pt(3, 0), tilegrid.Pt(1, 1), nil, astar.ErrStartOutOfRange},
		{"GoalOutOfRange", g, tilegrid.Pt(0, 0), tilegrid.Pt(0, -1), nil, astar.ErrGoalOutOfRange},
		{"NegativeLimit", g, tilegrid.Pt(0, 0), tilegrid.Pt(1, 1), []astar.Option{astar.WithIterationLimit(-1)}, astar.ErrBadIterationLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := astar.New(tc.grid, tc.start, tc.goal, tc.opts...)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

func TestNew_InitialState(t *testing.T) {
	s, err := astar.New(openGrid(t, 3, 3), tilegrid.Pt(0, 0), tilegrid.Pt(2, 2), astar.WithDiagonal(false))
	require.NoError(t, err)
	assert.Equal(t, astar.PhaseInitialized, s.Phase())
	assert.Equal(t, astar.ReasonNone, s.Reason())
	assert.NoError(t, s.Err())
	assert.Nil(t, s.Path())
	assert.Equal(t, tilegrid.Conn4, s.Movement())
	assert.Equal(t, tilegrid.Pt(0, 0), s.Start())
	assert.Equal(t, tilegrid.Pt(2, 2), s.Goal())
	_, ok := s.Frontier()
	assert.False(t, ok)
}

//----------------------------------------------------------------------------//
// Concrete scenarios
//----------------------------------------------------------------------------//

// TestAdvance_OpenDiagonal: 5×5 open grid, (0,0) → (4,4), diagonal moves.
func TestAdvance_OpenDiagonal(t *testing.T) {
	g := openGrid(t, 5, 5)
	s, err := astar.New(g, tilegrid.Pt(0, 0), tilegrid.Pt(4, 4), astar.WithDiagonal(true))
	require.NoError(t, err)

	runToEnd(t, s)
	require.Equal(t, astar.PhaseSucceeded, s.Phase())
	want := astar.Path{
		tilegrid.Pt(0, 0), tilegrid.Pt(1, 1), tilegrid.Pt(2, 2), tilegrid.Pt(3, 3), tilegrid.Pt(4, 4),
	}
	assert.Equal(t, want, s.Path())
	assert.Equal(t, 4, s.Path().Steps())

	for i, p := range s.Path() {
		n, ok := s.Node(p)
		require.True(t, ok)
		assert.Equal(t, i, n.G, "g along the path")
		assert.Equal(t, astar.Closed, n.Status)
		assert.Equal(t, i > 0, n.HasParent)
	}
}

// TestAdvance_OpenOrthogonal: same grid with 4-neighborhood moves.
func TestAdvance_OpenOrthogonal(t *testing.T) {
	g := openGrid(t, 5, 5)
	start, goal := tilegrid.Pt(0, 0), tilegrid.Pt(4, 4)
	s, err := astar.New(g, start, goal, astar.WithDiagonal(false))
	require.NoError(t, err)

	runToEnd(t, s)
	require.Equal(t, astar.PhaseSucceeded, s.Phase())
	p := s.Path()
	assert.Len(t, p, 9)
	assertValidPath(t, g, p, start, goal, tilegrid.Conn4)
}

// TestAdvance_GoalBlocked: the goal cell is a wall, so it is never opened.
func TestAdvance_GoalBlocked(t *testing.T) {
	g := openGrid(t, 5, 5)
	require.NoError(t, g.Set(4, 4, 7))
	s, err := astar.New(g, tilegrid.Pt(0, 0), tilegrid.Pt(4, 4))
	require.NoError(t, err)

	runToEnd(t, s)
	assert.Equal(t, astar.PhaseFailed, s.Phase())
	assert.Equal(t, astar.ReasonNoPath, s.Reason())
	assert.ErrorIs(t, s.Err(), astar.ErrNoPath)
	assert.Nil(t, s.Path())
	_, touched := s.Node(tilegrid.Pt(4, 4))
	assert.False(t, touched, "goal never materialized")
}

// TestAdvance_StartBlocked fails before any expansion.
func TestAdvance_StartBlocked(t *testing.T) {
	g := openGrid(t, 3, 3)
	require.NoError(t, g.Set(0, 0, 8))
	closes := 0
	s, err := astar.New(g, tilegrid.Pt(0, 0), tilegrid.Pt(2, 2),
		astar.WithOnClose(func(tilegrid.Point, int) { closes++ }))
	require.NoError(t, err)

	assert.Equal(t, astar.StepFailed, s.Advance())
	assert.Equal(t, astar.ReasonStartBlocked, s.Reason())
	assert.ErrorIs(t, s.Err(), astar.ErrStartBlocked)
	assert.Zero(t, closes)
	assert.Zero(t, s.Iterations())
}

// TestAdvance_SurroundedStart reports NoPath on the first call.
//
//	7 7 7 6
//	7 6 7 6
//	7 7 7 6
func TestAdvance_SurroundedStart(t *testing.T) {
	for _, diag := range []bool{true, false} {
		t.Run(fmt.Sprintf("diag=%v", diag), func(t *testing.T) {
			g := gridOf(t, [][]int{
				{7, 7, 7, 6},
				{7, 6, 7, 6},
				{7, 7, 7, 6},
			})
			s, err := astar.New(g, tilegrid.Pt(1, 1), tilegrid.Pt(3, 1), astar.WithDiagonal(diag))
			require.NoError(t, err)
			assert.Equal(t, astar.StepFailed, s.Advance())
			assert.Equal(t, astar.ReasonNoPath, s.Reason())
		})
	}
}

// TestAdvance_StartIsGoal resolves to a one-cell path.
func TestAdvance_StartIsGoal(t *testing.T) {
	s, err := astar.New(openGrid(t, 3, 3), tilegrid.Pt(1, 1), tilegrid.Pt(1, 1))
	require.NoError(t, err)
	assert.Equal(t, astar.StepSucceeded, s.Advance())
	assert.Equal(t, astar.Path{tilegrid.Pt(1, 1)}, s.Path())
	assert.Zero(t, s.Path().Steps())
}

//----------------------------------------------------------------------------//
// Iteration cap
//----------------------------------------------------------------------------//

func TestAdvance_IterationLimitZero(t *testing.T) {
	closes := 0
	s, err := astar.New(openGrid(t, 5, 5), tilegrid.Pt(0, 0), tilegrid.Pt(4, 4),
		astar.WithIterationLimit(0),
		astar.WithOnClose(func(tilegrid.Point, int) { closes++ }))
	require.NoError(t, err)

	assert.Equal(t, astar.StepFailed, s.Advance())
	assert.Equal(t, astar.ReasonIterationLimit, s.Reason())
	assert.ErrorIs(t, s.Err(), astar.ErrIterationLimit)
	assert.Zero(t, closes, "no expansion happens with a zero cap")
}

func TestAdvance_IterationLimitN(t *testing.T) {
	const limit = 3
	s, err := astar.New(openGrid(t, 10, 10), tilegrid.Pt(0, 0), tilegrid.Pt(9, 9),
		astar.WithIterationLimit(limit))
	require.NoError(t, err)

	for i := 1; i < limit; i++ {
		require.Equal(t, astar.StepContinue, s.Advance(), "call %d", i)
		assert.Equal(t, i, s.Iterations())
	}
	assert.Equal(t, astar.StepFailed, s.Advance())
	assert.Equal(t, limit, s.Iterations())
	assert.Equal(t, astar.ReasonIterationLimit, s.Reason())
}

// TestAdvance_DefaultLimitLargeMap: a 40×40 detour needs more than 1000 iterations.
func TestAdvance_DefaultLimitLargeMap(t *testing.T) {
	g := openGrid(t, 40, 40)
	for y := 0; y < 39; y++ {
		require.NoError(t, g.Set(20, y, 7))
	}
	start, goal := tilegrid.Pt(0, 0), tilegrid.Pt(39, 0)

	s, err := astar.New(g, start, goal, astar.WithDiagonal(false))
	require.NoError(t, err)
	runToEnd(t, s)
	assert.Equal(t, astar.ReasonIterationLimit, s.Reason())
	assert.Equal(t, astar.DefaultIterationLimit, s.Iterations())

	s, err = astar.New(g, start, goal, astar.WithDiagonal(false), astar.WithIterationLimit(40*40))
	require.NoError(t, err)
	runToEnd(t, s)
	require.Equal(t, astar.PhaseSucceeded, s.Phase())
	assertValidPath(t, g, s.Path(), start, goal, tilegrid.Conn4)
}

//----------------------------------------------------------------------------//
// State machine behavior
//----------------------------------------------------------------------------//

func TestAdvance_TerminalIsSticky(t *testing.T) {
	s, err := astar.New(openGrid(t, 3, 3), tilegrid.Pt(0, 0), tilegrid.Pt(2, 2))
	require.NoError(t, err)
	runToEnd(t, s)
	path := s.Path()
	iters := s.Iterations()

	for i := 0; i < 3; i++ {
		assert.Equal(t, astar.StepSucceeded, s.Advance())
	}
	assert.Equal(t, path, s.Path())
	assert.Equal(t, iters, s.Iterations())

	// Path returns a copy.
	path[0] = tilegrid.Pt(9, 9)
	assert.Equal(t, tilegrid.Pt(0, 0), s.Path()[0])
}

func TestAdvance_Snapshot(t *testing.T) {
	s, err := astar.New(openGrid(t, 5, 5), tilegrid.Pt(0, 0), tilegrid.Pt(4, 4))
	require.NoError(t, err)

	require.Equal(t, astar.StepContinue, s.Advance())
	snap := s.Snapshot()
	assert.Equal(t, astar.PhaseExpanding, snap.Phase)
	assert.Equal(t, 1, snap.Iteration)
	assert.Equal(t, []tilegrid.Point{tilegrid.Pt(0, 0)}, snap.Closed)
	assert.Equal(t, []tilegrid.Point{tilegrid.Pt(1, 0), tilegrid.Pt(0, 1), tilegrid.Pt(1, 1)}, snap.Open)
	assert.True(t, snap.HasFrontier)
	assert.Equal(t, tilegrid.Pt(1, 1), snap.Frontier)
	assert.Nil(t, snap.Path)

	n, ok := s.Node(tilegrid.Pt(1, 0))
	require.True(t, ok)
	assert.Equal(t, astar.Open, n.Status)
	assert.Equal(t, 1, n.G)
	assert.Equal(t, 4, n.H)
	assert.Equal(t, 5, n.F)
	assert.Equal(t, tilegrid.Pt(0, 0), n.Parent)
}

func TestAdvance_Hooks(t *testing.T) {
	var opened, closed []tilegrid.Point
	s, err := astar.New(openGrid(t, 3, 3), tilegrid.Pt(0, 0), tilegrid.Pt(2, 2),
		astar.WithOnOpen(func(p tilegrid.Point, g, h int) { opened = append(opened, p) }),
		astar.WithOnClose(func(p tilegrid.Point, g int) { closed = append(closed, p) }),
	)
	require.NoError(t, err)
	runToEnd(t, s)

	require.Equal(t, astar.PhaseSucceeded, s.Phase())
	assert.Equal(t, tilegrid.Pt(0, 0), opened[0], "start opened first")
	assert.Equal(t, []tilegrid.Point{tilegrid.Pt(0, 0), tilegrid.Pt(1, 1)}, closed)
	assert.Contains(t, opened, tilegrid.Pt(2, 2))
}

func TestAdvance_LogsDistinctFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := astar.New(openGrid(t, 5, 5), tilegrid.Pt(0, 0), tilegrid.Pt(4, 4),
		astar.WithIterationLimit(1), astar.WithLogger(logger))
	require.NoError(t, err)
	runToEnd(t, s)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "reason=iteration_limit_exceeded")

	buf.Reset()
	g := openGrid(t, 2, 1)
	require.NoError(t, g.Set(1, 0, 7))
	s, err = astar.New(g, tilegrid.Pt(0, 0), tilegrid.Pt(1, 0), astar.WithLogger(logger))
	require.NoError(t, err)
	runToEnd(t, s)
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "reason=no_path")
}

//----------------------------------------------------------------------------//
// Properties
//----------------------------------------------------------------------------//

func TestSearch_Deterministic(t *testing.T) {
	g, err := tilegrid.Generate(tilegrid.GenerateConfig{Width: 30, Height: 20, WallDensity: 0.25, Seed: 11})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(3))
	start, err := g.RandomFloorCell(rng, 0)
	require.NoError(t, err)
	goal, err := g.RandomFloorCell(rng, 0)
	require.NoError(t, err)

	for _, diag := range []bool{true, false} {
		first, err1 := astar.FindPath(context.Background(), g, start, goal, astar.WithDiagonal(diag))
		for i := 0; i < 5; i++ {
			again, err2 := astar.FindPath(context.Background(), g, start, goal, astar.WithDiagonal(diag))
			assert.Equal(t, err1, err2)
			assert.Equal(t, first, again)
		}
	}
}

// TestSearch_OpenMapOptimal: on obstacle-free maps the path has exactly
// Chebyshev (diagonal) or Manhattan (orthogonal) steps.
func TestSearch_OpenMapOptimal(t *testing.T) {
	g := openGrid(t, 12, 9)
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 40; i++ {
		start := tilegrid.Pt(rng.Intn(12), rng.Intn(9))
		goal := tilegrid.Pt(rng.Intn(12), rng.Intn(9))

		p, err := astar.FindPath(context.Background(), g, start, goal, astar.WithDiagonal(true))
		require.NoError(t, err)
		assert.Equal(t, chebyshev(start, goal), p.Steps(), "diag %v -> %v", start, goal)
		assertValidPath(t, g, p, start, goal, tilegrid.Conn8)

		p, err = astar.FindPath(context.Background(), g, start, goal, astar.WithDiagonal(false))
		require.NoError(t, err)
		assert.Equal(t, manhattan(start, goal), p.Steps(), "orth %v -> %v", start, goal)
		assertValidPath(t, g, p, start, goal, tilegrid.Conn4)
	}
}

// TestSearch_RandomMaps: with a cap of W×H the search succeeds exactly when
// the goal is reachable, and never beats the breadth-first distance.
func TestSearch_RandomMaps(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		g, err := tilegrid.Generate(tilegrid.GenerateConfig{Width: 16, Height: 12, WallDensity: 0.3, Seed: seed})
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(seed))
		start, err := g.RandomFloorCell(rng, 0)
		require.NoError(t, err)
		goal, err := g.RandomFloorCell(rng, 0)
		require.NoError(t, err)

		for _, conn := range []tilegrid.Connectivity{tilegrid.Conn4, tilegrid.Conn8} {
			p, err := astar.FindPath(context.Background(), g, start, goal,
				astar.WithMovement(conn), astar.WithIterationLimit(g.Len()))
			dist := g.StepDistance(start, goal, conn)
			if dist < 0 {
				assert.ErrorIs(t, err, astar.ErrNoPath, "seed %d %v", seed, conn)
				continue
			}
			require.NoError(t, err, "seed %d %v", seed, conn)
			assertValidPath(t, g, p, start, goal, conn)
			assert.GreaterOrEqual(t, p.Steps(), dist)
		}
	}
}

//----------------------------------------------------------------------------//
// Run / FindPath
//----------------------------------------------------------------------------//

func TestRun_Cancelled(t *testing.T) {
	s, err := astar.New(openGrid(t, 5, 5), tilegrid.Pt(0, 0), tilegrid.Pt(4, 4))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, err := astar.Run(ctx, s)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, astar.PhaseInitialized, s.Phase(), "abandoned search is untouched")

	p, err = astar.Run(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Steps())
}

func TestFindPath_ConstructionError(t *testing.T) {
	_, err := astar.FindPath(context.Background(), openGrid(t, 2, 2), tilegrid.Pt(0, 0), tilegrid.Pt(5, 5))
	assert.ErrorIs(t, err, astar.ErrGoalOutOfRange)
}

func TestEnums_String(t *testing.T) {
	assert.Equal(t, "expanding", astar.PhaseExpanding.String())
	assert.True(t, astar.PhaseFailed.Terminal())
	assert.False(t, astar.PhaseExpanding.Terminal())
	assert.Equal(t, "continue", astar.StepContinue.String())
	assert.Equal(t, "start_blocked", astar.ReasonStartBlocked.String())
	assert.Equal(t, "closed", astar.Closed.String())
	assert.NoError(t, astar.ReasonNone.Err())
}
