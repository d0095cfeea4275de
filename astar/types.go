// Package astar defines core types, configuration options and sentinel
// errors for the resumable grid A* search.
package astar

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/tilepath/tilegrid"
)

// Sentinel errors returned at construction time.
var (
	// ErrNilGrid indicates that a nil Grid was passed to New.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrStartOutOfRange indicates a start coordinate outside the grid.
	ErrStartOutOfRange = errors.New("astar: start coordinate out of range")

	// ErrGoalOutOfRange indicates a goal coordinate outside the grid.
	ErrGoalOutOfRange = errors.New("astar: goal coordinate out of range")

	// ErrBadIterationLimit indicates a negative iteration cap.
	ErrBadIterationLimit = errors.New("astar: iteration limit must be non-negative")
)

// Sentinel errors describing a failed search, one per Reason.
var (
	// ErrStartBlocked: the start cell is impassable.
	ErrStartBlocked = errors.New("astar: start cell is not passable")

	// ErrNoPath: the open set emptied before the goal was reached.
	ErrNoPath = errors.New("astar: no path to goal")

	// ErrIterationLimit: the iteration cap was hit before the search resolved.
	ErrIterationLimit = errors.New("astar: iteration limit exceeded")
)

// DefaultIterationLimit caps the number of non-terminal iterations of one search.
const DefaultIterationLimit = 1000

// Point is a grid coordinate.
type Point = tilegrid.Point

// Grid is the read-only map contract the search consumes.
// *tilegrid.Grid satisfies it.
type Grid interface {
	Width() int
	Height() int
	// Get returns the cell value, or -1 outside the grid.
	Get(x, y int) int
	IsOutOfRange(x, y int) bool
	IsPassable(x, y int) bool
}

// Phase is the state of a Search.
type Phase int

const (
	// PhaseInitialized: constructed, Advance not yet called.
	PhaseInitialized Phase = iota
	// PhaseExpanding: at least one step taken, not resolved.
	PhaseExpanding
	// PhaseSucceeded: terminal, Path is available.
	PhaseSucceeded
	// PhaseFailed: terminal, Reason is set.
	PhaseFailed
)

var phaseNames = [...]string{"initialized", "expanding", "succeeded", "failed"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Terminal reports whether no further transitions are possible.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// Step is the tri-state result of one Advance call.
type Step int

const (
	// StepContinue: call Advance again.
	StepContinue Step = iota
	// StepSucceeded: a path was found.
	StepSucceeded
	// StepFailed: the search ended without a path; see Reason.
	StepFailed
)

func (s Step) String() string {
	switch s {
	case StepContinue:
		return "continue"
	case StepSucceeded:
		return "succeeded"
	case StepFailed:
		return "failed"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Reason tags why a search failed.
type Reason int

const (
	// ReasonNone: the search has not failed.
	ReasonNone Reason = iota
	// ReasonStartBlocked: the start cell could not be opened.
	ReasonStartBlocked
	// ReasonNoPath: the frontier was exhausted.
	ReasonNoPath
	// ReasonIterationLimit: the iteration cap was reached.
	ReasonIterationLimit
)

var reasonNames = [...]string{"none", "start_blocked", "no_path", "iteration_limit_exceeded"}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonNames) {
		return fmt.Sprintf("reason(%d)", int(r))
	}
	return reasonNames[r]
}

// Err maps the reason to its sentinel error, nil for ReasonNone.
func (r Reason) Err() error {
	switch r {
	case ReasonStartBlocked:
		return ErrStartBlocked
	case ReasonNoPath:
		return ErrNoPath
	case ReasonIterationLimit:
		return ErrIterationLimit
	}
	return nil
}

// Path is an ordered cell sequence, start first and goal last.
type Path []Point

// Steps returns the number of moves along the path.
func (p Path) Steps() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Options configures a Search.
//
// Movement        – Conn8 allows diagonal moves, Conn4 restricts to W/N/E/S.
// IterationLimit  – cap on non-terminal iterations; 0 fails right after seeding.
// Logger          – receives one record per terminal transition.
// OnOpen, OnClose – observation hooks; they must not mutate the grid.
type Options struct {
	Movement       tilegrid.Connectivity
	IterationLimit int
	Logger         *slog.Logger
	OnOpen         func(p Point, g, h int)
	OnClose        func(p Point, g int)

	// internal error recorded during option parsing
	err error
}

// Option is a functional option for New.
type Option func(*Options)

// DefaultOptions returns Options with sane defaults:
//   - diagonal movement (Conn8)
//   - IterationLimit = DefaultIterationLimit
//   - a logger that discards everything
//   - no-op hooks
func DefaultOptions() Options {
	return Options{
		Movement:       tilegrid.Conn8,
		IterationLimit: DefaultIterationLimit,
		Logger:         slog.New(slog.DiscardHandler),
		OnOpen:         func(Point, int, int) {},
		OnClose:        func(Point, int) {},
	}
}

// WithDiagonal selects Conn8 when allow is true, Conn4 otherwise.
func WithDiagonal(allow bool) Option {
	return func(o *Options) {
		if allow {
			o.Movement = tilegrid.Conn8
		} else {
			o.Movement = tilegrid.Conn4
		}
	}
}

// WithMovement sets the movement policy directly.
func WithMovement(conn tilegrid.Connectivity) Option {
	return func(o *Options) {
		o.Movement = conn
	}
}

// WithIterationLimit sets the iteration cap.
//
//	n > 0: fail once n iterations complete without resolving
//	n == 0: fail on the first Advance, before any expansion
//	n < 0: invalid option → ErrBadIterationLimit
func WithIterationLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: got %d", ErrBadIterationLimit, n)
			return
		}
		o.IterationLimit = n
	}
}

// WithLogger routes diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnOpen registers a callback run whenever a cell enters the open set.
func WithOnOpen(fn func(p Point, g, h int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnOpen = fn
		}
	}
}

// WithOnClose registers a callback run whenever a cell is expanded.
func WithOnClose(fn func(p Point, g int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnClose = fn
		}
	}
}
