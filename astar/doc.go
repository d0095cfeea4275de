// Package astar finds a route between two cells of a tile grid and returns
// it as an ordered list of cells.
//
// What:
//
//   - Search is a resumable state machine: Initialized → Expanding → {Succeeded | Failed}.
//   - Advance does one node expansion plus one linear scan of the open set, then returns
//     StepContinue, StepSucceeded or StepFailed.
//   - NodeStore owns every node of one search in an arena; parents are NodeIDs, not pointers.
//   - Every move costs 1, diagonal or not. The heuristic is Chebyshev distance with
//     diagonal movement and Manhattan distance without, fixed when a node is created.
//   - Ties on f are broken by lower g, then by earliest insertion, so output is reproducible.
//   - A node is opened at most once: neither Closed nor Open nodes are ever re-costed.
//
// Why:
//
//   - Frame loops: one step per tick keeps a large search from stalling rendering.
//   - Many searches: each Search owns its state; a Grid can be shared read-only.
//
// Complexity:
//
//   - Advance: O(|open|) for the best-node scan, O(1) amortized per neighbor.
//   - Memory:  O(nodes touched).
//
// Options:
//
//   - WithDiagonal / WithMovement: 8- or 4-neighborhood (default 8).
//   - WithIterationLimit: cap on non-terminal iterations (default 1000).
//   - WithLogger: slog logger for terminal transitions.
//   - WithOnOpen, WithOnClose: observation hooks.
//
// Errors:
//
//   - Construction: ErrNilGrid, ErrStartOutOfRange, ErrGoalOutOfRange, ErrBadIterationLimit.
//   - Outcome:      ErrStartBlocked, ErrNoPath, ErrIterationLimit (see Reason).
//
// Example usage:
//
//	s, err := astar.New(grid, start, goal, astar.WithDiagonal(false))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for s.Advance() == astar.StepContinue {
//	    // render, handle input, ...
//	}
//	if err := s.Err(); err != nil {
//	    log.Println("no route:", err)
//	}
//	walk(s.Path())
package astar
