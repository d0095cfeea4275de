package astar

import "context"

// Run advances s until it resolves or ctx is done, checking ctx once per
// step. On success it returns the path; on failure the Reason's sentinel
// error; on cancellation ctx.Err() and s is left resumable.
func Run(ctx context.Context, s *Search) (Path, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		switch s.Advance() {
		case StepSucceeded:
			return s.Path(), nil
		case StepFailed:
			return nil, s.Err()
		}
	}
}

// FindPath builds a Search and runs it to completion.
func FindPath(ctx context.Context, grid Grid, start, goal Point, opts ...Option) (Path, error) {
	s, err := New(grid, start, goal, opts...)
	if err != nil {
		return nil, err
	}
	return Run(ctx, s)
}
