package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/katalvlaran/tilepath/astar"
)

// Driver advances one search by exactly one step per Tick.
type Driver struct {
	s     Stepper
	opts  Options
	ticks int
}

// New wraps s. Returns ErrNilSearch if s is nil.
func New(s Stepper, opts ...Option) (*Driver, error) {
	if s == nil {
		return nil, ErrNilSearch
	}
	return &Driver{s: s, opts: buildOptions(opts)}, nil
}

// Tick advances the search once and reports the result. After the search
// resolves, Tick returns the terminal step without advancing.
func (d *Driver) Tick() astar.Step {
	switch d.s.Phase() {
	case astar.PhaseSucceeded:
		return astar.StepSucceeded
	case astar.PhaseFailed:
		return astar.StepFailed
	}
	before := d.s.Phase()
	step := d.s.Advance()
	d.ticks++
	if after := d.s.Phase(); after != before {
		d.opts.OnPhase(before, after)
	}
	if step != astar.StepContinue {
		d.opts.Metrics.Observe(d.s)
	}
	return step
}

// Phase returns the search phase.
func (d *Driver) Phase() astar.Phase { return d.s.Phase() }

// Ticks returns the number of ticks that advanced the search.
func (d *Driver) Ticks() int { return d.ticks }

// Done reports whether the search has resolved.
func (d *Driver) Done() bool { return d.s.Phase().Terminal() }

// Search returns the wrapped search.
func (d *Driver) Search() Stepper { return d.s }

// Run ticks once per interval until the search resolves or ctx is done.
// A failed search is not an error here; inspect the Stepper. Cancellation
// returns ctx.Err() and leaves the search resumable.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: got %v", ErrBadInterval, interval)
	}
	ctx, span := d.opts.Tracer.Start(ctx, "driver.Run")
	defer span.End()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !d.Done() {
		select {
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			span.SetStatus(codes.Error, "cancelled")
			d.opts.Logger.LogAttrs(ctx, slog.LevelDebug, "driver: run cancelled",
				slog.Int("ticks", d.ticks), slog.String("phase", d.s.Phase().String()))
			return ctx.Err()
		case <-ticker.C:
			d.Tick()
		}
	}

	span.SetAttributes(
		attribute.String("phase", d.s.Phase().String()),
		attribute.String("reason", d.s.Reason().String()),
		attribute.Int("ticks", d.ticks),
		attribute.Int("iterations", d.s.Iterations()),
	)
	span.SetStatus(codes.Ok, "resolved")
	return nil
}
