package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type entry struct {
	id string
	d  *Driver
}

// Scheduler advances many independent searches cooperatively: every Tick
// gives each unfinished search exactly one step, in registration order.
// It holds no locks; use it from a single goroutine.
type Scheduler struct {
	opts    Options
	entries []entry
	byID    map[string]struct{}
	onDone  func(id string, s Stepper)
}

// NewScheduler returns an empty Scheduler. onDone, if non-nil, is called
// once for every search that resolves, right before it is dropped.
func NewScheduler(onDone func(id string, s Stepper), opts ...Option) *Scheduler {
	if onDone == nil {
		onDone = func(string, Stepper) {}
	}
	return &Scheduler{
		opts:   buildOptions(opts),
		byID:   make(map[string]struct{}),
		onDone: onDone,
	}
}

// Add registers s under id.
func (sc *Scheduler) Add(id string, s Stepper) error {
	if s == nil {
		return ErrNilSearch
	}
	if _, ok := sc.byID[id]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	d, err := New(s, WithOnPhase(sc.opts.OnPhase), WithMetrics(sc.opts.Metrics), WithLogger(sc.opts.Logger))
	if err != nil {
		return err
	}
	sc.entries = append(sc.entries, entry{id: id, d: d})
	sc.byID[id] = struct{}{}
	sc.opts.Metrics.activeInc()

	return nil
}

// Remove drops id without advancing it further. This is how a search is
// cancelled. Reports whether id was registered.
func (sc *Scheduler) Remove(id string) bool {
	if _, ok := sc.byID[id]; !ok {
		return false
	}
	for i, e := range sc.entries {
		if e.id == id {
			sc.entries = append(sc.entries[:i], sc.entries[i+1:]...)
			break
		}
	}
	delete(sc.byID, id)
	sc.opts.Metrics.activeDec()

	return true
}

// Len returns the number of unfinished searches.
func (sc *Scheduler) Len() int { return len(sc.entries) }

// Tick advances each registered search once, reports and drops the ones
// that resolved, and returns how many remain. onDone runs after the
// bookkeeping, so it may Add new searches.
func (sc *Scheduler) Tick() int {
	var done []entry
	kept := make([]entry, 0, len(sc.entries))
	for _, e := range sc.entries {
		e.d.Tick()
		if e.d.Done() {
			done = append(done, e)
			continue
		}
		kept = append(kept, e)
	}
	sc.entries = kept

	for _, e := range done {
		delete(sc.byID, e.id)
		sc.opts.Metrics.activeDec()
		sc.opts.Logger.LogAttrs(context.Background(), slog.LevelDebug, "driver: search resolved",
			slog.String("id", e.id),
			slog.String("phase", e.d.Phase().String()),
			slog.String("reason", e.d.Search().Reason().String()),
			slog.Int("ticks", e.d.Ticks()),
		)
		sc.onDone(e.id, e.d.Search())
	}

	return len(sc.entries)
}

// Run ticks once per interval until no searches remain or ctx is done.
func (sc *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: got %v", ErrBadInterval, interval)
	}
	ctx, span := sc.opts.Tracer.Start(ctx, "driver.Scheduler.Run")
	defer span.End()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for sc.Len() > 0 {
		select {
		case <-ctx.Done():
			span.RecordError(ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			sc.Tick()
		}
	}
	return nil
}
