// Package driver defines the types, options and sentinel errors used to
// advance searches one step per scheduling tick.
package driver

import (
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tilepath/astar"
)

// Sentinel errors for driver operations.
var (
	// ErrNilSearch indicates a nil Stepper.
	ErrNilSearch = errors.New("driver: search is nil")

	// ErrBadInterval indicates a non-positive tick interval.
	ErrBadInterval = errors.New("driver: tick interval must be positive")

	// ErrDuplicateID indicates a Scheduler ID that is already registered.
	ErrDuplicateID = errors.New("driver: search id already registered")
)

// Stepper is a resumable search. *astar.Search satisfies it.
type Stepper interface {
	Advance() astar.Step
	Phase() astar.Phase
	Reason() astar.Reason
	Iterations() int
}

// Options configures a Driver or Scheduler.
type Options struct {
	// Logger receives scheduling events.
	Logger *slog.Logger
	// Metrics, if non-nil, records outcomes.
	Metrics *Metrics
	// Tracer starts one span per Run.
	Tracer trace.Tracer
	// OnPhase is called whenever a tick changes the search phase.
	OnPhase func(from, to astar.Phase)
}

// Option is a functional option for New and NewScheduler.
type Option func(*Options)

// DefaultOptions returns Options with a discarding logger, no metrics,
// the global OpenTelemetry tracer and a no-op OnPhase.
func DefaultOptions() Options {
	return Options{
		Logger:  slog.New(slog.DiscardHandler),
		Tracer:  otel.Tracer("github.com/katalvlaran/tilepath/driver"),
		OnPhase: func(astar.Phase, astar.Phase) {},
	}
}

// WithLogger routes scheduling events to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics records outcomes into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(o *Options) {
		if t != nil {
			o.Tracer = t
		}
	}
}

// WithOnPhase registers a phase-change callback.
func WithOnPhase(fn func(from, to astar.Phase)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPhase = fn
		}
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
