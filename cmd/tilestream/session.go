package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/driver"
	"github.com/katalvlaran/tilepath/internal/scenario"
	"github.com/katalvlaran/tilepath/tilegrid"
)

// cell is a coordinate on the wire: [x, y].
type cell [2]int

func cellOf(p tilegrid.Point) cell { return cell{p.X, p.Y} }

// event is one state change inside a tick.
type event struct {
	Type   string `json:"type"` // opened, closed, frontier, phase, result
	Cell   *cell  `json:"cell,omitempty"`
	G      int    `json:"g,omitempty"`
	H      int    `json:"h,omitempty"`
	Phase  string `json:"phase,omitempty"`
	Reason string `json:"reason,omitempty"`
	Path   []cell `json:"path,omitempty"`
}

// frame is one websocket message: the events of a single tick.
// The first frame of a session has Tick 0 and carries the endpoints.
type frame struct {
	Session string  `json:"session"`
	Tick    int     `json:"tick"`
	Start   *cell   `json:"start,omitempty"`
	Goal    *cell   `json:"goal,omitempty"`
	Diag    bool    `json:"diag"`
	Limit   int     `json:"limit"`
	Events  []event `json:"events"`
}

type params struct {
	diag  bool
	limit int
	seed  int64
}

// parseParams reads diag, limit and seed from a /ws query.
// Missing values fall back to defaults; seed 0 means time-based.
func parseParams(q url.Values, defaultLimit int) (params, error) {
	p := params{diag: true, limit: defaultLimit}
	if v := q.Get("diag"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("diag: %w", err)
		}
		p.diag = b
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("limit: %w", err)
		}
		p.limit = n
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return p, fmt.Errorf("seed: %w", err)
		}
		p.seed = n
	}
	if p.seed == 0 {
		p.seed = time.Now().UnixNano()
	}
	return p, nil
}

// session is one search streamed to one client.
type session struct {
	id     string
	params params
	search *astar.Search
	drv    *driver.Driver
	events []event
}

func newSession(grid *tilegrid.Grid, p params, m *driver.Metrics, logger *slog.Logger) (*session, error) {
	sess := &session{id: uuid.NewString(), params: p}
	start, goal, err := scenario.PickEndpoints(grid, rand.New(rand.NewSource(p.seed)))
	if err != nil {
		return nil, err
	}
	logger = logger.With(slog.String("session", sess.id))

	s, err := astar.New(grid, start, goal,
		astar.WithDiagonal(p.diag),
		astar.WithIterationLimit(p.limit),
		astar.WithLogger(logger),
		astar.WithOnOpen(func(pt tilegrid.Point, g, h int) {
			c := cellOf(pt)
			sess.emit(event{Type: "opened", Cell: &c, G: g, H: h})
		}),
		astar.WithOnClose(func(pt tilegrid.Point, g int) {
			c := cellOf(pt)
			sess.emit(event{Type: "closed", Cell: &c, G: g})
		}),
	)
	if err != nil {
		return nil, err
	}
	d, err := driver.New(s,
		driver.WithMetrics(m),
		driver.WithLogger(logger),
		driver.WithOnPhase(func(_, to astar.Phase) {
			sess.emit(event{Type: "phase", Phase: to.String()})
		}),
	)
	if err != nil {
		return nil, err
	}
	sess.search, sess.drv = s, d

	return sess, nil
}

func (s *session) emit(e event) { s.events = append(s.events, e) }

// header describes the session before any tick.
func (s *session) header() frame {
	start, goal := cellOf(s.search.Start()), cellOf(s.search.Goal())
	return frame{
		Session: s.id,
		Start:   &start,
		Goal:    &goal,
		Diag:    s.params.diag,
		Limit:   s.params.limit,
		Events:  []event{{Type: "phase", Phase: s.search.Phase().String()}},
	}
}

// step advances the search by one tick and returns what happened.
func (s *session) step() frame {
	s.events = nil
	s.drv.Tick()

	if s.drv.Done() {
		res := event{Type: "result", Phase: s.search.Phase().String()}
		if s.search.Phase() == astar.PhaseFailed {
			res.Reason = s.search.Reason().String()
		}
		for _, p := range s.search.Path() {
			res.Path = append(res.Path, cellOf(p))
		}
		s.emit(res)
	} else if p, ok := s.search.Frontier(); ok {
		c := cellOf(p)
		s.emit(event{Type: "frontier", Cell: &c})
	}

	return frame{
		Session: s.id,
		Tick:    s.drv.Ticks(),
		Diag:    s.params.diag,
		Limit:   s.params.limit,
		Events:  s.events,
	}
}

func (s *session) done() bool { return s.drv.Done() }
