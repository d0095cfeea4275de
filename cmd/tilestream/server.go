package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tilepath/driver"
	"github.com/katalvlaran/tilepath/tilegrid"
)

const writeWait = 10 * time.Second

type server struct {
	grid     *tilegrid.Grid
	tick     time.Duration
	limit    int
	metrics  *driver.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	tracer   trace.Tracer
	upgrader websocket.Upgrader
}

// newServer wires the metrics into reg and serves them from gatherer.
func newServer(grid *tilegrid.Grid, tick time.Duration, limit int, reg prometheus.Registerer, gatherer prometheus.Gatherer, logger *slog.Logger) *server {
	return &server{
		grid:     grid,
		tick:     tick,
		limit:    limit,
		metrics:  driver.NewMetrics(reg),
		gatherer: gatherer,
		logger:   logger,
		tracer:   otel.Tracer("github.com/katalvlaran/tilepath/cmd/tilestream"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/map", s.handleMap)
	mux.HandleFunc("/ws", s.handleWS)
	mux.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return mux
}

type mapMessage struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Values []int `json:"values"`
}

func (s *server) handleMap(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, err := json.Marshal(mapMessage{Width: s.grid.Width(), Height: s.grid.Height(), Values: s.grid.Values()})
	if err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	p, err := parseParams(r.URL.Query(), s.limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sess, err := newSession(s.grid, p, s.metrics, s.logger)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("tilestream: upgrade failed", slog.String("session", sess.id), slog.Any("error", err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	// The client only ever closes; a read error ends the session.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx, span := s.tracer.Start(ctx, "tilestream.session",
		trace.WithAttributes(
			attribute.String("session", sess.id),
			attribute.Bool("diag", p.diag),
			attribute.Int("limit", p.limit),
		))
	defer span.End()

	s.logger.Info("tilestream: session started",
		slog.String("session", sess.id),
		slog.String("start", sess.search.Start().String()),
		slog.String("goal", sess.search.Goal().String()))

	if err := s.stream(ctx, conn, sess); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "stream aborted")
		s.logger.Info("tilestream: session aborted", slog.String("session", sess.id), slog.Any("error", err))
		return
	}
	span.SetAttributes(
		attribute.String("phase", sess.search.Phase().String()),
		attribute.String("reason", sess.search.Reason().String()),
		attribute.Int("iterations", sess.search.Iterations()),
	)
	span.SetStatus(codes.Ok, "resolved")

	message := websocket.FormatCloseMessage(websocket.CloseNormalClosure, sess.search.Phase().String())
	conn.WriteControl(websocket.CloseMessage, message, time.Now().Add(writeWait))
}

// stream writes the header, then one frame per tick until the search resolves.
func (s *server) stream(ctx context.Context, conn *websocket.Conn, sess *session) error {
	if err := writeFrame(conn, sess.header()); err != nil {
		return err
	}

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for !sess.done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := writeFrame(conn, sess.step()); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeFrame(conn *websocket.Conn, f frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
