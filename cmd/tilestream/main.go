// Command tilestream serves grid searches over websocket, one tick of
// events per message, plus the map and Prometheus metrics.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/internal/scenario"
)

func main() {
	var (
		addr    = flag.String("addr", ":8080", "listen address")
		mapPath = flag.String("map", "", "CSV map file (overrides -width/-height)")
		width   = flag.Int("width", 64, "generated map width")
		height  = flag.Int("height", 48, "generated map height")
		density = flag.Float64("density", 0.25, "generated wall density in [0,1]")
		seed    = flag.Int64("seed", 0, "map seed (0 = time-based)")
		limit   = flag.Int("limit", astar.DefaultIterationLimit, "default iteration limit per search")
		tick    = flag.Duration("tick", 50*time.Millisecond, "delay between ticks")
		debug   = flag.Bool("debug", false, "log search outcomes at debug level")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *tick <= 0 {
		logger.Error("tilestream: -tick must be positive", slog.Duration("tick", *tick))
		os.Exit(1)
	}

	grid, err := scenario.LoadGrid(scenario.Config{
		MapPath: *mapPath, Width: *width, Height: *height, Density: *density, Seed: *seed,
	})
	if err != nil {
		logger.Error("tilestream: load map", slog.Any("error", err))
		os.Exit(1)
	}

	srv := newServer(grid, *tick, *limit, prometheus.DefaultRegisterer, prometheus.DefaultGatherer, logger)

	logger.Info("tilestream: listening",
		slog.String("addr", *addr),
		slog.Int("width", grid.Width()),
		slog.Int("height", grid.Height()))
	if err := http.ListenAndServe(*addr, srv.routes()); err != nil {
		logger.Error("tilestream: server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
