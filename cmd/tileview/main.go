// Command tileview animates a grid search in the terminal, one expansion per frame.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/driver"
	"github.com/katalvlaran/tilepath/internal/scenario"
	"github.com/katalvlaran/tilepath/tilegrid"
)

type viewer struct {
	screen tcell.Screen
	grid   *tilegrid.Grid
	rng    *rand.Rand
	logger *slog.Logger

	diag  bool
	limit int

	search      *astar.Search
	drv         *driver.Driver
	start, goal tilegrid.Point
}

func main() {
	var (
		mapPath = flag.String("map", "", "CSV map file (overrides -width/-height)")
		width   = flag.Int("width", 60, "generated map width")
		height  = flag.Int("height", 20, "generated map height")
		density = flag.Float64("density", 0.25, "generated wall density in [0,1]")
		seed    = flag.Int64("seed", 0, "random seed (0 = time-based)")
		diag    = flag.Bool("diag", true, "allow diagonal moves")
		limit   = flag.Int("limit", astar.DefaultIterationLimit, "iteration limit per search")
		tick    = flag.Duration("tick", 30*time.Millisecond, "delay between expansions")
		logPath = flag.String("log", "", "write debug log to this file")
	)
	flag.Parse()

	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tileview: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	grid, err := scenario.LoadGrid(scenario.Config{
		MapPath: *mapPath, Width: *width, Height: *height, Density: *density, Seed: *seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "tileview: %v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tileview: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "tileview: %v\n", err)
		os.Exit(1)
	}

	v := &viewer{
		screen: screen,
		grid:   grid,
		rng:    rand.New(rand.NewSource(*seed)),
		logger: logger,
		diag:   *diag,
		limit:  *limit,
	}
	err = v.restart()
	if err == nil {
		v.run(*tick)
	}
	screen.Fini()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tileview: %v\n", err)
		os.Exit(1)
	}
}

// restart picks new endpoints and begins a fresh search.
func (v *viewer) restart() error {
	start, goal, err := scenario.PickEndpoints(v.grid, v.rng)
	if err != nil {
		return err
	}
	s, err := astar.New(v.grid, start, goal,
		astar.WithDiagonal(v.diag),
		astar.WithIterationLimit(v.limit),
		astar.WithLogger(v.logger),
	)
	if err != nil {
		return err
	}
	d, err := driver.New(s, driver.WithLogger(v.logger))
	if err != nil {
		return err
	}
	v.search, v.drv, v.start, v.goal = s, d, start, goal
	v.logger.Debug("tileview: new search",
		slog.String("start", start.String()),
		slog.String("goal", goal.String()),
		slog.Bool("diag", v.diag))

	return nil
}

func (v *viewer) run(tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	v.draw()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			if !v.drv.Done() {
				v.drv.Tick()
				v.draw()
			}
		}
	}
}

// handleEvent reacts to input and reports whether the viewer keeps running.
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'd', 'D':
			v.diag = !v.diag
			fallthrough
		case 'r', 'R':
			if err := v.restart(); err != nil {
				v.logger.Error("tileview: restart failed", slog.Any("error", err))
				return false
			}
		}
		v.draw()
	case *tcell.EventResize:
		v.screen.Sync()
		v.draw()
	}
	return true
}

func (v *viewer) draw() {
	v.screen.Clear()
	snap := v.search.Snapshot()
	frame := buildFrame(v.grid, snap, v.start, v.goal)
	for y, row := range frame {
		for x, r := range row {
			style, ok := glyphStyles[r]
			if !ok {
				style = tcell.StyleDefault
			}
			v.screen.SetContent(x, y, r, nil, style)
		}
	}
	for i, r := range statusLine(snap, v.search.Movement()) {
		v.screen.SetContent(i, len(frame), r, nil, tcell.StyleDefault)
	}
	v.screen.Show()
}
