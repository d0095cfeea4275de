// Package scenario builds the map and endpoints shared by the tilepath commands.
package scenario

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/tilepath/tilegrid"
)

// ErrNoMap indicates neither a map file nor generated dimensions were given.
var ErrNoMap = errors.New("scenario: need a map file or positive width and height")

// goalAttempts bounds the redraws that keep the goal apart from the start.
const goalAttempts = 16

// Config selects a map source. MapPath wins over generation.
type Config struct {
	MapPath       string
	Width, Height int
	Density       float64
	Seed          int64 // 0 = time-based
}

// LoadGrid reads cfg.MapPath as CSV, or generates a bordered random map.
func LoadGrid(cfg Config) (*tilegrid.Grid, error) {
	if cfg.MapPath != "" {
		return tilegrid.LoadCSV(cfg.MapPath, tilegrid.DefaultOptions())
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrNoMap, cfg.Width, cfg.Height)
	}
	return tilegrid.Generate(tilegrid.GenerateConfig{
		Width:       cfg.Width,
		Height:      cfg.Height,
		WallDensity: cfg.Density,
		Border:      true,
		Seed:        cfg.Seed,
	})
}

// PickEndpoints samples a start and a goal floor cell. The goal is redrawn a
// few times to differ from the start; a map with a single floor cell yields
// start == goal.
func PickEndpoints(g *tilegrid.Grid, rng *rand.Rand) (start, goal tilegrid.Point, err error) {
	start, err = g.RandomFloorCell(rng, 0)
	if err != nil {
		return start, goal, err
	}
	for i := 0; i < goalAttempts; i++ {
		goal, err = g.RandomFloorCell(rng, 0)
		if err != nil {
			return start, goal, err
		}
		if goal != start {
			break
		}
	}
	return start, goal, nil
}
