package tilegrid

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultSampleAttempts bounds RandomFloorCell when maxAttempts <= 0.
const DefaultSampleAttempts = 10000

// RandomFloorCell samples cells uniformly until it hits one whose value is
// exactly FloorValue. It gives up after maxAttempts draws with ErrNoFloorCell;
// maxAttempts <= 0 means DefaultSampleAttempts.
func (g *Grid) RandomFloorCell(rng *rand.Rand, maxAttempts int) (Point, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSampleAttempts
	}
	for i := 0; i < maxAttempts; i++ {
		x, y := rng.Intn(g.width), rng.Intn(g.height)
		if g.values[g.Index(x, y)] == FloorValue {
			return Point{X: x, Y: y}, nil
		}
	}
	return Point{}, fmt.Errorf("%w after %d attempts", ErrNoFloorCell, maxAttempts)
}

// GenerateConfig drives Generate.
type GenerateConfig struct {
	Width, Height int

	// WallDensity is the probability in [0,1] that an interior cell becomes a wall.
	WallDensity float64

	// Border surrounds the map with a one-cell wall ring.
	Border bool

	Seed int64 // Optional (0 = Random)
}

// Generate builds a random map of FloorValue and WallValue cells.
// The same non-zero seed always yields the same map.
func Generate(cfg GenerateConfig) (*Grid, error) {
	if cfg.WallDensity < 0 || cfg.WallDensity > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrBadDensity, cfg.WallDensity)
	}
	g, err := New(cfg.Width, cfg.Height, FloorValue, DefaultOptions())
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			edge := x == 0 || y == 0 || x == g.width-1 || y == g.height-1
			if (cfg.Border && edge) || rng.Float64() < cfg.WallDensity {
				g.values[g.Index(x, y)] = WallValue
			}
		}
	}
	return g, nil
}
