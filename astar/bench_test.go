package astar_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/tilepath/astar"
	"github.com/katalvlaran/tilepath/tilegrid"
)

// BenchmarkFindPath_Open measures a corner-to-corner search on an open 64×64 map.
// The linear open-set scan makes each step O(|open|).
func BenchmarkFindPath_Open(b *testing.B) {
	g, err := tilegrid.New(64, 64, tilegrid.FloorValue, tilegrid.DefaultOptions())
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}
	start, goal := tilegrid.Pt(0, 0), tilegrid.Pt(63, 63)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := astar.FindPath(context.Background(), g, start, goal); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFindPath_Random measures searches on a seeded 25% wall map.
func BenchmarkFindPath_Random(b *testing.B) {
	g, err := tilegrid.Generate(tilegrid.GenerateConfig{Width: 64, Height: 64, WallDensity: 0.25, Seed: 42})
	if err != nil {
		b.Fatalf("setup Generate failed: %v", err)
	}
	rng := rand.New(rand.NewSource(42))
	start, _ := g.RandomFloorCell(rng, 0)
	goal, _ := g.RandomFloorCell(rng, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = astar.FindPath(context.Background(), g, start, goal, astar.WithIterationLimit(g.Len()))
	}
}
