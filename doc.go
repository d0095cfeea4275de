// Package tilepath is a resumable grid pathfinding engine for tile maps:
// A* over a 2-D array of cell values, advanced one bounded step at a time
// so that a game loop, a terminal viewer or a network stream can drive it.
//
// Under the hood, everything is organized under three packages:
//
//	tilegrid/  Grid of integer cells, passability, neighbor offsets, regions,
//	           BFS step distances, random floor cells, CSV maps, map generation
//	astar/     NodeStore arena and the resumable Search state machine
//	driver/    one tick per step for one search (Driver) or many (Scheduler),
//	           Prometheus metrics and OpenTelemetry spans
//
// And two commands:
//
//	cmd/tileview    animates a search in the terminal
//	cmd/tilestream  streams per-tick search events over websocket
//
// Quick ASCII example (S start, G goal, # wall, * path):
//
//	S * * .
//	# # # *
//	G * * .
//
// A search is created once and advanced until it resolves:
//
//	s, _ := astar.New(grid, start, goal, astar.WithDiagonal(true))
//	for s.Advance() == astar.StepContinue {
//	}
//	path := s.Path()
package tilepath
