package tilegrid

// Regions finds all contiguous regions of passable cells according to conn.
// Returns a slice of regions; each region is a slice of cell indices
// (row-major) in breadth-first discovery order. Regions are ordered by
// their first cell in row-major order.
//
// To convert an index back to (x,y), use Coordinate(idx).
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (g *Grid) Regions(conn Connectivity) [][]int {
	seen := make([]bool, len(g.values))
	var regions [][]int
	offsets := NeighborOffsets(conn)

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if !g.IsPassable(x, y) {
				continue
			}
			i0 := g.Index(x, y)
			if seen[i0] {
				continue
			}
			queue := []int{i0}
			seen[i0] = true

			for qi := 0; qi < len(queue); qi++ {
				ux, uy := g.Coordinate(queue[qi])
				for _, d := range offsets {
					vx, vy := ux+d[0], uy+d[1]
					if !g.IsPassable(vx, vy) {
						continue
					}
					vi := g.Index(vx, vy)
					if !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			regions = append(regions, queue)
		}
	}
	return regions
}

// SameRegion reports whether a and b are both passable and connected under conn.
func (g *Grid) SameRegion(a, b Point, conn Connectivity) bool {
	return g.StepDistance(a, b, conn) >= 0
}

// StepDistance returns the minimum number of moves from a to b over passable
// cells under conn, counting every move as 1, or -1 if b is unreachable or
// either endpoint is impassable.
//
// Time:   O(W·H·d).
// Memory: O(W·H).
func (g *Grid) StepDistance(a, b Point, conn Connectivity) int {
	if !g.IsPassable(a.X, a.Y) || !g.IsPassable(b.X, b.Y) {
		return -1
	}
	if a == b {
		return 0
	}
	dist := make([]int, len(g.values))
	for i := range dist {
		dist[i] = -1
	}
	src, dst := g.Index(a.X, a.Y), g.Index(b.X, b.Y)
	dist[src] = 0
	queue := []int{src}
	offsets := NeighborOffsets(conn)

	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		ux, uy := g.Coordinate(u)
		for _, d := range offsets {
			vx, vy := ux+d[0], uy+d[1]
			if !g.IsPassable(vx, vy) {
				continue
			}
			v := g.Index(vx, vy)
			if dist[v] >= 0 {
				continue
			}
			dist[v] = dist[u] + 1
			if v == dst {
				return dist[v]
			}
			queue = append(queue, v)
		}
	}
	return -1
}
