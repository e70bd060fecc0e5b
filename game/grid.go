package game

import "math"

// cellKey uniquely identifies a grid cell
type cellKey struct {
	cx, cy int
}

// SpatialGrid is a hash grid over snake head positions, used for AI sensing
// and collision pruning. It is rebuilt wholesale every tick, so there is no
// removal primitive and no stale-reference handling: between Clear calls the
// contents are a fixed pre-tick snapshot of the world.
//
// Food and power-ups are deliberately not indexed — those checks are
// brute-force over the (small) snake population with a bounding-box
// prefilter, so the grid only ever holds O(snakes) entries.
type SpatialGrid struct {
	cells    map[cellKey][]*Snake
	cellSize float64
}

// NewSpatialGrid creates an empty spatial grid
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		cells:    make(map[cellKey][]*Snake),
		cellSize: cellSize,
	}
}

// Clear resets all cells
func (g *SpatialGrid) Clear() {
	g.cells = make(map[cellKey][]*Snake)
}

func (g *SpatialGrid) keyFor(x, y float64) cellKey {
	return cellKey{
		cx: int(math.Floor(x / g.cellSize)),
		cy: int(math.Floor(y / g.cellSize)),
	}
}

// Insert adds a snake to the bucket its head occupies
func (g *SpatialGrid) Insert(s *Snake) {
	k := g.keyFor(s.Pos.X, s.Pos.Y)
	g.cells[k] = append(g.cells[k], s)
}

// Query returns every snake in cells intersecting the axis-aligned rectangle.
// A snake straddling the query edge is still found as long as its head cell
// intersects. Duplicates across cells cannot occur (one head, one cell), but
// callers must still skip themselves and dead entries.
func (g *SpatialGrid) Query(minX, minY, maxX, maxY float64) []*Snake {
	minCX := int(math.Floor(minX / g.cellSize))
	maxCX := int(math.Floor(maxX / g.cellSize))
	minCY := int(math.Floor(minY / g.cellSize))
	maxCY := int(math.Floor(maxY / g.cellSize))

	var results []*Snake
	for cx := minCX; cx <= maxCX; cx++ {
		for cy := minCY; cy <= maxCY; cy++ {
			results = append(results, g.cells[cellKey{cx, cy}]...)
		}
	}
	return results
}

// QueryAround is Query over a square of half-extent radius centered on (x,y)
func (g *SpatialGrid) QueryAround(x, y, radius float64) []*Snake {
	return g.Query(x-radius, y-radius, x+radius, y+radius)
}
