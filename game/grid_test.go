package game

import "testing"

func gridSnake(x, y float64) *Snake {
	return &Snake{Pos: Vec2{x, y}, Alive: true}
}

func TestGridQueryFindsContainedSnake(t *testing.T) {
	g := NewSpatialGrid(100)
	s := gridSnake(250, 250)
	g.Insert(s)

	found := g.Query(200, 200, 300, 300)
	if len(found) != 1 || found[0] != s {
		t.Fatalf("expected containing query to return the snake, got %d results", len(found))
	}
}

func TestGridQueryDisjointIsEmpty(t *testing.T) {
	g := NewSpatialGrid(100)
	g.Insert(gridSnake(250, 250))

	if found := g.Query(1000, 1000, 1100, 1100); len(found) != 0 {
		t.Fatalf("disjoint query returned %d snakes, want 0", len(found))
	}
}

func TestGridQueryNegativeCoordinates(t *testing.T) {
	g := NewSpatialGrid(100)
	s := gridSnake(-250, -250)
	g.Insert(s)

	found := g.Query(-300, -300, -200, -200)
	if len(found) != 1 || found[0] != s {
		t.Fatalf("expected snake at negative coords to be found")
	}
}

func TestGridQueryEdgeRectangleStillFindsCell(t *testing.T) {
	// A rectangle that only clips the snake's cell must still return it;
	// callers filter by exact distance afterward.
	g := NewSpatialGrid(100)
	s := gridSnake(50, 50)
	g.Insert(s)

	found := g.Query(90, 90, 120, 120)
	if len(found) != 1 {
		t.Fatalf("cell-clipping query returned %d snakes, want 1", len(found))
	}
}

func TestGridClear(t *testing.T) {
	g := NewSpatialGrid(100)
	g.Insert(gridSnake(10, 10))
	g.Clear()

	if found := g.QueryAround(10, 10, 50); len(found) != 0 {
		t.Fatalf("grid not empty after Clear: %d entries", len(found))
	}
}

func TestGridQueryAroundSpansCells(t *testing.T) {
	g := NewSpatialGrid(100)
	a := gridSnake(10, 10)
	b := gridSnake(190, 10)
	g.Insert(a)
	g.Insert(b)

	found := g.QueryAround(100, 10, 100)
	if len(found) != 2 {
		t.Fatalf("expected both snakes across cells, got %d", len(found))
	}
}
