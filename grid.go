package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Returned (possibly wrapped) whenever a coordinate lies outside of the grid.
// Coordinates are never clamped or wrapped around.
var ErrOutOfBounds = errors.New("maze: coordinate out of bounds")

// Returned when something attempts to put back a wall that has already been
// carved away. Walls are only ever removed.
var ErrWallReclosed = errors.New("maze: can't re-close an open wall")

// One of the four sides of a cell.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("Unknown direction: %d", uint8(d))
}

// Returns the direction facing the other way, i.e. the side of the
// neighboring cell that shares a wall with this side.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Returns the change in x and y when stepping one cell in this direction.
// North is towards y = 0.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// A location in the grid, in cell units.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Returns the direction to step from p to reach q, if q is adjacent to p.
func (p Point) directionTo(q Point) (Direction, bool) {
	for d := North; d <= West; d++ {
		dx, dy := d.Delta()
		if (p.X+dx == q.X) && (p.Y+dy == q.Y) {
			return d, true
		}
	}
	return 0, false
}

// A single cell of the grid. Cells are handed out by value, so modifying one
// never changes the grid.
type Cell struct {
	// Indexed by Direction. Each entry is true if the wall is there.
	Walls [4]bool
	// Set once the generator has reached this cell.
	Visited bool
}

// Returns true if the wall on the given side is present. An invalid
// direction is treated as a wall.
func (c Cell) HasWall(d Direction) bool {
	if d > West {
		return true
	}
	return c.Walls[d]
}

// A fixed-size rectangular grid of cells, stored densely in row-major order.
// Create using NewGrid.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// Allocates a grid with every wall present and no cell visited.
func NewGrid(width, height int) (*Grid, error) {
	if (width < 1) || (height < 1) {
		return nil, fmt.Errorf("width and height must be at least 1")
	}
	cellCount := width * height
	// Check for overflow.
	if (cellCount <= 0) || (cellCount/width != height) {
		return nil, fmt.Errorf("The grid's size was too big")
	}
	toReturn := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, cellCount),
	}
	for i := range toReturn.cells {
		toReturn.cells[i].Walls = [4]bool{true, true, true, true}
	}
	return toReturn, nil
}

func (g *Grid) Width() int {
	return g.width
}

func (g *Grid) Height() int {
	return g.height
}

func (g *Grid) CellCount() int {
	return len(g.cells)
}

// Returns true if (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return (x >= 0) && (x < g.width) && (y >= 0) && (y < g.height)
}

// Maps (x, y) to the index of the cell in row-major order. Doesn't check
// bounds; use InBounds first.
func (g *Grid) Index(x, y int) int {
	return x + y*g.width
}

// The inverse of Index.
func (g *Grid) Coordinate(index int) Point {
	return Point{
		X: index % g.width,
		Y: index / g.width,
	}
}

func (g *Grid) checkBounds(x, y int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d, %d) in a %dx%d grid", ErrOutOfBounds, x, y,
			g.width, g.height)
	}
	return nil
}

// Returns a copy of the cell at (x, y).
func (g *Grid) Cell(x, y int) (Cell, error) {
	e := g.checkBounds(x, y)
	if e != nil {
		return Cell{}, e
	}
	return g.cells[g.Index(x, y)], nil
}

// Opens or closes the wall on side d of the cell at (x, y). The wall is
// shared with the neighboring cell, so both sides are always updated
// together. Returns ErrOutOfBounds if either cell is outside the grid (which
// includes every wall along the grid's edge). Closing an already-closed wall
// is a no-op, but closing an open one returns ErrWallReclosed.
func (g *Grid) SetWall(x, y int, d Direction, open bool) error {
	e := g.checkBounds(x, y)
	if e != nil {
		return e
	}
	if d > West {
		return fmt.Errorf("Invalid wall direction: %s", d)
	}
	dx, dy := d.Delta()
	e = g.checkBounds(x+dx, y+dy)
	if e != nil {
		return fmt.Errorf("No cell beyond the %s wall: %w", d, e)
	}
	a := g.Index(x, y)
	b := g.Index(x+dx, y+dy)
	if !open {
		if !g.cells[a].Walls[d] {
			return fmt.Errorf("%w: %s side of (%d, %d)", ErrWallReclosed, d,
				x, y)
		}
		return nil
	}
	g.cells[a].Walls[d] = false
	g.cells[b].Walls[d.Opposite()] = false
	return nil
}

// Sets the visited flag of the cell at (x, y).
func (g *Grid) MarkVisited(x, y int) error {
	e := g.checkBounds(x, y)
	if e != nil {
		return e
	}
	g.cells[g.Index(x, y)].Visited = true
	return nil
}

// Returns every in-bounds cell adjacent to (x, y), in ascending row-major
// order: north, west, east, south. Corners have 2 neighbors, other edge cells
// have 3, and interior cells have 4.
func (g *Grid) Neighbors(x, y int) ([]Point, error) {
	e := g.checkBounds(x, y)
	if e != nil {
		return nil, e
	}
	return g.appendNeighbors(make([]Point, 0, 4), x, y), nil
}

// The same as Neighbors, but appends to dst and assumes (x, y) is in bounds.
func (g *Grid) appendNeighbors(dst []Point, x, y int) []Point {
	if y > 0 {
		dst = append(dst, Point{x, y - 1})
	}
	if x > 0 {
		dst = append(dst, Point{x - 1, y})
	}
	if x < (g.width - 1) {
		dst = append(dst, Point{x + 1, y})
	}
	if y < (g.height - 1) {
		dst = append(dst, Point{x, y + 1})
	}
	return dst
}

// Returns the number of adjacent cell pairs with no wall between them. Only
// the east and south walls are checked, so each pair is counted once.
func (g *Grid) OpenWallCount() int {
	count := 0
	for y := 0; y < g.height; y++ {
		rowStart := y * g.width
		for x := 0; x < g.width; x++ {
			c := &(g.cells[rowStart+x])
			if (x < (g.width - 1)) && !c.Walls[East] {
				count++
			}
			if (y < (g.height - 1)) && !c.Walls[South] {
				count++
			}
		}
	}
	return count
}

// Draws the grid using ASCII characters, one line per row of walls and one
// per row of cells.
func (g *Grid) String() string {
	var b strings.Builder
	b.WriteString("+" + strings.Repeat("---+", g.width) + "\n")
	for y := 0; y < g.height; y++ {
		rowStart := y * g.width
		b.WriteString("|")
		for x := 0; x < g.width; x++ {
			if g.cells[rowStart+x].Walls[East] {
				b.WriteString("   |")
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n+")
		for x := 0; x < g.width; x++ {
			if g.cells[rowStart+x].Walls[South] {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
