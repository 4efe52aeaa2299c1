package maze

import (
	"errors"
	"fmt"
)

// Returned (possibly wrapped) when the random choice of the next cell can't
// produce a candidate, either because the candidate list was empty or because
// the Chooser returned an index outside of it. This always indicates a bug,
// and generation stops rather than leaving a disconnected maze.
var ErrEmptySelection = errors.New("maze: random selection had no candidate")

// The source of randomness used by a Generator. Intn must return a value in
// [0, n). A *rand.Rand from math/rand satisfies this interface.
type Chooser interface {
	Intn(n int) int
}

// Carves a perfect maze into a Grid using a randomized depth-first traversal
// with an explicit stack. Create using NewGenerator, then call Step until it
// reports completion, or call Run.
type Generator struct {
	grid    *Grid
	chooser Chooser
	// The path from the root to the active cell, as cell indices.
	stack []int
	// Indexed the same way as the grid's cells. This is the authoritative
	// traversal state; the cells' Visited flags are kept in sync with it.
	// Excluded cells are marked here too, so they're never carved into, but
	// their Visited flags stay false.
	visited []bool
	// Reused between steps to avoid reallocating.
	candidates []Point
	steps      int
	backtracks int
	// Set by the first failed Step. Every later Step returns it.
	err error
}

// Prepares to generate a maze in g, starting at root. The root is pushed and
// marked visited immediately. The grid should be freshly allocated, with all
// walls present. The generator isn't Done until Step has run at least once,
// even for a 1x1 grid, where the first Step pops the root and finishes.
func NewGenerator(g *Grid, root Point, chooser Chooser) (*Generator,
	error) {
	if g == nil {
		return nil, fmt.Errorf("A grid is required")
	}
	if chooser == nil {
		return nil, fmt.Errorf("A random source is required")
	}
	e := g.checkBounds(root.X, root.Y)
	if e != nil {
		return nil, fmt.Errorf("Invalid root cell: %w", e)
	}
	// The worst-case stack holds every cell, but that's rare; start with
	// something smaller.
	toReturn := &Generator{
		grid:       g,
		chooser:    chooser,
		stack:      make([]int, 0, 64),
		visited:    make([]bool, g.CellCount()),
		candidates: make([]Point, 0, 4),
	}
	rootIndex := g.Index(root.X, root.Y)
	toReturn.stack = append(toReturn.stack, rootIndex)
	toReturn.visited[rootIndex] = true
	e = g.MarkVisited(root.X, root.Y)
	if e != nil {
		return nil, e
	}
	return toReturn, nil
}

// Marks the cell at (x, y) as an obstacle that the maze must not enter. Must
// be called before the first Step, and never on the root.
func (m *Generator) Exclude(x, y int) error {
	e := m.grid.checkBounds(x, y)
	if e != nil {
		return e
	}
	if m.steps != 0 {
		return fmt.Errorf("Can't exclude cells once generation has started")
	}
	index := m.grid.Index(x, y)
	if index == m.stack[0] {
		return fmt.Errorf("Can't exclude the root cell %s", Point{x, y})
	}
	m.visited[index] = true
	return nil
}

// Returns true once the stack is empty, i.e. every cell reachable from the
// root has been visited. Never true after a failed Step.
func (m *Generator) Done() bool {
	return (m.err == nil) && (len(m.stack) == 0)
}

// Returns the error from the failed Step, if any.
func (m *Generator) Err() error {
	return m.err
}

// The number of calls to Step that did any work.
func (m *Generator) Steps() int {
	return m.steps
}

// The number of cells popped off the stack because they had no remaining
// unvisited neighbors.
func (m *Generator) Backtracks() int {
	return m.backtracks
}

// The length of the path from the root to the active cell, including both.
func (m *Generator) StackDepth() int {
	return len(m.stack)
}

// Returns the active cell (the top of the stack). Returns false if the
// generator is done.
func (m *Generator) Current() (Point, bool) {
	if len(m.stack) == 0 {
		return Point{}, false
	}
	return m.grid.Coordinate(m.stack[len(m.stack)-1]), true
}

// Returns a copy of the stack: the path from the root to the active cell.
// Intended for visualizations.
func (m *Generator) Path() []Point {
	toReturn := make([]Point, len(m.stack))
	for i, index := range m.stack {
		toReturn[i] = m.grid.Coordinate(index)
	}
	return toReturn
}

// Fills m.candidates with the unvisited neighbors of the given cell.
func (m *Generator) unvisitedNeighbors(index int) []Point {
	p := m.grid.Coordinate(index)
	m.candidates = m.grid.appendNeighbors(m.candidates[:0], p.X, p.Y)
	i := 0
	for _, n := range m.candidates {
		if !m.visited[m.grid.Index(n.X, n.Y)] {
			m.candidates[i] = n
			i++
		}
	}
	m.candidates = m.candidates[:i]
	return m.candidates
}

// Picks a random entry from the candidates list.
func (m *Generator) choose(candidates []Point) (Point, error) {
	if len(candidates) == 0 {
		return Point{}, ErrEmptySelection
	}
	i := m.chooser.Intn(len(candidates))
	if (i < 0) || (i >= len(candidates)) {
		return Point{}, fmt.Errorf("%w: got index %d of %d", ErrEmptySelection,
			i, len(candidates))
	}
	return candidates[i], nil
}

// Advances the traversal. Cells at the top of the stack that have no
// unvisited neighbors are popped (backtracking) until one is found that does;
// then the wall to one of its unvisited neighbors, chosen at random, is
// opened and that neighbor becomes the active cell. If the stack runs out
// instead, the maze is complete. Each call therefore either visits exactly
// one new cell or finishes, so a W x H grid takes at most W*H calls. Returns
// true when the generator is done. A failure is permanent: the grid is left
// partially carved, and every later call returns the same error.
func (m *Generator) Step() (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if len(m.stack) == 0 {
		return true, nil
	}
	m.steps++
	for len(m.stack) != 0 {
		top := len(m.stack) - 1
		current := m.stack[top]
		m.stack = m.stack[:top]
		candidates := m.unvisitedNeighbors(current)
		if len(candidates) == 0 {
			m.backtracks++
			continue
		}
		next, e := m.choose(candidates)
		if e == nil {
			e = m.carve(current, next)
		}
		if e != nil {
			m.stack = append(m.stack, current)
			m.err = e
			return false, e
		}
		// Keep current on the stack so we can come back to it.
		m.stack = append(m.stack, current, m.grid.Index(next.X, next.Y))
		return false, nil
	}
	return true, nil
}

// Opens the wall between the cell at index from and the adjacent cell to,
// then marks the latter visited.
func (m *Generator) carve(from int, to Point) error {
	p := m.grid.Coordinate(from)
	d, ok := p.directionTo(to)
	if !ok {
		return fmt.Errorf("Internal error: %s is not adjacent to %s", to, p)
	}
	e := m.grid.SetWall(p.X, p.Y, d, true)
	if e != nil {
		return fmt.Errorf("Internal error carving %s of %s: %w", d, p, e)
	}
	m.visited[m.grid.Index(to.X, to.Y)] = true
	return m.grid.MarkVisited(to.X, to.Y)
}

// Calls Step until the maze is complete.
func (m *Generator) Run() error {
	for {
		done, e := m.Step()
		if e != nil {
			return fmt.Errorf("Error on generation step %d: %w", m.steps, e)
		}
		if done {
			return nil
		}
	}
}
