// This defines a library for generating 2D perfect mazes, using a randomized
// depth-first traversal with backtracking. The generated mazes satisfy the
// Maze interface, which includes go's image.Image interface.
package maze

import (
	"fmt"
	"image"
	"math/rand"
	"time"
)

// All mazes returned by this library will support this interface. It provides
// the Image interface so the mazes can be saved to files.
type Maze interface {
	image.Image
	RegenerateFromSeed(seed int64) error
	ShowSolution(show bool) error
	// Returns information about the maze, for drawing decorations and
	// providing debug info such as the last random seed.
	GetInfo() *MazeInfo
}

// Returned by GetInfo.
type MazeInfo struct {
	// A human-readable summary of the maze.
	DebugInfo string
	// The pixel on the outer wall of the start cell where an entry arrow's tip
	// should be drawn.
	StartPoint image.Point
	// The direction, in degrees, of an arrow entering the maze at StartPoint.
	// 0 points right and 90 points up.
	StartAngle float32
	// The pixel on the outer wall of the end cell where an exit arrow's tail
	// should be drawn.
	EndPoint image.Point
	// The direction, in degrees, of an arrow leaving the maze at EndPoint.
	EndAngle float32
}

// Differentiates between different types of cells, i.e. whether they are part
// of the solution, or not part of the maze at all.
type cellState uint8

const (
	stateNormal cellState = iota
	stateSolutionPath
	stateExcluded
)

func (s cellState) String() string {
	switch s {
	case stateNormal:
		return "normal"
	case stateSolutionPath:
		return "solutionPath"
	case stateExcluded:
		return "excluded"
	}
	return fmt.Sprintf("Unknown cellState: %d", uint8(s))
}

// Satisfies the Maze interface. Wraps a Grid along with the start and end
// cells and the drawing state of each cell. Create using NewGridMazeWithSeed
// or NewGridMazeFromTemplate.
type GridMaze struct {
	// Width and height are numbers of cells
	width  int
	height int
	grid   *Grid
	// Indexed the same way as the grid's cells.
	states []cellState
	// The indices of the start and end cells in the maze.
	startCellIndex int
	endCellIndex   int
	// The seed that was last used to generate the maze.
	randomSeed int64
	// The time required for the last generation.
	generationTime float64
	// Statistics from the last generation.
	steps      int
	backtracks int
}

// Allocates the maze, but doesn't generate it.
func allocateMaze(width, height int) (*GridMaze, error) {
	grid, e := NewGrid(width, height)
	if e != nil {
		return nil, e
	}
	toReturn := &GridMaze{
		width:          width,
		height:         height,
		grid:           grid,
		states:         make([]cellState, grid.CellCount()),
		startCellIndex: 0,
		endCellIndex:   grid.CellCount() - 1,
	}
	return toReturn, nil
}

// Generates a maze, going from the top-left cell to the bottom-right one. If
// the given RNG seed is not positive, a new seed will be selected based on
// the current time in nanoseconds.
func NewGridMazeWithSeed(width, height int, seed int64) (*GridMaze, error) {
	toReturn, e := allocateMaze(width, height)
	if e != nil {
		return nil, e
	}
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}
	e = toReturn.RegenerateFromSeed(seed)
	if e != nil {
		return nil, fmt.Errorf("Error generating maze: %w", e)
	}
	return toReturn, nil
}

// Returns the maze's start cell.
func (m *GridMaze) Start() Point {
	return m.grid.Coordinate(m.startCellIndex)
}

// Returns the maze's end cell.
func (m *GridMaze) End() Point {
	return m.grid.Coordinate(m.endCellIndex)
}

// Returns the underlying grid. It must only be read; the maze owns it.
func (m *GridMaze) Grid() *Grid {
	return m.grid
}

// Replaces the grid with a fresh one and carves a new maze into it, starting
// from the start cell.
func (m *GridMaze) RegenerateFromSeed(seed int64) error {
	grid, e := NewGrid(m.width, m.height)
	if e != nil {
		return e
	}
	rng := rand.New(rand.NewSource(seed))
	startTime := time.Now()
	generator, e := NewGenerator(grid, grid.Coordinate(m.startCellIndex), rng)
	if e != nil {
		return fmt.Errorf("Error initializing maze state: %w", e)
	}
	for i, s := range m.states {
		if s == stateExcluded {
			p := grid.Coordinate(i)
			e = generator.Exclude(p.X, p.Y)
			if e != nil {
				return fmt.Errorf("Error excluding cell %s: %w", p, e)
			}
		}
	}
	e = generator.Run()
	if e != nil {
		return e
	}
	m.generationTime = time.Since(startTime).Seconds()
	m.steps = generator.Steps()
	m.backtracks = generator.Backtracks()
	m.randomSeed = seed
	m.grid = grid
	return m.clearSolution()
}

// Returns the pixel point on the outer wall of the given cell, along with the
// angle of an arrow pointing into the maze there. Prefers the left or right
// edge, then the top or bottom, to match where mazes usually start and end.
func (m *GridMaze) entryPoint(index int, leaving bool) (image.Point, float32) {
	p := m.grid.Coordinate(index)
	left := p.X * CellPixels
	top := p.Y * CellPixels
	right := left + CellPixels - 1
	bottom := top + CellPixels - 1
	midX := left + CellPixels/2
	midY := top + CellPixels/2
	var pt image.Point
	var angle float32
	if leaving {
		switch {
		case p.X == (m.width - 1):
			pt, angle = image.Pt(right, midY), 0
		case p.Y == (m.height - 1):
			pt, angle = image.Pt(midX, bottom), 270
		case p.X == 0:
			pt, angle = image.Pt(left, midY), 180
		default:
			pt, angle = image.Pt(midX, top), 90
		}
		return pt, angle
	}
	switch {
	case p.X == 0:
		pt, angle = image.Pt(left, midY), 0
	case p.Y == 0:
		pt, angle = image.Pt(midX, top), 270
	case p.X == (m.width - 1):
		pt, angle = image.Pt(right, midY), 180
	default:
		pt, angle = image.Pt(midX, bottom), 90
	}
	return pt, angle
}

func (m *GridMaze) GetInfo() *MazeInfo {
	startPoint, startAngle := m.entryPoint(m.startCellIndex, false)
	endPoint, endAngle := m.entryPoint(m.endCellIndex, true)
	return &MazeInfo{
		DebugInfo: fmt.Sprintf("%dx%d grid maze with random seed %d, "+
			"generated in %.03f seconds (%d steps, %d backtracks)", m.width,
			m.height, m.randomSeed, m.generationTime, m.steps, m.backtracks),
		StartPoint: startPoint,
		StartAngle: startAngle,
		EndPoint:   endPoint,
		EndAngle:   endAngle,
	}
}
