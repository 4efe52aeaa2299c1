// Package animation holds the generation state shared by the interactive maze
// viewers. Both viewers draw the maze on a (2W+1) x (2H+1) grid of blocks:
// cells sit at odd coordinates, and the walls or gaps between them at even
// ones.
package animation

import (
	"fmt"
	"math/rand"

	maze "github.com/yalue/backtracker_maze"
)

// One maze being generated a few steps at a time, from the top-left cell.
// Once generation finishes, the path from the top-left to the bottom-right
// cell is stored in Solution.
type Session struct {
	Seed      int64
	Grid      *maze.Grid
	Generator *maze.Generator
	Solution  []maze.Point
}

// Starts generating a new width x height maze, seeded with seed.
func NewSession(width, height int, seed int64) (*Session, error) {
	grid, e := maze.NewGrid(width, height)
	if e != nil {
		return nil, e
	}
	generator, e := maze.NewGenerator(grid, maze.Point{X: 0, Y: 0},
		rand.New(rand.NewSource(seed)))
	if e != nil {
		return nil, e
	}
	return &Session{
		Seed:      seed,
		Grid:      grid,
		Generator: generator,
	}, nil
}

// Returns true once the maze is finished and solved.
func (s *Session) Solved() bool {
	return s.Solution != nil
}

// Runs up to steps generation steps, then solves the maze if it finished.
// Does nothing once the maze is solved.
func (s *Session) Advance(steps int) error {
	if s.Solved() {
		return nil
	}
	for i := 0; i < steps; i++ {
		done, e := s.Generator.Step()
		if e != nil {
			return fmt.Errorf("Error generating maze: %w", e)
		}
		if done {
			return s.solve()
		}
	}
	return nil
}

func (s *Session) solve() error {
	end := maze.Point{X: s.Grid.Width() - 1, Y: s.Grid.Height() - 1}
	path, e := maze.FindPath(s.Grid, maze.Point{X: 0, Y: 0}, end)
	if e != nil {
		return fmt.Errorf("Error solving maze: %w", e)
	}
	s.Solution = path
	return nil
}

// Returns the block holding the given cell.
func CellBlock(p maze.Point) (int, int) {
	return p.X*2 + 1, p.Y*2 + 1
}

// Returns the block holding the gap between two adjacent cells.
func GapBlock(a, b maze.Point) (int, int) {
	return a.X + b.X + 1, a.Y + b.Y + 1
}
