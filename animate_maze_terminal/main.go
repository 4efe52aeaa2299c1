// This defines an executable that draws a maze in the terminal while it's
// being generated, one traversal step at a time.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	maze "github.com/yalue/backtracker_maze"
	"github.com/yalue/backtracker_maze/internal/animation"
)

var (
	wallStyle      = tcell.StyleDefault.Background(tcell.ColorGray)
	unvisitedStyle = tcell.StyleDefault.Background(tcell.ColorBlack)
	floorStyle     = tcell.StyleDefault.Background(tcell.ColorWhite)
	pathStyle      = tcell.StyleDefault.Background(tcell.ColorBlue)
	currentStyle   = tcell.StyleDefault.Background(tcell.ColorYellow)
	solutionStyle  = tcell.StyleDefault.Background(tcell.ColorRed)
	statusStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Holds the state of one animated generation.
type viewer struct {
	screen        tcell.Screen
	width, height int
	stepsPerTick  int
	paused        bool
	session       *animation.Session
	// Cells on the generator's stack, or on the solution once it's done.
	// Indexed like the grid's cells.
	highlight []bool
}

// Starts a new maze with the given seed, discarding the old one.
func (v *viewer) reset(seed int64) error {
	session, e := animation.NewSession(v.width, v.height, seed)
	if e != nil {
		return e
	}
	v.session = session
	v.highlight = make([]bool, session.Grid.CellCount())
	return nil
}

// Advances the generator, and highlights the solution once it finishes.
func (v *viewer) advance() error {
	if v.paused || v.session.Solved() {
		return nil
	}
	e := v.session.Advance(v.stepsPerTick)
	if e != nil {
		return e
	}
	if v.session.Solved() {
		v.highlightPath(v.session.Solution)
	}
	return nil
}

func (v *viewer) highlightPath(path []maze.Point) {
	for i := range v.highlight {
		v.highlight[i] = false
	}
	for _, p := range path {
		v.highlight[v.session.Grid.Index(p.X, p.Y)] = true
	}
}

// Sets both terminal columns of one maze character.
func (v *viewer) set(col, row int, style tcell.Style) {
	v.screen.SetContent(col*2, row, ' ', nil, style)
	v.screen.SetContent(col*2+1, row, ' ', nil, style)
}

// Returns the style for the floor of the cell at (x, y).
func (v *viewer) cellStyle(x, y int, c maze.Cell, current maze.Point,
	active bool) tcell.Style {
	if !c.Visited {
		return unvisitedStyle
	}
	if active && (current == maze.Point{X: x, Y: y}) {
		return currentStyle
	}
	if v.highlight[v.session.Grid.Index(x, y)] {
		if v.session.Solved() {
			return solutionStyle
		}
		return pathStyle
	}
	return floorStyle
}

// Draws the maze with each block as a pair of terminal columns.
func (v *viewer) draw() error {
	v.screen.Clear()
	grid := v.session.Grid
	generator := v.session.Generator
	if !v.session.Solved() {
		v.highlightPath(generator.Path())
	}
	current, active := generator.Current()
	for row := 0; row <= v.height*2; row++ {
		for col := 0; col <= v.width*2; col++ {
			v.set(col, row, wallStyle)
		}
	}
	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			c, e := grid.Cell(x, y)
			if e != nil {
				return e
			}
			p := maze.Point{X: x, Y: y}
			col, row := animation.CellBlock(p)
			v.set(col, row, v.cellStyle(x, y, c, current, active))
			if !c.HasWall(maze.East) {
				col, row = animation.GapBlock(p, maze.Point{X: x + 1, Y: y})
				v.set(col, row, v.passageStyle(x, y, maze.East))
			}
			if !c.HasWall(maze.South) {
				col, row = animation.GapBlock(p, maze.Point{X: x, Y: y + 1})
				v.set(col, row, v.passageStyle(x, y, maze.South))
			}
		}
	}
	status := fmt.Sprintf("seed %d, %d steps, %d backtracks, depth %d",
		v.session.Seed, generator.Steps(), generator.Backtracks(),
		generator.StackDepth())
	if v.session.Solved() {
		status += " - done"
	} else if v.paused {
		status += " - paused"
	}
	status += "  [space] pause  [r] restart  [q] quit"
	for i, r := range status {
		v.screen.SetContent(i, v.height*2+2, r, nil, statusStyle)
	}
	v.screen.Show()
	return nil
}

// The gap between two cells is highlighted only if both cells are.
func (v *viewer) passageStyle(x, y int, d maze.Direction) tcell.Style {
	dx, dy := d.Delta()
	grid := v.session.Grid
	if v.highlight[grid.Index(x, y)] && v.highlight[grid.Index(x+dx, y+dy)] {
		if v.session.Solved() {
			return solutionStyle
		}
		return pathStyle
	}
	return floorStyle
}

// Returns true if the viewer should exit.
func (v *viewer) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if (ev.Key() == tcell.KeyEscape) || (ev.Key() == tcell.KeyCtrlC) {
			return true, nil
		}
		if ev.Key() != tcell.KeyRune {
			return false, nil
		}
		switch ev.Rune() {
		case 'q':
			return true, nil
		case ' ':
			v.paused = !v.paused
		case 'r':
			return false, v.reset(time.Now().UnixNano())
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return false, nil
}

func (v *viewer) loop(tickInterval time.Duration) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case ev := <-events:
			exit, e := v.handleEvent(ev)
			if e != nil {
				return e
			}
			if exit {
				return nil
			}
		case <-ticker.C:
			e := v.advance()
			if e != nil {
				return e
			}
		}
		e := v.draw()
		if e != nil {
			return e
		}
	}
}

func run() int {
	var cellsWide, cellsHigh, stepsPerTick, tickMS int
	var randomSeed int64
	flag.IntVar(&cellsWide, "cells_wide", 30,
		"The width of the maze, in grid cells.")
	flag.IntVar(&cellsHigh, "cells_high", 15,
		"The height of the maze, in grid cells.")
	flag.IntVar(&stepsPerTick, "steps_per_tick", 1,
		"The number of generation steps to run between redraws.")
	flag.IntVar(&tickMS, "tick_ms", 30,
		"The number of milliseconds between redraws.")
	flag.Int64Var(&randomSeed, "random_seed", -1,
		"If positive, specifies the random seed to use.")
	flag.Parse()
	if (cellsWide < 1) || (cellsHigh < 1) || (stepsPerTick < 1) ||
		(tickMS < 1) {
		fmt.Println("Invalid argument.")
		fmt.Println("Run with -help for more information.")
		return 1
	}
	if randomSeed <= 0 {
		randomSeed = time.Now().UnixNano()
	}
	v := &viewer{
		width:        cellsWide,
		height:       cellsHigh,
		stepsPerTick: stepsPerTick,
	}
	e := v.reset(randomSeed)
	if e != nil {
		fmt.Printf("Failed creating maze: %s\n", e)
		return 1
	}
	screen, e := tcell.NewScreen()
	if e != nil {
		fmt.Printf("Failed creating screen: %s\n", e)
		return 1
	}
	e = screen.Init()
	if e != nil {
		fmt.Printf("Failed initializing screen: %s\n", e)
		return 1
	}
	v.screen = screen
	e = v.loop(time.Duration(tickMS) * time.Millisecond)
	screen.Fini()
	if e != nil {
		fmt.Printf("Error animating maze: %s\n", e)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
