// This defines an executable that opens a window and draws a maze while it's
// being generated.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	maze "github.com/yalue/backtracker_maze"
	"github.com/yalue/backtracker_maze/internal/animation"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	passageColor    = color.RGBA{255, 255, 255, 255}
	currentColor    = color.RGBA{230, 20, 20, 255}
	solutionColor   = color.RGBA{100, 120, 255, 255}
)

// Implements ebiten.Game. Each block of cellSize x cellSize pixels is either
// a cell, a wall, or a gap between two cells.
type mazeWindow struct {
	width, height int
	cellSize      int
	stepsPerFrame int
	paused        bool
	showStatus    bool
	session       *animation.Session
}

// Starts a new maze with the given seed.
func (w *mazeWindow) reset(seed int64) error {
	session, e := animation.NewSession(w.width, w.height, seed)
	if e != nil {
		return e
	}
	w.session = session
	return nil
}

func (w *mazeWindow) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		w.paused = !w.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		w.showStatus = !w.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return w.reset(time.Now().UnixNano())
	}
	if w.paused {
		return nil
	}
	return w.session.Advance(w.stepsPerFrame)
}

// Fills the block at the given coordinate.
func (w *mazeWindow) fillBlock(screen *ebiten.Image, col, row int,
	c color.Color) {
	size := float64(w.cellSize)
	ebitenutil.DrawRect(screen, float64(col)*size, float64(row)*size, size,
		size, c)
}

// Draws a cell, plus the gaps to its east and south neighbors if the walls
// there are open.
func (w *mazeWindow) drawCell(screen *ebiten.Image, x, y int, c color.Color) {
	cell, e := w.session.Grid.Cell(x, y)
	if (e != nil) || !cell.Visited {
		return
	}
	p := maze.Point{X: x, Y: y}
	col, row := animation.CellBlock(p)
	w.fillBlock(screen, col, row, c)
	if !cell.HasWall(maze.East) {
		col, row = animation.GapBlock(p, maze.Point{X: x + 1, Y: y})
		w.fillBlock(screen, col, row, passageColor)
	}
	if !cell.HasWall(maze.South) {
		col, row = animation.GapBlock(p, maze.Point{X: x, Y: y + 1})
		w.fillBlock(screen, col, row, passageColor)
	}
}

func (w *mazeWindow) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			w.drawCell(screen, x, y, passageColor)
		}
	}
	solution := w.session.Solution
	for i, p := range solution {
		col, row := animation.CellBlock(p)
		w.fillBlock(screen, col, row, solutionColor)
		if i == 0 {
			continue
		}
		col, row = animation.GapBlock(solution[i-1], p)
		w.fillBlock(screen, col, row, solutionColor)
	}
	generator := w.session.Generator
	current, ok := generator.Current()
	if ok {
		col, row := animation.CellBlock(current)
		w.fillBlock(screen, col, row, currentColor)
	}
	if w.showStatus {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("seed %d\nsteps %d\n"+
			"backtracks %d\ndepth %d\nFPS: %.1f", w.session.Seed,
			generator.Steps(), generator.Backtracks(), generator.StackDepth(),
			ebiten.ActualFPS()))
	}
}

// Layout implements ebiten.Game's Layout.
func (w *mazeWindow) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.pixelSize()
}

func (w *mazeWindow) pixelSize() (int, int) {
	return (w.width*2 + 1) * w.cellSize, (w.height*2 + 1) * w.cellSize
}

func main() {
	var cellsWide, cellsHigh, cellSize, stepsPerFrame int
	var randomSeed int64
	flag.IntVar(&cellsWide, "cells_wide", 99,
		"The width of the maze, in grid cells.")
	flag.IntVar(&cellsHigh, "cells_high", 59,
		"The height of the maze, in grid cells.")
	flag.IntVar(&cellSize, "cell_size", 5,
		"The size, in pixels, of each cell and wall.")
	flag.IntVar(&stepsPerFrame, "steps_per_frame", 4,
		"The number of generation steps to run per frame.")
	flag.Int64Var(&randomSeed, "random_seed", -1,
		"If positive, specifies the random seed to use.")
	flag.Parse()
	if (cellsWide < 1) || (cellsHigh < 1) || (cellSize < 1) ||
		(stepsPerFrame < 1) {
		log.Fatalf("Invalid argument. Run with -help for more information.")
	}
	if randomSeed <= 0 {
		randomSeed = time.Now().UnixNano()
	}
	w := &mazeWindow{
		width:         cellsWide,
		height:        cellsHigh,
		cellSize:      cellSize,
		stepsPerFrame: stepsPerFrame,
	}
	if e := w.reset(randomSeed); e != nil {
		log.Fatal(e)
	}
	ebiten.SetWindowSize(w.pixelSize())
	ebiten.SetWindowTitle("Maze")
	ebiten.SetTPS(60)
	if e := ebiten.RunGame(w); e != nil {
		log.Fatal(e)
	}
}
