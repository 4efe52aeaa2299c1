// This defines a basic executable for generating an image of a maze.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	maze "github.com/yalue/backtracker_maze"
	"github.com/yalue/image_utils"
)

const arrowLength = 16

// Returns the direction closest to the given angle, in degrees. The angle must
// be between 0 and 360; if it isn't this will simply return maze.East.
func angleToDirection(angle float32) maze.Direction {
	if (angle > 45) && (angle <= 135) {
		return maze.North
	} else if (angle > 135) && (angle <= 225) {
		return maze.West
	} else if (angle > 225) && (angle < 315) {
		return maze.South
	}
	return maze.East
}

func getArrow(d maze.Direction, arrowColor color.Color) image.Image {
	switch d {
	case maze.North:
		return image_utils.UpArrow(arrowColor)
	case maze.West:
		return image_utils.LeftArrow(arrowColor)
	case maze.South:
		return image_utils.DownArrow(arrowColor)
	}
	return image_utils.RightArrow(arrowColor)
}

// Returns an arrow pointing in the given direction, with a white center.
func getOutlinedArrow(d maze.Direction, arrowColor color.Color) (image.Image,
	error) {
	outerArrow := image_utils.ResizeImage(getArrow(d, arrowColor),
		arrowLength, arrowLength)
	innerArrow := image_utils.ResizeImage(getArrow(d, color.White),
		arrowLength/2, arrowLength/2)
	toReturn := image_utils.NewCompositeImage()
	e := toReturn.AddImage(outerArrow, image.Pt(0, 0))
	if e != nil {
		return nil, e
	}
	e = toReturn.AddImage(innerArrow, image.Pt(arrowLength/4, arrowLength/4))
	if e != nil {
		return nil, e
	}
	return image_utils.ToRGBA(toReturn), nil
}

// If the tip of the arrow is supposed to be at the given pt (or the tail of
// the arrow, if "away" is true), this returns the top-left where the square
// image returned by getOutlinedArrow should be drawn. The arrow is kept one
// pixel clear of pt.
func getArrowTopLeft(pt image.Point, d maze.Direction, away bool) image.Point {
	halfLength := arrowLength / 2
	dx, dy := d.Delta()
	if !away {
		// The arrow ends at pt, so it lies on the side pt is pointed from.
		dx, dy = -dx, -dy
	}
	// Center the square on pt, then slide it over along the arrow's axis.
	x := pt.X - halfLength + dx*(halfLength+1)
	y := pt.Y - halfLength + dy*(halfLength+1)
	return image.Pt(x, y)
}

// Adds "decorations" to the maze, including start and end arrows, inside a
// white border of the given width. Rasterizes the maze to an image.RGBA.
func drawMazeDecorations(m maze.Maze, border int) (*image.RGBA, error) {
	info := m.GetInfo()
	offset := image.Pt(border, border)
	decorated := image_utils.NewCompositeImage()
	mazePic := image_utils.ToRGBA(maze.AddImageBorder(m, border))
	e := decorated.AddImage(mazePic, image.Pt(0, 0))
	if e != nil {
		return nil, fmt.Errorf("Error setting base maze image: %w", e)
	}
	blueColor := color.RGBA{100, 120, 255, 255}
	greenColor := color.RGBA{40, 180, 70, 255}

	startDir := angleToDirection(info.StartAngle)
	startArrow, e := getOutlinedArrow(startDir, greenColor)
	if e != nil {
		return nil, fmt.Errorf("Error drawing start arrow: %w", e)
	}
	startArrowPos := getArrowTopLeft(info.StartPoint.Add(offset), startDir,
		false)
	e = decorated.AddImage(startArrow, startArrowPos)
	if e != nil {
		return nil, fmt.Errorf("Error adding start arrow: %w", e)
	}

	endDir := angleToDirection(info.EndAngle)
	endArrow, e := getOutlinedArrow(endDir, blueColor)
	if e != nil {
		return nil, fmt.Errorf("Error drawing end arrow: %w", e)
	}
	endArrowPos := getArrowTopLeft(info.EndPoint.Add(offset), endDir, true)
	e = decorated.AddImage(endArrow, endArrowPos)
	if e != nil {
		return nil, fmt.Errorf("Error adding end arrow: %w", e)
	}

	return image_utils.ToRGBA(decorated), nil
}

// Loads the template image at the given path and builds a maze from it.
func mazeFromTemplate(path string, seed int64) (*maze.GridMaze, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, fmt.Errorf("Error opening template image %s: %w", path, e)
	}
	defer f.Close()
	pic, _, e := image.Decode(f)
	if e != nil {
		return nil, fmt.Errorf("Error parsing template image %s: %w", path, e)
	}
	return maze.NewGridMazeFromTemplate(pic, seed)
}

func run() int {
	var cellsWide, cellsHigh, border int
	var randomSeed int64
	var showSolution bool
	var outFilename, templateImage string
	flag.IntVar(&cellsWide, "cells_wide", 20,
		"The width of the maze, in grid cells.")
	flag.IntVar(&cellsHigh, "cells_high", 20,
		"The height of the maze, in grid cells.")
	flag.IntVar(&border, "border", arrowLength+2,
		"The width, in pixels, of the white border around the maze. Must "+
			"leave room for the start and end arrows.")
	flag.Int64Var(&randomSeed, "random_seed", -1,
		"If positive, specifies the random seed to use.")
	flag.BoolVar(&showSolution, "show_solution", false,
		"If set, shows the solution of the maze.")
	flag.StringVar(&outFilename, "output_file", "",
		"The name of the .png file to which the maze will be saved.")
	flag.StringVar(&templateImage, "template_image", "",
		"An optional path to a PNG-format image to use as a layout "+
			"template. Will ignore cells_wide and cells_high if used.")
	flag.Parse()
	if (cellsWide < 1) || (cellsHigh < 1) || (border < 0) ||
		(outFilename == "") {
		fmt.Println("Invalid or missing argument.")
		fmt.Println("Run with -help for more information.")
		return 1
	}
	var e error
	var m *maze.GridMaze
	if templateImage != "" {
		m, e = mazeFromTemplate(templateImage, randomSeed)
	} else {
		m, e = maze.NewGridMazeWithSeed(cellsWide, cellsHigh, randomSeed)
	}
	if e != nil {
		fmt.Printf("Failed generating maze: %s\n", e)
		return 1
	}
	fmt.Printf("Generated %s OK.\n", m.GetInfo().DebugInfo)
	if showSolution {
		fmt.Printf("Finding solution to the maze.\n")
		e = m.ShowSolution(true)
		if e != nil {
			fmt.Printf("Error finding solution: %s\n", e)
			return 1
		}
	}
	finalPic, e := drawMazeDecorations(m, border)
	if e != nil {
		fmt.Printf("Error adding maze decorations: %s\n", e)
		return 1
	}
	f, e := os.Create(outFilename)
	if e != nil {
		fmt.Printf("Error creating output file %s: %s\n", outFilename, e)
		return 1
	}
	defer f.Close()
	e = png.Encode(f, finalPic)
	if e != nil {
		fmt.Printf("Error writing image to %s: %s\n", outFilename, e)
		return 1
	}
	fmt.Printf("Image %s written OK.\n", outFilename)
	return 0
}

func main() {
	os.Exit(run())
}
