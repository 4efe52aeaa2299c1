package maze

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"time"
)

// We'll convert template colors to values of this type.
type templateCellType uint8

const (
	templateValid templateCellType = iota
	templateExcluded
	templateStartCandidate
	templateEndCandidate
)

func (t templateCellType) String() string {
	switch t {
	case templateValid:
		return "valid"
	case templateExcluded:
		return "excluded"
	case templateStartCandidate:
		return "startCandidate"
	case templateEndCandidate:
		return "endCandidate"
	}
	return fmt.Sprintf("Invalid template cell type: %d", uint8(t))
}

// Converts an arbitrary color to what the type of cell represents. See the
// comment on NewGridMazeFromTemplate for how the mapping works.
func colorToTemplateCellType(c color.Color) templateCellType {
	r, g, b, _ := c.RGBA()
	r = r >> 8
	g = g >> 8
	b = b >> 8
	// Black pixels represent excluded cells
	if (r == 0) && (g == 0) && (b == 0) {
		return templateExcluded
	}
	// Green pixels are possible starting cells
	if (r == 0) && (g > 200) && (b == 0) {
		return templateStartCandidate
	}
	// Red pixels are possible ending cells
	if (r > 200) && (g == 0) && (b == 0) {
		return templateEndCandidate
	}
	// All other colors are standard maze cells
	return templateValid
}

// Uses a "template" image to generate a maze. Each pixel in the template will
// correspond to one cell in the maze. The given seed will be ignored if not
// positive. The template image must use the following format:
//   - Green pixels are possible starting points (RGB = 0, >200, 0)
//   - Red pixels are possible ending points (RGB = >200, 0, 0)
//   - Black pixels are excluded cells
//   - Any other color is a "normal" cell that will be part of the maze.
//
// Cells that the excluded ones cut off from the start cell are left fully
// walled, and aren't part of the maze.
func NewGridMazeFromTemplate(templatePic image.Image, seed int64) (*GridMaze,
	error) {
	bounds := templatePic.Bounds().Canon()
	toReturn, e := allocateMaze(bounds.Dx(), bounds.Dy())
	if e != nil {
		return nil, e
	}
	if seed <= 0 {
		seed = time.Now().UnixNano()
	}

	possibleStartIndices := make([]int, 0, 100)
	possibleEndIndices := make([]int, 0, 100)
	cellIndex := -1
	for row := bounds.Min.Y; row < bounds.Max.Y; row++ {
		for col := bounds.Min.X; col < bounds.Max.X; col++ {
			cellIndex++
			cellType := colorToTemplateCellType(templatePic.At(col, row))
			switch cellType {
			case templateValid:
				// No need to do anything with standard cells
			case templateExcluded:
				toReturn.states[cellIndex] = stateExcluded
			case templateStartCandidate:
				possibleStartIndices = append(possibleStartIndices, cellIndex)
			case templateEndCandidate:
				possibleEndIndices = append(possibleEndIndices, cellIndex)
			default:
				return nil, fmt.Errorf("Invalid template pixel type (%s)",
					cellType)
			}
		}
	}

	rng := rand.New(rand.NewSource(seed))
	if len(possibleStartIndices) != 0 {
		toReturn.startCellIndex = possibleStartIndices[rng.Intn(
			len(possibleStartIndices))]
	} else {
		if toReturn.states[0] == stateExcluded {
			return nil, fmt.Errorf("No possible start locations marked, and " +
				"the top-left cell is excluded")
		}
		toReturn.startCellIndex = 0
	}
	if len(possibleEndIndices) != 0 {
		toReturn.endCellIndex = possibleEndIndices[rng.Intn(
			len(possibleEndIndices))]
	} else {
		if toReturn.states[len(toReturn.states)-1] == stateExcluded {
			return nil, fmt.Errorf("No possible end locations marked, and " +
				"the bottom-right cell is excluded")
		}
		toReturn.endCellIndex = len(toReturn.states) - 1
	}

	// We've chosen a start and end cell, so build the actual maze now.
	e = toReturn.RegenerateFromSeed(seed)
	if e != nil {
		return nil, fmt.Errorf("Error generating maze: %w", e)
	}
	return toReturn, nil
}
