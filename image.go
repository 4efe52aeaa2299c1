package maze

import (
	"image"
	"image/color"
)

// The number of pixels across, in a square cell. Must be at least 5.
const CellPixels = 9

// The color used to highlight cells along the solution path.
var solutionColor = color.RGBA{
	R: 230,
	G: 20,
	B: 20,
	A: 255,
}

// Returns false only if both walls adjacent to the corner between sides a and
// b are clear.
func cornerSet(c *Cell, a, b Direction) bool {
	return c.Walls[a] || c.Walls[b]
}

// Returns the color of the pixel at (x, y) within a single cell, where (0, 0)
// is the cell's top-left pixel.
func cellPixel(c *Cell, state cellState, x, y int) color.Color {
	if (x < 0) || (y < 0) || (x >= CellPixels) || (y >= CellPixels) {
		return color.Transparent
	}
	// "Excluded" cells are always going to be blank.
	if state == stateExcluded {
		return color.White
	}
	wall := false
	last := CellPixels - 1
	switch {
	case (x == 0) && (y == 0):
		wall = cornerSet(c, West, North)
	case (x == last) && (y == 0):
		wall = cornerSet(c, North, East)
	case (x == last) && (y == last):
		wall = cornerSet(c, East, South)
	case (x == 0) && (y == last):
		wall = cornerSet(c, South, West)
	case x == 0:
		wall = c.Walls[West]
	case x == last:
		wall = c.Walls[East]
	case y == 0:
		wall = c.Walls[North]
	case y == last:
		wall = c.Walls[South]
	default:
		// At this point, we're not along any wall. Solution cells are red, if
		// more than two pixels away from an edge.
		if (state == stateSolutionPath) && (x > 1) && (x < (last - 1)) &&
			(y > 1) && (y < (last - 1)) {
			return solutionColor
		}
		return color.White
	}
	if wall {
		return color.Black
	}
	return color.White
}

func (m *GridMaze) ColorModel() color.Model {
	return color.RGBAModel
}

func (m *GridMaze) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width*CellPixels, m.height*CellPixels)
}

func (m *GridMaze) At(x, y int) color.Color {
	if (x < 0) || (y < 0) || (x >= m.width*CellPixels) ||
		(y >= m.height*CellPixels) {
		return color.Transparent
	}
	// We delegate drawing of each pixel to the cell it falls into.
	index := m.grid.Index(x/CellPixels, y/CellPixels)
	return cellPixel(&(m.grid.cells[index]), m.states[index], x%CellPixels,
		y%CellPixels)
}

// Satisfies the Image interface, surrounds an image with a solid-color border.
type imageBorder struct {
	pic         image.Image
	picBounds   image.Rectangle
	borderWidth int
	fillColor   color.Color
}

func (b *imageBorder) ColorModel() color.Model {
	return b.pic.ColorModel()
}

func (b *imageBorder) Bounds() image.Rectangle {
	tmp := b.picBounds
	w := b.borderWidth * 2
	return image.Rect(0, 0, tmp.Dx()+w, tmp.Dy()+w)
}

func (b *imageBorder) At(x, y int) color.Color {
	tmp := b.picBounds
	if (x < b.borderWidth) || (y < b.borderWidth) {
		return b.fillColor
	}
	if (x >= tmp.Dx()+b.borderWidth) || (y >= tmp.Dy()+b.borderWidth) {
		return b.fillColor
	}
	return b.pic.At(x-b.borderWidth+tmp.Min.X, y-b.borderWidth+tmp.Min.Y)
}

// Returns a new image, consisting of the given image surrounded by a white
// border with the given width in pixels.
func AddImageBorder(pic image.Image, width int) image.Image {
	return &imageBorder{
		pic:         pic,
		picBounds:   pic.Bounds(),
		borderWidth: width,
		fillColor:   color.White,
	}
}
