package maze

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sameColor(a, b color.Color) bool {
	r1, g1, b1, a1 := a.RGBA()
	r2, g2, b2, a2 := b.RGBA()
	return (r1 == r2) && (g1 == g2) && (b1 == b2) && (a1 == a2)
}

// Fails the test unless path is a walk between adjacent cells with no walls
// between them, from start to end.
func requireOpenPath(t *testing.T, g *Grid, path []Point, start, end Point) {
	require.NotEmpty(t, path)
	require.Equal(t, start, path[0])
	require.Equal(t, end, path[len(path)-1])
	for i := 1; i < len(path); i++ {
		d, ok := path[i-1].directionTo(path[i])
		require.True(t, ok, "%s isn't next to %s", path[i], path[i-1])
		c, _ := g.Cell(path[i-1].X, path[i-1].Y)
		require.False(t, c.HasWall(d), "wall between %s and %s", path[i-1],
			path[i])
	}
}

func TestNewGridMazeWithSeed(t *testing.T) {
	m, e := NewGridMazeWithSeed(20, 15, 1337)
	require.NoError(t, e)
	assert.Equal(t, Point{0, 0}, m.Start())
	assert.Equal(t, Point{19, 14}, m.End())
	assert.Equal(t, 20*15-1, m.Grid().OpenWallCount())
	assert.Equal(t, image.Rect(0, 0, 20*CellPixels, 15*CellPixels), m.Bounds())

	info := m.GetInfo()
	assert.True(t, strings.Contains(info.DebugInfo, "random seed 1337"),
		info.DebugInfo)
	assert.Equal(t, image.Pt(0, CellPixels/2), info.StartPoint)
	assert.Equal(t, float32(0), info.StartAngle)
	assert.Equal(t, image.Pt(20*CellPixels-1, 14*CellPixels+CellPixels/2),
		info.EndPoint)
	assert.Equal(t, float32(0), info.EndAngle)

	_, e = NewGridMazeWithSeed(0, 4, 1)
	assert.Error(t, e)
}

func TestRegenerateFromSeed(t *testing.T) {
	a, e := NewGridMazeWithSeed(16, 16, 42)
	require.NoError(t, e)
	b, e := NewGridMazeWithSeed(16, 16, 42)
	require.NoError(t, e)
	assert.Equal(t, a.Grid().String(), b.Grid().String())

	require.NoError(t, b.RegenerateFromSeed(43))
	assert.NotEqual(t, a.Grid().String(), b.Grid().String())
	require.NoError(t, b.RegenerateFromSeed(42))
	assert.Equal(t, a.Grid().String(), b.Grid().String())
}

func TestRegenerateFailureKeepsSeed(t *testing.T) {
	m, e := NewGridMazeWithSeed(6, 4, 21)
	require.NoError(t, e)
	before := m.Grid().String()
	// The start cell can't be excluded, so generation fails before carving.
	m.states[m.startCellIndex] = stateExcluded
	require.Error(t, m.RegenerateFromSeed(77))
	info := m.GetInfo()
	assert.True(t, strings.Contains(info.DebugInfo, "random seed 21"),
		info.DebugInfo)
	assert.Equal(t, before, m.Grid().String())
}

func TestSolutionPath(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		m, e := NewGridMazeWithSeed(13, 9, seed)
		require.NoError(t, e)
		path, e := m.SolutionPath()
		require.NoError(t, e)
		requireOpenPath(t, m.Grid(), path, m.Start(), m.End())
		// A path in a tree never revisits a cell.
		seen := make(map[Point]bool)
		for _, p := range path {
			assert.False(t, seen[p], "%s visited twice", p)
			seen[p] = true
		}
	}
}

func TestFindPathBounds(t *testing.T) {
	m, e := NewGridMazeWithSeed(4, 4, 5)
	require.NoError(t, e)
	_, e = FindPath(m.Grid(), Point{-1, 0}, Point{3, 3})
	assert.ErrorIs(t, e, ErrOutOfBounds)
	_, e = FindPath(m.Grid(), Point{0, 0}, Point{4, 3})
	assert.ErrorIs(t, e, ErrOutOfBounds)
	path, e := FindPath(m.Grid(), Point{3, 0}, Point{0, 3})
	require.NoError(t, e)
	requireOpenPath(t, m.Grid(), path, Point{3, 0}, Point{0, 3})
}

func TestSolutionSingleCell(t *testing.T) {
	m, e := NewGridMazeWithSeed(1, 1, 5)
	require.NoError(t, e)
	path, e := m.SolutionPath()
	require.NoError(t, e)
	assert.Equal(t, []Point{{0, 0}}, path)
}

func TestShowSolution(t *testing.T) {
	m, e := NewGridMazeWithSeed(8, 8, 3)
	require.NoError(t, e)
	center := CellPixels / 2
	assert.True(t, sameColor(color.White, m.At(center, center)))

	require.NoError(t, m.ShowSolution(true))
	assert.True(t, sameColor(solutionColor, m.At(center, center)))
	endX := 7*CellPixels + center
	assert.True(t, sameColor(solutionColor, m.At(endX, endX)))

	require.NoError(t, m.ShowSolution(false))
	assert.True(t, sameColor(color.White, m.At(center, center)))
}

func TestMazePixels(t *testing.T) {
	m, e := NewGridMazeWithSeed(5, 1, 8)
	require.NoError(t, e)
	last := CellPixels - 1
	// Outer walls and corners are always drawn.
	assert.True(t, sameColor(color.Black, m.At(0, 0)))
	assert.True(t, sameColor(color.Black, m.At(0, CellPixels/2)))
	assert.True(t, sameColor(color.Black, m.At(CellPixels/2, 0)))
	assert.True(t, sameColor(color.Black, m.At(CellPixels/2, last)))
	assert.True(t, sameColor(color.Black, m.At(5*CellPixels-1, CellPixels/2)))
	// The passage between the first two cells is open.
	assert.True(t, sameColor(color.White, m.At(last, CellPixels/2)))
	assert.True(t, sameColor(color.White, m.At(CellPixels, CellPixels/2)))
	// Out of bounds.
	assert.True(t, sameColor(color.Transparent, m.At(-1, 0)))
	assert.True(t, sameColor(color.Transparent, m.At(0, CellPixels)))
}

func TestAddImageBorder(t *testing.T) {
	m, e := NewGridMazeWithSeed(3, 2, 11)
	require.NoError(t, e)
	bordered := AddImageBorder(m, 4)
	assert.Equal(t, image.Rect(0, 0, 3*CellPixels+8, 2*CellPixels+8),
		bordered.Bounds())
	assert.True(t, sameColor(color.White, bordered.At(0, 0)))
	assert.True(t, sameColor(color.White, bordered.At(3*CellPixels+7, 3)))
	assert.True(t, sameColor(m.At(0, 0), bordered.At(4, 4)))
	assert.True(t, sameColor(m.At(5, 6), bordered.At(9, 10)))
}

// Returns a template image where every pixel is white.
func whiteTemplate(w, h int) *image.RGBA {
	pic := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pic.Set(x, y, color.White)
		}
	}
	return pic
}

func TestTemplateMaze(t *testing.T) {
	black := color.RGBA{0, 0, 0, 255}
	pic := whiteTemplate(5, 3)
	pic.Set(2, 0, black)
	pic.Set(2, 2, black)
	pic.Set(0, 1, color.RGBA{0, 255, 0, 255})
	pic.Set(4, 1, color.RGBA{255, 0, 0, 255})

	m, e := NewGridMazeFromTemplate(pic, 17)
	require.NoError(t, e)
	assert.Equal(t, Point{0, 1}, m.Start())
	assert.Equal(t, Point{4, 1}, m.End())
	g := m.Grid()
	for _, p := range []Point{{2, 0}, {2, 2}} {
		c, _ := g.Cell(p.X, p.Y)
		assert.False(t, c.Visited)
		assert.Equal(t, [4]bool{true, true, true, true}, c.Walls)
	}
	assert.Equal(t, 12, g.OpenWallCount())

	path, e := m.SolutionPath()
	require.NoError(t, e)
	requireOpenPath(t, g, path, m.Start(), m.End())
	assert.Contains(t, path, Point{2, 1})

	// Excluded cells are drawn blank, even around the edges.
	require.NoError(t, m.ShowSolution(true))
	assert.True(t, sameColor(color.White, m.At(2*CellPixels, 0)))
	assert.True(t, sameColor(color.White,
		m.At(2*CellPixels+CellPixels/2, 2*CellPixels+CellPixels/2)))
}

func TestTemplateMazeDefaults(t *testing.T) {
	m, e := NewGridMazeFromTemplate(whiteTemplate(4, 4), 2)
	require.NoError(t, e)
	assert.Equal(t, Point{0, 0}, m.Start())
	assert.Equal(t, Point{3, 3}, m.End())
	assert.Equal(t, 15, m.Grid().OpenWallCount())

	pic := whiteTemplate(4, 4)
	pic.Set(0, 0, color.Black)
	_, e = NewGridMazeFromTemplate(pic, 2)
	assert.Error(t, e)

	pic = whiteTemplate(4, 4)
	pic.Set(3, 3, color.Black)
	_, e = NewGridMazeFromTemplate(pic, 2)
	assert.Error(t, e)
}

func TestTemplateUnreachableEnd(t *testing.T) {
	pic := whiteTemplate(3, 3)
	pic.Set(1, 0, color.Black)
	pic.Set(1, 1, color.Black)
	pic.Set(1, 2, color.Black)
	m, e := NewGridMazeFromTemplate(pic, 9)
	require.NoError(t, e)
	_, e = m.SolutionPath()
	assert.Error(t, e)
	assert.Error(t, m.ShowSolution(true))
}

func TestColorToTemplateCellType(t *testing.T) {
	assert.Equal(t, templateExcluded, colorToTemplateCellType(color.Black))
	assert.Equal(t, templateValid, colorToTemplateCellType(color.White))
	assert.Equal(t, templateStartCandidate,
		colorToTemplateCellType(color.RGBA{0, 210, 0, 255}))
	assert.Equal(t, templateEndCandidate,
		colorToTemplateCellType(color.RGBA{220, 0, 0, 255}))
	assert.Equal(t, templateValid,
		colorToTemplateCellType(color.RGBA{120, 120, 0, 255}))
}
