package maze

import (
	"fmt"
)

// Fills dirRanking with a permutation of the four directions, where index 0
// is the best direction to move (minimum manhattan distance to the target),
// and index 3 is the worst. Ties are broken arbitrarily.
func setDirRanking(current, target Point, dirRanking []Direction) {
	colDiff := target.X - current.X
	absColDiff := colDiff
	if absColDiff < 0 {
		absColDiff = -absColDiff
	}
	rowDiff := target.Y - current.Y
	absRowDiff := rowDiff
	if absRowDiff < 0 {
		absRowDiff = -absRowDiff
	}
	horizontalBest, horizontalWorst := West, East
	if colDiff > 0 {
		horizontalBest, horizontalWorst = East, West
	}
	verticalBest, verticalWorst := North, South
	if rowDiff > 0 {
		verticalBest, verticalWorst = South, North
	}
	if absRowDiff > absColDiff {
		// The row difference is bigger, so moving up or down is highest
		// priority.
		dirRanking[0] = verticalBest
		dirRanking[1] = horizontalBest
		dirRanking[2] = horizontalWorst
		dirRanking[3] = verticalWorst
		return
	}
	dirRanking[0] = horizontalBest
	dirRanking[1] = verticalBest
	dirRanking[2] = verticalWorst
	dirRanking[3] = horizontalWorst
}

// Returns true and the destination's index if the grid allows moving from
// current in the given direction to a cell that hasn't been visited.
func isReachableAndUnvisited(g *Grid, current Point, moveDir Direction,
	visited []bool) (bool, int) {
	if g.cells[g.Index(current.X, current.Y)].Walls[moveDir] {
		return false, -1
	}
	dx, dy := moveDir.Delta()
	if !g.InBounds(current.X+dx, current.Y+dy) {
		return false, -1
	}
	// Walls are always removed from both sides, and we already checked that
	// the current cell has no wall in this direction.
	dstIndex := g.Index(current.X+dx, current.Y+dy)
	if visited[dstIndex] {
		return false, -1
	}
	return true, dstIndex
}

func (m *GridMaze) clearSolution() error {
	for i := range m.states {
		// Don't change the cells with an "excluded" state.
		if m.states[i] == stateSolutionPath {
			m.states[i] = stateNormal
		}
	}
	return nil
}

// Highlights (or un-highlights) the path from the start cell to the end cell.
func (m *GridMaze) ShowSolution(show bool) error {
	if !show {
		return m.clearSolution()
	}
	path, e := m.SolutionPath()
	if e != nil {
		return e
	}
	for _, p := range path {
		m.states[m.grid.Index(p.X, p.Y)] = stateSolutionPath
	}
	return nil
}

// Returns the cells along the path from the start cell to the end cell,
// inclusive.
func (m *GridMaze) SolutionPath() ([]Point, error) {
	return FindPath(m.grid, m.Start(), m.End())
}

// Returns the cells along a path of open walls from start to end, inclusive.
// We perform a depth-first search, prioritizing moving in whichever direction
// has the shortest manhattan distance to the target. In a perfect maze this
// is the only such path.
func FindPath(g *Grid, start, end Point) ([]Point, error) {
	e := g.checkBounds(start.X, start.Y)
	if e != nil {
		return nil, fmt.Errorf("Invalid start cell: %w", e)
	}
	e = g.checkBounds(end.X, end.Y)
	if e != nil {
		return nil, fmt.Errorf("Invalid end cell: %w", e)
	}
	startIndex := g.Index(start.X, start.Y)
	endIndex := g.Index(end.X, end.Y)
	visited := make([]bool, g.CellCount())
	// These will be -1 to indicate either uninitialized or the end of the
	// path.
	parentIndices := make([]int, g.CellCount())
	for i := range parentIndices {
		parentIndices[i] = -1
	}

	dfsStack := make([]int, 0, g.CellCount()/2+1)
	dfsStack = append(dfsStack, startIndex)
	visited[startIndex] = true
	var dirRanking [4]Direction
	found := false

DFSLoop:
	for len(dfsStack) != 0 {
		currentIndex := dfsStack[len(dfsStack)-1]
		dfsStack = dfsStack[:len(dfsStack)-1]
		current := g.Coordinate(currentIndex)
		if current == end {
			found = true
			break
		}

		// Follow the path as long as possible, minimizing manhattan distance
		// at each step.
		for {
			setDirRanking(current, end, dirRanking[:])
			moveDst := -1
			for _, d := range dirRanking {
				okMove, dstIndex := isReachableAndUnvisited(g, current, d,
					visited)
				if !okMove {
					continue
				}
				if moveDst == -1 {
					moveDst = dstIndex
					continue
				}
				// We already chose our next step, so add this one to the stack
				// to test later.
				visited[dstIndex] = true
				parentIndices[dstIndex] = currentIndex
				dfsStack = append(dfsStack, dstIndex)
			}
			if moveDst < 0 {
				// Can't make any more moves along this path.
				break
			}
			visited[moveDst] = true
			parentIndices[moveDst] = currentIndex
			currentIndex = moveDst
			current = g.Coordinate(currentIndex)
			if current == end {
				found = true
				break DFSLoop
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("The end cell %s isn't reachable from the "+
			"start cell %s", end, start)
	}

	// Follow the chain of parent indices back from the end.
	var reversed []Point
	for index := endIndex; index >= 0; index = parentIndices[index] {
		reversed = append(reversed, g.Coordinate(index))
	}
	toReturn := make([]Point, len(reversed))
	for i, p := range reversed {
		toReturn[len(reversed)-1-i] = p
	}
	return toReturn, nil
}
