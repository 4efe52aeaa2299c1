package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer(t *testing.T, w, h, stepsPerTick int) *viewer {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	v := &viewer{
		screen:       screen,
		width:        w,
		height:       h,
		stepsPerTick: stepsPerTick,
	}
	require.NoError(t, v.reset(4))
	return v
}

func TestViewerRunsToSolution(t *testing.T) {
	v := newTestViewer(t, 7, 5, 3)
	ticks := 0
	for !v.session.Solved() {
		require.NoError(t, v.advance())
		require.NoError(t, v.draw())
		ticks++
		require.LessOrEqual(t, ticks, 35, "generation didn't finish")
	}
	assert.True(t, v.session.Generator.Done())
	assert.True(t, v.highlight[0])
	assert.True(t, v.highlight[len(v.highlight)-1])
	assert.Equal(t, 34, v.session.Grid.OpenWallCount())

	// Nothing changes once it's solved.
	steps := v.session.Generator.Steps()
	require.NoError(t, v.advance())
	assert.Equal(t, steps, v.session.Generator.Steps())
}

func TestViewerPause(t *testing.T) {
	v := newTestViewer(t, 4, 4, 1)
	v.paused = true
	require.NoError(t, v.advance())
	assert.Equal(t, 0, v.session.Generator.Steps())
	v.paused = false
	require.NoError(t, v.advance())
	assert.Equal(t, 1, v.session.Generator.Steps())
	require.NoError(t, v.draw())
	// The root and the newly carved cell are both on the path.
	count := 0
	for _, h := range v.highlight {
		if h {
			count++
		}
	}
	assert.Equal(t, 2, count)
}

func TestViewerReset(t *testing.T) {
	v := newTestViewer(t, 3, 3, 100)
	require.NoError(t, v.advance())
	require.True(t, v.session.Solved())
	require.NoError(t, v.reset(99))
	assert.False(t, v.session.Solved())
	assert.Equal(t, int64(99), v.session.Seed)
	assert.Equal(t, 0, v.session.Grid.OpenWallCount())
}
