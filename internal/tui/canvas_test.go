package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = colorful.Color{R: 1}
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

func TestCanvas_SizeInLogicalPixels(t *testing.T) {
	t.Parallel()
	c := NewCanvas(80, 24)
	w, h := c.Size()
	assert.Equal(t, 640.0, w)
	assert.Equal(t, 384.0, h)

	c.Resize(-3, 10)
	assert.Zero(t, c.Cols())
	assert.Equal(t, 10, c.Rows())
}

func TestCanvas_FillHalfCell(t *testing.T) {
	t.Parallel()
	c := NewCanvas(4, 2)
	c.FillRect(0, 0, CellW, SubH, red, 1)

	top, bottom := c.Cell(0, 0)
	assert.True(t, top.AlmostEqualRgb(red))
	assert.True(t, bottom.AlmostEqualRgb(black))
	top, _ = c.Cell(1, 0)
	assert.True(t, top.AlmostEqualRgb(black))
}

func TestCanvas_NarrowRectKeepsOneColumn(t *testing.T) {
	t.Parallel()
	c := NewCanvas(4, 2)
	c.FillRect(10, 0, 1, CellH, red, 1)

	top, bottom := c.Cell(1, 0)
	assert.True(t, top.AlmostEqualRgb(red))
	assert.True(t, bottom.AlmostEqualRgb(red))
	for _, col := range []int{0, 2, 3} {
		top, _ := c.Cell(col, 0)
		assert.True(t, top.AlmostEqualRgb(black), "col %d", col)
	}
}

func TestCanvas_AlphaBlends(t *testing.T) {
	t.Parallel()
	c := NewCanvas(2, 1)
	c.FillRect(0, 0, 16, 16, white, 0.5)
	top, _ := c.Cell(0, 0)
	assert.InDelta(t, 0.5, top.R, 1e-9)

	c.FillRect(0, 0, 16, 16, white, 0)
	top2, _ := c.Cell(0, 0)
	assert.Equal(t, top, top2)
}

func TestCanvas_OffscreenFillClipped(t *testing.T) {
	t.Parallel()
	c := NewCanvas(2, 1)
	assert.NotPanics(t, func() {
		c.FillRect(-100, -100, 50, 50, red, 1)
		c.FillRect(1000, 1000, 50, 50, red, 1)
		c.FillRoundRect(-4, -4, 500, 500, 20, red, 1)
	})
}

func TestCanvas_RoundRectSkipsCorners(t *testing.T) {
	t.Parallel()
	c := NewCanvas(4, 2)
	c.FillRoundRect(0, 0, 32, 32, 16, red, 1)

	corner, _ := c.Cell(0, 0)
	assert.True(t, corner.AlmostEqualRgb(black))
	edge, _ := c.Cell(1, 0)
	assert.True(t, edge.AlmostEqualRgb(red))
	_, mid := c.Cell(1, 0)
	assert.True(t, mid.AlmostEqualRgb(red))
}

func TestCanvas_ClearRestoresBackground(t *testing.T) {
	t.Parallel()
	c := NewCanvas(2, 1)
	c.Background = colorful.Color{G: 0.5}
	c.FillRect(0, 0, 16, 16, red, 1)
	c.DrawText(0, 0, "x", white)
	c.Clear()
	top, bottom := c.Cell(0, 0)
	assert.True(t, top.AlmostEqualRgb(c.Background))
	assert.True(t, bottom.AlmostEqualRgb(c.Background))
	assert.Empty(t, c.text)
}

func TestCanvas_TextSize(t *testing.T) {
	t.Parallel()
	c := NewCanvas(10, 2)
	w, h := c.TextSize("Lap 1/3")
	assert.Equal(t, 7*CellW, w)
	assert.Equal(t, CellH, h)
	w, _ = c.TextSize("")
	assert.Zero(t, w)
}

func TestCanvas_FlushWritesHalfBlocksAndText(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(4, 2)

	c := NewCanvas(4, 2)
	c.FillRect(0, 0, 32, 32, red, 1)
	c.DrawText(CellW, CellH, "AB", white)
	c.DrawText(3*CellW, 0, "overflow", white)
	c.DrawText(0, 10*CellH, "offscreen", white)
	c.Flush(screen)
	screen.Show()

	r, _, _, _ := screen.GetContent(0, 0)
	assert.Equal(t, halfRune, r)
	r, _, _, _ = screen.GetContent(1, 1)
	assert.Equal(t, 'A', r)
	r, _, _, _ = screen.GetContent(2, 1)
	assert.Equal(t, 'B', r)
	r, _, _, _ = screen.GetContent(3, 0)
	assert.Equal(t, 'o', r)
	r, _, _, _ = screen.GetContent(0, 1)
	assert.Equal(t, halfRune, r)
}
