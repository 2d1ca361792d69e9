package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Logical pixels per terminal cell. Each cell holds two square-ish
// sub-pixels stacked vertically, drawn with an upper half block.
const (
	CellW    = 8.0
	CellH    = 16.0
	SubH     = CellH / 2
	halfRune = '▀'
)

type textCell struct {
	r  rune
	fg colorful.Color
}

// Canvas rasterises scene fills into a grid of half-block sub-pixels and
// implements scene.TextSurface.
type Canvas struct {
	cols, rows int
	px         []colorful.Color // cols × rows*2
	text       map[int]textCell // cell index → glyph
	Background colorful.Color
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the grid when the terminal size changes.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	if cols == c.cols && rows == c.rows && c.px != nil {
		return
	}
	c.cols, c.rows = cols, rows
	c.px = make([]colorful.Color, cols*rows*2)
	c.Clear()
}

func (c *Canvas) Clear() {
	for i := range c.px {
		c.px[i] = c.Background
	}
	c.text = make(map[int]textCell)
}

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols) * CellW, float64(c.rows) * CellH
}

// span maps [a, a+n) in logical pixels to sub-pixel indices whose centres
// fall inside it. Spans thinner than one sub-pixel still cover the one
// under their midpoint.
func span(a, n, unit float64, limit int) (lo, hi int) {
	lo = int(math.Ceil(a/unit - 0.5))
	hi = int(math.Ceil((a+n)/unit - 0.5))
	if hi <= lo {
		lo = int(math.Floor((a + n/2) / unit))
		hi = lo + 1
	}
	if lo < 0 {
		lo = 0
	}
	if hi > limit {
		hi = limit
	}
	return lo, hi
}

func (c *Canvas) FillRect(x, y, w, h float64, col colorful.Color, alpha float64) {
	c.fill(x, y, w, h, 0, col, alpha)
}

func (c *Canvas) FillRoundRect(x, y, w, h, radius float64, col colorful.Color, alpha float64) {
	c.fill(x, y, w, h, radius, col, alpha)
}

func (c *Canvas) fill(x, y, w, h, radius float64, col colorful.Color, alpha float64) {
	if w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	alpha = math.Min(alpha, 1)
	x0, x1 := span(x, w, CellW, c.cols)
	y0, y1 := span(y, h, SubH, c.rows*2)
	r := math.Min(radius, math.Min(w, h)/2)
	for sy := y0; sy < y1; sy++ {
		for sx := x0; sx < x1; sx++ {
			if r > 0 && !insideRounded((float64(sx)+0.5)*CellW, (float64(sy)+0.5)*SubH, x, y, w, h, r) {
				continue
			}
			i := sy*c.cols + sx
			c.px[i] = c.px[i].BlendRgb(col, alpha)
		}
	}
}

// insideRounded tests a point against a rounded box.
func insideRounded(px, py, x, y, w, h, r float64) bool {
	qx := math.Abs(px-(x+w/2)) - w/2 + r
	qy := math.Abs(py-(y+h/2)) - h/2 + r
	d := math.Hypot(math.Max(qx, 0), math.Max(qy, 0)) + math.Min(math.Max(qx, qy), 0) - r
	return d <= 0
}

// DrawText places a line of text on the cell grid. Glyphs outside the grid
// are dropped.
func (c *Canvas) DrawText(x, y float64, s string, fg colorful.Color) {
	row := int(math.Round(y / CellH))
	col := int(math.Round(x / CellW))
	if row < 0 || row >= c.rows {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.cols {
			c.text[row*c.cols+col] = textCell{r: r, fg: fg}
		}
		col++
	}
}

func (c *Canvas) TextSize(s string) (float64, float64) {
	n := 0
	for range s {
		n++
	}
	return float64(n) * CellW, CellH
}

// Cell returns the top and bottom sub-pixel colours of a cell.
func (c *Canvas) Cell(col, row int) (top, bottom colorful.Color) {
	i := row*2*c.cols + col
	return c.px[i], c.px[i+c.cols]
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Flush writes the grid to screen. Text cells take the average of their two
// sub-pixels as background.
func (c *Canvas) Flush(screen tcell.Screen) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			top, bottom := c.Cell(col, row)
			if t, ok := c.text[row*c.cols+col]; ok {
				bg := top.BlendRgb(bottom, 0.5)
				st := tcell.StyleDefault.Foreground(toTcell(t.fg)).Background(toTcell(bg))
				screen.SetContent(col, row, t.r, nil, st)
				continue
			}
			st := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			screen.SetContent(col, row, halfRune, nil, st)
		}
	}
}
