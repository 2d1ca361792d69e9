package scene

import (
	"image"

	"github.com/hajimehoshi/bitmapfont/v4"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Printable ASCII range baked into the atlas.
const (
	AtlasFirst = ' '
	AtlasLast  = '~'
	AtlasCols  = 16
)

// Atlas is a fixed-cell glyph sheet rasterised from a font face. White
// glyphs on transparent, ready for a tinting shader.
type Atlas struct {
	Image *image.NRGBA
	CellW int
	CellH int
}

// DefaultAtlas rasterises the bitmapfont face.
func DefaultAtlas() *Atlas {
	return NewAtlas(bitmapfont.Face)
}

func NewAtlas(face font.Face) *Atlas {
	m := face.Metrics()
	cellH := m.Height.Ceil()
	ascent := m.Ascent.Ceil()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		adv = fixed.I(cellH / 2)
	}
	cellW := adv.Ceil()

	n := int(AtlasLast-AtlasFirst) + 1
	rows := (n + AtlasCols - 1) / AtlasCols
	img := image.NewNRGBA(image.Rect(0, 0, cellW*AtlasCols, cellH*rows))

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for r := AtlasFirst; r <= AtlasLast; r++ {
		i := int(r - AtlasFirst)
		cx, cy := i%AtlasCols, i/AtlasCols
		d.Dot = fixed.P(cx*cellW, cy*cellH+ascent)
		d.DrawString(string(r))
	}
	return &Atlas{Image: img, CellW: cellW, CellH: cellH}
}

// Cell returns the pixel rectangle of r in the atlas.
func (a *Atlas) Cell(r rune) (image.Rectangle, bool) {
	if r < AtlasFirst || r > AtlasLast {
		return image.Rectangle{}, false
	}
	i := int(r - AtlasFirst)
	x, y := (i%AtlasCols)*a.CellW, (i/AtlasCols)*a.CellH
	return image.Rect(x, y, x+a.CellW, y+a.CellH), true
}

// Measure returns the size of a single-line string at scale 1.
func (a *Atlas) Measure(s string) (w, h int) {
	n := 0
	for range s {
		n++
	}
	return n * a.CellW, a.CellH
}
