// Package scene paints a race snapshot onto an abstract drawing surface.
// It has no knowledge of GL or terminals; frontends implement Surface.
package scene

import colorful "github.com/lucasb-eyer/go-colorful"

// Surface is a 2D target in logical pixels, origin top-left, y down.
type Surface interface {
	Size() (w, h float64)
	FillRect(x, y, w, h float64, c colorful.Color, alpha float64)
	// FillRoundRect clamps radius to half the shorter side.
	FillRoundRect(x, y, w, h, radius float64, c colorful.Color, alpha float64)
}

// ClampRadius limits a corner radius so opposite arcs never overlap.
func ClampRadius(r, w, h float64) float64 {
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	if r < 0 {
		r = 0
	}
	return r
}

// TextSurface can also draw single-line text in logical pixels. (x, y) is the
// top-left of the first glyph.
type TextSurface interface {
	Surface
	DrawText(x, y float64, text string, c colorful.Color)
	TextSize(text string) (w, h float64)
}
