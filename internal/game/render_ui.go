package game

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	colorful "github.com/lucasb-eyer/go-colorful"

	"racer/internal/scene"
)

// InitFont uploads the glyph atlas and sets up the text rendering pipeline.
func (r *Renderer) InitFont(atlas *scene.Atlas) error {
	if atlas == nil || atlas.Image == nil {
		return errors.New("font atlas is empty")
	}
	b := atlas.Image.Bounds()

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(b.Dx()), int32(b.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(atlas.Image.Pix))
	gl.ActiveTexture(gl.TEXTURE0)
	r.fontTex = tex
	r.atlas = atlas

	prog, err := linkProgram(textVertSrc, textFragSrc)
	if err != nil {
		return fmt.Errorf("text program: %w", err)
	}
	r.textProg = prog
	gl.UseProgram(prog)
	r.textURes = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.textUFontTex = gl.GetUniformLocation(prog, gl.Str("uFontTex\x00"))
	gl.Uniform1i(r.textUFontTex, 2) // texture unit 2

	// Per-vertex pos(2) + uv(2) + color(4) = 8 floats.
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	stride := int32(8 * 4)
	gl.BufferData(gl.ARRAY_BUFFER, MaxTextGlyphs*6*int(stride), nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0) // aPos
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1) // aUV
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2) // aColor
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(4*4))

	r.textVAO = vao
	r.textVBO = vbo
	gl.BindVertexArray(0)
	return nil
}

// drawChar queues a single glyph quad in logical pixel space.
func (r *Renderer) drawChar(ch rune, sx, sy float32, cr, cg, cb float32) {
	cell, ok := r.atlas.Cell(ch)
	if !ok {
		return
	}
	b := r.atlas.Image.Bounds()
	u0 := float32(cell.Min.X) / float32(b.Dx())
	v0 := float32(cell.Min.Y) / float32(b.Dy())
	u1 := float32(cell.Max.X) / float32(b.Dx())
	v1 := float32(cell.Max.Y) / float32(b.Dy())

	w := float32(r.atlas.CellW) * r.TextScale
	h := float32(r.atlas.CellH) * r.TextScale

	// Two triangles: TL, TR, BL then TR, BR, BL.
	r.textBuf = append(r.textBuf,
		sx, sy, u0, v0, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
		sx+w, sy, u1, v0, cr, cg, cb, 1,
		sx+w, sy+h, u1, v1, cr, cg, cb, 1,
		sx, sy+h, u0, v1, cr, cg, cb, 1,
	)
}

// DrawText queues a single line of text with its top-left at (x, y).
func (r *Renderer) DrawText(x, y float64, text string, c colorful.Color) {
	if r.atlas == nil {
		return
	}
	c = c.Clamped()
	advance := float32(r.atlas.CellW) * r.TextScale
	sx, sy := float32(x), float32(y)
	for _, ch := range text {
		r.drawChar(ch, sx, sy, float32(c.R), float32(c.G), float32(c.B))
		sx += advance
	}
}

func (r *Renderer) TextSize(text string) (float64, float64) {
	if r.atlas == nil {
		return 0, 0
	}
	w, h := r.atlas.Measure(text)
	return float64(w) * float64(r.TextScale), float64(h) * float64(r.TextScale)
}

// FlushText draws all buffered text quads and clears the buffer.
func (r *Renderer) FlushText() {
	if len(r.textBuf) == 0 || r.textProg == 0 {
		return
	}
	const floatsPerGlyph = 6 * 8
	if limit := MaxTextGlyphs * floatsPerGlyph; len(r.textBuf) > limit {
		r.textBuf = r.textBuf[:limit]
	}

	gl.UseProgram(r.textProg)
	gl.Uniform2f(r.textURes, float32(r.w), float32(r.h))
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.fontTex)

	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.textBuf)*4, gl.Ptr(r.textBuf))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.textBuf)/8))

	gl.ActiveTexture(gl.TEXTURE0)
	r.textBuf = r.textBuf[:0]
}
