package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	colorful "github.com/lucasb-eyer/go-colorful"

	"racer/internal/scene"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Renderer is a scene.TextSurface backed by OpenGL. Every fill is one draw
// of a shared unit quad; the fragment shader cuts the rounded corners.
type Renderer struct {
	rectProg uint32
	quadVAO  uint32
	quadVBO  uint32

	uRect       int32
	uOffset     int32
	uResolution int32
	uRadius     int32
	uColor      int32

	// Font/text rendering.
	atlas        *scene.Atlas
	fontTex      uint32
	textProg     uint32
	textVAO      uint32
	textVBO      uint32
	textURes     int32
	textUFontTex int32
	textBuf      []float32
	TextScale    float32

	// logical size of the current frame
	w, h float64
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(rectVertSrc, rectFragSrc)
	if err != nil {
		return nil, fmt.Errorf("rect program: %w", err)
	}
	r := &Renderer{rectProg: prog, TextScale: HUDTextScale}

	// Unit quad (6 vertices, 2 triangles).
	var vao, vbo uint32
	gl.GenVertexArrays(1, &vao)
	gl.GenBuffers(1, &vbo)
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	r.quadVAO = vao
	r.quadVBO = vbo

	gl.UseProgram(prog)
	r.uRect = gl.GetUniformLocation(prog, gl.Str("uRect\x00"))
	r.uOffset = gl.GetUniformLocation(prog, gl.Str("uOffset\x00"))
	r.uResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.uRadius = gl.GetUniformLocation(prog, gl.Str("uRadius\x00"))
	r.uColor = gl.GetUniformLocation(prog, gl.Str("uColor\x00"))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.textVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{r.quadVAO, r.textVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{r.rectProg, r.textProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if r.fontTex != 0 {
		gl.DeleteTextures(1, &r.fontTex)
	}
}

// BeginFrame clears the framebuffer. w, h is the logical window size the
// scene is laid out in; fbW, fbH the physical framebuffer.
func (r *Renderer) BeginFrame(fbW, fbH int, w, h float64) {
	r.w, r.h = w, h
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(r.rectProg)
	gl.BindVertexArray(r.quadVAO)
	gl.Uniform2f(r.uResolution, float32(w), float32(h))
	gl.Uniform2f(r.uOffset, 0, 0)
}

// SetOffset translates subsequent fills, used for screen shake.
func (r *Renderer) SetOffset(x, y float64) {
	gl.UseProgram(r.rectProg)
	gl.Uniform2f(r.uOffset, float32(x), float32(y))
}

func (r *Renderer) Size() (float64, float64) { return r.w, r.h }

func (r *Renderer) FillRect(x, y, w, h float64, c colorful.Color, alpha float64) {
	r.fill(x, y, w, h, 0, c, alpha)
}

func (r *Renderer) FillRoundRect(x, y, w, h, radius float64, c colorful.Color, alpha float64) {
	r.fill(x, y, w, h, scene.ClampRadius(radius, w, h), c, alpha)
}

func (r *Renderer) fill(x, y, w, h, radius float64, c colorful.Color, alpha float64) {
	if w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	c = c.Clamped()
	gl.UseProgram(r.rectProg)
	gl.BindVertexArray(r.quadVAO)
	gl.Uniform4f(r.uRect, float32(x), float32(y), float32(w), float32(h))
	gl.Uniform1f(r.uRadius, float32(radius))
	gl.Uniform4f(r.uColor, float32(c.R), float32(c.G), float32(c.B), float32(alpha))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// EndFrame flushes queued text on top of the scene.
func (r *Renderer) EndFrame() {
	r.FlushText()
	gl.BindVertexArray(0)
}
