package raster

import (
	gomath "math"

	"github.com/ebzr/turntable/pkg/math"
)

// MaxVaryings is the per-vertex varying budget shared by all shaders.
const MaxVaryings = 16

// VertexShader transforms one vertex. It reads the draw call's uniform
// block and one vertex attribute record, writes up to VaryingCount floats
// into out, and returns the clip-space position.
type VertexShader func(uniform any, attribute any, out []float32) math.Vec4

// FragmentShader shades one fragment from the uniform block and the
// perspective-correct interpolated varyings, returning linear RGBA.
type FragmentShader func(uniform any, in []float32) math.Vec4

// Pipeline holds the fixed-function and programmable state for triangle
// drawing. It is an explicit value: two passes use two pipelines rather
// than mutating shared globals.
type Pipeline struct {
	VertexShader   VertexShader
	FragmentShader FragmentShader
	// VaryingCount is the number of floats the vertex shader writes.
	VaryingCount int

	viewportX, viewportY          int
	viewportWidth, viewportHeight int
}

// SetViewport sets the window-space rectangle that NDC maps onto.
func (p *Pipeline) SetViewport(x, y, width, height int) {
	p.viewportX = x
	p.viewportY = y
	p.viewportWidth = width
	p.viewportHeight = height
}

// windowVertex is a vertex after the perspective divide and viewport
// transform. The window origin is the bottom-left corner.
type windowVertex struct {
	x, y     float32
	depth    float32 // [0, 1], 1 = far
	invW     float32 // 1 / clip w, for perspective-correct interpolation
	varyings [MaxVaryings]float32
}

// DrawTriangle rasterizes one triangle into fb. It is synchronous: when it
// returns, every fragment the triangle covers has been resolved. Triangles
// with any vertex behind the near plane are rejected whole rather than
// clipped; the driver keeps scene geometry inside the frustum.
func (p *Pipeline) DrawTriangle(fb *Framebuffer, uniform any, attributes [3]any) {
	var wv [3]windowVertex
	for i := 0; i < 3; i++ {
		clip := p.VertexShader(uniform, attributes[i], wv[i].varyings[:p.VaryingCount])
		if clip.W <= 0 {
			return
		}
		invW := 1.0 / clip.W
		ndcX := clip.X * invW
		ndcY := clip.Y * invW
		ndcZ := clip.Z * invW

		wv[i].x = (ndcX + 1) * 0.5 * float32(p.viewportWidth) + float32(p.viewportX)
		wv[i].y = (ndcY + 1) * 0.5 * float32(p.viewportHeight) + float32(p.viewportY)
		wv[i].depth = (ndcZ + 1) * 0.5
		wv[i].invW = invW
	}

	// Back-face culling: counter-clockwise winding in window space is
	// front-facing.
	area := (wv[1].x-wv[0].x)*(wv[2].y-wv[0].y) - (wv[1].y-wv[0].y)*(wv[2].x-wv[0].x)
	if area <= 0 {
		return
	}

	fbWidth, fbHeight := fb.Size()
	minX := clampInt(int(gomath.Floor(float64(min3(wv[0].x, wv[1].x, wv[2].x)))), 0, fbWidth-1)
	maxX := clampInt(int(gomath.Ceil(float64(max3(wv[0].x, wv[1].x, wv[2].x)))), 0, fbWidth-1)
	minY := clampInt(int(gomath.Floor(float64(min3(wv[0].y, wv[1].y, wv[2].y)))), 0, fbHeight-1)
	maxY := clampInt(int(gomath.Ceil(float64(max3(wv[0].y, wv[1].y, wv[2].y)))), 0, fbHeight-1)

	depthTex := fb.Depth()
	colorTex := fb.Color()

	var varyings [MaxVaryings]float32
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			py := float32(y) + 0.5

			b0 := ((wv[1].x-px)*(wv[2].y-py) - (wv[1].y-py)*(wv[2].x-px)) / area
			b1 := ((wv[2].x-px)*(wv[0].y-py) - (wv[2].y-py)*(wv[0].x-px)) / area
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}

			// Depth interpolates linearly in window space.
			depth := b0*wv[0].depth + b1*wv[1].depth + b2*wv[2].depth
			if depthTex != nil {
				if depth >= depthTex.depthAt(x, y) {
					continue
				}
				depthTex.setDepthAt(x, y, depth)
			}

			if colorTex == nil || p.FragmentShader == nil {
				continue
			}

			// Perspective-correct varying interpolation.
			w0 := b0 * wv[0].invW
			w1 := b1 * wv[1].invW
			w2 := b2 * wv[2].invW
			norm := 1.0 / (w0 + w1 + w2)
			for i := 0; i < p.VaryingCount; i++ {
				varyings[i] = (w0*wv[0].varyings[i] + w1*wv[1].varyings[i] + w2*wv[2].varyings[i]) * norm
			}

			c := p.FragmentShader(uniform, varyings[:p.VaryingCount])
			colorTex.setTexel(x, y, math.Vec4{
				X: clamp01(c.X),
				Y: clamp01(c.Y),
				Z: clamp01(c.Z),
				W: clamp01(c.W),
			})
		}
	}
}

func min3(a, b, c float32) float32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c float32) float32 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
