package raster

import (
	"testing"

	"github.com/ebzr/turntable/pkg/math"
)

// clipVertex is a test attribute: a position already in clip space.
type clipVertex struct {
	pos   math.Vec3
	value float32
}

func passthroughVertex(_ any, attribute any, out []float32) math.Vec4 {
	v := attribute.(*clipVertex)
	out[0] = v.value
	return math.Vec4FromVec3(v.pos, 1)
}

func flatFragment(_ any, in []float32) math.Vec4 {
	return math.Vec4{X: in[0], Y: in[0], Z: in[0], W: 1}
}

func newTarget(t *testing.T, w, h int) *Framebuffer {
	t.Helper()
	color, err := NewTexture(FormatRGBA8, w, h)
	if err != nil {
		t.Fatal(err)
	}
	depth, err := NewTexture(FormatDepthFloat, w, h)
	if err != nil {
		t.Fatal(err)
	}
	fb := NewFramebuffer()
	if err := fb.Attach(ColorAttachment, color); err != nil {
		t.Fatal(err)
	}
	if err := fb.Attach(DepthAttachment, depth); err != nil {
		t.Fatal(err)
	}
	fb.Clear(math.Vec4{})
	return fb
}

func drawTestTriangle(p *Pipeline, fb *Framebuffer, z float32, value float32) {
	// Counter-clockwise, covers the lower-left half of the viewport.
	attrs := [3]any{
		&clipVertex{pos: math.Vec3{X: -1, Y: -1, Z: z}, value: value},
		&clipVertex{pos: math.Vec3{X: 1, Y: -1, Z: z}, value: value},
		&clipVertex{pos: math.Vec3{X: -1, Y: 1, Z: z}, value: value},
	}
	p.DrawTriangle(fb, nil, attrs)
}

func TestDrawTriangleWritesColorAndDepth(t *testing.T) {
	fb := newTarget(t, 8, 8)
	p := &Pipeline{VertexShader: passthroughVertex, FragmentShader: flatFragment, VaryingCount: 1}
	p.SetViewport(0, 0, 8, 8)

	drawTestTriangle(p, fb, 0, 1)

	// A pixel near the lower-left corner is covered.
	if got := fb.Color().texelAt(1, 1).X; got != 1 {
		t.Errorf("covered pixel color: got %f, want 1", got)
	}
	if got := fb.Depth().depthAt(1, 1); got != 0.5 {
		t.Errorf("covered pixel depth: got %f, want 0.5 (ndc z 0)", got)
	}
	// The upper-right corner stays clear.
	if got := fb.Color().texelAt(7, 7).X; got != 0 {
		t.Errorf("uncovered pixel should stay clear, got %f", got)
	}
	if got := fb.Depth().depthAt(7, 7); got != 1 {
		t.Errorf("uncovered depth should stay far, got %f", got)
	}
}

func TestDepthTestRejectsFartherFragments(t *testing.T) {
	fb := newTarget(t, 8, 8)
	p := &Pipeline{VertexShader: passthroughVertex, FragmentShader: flatFragment, VaryingCount: 1}
	p.SetViewport(0, 0, 8, 8)

	drawTestTriangle(p, fb, -0.5, 1) // near, white
	drawTestTriangle(p, fb, 0.5, 0)  // far, black: must lose

	if got := fb.Color().texelAt(1, 1).X; got != 1 {
		t.Errorf("nearer fragment should survive, got %f", got)
	}

	drawTestTriangle(p, fb, -0.9, 0) // nearer still: must win
	if got := fb.Color().texelAt(1, 1).X; got != 0 {
		t.Errorf("nearest fragment should win, got %f", got)
	}
}

func TestBackfaceCulling(t *testing.T) {
	fb := newTarget(t, 8, 8)
	p := &Pipeline{VertexShader: passthroughVertex, FragmentShader: flatFragment, VaryingCount: 1}
	p.SetViewport(0, 0, 8, 8)

	// Clockwise winding: culled.
	attrs := [3]any{
		&clipVertex{pos: math.Vec3{X: -1, Y: -1}, value: 1},
		&clipVertex{pos: math.Vec3{X: -1, Y: 1}, value: 1},
		&clipVertex{pos: math.Vec3{X: 1, Y: -1}, value: 1},
	}
	p.DrawTriangle(fb, nil, attrs)

	if got := fb.Color().texelAt(1, 1).X; got != 0 {
		t.Errorf("clockwise triangle should be culled, got %f", got)
	}
}

func TestBehindCameraRejected(t *testing.T) {
	fb := newTarget(t, 8, 8)
	p := &Pipeline{VertexShader: passthroughVertex, FragmentShader: flatFragment, VaryingCount: 1}
	p.SetViewport(0, 0, 8, 8)

	behind := func(_ any, attribute any, out []float32) math.Vec4 {
		v := attribute.(*clipVertex)
		out[0] = v.value
		return math.Vec4FromVec3(v.pos, -1) // negative w: behind the camera
	}
	p.VertexShader = behind
	drawTestTriangle(p, fb, 0, 1)

	if got := fb.Color().texelAt(1, 1).X; got != 0 {
		t.Errorf("triangle behind the camera should be rejected, got %f", got)
	}
}

func TestDepthOnlyPass(t *testing.T) {
	depth, err := NewTexture(FormatDepthFloat, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	fb := NewFramebuffer()
	if err := fb.Attach(DepthAttachment, depth); err != nil {
		t.Fatal(err)
	}
	fb.Clear(math.Vec4{})

	// No fragment shader, no color attachment: depth is still written.
	p := &Pipeline{VertexShader: passthroughVertex, VaryingCount: 1}
	p.SetViewport(0, 0, 8, 8)
	drawTestTriangle(p, fb, 0, 1)

	if got := depth.depthAt(1, 1); got != 0.5 {
		t.Errorf("depth-only pass should write depth, got %f", got)
	}
}

func TestAttachSizeMismatch(t *testing.T) {
	color, err := NewTexture(FormatRGBA8, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	depth, err := NewTexture(FormatDepthFloat, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	fb := NewFramebuffer()
	if err := fb.Attach(ColorAttachment, color); err != nil {
		t.Fatal(err)
	}
	if err := fb.Attach(DepthAttachment, depth); err == nil {
		t.Error("mismatched attachment sizes should be rejected")
	}
}
