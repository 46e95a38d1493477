// Package render owns the per-run render targets and the per-frame
// rendering path: transform building, uniform assembly, and the two-pass
// triangle walk.
package render

import (
	"fmt"

	"github.com/ebzr/turntable/internal/raster"
)

// Targets holds the two framebuffers a run renders into: the shadow
// depth target and the color frame target. Attachment dimensions never
// change during a run.
type Targets struct {
	Shadow *raster.Framebuffer
	Frame  *raster.Framebuffer

	shadowMap   *raster.Texture
	colorBuffer *raster.Texture
	depthBuffer *raster.Texture
}

// NewTargets allocates the render targets. shadowSize 1 yields the
// placeholder shadow map, seeded with depth 1.0 so every visibility
// lookup reads "fully lit". Larger sizes allocate a real shadow map for
// the depth pre-pass. On any failure everything allocated so far is
// released.
func NewTargets(shadowSize, width, height int) (*Targets, error) {
	t := &Targets{}

	var err error
	t.shadowMap, err = raster.NewTexture(raster.FormatDepthFloat, shadowSize, shadowSize)
	if err != nil {
		return nil, fmt.Errorf("shadow map: %w", err)
	}
	t.shadowMap.SetDepth(1.0)

	t.Shadow = raster.NewFramebuffer()
	if err := t.Shadow.Attach(raster.DepthAttachment, t.shadowMap); err != nil {
		t.Teardown()
		return nil, fmt.Errorf("shadow target: %w", err)
	}

	t.colorBuffer, err = raster.NewTexture(raster.FormatSRGB8A8, width, height)
	if err != nil {
		t.Teardown()
		return nil, fmt.Errorf("color buffer: %w", err)
	}
	t.depthBuffer, err = raster.NewTexture(raster.FormatDepthFloat, width, height)
	if err != nil {
		t.Teardown()
		return nil, fmt.Errorf("depth buffer: %w", err)
	}

	t.Frame = raster.NewFramebuffer()
	if err := t.Frame.Attach(raster.ColorAttachment, t.colorBuffer); err != nil {
		t.Teardown()
		return nil, fmt.Errorf("frame target: %w", err)
	}
	if err := t.Frame.Attach(raster.DepthAttachment, t.depthBuffer); err != nil {
		t.Teardown()
		return nil, fmt.Errorf("frame target: %w", err)
	}

	return t, nil
}

// ShadowMap returns the shadow depth texture.
func (t *Targets) ShadowMap() *raster.Texture { return t.shadowMap }

// ColorBuffer returns the color output texture.
func (t *Targets) ColorBuffer() *raster.Texture { return t.colorBuffer }

// Teardown releases every attachment and framebuffer. Safe to call more
// than once, on nil, and on partially constructed targets.
func (t *Targets) Teardown() {
	if t == nil {
		return
	}
	t.shadowMap.Release()
	t.colorBuffer.Release()
	t.depthBuffer.Release()
	t.Shadow.Release()
	t.Frame.Release()
}
