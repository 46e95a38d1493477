package raster

import (
	"fmt"

	"github.com/ebzr/turntable/pkg/math"
)

// Attachment identifies a framebuffer attachment slot.
type Attachment int

const (
	// ColorAttachment holds the rendered color output.
	ColorAttachment Attachment = iota
	// DepthAttachment holds per-pixel depth in [0, 1], 1 = far plane.
	DepthAttachment
)

// Framebuffer is a render target: a set of equally-sized attachments.
// It does not own the attached textures; their lifetime is managed by
// whoever created them.
type Framebuffer struct {
	color *Texture
	depth *Texture
}

// NewFramebuffer creates an empty framebuffer.
func NewFramebuffer() *Framebuffer {
	return &Framebuffer{}
}

// Attach binds a texture to the given slot. The depth slot requires a
// FormatDepthFloat texture; attachments must agree in size.
func (fb *Framebuffer) Attach(slot Attachment, tex *Texture) error {
	if tex == nil {
		return fmt.Errorf("attaching nil texture")
	}
	switch slot {
	case DepthAttachment:
		if tex.Format() != FormatDepthFloat {
			return fmt.Errorf("depth attachment requires a depth texture")
		}
		if fb.color != nil && (fb.color.Width() != tex.Width() || fb.color.Height() != tex.Height()) {
			return fmt.Errorf("attachment size %dx%d does not match color %dx%d",
				tex.Width(), tex.Height(), fb.color.Width(), fb.color.Height())
		}
		fb.depth = tex
	case ColorAttachment:
		if tex.Format() == FormatDepthFloat {
			return fmt.Errorf("color attachment requires a color texture")
		}
		if fb.depth != nil && (fb.depth.Width() != tex.Width() || fb.depth.Height() != tex.Height()) {
			return fmt.Errorf("attachment size %dx%d does not match depth %dx%d",
				tex.Width(), tex.Height(), fb.depth.Width(), fb.depth.Height())
		}
		fb.color = tex
	default:
		return fmt.Errorf("unknown attachment slot %d", slot)
	}
	return nil
}

// Color returns the color attachment, or nil.
func (fb *Framebuffer) Color() *Texture { return fb.color }

// Depth returns the depth attachment, or nil.
func (fb *Framebuffer) Depth() *Texture { return fb.depth }

// Size returns the attachment dimensions. A framebuffer with no
// attachments has size 0x0.
func (fb *Framebuffer) Size() (width, height int) {
	if fb.depth != nil {
		return fb.depth.Width(), fb.depth.Height()
	}
	if fb.color != nil {
		return fb.color.Width(), fb.color.Height()
	}
	return 0, 0
}

// Clear resets the color attachment to the given color and the depth
// attachment to the far plane (1.0).
func (fb *Framebuffer) Clear(c math.Vec4) {
	if fb.color != nil && !fb.color.released() {
		w, h := fb.color.Width(), fb.color.Height()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				fb.color.setTexel(x, y, c)
			}
		}
	}
	if fb.depth != nil && !fb.depth.released() {
		fb.depth.SetDepth(1.0)
	}
}

// Release detaches all attachments. Safe to call more than once and on nil.
func (fb *Framebuffer) Release() {
	if fb == nil {
		return
	}
	fb.color = nil
	fb.depth = nil
}
