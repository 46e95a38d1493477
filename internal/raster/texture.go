// Package raster implements the software rasterization backend: textures,
// framebuffers, and a programmable triangle pipeline.
package raster

import (
	"fmt"
	"image"
	"image/color"
	gomath "math"

	"github.com/ebzr/turntable/pkg/math"
)

// Format enumerates texel storage formats.
type Format int

const (
	// FormatRGBA8 is 8-bit-per-channel color, linear interpretation.
	FormatRGBA8 Format = iota
	// FormatSRGB8A8 is 8-bit-per-channel color with gamma (sRGB) encoding.
	// Texels are converted to linear values on upload and back on readback.
	FormatSRGB8A8
	// FormatR8 is single-channel 8-bit, linear interpretation.
	FormatR8
	// FormatDepthFloat is a single float32 depth channel.
	FormatDepthFloat
)

// channels returns the number of stored float channels per texel.
func (f Format) channels() int {
	switch f {
	case FormatR8, FormatDepthFloat:
		return 1
	default:
		return 4
	}
}

// Texture is a 2D texel array. Color formats store linear float values
// internally regardless of the upload encoding.
type Texture struct {
	format Format
	width  int
	height int
	texels []float32
}

// NewTexture allocates a texture of the given format and dimensions.
func NewTexture(format Format, width, height int) (*Texture, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	return &Texture{
		format: format,
		width:  width,
		height: height,
		texels: make([]float32, width*height*format.channels()),
	}, nil
}

// Format returns the texel format.
func (t *Texture) Format() Format { return t.format }

// Width returns the texture width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *Texture) Height() int { return t.height }

// Release frees the texel storage. Safe to call more than once and on nil.
func (t *Texture) Release() {
	if t == nil {
		return
	}
	t.texels = nil
}

// released reports whether the texture storage has been freed.
func (t *Texture) released() bool { return t.texels == nil }

// SetPixels uploads 8-bit texel data. The slice length must be
// width*height*channels with channels = 4 for color formats and 1 for R8.
// Input rows run top to bottom (image convention); storage runs bottom to
// top so that sampling and render-target writes share one origin. For
// FormatSRGB8A8 the color channels are converted from gamma to linear;
// alpha stays linear.
func (t *Texture) SetPixels(data []byte) error {
	if t.format == FormatDepthFloat {
		return fmt.Errorf("SetPixels on depth texture (use SetDepth)")
	}
	ch := t.format.channels()
	if len(data) != t.width*t.height*ch {
		return fmt.Errorf("pixel data size mismatch: expected %d, got %d", t.width*t.height*ch, len(data))
	}
	rowLen := t.width * ch
	for row := 0; row < t.height; row++ {
		src := data[row*rowLen : (row+1)*rowLen]
		dst := t.texels[(t.height-1-row)*rowLen:]
		for i, b := range src {
			v := float32(b) / 255.0
			if t.format == FormatSRGB8A8 && i%4 != 3 {
				v = srgbToLinear(v)
			}
			dst[i] = v
		}
	}
	return nil
}

// SetDepth fills a depth texture with a constant value.
func (t *Texture) SetDepth(value float32) error {
	if t.format != FormatDepthFloat {
		return fmt.Errorf("SetDepth on non-depth texture")
	}
	for i := range t.texels {
		t.texels[i] = value
	}
	return nil
}

// Sample fetches the texel nearest to (u, v), with coordinates clamped to
// [0, 1]. v = 0 addresses the bottom row. Color results are linear; R8 and
// depth values are broadcast to the first three channels with alpha 1.
func (t *Texture) Sample(u, v float32) math.Vec4 {
	x := int(clamp01(u) * float32(t.width-1))
	y := int(clamp01(v) * float32(t.height-1))
	return t.texelAt(x, y)
}

func (t *Texture) texelAt(x, y int) math.Vec4 {
	i := (y*t.width + x) * t.format.channels()
	if t.format.channels() == 1 {
		r := t.texels[i]
		return math.Vec4{X: r, Y: r, Z: r, W: 1}
	}
	return math.Vec4{X: t.texels[i], Y: t.texels[i+1], Z: t.texels[i+2], W: t.texels[i+3]}
}

func (t *Texture) setTexel(x, y int, c math.Vec4) {
	i := (y*t.width + x) * t.format.channels()
	if t.format.channels() == 1 {
		t.texels[i] = c.X
		return
	}
	t.texels[i] = c.X
	t.texels[i+1] = c.Y
	t.texels[i+2] = c.Z
	t.texels[i+3] = c.W
}

func (t *Texture) depthAt(x, y int) float32 {
	return t.texels[y*t.width+x]
}

func (t *Texture) setDepthAt(x, y int, d float32) {
	t.texels[y*t.width+x] = d
}

// ToImage reads the texture back as an 8-bit RGBA image. FormatSRGB8A8
// values are re-encoded from linear to gamma. When flip is true rows are
// reversed, converting the bottom-up texel storage to the image convention
// of a top-left origin.
func (t *Texture) ToImage(flip bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		destY := y
		if flip {
			destY = t.height - 1 - y
		}
		for x := 0; x < t.width; x++ {
			c := t.texelAt(x, y)
			r, g, b := c.X, c.Y, c.Z
			if t.format == FormatSRGB8A8 {
				r, g, b = linearToSRGB(r), linearToSRGB(g), linearToSRGB(b)
			}
			img.SetRGBA(x, destY, color.RGBA{
				R: floatToByte(r),
				G: floatToByte(g),
				B: floatToByte(b),
				A: floatToByte(c.W),
			})
		}
	}
	return img
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func floatToByte(v float32) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

// srgbToLinear converts a gamma-encoded channel to linear.
func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return float32(gomath.Pow(float64(v+0.055)/1.055, 2.4))
}

// linearToSRGB converts a linear channel to gamma encoding.
func linearToSRGB(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return float32(1.055*gomath.Pow(float64(v), 1.0/2.4) - 0.055)
}
