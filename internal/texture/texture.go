// Package texture loads texture images from disk into raster textures and
// provides the neutral defaults used when a scene has no authored map.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/ebzr/turntable/internal/raster"
	"github.com/ebzr/turntable/pkg/tga"
)

// Load reads an image file into a texture. colorData selects the
// interpretation: true for perceptual (gamma-encoded) base-color maps,
// false for linear data maps (normal, metallic, roughness). Grayscale
// linear images load as single-channel R8.
func Load(path string, colorData bool) (*raster.Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = tga.Decode(data)
	} else {
		img, _, err = image.Decode(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return FromImage(img, colorData)
}

// FromImage converts a decoded image into a raster texture.
func FromImage(img image.Image, colorData bool) (*raster.Texture, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok && !colorData {
		tex, err := raster.NewTexture(raster.FormatR8, w, h)
		if err != nil {
			return nil, err
		}
		pix := make([]byte, w*h)
		for y := 0; y < h; y++ {
			copy(pix[y*w:], gray.Pix[y*gray.Stride:y*gray.Stride+w])
		}
		if err := tex.SetPixels(pix); err != nil {
			return nil, err
		}
		return tex, nil
	}

	format := raster.FormatRGBA8
	if colorData {
		format = raster.FormatSRGB8A8
	}
	tex, err := raster.NewTexture(format, w, h)
	if err != nil {
		return nil, err
	}

	pix := make([]byte, w*h*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			pix[i] = uint8(r >> 8)
			pix[i+1] = uint8(g >> 8)
			pix[i+2] = uint8(b >> 8)
			pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}
	if err := tex.SetPixels(pix); err != nil {
		return nil, err
	}
	return tex, nil
}

// DefaultNormal returns a 1x1 neutral normal map (128, 128, 255):
// the unperturbed surface normal.
func DefaultNormal() (*raster.Texture, error) {
	tex, err := raster.NewTexture(raster.FormatRGBA8, 1, 1)
	if err != nil {
		return nil, err
	}
	if err := tex.SetPixels([]byte{128, 128, 255, 255}); err != nil {
		return nil, err
	}
	return tex, nil
}

// DefaultScalar returns a 1x1 white single-channel map, the neutral
// multiplier for metallic and roughness channels.
func DefaultScalar() (*raster.Texture, error) {
	tex, err := raster.NewTexture(raster.FormatR8, 1, 1)
	if err != nil {
		return nil, err
	}
	if err := tex.SetPixels([]byte{255}); err != nil {
		return nil, err
	}
	return tex, nil
}
