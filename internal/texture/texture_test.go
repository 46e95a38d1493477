package texture

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ebzr/turntable/internal/raster"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tex.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return path
}

func TestLoadColorDataIsGammaDecoded(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 128, G: 128, B: 128, A: 255})
	path := writePNG(t, img)

	perceptual, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load color: %v", err)
	}
	linear, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load linear: %v", err)
	}

	if perceptual.Format() != raster.FormatSRGB8A8 {
		t.Errorf("color data format: got %v, want FormatSRGB8A8", perceptual.Format())
	}
	if linear.Format() != raster.FormatRGBA8 {
		t.Errorf("linear data format: got %v, want FormatRGBA8", linear.Format())
	}

	// Mid-gray decodes to ~0.216 linear, but stays ~0.502 when read as linear data.
	p := perceptual.Sample(0, 0).X
	l := linear.Sample(0, 0).X
	if p > 0.25 || p < 0.18 {
		t.Errorf("sRGB decode of 128: got %f, want ~0.216", p)
	}
	if l < 0.49 || l > 0.51 {
		t.Errorf("linear read of 128: got %f, want ~0.502", l)
	}
}

func TestLoadGrayscaleLinearUsesR8(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	path := writePNG(t, img)

	tex, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tex.Format() != raster.FormatR8 {
		t.Errorf("grayscale format: got %v, want FormatR8", tex.Format())
	}
	if got := tex.Sample(0, 0).X; got != 1 {
		t.Errorf("white texel: got %f, want 1", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png"), true); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultNormalIsNeutral(t *testing.T) {
	tex, err := DefaultNormal()
	if err != nil {
		t.Fatalf("DefaultNormal: %v", err)
	}
	c := tex.Sample(0.5, 0.5)
	// (128, 128, 255) decodes to roughly (0.5, 0.5, 1): the +Z tangent-space normal.
	if c.X < 0.49 || c.X > 0.51 || c.Y < 0.49 || c.Y > 0.51 || c.Z != 1 {
		t.Errorf("neutral normal texel: got %v", c)
	}
}

func TestDefaultScalarIsWhite(t *testing.T) {
	tex, err := DefaultScalar()
	if err != nil {
		t.Fatalf("DefaultScalar: %v", err)
	}
	if tex.Format() != raster.FormatR8 {
		t.Errorf("format: got %v, want FormatR8", tex.Format())
	}
	if got := tex.Sample(0, 0).X; got != 1 {
		t.Errorf("scalar texel: got %f, want 1", got)
	}
}
