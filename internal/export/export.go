// Package export writes rendered frames to disk as a numbered image
// sequence.
package export

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"

	"github.com/ebzr/turntable/internal/raster"
	"github.com/ebzr/turntable/pkg/tga"
)

// Sequence names the frames of one animation run: Dir/Prefix-%03d.Format.
type Sequence struct {
	Dir    string
	Prefix string
	// Format is the encoder selector: "png", "tga" or "bmp".
	Format string
	// Flip converts the renderer's bottom-up rows to the top-down image
	// convention. On for every authored scene.
	Flip bool
}

// FramePath returns the file path for frame index i.
func (s *Sequence) FramePath(i int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%s-%03d.%s", s.Prefix, i, s.Format))
}

// SaveFrame encodes the texture as frame i of the sequence. Encoding is
// deterministic: the same texels always produce the same bytes.
func (s *Sequence) SaveFrame(tex *raster.Texture, i int) error {
	img := tex.ToImage(s.Flip)

	switch s.Format {
	case "png", "tga", "bmp":
	default:
		return fmt.Errorf("unsupported image format %q", s.Format)
	}

	path := s.FramePath(i)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating frame file: %w", err)
	}

	switch s.Format {
	case "tga":
		err = tga.Encode(f, img)
	case "png":
		err = png.Encode(f, img)
	case "bmp":
		err = bmp.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
