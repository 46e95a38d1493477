// Package tga decodes and encodes Truevision TGA images.
//
// Decoding supports uncompressed true-color (type 2) and RLE compressed
// (type 10) files, the formats commonly produced by texture authoring tools.
// Encoding writes uncompressed true-color output.
package tga

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// TGA image type constants.
const (
	TypeUncompressed = 2  // Uncompressed true-color
	TypeRLE          = 10 // RLE compressed true-color
)

// Decode decodes a TGA image from raw file data.
func Decode(data []byte) (image.Image, error) {
	if len(data) < 18 {
		return nil, fmt.Errorf("TGA data too short")
	}

	// TGA header
	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	// colorMapSpec: bytes 3-7, imageSpec: bytes 8-17
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	descriptor := data[17]

	if colorMapType != 0 {
		return nil, fmt.Errorf("color-mapped TGA not supported")
	}
	if imageType != TypeUncompressed && imageType != TypeRLE {
		return nil, fmt.Errorf("unsupported TGA type %d (only uncompressed/RLE true-color supported)", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("unsupported TGA bit depth %d (only 24/32 supported)", bpp)
	}

	// Skip ID field
	offset := 18 + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	pixelData := data[offset:]

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	bytesPerPixel := bpp / 8

	// Bit 5 of the descriptor selects top-to-bottom row order.
	topToBottom := (descriptor & 0x20) != 0

	if imageType == TypeUncompressed {
		expectedSize := width * height * bytesPerPixel
		if len(pixelData) < expectedSize {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}

		for y := 0; y < height; y++ {
			destY := y
			if !topToBottom {
				destY = height - 1 - y
			}
			for x := 0; x < width; x++ {
				i := (y*width + x) * bytesPerPixel
				b := pixelData[i]
				g := pixelData[i+1]
				r := pixelData[i+2]
				a := uint8(255)
				if bytesPerPixel == 4 {
					a = pixelData[i+3]
				}
				img.SetRGBA(x, destY, color.RGBA{R: r, G: g, B: b, A: a})
			}
		}
		return img, nil
	}

	if err := decodeRLE(img, pixelData, width, height, bytesPerPixel, topToBottom); err != nil {
		return nil, err
	}
	return img, nil
}

// decodeRLE decodes RLE-compressed TGA pixel data into an image.
func decodeRLE(img *image.RGBA, pixelData []byte, width, height, bytesPerPixel int, topToBottom bool) error {
	pixelCount := width * height
	pixelIdx := 0
	dataIdx := 0

	set := func(c color.RGBA) {
		x := pixelIdx % width
		y := pixelIdx / width
		destY := y
		if !topToBottom {
			destY = height - 1 - y
		}
		img.SetRGBA(x, destY, c)
		pixelIdx++
	}

	for pixelIdx < pixelCount && dataIdx < len(pixelData) {
		packet := pixelData[dataIdx]
		dataIdx++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			// RLE packet - repeat single pixel
			if dataIdx+bytesPerPixel > len(pixelData) {
				break
			}
			c := readPixel(pixelData[dataIdx:], bytesPerPixel)
			dataIdx += bytesPerPixel
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				set(c)
			}
		} else {
			// Raw packet - read count pixels
			for i := 0; i < count && pixelIdx < pixelCount; i++ {
				if dataIdx+bytesPerPixel > len(pixelData) {
					return nil
				}
				c := readPixel(pixelData[dataIdx:], bytesPerPixel)
				dataIdx += bytesPerPixel
				set(c)
			}
		}
	}

	return nil
}

func readPixel(p []byte, bytesPerPixel int) color.RGBA {
	c := color.RGBA{B: p[0], G: p[1], R: p[2], A: 255}
	if bytesPerPixel == 4 {
		c.A = p[3]
	}
	return c
}

// Encode writes img as an uncompressed 32-bit true-color TGA.
// Rows are written top-to-bottom (descriptor bit 5 set), so the output is
// byte-for-byte deterministic for a given image.
func Encode(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width > 0xFFFF || height > 0xFFFF {
		return fmt.Errorf("image %dx%d exceeds TGA dimension limit", width, height)
	}

	header := [18]byte{}
	header[2] = TypeUncompressed
	header[12] = byte(width)
	header[13] = byte(width >> 8)
	header[14] = byte(height)
	header[15] = byte(height >> 8)
	header[16] = 32   // bits per pixel
	header[17] = 0x28 // top-to-bottom, 8 alpha bits
	if _, err := w.Write(header[:]); err != nil {
		return err
	}

	row := make([]byte, width*4)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			i := (x - bounds.Min.X) * 4
			row[i] = uint8(b16 >> 8)
			row[i+1] = uint8(g16 >> 8)
			row[i+2] = uint8(r16 >> 8)
			row[i+3] = uint8(a16 >> 8)
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
