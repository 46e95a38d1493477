package tga

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	colors := []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255},
		{10, 20, 30, 255}, {128, 128, 255, 255}, {0, 0, 0, 0},
	}
	for i, c := range colors {
		src.SetRGBA(i%3, i/3, c)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, src); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	for i, want := range colors {
		x, y := i%3, i/3
		r, g, b, a := got.At(x, y).RGBA()
		c := color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
		// Fully transparent pixels decode as premultiplied zero.
		if want.A == 0 {
			want = color.RGBA{}
		}
		if c != want {
			t.Errorf("pixel (%d,%d): got %v, want %v", x, y, c, want)
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, color.RGBA{uint8(x * 60), uint8(y * 60), 128, 255})
		}
	}

	var a, b bytes.Buffer
	if err := Encode(&a, src); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := Encode(&b, src); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two encodes of the same image should be byte-identical")
	}
}

func TestDecodeRLE(t *testing.T) {
	// 2x1 image, 24bpp, single RLE packet repeating a red pixel twice.
	data := []byte{
		0, 0, TypeRLE,
		0, 0, 0, 0, 0, // color map spec
		0, 0, 0, 0, // origin
		2, 0, 1, 0, // width=2, height=1
		24, 0x20, // bpp, top-to-bottom
		0x81, 0, 0, 255, // RLE packet: count=2, BGR=red
	}

	img, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for x := 0; x < 2; x++ {
		r, g, b, _ := img.At(x, 0).RGBA()
		if r>>8 != 255 || g != 0 || b != 0 {
			t.Errorf("pixel %d: got r=%d g=%d b=%d, want red", x, r>>8, g>>8, b>>8)
		}
	}
}

func TestDecodeRejectsUnsupported(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"too short", []byte{0, 0, 2}},
		{"color-mapped", append([]byte{0, 1, 1}, make([]byte, 15)...)},
		{"grayscale", append([]byte{0, 0, 3}, make([]byte, 15)...)},
	}
	for _, tt := range tests {
		if _, err := Decode(tt.data); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
