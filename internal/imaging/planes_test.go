package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestBitPlane(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	// Red LSB set on the left half only.
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			r := uint8(0x10)
			if x < 2 {
				r = 0x11
			}
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: 0xFF, B: 0x00, A: 255})
		}
	}

	result, err := BitPlane(img, 0, 0)
	if err != nil {
		t.Fatalf("BitPlane: %v", err)
	}
	if result.Channel != "red" || result.Plane != 0 {
		t.Errorf("got channel %s plane %d, want red plane 0", result.Channel, result.Plane)
	}
	if result.OnesRatio != 0.5 {
		t.Errorf("OnesRatio: got %v, want 0.5", result.OnesRatio)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			g := color.GrayModel.Convert(decoded.At(x, y)).(color.Gray)
			want := uint8(0)
			if x < 2 {
				want = 255
			}
			if g.Y != want {
				t.Errorf("pixel (%d,%d): got %d, want %d", x, y, g.Y, want)
			}
		}
	}
}

func TestBitPlane_AllSetAndClear(t *testing.T) {
	img := createInMemoryImage(8, 8, color.NRGBA{R: 0, G: 0xFF, B: 0, A: 255})

	green, err := BitPlane(img, 1, 7)
	if err != nil {
		t.Fatalf("BitPlane: %v", err)
	}
	if green.OnesRatio != 1 {
		t.Errorf("green plane 7 OnesRatio: got %v, want 1", green.OnesRatio)
	}

	blue, err := BitPlane(img, 2, 3)
	if err != nil {
		t.Fatalf("BitPlane: %v", err)
	}
	if blue.OnesRatio != 0 {
		t.Errorf("blue plane 3 OnesRatio: got %v, want 0", blue.OnesRatio)
	}
}

func TestBitPlane_InvalidArgs(t *testing.T) {
	img := createInMemoryImage(2, 2, color.White)

	tests := []struct {
		name    string
		channel int
		plane   int
	}{
		{"negative channel", -1, 0},
		{"channel too large", 4, 0},
		{"negative plane", 0, -1},
		{"plane too large", 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BitPlane(img, tt.channel, tt.plane); err == nil {
				t.Error("expected error")
			}
		})
	}
}

// createInMemoryImage creates a uniform NRGBA image without touching disk.
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
