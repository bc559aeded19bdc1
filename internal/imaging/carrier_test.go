package imaging

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/image-stego-mcp/internal/stego"
)

// createGradientImage returns an NRGBA image whose channel values vary per pixel.
func createGradientImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 7),
				G: uint8(y * 13),
				B: uint8(x*y + 3),
				A: 255,
			})
		}
	}
	return img
}

func TestNewCarrierImage_RGB(t *testing.T) {
	img := createGradientImage(5, 4)
	ci := NewCarrierImage(img, false)

	c := ci.Carrier
	if c.Height != 4 || c.Width != 5 || c.Channels != 3 {
		t.Fatalf("shape: got %dx%dx%d, want 4x5x3", c.Height, c.Width, c.Channels)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			want := img.NRGBAAt(x, y)
			if got := c.At(y, x, 0); got != want.R {
				t.Errorf("R at (%d,%d): got %d, want %d", x, y, got, want.R)
			}
			if got := c.At(y, x, 1); got != want.G {
				t.Errorf("G at (%d,%d): got %d, want %d", x, y, got, want.G)
			}
			if got := c.At(y, x, 2); got != want.B {
				t.Errorf("B at (%d,%d): got %d, want %d", x, y, got, want.B)
			}
		}
	}
}

func TestNewCarrierImage_IncludeAlpha(t *testing.T) {
	img := createGradientImage(3, 3)
	img.SetNRGBA(1, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 77})

	ci := NewCarrierImage(img, true)
	if ci.Carrier.Channels != 4 {
		t.Fatalf("Channels: got %d, want 4", ci.Carrier.Channels)
	}
	if got := ci.Carrier.At(1, 1, 3); got != 77 {
		t.Errorf("alpha at (1,1): got %d, want 77", got)
	}
}

func TestNewCarrierImage_DoesNotAliasSource(t *testing.T) {
	img := createGradientImage(4, 4)
	before := img.NRGBAAt(0, 0)

	ci := NewCarrierImage(img, false)
	ci.Carrier.Set(0, 0, 0, before.R^0xFF)

	if after := img.NRGBAAt(0, 0); after != before {
		t.Errorf("source modified: got %v, want %v", after, before)
	}
}

func TestCarrierImage_ImagePreservesAlpha(t *testing.T) {
	img := createGradientImage(4, 4)
	img.SetNRGBA(2, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 128})

	ci := NewCarrierImage(img, false)
	ci.Carrier.Set(3, 2, 0, 11)

	out := ci.Image()
	got := out.NRGBAAt(2, 3)
	want := color.NRGBA{R: 11, G: 20, B: 30, A: 128}
	if got != want {
		t.Errorf("pixel (2,3): got %v, want %v", got, want)
	}
}

func TestCarrierImage_TextSurvivesPNGRoundTrip(t *testing.T) {
	img := createGradientImage(32, 32)
	ci := NewCarrierImage(img, false)

	if _, err := stego.EncodeText(ci.Carrier, "hidden in plain sight"); err != nil {
		t.Fatalf("EncodeText: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(path, ci.Image()); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	cache := NewImageCache()
	loaded, err := cache.LoadCarrier(path, false)
	if err != nil {
		t.Fatalf("LoadCarrier: %v", err)
	}

	got, _, err := stego.DecodeText(loaded.Carrier)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if got != "hidden in plain sight" {
		t.Errorf("decoded: got %q", got)
	}
}

func TestCarrierImage_BinaryWithAlphaSurvivesPNGRoundTrip(t *testing.T) {
	img := createGradientImage(24, 24)
	for x := 0; x < 24; x++ {
		img.SetNRGBA(x, 0, color.NRGBA{R: uint8(x), G: 9, B: 9, A: uint8(100 + x)})
	}
	ci := NewCarrierImage(img, true)
	payload := []byte{0x00, 0xFF, 0x10, 0x20, 0x30}

	if _, err := stego.EncodeBinary(ci.Carrier, payload); err != nil {
		t.Fatalf("EncodeBinary: %v", err)
	}

	path := filepath.Join(t.TempDir(), "alpha.png")
	if err := SavePNG(path, ci.Image()); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	loaded, err := NewImageCache().LoadCarrier(path, true)
	if err != nil {
		t.Fatalf("LoadCarrier: %v", err)
	}
	got, _, err := stego.DecodeBinary(loaded.Carrier)
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("decoded: got %x, want %x", got, payload)
	}
}

func TestCarrierImage_Capacity(t *testing.T) {
	ci := NewCarrierImage(createGradientImage(4, 4), false)
	report, err := ci.Capacity()
	if err != nil {
		t.Fatalf("Capacity: %v", err)
	}
	if report.PlaneBits != 48 {
		t.Errorf("PlaneBits: got %d, want 48", report.PlaneBits)
	}
}

func TestLoadCarrier_NonExistent(t *testing.T) {
	_, err := NewImageCache().LoadCarrier("/nonexistent/carrier.png", false)
	if err == nil {
		t.Fatal("expected error for non-existent file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}
