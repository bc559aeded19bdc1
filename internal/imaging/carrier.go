package imaging

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-stego-mcp/internal/stego"
)

// CarrierImage pairs a decoded image with the channel grid that hides data.
//
// The source image is normalised to non-premultiplied 8-bit RGBA so channel
// values survive a PNG round trip unchanged. When IncludeAlpha is false the
// carrier holds only the R, G and B channels and the alpha channel of Base is
// copied through untouched.
//
// # Example Usage
//
//	ci := imaging.NewCarrierImage(img, false)
//	if _, err := stego.EncodeText(ci.Carrier, "hello"); err != nil {
//	    return err
//	}
//	out := ci.Image()
type CarrierImage struct {
	// Base is the normalised copy of the source image. It is never modified.
	Base *image.NRGBA

	// Carrier holds the channel values in row/column/channel order.
	Carrier *stego.Carrier

	// IncludeAlpha records whether the alpha channel is part of the carrier.
	IncludeAlpha bool
}

// NewCarrierImage copies img into a fresh carrier.
//
// Parameters:
//   - img: Any decoded image. 16-bit images are reduced to 8 bits per channel.
//   - includeAlpha: Whether to embed in the alpha channel as well (4 channels
//     instead of 3).
//
// The cached source image is never aliased; callers may encode into the
// returned carrier freely.
func NewCarrierImage(img image.Image, includeAlpha bool) *CarrierImage {
	base := imaging.Clone(img)
	w := base.Rect.Dx()
	h := base.Rect.Dy()

	channels := 3
	if includeAlpha {
		channels = 4
	}

	c := stego.NewCarrier(h, w, channels)
	for y := 0; y < h; y++ {
		row := base.Pix[y*base.Stride : y*base.Stride+w*4]
		for x := 0; x < w; x++ {
			for ch := 0; ch < channels; ch++ {
				c.Set(y, x, ch, row[x*4+ch])
			}
		}
	}

	return &CarrierImage{
		Base:         base,
		Carrier:      c,
		IncludeAlpha: includeAlpha,
	}
}

// Image returns a new NRGBA image built from Base with the carrier's channel
// values written over it.
func (ci *CarrierImage) Image() *image.NRGBA {
	out := imaging.Clone(ci.Base)
	c := ci.Carrier
	for y := 0; y < c.Height; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+c.Width*4]
		for x := 0; x < c.Width; x++ {
			for ch := 0; ch < c.Channels; ch++ {
				row[x*4+ch] = c.At(y, x, ch)
			}
		}
	}
	return out
}

// Capacity returns the stego capacity report for the carrier.
func (ci *CarrierImage) Capacity() (*stego.CapacityReport, error) {
	return stego.Plan(ci.Carrier)
}
