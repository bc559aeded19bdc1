package imaging

import (
	"fmt"
	"image"
	"math"
	"sync/atomic"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-stego-mcp/internal/stego"
)

// ChannelNames maps channel indices to their names in an NRGBA pixel.
var ChannelNames = []string{"red", "green", "blue", "alpha"}

// BitPlaneResult contains a black and white rendering of one bit-plane.
//
// White pixels (255) mark channel values whose bit at Plane is set; black
// pixels (0) mark values where it is clear.
type BitPlaneResult struct {
	EncodedImage

	// Channel is the name of the rendered channel ("red", "green", ...).
	Channel string `json:"channel"`

	// Plane is the rendered bit index (0 = least significant).
	Plane int `json:"plane"`

	// OnesRatio is the fraction of pixels whose bit is set. Natural images
	// sit near 0.5 in the low planes; long runs of 0 or 1 suggest an
	// embedded frame or a flat region.
	OnesRatio float64 `json:"ones_ratio"`
}

// BitPlane renders a single bit-plane of one channel as a grayscale image.
//
// Parameters:
//   - img: Source image; it is normalised to 8-bit NRGBA first.
//   - channel: Channel index, 0=red, 1=green, 2=blue, 3=alpha.
//   - plane: Bit index in [0, 7].
//
// Returns:
//   - *BitPlaneResult: The rendering as base64 PNG plus the ratio of set bits.
//   - error: Non-nil for an invalid channel or plane, or on encode failure.
//
// Rows are processed in parallel.
func BitPlane(img image.Image, channel, plane int) (*BitPlaneResult, error) {
	if channel < 0 || channel >= len(ChannelNames) {
		return nil, fmt.Errorf("channel %d out of range [0,%d]", channel, len(ChannelNames)-1)
	}
	if plane < 0 || plane > stego.MaxPlane {
		return nil, fmt.Errorf("plane %d out of range [0,%d]", plane, stego.MaxPlane)
	}

	src := imaging.Clone(img)
	width := src.Rect.Dx()
	height := src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, width, height))
	mask := stego.SetMask(uint8(plane))

	var ones int64
	parallel.Line(height, func(start, end int) {
		var n int64
		for y := start; y < end; y++ {
			srcRow := src.Pix[y*src.Stride:]
			dstRow := dst.Pix[y*dst.Stride:]
			for x := 0; x < width; x++ {
				if srcRow[x*4+channel]&mask != 0 {
					dstRow[x] = 255
					n++
				}
			}
		}
		atomic.AddInt64(&ones, n)
	})

	encoded, err := EncodePNGBase64(dst)
	if err != nil {
		return nil, err
	}

	ratio := 0.0
	if total := width * height; total > 0 {
		ratio = float64(ones) / float64(total)
	}

	return &BitPlaneResult{
		EncodedImage: *encoded,
		Channel:      ChannelNames[channel],
		Plane:        plane,
		OnesRatio:    math.Round(ratio*10000) / 10000,
	}, nil
}
