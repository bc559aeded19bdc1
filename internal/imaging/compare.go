package imaging

import (
	"fmt"
	"image"
	"math"
	"math/bits"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// StegoDiffResult describes how far a stego image drifted from its original.
type StegoDiffResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Identical is true when every channel value matches.
	Identical bool `json:"identical"`

	// ChangedValues counts channel values (R, G, B or A) that differ.
	ChangedValues int `json:"changed_values"`

	// ChangedPixels counts pixels with at least one differing channel.
	ChangedPixels int `json:"changed_pixels"`

	// HighestPlane is the most significant bit index that differs in any
	// channel value, or -1 when the images are identical.
	HighestPlane int `json:"highest_plane"`

	// PSNR is the peak signal-to-noise ratio over all channels in dB.
	// It is 0 when Identical is true (the true value is infinite).
	PSNR float64 `json:"psnr_db"`

	// MeanDeltaE and MaxDeltaE are CIE76 distances in L*a*b* space over the
	// RGB channels of each pixel.
	MeanDeltaE float64 `json:"mean_delta_e"`
	MaxDeltaE  float64 `json:"max_delta_e"`
}

// CompareStego measures the distortion introduced by hiding data in original.
//
// Parameters:
//   - original: The untouched cover image.
//   - stego: The image produced by an encode.
//
// Returns:
//   - *StegoDiffResult: Change counts, highest touched bit-plane, PSNR and
//     perceptual colour distance.
//   - error: Non-nil if the images differ in size.
func CompareStego(original, stego image.Image) (*StegoDiffResult, error) {
	a := imaging.Clone(original)
	b := imaging.Clone(stego)

	w, h := a.Rect.Dx(), a.Rect.Dy()
	if b.Rect.Dx() != w || b.Rect.Dy() != h {
		return nil, fmt.Errorf("image sizes differ: %dx%d vs %dx%d", w, h, b.Rect.Dx(), b.Rect.Dy())
	}

	result := &StegoDiffResult{
		Width:        w,
		Height:       h,
		HighestPlane: -1,
	}

	var sqErr, sumDeltaE float64
	for y := 0; y < h; y++ {
		rowA := a.Pix[y*a.Stride : y*a.Stride+w*4]
		rowB := b.Pix[y*b.Stride : y*b.Stride+w*4]
		for x := 0; x < w; x++ {
			pa := rowA[x*4 : x*4+4]
			pb := rowB[x*4 : x*4+4]

			changed := false
			for ch := 0; ch < 4; ch++ {
				diff := pa[ch] ^ pb[ch]
				if diff == 0 {
					continue
				}
				changed = true
				result.ChangedValues++
				if p := bits.Len8(diff) - 1; p > result.HighestPlane {
					result.HighestPlane = p
				}
				d := float64(absDiff(pa[ch], pb[ch]))
				sqErr += d * d
			}
			if !changed {
				continue
			}
			result.ChangedPixels++

			de := toColorful(pa).DistanceLab(toColorful(pb))
			sumDeltaE += de
			if de > result.MaxDeltaE {
				result.MaxDeltaE = de
			}
		}
	}

	result.Identical = result.ChangedValues == 0
	if total := w * h; total > 0 {
		result.MeanDeltaE = math.Round(sumDeltaE/float64(total)*10000) / 10000
	}
	result.MaxDeltaE = math.Round(result.MaxDeltaE*10000) / 10000
	if !result.Identical {
		mse := sqErr / float64(w*h*4)
		result.PSNR = math.Round(10*math.Log10(255*255/mse)*100) / 100
	}

	return result, nil
}

func toColorful(p []uint8) colorful.Color {
	return colorful.Color{
		R: float64(p[0]) / 255,
		G: float64(p[1]) / 255,
		B: float64(p[2]) / 255,
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
