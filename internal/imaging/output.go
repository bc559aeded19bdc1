package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrLossyFormat is returned when an output path names a format that would
// destroy the low-order bits on encode.
var ErrLossyFormat = errors.New("output format is lossy; use .png")

// EncodedImage contains an image encoded as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNGBase64 encodes img as PNG and returns it base64-encoded.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SavePNG writes img to path as a PNG file.
//
// Parameters:
//   - path: Destination file. The extension must be ".png" (any case); JPEG
//     and GIF outputs are refused because their encoders do not preserve
//     channel values exactly.
//   - img: The image to write.
//
// The parent directory is created if it does not exist. An existing file at
// path is overwritten.
func SavePNG(path string, img image.Image) error {
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return fmt.Errorf("unsupported output path %q: %w", path, err)
	}
	if format != imaging.PNG {
		return fmt.Errorf("%w: %s", ErrLossyFormat, path)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := imaging.Save(img, path, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// DefaultOutputPath derives an output path next to src: "photo.jpg" with
// suffix "-stego" becomes "photo-stego.png".
func DefaultOutputPath(src, suffix string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + suffix + ".png"
}
