package imaging

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/ironsheep/image-stego-mcp/internal/stego"
)

// HideResult describes a stego image written to disk.
type HideResult struct {
	// OutputPath is the PNG file holding the payload.
	OutputPath string `json:"output_path"`

	// Width and Height are the image dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Channels is the number of channels per pixel used as carrier (3 or 4).
	Channels int `json:"channels"`

	// Frame describes the bits written.
	Frame *stego.Stats `json:"frame"`

	// PayloadDigest is the xxhash64 of the payload bytes (UTF-8 for text),
	// as 16 hex digits. Reveal results carry the same digest.
	PayloadDigest string `json:"payload_digest"`
}

// RevealResult describes a payload recovered from a stego image.
type RevealResult struct {
	// Payload is the recovered body. For text it is the UTF-8 encoding.
	Payload []byte `json:"-"`

	Frame         *stego.Stats `json:"frame"`
	PayloadDigest string       `json:"payload_digest"`
}

// HideOptions selects where and how a payload is hidden.
type HideOptions struct {
	// OutputPath is the PNG file to write. Required.
	OutputPath string

	// IncludeAlpha embeds in the alpha channel as well as R, G and B.
	IncludeAlpha bool
}

// Hide loads the image at src, hides p in it and writes the result to
// opts.OutputPath as PNG.
//
// Parameters:
//   - cache: The image cache to load src from. The output path is evicted
//     after writing so later loads see the new file.
//   - src: Path of the cover image (PNG, JPEG or GIF).
//   - p: The payload and its framing.
//   - opts: Output path and channel selection.
//
// Returns:
//   - *HideResult: Where the image went and what was written.
//   - error: Load and save failures, or a stego error. Nothing is written to
//     disk when the payload is rejected.
func Hide(cache *ImageCache, src string, p stego.Payload, opts HideOptions) (*HideResult, error) {
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}

	ci, err := cache.LoadCarrier(src, opts.IncludeAlpha)
	if err != nil {
		return nil, err
	}

	stats, err := stego.Encode(ci.Carrier, p)
	if err != nil {
		return nil, err
	}

	if err := SavePNG(opts.OutputPath, ci.Image()); err != nil {
		return nil, err
	}
	cache.Evict(opts.OutputPath)

	return &HideResult{
		OutputPath:    opts.OutputPath,
		Width:         ci.Carrier.Width,
		Height:        ci.Carrier.Height,
		Channels:      ci.Carrier.Channels,
		Frame:         stats,
		PayloadDigest: Digest(p.Data),
	}, nil
}

// Reveal loads the image at path and decodes a payload framed with mode.
func Reveal(cache *ImageCache, path string, mode stego.Mode, includeAlpha bool) (*RevealResult, error) {
	ci, err := cache.LoadCarrier(path, includeAlpha)
	if err != nil {
		return nil, err
	}

	p, stats, err := stego.Decode(ci.Carrier, mode)
	if err != nil {
		return nil, err
	}

	return &RevealResult{
		Payload:       p.Data,
		Frame:         stats,
		PayloadDigest: Digest(p.Data),
	}, nil
}

// Capacity returns the stego capacity of the image at path.
func Capacity(cache *ImageCache, path string, includeAlpha bool) (*stego.CapacityReport, error) {
	ci, err := cache.LoadCarrier(path, includeAlpha)
	if err != nil {
		return nil, err
	}
	return ci.Capacity()
}

// Digest returns the xxhash64 of data as 16 lower-case hex digits.
func Digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
