// Package imaging adapts decoded image files to the stego carrier grid and back.
//
// This package loads images from disk, converts them into stego.Carrier
// values, writes stego images out as PNG, and provides the analysis helpers
// used to inspect a carrier: bit-plane renderings and distortion reports.
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Channel Layout
//
// Every image is normalised to 8-bit non-premultiplied RGBA before use. A
// carrier built from it holds, per pixel, the R, G and B values (and A when
// alpha embedding is enabled) in that order. Carrier rows correspond to image
// rows (Y) and carrier columns to image columns (X).
//
// # Output Formats
//
// Hidden data lives in the low-order bits of channel values, so stego images
// are only ever written as PNG. SavePNG refuses lossy extensions with
// ErrLossyFormat.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Cached images are shared and
// must not be mutated; CarrierImage always works on a private copy.
// Operations on distinct CarrierImage values can run concurrently.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - File I/O errors during image loading
//   - Channel or plane indices out of range
//   - Mismatched image sizes in comparisons
//   - Lossy or unknown output formats
package imaging
