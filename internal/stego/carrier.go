package stego

import "fmt"

// Carrier is a height x width x channels grid of 8-bit channel values.
//
// Pix stores the values row-major with the channel index varying fastest:
// the value at (row, col, ch) lives at Pix[(row*Width+col)*Channels+ch].
type Carrier struct {
	Height   int
	Width    int
	Channels int
	Pix      []uint8
}

// NewCarrier allocates a zeroed carrier of the given shape.
func NewCarrier(height, width, channels int) *Carrier {
	n := 0
	if height > 0 && width > 0 && channels > 0 {
		n = height * width * channels
	}
	return &Carrier{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]uint8, n),
	}
}

// Validate checks that the dimensions are positive and agree with len(Pix).
func (c *Carrier) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil carrier", ErrInvalidCarrier)
	}
	if c.Height <= 0 || c.Width <= 0 || c.Channels <= 0 {
		return fmt.Errorf("%w: shape %dx%dx%d", ErrInvalidCarrier, c.Height, c.Width, c.Channels)
	}
	if want := c.Height * c.Width * c.Channels; len(c.Pix) != want {
		return fmt.Errorf("%w: pixel buffer holds %d values, shape %dx%dx%d needs %d",
			ErrInvalidCarrier, len(c.Pix), c.Height, c.Width, c.Channels, want)
	}
	return nil
}

// Slots returns the number of channel values, i.e. the bit slots in one plane.
func (c *Carrier) Slots() uint64 {
	return uint64(c.Height) * uint64(c.Width) * uint64(c.Channels)
}

func (c *Carrier) offset(row, col, ch int) int {
	return (row*c.Width+col)*c.Channels + ch
}

// At returns the channel value at (row, col, ch).
func (c *Carrier) At(row, col, ch int) uint8 {
	return c.Pix[c.offset(row, col, ch)]
}

// Set stores v at (row, col, ch).
func (c *Carrier) Set(row, col, ch int, v uint8) {
	c.Pix[c.offset(row, col, ch)] = v
}

// Clone returns a deep copy of the carrier.
func (c *Carrier) Clone() *Carrier {
	pix := make([]uint8, len(c.Pix))
	copy(pix, c.Pix)
	return &Carrier{
		Height:   c.Height,
		Width:    c.Width,
		Channels: c.Channels,
		Pix:      pix,
	}
}
