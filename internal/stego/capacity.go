package stego

import "fmt"

// TotalCapacity returns the number of bit slots available in c.
//
// Without escalation only plane 0 is counted (height*width*channels); with
// escalation all eight planes are.
func TotalCapacity(c *Carrier, allowEscalation bool) uint64 {
	slots := c.Slots()
	if allowEscalation {
		return slots * (MaxPlane + 1)
	}
	return slots
}

// Validate fails with ErrPayloadTooLarge when payloadBits exceeds capacity.
func Validate(payloadBits, capacity uint64) error {
	if payloadBits > capacity {
		return fmt.Errorf("%w: payload needs %d bits, carrier has %d", ErrPayloadTooLarge, payloadBits, capacity)
	}
	return nil
}

// RequiredBits returns the frame size in bits for a payload of units
// characters (ModeText) or bytes (ModeBinary).
func RequiredBits(mode Mode, units int) uint64 {
	return uint64(mode.LengthBits()) + uint64(units)*8
}

// CapacityReport summarises how much a carrier can hold.
type CapacityReport struct {
	// Height, Width and Channels describe the carrier grid.
	Height   int `json:"height"`
	Width    int `json:"width"`
	Channels int `json:"channels"`

	// PlaneBits is the number of slots in a single bit-plane.
	PlaneBits uint64 `json:"plane_bits"`

	// EscalatedBits is the number of slots across all eight planes.
	EscalatedBits uint64 `json:"escalated_bits"`

	// MaxTextChars is the longest text that fits, capped at MaxTextLength.
	MaxTextChars int `json:"max_text_chars"`

	// MaxTextCharsPlane0 is the longest text that fits without touching
	// planes above 0.
	MaxTextCharsPlane0 int `json:"max_text_chars_plane0"`

	// MaxBinaryBytes is the largest binary payload that fits in plane 0.
	MaxBinaryBytes uint64 `json:"max_binary_bytes"`

	// TextFrameFits and BinaryFrameFits report whether an empty payload's
	// length prefix fits at all. When false the matching Max field is 0 but
	// nothing can be hidden in that mode.
	TextFrameFits   bool `json:"text_frame_fits"`
	BinaryFrameFits bool `json:"binary_frame_fits"`
}

// Plan computes a CapacityReport for c.
func Plan(c *Carrier) (*CapacityReport, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	plane := TotalCapacity(c, false)
	escalated := TotalCapacity(c, true)

	return &CapacityReport{
		Height:             c.Height,
		Width:              c.Width,
		Channels:           c.Channels,
		PlaneBits:          plane,
		EscalatedBits:      escalated,
		MaxTextChars:       maxTextChars(escalated),
		MaxTextCharsPlane0: maxTextChars(plane),
		MaxBinaryBytes:     maxUnits(plane, BinaryLengthBits),
		TextFrameFits:      escalated >= TextLengthBits,
		BinaryFrameFits:    plane >= BinaryLengthBits,
	}, nil
}

func maxTextChars(capacity uint64) int {
	n := maxUnits(capacity, TextLengthBits)
	if n > MaxTextLength {
		return MaxTextLength
	}
	return int(n)
}

func maxUnits(capacity uint64, prefix int) uint64 {
	if capacity < uint64(prefix) {
		return 0
	}
	return (capacity - uint64(prefix)) / 8
}
