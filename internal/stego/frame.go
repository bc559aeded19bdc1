package stego

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// TextLengthBits is the width of the text length prefix.
	TextLengthBits = 16

	// BinaryLengthBits is the width of the binary length prefix.
	BinaryLengthBits = 64

	// MaxTextLength is the largest character count a text prefix can carry.
	MaxTextLength = 1<<TextLengthBits - 1

	// MaxTextCodePoint is the largest code point a text body byte can carry.
	MaxTextCodePoint = 0xFF
)

// Mode selects a payload framing.
type Mode int

const (
	// ModeText frames single-byte characters behind a 16-bit length and may
	// escalate into higher bit-planes.
	ModeText Mode = iota

	// ModeBinary frames raw bytes behind a 64-bit length in plane 0 only.
	ModeBinary
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeBinary:
		return "binary"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// LengthBits returns the width of the mode's length prefix.
func (m Mode) LengthBits() int {
	if m == ModeBinary {
		return BinaryLengthBits
	}
	return TextLengthBits
}

// PlaneLimit returns the highest bit-plane the mode may use.
func (m Mode) PlaneLimit() uint8 {
	if m == ModeBinary {
		return 0
	}
	return MaxPlane
}

// ParseMode maps "text" or "binary" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return ModeText, nil
	case "binary", "bytes", "data":
		return ModeBinary, nil
	default:
		return 0, fmt.Errorf("unknown payload mode: %s", s)
	}
}

// Stats describes the bits an encode or decode consumed.
type Stats struct {
	Mode Mode `json:"-"`

	// ModeName is Mode.String(), carried for JSON consumers.
	ModeName string `json:"mode"`

	// Units is the payload length in characters (text) or bytes (binary).
	Units int `json:"units"`

	// Bits is the number of slots consumed, prefix included.
	Bits uint64 `json:"bits"`

	// HighestPlane is the highest bit-plane that holds frame bits.
	HighestPlane uint8 `json:"highest_plane"`
}

// EncodeText hides text in c using the text framing.
//
// Every character must have a code point in [0, 255] and there may be at most
// MaxTextLength of them. The characters, the length and the escalated
// capacity are all checked before the first bit is written, so a failed
// encode leaves c untouched.
//
// # Errors
//
//   - ErrInvalidCarrier if c is malformed
//   - ErrValueOutOfRange if a code point exceeds 255 or the text is too long
//   - ErrPayloadTooLarge if the frame needs more than 8*height*width*channels bits
func EncodeText(c *Carrier, text string) (*Stats, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", ErrValueOutOfRange)
	}

	units := make([]byte, 0, len(text))
	for i, r := range text {
		if r > MaxTextCodePoint {
			return nil, fmt.Errorf("%w: character %q at byte %d has code point %d (max %d)",
				ErrValueOutOfRange, r, i, r, MaxTextCodePoint)
		}
		units = append(units, byte(r))
	}
	if len(units) > MaxTextLength {
		return nil, fmt.Errorf("%w: text length %d exceeds %d", ErrValueOutOfRange, len(units), MaxTextLength)
	}
	if err := Validate(RequiredBits(ModeText, len(units)), TotalCapacity(c, true)); err != nil {
		return nil, err
	}

	return encodeFrame(c, ModeText, units)
}

// DecodeText recovers text hidden by EncodeText.
//
// Each body byte becomes the character with that code point, so bytes
// 0x80-0xFF come back as two-byte UTF-8 sequences.
func DecodeText(c *Carrier) (string, *Stats, error) {
	body, stats, err := decodeFrame(c, ModeText)
	if err != nil {
		return "", nil, err
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for _, b := range body {
		sb.WriteRune(rune(b))
	}
	return sb.String(), stats, nil
}

// EncodeBinary hides data in plane 0 of c using the binary framing.
//
// The frame size (64 + 8*len(data) bits) is checked against the plane-0
// capacity before anything is written; on ErrPayloadTooLarge c is untouched.
func EncodeBinary(c *Carrier, data []byte) (*Stats, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := Validate(RequiredBits(ModeBinary, len(data)), TotalCapacity(c, false)); err != nil {
		return nil, err
	}
	return encodeFrame(c, ModeBinary, data)
}

// DecodeBinary recovers bytes hidden by EncodeBinary.
func DecodeBinary(c *Carrier) ([]byte, *Stats, error) {
	return decodeFrame(c, ModeBinary)
}

// Payload pairs a body with the framing to use for it. For ModeText, Data is
// the text's UTF-8 encoding.
type Payload struct {
	Mode Mode
	Data []byte
}

// Encode hides p in c with the framing p.Mode selects.
func Encode(c *Carrier, p Payload) (*Stats, error) {
	switch p.Mode {
	case ModeText:
		return EncodeText(c, string(p.Data))
	case ModeBinary:
		return EncodeBinary(c, p.Data)
	default:
		return nil, fmt.Errorf("unknown payload mode: %s", p.Mode)
	}
}

// Decode recovers a payload framed with mode. Text comes back UTF-8 encoded.
func Decode(c *Carrier, mode Mode) (*Payload, *Stats, error) {
	switch mode {
	case ModeText:
		text, stats, err := DecodeText(c)
		if err != nil {
			return nil, nil, err
		}
		return &Payload{Mode: ModeText, Data: []byte(text)}, stats, nil
	case ModeBinary:
		data, stats, err := DecodeBinary(c)
		if err != nil {
			return nil, nil, err
		}
		return &Payload{Mode: ModeBinary, Data: data}, stats, nil
	default:
		return nil, nil, fmt.Errorf("unknown payload mode: %s", mode)
	}
}

// encodeFrame writes the length prefix and body. Callers have already
// checked capacity.
func encodeFrame(c *Carrier, mode Mode, body []byte) (*Stats, error) {
	pc := NewPlaneCodec(c, mode.PlaneLimit())
	stats := &Stats{Mode: mode, ModeName: mode.String(), Units: len(body)}

	if err := pc.WriteBits(uint64(len(body)), mode.LengthBits()); err != nil {
		return nil, fmt.Errorf("writing %s length: %w", mode, err)
	}
	for i, b := range body {
		if err := pc.WriteByte(b); err != nil {
			return nil, fmt.Errorf("writing %s unit %d: %w", mode, i, err)
		}
	}

	stats.Bits = pc.Cursor().Consumed()
	stats.HighestPlane = lastPlane(c, stats.Bits)
	return stats, nil
}

func decodeFrame(c *Carrier, mode Mode) ([]byte, *Stats, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	pc := NewPlaneCodec(c, mode.PlaneLimit())

	n, err := pc.ReadBits(mode.LengthBits())
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s length: %w", mode, err)
	}
	if remaining := pc.Cursor().Remaining(); n > remaining/8 {
		return nil, nil, fmt.Errorf("%w: %s length %d needs %d more bits, carrier has %d",
			ErrMalformedFrame, mode, n, satMul8(n), remaining)
	}

	body := make([]byte, n)
	for i := range body {
		if body[i], err = pc.ReadByte(); err != nil {
			return nil, nil, fmt.Errorf("reading %s unit %d: %w", mode, i, err)
		}
	}

	bits := pc.Cursor().Consumed()
	return body, &Stats{
		Mode:         mode,
		ModeName:     mode.String(),
		Units:        len(body),
		Bits:         bits,
		HighestPlane: lastPlane(c, bits),
	}, nil
}

// lastPlane returns the plane holding the last of bits consumed slots.
func lastPlane(c *Carrier, bits uint64) uint8 {
	slots := c.Slots()
	if bits == 0 || slots == 0 {
		return 0
	}
	return uint8((bits - 1) / slots)
}

func satMul8(n uint64) uint64 {
	if n > ^uint64(0)/8 {
		return ^uint64(0)
	}
	return n * 8
}
