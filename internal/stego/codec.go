package stego

import "fmt"

// SetMask returns the mask that sets bit plane p when ORed into a byte.
func SetMask(p uint8) uint8 {
	return 1 << p
}

// ClearMask returns the mask that clears bit plane p when ANDed with a byte.
func ClearMask(p uint8) uint8 {
	return ^SetMask(p)
}

// PlaneCodec reads and writes single bits of a carrier at the position of its
// cursor. Each read or write consumes exactly one slot.
type PlaneCodec struct {
	carrier *Carrier
	cursor  *Cursor
}

// NewPlaneCodec returns a codec positioned on the first slot of c that may
// escalate up to plane limit.
func NewPlaneCodec(c *Carrier, limit uint8) *PlaneCodec {
	return &PlaneCodec{
		carrier: c,
		cursor:  NewCursor(c, limit),
	}
}

// Cursor exposes the codec's traversal state.
func (pc *PlaneCodec) Cursor() *Cursor {
	return pc.cursor
}

// WriteBit stores bit (0 or 1) in the current slot and advances.
//
// Writes are not rolled back: if a caller keeps writing until
// ErrCapacityExhausted, every bit before the failure stays in the carrier.
func (pc *PlaneCodec) WriteBit(bit uint8) error {
	if pc.cursor.Exhausted() {
		return pc.cursor.exhaustedError()
	}
	row, col, ch, plane := pc.cursor.Position()
	v := pc.carrier.At(row, col, ch)
	if bit&1 == 1 {
		v |= SetMask(plane)
	} else {
		v &= ClearMask(plane)
	}
	pc.carrier.Set(row, col, ch, v)
	return pc.cursor.Advance()
}

// ReadBit returns the bit stored in the current slot and advances.
func (pc *PlaneCodec) ReadBit() (uint8, error) {
	if pc.cursor.Exhausted() {
		return 0, pc.cursor.exhaustedError()
	}
	row, col, ch, plane := pc.cursor.Position()
	var bit uint8
	if pc.carrier.At(row, col, ch)&SetMask(plane) != 0 {
		bit = 1
	}
	return bit, pc.cursor.Advance()
}

// WriteBits writes the low width bits of v, most significant first.
//
// It fails with ErrValueOutOfRange, before touching the carrier, when v needs
// more than width bits.
func (pc *PlaneCodec) WriteBits(v uint64, width int) error {
	if width < 0 || width > 64 {
		return fmt.Errorf("%w: field width %d", ErrValueOutOfRange, width)
	}
	if width < 64 && v>>uint(width) != 0 {
		return fmt.Errorf("%w: %d does not fit in %d bits", ErrValueOutOfRange, v, width)
	}
	for i := width - 1; i >= 0; i-- {
		if err := pc.WriteBit(uint8(v >> uint(i) & 1)); err != nil {
			return err
		}
	}
	return nil
}

// ReadBits reads a width-bit field, most significant bit first.
func (pc *PlaneCodec) ReadBits(width int) (uint64, error) {
	if width < 0 || width > 64 {
		return 0, fmt.Errorf("%w: field width %d", ErrValueOutOfRange, width)
	}
	var v uint64
	for i := 0; i < width; i++ {
		bit, err := pc.ReadBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint64(bit)
	}
	return v, nil
}

// WriteByte writes one 8-bit body unit.
func (pc *PlaneCodec) WriteByte(b byte) error {
	return pc.WriteBits(uint64(b), 8)
}

// ReadByte reads one 8-bit body unit.
func (pc *PlaneCodec) ReadByte() (byte, error) {
	v, err := pc.ReadBits(8)
	return byte(v), err
}
