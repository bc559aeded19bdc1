package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasks(t *testing.T) {
	tests := []struct {
		plane uint8
		set   uint8
		clear uint8
	}{
		{0, 0x01, 0xFE},
		{1, 0x02, 0xFD},
		{2, 0x04, 0xFB},
		{3, 0x08, 0xF7},
		{4, 0x10, 0xEF},
		{5, 0x20, 0xDF},
		{6, 0x40, 0xBF},
		{7, 0x80, 0x7F},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.set, SetMask(tt.plane), "SetMask(%d)", tt.plane)
		assert.Equal(t, tt.clear, ClearMask(tt.plane), "ClearMask(%d)", tt.plane)
	}
}

func TestPlaneCodec_WriteBit(t *testing.T) {
	c := NewCarrier(1, 1, 2)
	c.Pix[0] = 0x00
	c.Pix[1] = 0xFF

	pc := NewPlaneCodec(c, MaxPlane)
	require.NoError(t, pc.WriteBit(1))
	require.NoError(t, pc.WriteBit(0))
	assert.Equal(t, []uint8{0x01, 0xFE}, c.Pix)

	// plane 1
	require.NoError(t, pc.WriteBit(1))
	require.NoError(t, pc.WriteBit(0))
	assert.Equal(t, []uint8{0x03, 0xFC}, c.Pix)
}

func TestPlaneCodec_ReadBit(t *testing.T) {
	c := NewCarrier(1, 1, 2)
	c.Pix[0] = 0b0000_0010
	c.Pix[1] = 0b0000_0001

	pc := NewPlaneCodec(c, MaxPlane)
	var got []uint8
	for i := 0; i < 4; i++ {
		bit, err := pc.ReadBit()
		require.NoError(t, err)
		got = append(got, bit)
	}
	assert.Equal(t, []uint8{0, 1, 1, 0}, got)
}

func TestPlaneCodec_Exhaustion(t *testing.T) {
	c := NewCarrier(1, 1, 1)
	pc := NewPlaneCodec(c, 0)

	require.NoError(t, pc.WriteBit(1))
	assert.ErrorIs(t, pc.WriteBit(1), ErrCapacityExhausted)
	assert.Equal(t, uint8(0x01), c.Pix[0])

	_, err := NewPlaneCodec(c, 0).ReadBits(2)
	assert.ErrorIs(t, err, ErrCapacityExhausted)
}

func TestPlaneCodec_PartialWriteIsKept(t *testing.T) {
	c := NewCarrier(1, 1, 3)
	pc := NewPlaneCodec(c, 0)

	err := pc.WriteBits(0b1111, 4)
	assert.ErrorIs(t, err, ErrCapacityExhausted)
	assert.Equal(t, []uint8{1, 1, 1}, c.Pix)
}

func TestPlaneCodec_BitsRoundTrip(t *testing.T) {
	c := NewCarrier(4, 4, 4)

	values := []struct {
		v     uint64
		width int
	}{
		{0, 1},
		{1, 1},
		{0xABCD, 16},
		{0xDEADBEEFCAFEF00D, 64},
		{5, 3},
	}

	w := NewPlaneCodec(c, MaxPlane)
	for _, tt := range values {
		require.NoError(t, w.WriteBits(tt.v, tt.width))
	}

	r := NewPlaneCodec(c, MaxPlane)
	for _, tt := range values {
		got, err := r.ReadBits(tt.width)
		require.NoError(t, err)
		assert.Equal(t, tt.v, got)
	}
}

func TestPlaneCodec_WriteBitsMSBFirst(t *testing.T) {
	c := NewCarrier(1, 8, 1)
	require.NoError(t, NewPlaneCodec(c, 0).WriteBits(0x41, 8))
	assert.Equal(t, []uint8{0, 1, 0, 0, 0, 0, 0, 1}, c.Pix)
}

func TestPlaneCodec_WriteBitsOutOfRange(t *testing.T) {
	c := NewCarrier(1, 32, 1)
	pc := NewPlaneCodec(c, 0)

	assert.ErrorIs(t, pc.WriteBits(256, 8), ErrValueOutOfRange)
	assert.ErrorIs(t, pc.WriteBits(1<<16, 16), ErrValueOutOfRange)
	assert.ErrorIs(t, pc.WriteBits(0, 65), ErrValueOutOfRange)
	assert.Equal(t, uint64(0), pc.Cursor().Consumed())
	assert.Equal(t, make([]uint8, 32), c.Pix)
}
