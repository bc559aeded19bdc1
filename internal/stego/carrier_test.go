package stego

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarrier_Validate(t *testing.T) {
	var nilCarrier *Carrier
	require.ErrorIs(t, nilCarrier.Validate(), ErrInvalidCarrier)

	require.NoError(t, NewCarrier(2, 3, 4).Validate())
	require.ErrorIs(t, NewCarrier(0, 3, 3).Validate(), ErrInvalidCarrier)
	require.ErrorIs(t, NewCarrier(2, -1, 3).Validate(), ErrInvalidCarrier)

	short := &Carrier{Height: 2, Width: 2, Channels: 3, Pix: make([]uint8, 11)}
	require.ErrorIs(t, short.Validate(), ErrInvalidCarrier)
}

func TestCarrier_Layout(t *testing.T) {
	c := NewCarrier(2, 3, 3)
	c.Set(1, 2, 0, 0xAB)
	assert.Equal(t, uint8(0xAB), c.Pix[(1*3+2)*3])
	assert.Equal(t, uint8(0xAB), c.At(1, 2, 0))
	assert.Equal(t, uint64(18), c.Slots())
}

func TestCarrier_CloneIsIndependent(t *testing.T) {
	c := NewCarrier(1, 2, 3)
	c.Set(0, 1, 2, 7)

	cp := c.Clone()
	cp.Set(0, 1, 2, 9)

	assert.Equal(t, uint8(7), c.At(0, 1, 2))
	assert.Equal(t, uint8(9), cp.At(0, 1, 2))
}
