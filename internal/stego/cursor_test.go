package stego

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slot struct {
	row, col, ch int
	plane        uint8
}

func TestCursor_TraversalOrder(t *testing.T) {
	c := NewCarrier(2, 2, 2)
	cur := NewCursor(c, 1)

	want := []slot{
		{0, 0, 0, 0}, {0, 0, 1, 0}, {0, 1, 0, 0}, {0, 1, 1, 0},
		{1, 0, 0, 0}, {1, 0, 1, 0}, {1, 1, 0, 0}, {1, 1, 1, 0},
		{0, 0, 0, 1}, {0, 0, 1, 1}, {0, 1, 0, 1}, {0, 1, 1, 1},
		{1, 0, 0, 1}, {1, 0, 1, 1}, {1, 1, 0, 1}, {1, 1, 1, 1},
	}

	for i, w := range want {
		require.False(t, cur.Exhausted(), "slot %d", i)
		row, col, ch, plane := cur.Position()
		assert.Equal(t, w, slot{row, col, ch, plane}, "slot %d", i)
		assert.Equal(t, uint64(i), cur.Consumed())
		require.NoError(t, cur.Advance())
	}

	assert.True(t, cur.Exhausted())
	assert.Equal(t, uint64(0), cur.Remaining())
	err := cur.Advance()
	assert.True(t, errors.Is(err, ErrCapacityExhausted))
}

func TestCursor_VisitsEverySlotOnce(t *testing.T) {
	c := NewCarrier(3, 5, 4)
	cur := NewCursor(c, MaxPlane)

	seen := make(map[slot]bool)
	for !cur.Exhausted() {
		row, col, ch, plane := cur.Position()
		s := slot{row, col, ch, plane}
		require.False(t, seen[s], "slot %+v visited twice", s)
		seen[s] = true
		require.NoError(t, cur.Advance())
	}

	assert.Len(t, seen, 3*5*4*8)
	assert.Equal(t, uint64(3*5*4*8), cur.Total())
}

func TestCursor_PlaneLimit(t *testing.T) {
	c := NewCarrier(1, 2, 3)
	cur := NewCursor(c, 0)

	for i := 0; i < 6; i++ {
		assert.Equal(t, uint8(0), cur.Plane())
		require.NoError(t, cur.Advance())
	}
	assert.True(t, cur.Exhausted())
	assert.Equal(t, uint64(6), cur.Total())
}

func TestCursor_LimitClamped(t *testing.T) {
	cur := NewCursor(NewCarrier(1, 1, 1), 42)
	assert.Equal(t, uint64(8), cur.Total())
}

func TestCursor_EmptyCarrier(t *testing.T) {
	cur := NewCursor(&Carrier{}, MaxPlane)
	assert.True(t, cur.Exhausted())
	assert.Equal(t, uint64(0), cur.Remaining())
	assert.ErrorIs(t, cur.Advance(), ErrCapacityExhausted)
}

func TestCursor_Remaining(t *testing.T) {
	c := NewCarrier(2, 3, 3)
	cur := NewCursor(c, MaxPlane)
	total := cur.Total()

	for i := uint64(0); i < 25; i++ {
		require.NoError(t, cur.Advance())
	}
	assert.Equal(t, total-25, cur.Remaining())
	assert.Equal(t, uint8(1), cur.Plane())
}
