package stego

import "fmt"

// MaxPlane is the index of the most significant bit of a channel byte.
const MaxPlane = 7

// Cursor walks the bit slots of a carrier in traversal order.
//
// The channel index advances fastest, then the column, then the row. When the
// last row of a plane is passed the cursor escalates to the next plane and
// starts again at (0, 0, 0). A cursor never goes beyond its limit plane; once
// the final slot has been passed it is exhausted and every further operation
// fails with ErrCapacityExhausted.
type Cursor struct {
	height   int
	width    int
	channels int

	row   int
	col   int
	ch    int
	plane uint8

	limit     uint8
	exhausted bool
}

// NewCursor returns a cursor positioned on the first slot of c.
//
// Parameters:
//   - c: The carrier to traverse. Only its shape is used.
//   - limit: The highest plane the cursor may escalate to (0 disables
//     escalation, MaxPlane allows all eight planes).
//
// A carrier with no slots produces a cursor that is already exhausted.
func NewCursor(c *Carrier, limit uint8) *Cursor {
	if limit > MaxPlane {
		limit = MaxPlane
	}
	cur := &Cursor{
		height:   c.Height,
		width:    c.Width,
		channels: c.Channels,
		limit:    limit,
	}
	if c.Height <= 0 || c.Width <= 0 || c.Channels <= 0 {
		cur.exhausted = true
	}
	return cur
}

// Advance moves the cursor to the next slot.
//
// Passing the final slot of the limit plane is not an error in itself; it
// leaves the cursor exhausted. Calling Advance on an exhausted cursor returns
// ErrCapacityExhausted.
func (c *Cursor) Advance() error {
	if c.exhausted {
		return c.exhaustedError()
	}

	c.ch++
	if c.ch < c.channels {
		return nil
	}
	c.ch = 0

	c.col++
	if c.col < c.width {
		return nil
	}
	c.col = 0

	c.row++
	if c.row < c.height {
		return nil
	}
	c.row = 0

	if c.plane == c.limit {
		c.exhausted = true
		return nil
	}
	c.plane++
	return nil
}

// Position returns the current (row, column, channel) and plane.
func (c *Cursor) Position() (row, col, ch int, plane uint8) {
	return c.row, c.col, c.ch, c.plane
}

// Plane returns the active bit-plane.
func (c *Cursor) Plane() uint8 {
	return c.plane
}

// Exhausted reports whether every slot up to the limit plane has been used.
func (c *Cursor) Exhausted() bool {
	return c.exhausted
}

// Total returns the number of slots the cursor enumerates.
func (c *Cursor) Total() uint64 {
	if c.height <= 0 || c.width <= 0 || c.channels <= 0 {
		return 0
	}
	return uint64(c.height) * uint64(c.width) * uint64(c.channels) * (uint64(c.limit) + 1)
}

// Consumed returns the number of slots already passed.
func (c *Cursor) Consumed() uint64 {
	if c.exhausted {
		return c.Total()
	}
	perPlane := uint64(c.height) * uint64(c.width) * uint64(c.channels)
	inPlane := (uint64(c.row)*uint64(c.width)+uint64(c.col))*uint64(c.channels) + uint64(c.ch)
	return uint64(c.plane)*perPlane + inPlane
}

// Remaining returns the number of slots still available.
func (c *Cursor) Remaining() uint64 {
	return c.Total() - c.Consumed()
}

func (c *Cursor) exhaustedError() error {
	return fmt.Errorf("%w: all %d slots through plane %d consumed", ErrCapacityExhausted, c.Total(), c.limit)
}
