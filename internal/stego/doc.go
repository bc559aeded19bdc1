// Package stego hides payloads in the low-order bits of 8-bit image channels.
//
// A Carrier is a row-major grid of channel bytes. Bits are written one slot at
// a time by a PlaneCodec that follows a Cursor through the grid. The cursor
// visits every channel of a pixel before moving to the next column, every
// column before moving to the next row, and every row of a bit-plane before
// escalating to the next higher plane.
//
// # Framing
//
// Two self-delimiting payload formats are supported:
//   - Text: 16-bit length (character count) followed by one byte per
//     character. Characters are limited to code points 0-255. Text may spill
//     into higher bit-planes once plane 0 is full.
//   - Binary: 64-bit length (byte count) followed by the bytes. Binary
//     payloads are confined to plane 0.
//
// All length prefixes and body bytes are written most-significant bit first.
//
// # Errors
//
// Every failure wraps one of the package sentinels, so callers can use
// errors.Is:
//   - ErrPayloadTooLarge: the payload does not fit; the carrier is untouched
//   - ErrValueOutOfRange: a value does not fit its bit field
//   - ErrCapacityExhausted: the cursor ran out of slots
//   - ErrMalformedFrame: a decoded length prefix promises more bits than remain
//   - ErrInvalidCarrier: the carrier's shape and pixel buffer disagree
//
// # Thread Safety
//
// Encode and decode calls keep all traversal state on the stack. Calls on
// distinct carriers can run concurrently. A carrier being encoded must not be
// read or written by anyone else until the call returns.
package stego
