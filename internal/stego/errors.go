package stego

import "errors"

var (
	// ErrCapacityExhausted is returned when a read or write is attempted after
	// the cursor has consumed every slot it is allowed to visit.
	ErrCapacityExhausted = errors.New("no available slot remaining (image filled)")

	// ErrPayloadTooLarge is returned by capacity prechecks, before the carrier
	// is modified.
	ErrPayloadTooLarge = errors.New("carrier image not big enough to hold the payload")

	// ErrValueOutOfRange is returned when a value cannot be packed into its
	// fixed-width bit field.
	ErrValueOutOfRange = errors.New("value larger than its bit field")

	// ErrMalformedFrame is returned on decode when the length prefix declares
	// a body longer than the carrier can hold.
	ErrMalformedFrame = errors.New("malformed frame")

	ErrInvalidCarrier = errors.New("invalid carrier")
)
