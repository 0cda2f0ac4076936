package fastpfor

import "errors"

// Sentinel errors matching the error taxonomy every codec operation in this
// package reports through. Wrap these with fmt.Errorf("%w: ...") for a more
// specific message; callers can still recover the kind with errors.Is.
var (
	// ErrUnimplemented is returned by an entry point that does not provide
	// the requested operation (e.g. VariableByte's headless uncompress).
	ErrUnimplemented = errors.New("fastpfor: unimplemented")

	// ErrNotEnoughData is returned when the input buffer holds fewer words
	// than the stream header or page layout requires.
	ErrNotEnoughData = errors.New("fastpfor: not enough data")

	// ErrOutputBufferTooSmall is returned when the output buffer cannot
	// fit the data an operation would produce.
	ErrOutputBufferTooSmall = errors.New("fastpfor: output buffer too small")

	// ErrInvalidInputLength is returned when an input count does not fit
	// the width of the cursor/position type used to track it.
	ErrInvalidInputLength = errors.New("fastpfor: invalid input length")
)
