package fastpfor

import "fmt"

// IntegerCodec is the common compress/uncompress shape shared by every
// concrete codec in this package.
type IntegerCodec interface {
	Compress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error
	Uncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error
}

// Skippable is the headless variant of IntegerCodec: no inlength header
// word in the stream, so HeadlessUncompress takes the expected output
// count explicitly instead of reading it back. FastPFOR and JustCopy
// support it fully; VariableByte implements the interface but its
// HeadlessUncompress always returns ErrUnimplemented, since a bare
// variable-byte run has no way to recover a value count on its own.
type Skippable interface {
	HeadlessCompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error
	HeadlessUncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor, num uint32) error
}

// Codec is a tagged union over FastPFOR, VariableByte, and JustCopy,
// letting a caller pick a concrete codec at runtime and dispatch through
// one type. Composition is deliberately not a Codec variant: its
// uncompress takes the original decoded count rather than a buffer word
// count, which the slice convenience below can't infer generically.
type Codec struct {
	fastPFOR     *FastPFOR
	variableByte *VariableByte
	justCopy     *JustCopy
}

// NewFastPFORCodec wraps f as a Codec.
func NewFastPFORCodec(f *FastPFOR) Codec {
	return Codec{fastPFOR: f}
}

// NewVariableByteCodec wraps v as a Codec.
func NewVariableByteCodec(v *VariableByte) Codec {
	return Codec{variableByte: v}
}

// NewJustCopyCodec wraps j as a Codec.
func NewJustCopyCodec(j *JustCopy) Codec {
	return Codec{justCopy: j}
}

func (c Codec) inner() IntegerCodec {
	switch {
	case c.fastPFOR != nil:
		return c.fastPFOR
	case c.variableByte != nil:
		return c.variableByte
	case c.justCopy != nil:
		return c.justCopy
	default:
		panic("fastpfor: Codec holds no concrete codec")
	}
}

func (c Codec) skippable() Skippable {
	switch {
	case c.fastPFOR != nil:
		return c.fastPFOR
	case c.variableByte != nil:
		return c.variableByte
	case c.justCopy != nil:
		return c.justCopy
	default:
		panic("fastpfor: Codec holds no concrete codec")
	}
}

// HeadlessCompress dispatches to the wrapped codec's HeadlessCompress.
func (c Codec) HeadlessCompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	return c.skippable().HeadlessCompress(input, inputLength, inputCursor, output, outputCursor)
}

// HeadlessUncompress dispatches to the wrapped codec's HeadlessUncompress.
func (c Codec) HeadlessUncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor, num uint32) error {
	return c.skippable().HeadlessUncompress(input, inputLength, inputCursor, output, outputCursor, num)
}

// Compress dispatches to the wrapped codec's Compress.
func (c Codec) Compress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	return c.inner().Compress(input, inputLength, inputCursor, output, outputCursor)
}

// Uncompress dispatches to the wrapped codec's Uncompress.
func (c Codec) Uncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	return c.inner().Uncompress(input, inputLength, inputCursor, output, outputCursor)
}

// CompressToSlice compresses all of input into output starting at position
// 0 and returns the exact sub-slice of output that was written.
func (c Codec) CompressToSlice(input []uint32, output []uint32) ([]uint32, error) {
	inputLength, err := lengthAsUint32(len(input))
	if err != nil {
		return nil, err
	}
	inputCursor, outputCursor := NewCursor(), NewCursor()
	if err := c.Compress(input, inputLength, inputCursor, output, outputCursor); err != nil {
		return nil, err
	}
	return output[:outputCursor.Pos()], nil
}

// DecompressToSlice decompresses all of input into output starting at
// position 0 and returns the exact sub-slice of output that was written.
func (c Codec) DecompressToSlice(input []uint32, output []uint32) ([]uint32, error) {
	inputLength, err := lengthAsUint32(len(input))
	if err != nil {
		return nil, err
	}
	inputCursor, outputCursor := NewCursor(), NewCursor()
	if err := c.Uncompress(input, inputLength, inputCursor, output, outputCursor); err != nil {
		return nil, err
	}
	return output[:outputCursor.Pos()], nil
}

// lengthAsUint32 converts a slice length to the uint32 width every cursor
// and codec in this package operates on, failing with InvalidInputLength
// rather than silently truncating.
func lengthAsUint32(n int) (uint32, error) {
	if n < 0 || uint64(n) > uint64(maxUint32) {
		return 0, fmt.Errorf("%w: %d does not fit in a 32-bit cursor", ErrInvalidInputLength, n)
	}
	return uint32(n), nil
}
