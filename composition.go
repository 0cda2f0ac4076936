package fastpfor

import "fmt"

// Composition pairs a block-granular primary codec (FastPFOR) with
// VariableByte for whatever residual tail doesn't fill a whole block. The
// primary's own page header lets its decode consume exactly its share of
// the input; the tail, which VariableByte cannot self-delimit, gets one
// extra header word written by Composition itself recording the tail's
// encoded word count.
type Composition struct {
	primary   *FastPFOR
	secondary *VariableByte
}

// NewComposition creates a Composition codec from a primary block codec
// and a VariableByte tail codec.
func NewComposition(primary *FastPFOR, secondary *VariableByte) *Composition {
	return &Composition{primary: primary, secondary: secondary}
}

// Compress splits inputLength values at the primary's block boundary,
// compressing the block-aligned prefix with the primary codec and the
// remainder with VariableByte behind a one-word length header.
func (c *Composition) Compress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	blockSize := c.primary.BlockSize()
	tail := inputLength % blockSize
	primaryCount := inputLength - tail

	if err := c.primary.Compress(input, primaryCount, inputCursor, output, outputCursor); err != nil {
		return err
	}
	if tail == 0 {
		return nil
	}

	if outputCursor.Pos() >= uint64(len(output)) {
		return fmt.Errorf("%w: no room for tail header", ErrOutputBufferTooSmall)
	}
	tailHeaderPos := outputCursor.Pos()
	outputCursor.Increment()

	if err := c.secondary.Compress(input, tail, inputCursor, output, outputCursor); err != nil {
		return err
	}
	output[tailHeaderPos] = uint32(outputCursor.Pos() - tailHeaderPos - 1)
	return nil
}

// Uncompress reverses Compress: inputLength is the original number of
// decoded values, which the caller is assumed to track (see the package's
// non-goal on recovering a length the caller never kept). It decodes the
// primary's page(s) for the block-aligned prefix, then reads Composition's
// own tail-length header and decodes the VariableByte remainder.
func (c *Composition) Uncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	blockSize := c.primary.BlockSize()
	tail := inputLength % blockSize
	primaryCount := inputLength - tail

	if primaryCount > 0 {
		if err := c.primary.Uncompress(input, primaryCount, inputCursor, output, outputCursor); err != nil {
			return err
		}
	}
	if tail == 0 {
		return nil
	}

	if inputCursor.Pos() >= uint64(len(input)) {
		return fmt.Errorf("%w: missing tail header", ErrNotEnoughData)
	}
	tailWords := input[inputCursor.Pos()]
	inputCursor.Increment()

	return c.secondary.Uncompress(input, tailWords, inputCursor, output, outputCursor)
}
