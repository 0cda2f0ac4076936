package fastpfor

import "fmt"

// JustCopy is the identity codec: it copies words verbatim and advances
// both cursors by the same amount. compress and uncompress are the same
// operation.
type JustCopy struct{}

// NewJustCopy creates a JustCopy codec. It carries no state.
func NewJustCopy() *JustCopy {
	return &JustCopy{}
}

func (j *JustCopy) copy(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	if inputLength == 0 {
		return nil
	}
	inPos := inputCursor.Pos()
	outPos := outputCursor.Pos()
	if inPos+uint64(inputLength) > uint64(len(input)) {
		return fmt.Errorf("%w: need %d input words from position %d, have %d", ErrNotEnoughData, inputLength, inPos, len(input))
	}
	if outPos+uint64(inputLength) > uint64(len(output)) {
		return fmt.Errorf("%w: need %d output words, have %d from position %d", ErrOutputBufferTooSmall, inputLength, len(output), outPos)
	}
	copy(output[outPos:outPos+uint64(inputLength)], input[inPos:inPos+uint64(inputLength)])
	inputCursor.Advance(inputLength)
	outputCursor.Advance(inputLength)
	return nil
}

// Compress copies inputLength words from input to output.
func (j *JustCopy) Compress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	return j.copy(input, inputLength, inputCursor, output, outputCursor)
}

// Uncompress copies inputLength words from input to output.
func (j *JustCopy) Uncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	return j.copy(input, inputLength, inputCursor, output, outputCursor)
}

// HeadlessCompress is identical to Compress: JustCopy has no page header
// to begin with, so the headless and headed forms coincide.
func (j *JustCopy) HeadlessCompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	return j.copy(input, inputLength, inputCursor, output, outputCursor)
}

// HeadlessUncompress copies num words from input to output. num plays the
// same role inputLength does elsewhere in this package, since there is no
// length header to read back.
func (j *JustCopy) HeadlessUncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor, num uint32) error {
	return j.copy(input, num, inputCursor, output, outputCursor)
}
