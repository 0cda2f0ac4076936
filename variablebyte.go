package fastpfor

import "fmt"

// VariableByte is a classic LEB128-style variable-byte codec: each 32-bit
// value is split into 7-bit groups, continuation bytes carry the high bit
// set, and the final byte for a value carries it clear. It has no
// block-size constraint and no internal state beyond a reusable scratch
// buffer, so a single instance can be shared across unrelated calls.
type VariableByte struct {
	buf []byte
}

// NewVariableByte creates a ready-to-use VariableByte codec.
func NewVariableByte() *VariableByte {
	return &VariableByte{}
}

// HeadlessCompress writes inputLength values from input as a run of
// variable-byte groups, padded with 0xFF bytes to a whole number of output
// words. The padding follows the last value's terminal byte and every pad
// byte has its continuation bit set, so Uncompress reads it as an
// unterminated run at the end of the input and emits no value for it.
func (v *VariableByte) HeadlessCompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	if inputLength == 0 {
		return nil
	}

	start := inputCursor.Pos()
	if start+uint64(inputLength) > uint64(len(input)) {
		return fmt.Errorf("%w: need %d input words from position %d, have %d", ErrNotEnoughData, inputLength, start, len(input))
	}

	v.buf = v.buf[:0]
	for k := start; k < start+uint64(inputLength); k++ {
		val := input[k]
		switch {
		case val < 1<<7:
			v.buf = append(v.buf, byte(val&0x7F))
		case val < 1<<14:
			v.buf = append(v.buf,
				byte(val&0x7F)|0x80,
				byte(val>>7))
		case val < 1<<21:
			v.buf = append(v.buf,
				byte(val&0x7F)|0x80,
				byte((val>>7)&0x7F)|0x80,
				byte(val>>14))
		case val < 1<<28:
			v.buf = append(v.buf,
				byte(val&0x7F)|0x80,
				byte((val>>7)&0x7F)|0x80,
				byte((val>>14)&0x7F)|0x80,
				byte(val>>21))
		default:
			v.buf = append(v.buf,
				byte(val&0x7F)|0x80,
				byte((val>>7)&0x7F)|0x80,
				byte((val>>14)&0x7F)|0x80,
				byte((val>>21)&0x7F)|0x80,
				byte(val>>28))
		}
	}
	for len(v.buf)%4 != 0 {
		v.buf = append(v.buf, 0xFF)
	}

	words := len(v.buf) / 4
	outPos := outputCursor.Pos()
	if outPos+uint64(words) > uint64(len(output)) {
		return fmt.Errorf("%w: need %d output words, have %d from position %d", ErrOutputBufferTooSmall, words, len(output), outPos)
	}
	for i := 0; i < words; i++ {
		output[int(outPos)+i] = bo.Uint32(v.buf[i*4 : i*4+4])
	}
	outputCursor.Advance(uint32(words))
	inputCursor.Advance(inputLength)
	return nil
}

// HeadlessUncompress has no defined wire format to recover a value count
// from a bare variable-byte run without a length prefix, so it is
// unimplemented, matching the reference codec.
func (v *VariableByte) HeadlessUncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor, num uint32) error {
	return ErrUnimplemented
}

// Compress is headless for this codec: there is no separate page header,
// so it simply delegates.
func (v *VariableByte) Compress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	return v.HeadlessCompress(input, inputLength, inputCursor, output, outputCursor)
}

// Uncompress reads inputLength words (byte_length = inputLength*4 bytes) of
// variable-byte-encoded data and decodes as many values as that many bytes
// contain. A 10-byte lookahead lets the common case decode without a
// byte-by-byte continuation check; the last few bytes of input fall
// through to a slow byte-at-a-time tail.
func (v *VariableByte) Uncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) error {
	if inputLength == 0 {
		return nil
	}

	startWord := inputCursor.Pos()
	if startWord+uint64(inputLength) > uint64(len(input)) {
		return fmt.Errorf("%w: need %d input words from position %d, have %d", ErrNotEnoughData, inputLength, startWord, len(input))
	}

	byteLength := int(inputLength) * 4
	bytes := make([]byte, byteLength)
	for i := 0; i < int(inputLength); i++ {
		bo.PutUint32(bytes[i*4:i*4+4], input[int(startWord)+i])
	}

	bytePos := 0
	tmpOutpos := int(outputCursor.Pos())

	for bytePos+10 <= byteLength {
		var val uint32
		bytesRead := 0
		for i := 0; i < 5; i++ {
			c := bytes[bytePos+i]
			if i < 4 {
				val |= uint32(c&0x7F) << uint(i*7)
				if c < 128 {
					bytesRead = i + 1
					break
				}
			} else {
				val |= uint32(c&0x0F) << 28
				bytesRead = 5
			}
		}
		bytePos += bytesRead
		if tmpOutpos >= len(output) {
			return fmt.Errorf("%w: decoded output exceeds %d words", ErrOutputBufferTooSmall, len(output))
		}
		output[tmpOutpos] = val
		tmpOutpos++
	}

	for bytePos < byteLength {
		var shift uint
		var val uint32
		for bytePos < byteLength {
			c := bytes[bytePos]
			bytePos++
			val += uint32(c&0x7F) << shift
			if c < 128 {
				if tmpOutpos >= len(output) {
					return fmt.Errorf("%w: decoded output exceeds %d words", ErrOutputBufferTooSmall, len(output))
				}
				output[tmpOutpos] = val
				tmpOutpos++
				break
			}
			shift += 7
		}
	}

	outputCursor.SetPos(uint64(tmpOutpos))
	inputCursor.Advance(inputLength)
	return nil
}
