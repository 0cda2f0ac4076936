// Package fastpfor implements the FastPFOR family of 32-bit unsigned
// integer compression codecs: a two-level Patched Frame-of-Reference page
// codec (FastPFOR itself), a classic LEB128-style VariableByte codec, an
// identity JustCopy codec, and a Composition pipeline that routes a
// block-aligned prefix through FastPFOR and the residual tail through
// VariableByte.
//
// Every operation takes caller-owned input/output buffers plus explicit
// read/write cursors; no operation resizes a buffer or retains a reference
// to one past the call. A codec instance owns mutable scratch (frequency
// tables, exception-payload arenas, metadata buffer) and must not be used
// concurrently from more than one goroutine at a time; independent
// instances are fully independent.
//
// References:
//   - https://github.com/fast-pack/FastPFor (reference C++ implementation)
//   - https://github.com/fast-pack/FastPFOR-rs (Rust port this package tracks)
package fastpfor

import (
	"fmt"
	"runtime"
)

// Block size constants. FastPFOR operates on whole blocks of exactly this
// many integers; the block size is a codec-instance parameter, not encoded
// in the stream, so an encoder and decoder must agree on it out of band.
const (
	BlockSize128 = 128
	BlockSize256 = 256

	// DefaultPageSize is the default number of integers handled per page.
	DefaultPageSize = 65536
)

// FastPFOR is a two-level PFOR page codec: it chooses an optimal per-block
// bit width via a cost model, separates regular values from exceptions,
// and bit-packs each population with BitPack32, interleaving the result
// into a single self-describing page (the layout encodePage writes and
// decodePage reads).
type FastPFOR struct {
	pageSize  uint32
	blockSize uint32

	meta *metaBuffer
	cost costModel

	// dataToBePacked[d] holds the exception payloads for class d
	// (max_bits - optimal_bits == d), grown monotonically across pages
	// within this instance's lifetime.
	dataToBePacked [33][]uint32
	// dataPointers[d] is the write/read cursor into dataToBePacked[d],
	// reset to zero at the start of every page.
	dataPointers [33]int
}

// NewFastPFOR creates a codec with the given page and block sizes,
// pre-allocating the metadata buffer and exception arenas for the
// worst-case page.
func NewFastPFOR(pageSize, blockSize uint32) *FastPFOR {
	f := &FastPFOR{
		pageSize:  pageSize,
		blockSize: blockSize,
		meta:      newMetaBuffer(int(pageSize), int(blockSize)),
	}
	initialArena := pageSize / 32 * 4
	for i := range f.dataToBePacked {
		f.dataToBePacked[i] = make([]uint32, initialArena)
	}
	return f
}

// NewDefaultFastPFOR creates a codec with DefaultPageSize and BlockSize256,
// matching the Rust reference's Default implementation.
func NewDefaultFastPFOR() *FastPFOR {
	return NewFastPFOR(DefaultPageSize, BlockSize256)
}

// BlockSize returns the codec's fixed block size, used by Composition to
// split an input into a block-aligned prefix and a residual tail.
func (f *FastPFOR) BlockSize() uint32 {
	return f.blockSize
}

// Compress writes inlength = greatestMultiple(inputLength, blockSize) as a
// header word followed by the compressed page sequence for the first
// inlength integers from input. If inputLength is smaller than one block,
// inlength is 0 and Compress writes nothing at all — this is a deliberate,
// documented lossy contract; callers that need to preserve sub-block tails
// should use Composition instead.
func (f *FastPFOR) Compress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) (err error) {
	defer func() { err = recoverAsError(recover(), err) }()

	inlength := greatestMultiple(inputLength, f.blockSize)
	if inlength == 0 {
		return nil
	}
	if uint64(inputCursor.Pos())+uint64(inlength) > uint64(len(input)) {
		return fmt.Errorf("%w: need %d input words from position %d, have %d", ErrNotEnoughData, inlength, inputCursor.Pos(), len(input))
	}
	if outputCursor.Pos() >= uint64(len(output)) {
		return fmt.Errorf("%w: no room for page header", ErrOutputBufferTooSmall)
	}

	output[outputCursor.Pos()] = inlength
	outputCursor.Increment()
	return f.HeadlessCompress(input, inlength, inputCursor, output, outputCursor)
}

// Uncompress reads one header word giving the source integer count, then
// decodes page(s) until exactly that many integers have been written to
// output.
func (f *FastPFOR) Uncompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) (err error) {
	defer func() { err = recoverAsError(recover(), err) }()

	if inputLength == 0 {
		return nil
	}
	if inputCursor.Pos() >= uint64(len(input)) {
		return fmt.Errorf("%w: missing page header word", ErrNotEnoughData)
	}
	outlength := input[inputCursor.Pos()]
	inputCursor.Increment()
	return f.HeadlessUncompress(input, outlength, inputCursor, output, outputCursor, outlength)
}

// HeadlessCompress encodes greatestMultiple(inputLength, blockSize)
// integers into one or more pages, without writing a length header; any
// remainder below one block is left unread. Callers using this entry point
// directly must track the encoded count themselves to decode.
func (f *FastPFOR) HeadlessCompress(input []uint32, inputLength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) (err error) {
	defer func() { err = recoverAsError(recover(), err) }()

	inlength := greatestMultiple(inputLength, f.blockSize)
	if uint64(inputCursor.Pos())+uint64(inlength) > uint64(len(input)) {
		return fmt.Errorf("%w: need %d input words from position %d, have %d", ErrNotEnoughData, inlength, inputCursor.Pos(), len(input))
	}

	finalInpos := uint32(inputCursor.Pos()) + inlength
	for uint32(inputCursor.Pos()) != finalInpos {
		thisSize := minUint32(f.pageSize, finalInpos-uint32(inputCursor.Pos()))
		f.encodePage(input, thisSize, inputCursor, output, outputCursor)
	}
	return nil
}

// HeadlessUncompress decodes greatestMultiple(inlength, blockSize) integers
// from one or more pages, without reading a length header; num is not used.
// It reproduces the Rust reference's asymmetric empty-input shim: when
// inlength is 0 and blockSize is 128, it returns success immediately
// writing nothing. A 256-block codec has no such shim: at inlength 0 it
// still returns ErrNotEnoughData when no input remains, and otherwise
// succeeds writing nothing.
func (f *FastPFOR) HeadlessUncompress(input []uint32, inlength uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor, num uint32) (err error) {
	defer func() { err = recoverAsError(recover(), err) }()

	if inlength == 0 && f.blockSize == BlockSize128 {
		return nil
	}
	if inputCursor.Pos() >= uint64(len(input)) {
		return fmt.Errorf("%w: missing page data from position %d", ErrNotEnoughData, inputCursor.Pos())
	}
	mynvalue := greatestMultiple(inlength, f.blockSize)
	finalOut := uint32(outputCursor.Pos()) + mynvalue
	if uint64(outputCursor.Pos())+uint64(mynvalue) > uint64(len(output)) {
		return fmt.Errorf("%w: need %d output words, have %d from position %d", ErrOutputBufferTooSmall, mynvalue, len(output), outputCursor.Pos())
	}
	for uint32(outputCursor.Pos()) != finalOut {
		thisSize := minUint32(f.pageSize, finalOut-uint32(outputCursor.Pos()))
		f.decodePage(input, inputCursor, output, outputCursor, thisSize)
	}
	return nil
}

// encodePage writes one page covering exactly thissize integers (a
// multiple of blockSize) starting at inputCursor, per §4.4's "page
// encoding procedure (write path)".
func (f *FastPFOR) encodePage(input []uint32, thissize uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor) {
	headerPos := uint32(outputCursor.Pos())
	outputCursor.Increment()
	tmpOutputOffset := uint32(outputCursor.Pos())

	for i := range f.dataPointers {
		f.dataPointers[i] = 0
	}
	f.meta.reset()

	tmpInputOffset := uint32(inputCursor.Pos())
	blockSize := f.blockSize
	numBlocks := thissize / blockSize

	for blk := uint32(0); blk < numBlocks; blk++ {
		optimalBits, maxBits, exceptionCount := f.cost.bestBFromData(input, int(tmpInputOffset), int(blockSize))

		f.meta.putByte(byte(optimalBits))
		f.meta.putByte(byte(exceptionCount))

		if exceptionCount > 0 {
			f.meta.putByte(byte(maxBits))
			index := maxBits - optimalBits
			needed := f.dataPointers[index] + exceptionCount
			if needed >= len(f.dataToBePacked[index]) {
				newSize := roundUpToGroupOf32(uint32(2 * needed))
				grown := make([]uint32, newSize)
				copy(grown, f.dataToBePacked[index])
				f.dataToBePacked[index] = grown
			}
			for k := uint32(0); k < blockSize; k++ {
				v := input[k+tmpInputOffset]
				if (v >> uint(optimalBits)) != 0 {
					f.meta.putByte(byte(k))
					f.dataToBePacked[index][f.dataPointers[index]] = v >> uint(optimalBits)
					f.dataPointers[index]++
				}
			}
		}

		for k := uint32(0); k < blockSize; k += groupSize {
			Pack32(input, int(tmpInputOffset+k), output, int(tmpOutputOffset), optimalBits)
			tmpOutputOffset += uint32(optimalBits)
		}
		tmpInputOffset += blockSize
	}
	inputCursor.SetPos(uint64(tmpInputOffset))

	output[headerPos] = tmpOutputOffset - headerPos

	byteSize := f.meta.len()
	output[tmpOutputOffset] = uint32(byteSize)
	tmpOutputOffset++
	howManyInts := f.meta.flushWords(output, int(tmpOutputOffset))
	tmpOutputOffset += uint32(howManyInts)

	var bitmap uint32
	for k := 2; k <= 32; k++ {
		if f.dataPointers[k] != 0 {
			bitmap |= 1 << uint(k-1)
		}
	}
	output[tmpOutputOffset] = bitmap
	tmpOutputOffset++

	for k := 2; k <= 32; k++ {
		if f.dataPointers[k] == 0 {
			continue
		}
		count := f.dataPointers[k]
		output[tmpOutputOffset] = uint32(count)
		tmpOutputOffset++
		j := 0
		for j < count {
			Pack32(f.dataToBePacked[k], j, output, int(tmpOutputOffset), k)
			tmpOutputOffset += uint32(k)
			j += groupSize
		}
		overflow := uint32(j - count)
		tmpOutputOffset -= (overflow * uint32(k)) / 32
	}

	outputCursor.SetPos(uint64(tmpOutputOffset))
}

// decodePage reverses encodePage for one page producing exactly thissize
// integers, per §4.4's "page decoding procedure (read path)".
func (f *FastPFOR) decodePage(input []uint32, inputCursor *Cursor, output []uint32, outputCursor *Cursor, thissize uint32) {
	initPos := uint32(inputCursor.Pos())
	whereMeta := input[initPos]
	inputCursor.Increment()
	inexcept := initPos + whereMeta

	bytesize := input[inexcept]
	inexcept++
	length := (bytesize + 3) / 4
	f.meta.loadFromWords(input, int(inexcept), int(bytesize))
	inexcept += length

	bitmap := input[inexcept]
	inexcept++

	for k := 2; k <= 32; k++ {
		if bitmap&(1<<uint(k-1)) == 0 {
			continue
		}
		size := input[inexcept]
		inexcept++
		roundedUp := roundUpToGroupOf32(size)
		if uint32(len(f.dataToBePacked[k])) < roundedUp {
			f.dataToBePacked[k] = make([]uint32, roundedUp)
		}

		needed := roundedUp / 32 * uint32(k)
		if inexcept+needed <= uint32(len(input)) {
			j := uint32(0)
			for j < size {
				Unpack32(input, int(inexcept), f.dataToBePacked[k], int(j), k)
				inexcept += uint32(k)
				j += groupSize
			}
			overflow := j - size
			inexcept -= (overflow * uint32(k)) / 32
		} else {
			scratch := make([]uint32, needed)
			initInexcept := inexcept
			copy(scratch, input[initInexcept:])
			j := uint32(0)
			for j < size {
				Unpack32(scratch, int(inexcept-initInexcept), f.dataToBePacked[k], int(j), k)
				inexcept += uint32(k)
				j += groupSize
			}
			overflow := j - size
			inexcept -= (overflow * uint32(k)) / 32
		}
	}

	for i := range f.dataPointers {
		f.dataPointers[i] = 0
	}
	tmpOutputOffset := uint32(outputCursor.Pos())
	tmpInputOffset := uint32(inputCursor.Pos())

	blockSize := f.blockSize
	runEnd := thissize / blockSize
	for i := uint32(0); i < runEnd; i++ {
		b := int(f.meta.getByte())
		cexcept := int(f.meta.getByte())

		for k := uint32(0); k < blockSize; k += groupSize {
			Unpack32(input, int(tmpInputOffset), output, int(tmpOutputOffset+k), b)
			tmpInputOffset += uint32(b)
		}

		if cexcept > 0 {
			maxbits := int(f.meta.getByte())
			index := maxbits - b
			if index == 1 {
				for j := 0; j < cexcept; j++ {
					pos := f.meta.getByte()
					output[uint32(pos)+tmpOutputOffset] |= 1 << uint(b)
				}
			} else {
				for j := 0; j < cexcept; j++ {
					pos := f.meta.getByte()
					exceptValue := f.dataToBePacked[index][f.dataPointers[index]]
					output[uint32(pos)+tmpOutputOffset] |= exceptValue << uint(b)
					f.dataPointers[index]++
				}
			}
		}
		tmpOutputOffset += blockSize
	}

	outputCursor.SetPos(uint64(tmpOutputOffset))
	inputCursor.SetPos(uint64(inexcept))
}

// recoverAsError converts a recovered runtime panic (the symptom of an
// undersized output or truncated input buffer) into ErrOutputBufferTooSmall,
// preserving any error already being returned. It does not tell the two
// buffers apart: a truncated input is also reported as
// ErrOutputBufferTooSmall. A panic that is not a runtime.Error is
// re-raised.
func recoverAsError(r any, existing error) error {
	if r == nil {
		return existing
	}
	if re, ok := r.(runtime.Error); ok {
		return fmt.Errorf("%w: %v", ErrOutputBufferTooSmall, re)
	}
	panic(r)
}
