package fastpfor

// metaBuffer is a growable, byte-granular buffer used to record per-block
// metadata (optimal bits, exception counts, exception positions) while
// encoding a page, and to replay it while decoding one. Bytes are appended
// on the write side and popped from the front on the read side; the whole
// buffer is reset at each page boundary.
//
// Grounded on the Rust reference's ByteBuffer (a thin BytesMut wrapper) and
// the teacher's appendSpace growth idiom.
type metaBuffer struct {
	buf  []byte
	read int
}

// newMetaBuffer preallocates capacity sized for the worst case single page:
// 3 metadata bytes per block (optimal_bits, exception_count, max_bits) plus
// up to one position byte per value, per §4.3.
func newMetaBuffer(pageSize, blockSize int) *metaBuffer {
	return &metaBuffer{
		buf: make([]byte, 0, 3*(pageSize/blockSize)+pageSize),
	}
}

// reset clears both the write content and the read cursor, preparing the
// buffer for a new page.
func (m *metaBuffer) reset() {
	m.buf = m.buf[:0]
	m.read = 0
}

// putByte appends one byte to the buffer.
func (m *metaBuffer) putByte(b byte) {
	m.buf = append(m.buf, b)
}

// getByte pops one byte from the front of the buffer.
func (m *metaBuffer) getByte() byte {
	b := m.buf[m.read]
	m.read++
	return b
}

// len returns the number of bytes currently written (ignores read
// position; used while encoding, before any reads happen).
func (m *metaBuffer) len() int {
	return len(m.buf)
}

// loadFromWords clears the buffer and refills it by copying byteCount
// bytes out of little-endian words starting at src[srcIx], resetting the
// read cursor to the front. Used when decoding a page: the metadata
// section is stored word-aligned but must be read back byte by byte.
func (m *metaBuffer) loadFromWords(src []uint32, srcIx, byteCount int) {
	m.buf = m.buf[:0]
	wordCount := (byteCount + 3) / 4
	for i := 0; i < wordCount; i++ {
		var wordBytes [4]byte
		bo.PutUint32(wordBytes[:], src[srcIx+i])
		m.buf = append(m.buf, wordBytes[:]...)
	}
	m.buf = m.buf[:byteCount]
	m.read = 0
}

// flushWords writes the buffer's content into dst[dstIx:], zero-padded to
// a multiple of 4 bytes, as little-endian 32-bit words. It returns the
// number of words written; the buffer's byte length (pre-padding) is
// reported separately by the caller via len() before padding is applied.
func (m *metaBuffer) flushWords(dst []uint32, dstIx int) int {
	for len(m.buf)%4 != 0 {
		m.buf = append(m.buf, 0)
	}
	words := len(m.buf) / 4
	for i := 0; i < words; i++ {
		dst[dstIx+i] = bo.Uint32(m.buf[i*4 : i*4+4])
	}
	return words
}
