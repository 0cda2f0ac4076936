package fastpfor

// groupSize is the fixed number of integers BitPack32 packs or unpacks in
// one call. FastPFOR's regular (non-exception) payload and each exception
// class's payload are both packed in groups of exactly this many values.
const groupSize = 32

// maxUint32 is reused wherever a full-width mask is needed without
// triggering a 32-bit shift overflow.
const maxUint32 = ^uint32(0)

// Pack32 reads groupSize consecutive words from src[srcIx:srcIx+groupSize],
// each assumed to fit in b bits (b in [0, 32]), and writes b words into
// dst[dstIx:dstIx+b] such that the i-th source integer occupies bits
// [i*b, (i+1)*b) of the concatenated little-endian-bit output.
//
// For b == 0 this writes nothing. Only the low b bits of each value are
// stored; any higher bits are dropped. FastPFOR relies on this when it packs
// a whole block at its optimal width (see costmodel.go): the high bits of
// that block's exceptions are stored separately and patched back on decode.
func Pack32(src []uint32, srcIx int, dst []uint32, dstIx int, b int) {
	if b == 0 {
		return
	}

	var mask uint64
	if b >= 32 {
		mask = uint64(maxUint32)
	} else {
		mask = (uint64(1) << uint(b)) - 1
	}

	var acc uint64
	var bitsInAcc uint
	out := dstIx
	for i := 0; i < groupSize; i++ {
		acc |= (uint64(src[srcIx+i]) & mask) << bitsInAcc
		bitsInAcc += uint(b)
		for bitsInAcc >= 32 {
			dst[out] = uint32(acc)
			out++
			acc >>= 32
			bitsInAcc -= 32
		}
	}
	if bitsInAcc > 0 {
		dst[out] = uint32(acc)
	}
}

// Unpack32 is the inverse of Pack32: it reads b words from
// src[srcIx:srcIx+b] and writes groupSize words into dst[dstIx:dstIx+groupSize].
// For b == 0 it writes groupSize zeros.
func Unpack32(src []uint32, srcIx int, dst []uint32, dstIx int, b int) {
	if b == 0 {
		for i := 0; i < groupSize; i++ {
			dst[dstIx+i] = 0
		}
		return
	}

	var mask uint32
	if b >= 32 {
		mask = maxUint32
	} else {
		mask = (uint32(1) << uint(b)) - 1
	}

	var acc uint64
	var bitsInAcc uint
	in := srcIx
	for i := 0; i < groupSize; i++ {
		for bitsInAcc < uint(b) {
			acc |= uint64(src[in]) << bitsInAcc
			in++
			bitsInAcc += 32
		}
		dst[dstIx+i] = uint32(acc) & mask
		acc >>= uint(b)
		bitsInAcc -= uint(b)
	}
}
