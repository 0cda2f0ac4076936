package fastpfor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertPackRoundTrip(t *testing.T, src []uint32, b int) {
	t.Helper()
	dst := make([]uint32, b)
	Pack32(src, 0, dst, 0, b)
	got := make([]uint32, groupSize)
	Unpack32(dst, 0, got, 0, b)

	mask := uint32(maxUint32)
	if b < 32 {
		mask = (uint32(1) << uint(b)) - 1
	}
	want := make([]uint32, groupSize)
	for i, v := range src {
		want[i] = v & mask
	}
	assert.Equal(t, want, got, "round trip mismatch at width %d", b)
}

func TestPack32ZeroWidth(t *testing.T) {
	src := genSequential(groupSize)
	dst := []uint32{0xDEADBEEF}
	Pack32(src, 0, dst, 0, 0)
	assert.Equal(t, uint32(0xDEADBEEF), dst[0], "zero-width pack must write nothing")

	got := genConstant(groupSize, 0xFFFFFFFF)
	Unpack32(nil, 0, got, 0, 0)
	for i, v := range got {
		assert.Equalf(t, uint32(0), v, "unpack at width 0 must zero-fill index %d", i)
	}
}

func TestPack32AllWidths(t *testing.T) {
	for b := 1; b <= 32; b++ {
		b := b
		t.Run(fmt.Sprintf("width_%02d", b), func(t *testing.T) {
			var top uint32
			if b == 32 {
				top = maxUint32
			} else {
				top = (uint32(1) << uint(b)) - 1
			}
			src := make([]uint32, groupSize)
			for i := range src {
				src[i] = (uint32(i) * 2654435761) & top
			}
			assertPackRoundTrip(t, src, b)
		})
	}
}

func TestPack32MaxWidthAtBoundaryValues(t *testing.T) {
	src := make([]uint32, groupSize)
	for i := range src {
		if i%2 == 0 {
			src[i] = maxUint32
		} else {
			src[i] = 0
		}
	}
	assertPackRoundTrip(t, src, 32)
}

func TestPack32OffsetsIntoLargerBuffers(t *testing.T) {
	src := make([]uint32, groupSize*2)
	copy(src[groupSize:], genSequential(groupSize))

	const b = 11
	dst := make([]uint32, 3*b)
	Pack32(src, groupSize, dst, b, b)

	got := make([]uint32, groupSize)
	Unpack32(dst, b, got, 0, b)
	mask := uint32(1)<<b - 1
	for i := 0; i < groupSize; i++ {
		assert.Equal(t, uint32(i)&mask, got[i], "mismatch at index %d", i)
	}
}

func TestPack32WordCountMatchesWidth(t *testing.T) {
	src := genSequential(groupSize)
	for b := 1; b <= 32; b++ {
		dst := make([]uint32, b+1)
		dst[b] = 0xCAFEBABE // sentinel: must survive untouched
		Pack32(src, 0, dst, 0, b)
		assert.Equal(t, uint32(0xCAFEBABE), dst[b], "Pack32 wrote past its declared %d words", b)
	}
}
