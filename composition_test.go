package fastpfor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertCompositionRoundTrip(t *testing.T, blockSize uint32, src []uint32) {
	t.Helper()
	comp := NewComposition(NewFastPFOR(DefaultPageSize, blockSize), NewVariableByte())
	output := make([]uint32, 2*len(src)+1024)
	inputCursor, outputCursor := NewCursor(), NewCursor()
	err := comp.Compress(src, uint32(len(src)), inputCursor, output, outputCursor)
	assert.NoError(t, err)
	compressed := output[:outputCursor.Pos()]

	comp2 := NewComposition(NewFastPFOR(DefaultPageSize, blockSize), NewVariableByte())
	decoded := make([]uint32, len(src))
	inputCursor, outputCursor = NewCursor(), NewCursor()
	err = comp2.Uncompress(compressed, uint32(len(src)), inputCursor, decoded, outputCursor)
	assert.NoError(t, err)
	assert.Equal(t, uint64(len(src)), outputCursor.Pos())
	if len(src) == 0 {
		assert.Empty(t, decoded)
	} else {
		assert.Equal(t, src, decoded)
	}
}

func TestCompositionRoundTripExactMultipleOfBlock(t *testing.T) {
	assertCompositionRoundTrip(t, BlockSize128, genSequential(256))
}

func TestCompositionRoundTripWithTail(t *testing.T) {
	assertCompositionRoundTrip(t, BlockSize128, genSequential(300))
}

func TestCompositionRoundTripAllTailNoBlocks(t *testing.T) {
	assertCompositionRoundTrip(t, BlockSize128, genSequential(50))
}

func TestCompositionRoundTripEmpty(t *testing.T) {
	assertCompositionRoundTrip(t, BlockSize128, nil)
}

func TestCompositionRoundTripExactlyOneBlockPlusOne(t *testing.T) {
	assertCompositionRoundTrip(t, BlockSize256, genMixed(257))
}

func TestCompositionCompressSkipsTailHeaderWhenAligned(t *testing.T) {
	comp := NewComposition(NewFastPFOR(DefaultPageSize, BlockSize128), NewVariableByte())
	src := genSequential(256)
	output := make([]uint32, 2*len(src)+1024)
	inputCursor, outputCursor := NewCursor(), NewCursor()
	err := comp.Compress(src, uint32(len(src)), inputCursor, output, outputCursor)
	assert.NoError(t, err)

	plainFastPFOR := NewFastPFOR(DefaultPageSize, BlockSize128)
	plainOutput := make([]uint32, 2*len(src)+1024)
	plainInputCursor, plainOutputCursor := NewCursor(), NewCursor()
	assert.NoError(t, plainFastPFOR.Compress(src, uint32(len(src)), plainInputCursor, plainOutput, plainOutputCursor))

	assert.Equal(t, plainOutputCursor.Pos(), outputCursor.Pos(), "an aligned input should compress identically through Composition and FastPFOR alone")
}

func TestCompositionUncompressMissingTailHeader(t *testing.T) {
	comp := NewComposition(NewFastPFOR(DefaultPageSize, BlockSize128), NewVariableByte())
	inputCursor, outputCursor := NewCursor(), NewCursor()
	output := make([]uint32, 10)
	err := comp.Uncompress([]uint32{}, 10, inputCursor, output, outputCursor)
	assert.ErrorIs(t, err, ErrNotEnoughData)
}
