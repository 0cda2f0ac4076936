package fastpfor

import (
	"math/rand"

	"github.com/mhr3/streamvbyte"
)

// ----------------------------------------------------------------------------
// Shared corpus generators, used across the package's test files.
// ----------------------------------------------------------------------------

func genSequential(n int) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = uint32(i)
	}
	return out
}

func genConstant(n int, v uint32) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func genMixed(n int) []uint32 {
	out := make([]uint32, n)
	rng := rand.New(rand.NewSource(1234))
	acc := int64(1 << 20)
	for i := range out {
		gain := rng.Intn(4096)
		loss := rng.Intn(4096)
		acc += int64(gain - loss)
		if acc < 0 {
			acc = int64(rng.Intn(1 << 16))
		}
		out[i] = uint32(acc)
	}
	return out
}

func genRandomBelow(n int, bound uint32) []uint32 {
	out := make([]uint32, n)
	rng := rand.New(rand.NewSource(42))
	for i := range out {
		out[i] = rng.Uint32() % bound
	}
	return out
}

func genWithSpikes(n int, base uint32, spikeEvery int, spike uint32) []uint32 {
	out := make([]uint32, n)
	for i := range out {
		out[i] = base
		if spikeEvery > 0 && i%spikeEvery == 0 {
			out[i] = spike
		}
	}
	return out
}

// genStreamVByteCorpus round-trips a mixed-distribution sequence through an
// independently implemented varint codec before handing it to this
// package's tests. This keeps the generated corpus decoupled from this
// package's own encode path (streamvbyte never appears on this package's
// production wire format) while still producing plausible, non-trivial
// integer distributions.
func genStreamVByteCorpus(n int) []uint32 {
	src := genMixed(n)
	encoded := streamvbyte.EncodeUint32(src, nil)
	return streamvbyte.DecodeUint32(encoded, n, nil)
}
