package fastpfor

import "math/bits"

// overheadPerException is the assumed cost, in bits, of storing a single
// exception's position byte (§4.2).
const overheadPerException = 8

// costModel holds the scratch state for picking a per-block bit width. It
// is embedded in FastPFOR so repeated calls across blocks/pages reuse the
// same frequency table instead of allocating one per block.
type costModel struct {
	freqs [33]uint32
}

// bitsNeeded returns the number of bits required to represent v (0 for
// v == 0), matching the Rust reference's helpers::bits.
func bitsNeeded(v uint32) int {
	return bits.Len32(v)
}

// bestBFromData analyzes block (exactly blockSize values starting at pos in
// values, or fewer at the tail of the input) and picks the bit width that
// minimizes the modeled storage cost, per §4.2.
//
// Returns the chosen optimalBits, the block's true maxBits, and the number
// of values that don't fit in optimalBits (its exceptions).
func (c *costModel) bestBFromData(values []uint32, pos, blockSize int) (optimalBits, maxBits, exceptionCount int) {
	for i := range c.freqs {
		c.freqs[i] = 0
	}

	end := pos + blockSize
	if end > len(values) {
		end = len(values)
	}
	for k := pos; k < end; k++ {
		c.freqs[bitsNeeded(values[k])]++
	}

	optimalBits = 32
	for c.freqs[optimalBits] == 0 {
		optimalBits--
	}
	maxBits = optimalBits

	bestCost := uint32(optimalBits) * uint32(blockSize)
	var cexcept uint32
	exceptionCount = 0

	for b := optimalBits - 1; b >= 0; b-- {
		cexcept += c.freqs[b+1]
		if cexcept == uint32(blockSize) {
			break
		}
		thisCost := cexcept*overheadPerException + cexcept*uint32(maxBits-b) + uint32(b)*uint32(blockSize) + 8
		if maxBits-b == 1 {
			thisCost -= cexcept
		}
		if thisCost < bestCost {
			bestCost = thisCost
			optimalBits = b
			exceptionCount = int(cexcept)
		}
	}

	return optimalBits, maxBits, exceptionCount
}
