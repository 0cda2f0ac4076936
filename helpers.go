package fastpfor

// greatestMultiple returns the largest multiple of factor that is <= value,
// i.e. value rounded down to a multiple of factor. Used to compute the
// block-aligned prefix length a page operation actually consumes.
func greatestMultiple(value, factor uint32) uint32 {
	return value - value%factor
}

// roundUpToGroupOf32 rounds n up to the next multiple of 32, used to size
// exception-payload arenas so they stay aligned to BitPack32's group size.
func roundUpToGroupOf32(n uint32) uint32 {
	return greatestMultiple(n+31, 32)
}

func minUint32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
