package webgl

import "math/bits"

// nextPow2 returns the smallest power of two >= v, and 1 for v <= 1.
func nextPow2(v int) int {
	if v <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(v-1))
}

// log2 returns floor(log2(v)), and 0 for v <= 0.
func log2(v int) int {
	if v <= 0 {
		return 0
	}
	return bits.Len(uint(v)) - 1
}

// mipLevels returns the highest mip level addressable for a texture whose
// largest dimension may be size.
func mipLevels(size int) int {
	return log2(nextPow2(size))
}
