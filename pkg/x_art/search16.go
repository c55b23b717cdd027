// file:artkv/pkg/x_art/search16.go
package x_art

import (
	"encoding/binary"
	"math/bits"
)

//---------------------
// Node16 Child Search
//---------------------

// Both strategies find the slot of c among the first n entries of a sorted
// key array and return -1 when it is absent. They must agree on every input.
type search16Func func(keys *[16]byte, n int, c byte) int

// findIndex16 is the platform-chosen strategy.
var findIndex16 search16Func = findIndexBinary

func init() {
	if bits.UintSize == 64 {
		findIndex16 = findIndexSWAR
	}
}

// findIndexBinary is the portable strategy.
func findIndexBinary(keys *[16]byte, n int, c byte) int {
	lo, hi := 0, n-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch k := keys[mid]; {
		case k < c:
			lo = mid + 1
		case k > c:
			hi = mid - 1
		default:
			return mid
		}
	}
	return -1
}

const (
	swarLo = 0x0101010101010101
	swarHi = 0x8080808080808080
)

// findIndexSWAR broadcasts c into two 64-bit lanes, compares all 16 stored
// bytes at once and masks the result to the occupied slots, so stale bytes
// past n can never match.
func findIndexSWAR(keys *[16]byte, n int, c byte) int {
	if n <= 0 {
		return -1
	}
	pattern := swarLo * uint64(c)
	if m := zeroBytes(binary.LittleEndian.Uint64(keys[0:8])^pattern) & laneMask(n); m != 0 {
		return bits.TrailingZeros64(m) >> 3
	}
	if n <= 8 {
		return -1
	}
	if m := zeroBytes(binary.LittleEndian.Uint64(keys[8:16])^pattern) & laneMask(n-8); m != 0 {
		return 8 + bits.TrailingZeros64(m)>>3
	}
	return -1
}

// zeroBytes sets the high bit of every zero byte of x. Bytes above a true
// zero byte may be flagged spuriously, so only the lowest flag is reliable.
func zeroBytes(x uint64) uint64 {
	return (x - swarLo) &^ x & swarHi
}

// laneMask keeps the flags of the first n bytes of a lane.
func laneMask(n int) uint64 {
	if n >= 8 {
		return ^uint64(0)
	}
	return 1<<(uint(n)*8) - 1
}

// insertPos16 returns the slot at which c keeps the first n keys sorted.
func insertPos16(keys *[16]byte, n int, c byte) int {
	lo, hi := 0, n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if keys[mid] < c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}
