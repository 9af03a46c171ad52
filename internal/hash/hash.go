package hash

import (
	"hash/crc32"
)

// SingleHashAlgorithm - The internally used hash algorithm is implemented using crc32.ChecksumIEEE to
// create a hash value over the key. The hash map then applies home = hash & (capacity - 1) to get the
// home slot, where capacity is the total number of cells in the backing block and always a power of two.
type SingleHashAlgorithm struct{}

// NewSingleHashAlgorithm - Returns a pointer to a new SingleHashAlgorithm instance
func NewSingleHashAlgorithm() *SingleHashAlgorithm {
	return &SingleHashAlgorithm{}
}

// HashKey - Given key it generates a 32 bit hash value over the full range
func (B *SingleHashAlgorithm) HashKey(key []byte) uint32 {
	return crc32.ChecksumIEEE(key)
}

// RoundUpToPowerOfTwo - Returns the smallest power of two that is equal to or greater than n.
// Values below 1 return 1.
func RoundUpToPowerOfTwo(n int64) int64 {
	if n < 1 {
		return 1
	}

	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++

	return n
}
