package storage

// IndexBits - Number of bits in a packed handle that holds the slot index
const IndexBits = 24

// GenerationBits - Number of bits in a packed handle that holds the generation stamp
const GenerationBits = 40

// MaxSlotIndex - Highest slot index that can be represented in a packed handle
const MaxSlotIndex int64 = 1<<IndexBits - 1

// MinPoolCapacity - Smallest capacity a slot or packed pool grows to
const MinPoolCapacity int64 = 8

// GrowCapacity - Returns the capacity to grow a pool to, given its current capacity.
// Growth is by half the current capacity, but never below MinPoolCapacity and never
// beyond what the handle index width can address.
func GrowCapacity(capacity int64) int64 {
	newCapacity := capacity + capacity/2
	if newCapacity < MinPoolCapacity {
		newCapacity = MinPoolCapacity
	}
	if newCapacity > MaxSlotIndex+1 {
		newCapacity = MaxSlotIndex + 1
	}

	return newCapacity
}
