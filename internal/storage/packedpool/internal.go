package packedpool

import (
	"fmt"

	"github.com/gostonefire/handlestore/internal/storage"
)

// noSlot - Sentinel for free list links that point nowhere
const noSlot int32 = -1

// mapping - Indirection entry for one slot id. A generation of 0 (zero) means the id is unused,
// in which case nextFree links it into the free list of ids. For a live id, position is where its
// element currently sits in the packed data array.
type mapping struct {
	generation uint64
	position   int32
	nextFree   int32
}

// grow - Extends the mapping array to newCapacity, threads the new ids onto the free list with the
// lowest id handed out first, and reserves matching capacity for the data and reverse arrays so the
// three grow in step. Running out of representable ids is a caller bug by contract and fatal.
func (P *Pool[T]) grow(newCapacity int64) {
	oldCapacity := int64(len(P.mappings))
	if newCapacity <= oldCapacity {
		panic(fmt.Sprintf("packed pool exhausted, id space holds at most %d slots", storage.MaxSlotIndex+1))
	}

	P.mappings = append(P.mappings, make([]mapping, newCapacity-oldCapacity)...)
	for i := newCapacity - 1; i >= oldCapacity; i-- {
		P.mappings[i].nextFree = P.freeHead
		P.freeHead = int32(i)
	}

	data := make([]T, len(P.data), newCapacity)
	copy(data, P.data)
	P.data = data

	reverse := make([]int32, len(P.reverse), newCapacity)
	copy(reverse, P.reverse)
	P.reverse = reverse
}

// valid - Returns true if index and generation identify a live slot id
func (P *Pool[T]) valid(index int64, generation uint64) bool {
	return generation != 0 && index >= 0 && index < int64(len(P.mappings)) && P.mappings[index].generation == generation
}
