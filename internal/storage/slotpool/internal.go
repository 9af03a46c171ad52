package slotpool

import (
	"fmt"

	"github.com/gostonefire/handlestore/internal/storage"
)

// noSlot - Sentinel for free list links that point nowhere
const noSlot int32 = -1

// slot - One allocation unit. A generation of 0 (zero) means the slot is empty, in which case
// nextFree links it into the free list. The payload itself is never used for free list threading,
// the nextFree field is the index-link equivalent that keeps the free list inside the slots array
// without a parallel structure.
type slot[T any] struct {
	generation uint64
	nextFree   int32
	value      T
}

// grow - Appends slots up to newCapacity and threads the new ones onto the free list so that the
// lowest index is handed out first. Existing slots are never relocated to other indexes, so
// previously issued handles stay valid across growth. Running out of representable indexes is
// a caller bug by contract and fatal.
func (P *Pool[T]) grow(newCapacity int64) {
	oldCapacity := int64(len(P.slots))
	if newCapacity <= oldCapacity {
		panic(fmt.Sprintf("slot pool exhausted, index space holds at most %d slots", storage.MaxSlotIndex+1))
	}

	P.slots = append(P.slots, make([]slot[T], newCapacity-oldCapacity)...)
	for i := newCapacity - 1; i >= oldCapacity; i-- {
		P.slots[i].nextFree = P.freeHead
		P.freeHead = int32(i)
	}
}

// valid - Returns true if index and generation identify a live slot
func (P *Pool[T]) valid(index int64, generation uint64) bool {
	return generation != 0 && index >= 0 && index < int64(len(P.slots)) && P.slots[index].generation == generation
}
