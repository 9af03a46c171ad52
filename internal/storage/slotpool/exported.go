package slotpool

import (
	"github.com/gostonefire/handlestore/internal/storage"
)

// Pool - Represents a generational slot allocator. Slots are addressed by index, recycled through
// a free list threaded through the slots' own link fields, and every occupation is stamped with a
// fresh value from a monotonically increasing generation counter private to the pool instance.
// A stale (index, generation) pair therefore never revalidates after its slot has been reused.
type Pool[T any] struct {
	slots      []slot[T]
	freeHead   int32
	size       int64
	generation uint64
}

// New - Returns a pointer to a new Pool instance with room for initialCapacity slots.
// Capacities below one defer all allocation to the first Emplace.
func New[T any](initialCapacity int64) (pool *Pool[T]) {
	pool = &Pool[T]{freeHead: noSlot}
	if initialCapacity > storage.MaxSlotIndex+1 {
		initialCapacity = storage.MaxSlotIndex + 1
	}
	if initialCapacity > 0 {
		pool.grow(initialCapacity)
	}

	return
}

// Emplace - Occupies a slot and returns a pointer to its zeroed payload together with the identity
// of the slot. The pointer aliases the slots array and is invalidated by any subsequent operation
// that can grow the pool.
func (P *Pool[T]) Emplace() (value *T, index int64, generation uint64) {
	if P.freeHead == noSlot {
		P.grow(storage.GrowCapacity(int64(len(P.slots))))
	}

	i := P.freeHead
	P.freeHead = P.slots[i].nextFree
	P.generation++
	P.slots[i] = slot[T]{generation: P.generation}
	P.size++

	return &P.slots[i].value, int64(i), P.generation
}

// Insert - Occupies a slot, stores value in it and returns the identity of the slot
func (P *Pool[T]) Insert(value T) (index int64, generation uint64) {
	v, index, generation := P.Emplace()
	*v = value

	return index, generation
}

// Ref - Returns a pointer to the payload of a live slot.
// The pointer aliases the slots array, see Emplace. A stale or out of range identity
// returns ok as false.
func (P *Pool[T]) Ref(index int64, generation uint64) (value *T, ok bool) {
	if !P.valid(index, generation) {
		return
	}

	value = &P.slots[index].value
	ok = true

	return
}

// Read - Returns a copy of the payload of a live slot
func (P *Pool[T]) Read(index int64, generation uint64) (value T, ok bool) {
	if !P.valid(index, generation) {
		return
	}

	value = P.slots[index].value
	ok = true

	return
}

// Remove - Empties the slot identified by index and generation and recycles it through the
// free list. It returns ok as false if the identity was already stale or out of range.
func (P *Pool[T]) Remove(index int64, generation uint64) (ok bool) {
	if !P.valid(index, generation) {
		return
	}

	P.slots[index] = slot[T]{generation: 0, nextFree: P.freeHead}
	P.freeHead = int32(index)
	P.size--
	ok = true

	return
}

// Next - Returns the first occupied slot with an index above prevIndex.
// A prevIndex of -1 starts the iteration. Iteration is by physical slot index, not by
// creation order.
func (P *Pool[T]) Next(prevIndex int64) (index int64, generation uint64, value *T, ok bool) {
	for i := prevIndex + 1; i < int64(len(P.slots)); i++ {
		if P.slots[i].generation != 0 {
			index = i
			generation = P.slots[i].generation
			value = &P.slots[i].value
			ok = true
			return
		}
	}

	return
}

// Len - Returns the number of occupied slots
func (P *Pool[T]) Len() int64 {
	return P.size
}

// Capacity - Returns the current number of slots, occupied and free
func (P *Pool[T]) Capacity() int64 {
	return int64(len(P.slots))
}
