package packedpool

import (
	"fmt"

	"github.com/gostonefire/handlestore/internal/storage"
)

// Pool - Represents a compacting slot allocator with the same identity contract as the plain slot
// pool, plus the guarantee that live elements always occupy the contiguous prefix [0, size) of the
// data array. Identity stability and compactness are reconciled through a second indirection: the
// mapping array translates a stable slot id to the current physical position, and the reverse array
// translates a physical position back to the slot id stored there.
type Pool[T any] struct {
	mappings   []mapping
	reverse    []int32
	data       []T
	freeHead   int32
	generation uint64
}

// New - Returns a pointer to a new Pool instance with room for initialCapacity elements.
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

// Emplace - Occupies a slot id, appends a zeroed element at the end of the packed data array and
// returns a pointer to it together with the identity of the slot. The pointer aliases the data
// array and is invalidated by any subsequent operation that can grow or compact the pool.
func (P *Pool[T]) Emplace() (value *T, index int64, generation uint64) {
	if P.freeHead == noSlot {
		P.grow(storage.GrowCapacity(int64(len(P.mappings))))
	}

	id := P.freeHead
	P.freeHead = P.mappings[id].nextFree
	P.generation++

	position := int32(len(P.data))
	var empty T
	P.data = append(P.data, empty)
	P.reverse = append(P.reverse, id)
	P.mappings[id] = mapping{generation: P.generation, position: position}

	return &P.data[position], int64(id), P.generation
}

// Insert - Occupies a slot id, stores value at the end of the packed data array and returns the
// identity of the slot
func (P *Pool[T]) Insert(value T) (index int64, generation uint64) {
	v, index, generation := P.Emplace()
	*v = value

	return index, generation
}

// Ref - Returns a pointer to the element of a live slot id at its current physical position.
// The pointer aliases the data array, see Emplace. A stale or out of range identity
// returns ok as false.
func (P *Pool[T]) Ref(index int64, generation uint64) (value *T, ok bool) {
	if !P.valid(index, generation) {
		return
	}

	value = &P.data[P.mappings[index].position]
	ok = true

	return
}

// Read - Returns a copy of the element of a live slot id
func (P *Pool[T]) Read(index int64, generation uint64) (value T, ok bool) {
	if !P.valid(index, generation) {
		return
	}

	value = P.data[P.mappings[index].position]
	ok = true

	return
}

// Remove - Removes the element of a live slot id while keeping the data array packed.
// Unless the element already sits last, the last element is moved into the vacated position and
// its mapping and reverse entries are fixed up to the new position. The slot id itself goes back
// to the free list. It returns ok as false if the identity was already stale or out of range.
func (P *Pool[T]) Remove(index int64, generation uint64) (ok bool) {
	if !P.valid(index, generation) {
		return
	}

	position := P.mappings[index].position
	last := int32(len(P.data) - 1)

	if position != last {
		P.data[position] = P.data[last]
		moved := P.reverse[last]
		P.mappings[moved].position = position
		P.reverse[position] = moved
	}

	var empty T
	P.data[last] = empty
	P.data = P.data[:last]
	P.reverse = P.reverse[:last]

	P.mappings[index] = mapping{generation: 0, nextFree: P.freeHead}
	P.freeHead = int32(index)
	ok = true

	return
}

// KeyAt - Returns the identity of the slot whose element currently sits at the given physical
// position. Positions outside the live prefix [0, size) are a caller bug by contract and fatal.
func (P *Pool[T]) KeyAt(position int64) (index int64, generation uint64) {
	if position < 0 || position >= int64(len(P.data)) {
		panic(fmt.Sprintf("position %d outside the live range [0, %d)", position, len(P.data)))
	}

	id := P.reverse[position]

	return int64(id), P.mappings[id].generation
}

// Data - Returns the packed data array holding all live elements in positions [0, size).
// The slice aliases internal storage and is invalidated by any subsequent operation that can
// grow or compact the pool.
func (P *Pool[T]) Data() []T {
	return P.data
}

// Len - Returns the number of live elements
func (P *Pool[T]) Len() int64 {
	return int64(len(P.data))
}

// Capacity - Returns the current number of slot ids, live and free
func (P *Pool[T]) Capacity() int64 {
	return int64(len(P.mappings))
}
