package handlestore

import (
	"github.com/gostonefire/handlestore/internal/storage/slotpool"
)

// SlotPool - A generational slot allocator yielding stable handles over possibly sparse storage.
// Every occupied slot is stamped with a fresh generation from a counter private to the pool, so a
// handle kept past Remove goes stale and stays stale even after its slot index has been reused.
// Growth only appends slots and never relocates existing ones, which keeps issued handles valid,
// though pointers returned by Emplace, Ref and Next are borrowed and invalidated by any
// subsequent operation that can grow the pool.
type SlotPool[T any] struct {
	pool *slotpool.Pool[T]
}

// NewSlotPool - Returns a new SlotPool with room for initialCapacity values of type T.
// The pool grows on demand by half its capacity whenever the free list runs empty.
func NewSlotPool[T any](initialCapacity int64) *SlotPool[T] {
	return &SlotPool[T]{pool: slotpool.New[T](initialCapacity)}
}

// Emplace - Occupies a slot and returns a pointer to its zeroed value together with the handle
// identifying it. Occupying more than MaxIndex + 1 slots at once is a caller bug by contract
// and fatal.
func (P *SlotPool[T]) Emplace() (value *T, handle Handle) {
	value, index, generation := P.pool.Emplace()
	handle = newHandle(index, generation)

	return
}

// Insert - Stores value in a free slot and returns the handle identifying it
func (P *SlotPool[T]) Insert(value T) (handle Handle) {
	index, generation := P.pool.Insert(value)
	handle = newHandle(index, generation)

	return
}

// Ref - Returns a pointer to the value identified by handle.
//
// It returns:
//   - value is a borrowed pointer into the pool storage, see the SlotPool documentation
//   - ok is false if the handle is stale or was never issued by this pool
func (P *SlotPool[T]) Ref(handle Handle) (value *T, ok bool) {
	value, ok = P.pool.Ref(handle.Index(), handle.Generation())

	return
}

// Read - Returns a copy of the value identified by handle.
//
// It returns:
//   - value is a copy of the stored value
//   - ok is false if the handle is stale or was never issued by this pool
func (P *SlotPool[T]) Read(handle Handle) (value T, ok bool) {
	value, ok = P.pool.Read(handle.Index(), handle.Generation())

	return
}

// Remove - Removes the value identified by handle and recycles its slot.
//
// It returns:
//   - ok is false if the handle is stale or was never issued by this pool, a second Remove with the same handle therefore returns false
func (P *SlotPool[T]) Remove(handle Handle) (ok bool) {
	ok = P.pool.Remove(handle.Index(), handle.Generation())

	return
}

// Next - Returns the next occupied slot after the one identified by handle, iterating by
// physical slot index rather than by creation order.
//   - handle is the handle returned by the previous call, or NilHandle to start the iteration
//
// It returns:
//   - next is the handle of the next occupied slot
//   - value is a borrowed pointer to its value
//   - ok is false when the iteration is done
func (P *SlotPool[T]) Next(handle Handle) (next Handle, value *T, ok bool) {
	prevIndex := handle.Index()
	if handle.IsNil() {
		prevIndex = -1
	}

	index, generation, value, ok := P.pool.Next(prevIndex)
	if ok {
		next = newHandle(index, generation)
	}

	return
}

// Len - Returns the number of occupied slots
func (P *SlotPool[T]) Len() int64 {
	return P.pool.Len()
}

// Cap - Returns the current number of slots, occupied and free
func (P *SlotPool[T]) Cap() int64 {
	return P.pool.Capacity()
}
