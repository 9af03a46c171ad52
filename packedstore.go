package handlestore

import (
	"github.com/gostonefire/handlestore/internal/storage/packedpool"
)

// PackedPool - A compacting slot allocator with the same handle contract as SlotPool, plus the
// guarantee that live values always occupy the contiguous prefix [0, Len()) of the backing data
// array, which suits consumers that need a raw contiguous buffer such as bulk transfer. Removing
// a value moves the last live value into the vacated position, so physical positions are not
// stable, only handles are. Pointers and the Data slice are borrowed and invalidated by any
// subsequent operation that can grow or compact the pool.
type PackedPool[T any] struct {
	pool *packedpool.Pool[T]
}

// NewPackedPool - Returns a new PackedPool with room for initialCapacity values of type T.
// The pool grows on demand by half its capacity whenever the free list runs empty.
func NewPackedPool[T any](initialCapacity int64) *PackedPool[T] {
	return &PackedPool[T]{pool: packedpool.New[T](initialCapacity)}
}

// Emplace - Appends a zeroed value at the end of the packed data array and returns a pointer to
// it together with the handle identifying it. Occupying more than MaxIndex + 1 slots at once is
// a caller bug by contract and fatal.
func (P *PackedPool[T]) Emplace() (value *T, handle Handle) {
	value, index, generation := P.pool.Emplace()
	handle = newHandle(index, generation)

	return
}

// Insert - Appends value at the end of the packed data array and returns the handle identifying it
func (P *PackedPool[T]) Insert(value T) (handle Handle) {
	index, generation := P.pool.Insert(value)
	handle = newHandle(index, generation)

	return
}

// Ref - Returns a pointer to the value identified by handle at its current physical position.
//
// It returns:
//   - value is a borrowed pointer into the packed data array, see the PackedPool documentation
//   - ok is false if the handle is stale or was never issued by this pool
func (P *PackedPool[T]) Ref(handle Handle) (value *T, ok bool) {
	value, ok = P.pool.Ref(handle.Index(), handle.Generation())

	return
}

// Read - Returns a copy of the value identified by handle.
//
// It returns:
//   - value is a copy of the stored value
//   - ok is false if the handle is stale or was never issued by this pool
func (P *PackedPool[T]) Read(handle Handle) (value T, ok bool) {
	value, ok = P.pool.Read(handle.Index(), handle.Generation())

	return
}

// Remove - Removes the value identified by handle, compacting the data array by moving the last
// live value into the vacated position unless the removed value was itself last.
//
// It returns:
//   - ok is false if the handle is stale or was never issued by this pool, a second Remove with the same handle therefore returns false
func (P *PackedPool[T]) Remove(handle Handle) (ok bool) {
	ok = P.pool.Remove(handle.Index(), handle.Generation())

	return
}

// KeyAt - Returns the handle of the value currently sitting at the given physical position,
// enabling contiguous traversal of Data paired with handle based lookups. Positions outside
// the live range [0, Len()) are a caller bug by contract and fatal.
func (P *PackedPool[T]) KeyAt(position int64) (handle Handle) {
	index, generation := P.pool.KeyAt(position)
	handle = newHandle(index, generation)

	return
}

// Data - Returns the packed data array holding all live values in positions [0, Len()).
// The slice is borrowed, see the PackedPool documentation.
func (P *PackedPool[T]) Data() []T {
	return P.pool.Data()
}

// Len - Returns the number of live values
func (P *PackedPool[T]) Len() int64 {
	return P.pool.Len()
}

// Cap - Returns the current number of slots, live and free
func (P *PackedPool[T]) Cap() int64 {
	return P.pool.Capacity()
}
