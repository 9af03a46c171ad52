package handlestore

import (
	"github.com/gostonefire/handlestore/internal/storage"
)

// MaxIndex - Highest slot index a Handle can represent, useful when sizing pools up front
const MaxIndex int64 = storage.MaxSlotIndex

// NilHandle - The zero Handle, it never identifies a live record since generation 0 (zero)
// is never issued
const NilHandle Handle = 0

// Handle - Opaque identity of one logical record in a SlotPool or PackedPool. It packs a reusable
// slot index in the low 24 bits and a generation stamp in the high 40 bits, which lets a pool
// detect that a handle refers to an already removed and since reused slot. Callers may store or
// transmit handles as plain 64 bit integers but should treat the bit layout as internal.
type Handle uint64

// newHandle - Packs a slot index and a generation stamp into a Handle.
// Packing and unpacking happens only here at the public boundary, the internal pools deal in
// plain (index, generation) pairs.
func newHandle(index int64, generation uint64) Handle {
	return Handle(uint64(index) | generation<<storage.IndexBits)
}

// Index - Returns the slot index part of the handle
func (H Handle) Index() int64 {
	return int64(uint64(H) & uint64(storage.MaxSlotIndex))
}

// Generation - Returns the generation part of the handle
func (H Handle) Generation() uint64 {
	return uint64(H) >> storage.IndexBits
}

// IsNil - Returns true for the zero Handle
func (H Handle) IsNil() bool {
	return H == NilHandle
}
