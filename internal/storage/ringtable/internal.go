package ringtable

import (
	"fmt"

	"github.com/gostonefire/handlestore/internal/utils"
)

// cell - One slot in the backing block.
// The hash field doubles as the occupancy marker, where 0 (zero) means the cell is free.
// The link fields are indexes into the same block and change meaning with occupancy: an occupied
// cell uses next as its successor in the circular bucket ring (prev is not maintained), while a
// free cell uses next and prev as its neighbors in the doubly linked free list. The free list is
// doubly linked since placement must be able to claim one specific cell (the home slot) from
// anywhere in the list, not just pop the first.
type cell struct {
	hash uint32
	next int32
	prev int32
}

// hashKey - Returns the hash value for a key using either the supplied or the internal hash
// algorithm. A computed hash of 0 (zero) is forced to 1 (one) since zero marks a free cell.
func (T *Table) hashKey(key []byte) (hash uint32) {
	hash = T.hashAlgorithm.HashKey(key)
	if hash == 0 {
		hash = 1
	}

	return
}

// homeSlot - Returns the home slot for a hash value
func (T *Table) homeSlot(hash uint32) int32 {
	return int32(hash & T.mask)
}

// keyAt - Returns the key bytes of cell i, aliasing the backing block
func (T *Table) keyAt(i int32) []byte {
	return T.keys[int64(i)*T.keyLength : int64(i+1)*T.keyLength]
}

// valueAt - Returns the value bytes of cell i, aliasing the backing block
func (T *Table) valueAt(i int32) []byte {
	return T.values[int64(i)*T.valueLength : int64(i+1)*T.valueLength]
}

// initBlock - Allocates a fresh backing block of the given capacity (which must be a power of two)
// with every cell threaded onto the free list in ascending order. Any previous block is left to the
// caller, which is what grow relies on while replaying records.
func (T *Table) initBlock(capacity int64) {
	if capacity > maxCapacity {
		panic(fmt.Sprintf("hash map capacity %d exceeds max capacity %d", capacity, maxCapacity))
	}

	T.capacity = capacity
	T.mask = uint32(capacity - 1)
	T.size = 0
	T.cells = make([]cell, capacity)
	T.keys = make([]byte, capacity*T.keyLength)
	T.values = make([]byte, capacity*T.valueLength)

	for i := int64(0); i < capacity; i++ {
		T.cells[i] = cell{hash: 0, next: int32(i + 1), prev: int32(i - 1)}
	}
	T.cells[capacity-1].next = noCell
	T.freeHead = 0
}

// takeFreeCell - Unlinks the given cell from the free list. The cell must be free.
func (T *Table) takeFreeCell(i int32) {
	next := T.cells[i].next
	prev := T.cells[i].prev

	if prev == noCell {
		T.freeHead = next
	} else {
		T.cells[prev].next = next
	}
	if next != noCell {
		T.cells[next].prev = prev
	}
}

// popFreeCell - Unlinks and returns the first cell of the free list.
// The free list must not be empty, which every caller has already established through the
// load factor check.
func (T *Table) popFreeCell() (i int32) {
	i = T.freeHead
	T.takeFreeCell(i)

	return
}

// pushFreeCell - Clears cell i and links it first in the free list.
// Key and value bytes are zeroed so that free cells never carry stale record data.
func (T *Table) pushFreeCell(i int32) {
	T.cells[i] = cell{hash: 0, next: T.freeHead, prev: noCell}
	if T.freeHead != noCell {
		T.cells[T.freeHead].prev = i
	}
	T.freeHead = i

	zeroBytes(T.keyAt(i))
	zeroBytes(T.valueAt(i))
}

// findCell - Walks the bucket ring rooted at the home slot of hash, looking for a cell with
// matching hash and key.
//
// It returns:
//   - i is the index of the matching cell
//   - pred is the ring predecessor of i, only meaningful when i is not the ring head
//   - ok is false if no cell matched
func (T *Table) findCell(hash uint32, key []byte) (i, pred int32, ok bool) {
	home := T.homeSlot(hash)
	if T.cells[home].hash == 0 {
		return
	}

	// A foreign occupant parked in the home slot means the ring for this hash doesn't exist
	if T.homeSlot(T.cells[home].hash) != home {
		return
	}

	i = home
	pred = home
	for {
		if T.cells[i].hash == hash && utils.IsEqual(key, T.keyAt(i)) {
			ok = true
			return
		}
		pred = i
		i = T.cells[i].next
		if i == home {
			break
		}
	}

	i = 0
	pred = 0
	return
}

// roomForOne - Returns true if one more record fits without violating the growth policy.
// Growable tables keep occupancy at or below 75% of capacity, fixed tables may fill completely.
func (T *Table) roomForOne() bool {
	if T.fixed {
		return T.size < T.capacity
	}

	return T.size+1 <= T.capacity-T.capacity/4
}

// place - Stores a new record with the given hash and key and returns the cell it ended up in.
// The key must be absent and room must have been established by the caller. The value bytes of
// the returned cell are zeroed.
func (T *Table) place(hash uint32, key []byte) (i int32) {
	home := T.homeSlot(hash)

	// A free home slot starts a new singleton ring
	if T.cells[home].hash == 0 {
		T.takeFreeCell(home)
		T.cells[home] = cell{hash: hash, next: home, prev: noCell}
		copy(T.keyAt(home), key)
		T.size++

		return home
	}

	free := T.popFreeCell()
	occupantHome := T.homeSlot(T.cells[home].hash)

	if occupantHome != home {
		// The occupant is a foreign entry parked here. Relocate it to the free cell so the new
		// record can take the home slot, since a ring head must always be its own home slot.
		p := occupantHome
		for T.cells[p].next != home {
			p = T.cells[p].next
		}

		T.cells[free] = T.cells[home]
		copy(T.keyAt(free), T.keyAt(home))
		copy(T.valueAt(free), T.valueAt(home))
		T.cells[p].next = free

		T.cells[home] = cell{hash: hash, next: home, prev: noCell}
		copy(T.keyAt(home), key)
		zeroBytes(T.valueAt(home))
		T.size++

		return home
	}

	// The occupant genuinely belongs here, splice the new record into the ring after the head
	T.cells[free] = cell{hash: hash, next: T.cells[home].next, prev: noCell}
	T.cells[home].next = free
	copy(T.keyAt(free), key)
	T.size++

	return free
}

// grow - Allocates a new backing block of the given capacity and replays every occupied cell from
// the old block in ascending memory order. Stored hashes are reused, so keys are not rehashed.
// The old block stays intact until the replay completes.
func (T *Table) grow(newCapacity int64) {
	oldCells := T.cells
	oldKeys := T.keys
	oldValues := T.values
	oldCapacity := T.capacity

	T.initBlock(newCapacity)

	for i := int64(0); i < oldCapacity; i++ {
		if oldCells[i].hash != 0 {
			j := T.place(oldCells[i].hash, oldKeys[i*T.keyLength:(i+1)*T.keyLength])
			copy(T.valueAt(j), oldValues[i*T.valueLength:(i+1)*T.valueLength])
		}
	}
}

// zeroBytes - Clears a byte slice in place
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
