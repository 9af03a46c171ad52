package ringtable

import (
	"github.com/gostonefire/handlestore/hashfunc"
	"github.com/gostonefire/handlestore/internal/hash"
)

// Conf - Is a struct to be passed in the call to NewTable and contains configuration that affects
// the backing block layout and processing.
//   - KeyLength is the fixed length of keys to store
//   - ValueLength is the fixed length of values to store
//   - InitialCapacity is the number of cells to start with, rounded up to the nearest power of two
//   - Fixed locks the capacity, a full table then rejects new keys instead of growing
//   - HashAlgorithm is the hash function to use, nil selects the internal algorithm
type Conf struct {
	KeyLength       int64
	ValueLength     int64
	InitialCapacity int64
	Fixed           bool
	HashAlgorithm   hashfunc.HashAlgorithm
}

// Table - Represents an in-memory hash table using open addressing over one contiguous backing
// block of fixed length cells. Cells colliding on a home slot form a circular ring rooted at that
// home slot, and unused cells are kept in a free list threaded through the cells' own link fields.
type Table struct {
	keyLength     int64
	valueLength   int64
	capacity      int64
	mask          uint32
	size          int64
	fixed         bool
	cells         []cell
	keys          []byte
	values        []byte
	freeHead      int32
	hashAlgorithm hashfunc.HashAlgorithm
}

// NewTable - Returns a pointer to a new Table instance given a Conf.
// Lengths and capacity are assumed to be validated by the caller, but capacity is normalized here
// to a power of two of at least the minimum capacity.
func NewTable(conf Conf) (table *Table) {
	capacity := conf.InitialCapacity
	if capacity < minCapacity {
		capacity = minCapacity
	}
	capacity = hash.RoundUpToPowerOfTwo(capacity)

	hashAlgorithm := conf.HashAlgorithm
	if hashAlgorithm == nil {
		hashAlgorithm = hash.NewSingleHashAlgorithm()
	}

	table = &Table{
		keyLength:     conf.KeyLength,
		valueLength:   conf.ValueLength,
		fixed:         conf.Fixed,
		hashAlgorithm: hashAlgorithm,
	}
	table.initBlock(capacity)

	return
}

// Ensure - Returns the value bytes for key, adding the key first if it wasn't present.
// The returned slice aliases the backing block and is invalidated by any subsequent operation
// that can grow or reorganize the table.
//
// It returns:
//   - value is the writable value bytes of the record, or nil if a fixed table is full
//   - isNew is true if the key was added by this call
func (T *Table) Ensure(key []byte) (value []byte, isNew bool) {
	h := T.hashKey(key)

	if i, _, ok := T.findCell(h, key); ok {
		value = T.valueAt(i)
		return
	}

	if !T.roomForOne() {
		if T.fixed {
			return
		}
		T.grow(T.capacity * 2)
	}

	value = T.valueAt(T.place(h, key))
	isNew = true

	return
}

// Get - Returns the value bytes for key if present.
// The returned slice aliases the backing block, see Ensure.
func (T *Table) Get(key []byte) (value []byte, ok bool) {
	if i, _, found := T.findCell(T.hashKey(key), key); found {
		value = T.valueAt(i)
		ok = true
	}

	return
}

// Set - Adds or overwrites the record for key.
// It returns ok as false only when a fixed table is full and the key wasn't already present.
func (T *Table) Set(key, value []byte) (ok bool) {
	v, _ := T.Ensure(key)
	if v == nil {
		return
	}
	copy(v, value)
	ok = true

	return
}

// Insert - Adds the record for key only if the key is absent.
// It returns ok as false when the key was already present or a fixed table is full.
func (T *Table) Insert(key, value []byte) (ok bool) {
	v, isNew := T.Ensure(key)
	if !isNew {
		return
	}
	copy(v, value)
	ok = true

	return
}

// Remove - Removes the record for key and returns whether the key was present.
// The vacated cell is returned to the free list. If the removed cell was the head of a ring with
// more members, the next member is copied into the home slot to preserve the rule that a ring
// head is always its own home slot.
func (T *Table) Remove(key []byte) (ok bool) {
	h := T.hashKey(key)
	i, pred, found := T.findCell(h, key)
	if !found {
		return
	}

	home := T.homeSlot(h)
	if i != home {
		// Non-head member, unlink it from the ring
		T.cells[pred].next = T.cells[i].next
		T.pushFreeCell(i)
	} else if next := T.cells[home].next; next == home {
		// Sole ring member
		T.pushFreeCell(home)
	} else {
		// Head with other members, move the next member into the home slot
		T.cells[home].hash = T.cells[next].hash
		copy(T.keyAt(home), T.keyAt(next))
		copy(T.valueAt(home), T.valueAt(next))
		T.cells[home].next = T.cells[next].next
		T.pushFreeCell(next)
	}

	T.size--
	ok = true

	return
}

// Next - Returns the next record in physical backing block order.
// A nil prevKey starts the iteration from the beginning. The order has nothing to do with
// insertion order and is not stable across growth. The returned slices alias the backing
// block, see Ensure.
//
// It returns:
//   - key and value are the bytes of the next occupied cell
//   - ok is false when prevKey was the last record, or is no longer present
func (T *Table) Next(prevKey []byte) (key, value []byte, ok bool) {
	var start int32
	if prevKey != nil {
		i, _, found := T.findCell(T.hashKey(prevKey), prevKey)
		if !found {
			return
		}
		start = i + 1
	}

	for i := start; int64(i) < T.capacity; i++ {
		if T.cells[i].hash != 0 {
			key = T.keyAt(i)
			value = T.valueAt(i)
			ok = true
			return
		}
	}

	return
}

// Reserve - Grows the table, if necessary, to hold at least numberOfKeys records without further
// growth. The resulting capacity is a power of two with headroom for the growth policy.
func (T *Table) Reserve(numberOfKeys int64) {
	needed := numberOfKeys + numberOfKeys/3 + 1
	if needed < minCapacity {
		needed = minCapacity
	}
	needed = hash.RoundUpToPowerOfTwo(needed)

	if needed > T.capacity {
		T.grow(needed)
	}
}

// Len - Returns the number of records currently stored
func (T *Table) Len() int64 {
	return T.size
}

// Capacity - Returns the current number of cells in the backing block
func (T *Table) Capacity() int64 {
	return T.capacity
}

// RingDistribution - Returns the number of records per home slot.
// The returned slice has one entry per cell in the backing block.
func (T *Table) RingDistribution() (distribution []int64) {
	distribution = make([]int64, T.capacity)
	for i := int64(0); i < T.capacity; i++ {
		if T.cells[i].hash != 0 {
			distribution[T.homeSlot(T.cells[i].hash)]++
		}
	}

	return
}
