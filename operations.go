package handlestore

import (
	"fmt"
)

// Ensure - Returns the value bytes for key, adding the key first if it wasn't present.
// The returned slice aliases the backing block and is writable, but it is invalidated by any
// subsequent operation on the map that can grow or reorganize storage, so it must not be held
// across such calls.
//   - key is the identifier of a record, it has to be of same length as given in call to NewHashMap
//
// It returns:
//   - value is the writable value bytes of the record, nil when a fixed map is full
//   - isNew is true if the key was added by this call
func (M *HashMap) Ensure(key []byte) (value []byte, isNew bool) {
	M.checkKey(key)

	value, isNew = M.table.Ensure(key)

	return
}

// Get - Gets the value that corresponds to the given key.
// The returned slice aliases the backing block, see Ensure.
//   - key is the identifier of a record, it has to be of same length as given in call to NewHashMap
//
// It returns:
//   - value is the value bytes of the matching record if found
//   - ok is false if no record matched the key
func (M *HashMap) Get(key []byte) (value []byte, ok bool) {
	M.checkKey(key)

	value, ok = M.table.Get(key)

	return
}

// Has - Returns true if a record with the given key is present
//   - key is the identifier of a record, it has to be of same length as given in call to NewHashMap
func (M *HashMap) Has(key []byte) (ok bool) {
	M.checkKey(key)

	_, ok = M.table.Get(key)

	return
}

// Set - Updates an existing record with new data or adds it if no existing is found with same key.
//   - key is the identifier of a record, it has to be of same length as given in call to NewHashMap
//   - value is the bytes to store along with the key, it has to be of same length as given in call to NewHashMap
//
// It returns:
//   - ok is false only when the map is fixed, full, and the key wasn't already present
func (M *HashMap) Set(key []byte, value []byte) (ok bool) {
	M.checkKey(key)
	M.checkValue(value)

	ok = M.table.Set(key, value)

	return
}

// Insert - Adds a record only if no existing record is found with same key.
//   - key is the identifier of a record, it has to be of same length as given in call to NewHashMap
//   - value is the bytes to store along with the key, it has to be of same length as given in call to NewHashMap
//
// It returns:
//   - ok is false when the key was already present, or when the map is fixed and full
func (M *HashMap) Insert(key []byte, value []byte) (ok bool) {
	M.checkKey(key)
	M.checkValue(value)

	ok = M.table.Insert(key, value)

	return
}

// Pop - Returns a copy of the value corresponding to key and removes the record from the map.
//   - key is the identifier of a record, it has to be of same length as given in call to NewHashMap
//
// It returns:
//   - value is a copy of the value bytes of the matching record if found
//   - ok is false if no record matched the key
func (M *HashMap) Pop(key []byte) (value []byte, ok bool) {
	M.checkKey(key)

	v, ok := M.table.Get(key)
	if !ok {
		return
	}

	value = make([]byte, M.valueLength)
	copy(value, v)
	M.table.Remove(key)

	return
}

// Remove - Removes the record that corresponds to the given key.
//   - key is the identifier of a record, it has to be of same length as given in call to NewHashMap
//
// It returns:
//   - ok is false if no record matched the key
func (M *HashMap) Remove(key []byte) (ok bool) {
	M.checkKey(key)

	ok = M.table.Remove(key)

	return
}

// Next - Returns the record following prevKey in backing block order, which is how the map is
// iterated. The order has nothing to do with insertion order and is not stable across growth.
// The returned slices alias the backing block, see Ensure.
//   - prevKey is the key returned by the previous call, or nil to start the iteration
//
// It returns:
//   - key and value are the bytes of the next record
//   - ok is false when the iteration is done, or when prevKey is no longer present
func (M *HashMap) Next(prevKey []byte) (key, value []byte, ok bool) {
	if prevKey != nil {
		M.checkKey(prevKey)
	}

	key, value, ok = M.table.Next(prevKey)

	return
}

// Reserve - Grows the map, if necessary, to hold at least numberOfKeys records without
// triggering further growth. Shrinking is not supported, a capacity already sufficient
// leaves the map untouched.
func (M *HashMap) Reserve(numberOfKeys int64) {
	if numberOfKeys < 0 {
		panic(fmt.Sprintf("number of keys can not be negative, got %d", numberOfKeys))
	}

	M.table.Reserve(numberOfKeys)
}

// Len - Returns the number of records currently stored
func (M *HashMap) Len() int64 {
	return M.table.Len()
}

// Cap - Returns the current number of cells in the backing block
func (M *HashMap) Cap() int64 {
	return M.table.Capacity()
}

// checkKey - Asserts the key contract, a nil key or a key of wrong length is a caller bug
func (M *HashMap) checkKey(key []byte) {
	if key == nil {
		panic("key can not be nil")
	}
	if int64(len(key)) != M.keyLength {
		panic(fmt.Sprintf("wrong length of key, should be %d, got %d", M.keyLength, len(key)))
	}
}

// checkValue - Asserts the value contract, a value of wrong length is a caller bug
func (M *HashMap) checkValue(value []byte) {
	if int64(len(value)) != M.valueLength {
		panic(fmt.Sprintf("wrong length of value, should be %d, got %d", M.valueLength, len(value)))
	}
}
