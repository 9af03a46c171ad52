package hashfunc

// HashAlgorithm - Interface that permits an implementation using the HashMap to supply a custom cell
// placement algorithm suited for its particular distribution of keys.
type HashAlgorithm interface {
	// HashKey - Given key it generates a 32 bit hash value used for home slot selection within the
	// hash map backing block. The hash map applies home = hash & (capacity - 1) itself, so the full
	// 32 bit range may be used. A returned value of 0 (zero) will internally be replaced by 1 (one)
	// since zero is reserved to mark free cells.
	HashKey(key []byte) uint32
}
