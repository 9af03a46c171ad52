// Package handlestore provides three in-memory containers that hand out stable identities for
// logical records across growth, reorganization and removal: an open addressing hash map where
// colliding records form bucket rings (HashMap), a generational slot allocator (SlotPool) and a
// compacting slot allocator that keeps live data contiguous (PackedPool).
//
// All containers assume single owner access. They carry no internal synchronization, and
// references returned by lookups or emplacement are borrowed, any subsequent operation on the
// same container that can grow or compact storage invalidates them.
//
// Legitimate runtime outcomes such as a missing key, a stale handle or a full fixed map are
// reported through ok style return values. Violated call contracts, such as a nil key or an
// exhausted handle index space, panic.
package handlestore

import (
	"fmt"

	"github.com/gostonefire/handlestore/hashfunc"
	"github.com/gostonefire/handlestore/internal/storage/ringtable"
)

// HashMapConf - Is a struct to be passed in the call to NewHashMap holding configuration for
// the hash map to create.
//   - KeyLength is the fixed length of the key part in a record
//   - ValueLength is the fixed length of the value part in a record
//   - InitialCapacity is the number of cells to create up front, it is rounded up to the nearest power of two and is never below 8
//   - Fixed locks the capacity, a full map then reports absent results instead of growing
//   - HashAlgorithm is an optional custom hash algorithm following the hashfunc.HashAlgorithm interface, nil selects the internal crc32 based algorithm
type HashMapConf struct {
	KeyLength       int64
	ValueLength     int64
	InitialCapacity int64
	Fixed           bool
	HashAlgorithm   hashfunc.HashAlgorithm
}

// HashMapInfo - Information structure containing some information about the hash map created
//   - KeyLength and ValueLength are the record part lengths as given in the configuration
//   - Capacity is the number of cells in the backing block
//   - Fixed is whether the capacity is locked
//   - InternalAlgorithm is whether the internal hash algorithm is in use
type HashMapInfo struct {
	KeyLength         int64
	ValueLength       int64
	Capacity          int64
	Fixed             bool
	InternalAlgorithm bool
}

// HashMapStat - Statistics on the overall usage and distribution over home slots
//   - Records is the total number of records stored
//   - RingDistribution is the number of records belonging to each home slot, nil unless asked for
type HashMapStat struct {
	Records          int64
	RingDistribution []int64
}

// HashMap - The main hash map implementation struct. Records are fixed length key/value byte
// strings held in one contiguous backing block of cells, and records colliding on a home slot
// form a circular ring rooted at that home slot.
type HashMap struct {
	table             *ringtable.Table
	keyLength         int64
	valueLength       int64
	fixed             bool
	internalAlgorithm bool
}

// NewHashMap - Returns a new in-memory hash map prepared to cover the configured initial capacity.
// Unless the map is fixed it grows on demand, doubling the backing block whenever occupancy would
// pass 75% of capacity. Non positive key or value lengths are a caller bug by contract and fatal.
func NewHashMap(conf HashMapConf) (hashMap *HashMap) {
	if conf.KeyLength <= 0 {
		panic(fmt.Sprintf("key length must be a positive value higher than 0 (zero), got %d", conf.KeyLength))
	}
	if conf.ValueLength <= 0 {
		panic(fmt.Sprintf("value length must be a positive value higher than 0 (zero), got %d", conf.ValueLength))
	}
	if conf.InitialCapacity < 0 {
		panic(fmt.Sprintf("initial capacity can not be negative, got %d", conf.InitialCapacity))
	}

	hashMap = &HashMap{
		table: ringtable.NewTable(ringtable.Conf{
			KeyLength:       conf.KeyLength,
			ValueLength:     conf.ValueLength,
			InitialCapacity: conf.InitialCapacity,
			Fixed:           conf.Fixed,
			HashAlgorithm:   conf.HashAlgorithm,
		}),
		keyLength:         conf.KeyLength,
		valueLength:       conf.ValueLength,
		fixed:             conf.Fixed,
		internalAlgorithm: conf.HashAlgorithm == nil,
	}

	return
}

// Info - Returns a HashMapInfo struct with data regarding the hash map
func (M *HashMap) Info() (hashMapInfo HashMapInfo) {
	hashMapInfo = HashMapInfo{
		KeyLength:         M.keyLength,
		ValueLength:       M.valueLength,
		Capacity:          M.table.Capacity(),
		Fixed:             M.fixed,
		InternalAlgorithm: M.internalAlgorithm,
	}

	return
}

// Stat - Walks the entire backing block and produces a HashMapStat struct with information.
//   - includeDistribution set to true will include a slice of length Capacity with number of records per home slot, false will set HashMapStat.RingDistribution to nil.
func (M *HashMap) Stat(includeDistribution bool) (hashMapStat HashMapStat) {
	hashMapStat = HashMapStat{Records: M.table.Len()}
	if includeDistribution {
		hashMapStat.RingDistribution = M.table.RingDistribution()
	}

	return
}
